// Package transport wraps the Telegram Bot API client with a bounded HTTP
// timeout and classifies send failures for the retry queue.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Button is one inline keyboard button carrying a callback payload.
type Button struct {
	Label string
	Data  string
}

// Telegram sends outbound bot messages.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// New authorizes against the Telegram API. The HTTP client is given a hard
// timeout so a hung connection surfaces as an error instead of stalling the
// scheduler tick.
func New(token string, sendTimeout time.Duration) (*Telegram, error) {
	client := &http.Client{Timeout: sendTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &Telegram{api: api}, nil
}

// API exposes the underlying client for update polling, edits and menu
// setup.
func (t *Telegram) API() *tgbotapi.BotAPI { return t.api }

// Send delivers text to the given chat. parseMode may be empty and keyboard
// may be nil.
func (t *Telegram) Send(chatID int64, text, parseMode string, keyboard [][]Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if kb := InlineKeyboard(keyboard); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := t.api.Send(msg)
	return err
}

// InlineKeyboard converts button rows to the wire format. Empty input yields
// nil so callers can skip the markup entirely.
func InlineKeyboard(rows [][]Button) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}
	grid := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		line := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			line = append(line, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		grid = append(grid, line)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(grid...)
	return &kb
}

// IsTransient reports whether err looks like a temporary network or server
// problem worth retrying later. Permanent API rejections, a blocked bot or a
// missing chat for example, never succeed on retry and are not classified as
// transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return false
}
