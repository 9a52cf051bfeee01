package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/timeparse"
	"github.com/kosmosbot/kosmos/internal/transport"
)

// createFromText parses a free-text message like "Coffee tomorrow 14:00"
// into a one-shot reminder.
func (h *Handlers) createFromText(ctx context.Context, msg *tgbotapi.Message, user *models.User) {
	now := h.localNow(user)

	req, err := timeparse.Parse(msg.Text, now)
	if err != nil {
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "reminder_parse_error"), "Markdown")
		h.log.Info("could not parse reminder",
			zap.Int64("user_id", user.TelegramID),
			zap.String("text", msg.Text),
			zap.Error(err))
		return
	}

	if !req.ScheduledAt.After(now) {
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "reminder_in_past"), "")
		return
	}

	reminder := &models.Reminder{
		UserID:      user.TelegramID,
		MessageText: req.Text,
		ScheduledAt: req.ScheduledAt,
	}
	if err := h.repos.Reminder.Create(ctx, reminder); err != nil {
		h.log.Error("failed to create reminder", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "error_occurred"), "")
		return
	}
	h.sched.Notify()

	h.log.Info("reminder created",
		zap.Int64("reminder_id", reminder.ID),
		zap.Int64("user_id", user.TelegramID),
		zap.Time("scheduled_at", reminder.ScheduledAt))

	confirmation := timeparse.Confirmation("✓", req.Text, req.ScheduledAt, user.TimeFormat, now)
	h.sendOrQueue(ctx, user.TelegramID, confirmation, "")
}

// sendOrQueue tries a synchronous send. A transient transport failure parks
// the message in the delivery queue for the backoff loop; a permanent
// rejection is only logged.
func (h *Handlers) sendOrQueue(ctx context.Context, userID int64, text, parseMode string) {
	err := h.sender.Send(userID, text, parseMode, nil)
	if err == nil {
		return
	}

	if !transport.IsTransient(err) {
		h.log.Error("failed to send confirmation", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	h.log.Warn("network error sending confirmation, queuing for retry",
		zap.Int64("user_id", userID), zap.Error(err))
	pending := &models.PendingMessage{
		UserID:      userID,
		MessageText: text,
		MessageType: models.MessageTypeConfirmation,
		ParseMode:   parseMode,
	}
	if err := h.repos.PendingMessage.Enqueue(ctx, pending); err != nil {
		h.log.Error("failed to queue confirmation", zap.Int64("user_id", userID), zap.Error(err))
	}
}
