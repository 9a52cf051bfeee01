// Package bot runs the long-polling update loop and dispatches updates to
// the handlers.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/bot/handlers"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
	log      *zap.Logger
}

func New(api *tgbotapi.BotAPI, h *handlers.Handlers, log *zap.Logger) *Bot {
	return &Bot{
		api:      api,
		handlers: h,
		log:      log,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("authorized on telegram", zap.String("account", b.api.Self.UserName))
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

// registerCommands publishes the command menu. A failure only costs the
// menu, not the bot, so it is logged and ignored.
func (b *Bot) registerCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help message"},
		tgbotapi.BotCommand{Command: "netstats", Description: "Network statistics"},
		tgbotapi.BotCommand{Command: "list", Description: "View upcoming reminders"},
		tgbotapi.BotCommand{Command: "recurring", Description: "Create recurring reminder"},
		tgbotapi.BotCommand{Command: "settings", Description: "Change settings"},
	)
	if _, err := b.api.Request(commands); err != nil {
		b.log.Warn("failed to register bot commands", zap.Error(err))
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic in update handler", zap.Any("panic", r))
		}
	}()

	if update.CallbackQuery != nil {
		b.handlers.HandleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	if update.Message.Text == "" {
		return
	}
	b.handlers.HandleMessage(ctx, update.Message)
}
