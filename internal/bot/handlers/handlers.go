package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/config"
	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/netmon"
	"github.com/kosmosbot/kosmos/internal/repository"
	"github.com/kosmosbot/kosmos/internal/scheduler"
	"github.com/kosmosbot/kosmos/internal/timeparse"
	"github.com/kosmosbot/kosmos/internal/transport"
)

type Repositories struct {
	User           *repository.UserRepository
	Reminder       *repository.ReminderRepository
	PendingMessage *repository.PendingMessageRepository
}

type Handlers struct {
	api     *tgbotapi.BotAPI
	repos   *Repositories
	sender  *transport.Telegram
	sched   *scheduler.Scheduler
	monitor *netmon.Monitor
	cfg     *config.Config
	log     *zap.Logger

	mu            sync.Mutex
	pendingCustom map[int64]int64 // user id -> reminder id awaiting a custom postpone time
}

func New(sender *transport.Telegram, repos *Repositories, sched *scheduler.Scheduler, monitor *netmon.Monitor, cfg *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		api:           sender.API(),
		repos:         repos,
		sender:        sender,
		sched:         sched,
		monitor:       monitor,
		cfg:           cfg,
		log:           log,
		pendingCustom: make(map[int64]int64),
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	user, created, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.log.Error("failed to get or create user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}

	switch msg.Command() {
	case "start":
		h.handleStart(msg, user, created)
	case "help":
		h.handleHelp(msg, user)
	case "list":
		h.handleList(ctx, msg.Chat.ID, user)
	case "recurring":
		h.handleRecurring(ctx, msg, user)
	case "settings":
		h.handleSettings(msg, user)
	case "netstats":
		h.handleNetstats(msg)
	default:
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "help_message"), "Markdown")
	}
}

// HandleMessage treats any non-command text either as the answer to a
// pending custom-postpone prompt or as a new reminder to parse.
func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, _, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.log.Error("failed to get or create user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}

	h.mu.Lock()
	reminderID, waiting := h.pendingCustom[user.TelegramID]
	h.mu.Unlock()
	if waiting {
		h.handleCustomTime(ctx, msg, user, reminderID)
		return
	}

	h.createFromText(ctx, msg, user)
}

func (h *Handlers) HandleCallbackQuery(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	user, _, err := h.repos.User.GetOrCreate(ctx, cb.From.ID, cb.From.UserName)
	if err != nil {
		h.log.Error("failed to get or create user", zap.Int64("user_id", cb.From.ID), zap.Error(err))
		h.answerCallback(cb.ID, "")
		return
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, "delete_confirm_"):
		h.handleDeleteConfirm(ctx, cb, user)
	case strings.HasPrefix(data, "delete_cancel_"):
		h.handleDeleteCancel(ctx, cb, user)
	case strings.HasPrefix(data, "delete_"):
		h.handleDelete(ctx, cb, user)
	case strings.HasPrefix(data, "postpone_"):
		h.handlePostpone(ctx, cb, user)
	case strings.HasPrefix(data, "tz_"):
		h.handleTimezonePick(ctx, cb, user)
	case strings.HasPrefix(data, "set_language_"):
		h.handleSetLanguage(ctx, cb, user)
	case strings.HasPrefix(data, "set_time_format_"):
		h.handleSetTimeFormat(ctx, cb, user)
	case strings.HasPrefix(data, "set_timezone_"):
		h.handleSetTimezone(ctx, cb, user)
	case data == "settings_back":
		h.answerCallback(cb.ID, "")
		h.editSettingsMenu(cb, user)
	case strings.HasPrefix(data, "settings_"):
		h.handleSettingsMenu(cb, user)
	default:
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handlers) handleHelp(msg *tgbotapi.Message, user *models.User) {
	h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "help_message"), "Markdown")
}

// localNow is the current wall-clock time in the user's timezone with the
// zone information stripped, the form every stored reminder time uses.
func (h *Handlers) localNow(user *models.User) time.Time {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc, err = time.LoadLocation(h.cfg.DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
	}
	return timeparse.Naive(time.Now().In(loc))
}

func (h *Handlers) sendMessage(chatID int64, text, parseMode string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handlers) sendKeyboard(chatID int64, text, parseMode string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handlers) editMessageText(chatID int64, messageID int, text, parseMode string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = parseMode
	if _, err := h.api.Send(edit); err != nil {
		h.log.Error("failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handlers) editMessageKeyboard(chatID int64, messageID int, text, parseMode string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = parseMode
	if keyboard != nil {
		edit.ReplyMarkup = keyboard
	}
	if _, err := h.api.Send(edit); err != nil {
		h.log.Error("failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// removeKeyboard strips the inline keyboard from a delivered message. The
// message may already be gone or too old to edit, so failures only log at
// debug.
func (h *Handlers) removeKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.api.Send(edit); err != nil {
		h.log.Debug("could not remove keyboard", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handlers) answerCallback(callbackID, text string) {
	answer := tgbotapi.NewCallback(callbackID, text)
	if _, err := h.api.Request(answer); err != nil {
		h.log.Error("failed to answer callback", zap.Error(err))
	}
}

func (h *Handlers) answerCallbackAlert(callbackID, text string) {
	answer := tgbotapi.NewCallbackWithAlert(callbackID, text)
	if _, err := h.api.Request(answer); err != nil {
		h.log.Error("failed to answer callback with alert", zap.Error(err))
	}
}
