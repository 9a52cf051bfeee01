package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/timeparse"
)

var postponeDurations = map[string]time.Duration{
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"3h":  3 * time.Hour,
	"1d":  24 * time.Hour,
}

// handlePostpone reacts to the buttons under a delivered reminder. Callback
// data is "postpone_<id>_<duration>" where duration is one of the fixed
// offsets or "custom".
func (h *Handlers) handlePostpone(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, "")

	parts := strings.Split(cb.Data, "_")
	if len(parts) != 3 {
		h.log.Error("invalid postpone callback", zap.String("data", cb.Data))
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		h.log.Error("invalid postpone callback", zap.String("data", cb.Data))
		return
	}
	duration := parts[2]

	rem, err := h.repos.Reminder.GetByID(ctx, id)
	if err != nil {
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "error_occurred"), "")
		return
	}
	if rem.UserID != user.TelegramID {
		h.log.Warn("postpone attempt on another user's reminder",
			zap.Int64("user_id", user.TelegramID), zap.Int64("reminder_id", id))
		return
	}

	if duration == "custom" {
		h.mu.Lock()
		h.pendingCustom[user.TelegramID] = id
		h.mu.Unlock()
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "custom_time_prompt"), "")
		return
	}

	offset, ok := postponeDurations[duration]
	if !ok {
		h.log.Error("invalid postpone duration", zap.String("duration", duration))
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	now := h.localNow(user)
	if h.applyPostpone(ctx, cb.Message.Chat.ID, user, rem, now.Add(offset), now) {
		h.removeKeyboard(cb.Message.Chat.ID, cb.Message.MessageID)
	}
}

// handleCustomTime consumes the next text message from a user who picked
// "Custom time". The message carries only the time expression, so it is
// parsed with a placeholder text token in front.
func (h *Handlers) handleCustomTime(ctx context.Context, msg *tgbotapi.Message, user *models.User, reminderID int64) {
	rem, err := h.repos.Reminder.GetByID(ctx, reminderID)
	if err != nil || rem.UserID != user.TelegramID {
		h.clearPendingCustom(user.TelegramID)
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	now := h.localNow(user)
	req, err := timeparse.Parse("reminder "+msg.Text, now)
	if err != nil {
		// Stay in the waiting state so the next message can try again.
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "custom_time_parse_error"), "Markdown")
		return
	}

	h.clearPendingCustom(user.TelegramID)
	h.applyPostpone(ctx, msg.Chat.ID, user, rem, req.ScheduledAt, now)
}

// applyPostpone moves a fire to newTime. A one-shot reminder is rescheduled
// in place; a recurring reminder keeps its own schedule and the postponed
// fire becomes a separate one-shot row.
func (h *Handlers) applyPostpone(ctx context.Context, chatID int64, user *models.User, rem *models.Reminder, newTime, now time.Time) bool {
	var err error
	if rem.IsRecurring {
		oneShot := &models.Reminder{
			UserID:      user.TelegramID,
			MessageText: rem.MessageText,
			ScheduledAt: newTime,
		}
		err = h.repos.Reminder.Create(ctx, oneShot)
	} else {
		err = h.repos.Reminder.Reschedule(ctx, rem.ID, newTime)
	}
	if err != nil {
		h.log.Error("failed to postpone reminder", zap.Int64("reminder_id", rem.ID), zap.Error(err))
		h.sendMessage(chatID, i18n.T(user.Language, "error_occurred"), "")
		return false
	}
	h.sched.Notify()

	h.log.Info("reminder postponed",
		zap.Int64("reminder_id", rem.ID),
		zap.Int64("user_id", user.TelegramID),
		zap.Bool("recurring", rem.IsRecurring),
		zap.Time("new_time", newTime))

	h.sendMessage(chatID, timeparse.Confirmation("⏰", rem.MessageText, newTime, user.TimeFormat, now), "")
	return true
}

func (h *Handlers) clearPendingCustom(userID int64) {
	h.mu.Lock()
	delete(h.pendingCustom, userID)
	h.mu.Unlock()
}
