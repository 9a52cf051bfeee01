package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/recurrence"
	"github.com/kosmosbot/kosmos/internal/timeparse"
	"github.com/kosmosbot/kosmos/internal/transport"
)

func (h *Handlers) handleList(ctx context.Context, chatID int64, user *models.User) {
	reminders, err := h.repos.Reminder.GetByUser(ctx, user.TelegramID, models.StatusPending)
	if err != nil {
		h.log.Error("failed to list reminders", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.sendMessage(chatID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	if len(reminders) == 0 {
		h.sendMessage(chatID, i18n.T(user.Language, "list_empty"), "Markdown")
		return
	}

	text, keyboard := renderList(reminders, user)
	h.sendKeyboard(chatID, text, "Markdown", keyboard)
}

// renderList numbers the reminders for display while the delete buttons
// carry database ids, so the list can be re-rendered after any mutation
// without stale references.
func renderList(reminders []*models.Reminder, user *models.User) (string, *tgbotapi.InlineKeyboardMarkup) {
	var b strings.Builder
	b.WriteString(i18n.T(user.Language, "list_header"))
	b.WriteString("\n")

	at := i18n.T(user.Language, "list_at")
	rows := make([][]transport.Button, 0, len(reminders))
	for i, rem := range reminders {
		icon, desc := "", ""
		if rem.IsRecurring {
			icon = "🔁 "
			if rule, err := recurrence.Decode(rem.RecurrenceRule); err == nil {
				desc = " (" + rule.Describe(user.Language) + ")"
			}
		}
		fmt.Fprintf(&b, "\n%d. %s%s%s\n   %s %s %s\n",
			i+1, icon, rem.MessageText, desc,
			timeparse.FormatDate(rem.ScheduledAt), at, timeparse.FormatClock(rem.ScheduledAt, user.TimeFormat))

		rows = append(rows, []transport.Button{{
			Label: i18n.T(user.Language, "delete_button", "index", strconv.Itoa(i+1)),
			Data:  fmt.Sprintf("delete_%d", rem.ID),
		}})
	}

	return b.String(), transport.InlineKeyboard(rows)
}

func (h *Handlers) handleDelete(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	id, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "delete_"), 10, 64)
	if err != nil {
		h.answerCallback(cb.ID, "")
		return
	}

	rem, err := h.repos.Reminder.GetByID(ctx, id)
	if err != nil {
		h.answerCallbackAlert(cb.ID, i18n.T(user.Language, "error_occurred"))
		return
	}
	if rem.UserID != user.TelegramID {
		h.log.Warn("delete attempt on another user's reminder",
			zap.Int64("user_id", user.TelegramID), zap.Int64("reminder_id", id))
		h.answerCallback(cb.ID, "")
		return
	}

	// Recurring reminders lose all future occurrences on delete, so ask
	// for confirmation first.
	if rem.IsRecurring {
		h.answerCallback(cb.ID, "")
		keyboard := transport.InlineKeyboard([][]transport.Button{{
			{Label: i18n.T(user.Language, "delete_forever"), Data: fmt.Sprintf("delete_confirm_%d", id)},
			{Label: i18n.T(user.Language, "cancel"), Data: fmt.Sprintf("delete_cancel_%d", id)},
		}})
		h.editMessageKeyboard(cb.Message.Chat.ID, cb.Message.MessageID,
			i18n.T(user.Language, "delete_recurring_confirm"), "Markdown", keyboard)
		return
	}

	if err := h.repos.Reminder.Delete(ctx, id, user.TelegramID); err != nil {
		h.log.Error("failed to delete reminder", zap.Int64("reminder_id", id), zap.Error(err))
		h.answerCallbackAlert(cb.ID, i18n.T(user.Language, "error_occurred"))
		return
	}

	h.log.Info("reminder deleted", zap.Int64("reminder_id", id), zap.Int64("user_id", user.TelegramID))
	h.answerCallback(cb.ID, i18n.T(user.Language, "reminder_deleted"))
	h.refreshList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, user)
}

func (h *Handlers) handleDeleteConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	id, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "delete_confirm_"), 10, 64)
	if err != nil {
		h.answerCallback(cb.ID, "")
		return
	}

	if err := h.repos.Reminder.Delete(ctx, id, user.TelegramID); err != nil {
		h.log.Error("failed to delete recurring reminder", zap.Int64("reminder_id", id), zap.Error(err))
		h.answerCallbackAlert(cb.ID, i18n.T(user.Language, "error_occurred"))
		return
	}

	h.log.Info("recurring reminder deleted", zap.Int64("reminder_id", id), zap.Int64("user_id", user.TelegramID))
	h.answerCallback(cb.ID, i18n.T(user.Language, "recurring_deleted"))
	h.refreshList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, user)
}

func (h *Handlers) handleDeleteCancel(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, i18n.T(user.Language, "cancelled"))
	h.refreshList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, user)
}

// refreshList re-renders the reminder list in place after a mutation.
func (h *Handlers) refreshList(ctx context.Context, chatID int64, messageID int, user *models.User) {
	reminders, err := h.repos.Reminder.GetByUser(ctx, user.TelegramID, models.StatusPending)
	if err != nil {
		h.log.Error("failed to refresh reminder list", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		return
	}

	if len(reminders) == 0 {
		h.editMessageText(chatID, messageID, i18n.T(user.Language, "list_empty"), "Markdown")
		return
	}

	text, keyboard := renderList(reminders, user)
	h.editMessageKeyboard(chatID, messageID, text, "Markdown", keyboard)
}
