package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/transport"
)

func settingsMenu(user *models.User) (string, *tgbotapi.InlineKeyboardMarkup) {
	langName := "English"
	if user.Language == models.LanguageSerbian {
		langName = "Srpski"
	}
	timeFormat := "24h"
	if user.TimeFormat == models.TimeFormat12h {
		timeFormat = "AM/PM"
	}

	text := i18n.T(user.Language, "settings_menu",
		"lang_name", langName,
		"time_format", timeFormat,
		"timezone", user.Timezone)

	keyboard := transport.InlineKeyboard([][]transport.Button{
		{{Label: i18n.T(user.Language, "settings_language"), Data: "settings_language"}},
		{{Label: i18n.T(user.Language, "settings_time_format"), Data: "settings_time_format"}},
		{{Label: i18n.T(user.Language, "settings_timezone"), Data: "settings_timezone"}},
	})
	return text, keyboard
}

func (h *Handlers) handleSettings(msg *tgbotapi.Message, user *models.User) {
	text, keyboard := settingsMenu(user)
	h.sendKeyboard(msg.Chat.ID, text, "Markdown", keyboard)
}

// editSettingsMenu redraws the main settings menu in place, used by the
// back button of every submenu.
func (h *Handlers) editSettingsMenu(cb *tgbotapi.CallbackQuery, user *models.User) {
	text, keyboard := settingsMenu(user)
	h.editMessageKeyboard(cb.Message.Chat.ID, cb.Message.MessageID, text, "Markdown", keyboard)
}

func (h *Handlers) handleSettingsMenu(cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, "")

	switch cb.Data {
	case "settings_language":
		keyboard := transport.InlineKeyboard([][]transport.Button{
			{{Label: i18n.T(user.Language, "language_english"), Data: "set_language_" + models.LanguageEnglish}},
			{{Label: i18n.T(user.Language, "language_serbian"), Data: "set_language_" + models.LanguageSerbian}},
			{{Label: i18n.T(user.Language, "settings_back"), Data: "settings_back"}},
		})
		h.editMessageKeyboard(cb.Message.Chat.ID, cb.Message.MessageID,
			i18n.T(user.Language, "select_language"), "Markdown", keyboard)

	case "settings_time_format":
		keyboard := transport.InlineKeyboard([][]transport.Button{
			{{Label: i18n.T(user.Language, "time_format_12h"), Data: "set_time_format_" + models.TimeFormat12h}},
			{{Label: i18n.T(user.Language, "time_format_24h"), Data: "set_time_format_" + models.TimeFormat24h}},
			{{Label: i18n.T(user.Language, "settings_back"), Data: "settings_back"}},
		})
		h.editMessageKeyboard(cb.Message.Chat.ID, cb.Message.MessageID,
			i18n.T(user.Language, "select_time_format"), "Markdown", keyboard)

	case "settings_timezone":
		keyboard := timezoneKeyboard("set_timezone_", i18n.T(user.Language, "settings_back"))
		h.editMessageKeyboard(cb.Message.Chat.ID, cb.Message.MessageID,
			i18n.T(user.Language, "select_timezone"), "Markdown", keyboard)
	}
}

func (h *Handlers) handleSetLanguage(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, "")
	lang := strings.TrimPrefix(cb.Data, "set_language_")
	if lang != models.LanguageEnglish && lang != models.LanguageSerbian {
		return
	}

	if err := h.repos.User.UpdateLanguage(ctx, user.TelegramID, lang); err != nil {
		h.log.Error("failed to update language", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	h.log.Info("user changed language", zap.Int64("user_id", user.TelegramID), zap.String("language", lang))
	// The confirmation is phrased in the language just selected.
	h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(lang, "language_changed"), "")
}

func (h *Handlers) handleSetTimeFormat(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, "")
	format := strings.TrimPrefix(cb.Data, "set_time_format_")
	if format != models.TimeFormat12h && format != models.TimeFormat24h {
		return
	}

	if err := h.repos.User.UpdateTimeFormat(ctx, user.TelegramID, format); err != nil {
		h.log.Error("failed to update time format", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	display := "24h"
	if format == models.TimeFormat12h {
		display = "AM/PM"
	}
	h.log.Info("user changed time format", zap.Int64("user_id", user.TelegramID), zap.String("time_format", format))
	h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
		i18n.T(user.Language, "time_format_changed", "format", display), "")
}

func (h *Handlers) handleSetTimezone(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, "")
	zone := strings.TrimPrefix(cb.Data, "set_timezone_")

	if err := h.repos.User.UpdateTimezone(ctx, user.TelegramID, zone); err != nil {
		h.log.Error("failed to update timezone", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	h.log.Info("user changed timezone", zap.Int64("user_id", user.TelegramID), zap.String("timezone", zone))
	h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
		i18n.T(user.Language, "timezone_changed", "timezone", zone), "")
}
