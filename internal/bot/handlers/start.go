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

// Timezones offered during onboarding and in settings. Telegram never tells
// us the user's zone, so they pick from this fixed table.
var timezoneOptions = []struct {
	Label string
	Zone  string
}{
	{"🇷🇸 Europe/Belgrade", "Europe/Belgrade"},
	{"🇬🇧 Europe/London", "Europe/London"},
	{"🇩🇪 Europe/Berlin", "Europe/Berlin"},
	{"🇫🇷 Europe/Paris", "Europe/Paris"},
	{"🇮🇹 Europe/Rome", "Europe/Rome"},
	{"🇪🇸 Europe/Madrid", "Europe/Madrid"},
	{"🇷🇺 Europe/Moscow", "Europe/Moscow"},
	{"🇺🇸 America/New_York", "America/New_York"},
	{"🇺🇸 America/Chicago", "America/Chicago"},
	{"🇺🇸 America/Denver", "America/Denver"},
	{"🇺🇸 America/Los_Angeles", "America/Los_Angeles"},
	{"🇨🇦 America/Toronto", "America/Toronto"},
	{"🇧🇷 America/Sao_Paulo", "America/Sao_Paulo"},
	{"🇨🇳 Asia/Shanghai", "Asia/Shanghai"},
	{"🇯🇵 Asia/Tokyo", "Asia/Tokyo"},
	{"🇮🇳 Asia/Kolkata", "Asia/Kolkata"},
	{"🇦🇪 Asia/Dubai", "Asia/Dubai"},
	{"🇦🇺 Australia/Sydney", "Australia/Sydney"},
	{"🇦🇺 Australia/Melbourne", "Australia/Melbourne"},
}

// timezoneKeyboard lays the options out two per row. The callback prefix
// distinguishes onboarding ("tz_") from the settings menu ("set_timezone_"),
// and only the settings variant carries a back button.
func timezoneKeyboard(prefix, backLabel string) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]transport.Button
	for i := 0; i < len(timezoneOptions); i += 2 {
		row := []transport.Button{{
			Label: timezoneOptions[i].Label,
			Data:  prefix + timezoneOptions[i].Zone,
		}}
		if i+1 < len(timezoneOptions) {
			row = append(row, transport.Button{
				Label: timezoneOptions[i+1].Label,
				Data:  prefix + timezoneOptions[i+1].Zone,
			})
		}
		rows = append(rows, row)
	}
	if backLabel != "" {
		rows = append(rows, []transport.Button{{Label: backLabel, Data: "settings_back"}})
	}
	return transport.InlineKeyboard(rows)
}

func (h *Handlers) handleStart(msg *tgbotapi.Message, user *models.User, created bool) {
	if !created {
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "welcome_back"), "Markdown")
		return
	}

	h.log.Info("new user registered", zap.Int64("user_id", user.TelegramID), zap.String("username", user.Username))
	h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "welcome_message"), "Markdown")
	h.sendKeyboard(msg.Chat.ID, i18n.T(user.Language, "timezone_question"), "", timezoneKeyboard("tz_", ""))
}

func (h *Handlers) handleTimezonePick(ctx context.Context, cb *tgbotapi.CallbackQuery, user *models.User) {
	h.answerCallback(cb.ID, "")
	zone := strings.TrimPrefix(cb.Data, "tz_")

	if err := h.repos.User.UpdateTimezone(ctx, user.TelegramID, zone); err != nil {
		h.log.Error("failed to update timezone", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(user.Language, "error_occurred"), "")
		return
	}

	h.log.Info("user selected timezone", zap.Int64("user_id", user.TelegramID), zap.String("timezone", zone))
	h.editMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
		i18n.T(user.Language, "timezone_selected", "timezone", zone), "")
}
