package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmosbot/kosmos/internal/models"
)

func listUser(lang, timeFormat string) *models.User {
	return &models.User{
		TelegramID: 100,
		Language:   lang,
		TimeFormat: timeFormat,
		Timezone:   "Europe/Belgrade",
	}
}

func TestRenderListNumbersAndFormats(t *testing.T) {
	reminders := []*models.Reminder{
		{
			ID:          41,
			UserID:      100,
			MessageText: "Coffee with Ana",
			ScheduledAt: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:             42,
			UserID:         100,
			MessageText:    "Gym",
			ScheduledAt:    time.Date(2024, 1, 19, 18, 30, 0, 0, time.UTC),
			IsRecurring:    true,
			RecurrenceRule: "FREQ=WEEKLY;BYDAY=MO,FR",
		},
	}

	text, keyboard := renderList(reminders, listUser(models.LanguageEnglish, models.TimeFormat24h))

	assert.Contains(t, text, "📋 *Your reminders:*")
	assert.Contains(t, text, "1. Coffee with Ana\n   15.01.2024. at 14:00")
	assert.Contains(t, text, "2. 🔁 Gym (Mon, Fri)\n   19.01.2024. at 18:30")

	require.NotNil(t, keyboard)
	require.Len(t, keyboard.InlineKeyboard, 2)
	first := keyboard.InlineKeyboard[0][0]
	assert.Equal(t, "🗑️ Delete #1", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, "delete_41", *first.CallbackData)
	second := keyboard.InlineKeyboard[1][0]
	assert.Equal(t, "🗑️ Delete #2", second.Text)
	require.NotNil(t, second.CallbackData)
	assert.Equal(t, "delete_42", *second.CallbackData)
}

func TestRenderListSerbianTwelveHour(t *testing.T) {
	reminders := []*models.Reminder{
		{
			ID:          7,
			UserID:      100,
			MessageText: "Trening",
			ScheduledAt: time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC),
		},
	}

	text, keyboard := renderList(reminders, listUser(models.LanguageSerbian, models.TimeFormat12h))

	assert.Contains(t, text, "📋 *Tvoji podsetnici:*")
	assert.Contains(t, text, "1. Trening\n   15.01.2024. u 06:30 PM")
	require.NotNil(t, keyboard)
	assert.Equal(t, "🗑️ Obriši #1", keyboard.InlineKeyboard[0][0].Text)
}

func TestRenderListSkipsDescriptionForCorruptRule(t *testing.T) {
	reminders := []*models.Reminder{
		{
			ID:             9,
			UserID:         100,
			MessageText:    "Backup",
			ScheduledAt:    time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC),
			IsRecurring:    true,
			RecurrenceRule: "FREQ=YEARLY",
		},
	}

	text, _ := renderList(reminders, listUser(models.LanguageEnglish, models.TimeFormat24h))

	// The icon still marks it recurring, but no empty parentheses appear.
	assert.Contains(t, text, "1. 🔁 Backup\n")
	assert.NotContains(t, text, "()")
}

func TestTimezoneKeyboardLayout(t *testing.T) {
	onboarding := timezoneKeyboard("tz_", "")
	require.NotNil(t, onboarding)
	require.Len(t, onboarding.InlineKeyboard, 10) // 19 zones, two per row

	firstRow := onboarding.InlineKeyboard[0]
	require.Len(t, firstRow, 2)
	assert.Equal(t, "🇷🇸 Europe/Belgrade", firstRow[0].Text)
	require.NotNil(t, firstRow[0].CallbackData)
	assert.Equal(t, "tz_Europe/Belgrade", *firstRow[0].CallbackData)

	lastRow := onboarding.InlineKeyboard[9]
	require.Len(t, lastRow, 1)
	assert.Equal(t, "tz_Australia/Melbourne", *lastRow[0].CallbackData)

	settings := timezoneKeyboard("set_timezone_", "⬅️ Back")
	require.Len(t, settings.InlineKeyboard, 11)
	assert.Equal(t, "set_timezone_Europe/Belgrade", *settings.InlineKeyboard[0][0].CallbackData)
	back := settings.InlineKeyboard[10][0]
	assert.Equal(t, "⬅️ Back", back.Text)
	require.NotNil(t, back.CallbackData)
	assert.Equal(t, "settings_back", *back.CallbackData)
}
