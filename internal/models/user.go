package models

import "time"

// Supported interface languages.
const (
	LanguageEnglish = "en"
	LanguageSerbian = "sr-lat"
)

// Supported clock display formats.
const (
	TimeFormat24h = "24h"
	TimeFormat12h = "12h"
)

// User represents a Telegram user and their presentation preferences.
// Timezone is an IANA zone name and only affects how wall-clock times are
// interpreted at delivery; stored reminder times stay naive.
type User struct {
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	Language   string    `json:"language"`
	TimeFormat string    `json:"time_format"`
	Timezone   string    `json:"timezone"`
	CreatedAt  time.Time `json:"created_at"`
}
