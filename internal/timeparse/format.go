package timeparse

import (
	"time"

	"github.com/kosmosbot/kosmos/internal/models"
)

// FormatClock renders the time-of-day of t per the user's clock preference,
// "15:04" for 24h or "03:04 PM" for 12h.
func FormatClock(t time.Time, timeFormat string) string {
	if timeFormat == models.TimeFormat12h {
		return t.Format("03:04 PM")
	}
	return t.Format("15:04")
}

// FormatDate renders t's date in the Serbian convention, "15.01.2024.".
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006.")
}

// FormatDateTime renders date and time together, "15.01.2024. 14:30".
func FormatDateTime(t time.Time, timeFormat string) string {
	return FormatDate(t) + " " + FormatClock(t, timeFormat)
}

// Confirmation renders the line acknowledging a scheduled reminder:
// "✓ Coffee > 15:00" when it fires today, otherwise
// "✓ Coffee > Tue 16.01.2024. 15:00". Postponements pass "⏰" as prefix.
func Confirmation(prefix, text string, scheduledAt time.Time, timeFormat string, now time.Time) string {
	clock := FormatClock(scheduledAt, timeFormat)

	sy, sm, sd := scheduledAt.Date()
	ny, nm, nd := now.Date()
	if sy == ny && sm == nm && sd == nd {
		return prefix + " " + text + " > " + clock
	}
	return prefix + " " + text + " > " + scheduledAt.Format("Mon") + " " + FormatDate(scheduledAt) + " " + clock
}
