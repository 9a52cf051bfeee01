package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kosmosbot/kosmos/internal/models"
)

func TestFormatClock(t *testing.T) {
	morning := time.Date(2024, time.January, 15, 9, 5, 0, 0, time.UTC)
	evening := time.Date(2024, time.January, 15, 15, 30, 0, 0, time.UTC)
	midnight := time.Date(2024, time.January, 15, 0, 15, 0, 0, time.UTC)
	noon := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "09:05", FormatClock(morning, models.TimeFormat24h))
	assert.Equal(t, "15:30", FormatClock(evening, models.TimeFormat24h))
	assert.Equal(t, "09:05 AM", FormatClock(morning, models.TimeFormat12h))
	assert.Equal(t, "03:30 PM", FormatClock(evening, models.TimeFormat12h))
	assert.Equal(t, "12:15 AM", FormatClock(midnight, models.TimeFormat12h))
	assert.Equal(t, "12:00 PM", FormatClock(noon, models.TimeFormat12h))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "15.01.2024.", FormatDate(d))
}

func TestFormatDateTime(t *testing.T) {
	d := time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "15.01.2024. 14:30", FormatDateTime(d, models.TimeFormat24h))
	assert.Equal(t, "15.01.2024. 02:30 PM", FormatDateTime(d, models.TimeFormat12h))
}

func TestConfirmation_SameDayShowsOnlyTime(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	at := time.Date(2024, time.January, 15, 15, 0, 0, 0, time.UTC)

	got := Confirmation("✓", "Coffee", at, models.TimeFormat24h, now)
	assert.Equal(t, "✓ Coffee > 15:00", got)
}

func TestConfirmation_OtherDayShowsWeekdayAndDate(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	at := time.Date(2024, time.January, 16, 15, 0, 0, 0, time.UTC)

	got := Confirmation("✓", "Coffee", at, models.TimeFormat24h, now)
	assert.Equal(t, "✓ Coffee > Tue 16.01.2024. 15:00", got)
}

func TestConfirmation_PostponePrefix(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	at := time.Date(2024, time.January, 15, 12, 30, 0, 0, time.UTC)

	got := Confirmation("⏰", "Coffee", at, models.TimeFormat12h, now)
	assert.Equal(t, "⏰ Coffee > 12:30 PM", got)
}
