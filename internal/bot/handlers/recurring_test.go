package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmosbot/kosmos/internal/recurrence"
)

func TestParseRecurringArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		wantRule string
		wantRest []string
	}{
		{"daily", "daily 09:00 Take vitamins", "FREQ=DAILY", []string{"09:00", "Take", "vitamins"}},
		{"interval", "every 3 09:00 Water plants", "FREQ=DAILY;INTERVAL=3", []string{"09:00", "Water", "plants"}},
		{"interval one is daily", "every 1 09:00 x", "FREQ=DAILY", []string{"09:00", "x"}},
		{"weekly", "weekly mon,fri 18:00 Gym", "FREQ=WEEKLY;BYDAY=MO,FR", []string{"18:00", "Gym"}},
		{"weekly serbian days", "weekly pon,sre 18:00 Trening", "FREQ=WEEKLY;BYDAY=MO,WE", []string{"18:00", "Trening"}},
		{"monthly", "monthly 15 12:00 Pay rent", "FREQ=MONTHLY;BYMONTHDAY=15", []string{"12:00", "Pay", "rent"}},
		{"raw rrule", "RRULE:FREQ=DAILY;INTERVAL=2 08:00 Meds", "FREQ=DAILY;INTERVAL=2", []string{"08:00", "Meds"}},
		{"case insensitive keyword", "Daily 09:00 x", "FREQ=DAILY", []string{"09:00", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, rest, err := parseRecurringArgs(strings.Fields(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, rule.RRule())
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseRecurringArgsRejectsBadClauses(t *testing.T) {
	bad := []string{
		"",
		"sometimes 09:00 x",
		"every 09:00 x",
		"every abc 09:00 x",
		"every 0 09:00 x",
		"every 400 09:00 x",
		"weekly 09:00",
		"weekly xyz 09:00 x",
		"monthly 32 12:00 x",
		"monthly abc 12:00 x",
		"RRULE:FREQ=YEARLY 09:00 x",
	}
	for _, args := range bad {
		_, _, err := parseRecurringArgs(strings.Fields(args))
		assert.Error(t, err, "args=%q", args)
	}
}

func TestParseRecurringArgsWeeklyRule(t *testing.T) {
	rule, _, err := parseRecurringArgs(strings.Fields("weekly sat,sun 10:00 Rest"))
	require.NoError(t, err)
	weekly, ok := rule.(recurrence.Weekly)
	require.True(t, ok)
	assert.Equal(t, 2, weekly.Days.Cardinality())
}
