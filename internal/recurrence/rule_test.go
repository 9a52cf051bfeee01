package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	"github.com/kosmosbot/kosmos/internal/models"
)

// Monday, 15 January 2024, 12:00 naive.
var base = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func TestDailyNext(t *testing.T) {
	next := Daily{}.Next(base)
	assert.Equal(t, time.Date(2024, time.January, 16, 12, 0, 0, 0, time.UTC), next)

	// Month boundary.
	eom := time.Date(2024, time.January, 31, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 1, 8, 30, 0, 0, time.UTC), Daily{}.Next(eom))
}

func TestIntervalNext(t *testing.T) {
	iv, err := NewInterval(3)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, 3), iv.Next(base))

	// A zero interval still advances, so a broken rule cannot loop forever.
	assert.Equal(t, base.AddDate(0, 0, 1), Interval{}.Next(base))
}

func TestIntervalValidation(t *testing.T) {
	for _, days := range []int{1, 7, 365} {
		_, err := NewInterval(days)
		assert.NoError(t, err, "interval %d", days)
	}
	for _, days := range []int{0, -1, 366} {
		_, err := NewInterval(days)
		assert.Error(t, err, "interval %d", days)
	}
}

func TestMonthlyValidation(t *testing.T) {
	for _, day := range []int{1, 15, 31} {
		_, err := NewMonthly(day)
		assert.NoError(t, err, "day %d", day)
	}
	for _, day := range []int{0, -3, 32} {
		_, err := NewMonthly(day)
		assert.Error(t, err, "day %d", day)
	}
}

func TestWeeklyNext(t *testing.T) {
	tests := []struct {
		name string
		rule Weekly
		from time.Time
		want time.Time
	}{
		{
			name: "later this week",
			rule: NewWeekly(time.Wednesday),
			from: base, // Monday
			want: time.Date(2024, time.January, 17, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "wraps past the weekend",
			rule: NewWeekly(time.Friday),
			from: time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC), // Saturday
			want: time.Date(2024, time.January, 26, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "same day only means a full week",
			rule: NewWeekly(time.Monday),
			from: base,
			want: base.AddDate(0, 0, 7),
		},
		{
			name: "earliest of several days wins",
			rule: NewWeekly(time.Sunday, time.Tuesday),
			from: base, // Monday
			want: time.Date(2024, time.January, 16, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "empty set degrades to a week",
			rule: Weekly{Days: nil},
			from: base,
			want: base.AddDate(0, 0, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Next(tt.from))
		})
	}
}

func TestMonthlyNextClampsShortMonths(t *testing.T) {
	rule, err := NewMonthly(31)
	require.NoError(t, err)

	// Leap year: 31 January advances to 29 February.
	jan := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	feb := rule.Next(jan)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC), feb)

	// The clamp never sticks: March gets its 31st back.
	assert.Equal(t, time.Date(2024, time.March, 31, 9, 0, 0, 0, time.UTC), rule.Next(feb))

	// Non-leap year.
	jan23 := time.Date(2023, time.January, 31, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, time.February, 28, 9, 0, 0, 0, time.UTC), rule.Next(jan23))
}

func TestMonthlyNextYearRollover(t *testing.T) {
	rule, err := NewMonthly(15)
	require.NoError(t, err)

	dec := time.Date(2024, time.December, 15, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.January, 15, 18, 45, 0, 0, time.UTC), rule.Next(dec))
}

func TestFirstOccurrence(t *testing.T) {
	now := base // Monday 15 January 2024, 12:00

	tests := []struct {
		name string
		rule Rule
		hour int
		min  int
		want time.Time
	}{
		{
			name: "daily later today",
			rule: Daily{},
			hour: 18, min: 0,
			want: time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name: "daily past time moves to tomorrow",
			rule: Daily{},
			hour: 9, min: 0,
			want: time.Date(2024, time.January, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "interval counts from today",
			rule: Interval{Days: 3},
			hour: 18, min: 0,
			want: time.Date(2024, time.January, 18, 18, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly later today",
			rule: NewWeekly(time.Monday),
			hour: 15, min: 30,
			want: time.Date(2024, time.January, 15, 15, 30, 0, 0, time.UTC),
		},
		{
			name: "weekly past time skips to the next selected day",
			rule: NewWeekly(time.Monday, time.Thursday),
			hour: 9, min: 0,
			want: time.Date(2024, time.January, 18, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly on another day",
			rule: NewWeekly(time.Friday),
			hour: 9, min: 0,
			want: time.Date(2024, time.January, 19, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly later this month",
			rule: Monthly{Day: 20},
			hour: 9, min: 0,
			want: time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly day already passed",
			rule: Monthly{Day: 5},
			hour: 9, min: 0,
			want: time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly clamped in the current month",
			rule: Monthly{Day: 31},
			hour: 9, min: 0,
			want: time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstOccurrence(tt.rule, now, tt.hour, tt.min))
		})
	}
}

func TestMonthlyFirstOccurrenceClampsCurrentMonth(t *testing.T) {
	// 10 February 2024: day 31 clamps to the 29th, which is still ahead.
	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	got := FirstOccurrence(Monthly{Day: 31}, now, 9, 0)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC), got)
}

func TestRRuleRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{"daily", Daily{}, "FREQ=DAILY"},
		{"interval", Interval{Days: 3}, "FREQ=DAILY;INTERVAL=3"},
		{"weekly", NewWeekly(time.Monday, time.Friday), "FREQ=WEEKLY;BYDAY=MO,FR"},
		{"weekly full week", NewWeekly(weekdayOrder[:]...), "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA,SU"},
		{"monthly", Monthly{Day: 15}, "FREQ=MONTHLY;BYMONTHDAY=15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.rule.RRule()
			assert.Equal(t, tt.want, s)

			decoded, err := Decode(s)
			require.NoError(t, err)
			if w, ok := tt.rule.(Weekly); ok {
				assert.True(t, w.Days.Equal(decoded.(Weekly).Days))
			} else {
				assert.Equal(t, tt.rule, decoded)
			}
		})
	}
}

// A one-day interval and plain daily are the same rule; encoding collapses
// them so only one stored form exists.
func TestIntervalOneCanonicalizesToDaily(t *testing.T) {
	s := Interval{Days: 1}.RRule()
	assert.Equal(t, "FREQ=DAILY", s)

	decoded, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, Daily{}, decoded)
}

func TestDecodeAcceptsRRulePrefix(t *testing.T) {
	decoded, err := Decode("RRULE:FREQ=MONTHLY;BYMONTHDAY=1")
	require.NoError(t, err)
	assert.Equal(t, Monthly{Day: 1}, decoded)
}

func TestDecodeRejectsUnsupportedRules(t *testing.T) {
	for _, s := range []string{
		"",
		"not a rule",
		"FREQ=YEARLY",
		"FREQ=HOURLY",
		"FREQ=WEEKLY;INTERVAL=2;BYDAY=MO",
		"FREQ=MONTHLY",
		"FREQ=MONTHLY;BYMONTHDAY=5,15",
		"FREQ=MONTHLY;INTERVAL=3;BYMONTHDAY=5",
		"FREQ=DAILY;INTERVAL=400",
	} {
		_, err := Decode(s)
		assert.Error(t, err, "rule %q", s)
	}
}

// The hand-rolled weekly arithmetic must agree with the rrule library's own
// iterator when stepping occurrence to occurrence.
func TestWeeklyNextMatchesRRuleIterator(t *testing.T) {
	start := base.Add(-3 * time.Hour) // Monday 09:00
	ref, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.FR},
		Dtstart:   start,
	})
	require.NoError(t, err)

	rule := NewWeekly(time.Monday, time.Friday)
	cur := start
	for i := 0; i < 6; i++ {
		want := ref.After(cur, false)
		cur = rule.Next(cur)
		assert.Equal(t, want, cur, "occurrence %d", i)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		lang string
		want string
	}{
		{"daily en", Daily{}, models.LanguageEnglish, "every day"},
		{"daily sr", Daily{}, models.LanguageSerbian, "svaki dan"},
		{"interval en", Interval{Days: 3}, models.LanguageEnglish, "every 3 days"},
		{"interval sr", Interval{Days: 3}, models.LanguageSerbian, "svaka 3 dana"},
		{"interval of one reads as daily", Interval{Days: 1}, models.LanguageEnglish, "every day"},
		{"weekly en", NewWeekly(time.Wednesday, time.Monday), models.LanguageEnglish, "Mon, Wed"},
		{"weekly sr", NewWeekly(time.Sunday, time.Wednesday), models.LanguageSerbian, "Sre, Ned"},
		{"monthly 1st", Monthly{Day: 1}, models.LanguageEnglish, "every 1st of month"},
		{"monthly 2nd", Monthly{Day: 2}, models.LanguageEnglish, "every 2nd of month"},
		{"monthly 3rd", Monthly{Day: 3}, models.LanguageEnglish, "every 3rd of month"},
		{"monthly 11th", Monthly{Day: 11}, models.LanguageEnglish, "every 11th of month"},
		{"monthly 21st", Monthly{Day: 21}, models.LanguageEnglish, "every 21st of month"},
		{"monthly sr", Monthly{Day: 15}, models.LanguageSerbian, "svakog 15. u mesecu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Describe(tt.lang))
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	w, err := ParseWeekdays("mon,wed,fri")
	require.NoError(t, err)
	assert.True(t, w.Days.Equal(NewWeekly(time.Monday, time.Wednesday, time.Friday).Days))

	w, err = ParseWeekdays("pon, sre")
	require.NoError(t, err)
	assert.True(t, w.Days.Equal(NewWeekly(time.Monday, time.Wednesday).Days))

	w, err = ParseWeekdays("saturday,ned")
	require.NoError(t, err)
	assert.True(t, w.Days.Equal(NewWeekly(time.Saturday, time.Sunday).Days))

	for _, s := range []string{"", "xyz", "mon,xyz", ","} {
		_, err := ParseWeekdays(s)
		assert.Error(t, err, "input %q", s)
	}
}
