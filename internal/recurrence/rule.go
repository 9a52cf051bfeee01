// Package recurrence models the recurrence rules a reminder can carry and
// computes occurrence times with plain calendar arithmetic.
//
// Rules operate on naive local datetimes. Next derives each occurrence from
// the reminder's own previous fire time, never from the wall clock, so a
// delayed delivery cannot shift the schedule.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/timeparse"
)

// Rule is one of Daily, Interval, Weekly or Monthly. The set is closed;
// invalid combinations are unrepresentable.
type Rule interface {
	// Next returns the occurrence following current.
	Next(current time.Time) time.Time
	// RRule renders the rule as an RFC 5545 RRULE string for storage.
	RRule() string
	// Describe renders a short human-readable description, e.g. "every day"
	// or "svaka 3 dana".
	Describe(lang string) string

	sealed()
}

// Daily fires every day at the same time-of-day.
type Daily struct{}

// Interval fires every Days days.
type Interval struct {
	Days int // 1..365
}

// Weekly fires on each weekday in Days at the same time-of-day.
type Weekly struct {
	Days mapset.Set[time.Weekday]
}

// Monthly fires on day Day of every month, clamped to the last day of
// shorter months.
type Monthly struct {
	Day int // 1..31
}

func (Daily) sealed()    {}
func (Interval) sealed() {}
func (Weekly) sealed()   {}
func (Monthly) sealed()  {}

// NewInterval validates the day count of an every-n-days rule.
func NewInterval(days int) (Interval, error) {
	if days < 1 || days > 365 {
		return Interval{}, fmt.Errorf("interval must be between 1 and 365 days, got %d", days)
	}
	return Interval{Days: days}, nil
}

// NewWeekly builds a weekly rule from the given weekdays.
func NewWeekly(days ...time.Weekday) Weekly {
	return Weekly{Days: mapset.NewSet(days...)}
}

// NewMonthly validates the day-of-month of a monthly rule.
func NewMonthly(day int) (Monthly, error) {
	if day < 1 || day > 31 {
		return Monthly{}, fmt.Errorf("day of month must be between 1 and 31, got %d", day)
	}
	return Monthly{Day: day}, nil
}

// ParseWeekdays builds a Weekly rule from a comma-separated day list such as
// "mon,wed,fri" or "pon,sre". English and Serbian names both work.
func ParseWeekdays(s string) (Weekly, error) {
	days := mapset.NewSet[time.Weekday]()
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		wd, ok := timeparse.WeekdayName(tok)
		if !ok {
			return Weekly{}, fmt.Errorf("unknown weekday %q", tok)
		}
		days.Add(wd)
	}
	if days.IsEmpty() {
		return Weekly{}, fmt.Errorf("no weekdays given")
	}
	return Weekly{Days: days}, nil
}

func (Daily) Next(current time.Time) time.Time {
	return current.AddDate(0, 0, 1)
}

func (iv Interval) Next(current time.Time) time.Time {
	days := iv.Days
	if days < 1 {
		days = 1
	}
	return current.AddDate(0, 0, days)
}

// Next finds the smallest positive day offset landing on a selected
// weekday, so an occurrence never repeats on its own day. An empty day set
// degrades to one week ahead.
func (w Weekly) Next(current time.Time) time.Time {
	if w.Days == nil || w.Days.IsEmpty() {
		return current.AddDate(0, 0, 7)
	}
	for offset := 1; offset <= 7; offset++ {
		candidate := current.AddDate(0, 0, offset)
		if w.Days.Contains(candidate.Weekday()) {
			return candidate
		}
	}
	return current.AddDate(0, 0, 7)
}

// Next advances to Day in the following calendar month, clamping to the
// month's last day: a day-31 rule fires on 28 February (29 in leap years).
func (m Monthly) Next(current time.Time) time.Time {
	year, month := current.Year(), current.Month()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	day := m.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day,
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(),
		current.Location())
}

// FirstOccurrence picks the initial fire time for a newly created recurring
// reminder: the earliest datetime at hour:minute satisfying the rule and
// lying strictly after now.
func FirstOccurrence(r Rule, now time.Time, hour, minute int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	switch rule := r.(type) {
	case Interval:
		return rule.Next(today)
	case Weekly:
		if rule.Days != nil && rule.Days.Contains(today.Weekday()) && today.After(now) {
			return today
		}
		return rule.Next(today)
	case Monthly:
		day := rule.Day
		if last := daysIn(now.Year(), now.Month()); day > last {
			day = last
		}
		candidate := time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
		return rule.Next(candidate)
	default:
		if today.After(now) {
			return today
		}
		return today.AddDate(0, 0, 1)
	}
}

func (Daily) RRule() string {
	return "FREQ=DAILY"
}

func (iv Interval) RRule() string {
	if iv.Days > 1 {
		return fmt.Sprintf("FREQ=DAILY;INTERVAL=%d", iv.Days)
	}
	return "FREQ=DAILY"
}

func (w Weekly) RRule() string {
	var codes []string
	for _, d := range weekdayOrder {
		if w.Days != nil && w.Days.Contains(d) {
			codes = append(codes, rruleDayCodes[d])
		}
	}
	if len(codes) == 0 {
		return "FREQ=WEEKLY"
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ",")
}

func (m Monthly) RRule() string {
	return fmt.Sprintf("FREQ=MONTHLY;BYMONTHDAY=%d", m.Day)
}

func (Daily) Describe(lang string) string {
	if lang == models.LanguageSerbian {
		return "svaki dan"
	}
	return "every day"
}

func (iv Interval) Describe(lang string) string {
	if iv.Days <= 1 {
		return Daily{}.Describe(lang)
	}
	if lang == models.LanguageSerbian {
		return fmt.Sprintf("svaka %d dana", iv.Days)
	}
	return fmt.Sprintf("every %d days", iv.Days)
}

func (w Weekly) Describe(lang string) string {
	abbrevs := weekdayAbbrevEN
	if lang == models.LanguageSerbian {
		abbrevs = weekdayAbbrevSR
	}
	var names []string
	for _, d := range weekdayOrder {
		if w.Days != nil && w.Days.Contains(d) {
			names = append(names, abbrevs[d])
		}
	}
	return strings.Join(names, ", ")
}

func (m Monthly) Describe(lang string) string {
	if lang == models.LanguageSerbian {
		return fmt.Sprintf("svakog %d. u mesecu", m.Day)
	}
	return fmt.Sprintf("every %d%s of month", m.Day, ordinalSuffix(m.Day))
}

// Display order is Monday-first, matching the Serbian week.
var weekdayOrder = [...]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var rruleDayCodes = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

var weekdayAbbrevEN = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

var weekdayAbbrevSR = map[time.Weekday]string{
	time.Monday:    "Pon",
	time.Tuesday:   "Uto",
	time.Wednesday: "Sre",
	time.Thursday:  "Čet",
	time.Friday:    "Pet",
	time.Saturday:  "Sub",
	time.Sunday:    "Ned",
}

func ordinalSuffix(n int) string {
	switch {
	case n%10 == 1 && n != 11:
		return "st"
	case n%10 == 2 && n != 12:
		return "nd"
	case n%10 == 3 && n != 13:
		return "rd"
	}
	return "th"
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
