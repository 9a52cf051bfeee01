// Package timeparse resolves free-form reminder messages such as
// "Coffee tomorrow 14:00" or "Sastanak pon 10:00" into reminder text plus a
// concrete wall-clock datetime.
//
// The grammar is fixed and bilingual (English and Serbian latin): the time
// expression must close the message, optionally preceded by a relative day
// keyword, a weekday name, or an explicit date. All datetimes produced and
// consumed here are naive local times, see Naive.
package timeparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parse failures. All of them mean the same thing to the user (the message
// was not understood); the distinction exists for tests and logs.
var (
	ErrTooShort = errors.New("message needs at least reminder text and a time")
	ErrNoTime   = errors.New("no time expression at the end of the message")
	ErrNoText   = errors.New("no reminder text before the time expression")
)

// Request is a successfully parsed reminder message.
type Request struct {
	Text        string
	ScheduledAt time.Time // naive local time
}

// Relative day keywords, in days ahead of today.
var dayOffsets = map[string]int{
	"sutra":              1,
	"tomorrow":           1,
	"prekosutra":         2,
	"dat":                2,
	"day-after-tomorrow": 2,
}

var weekdayNames = map[string]time.Weekday{
	// Serbian
	"pon": time.Monday,
	"uto": time.Tuesday,
	"sre": time.Wednesday,
	"cet": time.Thursday,
	"pet": time.Friday,
	"sub": time.Saturday,
	"ned": time.Sunday,
	// English
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,

	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var (
	clockRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	meridiemRe = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	militaryRe = regexp.MustCompile(`^(\d{4})$`)
	bareHourRe = regexp.MustCompile(`^(\d{1,2})$`)

	dateYearRe = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})[./](\d{4})$`)
	dateRe     = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})$`)
)

// Naive rebuilds t's wall-clock fields in UTC, discarding the location.
// Reminder times are stored and compared as naive local values in the
// owner's timezone; pinning them to UTC keeps the pgx timestamp codec from
// shifting the clock fields on the way to the database.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Parse extracts reminder text and a scheduled time from a user message.
// now must be the current naive local time in the user's timezone; the
// result is naive local time in the same zone.
//
// The trailing token(s) must form a time expression: "HH:MM", a bare hour,
// "7am" / "6 pm", or military "2100". The word before the time may be a
// relative day keyword ("sutra", "tomorrow"), a weekday name meaning the
// next such weekday strictly after today, or an explicit date
// ("23.12.2025.", "25.12.", "24/12"). Anything else before the time stays
// part of the reminder text. Without a day qualifier, a time-of-day that
// has already passed rolls over to tomorrow.
func Parse(message string, now time.Time) (*Request, error) {
	words := strings.Fields(message)
	if len(words) < 2 {
		return nil, ErrTooShort
	}

	var (
		hour, minute int
		haveTime     bool

		dayOffset   int
		weekday     time.Weekday
		haveWeekday bool
		date        time.Time
		haveDate    bool

		text string
	)

	if h, m, ok := ParseClock(words[len(words)-1]); ok {
		hour, minute, haveTime = h, m, true

		qualifier := words[len(words)-2]
		if off, ok := dayOffsets[strings.ToLower(qualifier)]; ok {
			dayOffset = off
			text = strings.Join(words[:len(words)-2], " ")
		} else if wd, ok := weekdayNames[strings.ToLower(qualifier)]; ok {
			weekday, haveWeekday = wd, true
			text = strings.Join(words[:len(words)-2], " ")
		} else if d, ok := parseDate(qualifier, now); ok {
			date, haveDate = d, true
			text = strings.Join(words[:len(words)-2], " ")
		} else {
			// Not a recognized qualifier, keep it in the reminder text.
			text = strings.Join(words[:len(words)-1], " ")
		}
	} else {
		// "6 PM" split across the last two words.
		joined := words[len(words)-2] + " " + words[len(words)-1]
		if h, m, ok := ParseClock(joined); ok {
			hour, minute, haveTime = h, m, true
			text = strings.Join(words[:len(words)-2], " ")
		}
	}

	if !haveTime {
		return nil, ErrNoTime
	}
	if text == "" {
		return nil, ErrNoText
	}

	var scheduled time.Time
	switch {
	case haveDate:
		scheduled = time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
	case haveWeekday:
		d := nextWeekday(weekday, now)
		scheduled = time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
	default:
		d := now.AddDate(0, 0, dayOffset)
		scheduled = time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
		// Bare times that already passed today mean tomorrow.
		if dayOffset == 0 && !scheduled.After(now) {
			scheduled = scheduled.AddDate(0, 0, 1)
		}
	}

	return &Request{Text: text, ScheduledAt: scheduled}, nil
}

// WeekdayName resolves an English or Serbian weekday name or abbreviation,
// e.g. "mon", "friday", "pon", "ned".
func WeekdayName(s string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}

// ParseClock parses a standalone time-of-day expression: "21:00", "8",
// "7am", "6 pm", "12AM" or military "2100".
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	if m := clockRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h <= 23 && min <= 59 {
			return h, min, true
		}
		return 0, 0, false
	}

	if m := meridiemRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if m[2] == "am" {
			if h == 12 {
				h = 0 // 12 AM is midnight
			}
		} else if h != 12 {
			h += 12 // 1 PM is 13:00, 12 PM stays 12:00
		}
		return h, 0, true
	}

	if m := militaryRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1][:2])
		min, _ := strconv.Atoi(m[1][2:])
		if h <= 23 && min <= 59 {
			return h, min, true
		}
		return 0, 0, false
	}

	if m := bareHourRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h <= 23 {
			return h, 0, true
		}
	}

	return 0, 0, false
}

// parseDate parses "DD.MM.YYYY", "DD.MM.YYYY.", "DD.MM", "DD.MM.",
// "DD/MM/YYYY" or "DD/MM". Dates without a year get the current year, or
// the next one if that date already passed.
func parseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimRight(strings.TrimSpace(s), ".")

	if m := dateYearRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}

	if m := dateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		d, ok := makeDate(now.Year(), month, day)
		if !ok {
			return time.Time{}, false
		}
		if d.Before(midnight(now)) {
			return makeDate(now.Year()+1, month, day)
		}
		return d, true
	}

	return time.Time{}, false
}

// makeDate builds a midnight date, rejecting values time.Date would
// silently normalize (e.g. 31.04, month 13).
func makeDate(year, month, day int) (time.Time, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nextWeekday returns now advanced to the next occurrence of target,
// always strictly after today: naming today's weekday means next week.
func nextWeekday(target time.Weekday, now time.Time) time.Time {
	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
