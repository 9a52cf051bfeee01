package recurrence

import (
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/teambition/rrule-go"
)

var fromRRuleWeekday = map[rrule.Weekday]time.Weekday{
	rrule.MO: time.Monday,
	rrule.TU: time.Tuesday,
	rrule.WE: time.Wednesday,
	rrule.TH: time.Thursday,
	rrule.FR: time.Friday,
	rrule.SA: time.Saturday,
	rrule.SU: time.Sunday,
}

// Decode parses a stored RRULE string back into a Rule. Only the four rule
// shapes reminders use are accepted; anything else is an error so a corrupt
// row surfaces instead of silently firing on the wrong days.
func Decode(s string) (Rule, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "RRULE:")
	if s == "" {
		return nil, fmt.Errorf("empty recurrence rule")
	}

	opt, err := rrule.StrToROption(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recurrence rule %q: %w", s, err)
	}

	switch opt.Freq {
	case rrule.DAILY:
		// INTERVAL=1 and no interval both mean plain daily.
		if opt.Interval <= 1 {
			return Daily{}, nil
		}
		iv, err := NewInterval(opt.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", s, err)
		}
		return iv, nil

	case rrule.WEEKLY:
		if opt.Interval > 1 {
			return nil, fmt.Errorf("unsupported weekly interval in rule %q", s)
		}
		days := mapset.NewSet[time.Weekday]()
		for _, wd := range opt.Byweekday {
			d, ok := fromRRuleWeekday[wd]
			if !ok {
				return nil, fmt.Errorf("unsupported weekday in rule %q", s)
			}
			days.Add(d)
		}
		return Weekly{Days: days}, nil

	case rrule.MONTHLY:
		if opt.Interval > 1 {
			return nil, fmt.Errorf("unsupported monthly interval in rule %q", s)
		}
		if len(opt.Bymonthday) != 1 {
			return nil, fmt.Errorf("monthly rule %q needs exactly one BYMONTHDAY", s)
		}
		m, err := NewMonthly(opt.Bymonthday[0])
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", s, err)
		}
		return m, nil
	}

	return nil, fmt.Errorf("unsupported recurrence rule %q", s)
}
