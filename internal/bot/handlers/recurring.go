package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/recurrence"
	"github.com/kosmosbot/kosmos/internal/timeparse"
)

// handleRecurring creates a recurring reminder from a single command:
//
//	/recurring daily 09:00 Take vitamins
//	/recurring every 3 09:00 Water plants
//	/recurring weekly mon,fri 18:00 Gym
//	/recurring monthly 15 12:00 Pay rent
//	/recurring RRULE:FREQ=DAILY 09:00 Take vitamins
func (h *Handlers) handleRecurring(ctx context.Context, msg *tgbotapi.Message, user *models.User) {
	args := strings.Fields(msg.CommandArguments())

	rule, rest, err := parseRecurringArgs(args)
	if err != nil {
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "recurring_usage"), "Markdown")
		return
	}

	if len(rest) < 2 {
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "recurring_usage"), "Markdown")
		return
	}
	hour, minute, ok := timeparse.ParseClock(rest[0])
	if !ok {
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "recurring_usage"), "Markdown")
		return
	}
	text := strings.Join(rest[1:], " ")

	now := h.localNow(user)
	first := recurrence.FirstOccurrence(rule, now, hour, minute)

	reminder := &models.Reminder{
		UserID:         user.TelegramID,
		MessageText:    text,
		ScheduledAt:    first,
		IsRecurring:    true,
		RecurrenceRule: rule.RRule(),
	}
	if err := h.repos.Reminder.Create(ctx, reminder); err != nil {
		h.log.Error("failed to create recurring reminder", zap.Int64("user_id", user.TelegramID), zap.Error(err))
		h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "error_occurred"), "")
		return
	}
	h.sched.Notify()

	h.log.Info("recurring reminder created",
		zap.Int64("reminder_id", reminder.ID),
		zap.Int64("user_id", user.TelegramID),
		zap.String("rule", reminder.RecurrenceRule),
		zap.Time("first", first))

	h.sendMessage(msg.Chat.ID, i18n.T(user.Language, "recurring_created",
		"text", text,
		"description", rule.Describe(user.Language),
		"first", timeparse.FormatDateTime(first, user.TimeFormat),
	), "Markdown")
}

// parseRecurringArgs consumes the recurrence clause from the front of the
// argument list and returns the rule plus the remaining tokens (time and
// reminder text).
func parseRecurringArgs(args []string) (recurrence.Rule, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("missing recurrence clause")
	}

	head := args[0]
	switch {
	case strings.EqualFold(head, "daily"):
		return recurrence.Daily{}, args[1:], nil

	case strings.EqualFold(head, "every"):
		if len(args) < 2 {
			return nil, nil, fmt.Errorf("missing interval")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("bad interval %q", args[1])
		}
		rule, err := recurrence.NewInterval(n)
		if err != nil {
			return nil, nil, err
		}
		return rule, args[2:], nil

	case strings.EqualFold(head, "weekly"):
		if len(args) < 2 {
			return nil, nil, fmt.Errorf("missing weekday list")
		}
		rule, err := recurrence.ParseWeekdays(args[1])
		if err != nil {
			return nil, nil, err
		}
		return rule, args[2:], nil

	case strings.EqualFold(head, "monthly"):
		if len(args) < 2 {
			return nil, nil, fmt.Errorf("missing day of month")
		}
		day, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("bad day of month %q", args[1])
		}
		rule, err := recurrence.NewMonthly(day)
		if err != nil {
			return nil, nil, err
		}
		return rule, args[2:], nil

	case strings.HasPrefix(strings.ToUpper(head), "RRULE:"):
		rule, err := recurrence.Decode(head)
		if err != nil {
			return nil, nil, err
		}
		return rule, args[1:], nil
	}

	return nil, nil, fmt.Errorf("unknown recurrence %q", head)
}
