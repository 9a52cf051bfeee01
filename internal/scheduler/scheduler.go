// Package scheduler polls for due reminders and delivers them.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/i18n"
	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/recurrence"
	"github.com/kosmosbot/kosmos/internal/transport"
)

// Store is the reminder persistence the scheduler drives.
type Store interface {
	GetDue(ctx context.Context, now time.Time) ([]*models.Reminder, error)
	MarkSent(ctx context.Context, id int64) error
	Reschedule(ctx context.Context, id int64, scheduledAt time.Time) error
}

// Sender delivers one message to a chat.
type Sender interface {
	Send(chatID int64, text, parseMode string, keyboard [][]transport.Button) error
}

// Monitor records send outcomes for network health tracking.
type Monitor interface {
	RecordSuccess(operation string)
	RecordFailure(operation, message string)
}

type Scheduler struct {
	store         Store
	sender        Sender
	monitor       Monitor
	log           *zap.Logger
	checkInterval time.Duration
	notifyCh      chan struct{}
}

func New(store Store, sender Sender, monitor Monitor, checkInterval time.Duration, log *zap.Logger) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = time.Minute
	}
	return &Scheduler{
		store:         store,
		sender:        sender,
		monitor:       monitor,
		log:           log,
		checkInterval: checkInterval,
		notifyCh:      make(chan struct{}, 1),
	}
}

// Notify triggers an immediate check. Non-blocking if a check is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// Channel already has a pending notification, skip
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("scheduler started", zap.Duration("check_interval", s.checkInterval))
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Wait a bit for migrations to complete before first check
	select {
	case <-ctx.Done():
		return
	case <-time.After(2 * time.Second):
	}

	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.check(ctx)
		}
	}
}

func (s *Scheduler) check(ctx context.Context) {
	due, err := s.store.GetDue(ctx, time.Now())
	if err != nil {
		s.log.Error("failed to get due reminders", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}
	s.log.Info("due reminders found", zap.Int("count", len(due)))

	// Each reminder is processed on its own; one failure never aborts the
	// batch.
	for _, reminder := range due {
		s.fire(ctx, reminder)
	}
}

// fire delivers one reminder and advances its state. A send failure leaves
// the row pending, so the next poll tick retries delivery.
func (s *Scheduler) fire(ctx context.Context, reminder *models.Reminder) {
	text := "🔔 " + reminder.MessageText
	keyboard := PostponeKeyboard(reminder.ID, reminder.Language)

	if err := s.sender.Send(reminder.UserID, text, "Markdown", keyboard); err != nil {
		if transport.IsTransient(err) {
			s.monitor.RecordFailure("send_reminder", err.Error())
		}
		s.log.Error("failed to send reminder",
			zap.Int64("reminder_id", reminder.ID),
			zap.Int64("user_id", reminder.UserID),
			zap.Error(err))
		return
	}
	s.monitor.RecordSuccess("send_reminder")

	if reminder.IsRecurring {
		s.advance(ctx, reminder)
		return
	}
	if err := s.store.MarkSent(ctx, reminder.ID); err != nil {
		s.log.Error("failed to mark reminder sent",
			zap.Int64("reminder_id", reminder.ID), zap.Error(err))
	}
}

// advance moves a recurring reminder to its next occurrence. The next time
// derives from the stored fire time, not the wall clock, so a late delivery
// cannot drift the schedule.
func (s *Scheduler) advance(ctx context.Context, reminder *models.Reminder) {
	var next time.Time
	rule, err := recurrence.Decode(reminder.RecurrenceRule)
	if err != nil {
		// A corrupt rule keeps the reminder alive daily instead of
		// silently dropping it.
		s.log.Error("failed to decode recurrence rule",
			zap.Int64("reminder_id", reminder.ID),
			zap.String("rule", reminder.RecurrenceRule),
			zap.Error(err))
		next = reminder.ScheduledAt.AddDate(0, 0, 1)
	} else {
		next = rule.Next(reminder.ScheduledAt)
	}

	if err := s.store.Reschedule(ctx, reminder.ID, next); err != nil {
		s.log.Error("failed to reschedule recurring reminder",
			zap.Int64("reminder_id", reminder.ID), zap.Error(err))
		return
	}
	s.log.Info("recurring reminder rescheduled",
		zap.Int64("reminder_id", reminder.ID),
		zap.Time("next", next))
}

// PostponeKeyboard builds the snooze options attached to every reminder
// notification. Callback data carries the reminder id as "postpone_<id>_<key>".
func PostponeKeyboard(reminderID int64, lang string) [][]transport.Button {
	return [][]transport.Button{
		{
			{Label: "15 min", Data: fmt.Sprintf("postpone_%d_15m", reminderID)},
			{Label: "30 min", Data: fmt.Sprintf("postpone_%d_30m", reminderID)},
			{Label: "1h", Data: fmt.Sprintf("postpone_%d_1h", reminderID)},
		},
		{
			{Label: "3h", Data: fmt.Sprintf("postpone_%d_3h", reminderID)},
			{Label: i18n.T(lang, "postpone_1d"), Data: fmt.Sprintf("postpone_%d_1d", reminderID)},
			{Label: i18n.T(lang, "postpone_custom"), Data: fmt.Sprintf("postpone_%d_custom", reminderID)},
		},
	}
}
