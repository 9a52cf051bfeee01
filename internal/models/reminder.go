package models

import "time"

// Reminder lifecycle states.
const (
	StatusPending   = "pending"
	StatusSent      = "sent"
	StatusCancelled = "cancelled"
)

// Reminder is a single scheduled notification. ScheduledAt is a naive local
// wall-clock time in the owner's timezone; it is never converted to UTC.
type Reminder struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	MessageText    string    `json:"message_text"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Status         string    `json:"status"`
	IsRecurring    bool      `json:"is_recurring"`
	RecurrenceRule string    `json:"recurrence_rule"` // RFC 5545 RRULE, empty for one-shot
	CreatedAt      time.Time `json:"created_at"`

	// Owner preferences joined in by due-reminder queries so the scheduler
	// can render and deliver without extra lookups. Not stored columns.
	Timezone   string `json:"-"`
	Language   string `json:"-"`
	TimeFormat string `json:"-"`
}
