package repository

import (
	"context"
	"time"

	"github.com/kosmosbot/kosmos/internal/database"
	"github.com/kosmosbot/kosmos/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (user_id, message_text, scheduled_at, is_recurring, recurrence_rule)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at`,
		reminder.UserID, reminder.MessageText, reminder.ScheduledAt, reminder.IsRecurring, reminder.RecurrenceRule,
	).Scan(&reminder.ID, &reminder.Status, &reminder.CreatedAt)
}

func (r *ReminderRepository) GetByID(ctx context.Context, id int64) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, user_id, message_text, scheduled_at, status, is_recurring, recurrence_rule, created_at
		 FROM reminders WHERE id = $1`,
		id,
	).Scan(&reminder.ID, &reminder.UserID, &reminder.MessageText, &reminder.ScheduledAt,
		&reminder.Status, &reminder.IsRecurring, &reminder.RecurrenceRule, &reminder.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *ReminderRepository) GetByUser(ctx context.Context, userID int64, status string) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, message_text, scheduled_at, status, is_recurring, recurrence_rule, created_at
		 FROM reminders WHERE user_id = $1 AND status = $2
		 ORDER BY scheduled_at ASC`,
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.MessageText, &reminder.ScheduledAt,
			&reminder.Status, &reminder.IsRecurring, &reminder.RecurrenceRule, &reminder.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// GetDue returns pending reminders whose wall-clock time has been reached in
// their owner's timezone. now is a real instant; the conversion into each
// user's zone happens once, here, so stored times stay naive. Owner
// preferences ride along to save per-reminder lookups at delivery.
func (r *ReminderRepository) GetDue(ctx context.Context, now time.Time) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT r.id, r.user_id, r.message_text, r.scheduled_at, r.status, r.is_recurring, r.recurrence_rule, r.created_at,
		        u.timezone, u.language, u.time_format
		 FROM reminders r
		 JOIN users u ON u.telegram_id = r.user_id
		 WHERE r.status = 'pending' AND r.scheduled_at <= timezone(u.timezone, $1)
		 ORDER BY r.scheduled_at ASC`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.MessageText, &reminder.ScheduledAt,
			&reminder.Status, &reminder.IsRecurring, &reminder.RecurrenceRule, &reminder.CreatedAt,
			&reminder.Timezone, &reminder.Language, &reminder.TimeFormat); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepository) MarkSent(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET status = 'sent' WHERE id = $1`,
		id,
	)
	return err
}

// Reschedule moves a reminder and puts it back in pending, whether it was
// postponed by the user or advanced to its next recurring occurrence.
func (r *ReminderRepository) Reschedule(ctx context.Context, id int64, scheduledAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET scheduled_at = $1, status = 'pending' WHERE id = $2`,
		scheduledAt, id,
	)
	return err
}

// Delete cancels the reminder. The row is kept for history; due queries and
// listings only ever look at pending rows.
func (r *ReminderRepository) Delete(ctx context.Context, id, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET status = 'cancelled' WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return err
}

func (r *ReminderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT status, COUNT(*) FROM reminders GROUP BY status`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
