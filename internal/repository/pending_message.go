package repository

import (
	"context"
	"time"

	"github.com/kosmosbot/kosmos/internal/database"
	"github.com/kosmosbot/kosmos/internal/models"
)

type PendingMessageRepository struct {
	db *database.DB
}

func NewPendingMessageRepository(db *database.DB) *PendingMessageRepository {
	return &PendingMessageRepository{db: db}
}

func (r *PendingMessageRepository) Enqueue(ctx context.Context, msg *models.PendingMessage) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO pending_messages (user_id, message_text, message_type, parse_mode)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, retry_count, created_at`,
		msg.UserID, msg.MessageText, msg.MessageType, msg.ParseMode,
	).Scan(&msg.ID, &msg.RetryCount, &msg.CreatedAt)
}

// Pending returns undelivered messages still under the retry limit, oldest
// first so redelivery keeps the original send order.
func (r *PendingMessageRepository) Pending(ctx context.Context, maxRetries int) ([]*models.PendingMessage, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, message_text, message_type, parse_mode, retry_count, last_retry_at, created_at
		 FROM pending_messages WHERE retry_count < $1
		 ORDER BY created_at ASC`,
		maxRetries,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*models.PendingMessage
	for rows.Next() {
		msg := &models.PendingMessage{}
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.MessageText, &msg.MessageType,
			&msg.ParseMode, &msg.RetryCount, &msg.LastRetryAt, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (r *PendingMessageRepository) MarkRetry(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE pending_messages SET retry_count = retry_count + 1, last_retry_at = now() WHERE id = $1`,
		id,
	)
	return err
}

func (r *PendingMessageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM pending_messages WHERE id = $1`,
		id,
	)
	return err
}

// Cleanup drops messages old enough and retried often enough to be given up
// on, returning how many were removed.
func (r *PendingMessageRepository) Cleanup(ctx context.Context, olderThan time.Time, minRetries int) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM pending_messages WHERE created_at < $1 AND retry_count >= $2`,
		olderThan, minRetries,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PendingMessageRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pending_messages`).Scan(&n)
	return n, err
}
