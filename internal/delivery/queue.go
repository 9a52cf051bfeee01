// Package delivery drains the durable retry queue of messages that could
// not be sent synchronously, with exponential backoff per message.
package delivery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/transport"
)

// Backoff between retries: 30s, 1m, 2m, 5m, 10m.
var backoffDelays = []time.Duration{
	30 * time.Second,
	time.Minute,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Delay returns the wait required after retry number retryCount. Counts past
// the table reuse its last entry.
func Delay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	if retryCount >= len(backoffDelays) {
		return backoffDelays[len(backoffDelays)-1]
	}
	return backoffDelays[retryCount]
}

// Eligible reports whether a message may be retried at now. A message that
// has never been retried is always eligible.
func Eligible(lastRetryAt *time.Time, retryCount int, now time.Time) bool {
	if lastRetryAt == nil {
		return true
	}
	return now.Sub(*lastRetryAt) >= Delay(retryCount)
}

// Store is the persistence backing the queue.
type Store interface {
	Pending(ctx context.Context, maxRetries int) ([]*models.PendingMessage, error)
	MarkRetry(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Cleanup(ctx context.Context, olderThan time.Time, minRetries int) (int64, error)
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

type Queue struct {
	store         Store
	sender        Sender
	monitor       Monitor
	log           *zap.Logger
	drainInterval time.Duration
	cleanupAge    time.Duration
	maxRetries    int
}

func New(store Store, sender Sender, monitor Monitor, drainInterval, cleanupAge time.Duration, maxRetries int, log *zap.Logger) *Queue {
	if drainInterval <= 0 {
		drainInterval = 30 * time.Second
	}
	if cleanupAge <= 0 {
		cleanupAge = 7 * 24 * time.Hour
	}
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &Queue{
		store:         store,
		sender:        sender,
		monitor:       monitor,
		log:           log,
		drainInterval: drainInterval,
		cleanupAge:    cleanupAge,
		maxRetries:    maxRetries,
	}
}

func (q *Queue) Start(ctx context.Context) {
	q.log.Info("delivery queue started", zap.Duration("drain_interval", q.drainInterval))
	drain := time.NewTicker(q.drainInterval)
	defer drain.Stop()
	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			q.log.Info("delivery queue stopped")
			return
		case <-drain.C:
			q.DrainOnce(ctx, time.Now())
		case <-cleanup.C:
			q.CleanupOnce(ctx, time.Now())
		}
	}
}

// DrainOnce runs one delivery pass, oldest message first. Messages still
// inside their backoff window are skipped; messages at the retry ceiling are
// never loaded and age out via cleanup.
func (q *Queue) DrainOnce(ctx context.Context, now time.Time) {
	msgs, err := q.store.Pending(ctx, q.maxRetries)
	if err != nil {
		q.log.Error("failed to load pending messages", zap.Error(err))
		return
	}
	if len(msgs) == 0 {
		return
	}
	q.log.Info("pending messages to deliver", zap.Int("count", len(msgs)))

	for _, msg := range msgs {
		q.deliver(ctx, msg, now)
	}
}

func (q *Queue) deliver(ctx context.Context, msg *models.PendingMessage, now time.Time) {
	if !Eligible(msg.LastRetryAt, msg.RetryCount, now) {
		return
	}

	op := fmt.Sprintf("pending_message_%d", msg.ID)
	err := q.sender.Send(msg.UserID, msg.MessageText, msg.ParseMode, nil)
	if err == nil {
		q.monitor.RecordSuccess(op)
		if err := q.store.Delete(ctx, msg.ID); err != nil {
			q.log.Error("failed to delete delivered message",
				zap.Int64("message_id", msg.ID), zap.Error(err))
		}
		q.log.Info("pending message delivered",
			zap.Int64("message_id", msg.ID),
			zap.Int64("user_id", msg.UserID),
			zap.Int("retries", msg.RetryCount))
		return
	}

	// Permanent rejections count toward the same retry ceiling; only
	// transient failures feed the network monitor.
	if transport.IsTransient(err) {
		q.monitor.RecordFailure(op, err.Error())
		q.log.Warn("network error delivering pending message",
			zap.Int64("message_id", msg.ID),
			zap.Int("retry", msg.RetryCount+1),
			zap.Error(err))
	} else {
		q.log.Error("error delivering pending message",
			zap.Int64("message_id", msg.ID),
			zap.Int("retry", msg.RetryCount+1),
			zap.Error(err))
	}
	if err := q.store.MarkRetry(ctx, msg.ID); err != nil {
		q.log.Error("failed to update retry attempt",
			zap.Int64("message_id", msg.ID), zap.Error(err))
	}
}

// CleanupOnce purges messages that aged past the horizon after exhausting
// their retries.
func (q *Queue) CleanupOnce(ctx context.Context, now time.Time) {
	n, err := q.store.Cleanup(ctx, now.Add(-q.cleanupAge), q.maxRetries)
	if err != nil {
		q.log.Error("failed to clean up old messages", zap.Error(err))
		return
	}
	if n > 0 {
		q.log.Info("cleaned up old pending messages", zap.Int64("count", n))
	}
}
