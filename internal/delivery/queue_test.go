package delivery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/models"
	"github.com/kosmosbot/kosmos/internal/transport"
)

type cleanupCall struct {
	olderThan  time.Time
	minRetries int
}

type fakeStore struct {
	pending    []*models.PendingMessage
	pendingErr error
	retried    []int64
	deleted    []int64
	cleanups   []cleanupCall
	cleanupN   int64
}

func (f *fakeStore) Pending(_ context.Context, _ int) ([]*models.PendingMessage, error) {
	return f.pending, f.pendingErr
}

func (f *fakeStore) MarkRetry(_ context.Context, id int64) error {
	f.retried = append(f.retried, id)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) Cleanup(_ context.Context, olderThan time.Time, minRetries int) (int64, error) {
	f.cleanups = append(f.cleanups, cleanupCall{olderThan: olderThan, minRetries: minRetries})
	return f.cleanupN, nil
}

type fakeSender struct {
	sent []int64
	fail map[int64]error
}

func (f *fakeSender) Send(chatID int64, _, _ string, _ [][]transport.Button) error {
	f.sent = append(f.sent, chatID)
	return f.fail[chatID]
}

type fakeMonitor struct {
	successes []string
	failures  []string
}

func (f *fakeMonitor) RecordSuccess(operation string) {
	f.successes = append(f.successes, operation)
}

func (f *fakeMonitor) RecordFailure(operation, _ string) {
	f.failures = append(f.failures, operation)
}

func newTestQueue(store *fakeStore, sender *fakeSender, monitor *fakeMonitor) *Queue {
	return New(store, sender, monitor, 30*time.Second, 7*24*time.Hour, 5, zap.NewNop())
}

func pendingMsg(id, userID int64, retryCount int, lastRetryAt *time.Time) *models.PendingMessage {
	return &models.PendingMessage{
		ID:          id,
		UserID:      userID,
		MessageText: fmt.Sprintf("message %d", id),
		MessageType: models.MessageTypeConfirmation,
		RetryCount:  retryCount,
		LastRetryAt: lastRetryAt,
	}
}

func TestDelayClampsToLastEntry(t *testing.T) {
	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{-1, 30 * time.Second},
		{0, 30 * time.Second},
		{1, time.Minute},
		{2, 2 * time.Minute},
		{3, 5 * time.Minute},
		{4, 10 * time.Minute},
		{5, 10 * time.Minute},
		{100, 10 * time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Delay(tt.retryCount), "retryCount=%d", tt.retryCount)
	}
}

func TestEligible(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name        string
		lastRetryAt *time.Time
		retryCount  int
		want        bool
	}{
		{"never retried", nil, 0, true},
		{"first retry too soon", ago(10 * time.Second), 0, false},
		{"first retry at boundary", ago(30 * time.Second), 0, true},
		{"second retry too soon", ago(45 * time.Second), 1, false},
		{"second retry after a minute", ago(time.Minute), 1, true},
		{"deep retry waits ten minutes", ago(9 * time.Minute), 4, false},
		{"deep retry after ten minutes", ago(10 * time.Minute), 4, true},
		{"count past table uses last delay", ago(5 * time.Minute), 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.lastRetryAt, tt.retryCount, now))
		})
	}
}

func TestDrainDeliversAndDeletes(t *testing.T) {
	store := &fakeStore{pending: []*models.PendingMessage{pendingMsg(7, 100, 2, nil)}}
	sender := &fakeSender{fail: map[int64]error{}}
	monitor := &fakeMonitor{}
	q := newTestQueue(store, sender, monitor)

	q.DrainOnce(context.Background(), time.Now())

	assert.Equal(t, []int64{100}, sender.sent)
	assert.Equal(t, []int64{7}, store.deleted)
	assert.Empty(t, store.retried)
	assert.Equal(t, []string{"pending_message_7"}, monitor.successes)
	assert.Empty(t, monitor.failures)
}

func TestDrainTransientFailureMarksRetryAndReports(t *testing.T) {
	store := &fakeStore{pending: []*models.PendingMessage{pendingMsg(7, 100, 0, nil)}}
	sender := &fakeSender{fail: map[int64]error{100: context.DeadlineExceeded}}
	monitor := &fakeMonitor{}
	q := newTestQueue(store, sender, monitor)

	q.DrainOnce(context.Background(), time.Now())

	assert.Empty(t, store.deleted)
	assert.Equal(t, []int64{7}, store.retried)
	assert.Equal(t, []string{"pending_message_7"}, monitor.failures)
	assert.Empty(t, monitor.successes)
}

func TestDrainPermanentFailureSkipsMonitor(t *testing.T) {
	store := &fakeStore{pending: []*models.PendingMessage{pendingMsg(7, 100, 0, nil)}}
	sender := &fakeSender{fail: map[int64]error{100: errors.New("Forbidden: bot was blocked by the user")}}
	monitor := &fakeMonitor{}
	q := newTestQueue(store, sender, monitor)

	q.DrainOnce(context.Background(), time.Now())

	assert.Empty(t, store.deleted)
	assert.Equal(t, []int64{7}, store.retried)
	assert.Empty(t, monitor.failures)
	assert.Empty(t, monitor.successes)
}

func TestDrainSkipsMessagesInsideBackoffWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	justRetried := now.Add(-5 * time.Second)
	store := &fakeStore{pending: []*models.PendingMessage{pendingMsg(7, 100, 1, &justRetried)}}
	sender := &fakeSender{fail: map[int64]error{}}
	monitor := &fakeMonitor{}
	q := newTestQueue(store, sender, monitor)

	q.DrainOnce(context.Background(), now)

	assert.Empty(t, sender.sent)
	assert.Empty(t, store.deleted)
	assert.Empty(t, store.retried)
}

func TestDrainOneFailureDoesNotAbortThePass(t *testing.T) {
	store := &fakeStore{pending: []*models.PendingMessage{
		pendingMsg(1, 100, 0, nil),
		pendingMsg(2, 200, 0, nil),
		pendingMsg(3, 300, 0, nil),
	}}
	sender := &fakeSender{fail: map[int64]error{200: errors.New("Bad Request: chat not found")}}
	monitor := &fakeMonitor{}
	q := newTestQueue(store, sender, monitor)

	q.DrainOnce(context.Background(), time.Now())

	assert.Equal(t, []int64{100, 200, 300}, sender.sent)
	assert.Equal(t, []int64{1, 3}, store.deleted)
	assert.Equal(t, []int64{2}, store.retried)
}

func TestCleanupOncePassesHorizonAndCeiling(t *testing.T) {
	store := &fakeStore{cleanupN: 3}
	q := newTestQueue(store, &fakeSender{}, &fakeMonitor{})

	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	q.CleanupOnce(context.Background(), now)

	require.Len(t, store.cleanups, 1)
	assert.Equal(t, now.Add(-7*24*time.Hour), store.cleanups[0].olderThan)
	assert.Equal(t, 5, store.cleanups[0].minRetries)
}
