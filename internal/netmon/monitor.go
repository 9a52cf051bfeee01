// Package netmon tracks the health of outbound Telegram API calls.
//
// Delivery paths report the outcome of every send attempt. The monitor keeps
// failure counters and a short event history, raises a single log alert when
// failures pile up consecutively and clears it on the first success.
package netmon

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const historySize = 100

// Event is one recorded send attempt.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Operation string    `json:"operation"`
	Error     string    `json:"error,omitempty"`
}

// Stats is a point-in-time snapshot of the monitor's counters.
type Stats struct {
	ConsecutiveFailures int        `json:"consecutive_failures"`
	TotalFailures       int        `json:"total_failures"`
	TotalSuccesses      int        `json:"total_successes"`
	SuccessRate         float64    `json:"success_rate"` // 0..1, zero when nothing recorded yet
	LastFailure         *time.Time `json:"last_failure,omitempty"`
	AlertActive         bool       `json:"alert_active"`
}

// Monitor aggregates send outcomes. Safe for concurrent use.
type Monitor struct {
	log       *zap.Logger
	threshold int

	mu                  sync.Mutex
	consecutiveFailures int
	totalFailures       int
	totalSuccesses      int
	lastFailure         *time.Time
	alertSent           bool
	history             [historySize]Event
	next                int
	size                int
}

// New builds a monitor that alerts once threshold consecutive failures are
// reached.
func New(threshold int, log *zap.Logger) *Monitor {
	if threshold < 1 {
		threshold = 3
	}
	return &Monitor{log: log, threshold: threshold}
}

// RecordSuccess notes a successful operation and resets the consecutive
// failure streak, clearing any active alert.
func (m *Monitor) RecordSuccess(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalSuccesses++
	if m.consecutiveFailures > 0 {
		m.log.Info("network recovered",
			zap.String("operation", operation),
			zap.Int("after_failures", m.consecutiveFailures))
	}
	m.consecutiveFailures = 0
	m.alertSent = false
	m.push(Event{Timestamp: time.Now(), Success: true, Operation: operation})
}

// RecordFailure notes a failed operation. Crossing the consecutive failure
// threshold logs one alert; further failures stay quiet until a success
// clears the streak.
func (m *Monitor) RecordFailure(operation, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.consecutiveFailures++
	m.totalFailures++
	m.lastFailure = &now
	m.push(Event{Timestamp: now, Success: false, Operation: operation, Error: message})

	m.log.Warn("network operation failed",
		zap.String("operation", operation),
		zap.String("error", message),
		zap.Int("consecutive_failures", m.consecutiveFailures))

	if m.consecutiveFailures >= m.threshold && !m.alertSent {
		m.alertSent = true
		m.log.Error("NETWORK ALERT: consecutive send failures, check connectivity to the Telegram API",
			zap.Int("consecutive_failures", m.consecutiveFailures),
			zap.Int("threshold", m.threshold),
			zap.Int("total_failures", m.totalFailures),
			zap.Int("total_successes", m.totalSuccesses),
			zap.String("last_error", message))
	}
}

// Stats returns a copy of the current counters.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.totalSuccesses + m.totalFailures
	rate := 0.0
	if total > 0 {
		rate = float64(m.totalSuccesses) / float64(total)
	}
	var last *time.Time
	if m.lastFailure != nil {
		t := *m.lastFailure
		last = &t
	}
	return Stats{
		ConsecutiveFailures: m.consecutiveFailures,
		TotalFailures:       m.totalFailures,
		TotalSuccesses:      m.totalSuccesses,
		SuccessRate:         rate,
		LastFailure:         last,
		AlertActive:         m.alertSent,
	}
}

// RecentHistory returns up to n most recent events, oldest first.
func (m *Monitor) RecentHistory(n int) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n > m.size {
		n = m.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]Event, n)
	start := m.next - n
	if start < 0 {
		start += historySize
	}
	for i := 0; i < n; i++ {
		out[i] = m.history[(start+i)%historySize]
	}
	return out
}

// push appends to the ring, overwriting the oldest slot once full. Caller
// holds mu.
func (m *Monitor) push(e Event) {
	m.history[m.next] = e
	m.next = (m.next + 1) % historySize
	if m.size < historySize {
		m.size++
	}
}
