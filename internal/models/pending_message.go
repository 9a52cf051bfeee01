package models

import "time"

// Message types carried by the delivery queue.
const (
	MessageTypeConfirmation = "reminder_confirmation"
)

// PendingMessage is an undelivered outbound message waiting for a retry.
// LastRetryAt is nil until the first redelivery attempt.
type PendingMessage struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	MessageText string     `json:"message_text"`
	MessageType string     `json:"message_type"`
	ParseMode   string     `json:"parse_mode"`
	RetryCount  int        `json:"retry_count"`
	LastRetryAt *time.Time `json:"last_retry_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
