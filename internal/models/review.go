package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewEvent is pushed onto queue:review-events after each graded answer and
// consumed by the worker pool, which writes the history row and fans the event
// out over pub/sub.
type ReviewEvent struct {
	CardID       uuid.UUID `json:"card_id"`
	Word         string    `json:"word"`
	Correct      bool      `json:"correct"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}

type ReviewLog struct {
	ID           uuid.UUID `json:"id"`
	CardID       uuid.UUID `json:"card_id"`
	Correct      bool      `json:"correct"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}

// WebSocket message envelope
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
