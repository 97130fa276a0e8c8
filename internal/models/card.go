package models

import (
	"time"

	"github.com/google/uuid"
)

// Definition is one bilingual gloss pair attached to a flashcard.
type Definition struct {
	English    string `json:"english"`
	Vietnamese string `json:"vietnamese"`
}

type Flashcard struct {
	ID             uuid.UUID    `json:"id"`
	Word           string       `json:"word"`
	Meaning        string       `json:"meaning"`
	Definitions    []Definition `json:"definitions"`
	ImageURL       *string      `json:"image_url"`
	AudioURL       *string      `json:"audio_url"`
	Phonetic       *string      `json:"phonetic"`
	PartOfSpeech   *string      `json:"part_of_speech"`
	EaseFactor     float64      `json:"ease_factor"`
	IntervalDays   int          `json:"interval_days"`
	Repetitions    int          `json:"repetitions"`
	NextReviewAt   time.Time    `json:"next_review_at"`
	CreatedAt      time.Time    `json:"created_at"`
	LastReviewedAt *time.Time   `json:"last_reviewed_at"`
}

// NewCard is the canonical creation record produced by the import boundary.
// Scheduling fields are filled with defaults at insert time.
type NewCard struct {
	Word     string
	Meaning  string
	ImageURL *string
}

// UpdateScheduleRequest is the legacy card mutation payload. All four fields
// are required, so they are pointers to distinguish absent from zero.
type UpdateScheduleRequest struct {
	EaseFactor     *float64   `json:"ease_factor" validate:"required,gte=1.3,lte=3.0"`
	IntervalDays   *int       `json:"interval" validate:"required,gte=0"`
	Repetitions    *int       `json:"repetitions" validate:"required,gte=0"`
	NextReviewDate *time.Time `json:"next_review_date" validate:"required"`
}

type ImportRequest struct {
	Entries []ImportEntry `json:"entries"`
}

type CardStats struct {
	TotalCards int `json:"total_cards"`
	DueToday   int `json:"due_today"`
	Learning   int `json:"learning"`
	Mastered   int `json:"mastered"`
	New        int `json:"new"`
}
