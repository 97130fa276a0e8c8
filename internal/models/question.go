package models

import "github.com/google/uuid"

const (
	QuestionTypeTyped = "typed"
	QuestionTypeMC    = "mc"
)

// Question is what the client sees for one review step. For typed modes the
// expected answer is included so the client can show feedback locally; for
// multiple-choice it is withheld and only the options are sent.
type Question struct {
	ID          uuid.UUID    `json:"id"`
	Type        string       `json:"type"` // "typed" | "mc"
	Prompt      string       `json:"prompt"`
	Answer      string       `json:"answer,omitempty"`
	Options     []string     `json:"options,omitempty"`
	Definitions []Definition `json:"definitions"`
	ImageURL    *string      `json:"image_url"`
	AudioURL    *string      `json:"audio_url"`
	Phonetic    *string      `json:"phonetic"`
}

type StartSessionRequest struct {
	Limit int    `json:"limit"`
	Mode  string `json:"mode" validate:"required,oneof=typed_source_to_target typed_target_to_source multiple_choice"`
}

type SubmitAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Value      string    `json:"value"`
}

type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	ScheduleSaved bool   `json:"schedule_saved"`
}
