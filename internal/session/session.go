package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/quiz"
	"wordbank-backend/internal/scheduler"
)

type State string

const (
	StateActive    State = "active"
	StateCompleted State = "completed"
)

// ErrInvalidState marks a session operation invoked out of sequence. The
// caller recovers by restarting the session.
type ErrInvalidState struct{ Message string }

func (e *ErrInvalidState) Error() string { return e.Message }

// Session is one bounded run through a fixed queue of due cards. The queue is
// snapshotted at start and never re-queried; all mutation happens inside the
// transition methods under the session lock.
type Session struct {
	ID        uuid.UUID
	Mode      quiz.Mode
	CreatedAt time.Time

	mu          sync.Mutex
	queue       []models.Flashcard
	cursor      int
	correct     int
	incorrect   int
	current     *models.Question
	rng         *rand.Rand
	lastTouched time.Time
}

// Progress is a read-only snapshot exposed to the client.
type Progress struct {
	ID        uuid.UUID `json:"id"`
	State     State     `json:"state"`
	Mode      string    `json:"mode"`
	Total     int       `json:"total"`
	Cursor    int       `json:"cursor"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
}

// SubmitResult carries both outcomes of grading one answer: the feedback for
// the learner and the recomputed schedule the caller still has to persist.
type SubmitResult struct {
	Correct       bool
	CorrectAnswer string
	Card          models.Flashcard
	NewSchedule   scheduler.State
}

func New(mode quiz.Mode, cards []models.Flashcard, now time.Time) *Session {
	return &Session{
		ID:          uuid.New(),
		Mode:        mode,
		CreatedAt:   now,
		queue:       cards,
		rng:         rand.New(rand.NewSource(now.UnixNano())),
		lastTouched: now,
	}
}

func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		ID:        s.ID,
		State:     s.stateLocked(),
		Mode:      string(s.Mode),
		Total:     len(s.queue),
		Cursor:    s.cursor,
		Correct:   s.correct,
		Incorrect: s.incorrect,
	}
}

func (s *Session) stateLocked() State {
	if s.cursor >= len(s.queue) {
		return StateCompleted
	}
	return StateActive
}

// Next issues a question for the card under the cursor. While a question is
// outstanding it is returned again unchanged, so at most one question exists
// per session at a time. done is true once the cursor has walked off the queue.
func (s *Session) Next() (q *models.Question, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextLocked()
}

func (s *Session) nextLocked() (*models.Question, bool) {
	if s.cursor >= len(s.queue) {
		return nil, true
	}
	if s.current == nil {
		built := quiz.Build(s.queue[s.cursor], s.queue, s.Mode, s.rng)
		s.current = &built
	}
	return s.current, false
}

// Submit grades the outstanding question and recomputes the card's schedule.
// It clears the outstanding question but does not advance the cursor; moving
// on is an explicit, separate action so the learner can review feedback first.
func (s *Session) Submit(questionID uuid.UUID, value string, today time.Time) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return SubmitResult{}, &ErrInvalidState{Message: "no question is outstanding"}
	}
	if s.current.ID != questionID {
		return SubmitResult{}, &ErrInvalidState{Message: fmt.Sprintf("question %s is not the outstanding question", questionID)}
	}

	card := s.queue[s.cursor]
	correct := quiz.Grade(card, s.Mode, value)
	if correct {
		s.correct++
	} else {
		s.incorrect++
	}

	next := scheduler.Update(scheduler.State{
		EaseFactor:   card.EaseFactor,
		IntervalDays: card.IntervalDays,
		Repetitions:  card.Repetitions,
		NextReview:   card.NextReviewAt,
	}, correct, today)

	// Keep the in-queue copy current so a later distractor draw or re-grade
	// in this session sees the updated state.
	s.queue[s.cursor].EaseFactor = next.EaseFactor
	s.queue[s.cursor].IntervalDays = next.IntervalDays
	s.queue[s.cursor].Repetitions = next.Repetitions
	s.queue[s.cursor].NextReviewAt = next.NextReview

	s.current = nil

	return SubmitResult{
		Correct:       correct,
		CorrectAnswer: quiz.ExpectedAnswer(card, s.Mode),
		Card:          s.queue[s.cursor],
		NewSchedule:   next,
	}, nil
}

// Advance moves the cursor to the next card and issues its question. Advancing
// past an unanswered question abandons it ungraded. On a completed session
// Advance is a no-op that reports done again, same as Next: completion is a
// terminal summary the client may re-fetch, not a conflict.
func (s *Session) Advance() (q *models.Question, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor < len(s.queue) {
		s.cursor++
	}
	s.current = nil
	return s.nextLocked()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastTouched = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouched
}
