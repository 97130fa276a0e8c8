package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/quiz"
)

var day0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func makeCards(n int) []models.Flashcard {
	words := []string{"cat", "dog", "fish", "bird", "horse", "mouse", "bear"}
	meanings := []string{"con mèo", "con chó", "con cá", "con chim", "con ngựa", "con chuột", "con gấu"}
	cards := make([]models.Flashcard, n)
	for i := range cards {
		cards[i] = models.Flashcard{
			ID:           uuid.New(),
			Word:         words[i%len(words)],
			Meaning:      meanings[i%len(meanings)],
			EaseFactor:   2.5,
			IntervalDays: 0,
			Repetitions:  0,
			NextReviewAt: day0,
		}
	}
	return cards
}

func TestSessionWalkToCompletion(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(2), day0)

	p := s.Progress()
	if p.State != StateActive || p.Total != 2 || p.Cursor != 0 {
		t.Fatalf("fresh session progress = %+v", p)
	}

	q, done := s.Next()
	if done || q == nil {
		t.Fatalf("expected a first question")
	}

	// Next is idempotent while a question is outstanding.
	q2, _ := s.Next()
	if q2.ID != q.ID {
		t.Fatalf("second Next issued a different question: %s vs %s", q2.ID, q.ID)
	}

	if _, err := s.Submit(q.ID, q.Answer, day0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	q, done = s.Advance()
	if done || q == nil {
		t.Fatalf("expected a second question after advance")
	}
	if _, err := s.Submit(q.ID, "wrong", day0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, done = s.Advance(); !done {
		t.Fatalf("expected done after advancing past the last card")
	}

	p = s.Progress()
	if p.State != StateCompleted {
		t.Errorf("state = %v, want completed", p.State)
	}
	if p.Correct != 1 || p.Incorrect != 1 {
		t.Errorf("counters = %d/%d, want 1/1", p.Correct, p.Incorrect)
	}
}

func TestSubmitWithoutQuestionIsInvalidState(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(1), day0)

	_, err := s.Submit(uuid.New(), "cat", day0)
	var invalid *ErrInvalidState
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
}

func TestSubmitWrongQuestionIDIsInvalidState(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(1), day0)
	if _, done := s.Next(); done {
		t.Fatal("expected a question")
	}

	_, err := s.Submit(uuid.New(), "cat", day0)
	var invalid *ErrInvalidState
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want ErrInvalidState for stale question id", err)
	}
}

func TestSubmitDoesNotAdvanceCursor(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(2), day0)
	q, _ := s.Next()

	if _, err := s.Submit(q.ID, q.Answer, day0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if p := s.Progress(); p.Cursor != 0 {
		t.Errorf("cursor = %d after submit, want 0 (advance is explicit)", p.Cursor)
	}

	// But submitting again without a fresh question must fail.
	if _, err := s.Submit(q.ID, q.Answer, day0); err == nil {
		t.Errorf("expected InvalidState on double submit")
	}
}

func TestSubmitReschedulesCard(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(1), day0)
	q, _ := s.Next()

	res, err := s.Submit(q.ID, q.Answer, day0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Correct {
		t.Fatalf("expected correct grade for the expected answer")
	}
	if res.NewSchedule.Repetitions != 1 || res.NewSchedule.IntervalDays != 1 {
		t.Errorf("schedule = %+v, want reps=1 interval=1", res.NewSchedule)
	}
	if !res.NewSchedule.NextReview.Equal(day0.AddDate(0, 0, 1)) {
		t.Errorf("next review = %v, want day+1", res.NewSchedule.NextReview)
	}
	if res.Card.EaseFactor != 2.6 {
		t.Errorf("card copy ease = %v, want 2.6", res.Card.EaseFactor)
	}
}

func TestSubmitIncorrectFeedback(t *testing.T) {
	cards := makeCards(1)
	s := New(quiz.ModeTypedSourceToTarget, cards, day0)
	q, _ := s.Next()

	res, err := s.Submit(q.ID, "definitely wrong", day0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Correct {
		t.Fatalf("expected incorrect grade")
	}
	if res.CorrectAnswer != cards[0].Word {
		t.Errorf("correct answer = %q, want %q", res.CorrectAnswer, cards[0].Word)
	}
	if res.NewSchedule.Repetitions != 0 || res.NewSchedule.IntervalDays != 1 {
		t.Errorf("schedule after miss = %+v, want reset", res.NewSchedule)
	}
}

func TestAdvanceAbandonsUnansweredQuestion(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(2), day0)
	first, _ := s.Next()

	second, done := s.Advance()
	if done {
		t.Fatal("expected a second question")
	}
	if second.ID == first.ID {
		t.Errorf("advance reissued the abandoned question")
	}
	if p := s.Progress(); p.Correct != 0 || p.Incorrect != 0 {
		t.Errorf("abandoned question must not be graded, counters = %d/%d", p.Correct, p.Incorrect)
	}
}

func TestAdvanceOnCompletedSessionReportsDone(t *testing.T) {
	s := New(quiz.ModeTypedSourceToTarget, makeCards(1), day0)
	q, _ := s.Next()
	if _, err := s.Submit(q.ID, q.Answer, day0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, done := s.Advance(); !done {
		t.Fatal("expected done after the last card")
	}

	// Completion is terminal: advancing again keeps reporting done without
	// disturbing the counters.
	if _, done := s.Advance(); !done {
		t.Errorf("advance on a completed session must report done again")
	}
	p := s.Progress()
	if p.State != StateCompleted || p.Correct != 1 {
		t.Errorf("progress after repeat advance = %+v", p)
	}
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(50 * time.Millisecond)
	s := New(quiz.ModeMultipleChoice, makeCards(1), time.Now())
	st.Put(s)

	if _, ok := st.Get(s.ID); !ok {
		t.Fatalf("session should be retrievable right after Put")
	}

	time.Sleep(150 * time.Millisecond)
	if _, ok := st.Get(s.ID); ok {
		t.Errorf("session should have been swept after its lease expired")
	}
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Minute)
	s := New(quiz.ModeMultipleChoice, makeCards(1), time.Now())
	st.Put(s)
	st.Delete(s.ID)
	if _, ok := st.Get(s.ID); ok {
		t.Errorf("deleted session is still retrievable")
	}
}
