package scheduler

import (
	"testing"
	"time"
)

var day0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestUpdateCorrectProgression(t *testing.T) {
	// Fresh card answered correctly three times in a row on day 0.
	s := State{EaseFactor: 2.5, IntervalDays: 0, Repetitions: 0, NextReview: day0}

	s = Update(s, true, day0)
	if s.Repetitions != 1 || s.IntervalDays != 1 {
		t.Fatalf("after 1st correct: got reps=%d interval=%d, want 1/1", s.Repetitions, s.IntervalDays)
	}
	if s.EaseFactor != 2.6 {
		t.Errorf("after 1st correct: ease = %v, want 2.6", s.EaseFactor)
	}

	s = Update(s, true, day0)
	if s.Repetitions != 2 || s.IntervalDays != 6 {
		t.Fatalf("after 2nd correct: got reps=%d interval=%d, want 2/6", s.Repetitions, s.IntervalDays)
	}

	s = Update(s, true, day0)
	if s.IntervalDays != 16 {
		t.Errorf("after 3rd correct: interval = %d, want round(6*2.7) = 16", s.IntervalDays)
	}
	if s.EaseFactor < 2.799 || s.EaseFactor > 2.801 {
		t.Errorf("after 3rd correct: ease = %v, want 2.8", s.EaseFactor)
	}
	want := day0.AddDate(0, 0, 16)
	if !s.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", s.NextReview, want)
	}
}

func TestUpdateIncorrectResets(t *testing.T) {
	s := State{EaseFactor: 2.5, IntervalDays: 0, Repetitions: 0, NextReview: day0}

	s = Update(s, false, day0)
	if s.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", s.Repetitions)
	}
	if s.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", s.IntervalDays)
	}
	if s.EaseFactor != 2.3 {
		t.Errorf("ease = %v, want 2.3", s.EaseFactor)
	}
	if !s.NextReview.Equal(day0.AddDate(0, 0, 1)) {
		t.Errorf("next review = %v, want day+1", s.NextReview)
	}
}

func TestUpdateEaseClamps(t *testing.T) {
	high := State{EaseFactor: 2.95, IntervalDays: 6, Repetitions: 2}
	high = Update(high, true, day0)
	if high.EaseFactor != MaxEaseFactor {
		t.Errorf("ease = %v, want clamped to %v", high.EaseFactor, MaxEaseFactor)
	}

	low := State{EaseFactor: 1.35, IntervalDays: 6, Repetitions: 2}
	low = Update(low, false, day0)
	if low.EaseFactor != MinEaseFactor {
		t.Errorf("ease = %v, want clamped to %v", low.EaseFactor, MinEaseFactor)
	}

	// Clamp is absolute on every call, not accumulated overshoot.
	low = Update(low, false, day0)
	if low.EaseFactor != MinEaseFactor {
		t.Errorf("ease after repeat failure = %v, want %v", low.EaseFactor, MinEaseFactor)
	}
}

func TestUpdateInvariants(t *testing.T) {
	states := []State{
		{EaseFactor: 1.3, IntervalDays: 0, Repetitions: 0},
		{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 1},
		{EaseFactor: 3.0, IntervalDays: 180, Repetitions: 9},
		{EaseFactor: 1.4, IntervalDays: 2, Repetitions: 3},
	}

	for _, s := range states {
		for _, correct := range []bool{true, false} {
			out := Update(s, correct, day0)
			if out.EaseFactor < MinEaseFactor || out.EaseFactor > MaxEaseFactor {
				t.Errorf("Update(%+v, %v): ease %v out of [1.3, 3.0]", s, correct, out.EaseFactor)
			}
			if out.IntervalDays < 1 {
				t.Errorf("Update(%+v, %v): interval %d < 1", s, correct, out.IntervalDays)
			}
			if out.Repetitions < 0 {
				t.Errorf("Update(%+v, %v): repetitions %d < 0", s, correct, out.Repetitions)
			}
		}
	}
}

func TestUpdateDeterministic(t *testing.T) {
	s := State{EaseFactor: 2.1, IntervalDays: 12, Repetitions: 4}
	a := Update(s, true, day0)
	b := Update(s, true, day0)
	if a != b {
		t.Errorf("same input produced different outputs: %+v vs %+v", a, b)
	}
}

func TestUpdateRoundsHalfUp(t *testing.T) {
	// 3 * 1.5 = 4.5 must round to 5, not 4.
	s := State{EaseFactor: 1.5, IntervalDays: 3, Repetitions: 5}
	out := Update(s, true, day0)
	if out.IntervalDays != 5 {
		t.Errorf("interval = %d, want 5 (round half up of 4.5)", out.IntervalDays)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 45, 12, 900, time.FixedZone("ICT", 7*3600))
	got := Today(now)
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != time.UTC {
		t.Errorf("Today(%v) = %v, want midnight UTC", now, got)
	}
}
