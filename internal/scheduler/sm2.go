package scheduler

import (
	"math"
	"time"
)

// SM-2 variant constants. Ease factor is clamped to [1.3, 3.0] absolutely on
// every update, never relative to overshoot.
const (
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0
	easeReward        = 0.1
	easePenalty       = 0.2
)

// State carries the scheduling fields of a card. The updater trusts whatever
// stored values it is handed and never special-cases them.
type State struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextReview   time.Time
}

// NewState is the scheduling state given to a freshly imported card: due
// immediately, default ease.
func NewState(now time.Time) State {
	return State{
		EaseFactor:   InitialEaseFactor,
		IntervalDays: 0,
		Repetitions:  0,
		NextReview:   now,
	}
}

// Update computes the next scheduling state after one graded answer. Pure:
// same input state, correctness and day always produce the same output.
// today is the day the grading occurs, at day granularity (see Today).
func Update(s State, correct bool, today time.Time) State {
	next := s

	if correct {
		next.Repetitions = s.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			// Round half up, using the ease factor as stored before this review.
			next.IntervalDays = int(math.Floor(float64(s.IntervalDays)*s.EaseFactor + 0.5))
		}
		next.EaseFactor = math.Min(MaxEaseFactor, s.EaseFactor+easeReward)
	} else {
		next.Repetitions = 0
		next.IntervalDays = 1
		next.EaseFactor = math.Max(MinEaseFactor, s.EaseFactor-easePenalty)
	}

	next.NextReview = today.AddDate(0, 0, next.IntervalDays)
	return next
}

// Today truncates a wall-clock instant to UTC day granularity. Handlers derive
// this once per request and thread it through; nothing below them reads the
// clock.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
