package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/quiz"
	"wordbank-backend/internal/repository"
	"wordbank-backend/internal/scheduler"
	"wordbank-backend/internal/session"
)

// ReviewHandler drives review sessions: start, question delivery, grading and
// cursor advancement. Each request derives a single day-granular "today" and
// threads it into the due query and the scheduler, so nothing below reads the
// clock.
type ReviewHandler struct {
	cardRepo *repository.CardRepo
	sessions *session.Store
	redis    *redis.Client
	validate *validator.Validate
}

func NewReviewHandler(cardRepo *repository.CardRepo, sessions *session.Store, redisClient *redis.Client) *ReviewHandler {
	return &ReviewHandler{
		cardRepo: cardRepo,
		sessions: sessions,
		redis:    redisClient,
		validate: validator.New(),
	}
}

func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "mode must be typed_source_to_target, typed_target_to_source, or multiple_choice", r))
		return
	}

	mode, _ := quiz.ParseMode(req.Mode)
	today := scheduler.Today(time.Now())

	cards, err := h.cardRepo.FindDue(r.Context(), today, req.Limit)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("STORAGE_FAILURE", "Failed to load due cards", r))
		return
	}

	// Nothing due is a distinct outcome: no session is created.
	if len(cards) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"done": true})
		return
	}

	s := session.New(mode, cards, time.Now())
	h.sessions.Put(s)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": s.ID,
		"total":      len(cards),
	})
}

func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Progress())
}

func (h *ReviewHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	q, done := s.Next()
	if done {
		p := s.Progress()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"done":      true,
			"correct":   p.Correct,
			"incorrect": p.Incorrect,
		})
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "question_id is required", r))
		return
	}

	today := scheduler.Today(time.Now())
	res, err := s.Submit(req.QuestionID, req.Value, today)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// Grading feedback and schedule persistence are decoupled outcomes: the
	// learner gets the grade even when the write fails, with the failure
	// reported alongside so the schedule update can be retried.
	result := models.AnswerResult{
		Correct:       res.Correct,
		CorrectAnswer: res.CorrectAnswer,
		ScheduleSaved: true,
	}

	if err := h.cardRepo.UpdateSchedule(r.Context(), res.Card.ID, res.NewSchedule, time.Now()); err != nil {
		log.Printf("Failed to persist schedule for card %s: %v", res.Card.ID, err)
		result.ScheduleSaved = false
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"correct":        result.Correct,
			"correct_answer": result.CorrectAnswer,
			"schedule_saved": false,
			"error":          errorResp("STORAGE_FAILURE", "Grading succeeded but the new schedule was not saved", r).Error,
		})
		return
	}

	h.publishReviewEvent(r, res)

	writeJSON(w, http.StatusOK, result)
}

func (h *ReviewHandler) Advance(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	q, done := s.Advance()
	if done {
		p := s.Progress()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"done":      true,
			"correct":   p.Correct,
			"incorrect": p.Incorrect,
		})
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *ReviewHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return nil, false
	}

	s, ok := h.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found or expired", r))
		return nil, false
	}
	return s, true
}

// publishReviewEvent hands the graded answer to the async pipeline. Event loss
// is tolerated; grading already succeeded.
func (h *ReviewHandler) publishReviewEvent(r *http.Request, res session.SubmitResult) {
	event := models.ReviewEvent{
		CardID:       res.Card.ID,
		Word:         res.Card.Word,
		Correct:      res.Correct,
		EaseFactor:   res.NewSchedule.EaseFactor,
		IntervalDays: res.NewSchedule.IntervalDays,
		Repetitions:  res.NewSchedule.Repetitions,
		ReviewedAt:   time.Now().UTC(),
	}

	eventBytes, _ := json.Marshal(event)
	if err := h.redis.LPush(r.Context(), "queue:review-events", string(eventBytes)).Err(); err != nil {
		log.Printf("Failed to enqueue review event for card %s: %v", res.Card.ID, err)
	}
}
