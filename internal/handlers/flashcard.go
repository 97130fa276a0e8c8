package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/repository"
	"wordbank-backend/internal/scheduler"
	"wordbank-backend/internal/services"
)

type FlashcardHandler struct {
	cardRepo      *repository.CardRepo
	reviewLogRepo *repository.ReviewLogRepo
	importer      *services.ImportService
	validate      *validator.Validate
}

func NewFlashcardHandler(cardRepo *repository.CardRepo, reviewLogRepo *repository.ReviewLogRepo, importer *services.ImportService) *FlashcardHandler {
	return &FlashcardHandler{
		cardRepo:      cardRepo,
		reviewLogRepo: reviewLogRepo,
		importer:      importer,
		validate:      validator.New(),
	}
}

func (h *FlashcardHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req models.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	count, err := h.importer.Import(r.Context(), req.Entries, time.Now().UTC())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"imported": count})
}

func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch cards", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cards": cards})
}

func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	card, err := h.cardRepo.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// Recent review history rides along for the detail view.
	history, _ := h.reviewLogRepo.ListByCard(r.Context(), id, 20)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"card":    card,
		"history": history,
	})
}

func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	if err := h.cardRepo.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}

// UpdateSchedule is the legacy card mutation endpoint. All four scheduling
// fields are required; a partial payload is a validation error, never a
// partial write.
func (h *FlashcardHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	var req models.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		fields := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = "missing or out of range"
			}
		}
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR",
			"ease_factor, interval, repetitions and next_review_date are all required", fields, r))
		return
	}

	state := scheduler.State{
		EaseFactor:   *req.EaseFactor,
		IntervalDays: *req.IntervalDays,
		Repetitions:  *req.Repetitions,
		NextReview:   *req.NextReviewDate,
	}

	if err := h.cardRepo.UpdateSchedule(r.Context(), id, state, time.Now()); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Schedule updated"})
}

func (h *FlashcardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	today := scheduler.Today(time.Now())

	stats, err := h.cardRepo.Stats(r.Context(), today)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch stats", r))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
