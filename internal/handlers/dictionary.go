package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"wordbank-backend/internal/services"
)

type DictionaryHandler struct {
	dict *services.DictionaryService
}

func NewDictionaryHandler(dict *services.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{dict: dict}
}

func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(chi.URLParam(r, "word"))
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Word is required", r))
		return
	}

	entries, err := h.dict.Lookup(r.Context(), word)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
