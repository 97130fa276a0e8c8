package services

import (
	"context"
	"strings"
	"time"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/repository"
)

type ImportService struct {
	cardRepo *repository.CardRepo
}

func NewImportService(cardRepo *repository.CardRepo) *ImportService {
	return &ImportService{cardRepo: cardRepo}
}

// Import filters raw entries down to valid creation records and inserts them
// with the default scheduling state. Entries missing a word or meaning after
// trimming are dropped silently; only a batch that filters down to nothing is
// an error.
func (s *ImportService) Import(ctx context.Context, entries []models.ImportEntry, now time.Time) (int, error) {
	records := FilterEntries(entries)
	if len(records) == 0 {
		return 0, &ValidationError{Fields: map[string]string{
			"entries": "no valid entries: each entry needs a non-empty word and meaning",
		}}
	}

	count, err := s.cardRepo.InsertMany(ctx, records, now)
	if err != nil {
		return 0, &StorageError{Message: "failed to insert cards", Err: err}
	}
	return count, nil
}

// FilterEntries resolves raw import entries into canonical creation records,
// dropping invalid ones.
func FilterEntries(entries []models.ImportEntry) []models.NewCard {
	var records []models.NewCard
	for _, e := range entries {
		word := strings.TrimSpace(e.Word)
		meaning := strings.TrimSpace(e.Meaning)
		if word == "" || meaning == "" {
			continue
		}
		records = append(records, models.NewCard{
			Word:     word,
			Meaning:  meaning,
			ImageURL: e.ImageURL,
		})
	}
	return records
}
