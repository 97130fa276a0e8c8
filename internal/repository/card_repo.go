package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/scheduler"
)

// ErrNotFound is returned when an operation targets a card id absent from the
// store. Callers map it to a 404, distinct from validation failures.
var ErrNotFound = errors.New("card not found")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const cardColumns = `id, word, meaning, definitions, image_url, audio_url, phonetic, part_of_speech,
	ease_factor, interval_days, repetitions, next_review_at, created_at, last_reviewed_at`

type CardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

func scanCard(row pgx.Row) (models.Flashcard, error) {
	var c models.Flashcard
	err := row.Scan(
		&c.ID, &c.Word, &c.Meaning, &c.Definitions, &c.ImageURL, &c.AudioURL, &c.Phonetic,
		&c.PartOfSpeech, &c.EaseFactor, &c.IntervalDays, &c.Repetitions, &c.NextReviewAt,
		&c.CreatedAt, &c.LastReviewedAt,
	)
	return c, err
}

// buildDueQuery composes the due selection: day-granular cutoff, ascending
// order by next review date, truncated only when limit > 0.
func buildDueQuery(today time.Time, limit int) (string, []interface{}, error) {
	builder := psql.Select(cardColumns).
		From("flashcards").
		Where("next_review_at::date <= ?::date", today).
		OrderBy("next_review_at ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder.ToSql()
}

// FindDue returns the cards due on or before today, ordered ascending by next
// review date. Due comparison is at calendar-day granularity. limit <= 0 means
// no truncation. An empty result is not an error.
func (r *CardRepo) FindDue(ctx context.Context, today time.Time, limit int) ([]models.Flashcard, error) {
	query, args, err := buildDueQuery(today, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// InsertMany inserts pre-validated creation records in one statement, each
// with the default scheduling state, and returns the number inserted.
func (r *CardRepo) InsertMany(ctx context.Context, records []models.NewCard, now time.Time) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	state := scheduler.NewState(now)
	builder := psql.Insert("flashcards").
		Columns("id", "word", "meaning", "image_url", "ease_factor", "interval_days", "repetitions", "next_review_at")
	for _, rec := range records {
		builder = builder.Values(
			uuid.New(), rec.Word, rec.Meaning, rec.ImageURL,
			state.EaseFactor, state.IntervalDays, state.Repetitions, state.NextReview,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// UpdateSchedule is a single conditional update, atomic per card.
func (r *CardRepo) UpdateSchedule(ctx context.Context, cardID uuid.UUID, s scheduler.State, reviewedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE flashcards SET ease_factor = $1, interval_days = $2, repetitions = $3,
		 next_review_at = $4, last_reviewed_at = $5 WHERE id = $6`,
		s.EaseFactor, s.IntervalDays, s.Repetitions, s.NextReview, reviewedAt, cardID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	query := `SELECT ` + cardColumns + ` FROM flashcards WHERE id = $1`
	c, err := scanCard(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CardRepo) List(ctx context.Context) ([]models.Flashcard, error) {
	query := `SELECT ` + cardColumns + ` FROM flashcards ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *CardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM flashcards WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CardRepo) Stats(ctx context.Context, today time.Time) (*models.CardStats, error) {
	stats := &models.CardStats{}

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE next_review_at::date <= $1::date),
		       COUNT(*) FILTER (WHERE repetitions > 0 AND (repetitions < 3 OR ease_factor < 2.5)),
		       COUNT(*) FILTER (WHERE repetitions >= 3 AND ease_factor >= 2.5),
		       COUNT(*) FILTER (WHERE repetitions = 0)
		FROM flashcards`, today,
	).Scan(&stats.TotalCards, &stats.DueToday, &stats.Learning, &stats.Mastered, &stats.New)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
