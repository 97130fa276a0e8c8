package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"wordbank-backend/internal/models"
)

type ReviewLogRepo struct {
	pool *pgxpool.Pool
}

func NewReviewLogRepo(pool *pgxpool.Pool) *ReviewLogRepo {
	return &ReviewLogRepo{pool: pool}
}

func (r *ReviewLogRepo) Insert(ctx context.Context, l *models.ReviewLog) error {
	l.ID = uuid.New()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO review_logs (id, card_id, correct, ease_factor, interval_days, repetitions, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.CardID, l.Correct, l.EaseFactor, l.IntervalDays, l.Repetitions, l.ReviewedAt,
	)
	return err
}

func (r *ReviewLogRepo) ListByCard(ctx context.Context, cardID uuid.UUID, limit int) ([]models.ReviewLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, card_id, correct, ease_factor, interval_days, repetitions, reviewed_at
		 FROM review_logs WHERE card_id = $1 ORDER BY reviewed_at DESC LIMIT $2`,
		cardID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ReviewLog
	for rows.Next() {
		var l models.ReviewLog
		if err := rows.Scan(&l.ID, &l.CardID, &l.Correct, &l.EaseFactor, &l.IntervalDays, &l.Repetitions, &l.ReviewedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
