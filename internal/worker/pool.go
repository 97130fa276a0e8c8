package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"wordbank-backend/internal/models"
	"wordbank-backend/internal/repository"
)

const (
	reviewQueue     = "queue:review-events"
	activityChannel = "review:activity"
)

// Pool drains graded-answer events off the review queue, writes the history
// row, and republishes the event for live listeners. Losing an event costs a
// history row, never a schedule update, so processing is best-effort.
type Pool struct {
	redis         *redis.Client
	reviewLogRepo *repository.ReviewLogRepo
	workerCount   int
	stopChan      chan struct{}
}

func NewPool(redisClient *redis.Client, reviewLogRepo *repository.ReviewLogRepo, workerCount int) *Pool {
	return &Pool{
		redis:         redisClient,
		reviewLogRepo: reviewLogRepo,
		workerCount:   workerCount,
		stopChan:      make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}

	log.Printf("Started %d review-event workers", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with a short timeout so shutdown is noticed promptly
		result, err := p.redis.BLPop(ctx, 5*time.Second, reviewQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var event models.ReviewEvent
		if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
			log.Printf("Worker %d: failed to parse review event: %v", id, err)
			continue
		}

		p.process(ctx, id, &event)
	}
}

func (p *Pool) process(ctx context.Context, id int, event *models.ReviewEvent) {
	logEntry := &models.ReviewLog{
		CardID:       event.CardID,
		Correct:      event.Correct,
		EaseFactor:   event.EaseFactor,
		IntervalDays: event.IntervalDays,
		Repetitions:  event.Repetitions,
		ReviewedAt:   event.ReviewedAt,
	}

	if err := p.reviewLogRepo.Insert(ctx, logEntry); err != nil {
		log.Printf("Worker %d: failed to record review of card %s: %v", id, event.CardID, err)
		return
	}

	msg := models.WSMessage{Type: "review", Payload: event}
	msgBytes, _ := json.Marshal(msg)
	if err := p.redis.Publish(ctx, activityChannel, string(msgBytes)).Err(); err != nil {
		log.Printf("Worker %d: failed to publish review activity: %v", id, err)
	}
}
