package services

import (
	"context"

	"sparetime/internal/domain/models"
)

// Recommender abstracts the recommendation service so orchestration logic can
// be tested against stubs.
type Recommender interface {
	FetchTop3(ctx context.Context, userID string, durationMinutes int) ([]string, error)
	SubmitRating(ctx context.Context, userID, videoID string, rating int) error
	VideoInfo(ctx context.Context, userID, videoID string) (models.VideoReference, error)
}

// QueueStore abstracts the per-user pending-review queue. Mutations are
// conditional at the storage tier; the booleans report whether this call
// changed anything.
type QueueStore interface {
	Enqueue(ctx context.Context, userID string, v models.VideoReference) (bool, error)
	Dequeue(ctx context.Context, userID, videoID string) (bool, error)
	List(ctx context.Context, userID string) ([]models.QueueEntry, error)
}
