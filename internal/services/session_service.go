package services

import (
	"context"
	"fmt"
	"strings"

	"sparetime/internal/domain"
	"sparetime/internal/domain/models"
	"sparetime/internal/utils"
)

// SessionService is the orchestration layer between the authenticated HTTP
// surface, the recommendation service, and the pending-review queue. It is the
// only component that talks to both sides.
type SessionService struct {
	Recs      Recommender
	Queue     QueueStore
	RequestID string
}

// StartSession fetches the next three candidate videos for a session of
// durationMinutes. Upstream failures propagate verbatim.
func (s SessionService) StartSession(ctx context.Context, userID string, durationMinutes int) ([]string, error) {
	if !models.ValidSessionMinutes(durationMinutes) {
		return nil, domain.ValidationError{
			Field: "duration",
			Msg:   fmt.Sprintf("must be between %d and %d minutes", models.SessionMinutesMin, models.SessionMinutesMax),
		}
	}

	utils.LogEvent(s.RequestID, "session", "start", "duration="+fmt.Sprint(durationMinutes))
	return s.Recs.FetchTop3(ctx, userID, durationMinutes)
}

// SaveForLater enqueues a video for later review. The returned bool reports
// whether a new entry was created; saving a video twice is a no-op. Metadata
// is fetched best-effort at enqueue time so the queue renders without another
// round-trip; a failed lookup does not block the save.
func (s SessionService) SaveForLater(ctx context.Context, userID, videoID string) (bool, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return false, domain.ValidationError{Field: "videoId", Msg: "must not be empty"}
	}

	video := models.VideoReference{ID: videoID}
	if ref, err := s.Recs.VideoInfo(ctx, userID, videoID); err == nil {
		video = ref
		video.ID = videoID
	}

	inserted, err := s.Queue.Enqueue(ctx, userID, video)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "queue", "enqueue", fmt.Sprintf("video_id=%s inserted=%t", videoID, inserted))
	return inserted, nil
}

// ReviewVideo forwards the rating and, only once the upstream acknowledges it,
// removes the queue entry. A failed rating leaves the entry in place so the
// user can retry; the ordering is never reversed. The returned bool is false
// when the entry was already gone (an already-resolved state, not a failure).
func (s SessionService) ReviewVideo(ctx context.Context, userID, videoID string, rating int) (bool, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return false, domain.ValidationError{Field: "videoId", Msg: "must not be empty"}
	}
	if !models.ValidRating(rating) {
		return false, domain.ValidationError{
			Field: "rating",
			Msg:   fmt.Sprintf("must be between %d and %d", models.RatingMin, models.RatingMax),
		}
	}

	if err := s.Recs.SubmitRating(ctx, userID, videoID, rating); err != nil {
		utils.LogEvent(s.RequestID, "queue", "rate_failed", "video_id="+videoID)
		return false, err
	}

	removed, err := s.Queue.Dequeue(ctx, userID, videoID)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "queue", "rated", fmt.Sprintf("video_id=%s rating=%d removed=%t", videoID, rating, removed))
	return removed, nil
}

// RemoveFromQueue drops an entry without rating it. Removing an absent entry
// reports false and no error.
func (s SessionService) RemoveFromQueue(ctx context.Context, userID, videoID string) (bool, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return false, domain.ValidationError{Field: "videoId", Msg: "must not be empty"}
	}

	removed, err := s.Queue.Dequeue(ctx, userID, videoID)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "queue", "dequeue", fmt.Sprintf("video_id=%s removed=%t", videoID, removed))
	return removed, nil
}

// ListQueue returns the user's queue, enriching entries that were stored
// without metadata. Enrichment is partial-failure tolerant: an entry whose
// lookup fails is returned flagged, never dropped, and never fails the list.
func (s SessionService) ListQueue(ctx context.Context, userID string) ([]models.QueueEntry, error) {
	entries, err := s.Queue.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Video.Title != "" {
			continue
		}
		ref, err := s.Recs.VideoInfo(ctx, userID, entries[i].Video.ID)
		if err != nil {
			entries[i].MetadataUnavailable = true
			continue
		}
		ref.ID = entries[i].Video.ID
		entries[i].Video = ref
	}
	return entries, nil
}
