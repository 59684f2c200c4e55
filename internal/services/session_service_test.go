package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"sparetime/internal/domain"
	"sparetime/internal/domain/models"
)

// stubRecommender scripts upstream behavior per test.
type stubRecommender struct {
	top3       []string
	top3Err    error
	rateErr    error
	ratings    []models.RatingSubmission
	metadata   map[string]models.VideoReference
	metaErr    error
	mu         sync.Mutex
	rateCalled int
}

func (s *stubRecommender) FetchTop3(ctx context.Context, userID string, durationMinutes int) ([]string, error) {
	if s.top3Err != nil {
		return nil, s.top3Err
	}
	return s.top3, nil
}

func (s *stubRecommender) SubmitRating(ctx context.Context, userID, videoID string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateCalled++
	if s.rateErr != nil {
		return s.rateErr
	}
	s.ratings = append(s.ratings, models.RatingSubmission{UserID: userID, VideoID: videoID, Rating: rating})
	return nil
}

func (s *stubRecommender) VideoInfo(ctx context.Context, userID, videoID string) (models.VideoReference, error) {
	if s.metaErr != nil {
		return models.VideoReference{}, s.metaErr
	}
	if ref, ok := s.metadata[videoID]; ok {
		return ref, nil
	}
	return models.VideoReference{}, domain.UpstreamError{Op: "video_info", Status: 404}
}

// memQueue is an in-memory QueueStore with the same set semantics as the
// MySQL-backed repository.
type memQueue struct {
	mu      sync.Mutex
	entries map[string][]models.QueueEntry
}

func newMemQueue() *memQueue {
	return &memQueue{entries: map[string][]models.QueueEntry{}}
}

func (q *memQueue) Enqueue(ctx context.Context, userID string, v models.VideoReference) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries[userID] {
		if e.Video.ID == v.ID {
			return false, nil
		}
	}
	q.entries[userID] = append(q.entries[userID], models.QueueEntry{
		UserID:     userID,
		Video:      v,
		EnqueuedAt: time.Now(),
	})
	return true, nil
}

func (q *memQueue) Dequeue(ctx context.Context, userID, videoID string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	list := q.entries[userID]
	for i, e := range list {
		if e.Video.ID == videoID {
			q.entries[userID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (q *memQueue) List(ctx context.Context, userID string) ([]models.QueueEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.QueueEntry, len(q.entries[userID]))
	copy(out, q.entries[userID])
	return out, nil
}

func TestStartSessionReturnsOrderedIDs(t *testing.T) {
	svc := SessionService{
		Recs:  &stubRecommender{top3: []string{"a", "b", "c"}},
		Queue: newMemQueue(),
	}

	ids, err := svc.StartSession(context.Background(), "user-1", 20)
	if err != nil {
		t.Fatalf("StartSession error: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("got %v, want [a b c]", ids)
	}
}

func TestStartSessionPropagatesUpstreamFailure(t *testing.T) {
	svc := SessionService{
		Recs:  &stubRecommender{top3Err: domain.UpstreamUnavailableError{Op: "top3"}},
		Queue: newMemQueue(),
	}

	if _, err := svc.StartSession(context.Background(), "user-1", 20); !domain.IsUpstreamUnavailable(err) {
		t.Fatalf("got %v, want UpstreamUnavailableError", err)
	}
}

func TestStartSessionRejectsOutOfRangeDuration(t *testing.T) {
	svc := SessionService{Recs: &stubRecommender{}, Queue: newMemQueue()}

	for _, minutes := range []int{0, 4, 61, -10} {
		if _, err := svc.StartSession(context.Background(), "user-1", minutes); !domain.IsValidation(err) {
			t.Errorf("duration %d: got %v, want ValidationError", minutes, err)
		}
	}
}

func TestSaveForLaterIsIdempotent(t *testing.T) {
	recs := &stubRecommender{metadata: map[string]models.VideoReference{
		"a": {ID: "a", Title: "Video A", ChannelTitle: "Channel"},
	}}
	svc := SessionService{Recs: recs, Queue: newMemQueue()}

	inserted, err := svc.SaveForLater(context.Background(), "user-1", "a")
	if err != nil || !inserted {
		t.Fatalf("first save: inserted=%v err=%v", inserted, err)
	}

	inserted, err = svc.SaveForLater(context.Background(), "user-1", "a")
	if err != nil {
		t.Fatalf("second save error: %v", err)
	}
	if inserted {
		t.Fatalf("repeated save must report no insertion")
	}

	entries, err := svc.ListQueue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(entries) != 1 || entries[0].Video.ID != "a" || entries[0].Video.Title != "Video A" {
		t.Fatalf("unexpected queue: %+v", entries)
	}
}

func TestSaveForLaterSurvivesMetadataFailure(t *testing.T) {
	recs := &stubRecommender{metaErr: domain.UpstreamUnavailableError{Op: "video_info"}}
	svc := SessionService{Recs: recs, Queue: newMemQueue()}

	inserted, err := svc.SaveForLater(context.Background(), "user-1", "a")
	if err != nil || !inserted {
		t.Fatalf("save without metadata: inserted=%v err=%v", inserted, err)
	}
}

func TestReviewVideoRatesThenDequeues(t *testing.T) {
	recs := &stubRecommender{metadata: map[string]models.VideoReference{"a": {ID: "a", Title: "A"}}}
	queue := newMemQueue()
	svc := SessionService{Recs: recs, Queue: queue}

	if _, err := svc.SaveForLater(context.Background(), "user-1", "a"); err != nil {
		t.Fatalf("save error: %v", err)
	}

	removed, err := svc.ReviewVideo(context.Background(), "user-1", "a", 4)
	if err != nil {
		t.Fatalf("review error: %v", err)
	}
	if !removed {
		t.Fatalf("review must report the dequeue")
	}
	if len(recs.ratings) != 1 || recs.ratings[0].VideoID != "a" || recs.ratings[0].Rating != 4 {
		t.Fatalf("rating not forwarded: %+v", recs.ratings)
	}

	entries, _ := svc.ListQueue(context.Background(), "user-1")
	if len(entries) != 0 {
		t.Fatalf("queue must no longer contain the rated video: %+v", entries)
	}
}

func TestReviewVideoKeepsEntryWhenRatingFails(t *testing.T) {
	recs := &stubRecommender{
		metadata: map[string]models.VideoReference{"a": {ID: "a", Title: "A"}},
	}
	queue := newMemQueue()
	svc := SessionService{Recs: recs, Queue: queue}

	if _, err := svc.SaveForLater(context.Background(), "user-1", "a"); err != nil {
		t.Fatalf("save error: %v", err)
	}

	recs.rateErr = domain.UpstreamError{Op: "rate_video", Status: 500}
	if _, err := svc.ReviewVideo(context.Background(), "user-1", "a", 4); !domain.IsUpstreamError(err) {
		t.Fatalf("got %v, want UpstreamError", err)
	}

	// The entry must still be there for a retry.
	entries, _ := svc.ListQueue(context.Background(), "user-1")
	if len(entries) != 1 || entries[0].Video.ID != "a" {
		t.Fatalf("queue must retain the video after a failed rating: %+v", entries)
	}
}

func TestReviewVideoAlreadyRemovedIsDistinct(t *testing.T) {
	recs := &stubRecommender{}
	svc := SessionService{Recs: recs, Queue: newMemQueue()}

	removed, err := svc.ReviewVideo(context.Background(), "user-1", "a", 3)
	if err != nil {
		t.Fatalf("review of absent entry must not fail: %v", err)
	}
	if removed {
		t.Fatalf("review of absent entry must report already-removed")
	}
	if recs.rateCalled != 1 {
		t.Fatalf("rating must still be forwarded, calls=%d", recs.rateCalled)
	}
}

func TestReviewVideoRejectsOutOfRangeRating(t *testing.T) {
	recs := &stubRecommender{}
	svc := SessionService{Recs: recs, Queue: newMemQueue()}

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.ReviewVideo(context.Background(), "user-1", "a", rating); !domain.IsValidation(err) {
			t.Errorf("rating %d: got %v, want ValidationError", rating, err)
		}
	}
	if recs.rateCalled != 0 {
		t.Fatalf("invalid ratings must never reach upstream, calls=%d", recs.rateCalled)
	}
}

func TestListQueueFlagsFailedEnrichment(t *testing.T) {
	recs := &stubRecommender{metadata: map[string]models.VideoReference{
		"a": {ID: "a", Title: "Video A"},
	}}
	queue := newMemQueue()
	svc := SessionService{Recs: recs, Queue: queue}

	// Stored without metadata (enqueue-time lookup unavailable).
	if _, err := queue.Enqueue(context.Background(), "user-1", models.VideoReference{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := queue.Enqueue(context.Background(), "user-1", models.VideoReference{ID: "missing"}); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.ListQueue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("both entries must be returned, got %d", len(entries))
	}
	if entries[0].Video.Title != "Video A" || entries[0].MetadataUnavailable {
		t.Fatalf("first entry should be enriched: %+v", entries[0])
	}
	if !entries[1].MetadataUnavailable {
		t.Fatalf("second entry must be flagged, not dropped: %+v", entries[1])
	}
}

func TestConcurrentSaveForLaterDistinctVideos(t *testing.T) {
	recs := &stubRecommender{metadata: map[string]models.VideoReference{
		"a": {ID: "a"}, "b": {ID: "b"},
	}}
	svc := SessionService{Recs: recs, Queue: newMemQueue()}

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func(videoID string) {
			defer wg.Done()
			if _, err := svc.SaveForLater(context.Background(), "user-1", videoID); err != nil {
				t.Errorf("save %s error: %v", videoID, err)
			}
		}(id)
	}
	wg.Wait()

	entries, err := svc.ListQueue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("both videos must be present, got %+v", entries)
	}
}
