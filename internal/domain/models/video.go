package models

import "time"

// VideoReference is the descriptive metadata the recommendation service holds
// for a video. Immutable once fetched; this layer never rewrites it.
type VideoReference struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Description  string `json:"description"`
}

// QueueEntry is one pending-review video for one user.
type QueueEntry struct {
	UserID     string         `json:"-"`
	Video      VideoReference `json:"video"`
	EnqueuedAt time.Time      `json:"enqueuedAt"`

	// MetadataUnavailable marks entries whose metadata refresh failed while
	// listing; the entry itself is still returned.
	MetadataUnavailable bool `json:"metadataUnavailable,omitempty"`
}

// RatingSubmission is the transient command forwarded upstream; it is never
// persisted by this layer.
type RatingSubmission struct {
	UserID  string
	VideoID string
	Rating  int
}

const (
	RatingMin = 1
	RatingMax = 5
)

// ValidRating reports whether r is on the accepted 1..5 scale.
func ValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}

const (
	SessionMinutesMin = 5
	SessionMinutesMax = 60
)

// ValidSessionMinutes bounds the session duration hint the same way the
// session-length picker does.
func ValidSessionMinutes(m int) bool {
	return m >= SessionMinutesMin && m <= SessionMinutesMax
}
