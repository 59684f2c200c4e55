package models

import "encoding/json"

// UserProfile is the persisted per-user record. AverageVideo is the cached
// feature summary maintained by the recommendation service; this layer stores
// and returns it verbatim without interpreting it.
type UserProfile struct {
	ID           string          `json:"userId"`
	Username     string          `json:"username"`
	Interests    []string        `json:"interests"`
	AverageVideo json.RawMessage `json:"averageVideo,omitempty"`
}
