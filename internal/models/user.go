package models

import "time"

// User is the internal identity joined to the external auth provider's
// opaque id. Profile fields are best-effort and may be absent.
type User struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	Email       *string   `json:"email"`
	DisplayName *string   `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Identity is the trusted payload the identity proxy attaches to requests.
// ExternalID is the only required field.
type Identity struct {
	ExternalID  string  `json:"external_id"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// UserSummary aggregates a user's lifetime typing stats.
type UserSummary struct {
	TotalTests    int     `json:"total_tests"`
	BestWPM       float64 `json:"best_wpm"`
	AvgWPM        float64 `json:"avg_wpm"`
	AvgAccuracy   float64 `json:"avg_accuracy"`
	TimeTypedSecs float64 `json:"time_typed_seconds"`
}
