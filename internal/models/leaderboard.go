package models

import "time"

// Leaderboard periods
const (
	Period7Days  = "7d"
	Period30Days = "30d"
	PeriodAll    = "all"
)

// LeaderboardEntry is a read-time projection of a test record joined with
// the owning user's display identity. Rank is dense, 1-based, and relative
// to the returned window only.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	TestID      string    `json:"test_id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	WPM         float64   `json:"wpm"`
	RawWPM      float64   `json:"raw_wpm"`
	Accuracy    float64   `json:"accuracy"`
	Consistency *float64  `json:"consistency"`
	TestMode    string    `json:"test_mode"`
	TimeLimit   int       `json:"time_limit"`
	Errors      int       `json:"errors"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaderboardRow is the raw repository projection before rank assignment
// and display-name resolution.
type LeaderboardRow struct {
	TestID      string
	UserID      int64
	Email       *string
	DisplayName *string
	WPM         float64
	RawWPM      float64
	Accuracy    float64
	Consistency *float64
	TestMode    string
	TimeLimit   int
	TotalChars  int
	CreatedAt   time.Time
}
