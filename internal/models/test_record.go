package models

import "time"

// Test modes
const (
	ModeTime        = "time"
	ModeWords       = "words"
	ModeQuote       = "quote"
	ModeCustom      = "custom"
	ModePunctuation = "punctuation"
	ModeNumbers     = "numbers"
	ModeZen         = "zen"
)

// ValidMode reports whether mode is one of the known test modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeTime, ModeWords, ModeQuote, ModeCustom, ModePunctuation, ModeNumbers, ModeZen:
		return true
	}
	return false
}

// TestRecord is one completed typing test. Records are append-only: once
// written they are never mutated.
type TestRecord struct {
	ID                  string    `json:"id"`
	UserID              int64     `json:"user_id"`
	WPM                 float64   `json:"wpm"`
	RawWPM              float64   `json:"raw_wpm"`
	Accuracy            float64   `json:"accuracy"`
	Consistency         *float64  `json:"consistency"`
	TestMode            string    `json:"test_mode"`
	TimeLimit           int       `json:"time_limit"`
	WordLimit           int       `json:"word_limit"`
	TotalCharacters     int       `json:"total_characters"`
	CorrectCharacters   int       `json:"correct_characters"`
	IncorrectCharacters int       `json:"incorrect_characters"`
	ActualDuration      float64   `json:"actual_duration"`
	ErrorRate           float64   `json:"error_rate"`
	CreatedAt           time.Time `json:"created_at"`
}

// TestFilter narrows history queries. Mode and TimeLimit are equality
// filters; nil/empty means no restriction.
type TestFilter struct {
	UserID    int64
	Mode      string
	TimeLimit *int
	Limit     int
	Offset    int
}

// LeaderboardFilter narrows leaderboard queries.
type LeaderboardFilter struct {
	Mode      string
	TimeLimit *int
	Since     *time.Time
	Limit     int
}
