package models

import "time"

// CharacterStat holds raw per-character counters for one session. Speeds is
// append-only within the session; the whole struct is discarded at session
// end unless explicitly persisted.
type CharacterStat struct {
	Character       string    `json:"character"`
	TotalTyped      int       `json:"total_typed"`
	CorrectTyped    int       `json:"correct_typed"`
	IncorrectTyped  int       `json:"incorrect_typed"`
	Speeds          []float64 `json:"speeds"`
	DifficultyScore float64   `json:"difficulty_score"`
}

// CharacterAnalyticsEntry is the ranked, rounded analytics view of one
// character. All numeric fields are rounded to 2 decimal places.
type CharacterAnalyticsEntry struct {
	Character       string  `json:"character"`
	TotalTyped      int     `json:"total_typed"`
	Accuracy        float64 `json:"accuracy"`
	AverageSpeed    float64 `json:"average_speed"`
	ErrorRate       float64 `json:"error_rate"`
	DifficultyScore float64 `json:"difficulty_score"`
	WeaknessScore   float64 `json:"weakness_score"`
}

// CharacterAccumulator is the persisted cross-session accumulator for one
// (user, character) pair. Per-keystroke speed samples are folded into
// SpeedSum/SpeedCount at persist time.
type CharacterAccumulator struct {
	UserID          int64     `json:"user_id"`
	Character       string    `json:"character"`
	TotalTyped      int       `json:"total_typed"`
	CorrectTyped    int       `json:"correct_typed"`
	IncorrectTyped  int       `json:"incorrect_typed"`
	SpeedSum        float64   `json:"speed_sum"`
	SpeedCount      int       `json:"speed_count"`
	DifficultyScore float64   `json:"difficulty_score"`
	UpdatedAt       time.Time `json:"updated_at"`
}
