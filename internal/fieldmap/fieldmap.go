// Package fieldmap resolves loosely-shaped legacy test records into the
// current schema. The mapping is a versioned, ordered table of candidate
// source-field names per target field, evaluated deterministically: the
// first candidate present in the record wins.
package fieldmap

import (
	"strconv"
	"time"
)

// FieldMapping lists candidate source-field names for one target field, in
// priority order.
type FieldMapping struct {
	Target  string
	Sources []string
}

// Mapping is one version of the legacy-to-current field table.
type Mapping struct {
	Version int
	Fields  []FieldMapping
}

// Target field names produced by Resolve.
const (
	TargetWPM                 = "wpm"
	TargetRawWPM              = "raw_wpm"
	TargetAccuracy            = "accuracy"
	TargetConsistency         = "consistency"
	TargetTestMode            = "test_mode"
	TargetTimeLimit           = "time_limit"
	TargetWordLimit           = "word_limit"
	TargetTotalCharacters     = "total_characters"
	TargetCorrectCharacters   = "correct_characters"
	TargetIncorrectCharacters = "incorrect_characters"
	TargetActualDuration      = "actual_duration"
	TargetCreatedAt           = "created_at"
)

// Default returns the current mapping table. Source names cover the field
// spellings observed across exported legacy data.
func Default() Mapping {
	return Mapping{
		Version: 1,
		Fields: []FieldMapping{
			{Target: TargetWPM, Sources: []string{"wpm", "speed", "words_per_minute"}},
			{Target: TargetRawWPM, Sources: []string{"raw_wpm", "rawWpm", "gross_wpm"}},
			{Target: TargetAccuracy, Sources: []string{"accuracy", "acc"}},
			{Target: TargetConsistency, Sources: []string{"consistency"}},
			{Target: TargetTestMode, Sources: []string{"test_mode", "mode", "testType"}},
			{Target: TargetTimeLimit, Sources: []string{"time_limit", "timeLimit", "duration_setting"}},
			{Target: TargetWordLimit, Sources: []string{"word_limit", "wordLimit", "word_count"}},
			{Target: TargetTotalCharacters, Sources: []string{"total_characters", "totalChars", "total_typed"}},
			{Target: TargetCorrectCharacters, Sources: []string{"correct_characters", "correctChars", "correct_typed"}},
			{Target: TargetIncorrectCharacters, Sources: []string{"incorrect_characters", "incorrectChars", "errors"}},
			{Target: TargetActualDuration, Sources: []string{"actual_duration", "duration", "time_taken"}},
			{Target: TargetCreatedAt, Sources: []string{"created_at", "timestamp", "date"}},
		},
	}
}

// Resolve maps a raw legacy record onto target fields. Targets with no
// matching source key are absent from the result.
func (m Mapping) Resolve(record map[string]any) map[string]any {
	out := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		for _, src := range f.Sources {
			if v, ok := record[src]; ok && v != nil {
				out[f.Target] = v
				break
			}
		}
	}
	return out
}

// Float coerces a resolved value to float64. JSON numbers arrive as
// float64; numeric strings from CSV-ish exports are parsed. Anything else
// coalesces to 0.
func Float(resolved map[string]any, target string) float64 {
	v, ok := resolved[target]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}

// Int coerces a resolved value to int via Float, truncating.
func Int(resolved map[string]any, target string) int {
	return int(Float(resolved, target))
}

// String coerces a resolved value to string, "" when absent or non-string.
func String(resolved map[string]any, target string) string {
	if v, ok := resolved[target]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Time parses a resolved timestamp. RFC 3339 strings, date-only strings,
// and Unix-epoch numbers (seconds or milliseconds) are accepted. The zero
// time is returned when nothing parses.
func Time(resolved map[string]any, target string) time.Time {
	v, ok := resolved[target]
	if !ok {
		return time.Time{}
	}
	switch ts := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, ts); err == nil {
				return t
			}
		}
	case float64:
		// Millisecond epochs are 13 digits; second epochs are 10.
		if ts > 1e12 {
			return time.UnixMilli(int64(ts)).UTC()
		}
		if ts > 0 {
			return time.Unix(int64(ts), 0).UTC()
		}
	}
	return time.Time{}
}
