package fieldmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmello/typetrack/internal/fieldmap"
)

func TestResolve_FirstMatchingSourceWins(t *testing.T) {
	m := fieldmap.Default()

	resolved := m.Resolve(map[string]any{
		"wpm":   82.5,
		"speed": 60.0, // lower-priority spelling must lose
	})

	assert.Equal(t, 82.5, resolved[fieldmap.TargetWPM])
}

func TestResolve_FallbackSource(t *testing.T) {
	m := fieldmap.Default()

	resolved := m.Resolve(map[string]any{
		"speed":    60.0,
		"testType": "time",
		"errors":   4.0,
	})

	assert.Equal(t, 60.0, resolved[fieldmap.TargetWPM])
	assert.Equal(t, "time", resolved[fieldmap.TargetTestMode])
	assert.Equal(t, 4.0, resolved[fieldmap.TargetIncorrectCharacters])
}

func TestResolve_AbsentTargetsOmitted(t *testing.T) {
	m := fieldmap.Default()

	resolved := m.Resolve(map[string]any{"wpm": 70.0})

	_, ok := resolved[fieldmap.TargetAccuracy]
	assert.False(t, ok)
}

func TestResolve_NilValuesSkipped(t *testing.T) {
	m := fieldmap.Default()

	resolved := m.Resolve(map[string]any{
		"wpm":   nil,
		"speed": 55.0,
	})

	assert.Equal(t, 55.0, resolved[fieldmap.TargetWPM])
}

func TestResolve_Deterministic(t *testing.T) {
	m := fieldmap.Default()
	record := map[string]any{
		"wpm": 90.0, "acc": 97.1, "mode": "words", "totalChars": 450.0,
	}

	first := m.Resolve(record)
	second := m.Resolve(record)
	assert.Equal(t, first, second)
}

func TestFloat_Coercion(t *testing.T) {
	resolved := map[string]any{
		"a": 1.5,
		"b": "2.25",
		"c": "not a number",
	}

	assert.Equal(t, 1.5, fieldmap.Float(resolved, "a"))
	assert.Equal(t, 2.25, fieldmap.Float(resolved, "b"))
	assert.Equal(t, 0.0, fieldmap.Float(resolved, "c"))
	assert.Equal(t, 0.0, fieldmap.Float(resolved, "missing"))
}

func TestTime_Formats(t *testing.T) {
	rfc := fieldmap.Time(map[string]any{"t": "2024-03-01T10:00:00Z"}, "t")
	require.False(t, rfc.IsZero())
	assert.Equal(t, 2024, rfc.Year())

	dateOnly := fieldmap.Time(map[string]any{"t": "2024-03-01"}, "t")
	assert.False(t, dateOnly.IsZero())

	epochSecs := fieldmap.Time(map[string]any{"t": 1709287200.0}, "t")
	assert.Equal(t, 2024, epochSecs.UTC().Year())

	epochMillis := fieldmap.Time(map[string]any{"t": 1709287200000.0}, "t")
	assert.Equal(t, epochSecs, epochMillis)

	garbage := fieldmap.Time(map[string]any{"t": "soon"}, "t")
	assert.True(t, garbage.IsZero())

	missing := fieldmap.Time(map[string]any{}, "t")
	assert.True(t, missing.IsZero())
}
