// Package analytics converts raw per-character counters into the ranked
// analytics view shown on the practice page.
package analytics

import (
	"sort"

	"github.com/dmello/typetrack/internal/metrics"
	"github.com/dmello/typetrack/internal/models"
)

// Compute transforms ordered per-character counters into analytics entries
// sorted descending by weakness score. The sort is stable: characters with
// equal scores keep their input order, so repeated calls on the same input
// produce identical output. Empty input yields an empty (non-nil) slice.
//
// Missing counters are treated as 0; a zero TotalTyped falls back to
// correct+incorrect so partially-populated rows still satisfy the
// total = correct + incorrect invariant.
func Compute(chars []models.CharacterStat) []models.CharacterAnalyticsEntry {
	entries := make([]models.CharacterAnalyticsEntry, 0, len(chars))
	for _, c := range chars {
		total := c.TotalTyped
		if total == 0 {
			total = c.CorrectTyped + c.IncorrectTyped
		}

		accuracy := metrics.Accuracy(c.CorrectTyped, total)
		errorRate := metrics.ErrorRate(c.IncorrectTyped, total)
		avgSpeed := metrics.AverageSpeed(c.Speeds)

		entries = append(entries, models.CharacterAnalyticsEntry{
			Character:       c.Character,
			TotalTyped:      total,
			Accuracy:        accuracy,
			AverageSpeed:    metrics.Round2(avgSpeed),
			ErrorRate:       errorRate,
			DifficultyScore: metrics.Round2(c.DifficultyScore),
			WeaknessScore:   metrics.WeaknessScore(accuracy, errorRate, avgSpeed),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WeaknessScore > entries[j].WeaknessScore
	})
	return entries
}

// FromAccumulators adapts persisted cross-session accumulators into the
// session-shaped counters Compute expects. The folded speed sum/count pair
// is replayed as a single mean sample, which leaves the average unchanged.
func FromAccumulators(accs []models.CharacterAccumulator) []models.CharacterStat {
	chars := make([]models.CharacterStat, 0, len(accs))
	for _, a := range accs {
		stat := models.CharacterStat{
			Character:       a.Character,
			TotalTyped:      a.TotalTyped,
			CorrectTyped:    a.CorrectTyped,
			IncorrectTyped:  a.IncorrectTyped,
			DifficultyScore: a.DifficultyScore,
		}
		if a.SpeedCount > 0 {
			stat.Speeds = []float64{a.SpeedSum / float64(a.SpeedCount)}
		}
		chars = append(chars, stat)
	}
	return chars
}
