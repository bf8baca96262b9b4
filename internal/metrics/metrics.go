// Package metrics holds the typing-performance calculators. Every function
// is total over its numeric domain: degenerate inputs (zero durations, empty
// sample sets, zero counters) resolve to 0 rather than NaN or an error.
package metrics

import "math"

// Baseline speed below which the weakness score applies its speed penalty.
const speedBaseline = 50.0

// Weakness score weights: accuracy and error rate dominate, speed corrects.
const (
	weightAccuracy  = 0.4
	weightErrorRate = 0.4
	weightSpeed     = 0.2
)

// Round2 rounds v to 2 decimal places, the storage/display precision for
// every derived metric.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WPM computes net words per minute from a character count and a duration.
// A word is the standard 5 characters. Returns 0 when the duration is not
// positive.
func WPM(totalCharacters int, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return (float64(totalCharacters) / 5.0) / (durationSeconds / 60.0)
}

// RawWPM computes gross words per minute over every character typed,
// including characters that were later corrected. The formula matches WPM;
// callers pass the gross character count.
func RawWPM(totalTyped int, durationSeconds float64) float64 {
	return WPM(totalTyped, durationSeconds)
}

// Accuracy returns correct/total as a percentage in [0, 100], rounded to
// 2 decimal places. Zero total yields 0.
func Accuracy(correctTyped, totalTyped int) float64 {
	if totalTyped <= 0 {
		return 0
	}
	return Round2(clampPercent(float64(correctTyped) / float64(totalTyped) * 100))
}

// ErrorRate returns incorrect/total as a percentage in [0, 100], rounded to
// 2 decimal places. Zero total yields 0.
func ErrorRate(incorrectTyped, totalTyped int) float64 {
	if totalTyped <= 0 {
		return 0
	}
	return Round2(clampPercent(float64(incorrectTyped) / float64(totalTyped) * 100))
}

// AverageSpeed is the arithmetic mean of the speed samples, 0 when empty.
func AverageSpeed(speeds []float64) float64 {
	if len(speeds) == 0 {
		return 0
	}
	var sum float64
	for _, s := range speeds {
		sum += s
	}
	return sum / float64(len(speeds))
}

// WeaknessScore folds accuracy, error rate, and average speed into a single
// ordinal value for ranking characters by need-for-practice. Low accuracy
// and high error rate each carry 40% weight; speed below the baseline of 50
// contributes the remaining 20%.
func WeaknessScore(accuracy, errorRate, avgSpeed float64) float64 {
	speedPenalty := math.Max(0, speedBaseline-avgSpeed)
	return Round2(weightAccuracy*(100-accuracy) + weightErrorRate*errorRate + weightSpeed*speedPenalty)
}

// Consistency summarizes the stability of typing speed across a test as a
// percentage: 100 means perfectly steady, lower means more variance. It is
// derived from the coefficient of variation of the per-interval WPM samples.
// Fewer than 2 samples or a non-positive mean yields 0.
func Consistency(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := AverageSpeed(samples)
	if mean <= 0 {
		return 0
	}
	var varSum float64
	for _, s := range samples {
		d := s - mean
		varSum += d * d
	}
	stddev := math.Sqrt(varSum / float64(len(samples)))
	return Round2(clampPercent(100 * (1 - stddev/mean)))
}

// DerivedErrors back-computes an error count from a total character count
// and a stored accuracy percentage.
func DerivedErrors(totalCharacters int, accuracy float64) int {
	return totalCharacters - int(math.Round(float64(totalCharacters)*accuracy/100))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
