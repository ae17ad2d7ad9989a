// Package stats contains scoring calculations and reporting.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/pinkytype/internal/model"
)

// CharsPerWord is the standard word length used for WPM.
const CharsPerWord = 5.0

// LiveWarmup is how long a session must run before live WPM is reported.
const LiveWarmup = 500 * time.Millisecond

// WPM returns words per minute from correct characters only. It is 0 when
// no time has elapsed.
func WPM(correct int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return math.Max(0, (float64(correct)/CharsPerWord)/minutes)
}

// LiveWPM is WPM suppressed during the warmup window.
func LiveWPM(correct int, elapsed time.Duration) float64 {
	if elapsed <= LiveWarmup {
		return 0
	}
	return WPM(correct, elapsed)
}

// Accuracy returns the percentage of correct characters, 100 when nothing
// has been counted.
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total <= 0 {
		return 100
	}
	return math.Max(0, float64(correct)/float64(total)*100)
}

// Final computes the stats recorded when a session ends.
func Final(chars model.CharStats, elapsed time.Duration) model.SessionStats {
	if elapsed < 0 {
		elapsed = 0
	}
	return model.SessionStats{
		WPM:      WPM(chars.Correct, elapsed),
		Accuracy: Accuracy(chars.Correct, chars.Incorrect),
		Chars: model.CharStats{
			Correct:   chars.Correct,
			Incorrect: chars.Incorrect,
			Total:     chars.Correct + chars.Incorrect,
		},
		TimeElapsed: elapsed.Seconds(),
	}
}
