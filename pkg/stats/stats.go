// Package stats turns raw search counters into throughput and
// success-probability figures. All functions are pure; formatting for
// display belongs to the caller.
package stats

import (
	"math"
	"time"
)

// MaxProbability is the display ceiling for the success estimate.
// A probabilistic search never reaches exactly 100%.
const MaxProbability = 0.9999

// Speed returns attempts per second, or 0 when no time has elapsed.
func Speed(attempts uint64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(attempts) / secs
}

// Probability estimates the chance that a match would have been found after
// the given number of attempts, under uniform sampling with replacement:
// 1 - e^(-attempts/difficulty), clamped to MaxProbability.
func Probability(attempts uint64, difficulty float64) float64 {
	if difficulty <= 0 {
		return 0
	}
	p := 1 - math.Exp(-float64(attempts)/difficulty)
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}
