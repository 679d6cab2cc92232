package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoffDelay computes the delay before the next attempt:
// initialDuration * multiplier^(attempt-1), capped at maxDuration, plus a random
// jitter in [0, jitter). attempt is 1-based; values below 1 are treated as 1.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng *rand.Rand,
	param BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := float64(param.InitialDuration()) * math.Pow(param.Multiplier(), float64(attempt-1))
	if param.MaxDuration() > 0 && delay > float64(param.MaxDuration()) {
		delay = float64(param.MaxDuration())
	}

	result := time.Duration(delay)
	if jitter > 0 && rng != nil {
		result += time.Duration(rng.Int63n(int64(jitter)))
	}
	return result
}

// MaxDuration returns the largest of the given durations, or zero when none are given.
func MaxDuration(durations ...time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	max := durations[0]
	for _, d := range durations[1:] {
		if d > max {
			max = d
		}
	}
	return max
}
