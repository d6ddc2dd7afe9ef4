package retry

import "time"

// maxShift caps exponential growth so the delay never overflows and a long
// retry budget does not stall a worker for hours.
const maxShift = 10

// ExponentialBackoff returns delay based on attempt number.
// The delay doubles with each attempt: base * 2^attempt, capped at base * 2^10.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxShift {
		attempt = maxShift
	}
	return base * (1 << attempt)
}
