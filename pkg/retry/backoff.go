// Package retry provides backoff strategy implementations
package retry

import (
	"math"
	"time"
)

// maxDelay is the largest representable delay; overflow clamps here.
const maxDelay = time.Duration(math.MaxInt64)

// BackoffStrategy calculates the delay before each retry. Implementations
// must be pure: the engine may call NextDelay any number of times and relies
// only on the returned value.
type BackoffStrategy interface {
	// NextDelay calculates the delay before the next retry attempt from the
	// configured base delay and the 1-based number of the attempt that just
	// completed.
	NextDelay(base time.Duration, attempt int) time.Duration
}

// BackoffFunc adapts a plain function to a BackoffStrategy.
type BackoffFunc func(base time.Duration, attempt int) time.Duration

// NextDelay calls the wrapped function.
func (f BackoffFunc) NextDelay(base time.Duration, attempt int) time.Duration {
	return f(base, attempt)
}

// FixedBackoff returns the base delay unchanged for every attempt.
func FixedBackoff() BackoffStrategy {
	return BackoffFunc(func(base time.Duration, attempt int) time.Duration {
		return base
	})
}

// LinearBackoff multiplies the base delay by the attempt number:
// base, base*2, base*3, and so on. Overflow clamps to the maximum
// representable delay.
func LinearBackoff() BackoffStrategy {
	return BackoffFunc(func(base time.Duration, attempt int) time.Duration {
		if attempt <= 0 || base <= 0 {
			return 0
		}
		if base > maxDelay/time.Duration(attempt) {
			return maxDelay
		}
		return base * time.Duration(attempt)
	})
}

// ExponentialBackoff doubles the delay with each attempt:
// base, base*2, base*4, base*8, and so on. Overflow clamps to the maximum
// representable delay instead of wrapping negative.
func ExponentialBackoff() BackoffStrategy {
	return BackoffFunc(func(base time.Duration, attempt int) time.Duration {
		if attempt <= 0 || base <= 0 {
			return 0
		}
		shift := attempt - 1
		if shift >= 63 {
			return maxDelay
		}
		multiplier := time.Duration(1) << shift
		if base > maxDelay/multiplier {
			return maxDelay
		}
		return base * multiplier
	})
}
