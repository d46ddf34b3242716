// Package retry defines error types used by the retry engine
package retry

import (
	"errors"
	"fmt"
)

// Configuration errors. The fluent setters panic with these values when
// given arguments that indicate a caller programming error.
var (
	// ErrNilTask indicates a nil task was passed to New
	ErrNilTask = errors.New("retry: task must not be nil")

	// ErrNilPredicate indicates a nil predicate was passed to a setter
	ErrNilPredicate = errors.New("retry: predicate must not be nil")

	// ErrNilStrategy indicates a nil backoff strategy was passed to Backoff
	ErrNilStrategy = errors.New("retry: backoff strategy must not be nil")

	// ErrNilClock indicates a nil clock was passed to Clock
	ErrNilClock = errors.New("retry: clock must not be nil")

	// ErrNegativeDelay indicates a negative duration was passed to BaseDelay
	ErrNegativeDelay = errors.New("retry: base delay must not be negative")
)

// MaxRetriesExceededError is the error attached to an Outcome when every
// attempt produced a result that failed validation and the retry budget ran
// out.
type MaxRetriesExceededError struct {
	// Attempts is the total number of attempts performed
	Attempts int
}

// Error implements the error interface
func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("retry: result validation failed after %d attempts", e.Attempts)
}
