// Package retry defines the outcome model for completed retry sessions
package retry

import (
	"fmt"

	"github.com/zeplinko/retrykit/pkg/result"
)

// TerminationReason identifies why a retry session stopped.
type TerminationReason int

const (
	// Succeeded means the task produced a result that passed validation.
	Succeeded TerminationReason = iota

	// RetriesExhaustedInvalidResult means the retry budget ran out because
	// every produced result failed validation.
	RetriesExhaustedInvalidResult

	// RetriesExhaustedRetryableError means the retry budget ran out because
	// every attempt failed with a retryable error.
	RetriesExhaustedRetryableError

	// AbortedNonRetryableError means an attempt failed with an error the
	// policy does not mark retryable; no further attempts were made.
	AbortedNonRetryableError

	// AbortedSkipRetryError means an attempt failed with an error matching
	// the skip-retry predicate; no further attempts were made.
	AbortedSkipRetryError

	// Interrupted means the context was cancelled while waiting between
	// attempts.
	Interrupted
)

// String returns a human-readable name for the termination reason.
func (r TerminationReason) String() string {
	switch r {
	case Succeeded:
		return "SUCCEEDED"
	case RetriesExhaustedInvalidResult:
		return "RETRIES_EXHAUSTED_INVALID_RESULT"
	case RetriesExhaustedRetryableError:
		return "RETRIES_EXHAUSTED_RETRYABLE_ERROR"
	case AbortedNonRetryableError:
		return "ABORTED_NON_RETRYABLE_ERROR"
	case AbortedSkipRetryError:
		return "ABORTED_SKIP_RETRY_ERROR"
	case Interrupted:
		return "INTERRUPTED"
	default:
		return fmt.Sprintf("TerminationReason(%d)", int(r))
	}
}

// Outcome is the immutable record of one completed retry session. It is
// created exactly once when the retry loop exits and is safe to share
// between goroutines.
type Outcome[R any] struct {
	data        R
	err         error
	attempts    int
	invalidData R
	reason      TerminationReason
}

func successOutcome[R any](data R, attempts int) *Outcome[R] {
	return &Outcome[R]{data: data, attempts: attempts, reason: Succeeded}
}

func failureOutcome[R any](err error, attempts int, reason TerminationReason) *Outcome[R] {
	return &Outcome[R]{err: err, attempts: attempts, reason: reason}
}

func invalidResultOutcome[R any](invalidData R, attempts int) *Outcome[R] {
	return &Outcome[R]{
		err:         &MaxRetriesExceededError{Attempts: attempts},
		attempts:    attempts,
		invalidData: invalidData,
		reason:      RetriesExhaustedInvalidResult,
	}
}

// Succeeded reports whether the session ended with a validated result.
func (o *Outcome[R]) Succeeded() bool {
	return o.reason == Succeeded
}

// Failed reports whether the session ended in any terminal state other than
// success.
func (o *Outcome[R]) Failed() bool {
	return o.reason != Succeeded
}

// Data returns the validated result on success, or the zero value of R on
// failure.
func (o *Outcome[R]) Data() R {
	return o.data
}

// Err returns the error the session ended with, or nil on success. On
// validation exhaustion this is a *MaxRetriesExceededError; on interruption
// it is the context error.
func (o *Outcome[R]) Err() error {
	return o.err
}

// Attempts returns the total number of attempts performed, including the
// final one.
func (o *Outcome[R]) Attempts() int {
	return o.attempts
}

// Reason returns the termination reason.
func (o *Outcome[R]) Reason() TerminationReason {
	return o.reason
}

// InvalidData returns the last result that failed validation when the
// session ended with RetriesExhaustedInvalidResult, or the zero value of R
// otherwise.
func (o *Outcome[R]) InvalidData() R {
	return o.invalidData
}

// ToResult projects the outcome onto the generic success/failure value type
// for composition with other code.
func (o *Outcome[R]) ToResult() result.Result[R] {
	if o.Failed() {
		return result.Failure[R](o.err)
	}
	return result.Success(o.data)
}

// String returns a short description of the outcome for logs.
func (o *Outcome[R]) String() string {
	if o.Succeeded() {
		return fmt.Sprintf("outcome{reason: %s, attempts: %d}", o.reason, o.attempts)
	}
	return fmt.Sprintf("outcome{reason: %s, attempts: %d, err: %v}", o.reason, o.attempts, o.err)
}
