// Package retry provides the policy-driven retry engine
package retry

import (
	"context"
	"time"

	"github.com/zeplinko/retrykit/pkg/clock"
)

// Task is the fallible operation executed under retry. The engine passes its
// context through unchanged but itself only observes cancellation between
// attempts, never mid-task.
type Task[R any] func(ctx context.Context) (R, error)

// ResultPredicate decides whether a produced value is acceptable. attempt is
// 1-based.
type ResultPredicate[R any] func(attempt int, res R) bool

// ErrorPredicate classifies an error raised by the task. attempt is 1-based.
type ErrorPredicate func(attempt int, err error) bool

// Retryable executes a Task with retry semantics. Behavior is configured
// fluently before the first Run:
//
//	outcome := retry.New(fetch).
//		RetryUntilResult(func(attempt int, res int) bool { return res > 0 }).
//		RetryOnFailure(retry.RetryOnTimeout()).
//		MaxRetries(4).
//		BaseDelay(100 * time.Millisecond).
//		Backoff(retry.ExponentialBackoff()).
//		Run(ctx)
//
// The setters validate eagerly and panic on nil arguments or negative
// delays, so misconfiguration surfaces at configuration time rather than
// during execution.
//
// A Retryable holds mutable loop state during Run and is not safe for
// concurrent overlapping executions. Configure it in one goroutine and run
// it once at a time; for parallel retries build one Retryable per
// execution.
type Retryable[R any] struct {
	task          Task[R]
	resultPred    ResultPredicate[R]
	errorPred     ErrorPredicate
	skipRetryPred ErrorPredicate
	maxRetries    int
	baseDelay     time.Duration
	backoff       BackoffStrategy
	clk           clock.Clock
	listener      Listener
}

// New creates a Retryable for the supplied task with defaults: any result is
// accepted, no error is retried, zero retries, zero base delay, fixed
// backoff. A nil task panics with ErrNilTask.
func New[R any](task Task[R]) *Retryable[R] {
	if task == nil {
		panic(ErrNilTask)
	}
	return &Retryable[R]{
		task:       task,
		resultPred: func(int, R) bool { return true },
		errorPred:  func(int, error) bool { return false },
		maxRetries: 0,
		baseDelay:  0,
		backoff:    FixedBackoff(),
		clk:        clock.NewRealClock(),
	}
}

// RetryUntilResult sets the validation predicate that must hold for a
// produced value to be accepted. A rejected value is retried subject to
// MaxRetries and the delay settings. If the predicate itself panics, the
// panic propagates and no Outcome is produced; that signals a bug in the
// predicate, not a task failure.
func (r *Retryable[R]) RetryUntilResult(p ResultPredicate[R]) *Retryable[R] {
	if p == nil {
		panic(ErrNilPredicate)
	}
	r.resultPred = p
	return r
}

// RetryOnFailure sets the predicate deciding which task errors qualify for a
// retry. Errors it rejects abort the session immediately with
// AbortedNonRetryableError. Panics from the predicate propagate uncaught.
func (r *Retryable[R]) RetryOnFailure(p ErrorPredicate) *Retryable[R] {
	if p == nil {
		panic(ErrNilPredicate)
	}
	r.errorPred = p
	return r
}

// SkipRetryOnFailure sets an optional predicate naming errors that must
// never be retried. A match aborts the session immediately with
// AbortedSkipRetryError and takes precedence over RetryOnFailure and the
// retry budget.
func (r *Retryable[R]) SkipRetryOnFailure(p ErrorPredicate) *Retryable[R] {
	if p == nil {
		panic(ErrNilPredicate)
	}
	r.skipRetryPred = p
	return r
}

// MaxRetries sets how many times the task may be re-executed after the
// initial attempt, so the total attempt count is maxRetries+1. Negative
// values are normalized to 0.
func (r *Retryable[R]) MaxRetries(maxRetries int) *Retryable[R] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	r.maxRetries = maxRetries
	return r
}

// BaseDelay sets the base delay fed to the backoff strategy between
// attempts. A negative duration panics with ErrNegativeDelay. No upper bound
// is enforced; callers are responsible for choosing sensible delays.
func (r *Retryable[R]) BaseDelay(d time.Duration) *Retryable[R] {
	if d < 0 {
		panic(ErrNegativeDelay)
	}
	r.baseDelay = d
	return r
}

// Backoff selects the strategy used to compute the delay before each retry.
func (r *Retryable[R]) Backoff(s BackoffStrategy) *Retryable[R] {
	if s == nil {
		panic(ErrNilStrategy)
	}
	r.backoff = s
	return r
}

// Clock replaces the time source used for inter-attempt delays. Intended for
// tests.
func (r *Retryable[R]) Clock(c clock.Clock) *Retryable[R] {
	if c == nil {
		panic(ErrNilClock)
	}
	r.clk = c
	return r
}

// Listen attaches a Listener notified when a retry is scheduled and when
// the session terminates.
func (r *Retryable[R]) Listen(l Listener) *Retryable[R] {
	r.listener = l
	return r
}

// Run executes the task applying all retry rules and validation, blocking
// until a terminal state is reached, and returns the Outcome describing it.
//
// Per attempt the engine invokes the task and classifies the result: an
// accepted value succeeds; a rejected value or a retryable error consumes
// retry budget; a skip-retry or non-retryable error aborts immediately. When
// the budget is exhausted the final attempt decides the exhaustion reason.
// Between attempts the engine waits for the backoff delay; if ctx is
// cancelled during that wait the session ends with Interrupted carrying
// ctx.Err(). Task errors are absorbed into the Outcome, never returned as
// panics; panics from the task or any configured predicate or strategy
// propagate uncaught.
func (r *Retryable[R]) Run(ctx context.Context) *Outcome[R] {
	attempt := 0
	var invalidData R

	for {
		attempt++
		value, taskErr := r.task(ctx)

		if taskErr == nil {
			if r.resultPred(attempt, value) {
				return r.terminate(successOutcome(value, attempt))
			}
			// Rejected value, retry if budget remains.
			invalidData = value
		} else {
			if r.skipRetryPred != nil && r.skipRetryPred(attempt, taskErr) {
				return r.terminate(failureOutcome[R](taskErr, attempt, AbortedSkipRetryError))
			}
			if !r.errorPred(attempt, taskErr) {
				return r.terminate(failureOutcome[R](taskErr, attempt, AbortedNonRetryableError))
			}
		}

		if attempt > r.maxRetries {
			if taskErr == nil {
				return r.terminate(invalidResultOutcome(invalidData, attempt))
			}
			return r.terminate(failureOutcome[R](taskErr, attempt, RetriesExhaustedRetryableError))
		}

		delay := r.backoff.NextDelay(r.baseDelay, attempt)
		if r.listener != nil {
			r.listener.OnRetryScheduled(attempt, delay, taskErr)
		}
		if delay > 0 {
			timer := r.clk.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return r.terminate(failureOutcome[R](ctx.Err(), attempt, Interrupted))
			case <-timer.C():
			}
		}
	}
}

func (r *Retryable[R]) terminate(o *Outcome[R]) *Outcome[R] {
	if r.listener != nil {
		r.listener.OnTermination(o.attempts, o.reason, o.err)
	}
	return o
}
