package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/zeplinko/retrykit/internal/testutils"
)

var errFlaky = errors.New("flaky failure")

func TestRetryable_Run_FirstAttemptSuccess(t *testing.T) {
	outcome := New(func(ctx context.Context) (string, error) {
		return "ok", nil
	}).MaxRetries(5).Run(context.Background())

	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %v", outcome)
	}
	if outcome.Data() != "ok" {
		t.Errorf("expected data 'ok', got %q", outcome.Data())
	}
	if outcome.Attempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", outcome.Attempts())
	}
	if outcome.Reason() != Succeeded {
		t.Errorf("expected reason SUCCEEDED, got %s", outcome.Reason())
	}
	if outcome.Err() != nil {
		t.Errorf("expected nil error, got %v", outcome.Err())
	}
}

func TestRetryable_Run_SucceedsAfterValidationFailures(t *testing.T) {
	// Fails validation on attempts 1..2, passes on attempt 3.
	calls := 0
	outcome := New(func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}).
		RetryUntilResult(func(attempt int, res int) bool { return res == 3 }).
		MaxRetries(5).
		Run(context.Background())

	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %v", outcome)
	}
	if outcome.Attempts() != 3 {
		t.Errorf("expected 3 attempts, got %d", outcome.Attempts())
	}
	if outcome.Data() != 3 {
		t.Errorf("expected data 3, got %d", outcome.Data())
	}
}

func TestRetryable_Run_InvalidResultExhaustion(t *testing.T) {
	// Task returns 1 forever, only 2 is acceptable, one retry allowed.
	outcome := New(func(ctx context.Context) (int, error) {
		return 1, nil
	}).
		RetryUntilResult(func(attempt int, res int) bool { return res == 2 }).
		MaxRetries(1).
		Run(context.Background())

	if outcome.Succeeded() {
		t.Fatal("expected failure")
	}
	if outcome.Attempts() != 2 {
		t.Errorf("expected 2 attempts, got %d", outcome.Attempts())
	}
	if outcome.Reason() != RetriesExhaustedInvalidResult {
		t.Errorf("expected RETRIES_EXHAUSTED_INVALID_RESULT, got %s", outcome.Reason())
	}
	if outcome.InvalidData() != 1 {
		t.Errorf("expected invalid data 1, got %d", outcome.InvalidData())
	}
	var exceeded *MaxRetriesExceededError
	if !errors.As(outcome.Err(), &exceeded) {
		t.Fatalf("expected MaxRetriesExceededError, got %v", outcome.Err())
	}
	if exceeded.Attempts != 2 {
		t.Errorf("expected error to carry 2 attempts, got %d", exceeded.Attempts)
	}
}

func TestRetryable_Run_RetryableErrorExhaustion(t *testing.T) {
	const maxRetries = 3
	calls := 0
	outcome := New(func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("attempt %d: %w", calls, errFlaky)
	}).
		RetryOnFailure(RetryOn(errFlaky)).
		MaxRetries(maxRetries).
		Run(context.Background())

	if outcome.Succeeded() {
		t.Fatal("expected failure")
	}
	if outcome.Attempts() != maxRetries+1 {
		t.Errorf("expected %d attempts, got %d", maxRetries+1, outcome.Attempts())
	}
	if outcome.Reason() != RetriesExhaustedRetryableError {
		t.Errorf("expected RETRIES_EXHAUSTED_RETRYABLE_ERROR, got %s", outcome.Reason())
	}
	// The error must be the one from the final attempt.
	want := fmt.Sprintf("attempt %d: %v", maxRetries+1, errFlaky)
	if outcome.Err() == nil || outcome.Err().Error() != want {
		t.Errorf("expected final attempt error %q, got %v", want, outcome.Err())
	}
}

func TestRetryable_Run_NonRetryableErrorAbortsImmediately(t *testing.T) {
	calls := 0
	outcome := New(func(ctx context.Context) (string, error) {
		calls++
		return "", errFlaky
	}).
		RetryOnFailure(NeverRetry()).
		MaxRetries(10).
		Run(context.Background())

	if outcome.Reason() != AbortedNonRetryableError {
		t.Errorf("expected ABORTED_NON_RETRYABLE_ERROR, got %s", outcome.Reason())
	}
	if outcome.Attempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", outcome.Attempts())
	}
	if calls != 1 {
		t.Errorf("expected task to run once, ran %d times", calls)
	}
	if !errors.Is(outcome.Err(), errFlaky) {
		t.Errorf("expected error %v, got %v", errFlaky, outcome.Err())
	}
}

func TestRetryable_Run_SkipRetryWinsOverRetryable(t *testing.T) {
	outcome := New(func(ctx context.Context) (string, error) {
		return "", errFlaky
	}).
		RetryOnFailure(AlwaysRetry()).
		SkipRetryOnFailure(RetryOn(errFlaky)).
		MaxRetries(10).
		Run(context.Background())

	if outcome.Reason() != AbortedSkipRetryError {
		t.Errorf("expected ABORTED_SKIP_RETRY_ERROR, got %s", outcome.Reason())
	}
	if outcome.Attempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", outcome.Attempts())
	}
	if !errors.Is(outcome.Err(), errFlaky) {
		t.Errorf("expected error %v, got %v", errFlaky, outcome.Err())
	}
}

func TestRetryable_Run_ErrorThenSuccess(t *testing.T) {
	calls := 0
	outcome := New(func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errFlaky
		}
		return 100, nil
	}).
		RetryOnFailure(RetryOn(errFlaky)).
		MaxRetries(3).
		Run(context.Background())

	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %v", outcome)
	}
	if outcome.Attempts() != 2 {
		t.Errorf("expected 2 attempts, got %d", outcome.Attempts())
	}
	if outcome.Data() != 100 {
		t.Errorf("expected data 100, got %d", outcome.Data())
	}
}

func TestRetryable_Run_FinalAttemptDecidesExhaustionReason(t *testing.T) {
	// Attempt 1 fails with a retryable error, attempt 2 produces a value
	// that fails validation. The final attempt determines the reason.
	calls := 0
	outcome := New(func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errFlaky
		}
		return 7, nil
	}).
		RetryUntilResult(func(attempt int, res int) bool { return false }).
		RetryOnFailure(AlwaysRetry()).
		MaxRetries(1).
		Run(context.Background())

	if outcome.Reason() != RetriesExhaustedInvalidResult {
		t.Errorf("expected RETRIES_EXHAUSTED_INVALID_RESULT, got %s", outcome.Reason())
	}
	if outcome.InvalidData() != 7 {
		t.Errorf("expected invalid data 7, got %d", outcome.InvalidData())
	}
	if outcome.Attempts() != 2 {
		t.Errorf("expected 2 attempts, got %d", outcome.Attempts())
	}
}

func TestRetryable_Run_PredicateReceivesAttemptNumbers(t *testing.T) {
	var attempts []int
	New(func(ctx context.Context) (int, error) {
		return 0, nil
	}).
		RetryUntilResult(func(attempt int, res int) bool {
			attempts = append(attempts, attempt)
			return false
		}).
		MaxRetries(2).
		Run(context.Background())

	want := []int{1, 2, 3}
	if len(attempts) != len(want) {
		t.Fatalf("expected %d predicate calls, got %d", len(want), len(attempts))
	}
	for i, a := range attempts {
		if a != want[i] {
			t.Errorf("call %d: expected attempt %d, got %d", i, want[i], a)
		}
	}
}

func TestRetryable_MaxRetries_NegativeNormalizedToZero(t *testing.T) {
	calls := 0
	outcome := New(func(ctx context.Context) (int, error) {
		calls++
		return 0, errFlaky
	}).
		RetryOnFailure(AlwaysRetry()).
		MaxRetries(-5).
		Run(context.Background())

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if outcome.Reason() != RetriesExhaustedRetryableError {
		t.Errorf("expected RETRIES_EXHAUSTED_RETRYABLE_ERROR, got %s", outcome.Reason())
	}
}

func TestRetryable_Run_DelaysFollowExponentialBackoff(t *testing.T) {
	mock := testutils.NewMockClock(t)
	trap := mock.Trap().NewTimer()
	defer trap.Close()

	done := make(chan *Outcome[int], 1)
	go func() {
		done <- New(func(ctx context.Context) (int, error) {
			return 0, errFlaky
		}).
			RetryOnFailure(AlwaysRetry()).
			MaxRetries(3).
			BaseDelay(100 * time.Millisecond).
			Backoff(ExponentialBackoff()).
			Clock(testutils.NewClockWrapper(mock)).
			Run(context.Background())
	}()

	ctx := context.Background()
	wantDelays := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
	}
	for i, want := range wantDelays {
		call := trap.MustWait(ctx)
		call.Release()
		if call.Duration != want {
			t.Errorf("delay %d: expected %v, got %v", i+1, want, call.Duration)
		}
		mock.Advance(call.Duration).MustWait(ctx)
	}

	outcome := <-done
	if outcome.Attempts() != 4 {
		t.Errorf("expected 4 attempts, got %d", outcome.Attempts())
	}
	if outcome.Reason() != RetriesExhaustedRetryableError {
		t.Errorf("expected RETRIES_EXHAUSTED_RETRYABLE_ERROR, got %s", outcome.Reason())
	}
}

func TestRetryable_Run_CancelledDuringDelay(t *testing.T) {
	mock := testutils.NewMockClock(t)
	trap := mock.Trap().NewTimer()
	defer trap.Close()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan *Outcome[int], 1)
	go func() {
		done <- New(func(ctx context.Context) (int, error) {
			calls++
			return 0, errFlaky
		}).
			RetryOnFailure(AlwaysRetry()).
			MaxRetries(3).
			BaseDelay(100 * time.Millisecond).
			Clock(testutils.NewClockWrapper(mock)).
			Run(ctx)
	}()

	// Wait until the engine is parked in the delay before attempt 2, then
	// cancel instead of advancing the clock.
	call := trap.MustWait(context.Background())
	call.Release()
	cancel()

	outcome := <-done
	if outcome.Reason() != Interrupted {
		t.Errorf("expected INTERRUPTED, got %s", outcome.Reason())
	}
	if !errors.Is(outcome.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", outcome.Err())
	}
	if outcome.Attempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", outcome.Attempts())
	}
	if calls != 1 {
		t.Errorf("expected no further attempt after cancellation, ran %d", calls)
	}
}

func TestRetryable_Run_ZeroDelaySkipsClock(t *testing.T) {
	// With a zero base delay no timer must be created; run against the mock
	// clock without advancing it.
	mock := testutils.NewMockClock(t)
	calls := 0
	outcome := New(func(ctx context.Context) (int, error) {
		calls++
		return 0, errFlaky
	}).
		RetryOnFailure(AlwaysRetry()).
		MaxRetries(2).
		Clock(testutils.NewClockWrapper(mock)).
		Run(context.Background())

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if outcome.Reason() != RetriesExhaustedRetryableError {
		t.Errorf("expected RETRIES_EXHAUSTED_RETRYABLE_ERROR, got %s", outcome.Reason())
	}
}

func TestRetryable_Run_PredicatePanicPropagates(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected predicate panic to propagate")
		}
	}()
	New(func(ctx context.Context) (int, error) {
		return 1, nil
	}).
		RetryUntilResult(func(attempt int, res int) bool {
			panic("predicate bug")
		}).
		Run(context.Background())
}

func TestRetryable_ConfigurationPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want error
	}{
		{"nil task", func() { New[int](nil) }, ErrNilTask},
		{"nil result predicate", func() { newNoop().RetryUntilResult(nil) }, ErrNilPredicate},
		{"nil error predicate", func() { newNoop().RetryOnFailure(nil) }, ErrNilPredicate},
		{"nil skip predicate", func() { newNoop().SkipRetryOnFailure(nil) }, ErrNilPredicate},
		{"nil strategy", func() { newNoop().Backoff(nil) }, ErrNilStrategy},
		{"nil clock", func() { newNoop().Clock(nil) }, ErrNilClock},
		{"negative delay", func() { newNoop().BaseDelay(-time.Second) }, ErrNegativeDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if r != tt.want {
					t.Errorf("expected panic %v, got %v", tt.want, r)
				}
			}()
			tt.fn()
		})
	}
}

func TestRetryable_Run_ToResultMatchesOutcome(t *testing.T) {
	outcomes := []*Outcome[int]{
		New(func(ctx context.Context) (int, error) { return 1, nil }).
			Run(context.Background()),
		New(func(ctx context.Context) (int, error) { return 0, errFlaky }).
			Run(context.Background()),
		New(func(ctx context.Context) (int, error) { return 1, nil }).
			RetryUntilResult(func(int, int) bool { return false }).
			Run(context.Background()),
	}

	for i, o := range outcomes {
		r := o.ToResult()
		if r.IsSuccess() != o.Succeeded() {
			t.Errorf("outcome %d: ToResult().IsSuccess()=%v, Succeeded()=%v", i, r.IsSuccess(), o.Succeeded())
		}
		if o.Succeeded() && r.Data() != o.Data() {
			t.Errorf("outcome %d: ToResult data %d != outcome data %d", i, r.Data(), o.Data())
		}
		if o.Failed() && !errors.Is(r.Err(), o.Err()) {
			t.Errorf("outcome %d: ToResult error %v != outcome error %v", i, r.Err(), o.Err())
		}
	}
}

func newNoop() *Retryable[int] {
	return New(func(ctx context.Context) (int, error) { return 0, nil })
}
