// Package retry executes fallible operations with policy-driven retry
// semantics.
//
// A Retryable wraps a task and re-executes it until one of six terminal
// states is reached: the result passes validation, the retry budget is
// exhausted by invalid results or by retryable errors, a non-retryable or
// skip-retry error aborts the session, or the context is cancelled while
// waiting between attempts. The Outcome records which of these happened,
// how many attempts ran, and the final value or error.
//
// Configuration is fluent and happens before the first Run:
//
//	outcome := retry.New(task).
//		RetryUntilResult(accept).
//		RetryOnFailure(retry.RetryOn(io.ErrUnexpectedEOF)).
//		SkipRetryOnFailure(retry.RetryOnAs[*PermissionError]()).
//		MaxRetries(3).
//		BaseDelay(50 * time.Millisecond).
//		Backoff(retry.ExponentialBackoff()).
//		Run(ctx)
//
//	if outcome.Succeeded() {
//		use(outcome.Data())
//	}
//
// Classification precedence per attempt: the skip-retry predicate wins over
// the retryable predicate, which wins over the retry budget. MaxRetries
// bounds the attempts after the first, so a session with MaxRetries(n) and
// persistent retryable failures performs n+1 attempts.
//
// Built-in backoff strategies cover fixed, linear and exponential delays;
// exponential growth saturates at the maximum representable duration
// instead of overflowing. Custom strategies plug in through BackoffFunc.
//
// Task errors are always absorbed into the Outcome. Panics raised by the
// task, a predicate, a backoff strategy or a listener are never recovered;
// they indicate programming errors and propagate to the caller.
//
// A Retryable instance keeps per-session loop state and must not be run
// concurrently with itself; create one instance per parallel execution.
// Outcome values are immutable and freely shareable.
package retry
