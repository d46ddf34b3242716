// Package retry provides ready-made retry predicates
package retry

import "errors"

// AcceptAnyResult returns the default result predicate: every produced value
// passes validation.
func AcceptAnyResult[R any]() ResultPredicate[R] {
	return func(int, R) bool { return true }
}

// NeverRetry returns the default error predicate: no error is retried.
func NeverRetry() ErrorPredicate {
	return func(int, error) bool { return false }
}

// AlwaysRetry returns an error predicate that retries every error.
func AlwaysRetry() ErrorPredicate {
	return func(int, error) bool { return true }
}

// RetryOn returns an error predicate matching any of the target errors via
// errors.Is.
func RetryOn(targets ...error) ErrorPredicate {
	return func(_ int, err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// RetryOnAs returns an error predicate matching errors of type E via
// errors.As. This is the type-filtered counterpart of RetryOn.
func RetryOnAs[E error]() ErrorPredicate {
	return func(_ int, err error) bool {
		var target E
		return errors.As(err, &target)
	}
}

// RetryOnTimeout returns an error predicate matching errors that report
// themselves as timeouts through the net-style Timeout method.
func RetryOnTimeout() ErrorPredicate {
	return func(_ int, err error) bool {
		var timeout interface{ Timeout() bool }
		return errors.As(err, &timeout) && timeout.Timeout()
	}
}

// RetryOnTemporary returns an error predicate matching errors that report
// themselves as transient through the net-style Temporary method.
func RetryOnTemporary() ErrorPredicate {
	return func(_ int, err error) bool {
		var temp interface{ Temporary() bool }
		return errors.As(err, &temp) && temp.Temporary()
	}
}

// AnyOf combines error predicates with OR semantics.
func AnyOf(preds ...ErrorPredicate) ErrorPredicate {
	return func(attempt int, err error) bool {
		for _, p := range preds {
			if p(attempt, err) {
				return true
			}
		}
		return false
	}
}

// AllOf combines error predicates with AND semantics. With no predicates it
// matches everything.
func AllOf(preds ...ErrorPredicate) ErrorPredicate {
	return func(attempt int, err error) bool {
		for _, p := range preds {
			if !p(attempt, err) {
				return false
			}
		}
		return true
	}
}

// Not inverts an error predicate.
func Not(p ErrorPredicate) ErrorPredicate {
	return func(attempt int, err error) bool {
		return !p(attempt, err)
	}
}
