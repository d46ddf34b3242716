// Package result provides an immutable success-or-failure value type for
// handling errors as ordinary values instead of early returns.
package result

import "errors"

// Result captures either the successful value of a computation or the error
// it produced - never both. The zero value is a success carrying the zero
// value of T.
type Result[T any] struct {
	data T
	err  error
}

// Success creates a successful Result containing the provided data.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Failure creates a failed Result containing the provided error.
// A nil error is a caller programming error and panics.
func Failure[T any](err error) Result[T] {
	if err == nil {
		panic(errors.New("result: failure requires a non-nil error"))
	}
	return Result[T]{err: err}
}

// Of runs fn and captures its outcome: a successful Result with the returned
// value if fn returns a nil error, otherwise a failed Result with the error.
func Of[T any](fn func() (T, error)) Result[T] {
	value, err := fn()
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

// IsSuccess reports whether the Result represents success.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether the Result represents failure.
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Data returns the success value, or the zero value of T on failure.
func (r Result[T]) Data() T {
	return r.data
}

// Err returns the error on failure, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the success value and a nil error, or the zero value of T and
// the captured error.
func (r Result[T]) Get() (T, error) {
	return r.data, r.err
}

// Must returns the success value and panics with the captured error on
// failure.
func (r Result[T]) Must() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.data
}

// Ok returns the success value and true, or the zero value of T and false.
func (r Result[T]) Ok() (T, bool) {
	return r.data, r.err == nil
}

// OrElse returns the success value, or other on failure.
func (r Result[T]) OrElse(other T) T {
	if r.err != nil {
		return other
	}
	return r.data
}

// OrElseGet returns the success value, or the value produced by fn from the
// captured error on failure.
func (r Result[T]) OrElseGet(fn func(error) T) T {
	if r.err != nil {
		return fn(r.err)
	}
	return r.data
}

// Recover turns a failure into a success using fn. A success is returned
// unchanged.
func (r Result[T]) Recover(fn func(error) T) Result[T] {
	if r.err != nil {
		return Success(fn(r.err))
	}
	return r
}

// RecoverIf turns a failure matching pred into a success using fn. A success
// or a non-matching failure is returned unchanged. Use errors.Is or errors.As
// inside pred to match by error kind.
func (r Result[T]) RecoverIf(pred func(error) bool, fn func(error) T) Result[T] {
	if r.err != nil && pred(r.err) {
		return Success(fn(r.err))
	}
	return r
}

// Map transforms the success value of r using fn. A failure is propagated
// unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(fn(r.data))
}

// FlatMap chains a computation that itself returns a Result. A failure is
// propagated unchanged.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return fn(r.data)
}
