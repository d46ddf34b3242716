// Package container provides minimal single-value holder types
package container

// Container is a read-only holder for a single value. It is useful for
// capturing a value by reference from closures without exposing mutation.
type Container[T any] struct {
	value T
}

// Of creates a Container holding the provided value.
func Of[T any](value T) *Container[T] {
	return &Container[T]{value: value}
}

// Value returns the contained value.
func (c *Container[T]) Value() T {
	return c.value
}

// MutableContainer is a Container whose value can be replaced after
// construction. It performs no synchronization; guard it externally when
// shared between goroutines.
type MutableContainer[T any] struct {
	Container[T]
}

// OfMutable creates a MutableContainer holding the provided value.
func OfMutable[T any](value T) *MutableContainer[T] {
	return &MutableContainer[T]{Container[T]{value: value}}
}

// Set replaces the contained value.
func (c *MutableContainer[T]) Set(value T) {
	c.value = value
}
