// Package outcome models results that may have been produced in a degraded mode.
package outcome

// Outcome is a value plus, when degraded, the reason the preferred path was abandoned.
type Outcome[T any] struct {
	value  T
	reason error
}

// OK wraps a value produced on the preferred path.
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Degraded wraps a fallback value with the failure that caused the fallback.
func Degraded[T any](v T, reason error) Outcome[T] {
	return Outcome[T]{value: v, reason: reason}
}

// Value returns the wrapped value.
func (o Outcome[T]) Value() T { return o.value }

// IsDegraded reports whether the value came from a fallback path.
func (o Outcome[T]) IsDegraded() bool { return o.reason != nil }

// Reason returns the failure behind a degraded outcome, or nil.
func (o Outcome[T]) Reason() error { return o.reason }
