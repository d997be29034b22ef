// Package maybe provides an optional value container used to thread
// intermediate parse values that may or may not have been produced.
package maybe

import "fmt"

// Maybe holds either a value (Just) or nothing at all (Nothing).
// The zero value is Nothing.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Just wraps a present value.
func Just[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, ok: true}
}

// Nothing returns the absent variant.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

func (m Maybe[T]) IsJust() bool    { return m.ok }
func (m Maybe[T]) IsNothing() bool { return !m.ok }

// Default returns the wrapped value, or fallback when m is Nothing.
func (m Maybe[T]) Default(fallback T) T {
	if !m.ok {
		return fallback
	}
	return m.value
}

// Get returns the wrapped value and whether it was present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

func (m Maybe[T]) String() string {
	if !m.ok {
		return "Nothing"
	}
	return fmt.Sprintf("Just(%v)", m.value)
}

// Map applies f to the value of a Just. f is never called for Nothing.
func Map[T, U any](m Maybe[T], f func(T) U) Maybe[U] {
	if !m.ok {
		return Nothing[U]()
	}
	return Just(f(m.value))
}

// Bind chains a computation that may itself produce Nothing.
func Bind[T, U any](m Maybe[T], f func(T) Maybe[U]) Maybe[U] {
	if !m.ok {
		return Nothing[U]()
	}
	return f(m.value)
}
