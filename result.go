package parsec

import "fmt"

// Result is the outcome of running a parser: either a success carrying the
// parsed value and the unconsumed remainder of the input, or a failure
// carrying what the parser expected and what it got instead.
//
// Results are immutable. Reading success-only accessors on a failure (or the
// reverse) panics with ErrContractViolation.
type Result[T any] struct {
	ok        bool
	discarded bool
	value     T
	remaining string
	expected  string
	got       string
}

// Succeed builds a successful result.
func Succeed[T any](value T, remaining string) Result[T] {
	return Result[T]{ok: true, value: value, remaining: remaining}
}

// Fail builds a failed result.
func Fail[T any](expected, got string) Result[T] {
	return Result[T]{expected: expected, got: got}
}

func (r Result[T]) IsSuccess() bool { return r.ok }
func (r Result[T]) IsFailure() bool { return !r.ok }

// IsDiscarded reports whether the success was marked by Discard. Failures are
// never discarded.
func (r Result[T]) IsDiscarded() bool { return r.ok && r.discarded }

func (r Result[T]) Value() T {
	if !r.ok {
		violation("can't read the value of a failed result")
	}
	return r.value
}

func (r Result[T]) Remaining() string {
	if !r.ok {
		violation("can't read the remainder of a failed result")
	}
	return r.remaining
}

func (r Result[T]) Expected() string {
	if r.ok {
		violation("can't read the expectation of a successful result")
	}
	return r.expected
}

func (r Result[T]) Got() string {
	if r.ok {
		violation("can't read the actual input of a successful result")
	}
	return r.got
}

// Err returns nil for a success and a *ParseError for a failure.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return &ParseError{Expected: r.expected, Got: r.got}
}

// Discard marks a success so that Append and Collect skip its value. The
// remainder is kept. Failures are returned unchanged.
func (r Result[T]) Discard() Result[T] {
	if !r.ok {
		return r
	}
	r.discarded = true
	return r
}

// Alternative returns r if it succeeded, otherwise other if other succeeded,
// otherwise r. The first failure is the one reported.
func (r Result[T]) Alternative(other Result[T]) Result[T] {
	if r.ok || !other.ok {
		return r
	}
	return other
}

func (r Result[T]) String() string {
	if !r.ok {
		return fmt.Sprintf("Failure(expected=%s, got=%s)", r.expected, r.got)
	}
	return fmt.Sprintf("Success(%v, %q)", r.value, r.remaining)
}

// MapResult applies f to the value of a success. The discard mark survives.
// f is never called on a failure.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.expected, r.got)
	}
	return Result[U]{ok: true, discarded: r.discarded, value: f(r.value), remaining: r.remaining}
}

// ContinueWith runs p on the remainder of a success. A failure short-circuits
// and p is not invoked.
func ContinueWith[T, U any](r Result[T], p Parser[U]) Result[U] {
	if !r.ok {
		return Fail[U](r.expected, r.got)
	}
	return p(r.remaining)
}

// AppendResult joins two results. A failed r is returned as is; otherwise a
// failed other is returned. Two successes yield join(r, other) with other's
// remainder. A discarded side contributes its consumption but not its value.
func AppendResult[T any](r, other Result[T], join func(T, T) T) Result[T] {
	if !r.ok {
		return r
	}
	if !other.ok {
		return other
	}

	switch {
	case r.discarded && other.discarded:
		return Result[T]{ok: true, discarded: true, value: r.value, remaining: other.remaining}
	case r.discarded:
		return Succeed(other.value, other.remaining)
	case other.discarded:
		return Succeed(r.value, other.remaining)
	}
	return Succeed(join(r.value, other.value), other.remaining)
}
