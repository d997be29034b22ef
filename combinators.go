package parsec

import (
	"strings"
	"unicode/utf8"

	"github.com/gnoswap-labs/parsec/maybe"
)

// Tuple holds the two values parsed by Pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Then runs p, then q on the remainder, and keeps the value of q.
func Then[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return func(input string) Result[B] {
		return ContinueWith(p(input), q)
	}
}

// Before runs p, then q on the remainder, and keeps the value of p.
func Before[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return func(input string) Result[A] {
		first := p(input)
		if first.IsFailure() {
			return first
		}
		second := q(first.remaining)
		if second.IsFailure() {
			return Fail[A](second.expected, second.got)
		}
		first.remaining = second.remaining
		return first
	}
}

// Sequence runs the parsers one after another, each on the remainder of the
// previous one, and keeps the value of the last. The first failure is
// returned as is and the parsers after it are not run.
func Sequence[T any](parsers ...Parser[T]) Parser[T] {
	if len(parsers) == 0 {
		violation("Sequence needs at least one parser")
	}
	return func(input string) Result[T] {
		res := parsers[0](input)
		for _, p := range parsers[1:] {
			res = ContinueWith(res, p)
		}
		return res
	}
}

// Collect runs the parsers like Sequence and gathers the value of every
// non-discarded success, in order.
func Collect[T any](parsers ...Parser[T]) Parser[[]T] {
	return func(input string) Result[[]T] {
		acc := Succeed([]T{}, input)
		for _, p := range parsers {
			acc = AppendResult(acc, MapResult(p(acc.remaining), single[T]), JoinSlices[T])
			if acc.IsFailure() {
				return acc
			}
		}
		return acc
	}
}

// Pair runs p then q and keeps both values.
func Pair[A, B any](p Parser[A], q Parser[B]) Parser[Tuple[A, B]] {
	return func(input string) Result[Tuple[A, B]] {
		first := p(input)
		if first.IsFailure() {
			return Fail[Tuple[A, B]](first.expected, first.got)
		}
		return MapResult(q(first.remaining), func(b B) Tuple[A, B] {
			return Tuple[A, B]{First: first.value, Second: b}
		})
	}
}

// Either tries p, and on failure tries q on the same input.
func Either[T any](p, q Parser[T]) Parser[T] {
	return Any(p, q)
}

// Any tries each parser on the original input and returns the first success.
// When every alternative fails, the failure of the last one is returned.
func Any[T any](parsers ...Parser[T]) Parser[T] {
	if len(parsers) == 0 {
		violation("Any needs at least one parser")
	}
	return func(input string) Result[T] {
		var res Result[T]
		for _, p := range parsers {
			res = p(input)
			if res.IsSuccess() {
				return res
			}
		}
		return res
	}
}

// Optional never fails. A success of p becomes Just; a failure becomes
// Nothing with the input left untouched.
func Optional[T any](p Parser[T]) Parser[maybe.Maybe[T]] {
	return func(input string) Result[maybe.Maybe[T]] {
		res := p(input)
		if res.IsFailure() {
			return Succeed(maybe.Nothing[T](), input)
		}
		return MapResult(res, maybe.Just[T])
	}
}

// OrDefault unwraps an optional value, using fallback for Nothing.
func OrDefault[T any](p Parser[maybe.Maybe[T]], fallback T) Parser[T] {
	return Map(p, func(m maybe.Maybe[T]) T {
		return m.Default(fallback)
	})
}

// AtLeastOne applies p as many times as it succeeds and concatenates the
// matched strings. It fails with p's failure if p does not match once.
//
// Repetition ends at the first failure of p, or right after an iteration
// that consumed no input; a parser that matches the empty string therefore
// contributes one iteration instead of looping forever.
func AtLeastOne(p Parser[string]) Parser[string] {
	return AtLeastOneWith(p, JoinStrings)
}

// Many is AtLeastOne that also succeeds, with "", on zero matches.
func Many(p Parser[string]) Parser[string] {
	return ManyWith(p, JoinStrings, "")
}

// AtLeastOneOf is AtLeastOne collecting each value into a slice.
func AtLeastOneOf[T any](p Parser[T]) Parser[[]T] {
	return AtLeastOneWith(Map(p, single[T]), JoinSlices[T])
}

// ManyOf is Many collecting each value into a slice.
func ManyOf[T any](p Parser[T]) Parser[[]T] {
	return ManyWith(Map(p, single[T]), JoinSlices[T], []T{})
}

// AtLeastOneWith is AtLeastOne with a caller supplied join.
func AtLeastOneWith[T any](p Parser[T], join func(T, T) T) Parser[T] {
	return func(input string) Result[T] {
		first := p(input)
		if first.IsFailure() {
			return first
		}
		return repeat(p, join, first, input)
	}
}

// ManyWith is Many with a caller supplied join; empty is the value of zero
// matches.
func ManyWith[T any](p Parser[T], join func(T, T) T, empty T) Parser[T] {
	return func(input string) Result[T] {
		first := p(input)
		if first.IsFailure() {
			return Succeed(empty, input)
		}
		return repeat(p, join, first, input)
	}
}

func repeat[T any](p Parser[T], join func(T, T) T, acc Result[T], before string) Result[T] {
	for len(acc.remaining) < len(before) {
		before = acc.remaining
		next := p(before)
		if next.IsFailure() {
			break
		}
		acc = AppendResult(acc, next, join)
	}
	return acc
}

// OneOf matches a single character that is one of chars. Each element of
// chars must be exactly one character; anything else panics.
func OneOf(chars ...string) Parser[string] {
	set := charSet("OneOf", chars)
	return Satisfy("oneOf("+strings.Join(chars, "")+")", func(r rune) bool {
		_, ok := set[r]
		return ok
	})
}

// OneOfS is OneOf over the characters of s.
func OneOfS(s string) Parser[string] {
	return OneOf(splitChars(s)...)
}

// NoneOf matches a single character that is not one of chars. Each element
// of chars must be exactly one character; anything else panics.
func NoneOf(chars ...string) Parser[string] {
	set := charSet("NoneOf", chars)
	return Satisfy("noneOf("+strings.Join(chars, "")+")", func(r rune) bool {
		_, ok := set[r]
		return !ok
	})
}

// NoneOfS is NoneOf over the characters of s.
func NoneOfS(s string) Parser[string] {
	return NoneOf(splitChars(s)...)
}

func charSet(name string, chars []string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		if utf8.RuneCountInString(c) != 1 {
			violation("%s expects single characters, got %q", name, c)
		}
		r, _ := utf8.DecodeRuneInString(c)
		set[r] = struct{}{}
	}
	return set
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}

func single[T any](v T) []T { return []T{v} }
