package parsec

// Parser turns an input string into a Result. Parsers hold no mutable state:
// the same Parser may be run any number of times, concurrently, on
// independent inputs.
type Parser[T any] func(input string) Result[T]

// Run invokes the parser on input.
func (p Parser[T]) Run(input string) Result[T] {
	return p(input)
}

// ParseAll runs the parser and requires the whole input to be consumed.
func (p Parser[T]) ParseAll(input string) (T, error) {
	var zero T
	res := p(input)
	if res.IsFailure() {
		return zero, res.Err()
	}
	if res.remaining != "" {
		return zero, TrailingInput(res.remaining)
	}
	return res.value, nil
}

// Or is Either(p, other).
func (p Parser[T]) Or(other Parser[T]) Parser[T] {
	return Either(p, other)
}

// Discard marks successes of p so that Append and Collect skip their value.
// The input consumed by p is still consumed.
func (p Parser[T]) Discard() Parser[T] {
	return func(input string) Result[T] {
		return p(input).Discard()
	}
}

// Label replaces the expectation reported by a failure of p with name.
// The actual input reported in got is kept.
func (p Parser[T]) Label(name string) Parser[T] {
	return func(input string) Result[T] {
		res := p(input)
		if res.IsFailure() {
			return Fail[T](name, res.got)
		}
		return res
	}
}

// Map transforms the value of a successful parse.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(input string) Result[U] {
		return MapResult(p(input), f)
	}
}

// Construct wraps a successful value in a single-argument constructor of the
// target type.
func Construct[T, U any](p Parser[T], ctor func(T) U) Parser[U] {
	return Map(p, ctor)
}

// Identity returns a parser that behaves exactly like p. Failures of p are
// reported unchanged.
func Identity[T any](p Parser[T]) Parser[T] {
	return func(input string) Result[T] {
		return p(input)
	}
}

// Ignore is p.Discard().
func Ignore[T any](p Parser[T]) Parser[T] {
	return p.Discard()
}

// AppendWith runs p then q on the remainder and joins both values.
func AppendWith[T any](p, q Parser[T], join func(T, T) T) Parser[T] {
	return func(input string) Result[T] {
		first := p(input)
		if first.IsFailure() {
			return first
		}
		return AppendResult(first, q(first.remaining), join)
	}
}

// Append concatenates the strings parsed by p and q.
func Append(p, q Parser[string]) Parser[string] {
	return AppendWith(p, q, JoinStrings)
}

// AppendSlice concatenates the slices parsed by p and q.
func AppendSlice[E any](p, q Parser[[]E]) Parser[[]E] {
	return AppendWith(p, q, JoinSlices[E])
}

// AppendCombinable joins the values parsed by p and q with Combine.
func AppendCombinable[T Combinable[T]](p, q Parser[T]) Parser[T] {
	return AppendWith(p, q, JoinCombinable[T])
}
