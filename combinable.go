package parsec

// Combinable is the capability required by AppendCombinable and the
// combinable repetition helpers: a value that can absorb another value of
// the same type, associatively.
type Combinable[T any] interface {
	Combine(other T) T
}

// JoinStrings concatenates two strings.
func JoinStrings(a, b string) string { return a + b }

// JoinSlices concatenates two slices into a fresh slice.
func JoinSlices[E any](a, b []E) []E {
	out := make([]E, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// JoinCombinable joins two values through their Combine method.
func JoinCombinable[T Combinable[T]](a, b T) T { return a.Combine(b) }
