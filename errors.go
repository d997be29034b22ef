package parsec

import (
	"errors"
	"fmt"
)

// ErrContractViolation is wrapped by every panic raised for programmer
// errors: reading the wrong variant of a Result, joining values of
// incompatible shapes, or misconfiguring a combinator.
var ErrContractViolation = errors.New("parsec: contract violation")

// ParseError describes a failed parse.
type ParseError struct {
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

func violation(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...)))
}

// TrailingInput is the error for input left over after a successful parse
// that had to consume everything.
func TrailingInput(remaining string) *ParseError {
	return &ParseError{Expected: eofLabel, Got: preview(remaining)}
}
