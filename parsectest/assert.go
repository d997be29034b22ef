// Package parsectest provides testify based assertions for parsers.
package parsectest

import (
	"github.com/stretchr/testify/assert"

	"github.com/gnoswap-labs/parsec"
)

// AssertParse asserts that p succeeds on input with the expected value.
func AssertParse[T any](t assert.TestingT, expected T, p parsec.Parser[T], input string, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	res := p.Run(input)
	if !assert.Truef(t, res.IsSuccess(), "parser failed on %q: %v", input, res.Err()) {
		return false
	}
	return assert.Equal(t, expected, res.Value(), msgAndArgs...)
}

// AssertRemain asserts that p succeeds on input leaving remaining.
func AssertRemain[T any](t assert.TestingT, remaining string, p parsec.Parser[T], input string, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	res := p.Run(input)
	if !assert.Truef(t, res.IsSuccess(), "parser failed on %q: %v", input, res.Err()) {
		return false
	}
	return assert.Equal(t, remaining, res.Remaining(), msgAndArgs...)
}

// AssertNotParse asserts that p fails on input. When expected is not empty
// the failure must report that expectation.
func AssertNotParse[T any](t assert.TestingT, p parsec.Parser[T], input string, expected string, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	res := p.Run(input)
	if !assert.Falsef(t, res.IsSuccess(), "parser unexpectedly succeeded on %q with %v", input, res) {
		return false
	}
	if expected == "" {
		return true
	}
	return assert.Equal(t, expected, res.Expected(), msgAndArgs...)
}

// AssertFailOnEOF asserts that p fails on empty input.
func AssertFailOnEOF[T any](t assert.TestingT, p parsec.Parser[T]) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.True(t, p.Run("").IsFailure(), "parser should fail on empty input")
}

// AssertSucceedOnEOF asserts that p succeeds on empty input.
func AssertSucceedOnEOF[T any](t assert.TestingT, p parsec.Parser[T]) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.True(t, p.Run("").IsSuccess(), "parser should succeed on empty input")
}
