/*
Package parsec is a parser combinator library: small parsers over a string
are composed into larger ones with sequencing, alternation, repetition,
optionality and value transformation.

# Results

Running a Parser yields a Result. A success carries the parsed value and the
remainder of the input that was not consumed; a failure carries a
description of what was expected and what was found instead:

	res := parsec.Char('a').Run("abc")
	res.Value()     // "a"
	res.Remaining() // "bc"

	res = parsec.Char('a').Run("bbb")
	res.Expected() // "char(a)"
	res.Got()      // "b"

Reading the value of a failure, or the expectation of a success, is a
programming error and panics with ErrContractViolation. Parse failures are
ordinary values and never panic.

# Composition

	symbol := parsec.Any(parsec.String("€"), parsec.String("$"))
	money := parsec.Pair(symbol, parsec.FloatValue())
	money.Run("€15.23") // Success({€ 15.23}, "")

Alternatives always restart from the original input, so a failed branch
never consumes anything. Optional never fails. Sequence, Map and the other
delegating combinators report the failure of the inner parser unchanged;
only Label rewrites the expectation.

# Appending values

Append, AppendSlice, AppendCombinable and Collect join values of the same
type. Joining needs a join function: strings and slices have one, user types
get one by implementing Combinable. Values marked with Discard (or Ignore)
still consume input but are left out of the join.

# Repetition

AtLeastOne, Many and their slice variants stop at the first failure, or
right after an iteration that consumed no input. Left recursion is not
supported.
*/
package parsec
