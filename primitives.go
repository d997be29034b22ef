package parsec

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	eofLabel   = "<EOF>"
	previewLen = 10
)

// Satisfy matches one character for which pred holds. expected describes the
// character class in failure messages.
func Satisfy(expected string, pred func(rune) bool) Parser[string] {
	return func(input string) Result[string] {
		if input == "" {
			return Fail[string](expected, eofLabel)
		}
		r, size := utf8.DecodeRuneInString(input)
		if !pred(r) {
			return Fail[string](expected, input[:size])
		}
		return Succeed(input[:size], input[size:])
	}
}

// Char matches the character c.
func Char(c rune) Parser[string] {
	return Satisfy("char("+string(c)+")", func(r rune) bool { return r == c })
}

// AnySingle matches any one character.
func AnySingle() Parser[string] {
	return Satisfy("anySingle", func(rune) bool { return true })
}

// AnySingleBut matches any one character except c.
func AnySingleBut(c rune) Parser[string] {
	return Satisfy("anySingleBut("+string(c)+")", func(r rune) bool { return r != c })
}

// DigitChar matches an ASCII digit.
func DigitChar() Parser[string] {
	return Satisfy("digitChar", func(r rune) bool { return '0' <= r && r <= '9' })
}

func AlphaChar() Parser[string] {
	return Satisfy("alphaChar", unicode.IsLetter)
}

func AlphaNumChar() Parser[string] {
	return Satisfy("alphaNumChar", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

func PunctuationChar() Parser[string] {
	return Satisfy("punctuationChar", unicode.IsPunct)
}

// Whitespace matches a single whitespace character.
func Whitespace() Parser[string] {
	return Satisfy("whitespace", unicode.IsSpace)
}

// SkipSpace consumes zero or more whitespace characters and discards them.
func SkipSpace() Parser[string] {
	return Ignore(Many(Whitespace()))
}

// String matches s literally.
func String(s string) Parser[string] {
	expected := "string(" + s + ")"
	n := utf8.RuneCountInString(s)
	return func(input string) Result[string] {
		if strings.HasPrefix(input, s) {
			return Succeed(s, input[len(s):])
		}
		return Fail[string](expected, prefix(input, n))
	}
}

// StringI matches s ignoring case, using Unicode case folding. The value is
// the input text as written, which may differ in length from s when a fold
// expands, as "ß" does to "ss".
func StringI(s string) Parser[string] {
	expected := "stringI(" + s + ")"
	n := utf8.RuneCountInString(s)
	return func(input string) Result[string] {
		if n == 0 {
			return Succeed("", input)
		}
		if input == "" {
			return Fail[string](expected, eofLabel)
		}
		// cases.Caser is stateful; one per run keeps the parser safe to share.
		fold := cases.Fold()
		target := fold.String(s)

		var folded strings.Builder
		consumed := 0
		for pos, r := range input {
			if folded.Len() >= len(target) {
				break
			}
			folded.WriteString(fold.String(string(r)))
			consumed = pos + utf8.RuneLen(r)
		}
		if folded.String() == target {
			return Succeed(input[:consumed], input[consumed:])
		}
		return Fail[string](expected, prefix(input, n))
	}
}

// TakeRest consumes the whole input. It always succeeds.
func TakeRest() Parser[string] {
	return func(input string) Result[string] {
		return Succeed(input, "")
	}
}

// EOF succeeds only on empty input.
func EOF() Parser[string] {
	return func(input string) Result[string] {
		if input != "" {
			return Fail[string](eofLabel, preview(input))
		}
		return Succeed("", "")
	}
}

// Integer matches an optionally negative run of digits and returns its text.
func Integer() Parser[string] {
	return Append(sign(), AtLeastOne(DigitChar())).Label("integer")
}

// Float matches an optionally negative decimal number with an optional
// fractional part, such as "15", "-3" or "15.23", and returns its text.
func Float() Parser[string] {
	digits := AtLeastOne(DigitChar())
	fraction := OrDefault(Optional(Append(Char('.'), digits)), "")
	return Append(Append(sign(), digits), fraction).Label("float")
}

// IntegerValue is Integer converted to int64. Values out of range fail.
func IntegerValue() Parser[int64] {
	p := Integer()
	return func(input string) Result[int64] {
		res := p(input)
		if res.IsFailure() {
			return Fail[int64](res.expected, res.got)
		}
		v, err := strconv.ParseInt(res.value, 10, 64)
		if err != nil {
			return Fail[int64]("integer in int64 range", res.value)
		}
		return Succeed(v, res.remaining)
	}
}

// FloatValue is Float converted to float64. Values out of range fail.
func FloatValue() Parser[float64] {
	p := Float()
	return func(input string) Result[float64] {
		res := p(input)
		if res.IsFailure() {
			return Fail[float64](res.expected, res.got)
		}
		v, err := strconv.ParseFloat(res.value, 64)
		if err != nil {
			return Fail[float64]("float in float64 range", res.value)
		}
		return Succeed(v, res.remaining)
	}
}

func sign() Parser[string] {
	return OrDefault(Optional(Char('-')), "")
}

// prefix returns the first n characters of input, or <EOF> when input is
// empty.
func prefix(input string, n int) string {
	if input == "" {
		return eofLabel
	}
	i := 0
	for pos := range input {
		if i == n {
			return input[:pos]
		}
		i++
	}
	return input
}

func preview(input string) string {
	return prefix(input, previewLen)
}
