package parsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnoswap-labs/parsec"
	pt "github.com/gnoswap-labs/parsec/parsectest"
)

func TestCharClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		parser   parsec.Parser[string]
		match    string
		reject   string
		expected string
	}{
		{"digit", parsec.DigitChar(), "7", "x", "digitChar"},
		{"alpha", parsec.AlphaChar(), "é", "1", "alphaChar"},
		{"alnum", parsec.AlphaNumChar(), "z", "-", "alphaNumChar"},
		{"punctuation", parsec.PunctuationChar(), "!", "a", "punctuationChar"},
		{"whitespace", parsec.Whitespace(), "\t", "a", "whitespace"},
		{"unicode char", parsec.Char('€'), "€", "$", "char(€)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pt.AssertFailOnEOF(t, tt.parser)
			pt.AssertParse(t, tt.match, tt.parser, tt.match+"rest")
			pt.AssertRemain(t, "rest", tt.parser, tt.match+"rest")
			pt.AssertNotParse(t, tt.parser, tt.reject, tt.expected)
			assert.Equal(t, tt.reject, tt.parser.Run(tt.reject).Got())
		})
	}
}

func TestAnySingle(t *testing.T) {
	t.Parallel()

	p := parsec.AnySingle()
	pt.AssertFailOnEOF(t, p)
	pt.AssertParse(t, "a", p, "a")
	pt.AssertParse(t, "a", p, "abc")
	pt.AssertParse(t, ":", p, ":")
	pt.AssertParse(t, ":", p, ":-)")
}

func TestAnySingleBut(t *testing.T) {
	t.Parallel()

	p := parsec.AnySingleBut('x')
	pt.AssertFailOnEOF(t, p)
	pt.AssertParse(t, "a", p, "a")
	pt.AssertRemain(t, "", p, "a")
	pt.AssertParse(t, "a", p, "abc")
	pt.AssertRemain(t, "bc", p, "abc")
	pt.AssertNotParse(t, p, "x", "anySingleBut(x)")
	pt.AssertNotParse(t, p, "xxx", "")
}

func TestString(t *testing.T) {
	t.Parallel()

	p := parsec.String("Hello")
	pt.AssertFailOnEOF(t, p)
	pt.AssertParse(t, "Hello", p, "Hello world")
	pt.AssertRemain(t, " world", p, "Hello world")
	pt.AssertNotParse(t, p, "Help me", "string(Hello)")
	assert.Equal(t, "Help ", p.Run("Help me").Got())
	assert.Equal(t, "He", p.Run("He").Got())
	assert.Equal(t, "<EOF>", p.Run("").Got())
}

func TestStringI(t *testing.T) {
	t.Parallel()

	p := parsec.StringI("école")
	pt.AssertParse(t, "ÉCOLE", p, "ÉCOLE primaire")
	pt.AssertRemain(t, " primaire", p, "ÉCOLE primaire")
	pt.AssertParse(t, "École", p, "École")
	pt.AssertNotParse(t, p, "collège", "stringI(école)")
	pt.AssertFailOnEOF(t, p)

	pt.AssertParse(t, "", parsec.StringI(""), "abc")
}

func TestStringIExpandingFolds(t *testing.T) {
	t.Parallel()

	sharpS := parsec.StringI("straße")
	pt.AssertParse(t, "STRASSE", sharpS, "STRASSE 5")
	pt.AssertRemain(t, " 5", sharpS, "STRASSE 5")
	pt.AssertParse(t, "Straße", sharpS, "Straße")

	ss := parsec.StringI("ss")
	pt.AssertParse(t, "ß", ss, "ßx")
	pt.AssertRemain(t, "x", ss, "ßx")

	pt.AssertParse(t, "SS", parsec.StringI("ß"), "SS")
	pt.AssertNotParse(t, parsec.StringI("s"), "ß", "stringI(s)")
	pt.AssertNotParse(t, parsec.StringI("ß"), "sx", "stringI(ß)")
}

func TestTakeRest(t *testing.T) {
	t.Parallel()

	p := parsec.TakeRest()
	pt.AssertSucceedOnEOF(t, p)
	pt.AssertParse(t, "xyz", p, "xyz")
	pt.AssertRemain(t, "", p, "xyz")
}

func TestEOF(t *testing.T) {
	t.Parallel()

	p := parsec.EOF()
	pt.AssertSucceedOnEOF(t, p)
	pt.AssertNotParse(t, p, "abc", "<EOF>")
	assert.Equal(t, "abcdefghij", p.Run("abcdefghijklm").Got(), "got is a short preview")
}

func TestSkipSpace(t *testing.T) {
	t.Parallel()

	p := parsec.SkipSpace()
	pt.AssertSucceedOnEOF(t, p)
	pt.AssertRemain(t, "x", p, " \t\nx")
	pt.AssertRemain(t, "x", p, "x")
	assert.True(t, p.Run("  x").IsDiscarded())
}

func TestFloat(t *testing.T) {
	t.Parallel()

	p := parsec.Float()
	pt.AssertFailOnEOF(t, p)
	pt.AssertParse(t, "15.23", p, "15.23")
	pt.AssertParse(t, "15", p, "15")
	pt.AssertParse(t, "-3", p, "-3.")
	pt.AssertRemain(t, ".", p, "-3.")
	pt.AssertNotParse(t, p, "x", "float")
	pt.AssertNotParse(t, p, "-x", "float")
	assert.Equal(t, "x", p.Run("-x").Got())

	pt.AssertParse(t, 15.23, parsec.FloatValue(), "15.23")
	pt.AssertParse(t, -0.5, parsec.FloatValue(), "-0.5 left")
}

func TestInteger(t *testing.T) {
	t.Parallel()

	pt.AssertParse(t, "-42", parsec.Integer(), "-42x")
	pt.AssertParse(t, int64(-42), parsec.IntegerValue(), "-42x")
	pt.AssertRemain(t, "x", parsec.IntegerValue(), "-42x")
	pt.AssertNotParse(t, parsec.IntegerValue(), "abc", "integer")
	pt.AssertNotParse(t, parsec.IntegerValue(), "99999999999999999999", "integer in int64 range")
}
