package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gnoswap-labs/parsec/grammar"
	tt "github.com/gnoswap-labs/parsec/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestGenerateFormattedReport(t *testing.T) {
	t.Parallel()

	reports := []tt.Report{
		{
			Filename: "prices.txt",
			Line:     1,
			Snippet:  "€15.23",
			OK:       true,
			Value:    grammar.NewList(grammar.NewText("€"), grammar.NewText("15.23")),
		},
		{
			Filename: "prices.txt",
			Line:     4,
			Snippet:  "£3",
			Expected: "currency symbol",
			Got:      "£",
		},
		{
			Filename:  "prices.txt",
			Line:      12,
			Column:    6,
			Snippet:   "€ 1.5 eur",
			Expected:  "<EOF>",
			Got:       " eur",
			Remaining: " eur",
		},
	}

	expected := `error: parse-failure
 --> prices.txt:4
  |
4 | £3
  | ~~
  = expected currency symbol, got £

error: trailing-input
  --> prices.txt:12:6
   |
12 | € 1.5 eur
   |      ~~~~
   = expected <EOF>, got  eur
Note: the grammar matched up to here but did not consume the rest

`

	assert.Equal(t, expected, GenerateFormattedReport(reports))
}

func TestGenerateFormattedReportSource(t *testing.T) {
	t.Parallel()

	reports := []tt.Report{{Line: 1, Snippet: "", Expected: "char(a)", Got: "<EOF>"}}

	expected := `error: parse-failure
 --> <source>:1
  |
1 | 
  | ~
  = expected char(a), got <EOF>

`

	assert.Equal(t, expected, GenerateFormattedReport(reports))
}

func TestGenerateFormattedReportLeftoverLines(t *testing.T) {
	t.Parallel()

	reports := []tt.Report{{
		Filename:  "prices.txt",
		Line:      1,
		Column:    4,
		Snippet:   "$15",
		Expected:  "<EOF>",
		Got:       "\n$16",
		Remaining: "\n$16\n$17",
	}}

	expected := `error: trailing-input
 --> prices.txt:1:4
  |
1 | $15
  |    ~
  = expected <EOF>, got "\n$16"
Note: the grammar matched up to here but did not consume the rest

`

	assert.Equal(t, expected, GenerateFormattedReport(reports))
}

func TestGenerateSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok: 2 of 2 inputs parsed\n", GenerateSummary([]tt.Report{{OK: true}, {OK: true}}))
	assert.Equal(t, "failed: 1 of 2 inputs did not parse\n", GenerateSummary([]tt.Report{{OK: true}, {}}))
}

func TestVisualWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"€€", 2},
		{"\tx", 9},
		{"ab\tc", 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, visualWidth(tt.in), "%q", tt.in)
	}
}
