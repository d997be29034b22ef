package types

import (
	"strconv"
	"strings"

	"github.com/gnoswap-labs/parsec/grammar"
)

// Report is the outcome of running a grammar over one input: a whole file,
// one line of a file, or a literal input.
type Report struct {
	Filename string `json:"filename,omitempty"`
	// Line and Column locate the failure in Filename, 1-based. Column is 0
	// when the parser does not say where it stopped.
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Snippet string `json:"snippet,omitempty"`

	OK        bool          `json:"ok"`
	Value     grammar.Value `json:"value"`
	Remaining string        `json:"remaining,omitempty"`
	Expected  string        `json:"expected,omitempty"`
	Got       string        `json:"got,omitempty"`
}

// Message is the one-line description of a failed report. Got is quoted
// when it spans lines, as leftover input of a whole file does.
func (r Report) Message() string {
	got := r.Got
	if strings.ContainsAny(got, "\r\n") {
		got = strconv.Quote(got)
	}
	return "expected " + r.Expected + ", got " + got
}
