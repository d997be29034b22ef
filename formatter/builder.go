package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/samber/lo"

	tt "github.com/gnoswap-labs/parsec/internal/types"
)

const tabWidth = 8

// failure kinds
const (
	ParseFailure  = "parse-failure"
	TrailingInput = "trailing-input"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	okStyle      = color.New(color.FgGreen, color.Bold)
)

// reportFormatter is the interface that wraps the ReportTemplate method.
// Implementations render one kind of failed report.
type reportFormatter interface {
	ReportTemplate() string
}

// getReportFormatter returns the formatter for the failure kind of r.
func getReportFormatter(r tt.Report) (string, reportFormatter) {
	if r.Column > 0 {
		return TrailingInput, &TrailingInputFormatter{}
	}
	return ParseFailure, &GeneralReportFormatter{}
}

// GenerateFormattedReport formats the failed reports into a human-readable
// string. Successful reports are skipped.
func GenerateFormattedReport(reports []tt.Report) string {
	var builder strings.Builder
	for _, r := range reports {
		if r.OK {
			continue
		}
		rule, formatter := getReportFormatter(r)
		builder.WriteString(buildReport(r, rule, formatter))
	}
	return builder.String()
}

// GenerateSummary tells how many of reports failed.
func GenerateSummary(reports []tt.Report) string {
	failed := lo.CountBy(reports, func(r tt.Report) bool { return !r.OK })
	if failed == 0 {
		return okStyle.Sprintf("ok: %d of %d inputs parsed\n", len(reports), len(reports))
	}
	return errorStyle.Sprintf("failed: %d of %d inputs did not parse\n", failed, len(reports))
}

/***** Report Formatter Builder *****/

type ReportData struct {
	Rule            string
	Location        string
	Line            int
	MaxLineNumWidth int
	Padding         string
	Snippet         string
	UnderlineStart  int
	UnderlineLength int
	Message         string
	Note            string
}

func buildReport(r tt.Report, rule string, formatter reportFormatter) string {
	line := max(r.Line, 1)
	maxLineNumWidth := len(fmt.Sprintf("%d", line))

	// underline the whole input unless the report says where parsing stopped
	start := 0
	if r.Column > 0 {
		start = visualWidth(lo.Substring(r.Snippet, 0, uint(r.Column-1)))
	}
	length := max(visualWidth(r.Snippet)-start, 1)

	data := ReportData{
		Rule:            rule,
		Location:        location(r),
		Line:            line,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
		Snippet:         r.Snippet,
		UnderlineStart:  start,
		UnderlineLength: length,
		Message:         r.Message(),
	}
	if rule == TrailingInput {
		data.Note = "the grammar matched up to here but did not consume the rest"
	}

	funcMap := template.FuncMap{
		"header":              header,
		"snippet":             codeSnippet,
		"underlineAndMessage": underlineAndMessage,
		"note":                note,
	}

	tmpl := template.Must(template.New("report").Funcs(funcMap).Parse(formatter.ReportTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting report: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, maxLineNumWidth int, location string) string {
	endString := errorStyle.Sprint("error: ")
	endString += ruleStyle.Sprintf("%s\n", rule)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s\n", location)

	return endString
}

func codeSnippet(snippet string, line int, maxLineNumWidth int, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)
	endString += lineStyle.Sprintf("%*d | ", maxLineNumWidth, line)
	endString += snippet + "\n"
	return endString
}

func underlineAndMessage(message string, padding string, start int, length int) string {
	endString := lineStyle.Sprintf("%s| ", padding)
	endString += strings.Repeat(" ", start)
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", length))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", message)

	return endString
}

func note(note string) string {
	if note == "" {
		return ""
	}
	return okStyle.Sprint("Note: ") + lineStyle.Sprintf("%s\n", note)
}

func location(r tt.Report) string {
	name := r.Filename
	if name == "" {
		name = "<source>"
	}
	if r.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", name, r.Line, r.Column)
	}
	return fmt.Sprintf("%s:%d", name, max(r.Line, 1))
}

// visualWidth is the number of columns s takes on screen, expanding tabs.
func visualWidth(s string) int {
	width := 0
	for _, ch := range s {
		if ch == '\t' {
			width += tabWidth - (width % tabWidth)
		} else {
			width++
		}
	}
	return width
}
