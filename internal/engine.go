package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnoswap-labs/parsec"
	"github.com/gnoswap-labs/parsec/grammar"
	tt "github.com/gnoswap-labs/parsec/internal/types"
)

// Engine runs a compiled grammar over files and sources.
type Engine struct {
	grammarPath string
	lineMode    bool
	logger      *zap.Logger

	mu     sync.RWMutex
	parser parsec.Parser[grammar.Value]

	watchMu sync.Mutex
	watch   *watchState
}

// NewEngine compiles g. A nil logger disables logging.
func NewEngine(g *grammar.Grammar, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{logger: logger}
	if err := e.setGrammar(g); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadEngine compiles the grammar file at path. The file is read again by
// Reload and, in watch mode, whenever it changes.
func LoadEngine(path string, logger *zap.Logger) (*Engine, error) {
	g, err := grammar.Load(path)
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(g, logger)
	if err != nil {
		return nil, fmt.Errorf("error compiling grammar %s: %w", path, err)
	}
	e.grammarPath = filepath.Clean(path)
	return e, nil
}

// SetLineMode makes Run and RunSource treat every non-blank line as a
// separate input instead of the whole content.
func (e *Engine) SetLineMode(on bool) {
	e.lineMode = on
}

// Reload recompiles the grammar file the engine was loaded from. On error
// the previous grammar stays in use.
func (e *Engine) Reload() error {
	if e.grammarPath == "" {
		return fmt.Errorf("engine was not loaded from a grammar file")
	}
	g, err := grammar.Load(e.grammarPath)
	if err != nil {
		return err
	}
	return e.setGrammar(g)
}

func (e *Engine) setGrammar(g *grammar.Grammar) error {
	var opts []grammar.Option
	if e.logger.Core().Enabled(zapcore.DebugLevel) {
		opts = append(opts, grammar.WithLogger(e.logger))
	}
	p, err := g.Compile(opts...)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.parser = p
	e.mu.Unlock()
	return nil
}

func (e *Engine) currentParser() parsec.Parser[grammar.Value] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parser
}

// Run parses the content of filename and returns one report per input.
func (e *Engine) Run(filename string) ([]tt.Report, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	return e.run(filename, string(content)), nil
}

// RunSource is Run over an in-memory source.
func (e *Engine) RunSource(source []byte) ([]tt.Report, error) {
	return e.run("", string(source)), nil
}

// RunInput parses input as a single input named name.
func (e *Engine) RunInput(name, input string) tt.Report {
	return e.check(name, 1, input)
}

func (e *Engine) run(filename, content string) []tt.Report {
	if !e.lineMode {
		content = strings.TrimSuffix(content, "\n")
		content = strings.TrimSuffix(content, "\r")
		return []tt.Report{e.check(filename, 1, content)}
	}

	var reports []tt.Report
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		reports = append(reports, e.check(filename, i+1, line))
	}
	return reports
}

// check parses input, which starts at line of filename, and requires it to
// be consumed entirely.
func (e *Engine) check(filename string, line int, input string) tt.Report {
	report := tt.Report{
		Filename: filename,
		Line:     line,
		Snippet:  firstLine(input),
	}

	res := e.currentParser().Run(input)
	if res.IsFailure() {
		report.Expected = res.Expected()
		report.Got = res.Got()
		return report
	}

	report.Value = res.Value()
	rest := res.Remaining()
	if rest == "" {
		report.OK = true
		return report
	}

	trailing := parsec.TrailingInput(rest)
	report.Expected = trailing.Expected
	report.Got = trailing.Got
	report.Remaining = rest

	lineOffset, column, snippet := locate(input, len(input)-len(rest))
	report.Line += lineOffset
	report.Column = column
	report.Snippet = snippet
	return report
}

// locate returns the line offset, the 1-based column in runes and the text
// of the line holding byte offset of input.
func locate(input string, offset int) (int, int, string) {
	before := input[:offset]
	lineOffset := strings.Count(before, "\n")
	start := strings.LastIndexByte(before, '\n') + 1
	column := utf8.RuneCountInString(before[start:]) + 1
	return lineOffset, column, firstLine(input[start:])
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}
