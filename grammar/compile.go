package grammar

import (
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/parsec"
)

// Option configures Compile.
type Option func(*compiler)

// WithLogger traces every rule of the grammar on logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *compiler) {
		c.logger = logger
	}
}

type compiler struct {
	logger *zap.Logger
	rules  map[string]parsec.Parser[Value]
}

// Compile validates the grammar and builds the parser of its start rule.
// Rules may refer to each other, recursively, through ref; left recursion
// does not terminate.
func (g *Grammar) Compile(opts ...Option) (parsec.Parser[Value], error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	c := &compiler{rules: make(map[string]parsec.Parser[Value], len(g.Rules))}
	for _, opt := range opts {
		opt(c)
	}

	for _, name := range g.ruleNames() {
		c.rules[name] = parsec.Trace(c.logger, name, c.compile(g.Rules[name]))
	}
	return c.rules[g.Start], nil
}

func (c *compiler) compile(e Expr) parsec.Parser[Value] {
	p := c.compileKind(e)
	if e.Label != "" {
		p = p.Label(e.Label)
	}
	return p
}

func (c *compiler) compileKind(e Expr) parsec.Parser[Value] {
	switch {
	case e.Char != nil:
		r, _ := utf8.DecodeRuneInString(*e.Char)
		return text(parsec.Char(r))
	case e.String != nil:
		return text(parsec.String(*e.String))
	case e.StringI != nil:
		return text(parsec.StringI(*e.StringI))
	case e.OneOf != nil:
		return text(parsec.OneOfS(*e.OneOf))
	case e.NoneOf != nil:
		return text(parsec.NoneOfS(*e.NoneOf))
	case e.Class != nil:
		return text(classParser(*e.Class))
	case e.Ref != nil:
		name := *e.Ref
		// resolved at run time so rules can refer to rules compiled later
		return func(input string) parsec.Result[Value] {
			return c.rules[name](input)
		}
	case e.Float:
		return text(parsec.Float())
	case e.Integer:
		return text(parsec.Integer())
	case e.Rest:
		return text(parsec.TakeRest())
	case e.EOF:
		return parsec.Map(parsec.EOF(), func(string) Value { return None() })
	case e.Sequence != nil:
		return parsec.Sequence(c.compileAll(e.Sequence)...)
	case e.Collect != nil:
		return parsec.Map(parsec.Collect(c.compileAll(e.Collect)...), func(values []Value) Value {
			return NewList(values...)
		})
	case e.Any != nil:
		return parsec.Any(c.compileAll(e.Any)...)
	case e.Append != nil:
		parts := c.compileAll(e.Append)
		p := parts[0]
		for _, next := range parts[1:] {
			p = parsec.AppendCombinable(p, next)
		}
		return p
	case e.Optional != nil:
		return parsec.OrDefault(parsec.Optional(c.compile(*e.Optional)), None())
	case e.AtLeastOne != nil:
		return parsec.AtLeastOneWith(c.compile(*e.AtLeastOne), parsec.JoinCombinable[Value])
	case e.Many != nil:
		return parsec.ManyWith(c.compile(*e.Many), parsec.JoinCombinable[Value], None())
	case e.Ignore != nil:
		return parsec.Ignore(c.compile(*e.Ignore))
	}
	// Validate rejects nodes without a kind before compilation starts.
	panic("grammar: expression without kind")
}

func (c *compiler) compileAll(exprs []Expr) []parsec.Parser[Value] {
	return lo.Map(exprs, func(e Expr, _ int) parsec.Parser[Value] {
		return c.compile(e)
	})
}

func text(p parsec.Parser[string]) parsec.Parser[Value] {
	return parsec.Map(p, NewText)
}

func classParser(name string) parsec.Parser[string] {
	switch name {
	case "digit":
		return parsec.DigitChar()
	case "alpha":
		return parsec.AlphaChar()
	case "alnum":
		return parsec.AlphaNumChar()
	case "space":
		return parsec.Whitespace()
	case "punct":
		return parsec.PunctuationChar()
	default:
		return parsec.AnySingle()
	}
}
