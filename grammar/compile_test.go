package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gnoswap-labs/parsec"
)

func compileYAML(t *testing.T, src string, opts ...Option) parsec.Parser[Value] {
	t.Helper()
	g, err := Parse([]byte(src))
	require.NoError(t, err)
	p, err := g.Compile(opts...)
	require.NoError(t, err)
	return p
}

func TestCompileMoney(t *testing.T) {
	t.Parallel()

	p := compileYAML(t, moneyYAML)

	res := p.Run("€ 15.23 left")
	require.True(t, res.IsSuccess(), "%v", res)
	assert.Equal(t, NewList(NewText("€"), NewText("15.23")), res.Value())
	assert.Equal(t, " left", res.Remaining())

	res = p.Run("£12")
	require.True(t, res.IsFailure())
	assert.Equal(t, "currency symbol", res.Expected())
	assert.Equal(t, "£", res.Got())
}

func TestCompileDefault(t *testing.T) {
	t.Parallel()

	p, err := Default().Compile()
	require.NoError(t, err)

	v, err := p.ParseAll("$15")
	require.NoError(t, err)
	assert.Equal(t, []any{"$", "15"}, v.Interface())
}

func TestCompileKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rule      string
		input     string
		want      any
		remaining string
		expected  string
	}{
		{name: "char", rule: `{char: "a"}`, input: "ab", want: "a", remaining: "b"},
		{name: "string", rule: `{string: "let"}`, input: "let x", want: "let", remaining: " x"},
		{name: "stringi", rule: `{stringi: "let"}`, input: "LET x", want: "LET", remaining: " x"},
		{name: "oneof", rule: `{oneof: "+-"}`, input: "-1", want: "-", remaining: "1"},
		{name: "noneof", rule: `{noneof: "+-"}`, input: "-1", expected: "noneOf(+-)"},
		{name: "class", rule: `{class: digit}`, input: "7x", want: "7", remaining: "x"},
		{name: "integer", rule: `{integer: true}`, input: "-12.5", want: "-12", remaining: ".5"},
		{name: "rest", rule: `{rest: true}`, input: "abc", want: "abc", remaining: ""},
		{name: "eof", rule: `{eof: true}`, input: "", want: nil, remaining: ""},
		{name: "sequence", rule: `{sequence: [{char: "a"}, {char: "b"}]}`, input: "abc", want: "b", remaining: "c"},
		{name: "any", rule: `{any: [{char: "a"}, {char: "b"}]}`, input: "x", expected: "char(b)"},
		{name: "append", rule: `{append: [{string: "ab"}, {ignore: {char: "-"}}, {string: "cd"}]}`, input: "ab-cd", want: "abcd", remaining: ""},
		{name: "optional miss", rule: `{optional: {char: "a"}}`, input: "b", want: nil, remaining: "b"},
		{name: "atleastone", rule: `{atleastone: {class: alpha}}`, input: "abc1", want: "abc", remaining: "1"},
		{name: "many none", rule: `{many: {class: alpha}}`, input: "1", want: nil, remaining: "1"},
		{name: "label", rule: `{atleastone: {class: digit}, label: number}`, input: "x", expected: "number"},
		{name: "collect", rule: `{collect: [{char: "a"}, {ignore: {char: ","}}, {char: "b"}]}`, input: "a,b", want: []any{"a", "b"}, remaining: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := compileYAML(t, "start: main\nrules:\n  main: "+tt.rule+"\n")
			res := p.Run(tt.input)
			if tt.expected != "" {
				require.True(t, res.IsFailure(), "%v", res)
				assert.Equal(t, tt.expected, res.Expected())
				return
			}
			require.True(t, res.IsSuccess(), "%v", res)
			assert.Equal(t, tt.want, res.Value().Interface())
			assert.Equal(t, tt.remaining, res.Remaining())
		})
	}
}

func TestCompileRecursiveRules(t *testing.T) {
	t.Parallel()

	p := compileYAML(t, `
start: parens
rules:
  parens:
    append:
      - char: "("
      - optional: {ref: parens}
      - char: ")"
`)

	v, err := p.ParseAll("((()))")
	require.NoError(t, err)
	assert.Equal(t, "((()))", v.Text())

	_, err = p.ParseAll("(()")
	assert.EqualError(t, err, "expected char()), got <EOF>")
}

func TestCompileRejectsInvalidGrammar(t *testing.T) {
	t.Parallel()

	g, err := Parse([]byte("start: main\nrules:\n  main: {ref: nope}\n"))
	require.NoError(t, err)

	_, err = g.Compile()
	assert.Error(t, err)
}

func TestCompileRejectsMixedAppend(t *testing.T) {
	t.Parallel()

	g, err := Parse([]byte(`
start: main
rules:
  main:
    append:
      - string: "a"
      - collect: [{string: "b"}]
`))
	require.NoError(t, err)

	p, err := g.Compile()
	assert.Nil(t, p)
	assert.ErrorContains(t, err, "rules.main.append: cannot join text and list values")
}

func TestCompileWithLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	p := compileYAML(t, moneyYAML, WithLogger(zap.New(core)))

	_, err := p.ParseAll("€1")
	require.NoError(t, err)

	rules := map[string]bool{}
	for _, entry := range logs.FilterMessage("parser match").All() {
		rules[entry.ContextMap()["parser"].(string)] = true
	}
	assert.Equal(t, map[string]bool{"money": true, "symbol": true, "amount": true}, rules)
}
