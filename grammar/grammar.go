// Package grammar loads parser definitions from YAML and compiles them into
// parsec parsers producing Values.
package grammar

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a grammar when none is given.
const DefaultPath = ".parsec.yaml"

// Grammar is a named set of rules with a start rule.
type Grammar struct {
	Name  string          `yaml:"name"`
	Start string          `yaml:"start"`
	Rules map[string]Expr `yaml:"rules"`
}

// Expr is one node of a rule. Exactly one kind field must be set; Label may
// be added to any node to rename its expectation in failures.
type Expr struct {
	Char    *string `yaml:"char,omitempty"`
	String  *string `yaml:"string,omitempty"`
	StringI *string `yaml:"stringi,omitempty"`
	OneOf   *string `yaml:"oneof,omitempty"`
	NoneOf  *string `yaml:"noneof,omitempty"`
	Class   *string `yaml:"class,omitempty"`
	Ref     *string `yaml:"ref,omitempty"`
	Float   bool    `yaml:"float,omitempty"`
	Integer bool    `yaml:"integer,omitempty"`
	Rest    bool    `yaml:"rest,omitempty"`
	EOF     bool    `yaml:"eof,omitempty"`

	Sequence []Expr `yaml:"sequence,omitempty"`
	Collect  []Expr `yaml:"collect,omitempty"`
	Any      []Expr `yaml:"any,omitempty"`
	Append   []Expr `yaml:"append,omitempty"`

	Optional   *Expr `yaml:"optional,omitempty"`
	AtLeastOne *Expr `yaml:"atleastone,omitempty"`
	Many       *Expr `yaml:"many,omitempty"`
	Ignore     *Expr `yaml:"ignore,omitempty"`

	Label string `yaml:"label,omitempty"`
}

// character classes accepted by the class kind
var classes = map[string]bool{
	"digit": true,
	"alpha": true,
	"alnum": true,
	"space": true,
	"punct": true,
	"any":   true,
}

// Load reads and decodes a grammar file.
func Load(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var g Grammar
	if err := yaml.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding grammar %s: %w", path, err)
	}
	return &g, nil
}

// Parse decodes a grammar from YAML bytes.
func Parse(data []byte) (*Grammar, error) {
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding grammar: %w", err)
	}
	return &g, nil
}

// Default is the sample grammar written by `parsec init`: a currency symbol
// followed by an amount.
func Default() *Grammar {
	str := func(s string) *string { return &s }
	return &Grammar{
		Name:  "money",
		Start: "money",
		Rules: map[string]Expr{
			"symbol": {Any: []Expr{{String: str("€")}, {String: str("$")}}, Label: "currency symbol"},
			"amount": {Float: true},
			"money": {Collect: []Expr{
				{Ref: str("symbol")},
				{Ignore: &Expr{Many: &Expr{Class: str("space")}}},
				{Ref: str("amount")},
			}},
		},
	}
}

// Validate reports every problem of the grammar at once. Structural problems
// come first; only a well-formed grammar is checked for appends and
// repetitions that would join text with a list.
func (g *Grammar) Validate() error {
	var result *multierror.Error

	if len(g.Rules) == 0 {
		result = multierror.Append(result, fmt.Errorf("grammar %q has no rules", g.Name))
	}
	if g.Start == "" {
		result = multierror.Append(result, fmt.Errorf("grammar %q has no start rule", g.Name))
	} else if _, ok := g.Rules[g.Start]; !ok && len(g.Rules) > 0 {
		result = multierror.Append(result, fmt.Errorf("start rule %q is not defined", g.Start))
	}

	for _, name := range g.ruleNames() {
		for _, err := range g.validateExpr(g.Rules[name], "rules."+name) {
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		return result
	}

	// Value.Combine panics on text joined with a list; catch it before a
	// parser ever runs.
	shapes := g.ruleShapes()
	for _, name := range g.ruleNames() {
		for _, err := range checkShapes(g.Rules[name], "rules."+name, shapes) {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func (g *Grammar) ruleNames() []string {
	names := lo.Keys(g.Rules)
	sort.Strings(names)
	return names
}

func (g *Grammar) validateExpr(e Expr, path string) []error {
	kinds := e.kinds()
	switch len(kinds) {
	case 0:
		return []error{fmt.Errorf("%s: no expression kind set", path)}
	case 1:
	default:
		return []error{fmt.Errorf("%s: more than one expression kind set: %v", path, kinds)}
	}

	var errs []error
	checkList := func(kind string, items []Expr) {
		if len(items) == 0 {
			errs = append(errs, fmt.Errorf("%s.%s: needs at least one expression", path, kind))
		}
		for i, item := range items {
			errs = append(errs, g.validateExpr(item, fmt.Sprintf("%s.%s[%d]", path, kind, i))...)
		}
	}

	switch kind := kinds[0]; kind {
	case "char":
		if utf8.RuneCountInString(*e.Char) != 1 {
			errs = append(errs, fmt.Errorf("%s.char: %q is not a single character", path, *e.Char))
		}
	case "oneof", "noneof":
		s := lo.Ternary(kind == "oneof", e.OneOf, e.NoneOf)
		if *s == "" {
			errs = append(errs, fmt.Errorf("%s.%s: character set is empty", path, kind))
		}
	case "class":
		if !classes[*e.Class] {
			errs = append(errs, fmt.Errorf("%s.class: unknown class %q", path, *e.Class))
		}
	case "ref":
		if _, ok := g.Rules[*e.Ref]; !ok {
			errs = append(errs, fmt.Errorf("%s.ref: rule %q is not defined", path, *e.Ref))
		}
	case "sequence":
		checkList(kind, e.Sequence)
	case "collect":
		checkList(kind, e.Collect)
	case "any":
		checkList(kind, e.Any)
	case "append":
		checkList(kind, e.Append)
	case "optional":
		errs = append(errs, g.validateExpr(*e.Optional, path+".optional")...)
	case "atleastone":
		errs = append(errs, g.validateExpr(*e.AtLeastOne, path+".atleastone")...)
	case "many":
		errs = append(errs, g.validateExpr(*e.Many, path+".many")...)
	case "ignore":
		errs = append(errs, g.validateExpr(*e.Ignore, path+".ignore")...)
	}
	return errs
}

// kinds lists the expression kinds set on e, in declaration order.
func (e Expr) kinds() []string {
	set := []struct {
		name string
		ok   bool
	}{
		{"char", e.Char != nil},
		{"string", e.String != nil},
		{"stringi", e.StringI != nil},
		{"oneof", e.OneOf != nil},
		{"noneof", e.NoneOf != nil},
		{"class", e.Class != nil},
		{"ref", e.Ref != nil},
		{"float", e.Float},
		{"integer", e.Integer},
		{"rest", e.Rest},
		{"eof", e.EOF},
		{"sequence", e.Sequence != nil},
		{"collect", e.Collect != nil},
		{"any", e.Any != nil},
		{"append", e.Append != nil},
		{"optional", e.Optional != nil},
		{"atleastone", e.AtLeastOne != nil},
		{"many", e.Many != nil},
		{"ignore", e.Ignore != nil},
	}
	var kinds []string
	for _, k := range set {
		if k.ok {
			kinds = append(kinds, k.name)
		}
	}
	return kinds
}
