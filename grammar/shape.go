package grammar

import (
	"fmt"

	"github.com/samber/lo"
)

// shape is the set of Value kinds an expression can produce. None is the
// empty set since it combines with anything.
type shape uint8

const (
	shapeText shape = 1 << iota
	shapeList
)

func (s shape) mixed() bool {
	return s&shapeText != 0 && s&shapeList != 0
}

// ruleShapes computes the shape of every rule. Refs make the rules
// mutually recursive, so shapes are grown until nothing changes; every
// expression only adds kinds, which bounds the iteration.
func (g *Grammar) ruleShapes() map[string]shape {
	shapes := make(map[string]shape, len(g.Rules))
	for changed := true; changed; {
		changed = false
		for _, name := range g.ruleNames() {
			s := shapes[name] | shapeOf(g.Rules[name], shapes)
			if s != shapes[name] {
				shapes[name] = s
				changed = true
			}
		}
	}
	return shapes
}

func shapeOf(e Expr, rules map[string]shape) shape {
	switch {
	case e.Ref != nil:
		return rules[*e.Ref]
	case e.EOF:
		return 0
	case e.Collect != nil:
		return shapeList
	case e.Sequence != nil:
		return shapeOf(lo.LastOr(e.Sequence, Expr{}), rules)
	case e.Any != nil:
		return unionShape(e.Any, rules)
	case e.Append != nil:
		return unionShape(e.Append, rules)
	case e.Optional != nil:
		return shapeOf(*e.Optional, rules)
	case e.AtLeastOne != nil:
		return shapeOf(*e.AtLeastOne, rules)
	case e.Many != nil:
		return shapeOf(*e.Many, rules)
	case e.Ignore != nil:
		// discarded values are skipped by append and collect
		return 0
	case len(e.kinds()) == 0:
		return 0
	}
	return shapeText
}

func unionShape(exprs []Expr, rules map[string]shape) shape {
	var s shape
	for _, e := range exprs {
		s |= shapeOf(e, rules)
	}
	return s
}

// checkShapes reports every append and repetition under e that could join a
// text value with a list value.
func checkShapes(e Expr, path string, rules map[string]shape) []error {
	var errs []error
	checkList := func(kind string, items []Expr) {
		for i, item := range items {
			errs = append(errs, checkShapes(item, fmt.Sprintf("%s.%s[%d]", path, kind, i), rules)...)
		}
	}
	checkRepeat := func(kind string, body Expr) {
		if shapeOf(body, rules).mixed() {
			errs = append(errs, fmt.Errorf("%s.%s: repeats an expression that yields both text and list values", path, kind))
		}
		errs = append(errs, checkShapes(body, path+"."+kind, rules)...)
	}

	switch {
	case e.Append != nil:
		if unionShape(e.Append, rules).mixed() {
			errs = append(errs, fmt.Errorf("%s.append: cannot join text and list values", path))
		}
		checkList("append", e.Append)
	case e.Sequence != nil:
		checkList("sequence", e.Sequence)
	case e.Collect != nil:
		checkList("collect", e.Collect)
	case e.Any != nil:
		checkList("any", e.Any)
	case e.AtLeastOne != nil:
		checkRepeat("atleastone", *e.AtLeastOne)
	case e.Many != nil:
		checkRepeat("many", *e.Many)
	case e.Optional != nil:
		errs = append(errs, checkShapes(*e.Optional, path+".optional", rules)...)
	case e.Ignore != nil:
		errs = append(errs, checkShapes(*e.Ignore, path+".ignore", rules)...)
	}
	return errs
}
