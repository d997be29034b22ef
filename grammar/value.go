package grammar

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/gnoswap-labs/parsec"
)

// Kind is the shape of a Value.
type Kind int

const (
	KindNone Kind = iota // nothing was produced (optional miss, eof)
	KindText             // matched text
	KindList             // values gathered by collect
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindText:
		return "text"
	case KindList:
		return "list"
	default:
		return "?"
	}
}

// Value is what a compiled grammar rule produces. Values of the same kind
// combine by concatenation; None combines with anything as the identity.
// Combining text with a list is a contract violation.
type Value struct {
	kind Kind
	text string
	list []Value
}

var _ parsec.Combinable[Value] = Value{}

func None() Value { return Value{} }

func NewText(s string) Value { return Value{kind: KindText, text: s} }

func NewList(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: KindList, list: values}
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) Text() string  { return v.text }
func (v Value) List() []Value { return v.list }
func (v Value) IsNone() bool  { return v.kind == KindNone }

func (v Value) Combine(other Value) Value {
	switch {
	case v.kind == KindNone:
		return other
	case other.kind == KindNone:
		return v
	case v.kind == KindText && other.kind == KindText:
		return NewText(v.text + other.text)
	case v.kind == KindList && other.kind == KindList:
		return NewList(parsec.JoinSlices(v.list, other.list)...)
	}
	panic(fmt.Errorf("%w: cannot append %s to %s", parsec.ErrContractViolation, other.kind, v.kind))
}

// Interface converts v to plain Go values: nil, string or []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return fmt.Sprintf("%q", v.text)
	case KindList:
		items := make([]string, len(v.list))
		for i, item := range v.list {
			items[i] = item.String()
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return "none"
	}
}
