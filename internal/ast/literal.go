package ast

import (
	"strings"

	"github.com/veosotano/lilc/internal/types"
)

// BoolLiteral is "true" or "false". Grounded on LILBoolLiteral.h, which
// stores the value as a bool rather than the raw source text since
// there is only ever one spelling per value.
type BoolLiteral struct {
	Base
	Value bool
	Type  types.Type
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{Base: newBase(KindBoolLiteral), Value: value, Type: types.Bool}
}

func (n *BoolLiteral) Children() []Node { return nil }
func (n *BoolLiteral) Clone() Node      { c := *n; return &c }
func (n *BoolLiteral) EqualTo(other Node) bool {
	o, ok := other.(*BoolLiteral)
	return ok && o.Value == n.Value
}
func (n *BoolLiteral) ReceiveNodeData(data string) {
	n.Value = data == "true"
}

// NumberLiteral is an integer or floating-point literal. The builder
// keeps the original source text (Value) rather than pre-parsing it to
// an int64/float64, because LIL number literals may carry a type
// suffix or exceed what a single Go numeric type can hold losslessly;
// the type-guesser/type-resolver passes decide the concrete type.
type NumberLiteral struct {
	Base
	Value string
	Type  types.Type
}

// NewNumberLiteral constructs an integer literal carrying the weak
// "{i64|f64}" placeholder type spec §4.3 describes ("numeric literals
// in number-state receive a weak multiple-type on integer tokens").
// The type guesser pass narrows this once context is known.
func NewNumberLiteral(value string) *NumberLiteral {
	return &NumberLiteral{Base: newBase(KindNumberLiteral), Value: value, Type: types.WeakInt()}
}

// NewFloatLiteral constructs a floating-point literal, carrying the
// concrete f64 type spec §4.3 assigns "before any digits arrive" for a
// floating token (as opposed to the weak placeholder an integer token
// gets).
func NewFloatLiteral(value string) *NumberLiteral {
	return &NumberLiteral{Base: newBase(KindNumberLiteral), Value: value, Type: types.F64}
}

func (n *NumberLiteral) Children() []Node { return nil }
func (n *NumberLiteral) Clone() Node      { c := *n; return &c }
func (n *NumberLiteral) EqualTo(other Node) bool {
	o, ok := other.(*NumberLiteral)
	return ok && o.Value == n.Value
}
// ReceiveNodeData appends digit text to Value and, the moment a
// decimal point arrives, collapses the weak "{i64|f64}" placeholder to
// the concrete f64 type (an integer token never sees one).
func (n *NumberLiteral) ReceiveNodeData(data string) {
	n.Value = n.Value + data
	if strings.Contains(data, ".") && types.IsWeak(n.Type) {
		n.Type = types.F64
	}
}

// PercentageLiteral is a number immediately followed by "%", e.g. "50%".
// Kept distinct from NumberLiteral (as LILPercentageLiteral.h keeps it
// distinct from LILNumberLiteral), so a percentage is never mistaken
// for a plain number.
type PercentageLiteral struct {
	Base
	Value string
	Type  types.Type
}

func NewPercentageLiteral(value string) *PercentageLiteral {
	return &PercentageLiteral{Base: newBase(KindPercentageLiteral), Value: value}
}

func (n *PercentageLiteral) Children() []Node { return nil }
func (n *PercentageLiteral) Clone() Node      { c := *n; return &c }
func (n *PercentageLiteral) EqualTo(other Node) bool {
	o, ok := other.(*PercentageLiteral)
	return ok && o.Value == n.Value
}
func (n *PercentageLiteral) ReceiveNodeData(data string) { n.Value = n.Value + data }

// StringLiteral is a quoted string. IsCString marks a C-style literal
// (the cstr type, used at the FFI boundary) as opposed to LIL's own
// string type.
type StringLiteral struct {
	Base
	Value     string
	IsCString bool
	Type      types.Type
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{Base: newBase(KindStringLiteral), Value: value, Type: types.Str}
}

// NewCStringLiteral constructs a C-style byte-array string literal
// (LIL's "cstr" type, used at the FFI boundary), as opposed to the
// plain NewStringLiteral which carries LIL's own "str" type.
func NewCStringLiteral(value string) *StringLiteral {
	return &StringLiteral{Base: newBase(KindStringLiteral), Value: value, IsCString: true, Type: types.CStr}
}

func (n *StringLiteral) Children() []Node { return nil }
func (n *StringLiteral) Clone() Node      { c := *n; return &c }
func (n *StringLiteral) EqualTo(other Node) bool {
	o, ok := other.(*StringLiteral)
	return ok && o.Value == n.Value && o.IsCString == n.IsCString
}
func (n *StringLiteral) ReceiveNodeData(data string) { n.Value = n.Value + data }

// StringFunction is a format-string call such as i18n("greeting", name),
// carrying the raw function name plus its argument nodes.
type StringFunction struct {
	Base
	Name      string
	Arguments []Node
}

func NewStringFunction(name string) *StringFunction {
	return &StringFunction{Base: newBase(KindStringFunction), Name: name}
}

func (n *StringFunction) AddArgument(arg Node) {
	n.Arguments = append(n.Arguments, arg)
	Attach(n, arg)
}

func (n *StringFunction) Children() []Node { return n.Arguments }
func (n *StringFunction) Clone() Node {
	c := &StringFunction{Base: n.Base, Name: n.Name}
	c.Arguments = CloneChildren(c, n.Arguments)
	return c
}
func (n *StringFunction) EqualTo(other Node) bool {
	o, ok := other.(*StringFunction)
	return ok && o.Name == n.Name && EqualChildren(n.Arguments, o.Arguments)
}
func (n *StringFunction) ReceiveNodeData(data string) { n.Name = n.Name + data }

// NullLiteral is LIL's "null" value.
type NullLiteral struct {
	Base
	Type types.Type
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{Base: newBase(KindNullLiteral), Type: types.Null}
}

func (n *NullLiteral) Children() []Node        { return nil }
func (n *NullLiteral) Clone() Node             { c := *n; return &c }
func (n *NullLiteral) EqualTo(other Node) bool  { _, ok := other.(*NullLiteral); return ok }
func (n *NullLiteral) ReceiveNodeData(string)   {}
