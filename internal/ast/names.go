package ast

import "github.com/veosotano/lilc/internal/types"

// VarName is a bare identifier reference, e.g. "x" in "x + 1". Grounded
// on LILVarName.h.
type VarName struct {
	Base
	Name string
	Type types.Type
}

func NewVarName(name string) *VarName {
	return &VarName{Base: newBase(KindVarName), Name: name}
}

func (n *VarName) Children() []Node { return nil }
func (n *VarName) Clone() Node      { c := *n; return &c }
func (n *VarName) EqualTo(other Node) bool {
	o, ok := other.(*VarName)
	return ok && o.Name == n.Name
}
func (n *VarName) ReceiveNodeData(data string) { n.Name = n.Name + data }

// PropertyName is the right-hand side of a value path segment, e.g.
// "width" in "self.width". Grounded on the property-name component LIL
// value paths use (see LILValuePath.h, which stores a flat node list
// rather than splitting subject/property itself).
type PropertyName struct {
	Base
	Name string
}

func NewPropertyName(name string) *PropertyName {
	return &PropertyName{Base: newBase(KindPropertyName), Name: name}
}

func (n *PropertyName) Children() []Node { return nil }
func (n *PropertyName) Clone() Node      { c := *n; return &c }
func (n *PropertyName) EqualTo(other Node) bool {
	o, ok := other.(*PropertyName)
	return ok && o.Name == n.Name
}
func (n *PropertyName) ReceiveNodeData(data string) { n.Name = n.Name + data }

// ValuePath chains a subject (typically a VarName) through one or more
// PropertyName/IndexAccessor/FunctionCall segments, e.g.
// "self.items[0].name()". Grounded on LILValuePath.h's flat node list
// plus its PreventEmitCallToIVar flag, which the method-inserter pass
// sets on the value path a getter body returns its ivar through, so
// that read is not lowered into a getter call.
type ValuePath struct {
	Base
	Segments              []Node
	PreventEmitCallToIVar bool
	Type                  types.Type
}

func NewValuePath() *ValuePath {
	return &ValuePath{Base: newBase(KindValuePath)}
}

func (n *ValuePath) AddSegment(seg Node) {
	n.Segments = append(n.Segments, seg)
	Attach(n, seg)
}

func (n *ValuePath) Children() []Node { return n.Segments }
func (n *ValuePath) Clone() Node {
	c := &ValuePath{Base: n.Base, PreventEmitCallToIVar: n.PreventEmitCallToIVar, Type: n.Type}
	c.Segments = CloneChildren(c, n.Segments)
	return c
}
func (n *ValuePath) EqualTo(other Node) bool {
	o, ok := other.(*ValuePath)
	return ok && o.PreventEmitCallToIVar == n.PreventEmitCallToIVar && EqualChildren(n.Segments, o.Segments)
}
func (n *ValuePath) ReceiveNodeData(string) {}

// IndexAccessor is the "[i]" segment of a value path. Grounded on
// LILIndexAccessor.h, whose single Argument is the index expression.
type IndexAccessor struct {
	Base
	Argument Node
	Type     types.Type
}

func NewIndexAccessor(argument Node) *IndexAccessor {
	n := &IndexAccessor{Base: newBase(KindIndexAccessor)}
	if argument != nil {
		n.SetArgument(argument)
	}
	return n
}

// SetArgument sets the index expression, used by the builder once the
// argument sub-tree commits into an in-progress IndexAccessor.
func (n *IndexAccessor) SetArgument(a Node) {
	n.Argument = a
	Attach(n, a)
}

func (n *IndexAccessor) Children() []Node {
	if n.Argument == nil {
		return nil
	}
	return []Node{n.Argument}
}
func (n *IndexAccessor) Clone() Node {
	c := &IndexAccessor{Base: n.Base, Type: n.Type}
	if n.Argument != nil {
		c.Argument = n.Argument.Clone()
		Attach(c, c.Argument)
	}
	return c
}
func (n *IndexAccessor) EqualTo(other Node) bool {
	o, ok := other.(*IndexAccessor)
	if !ok {
		return false
	}
	if n.Argument == nil || o.Argument == nil {
		return n.Argument == o.Argument
	}
	return n.Argument.EqualTo(o.Argument)
}
func (n *IndexAccessor) ReceiveNodeData(string) {}
