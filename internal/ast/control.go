package ast

import "github.com/veosotano/lilc/internal/types"

// FlowControlKind enumerates if/else/for/switch/loop/repeat, mirroring
// LILFlowControl.h's FlowControlType.
type FlowControlKind int

const (
	FlowControlIf FlowControlKind = iota
	FlowControlIfElse
	// FlowControlIfIs is "if type-of(x) is T": a runtime-looking check
	// the structure lowerer pass (spec §4.5 pass 11) resolves entirely
	// at compile time once x's specialization is fixed, splicing in
	// Then or Else and discarding the node itself.
	FlowControlIfIs
	// FlowControlIfCast is "if x as T", the analogous form guarding a
	// narrowing cast rather than a type-membership test.
	FlowControlIfCast
	FlowControlFor
	FlowControlLoop
	FlowControlSwitch
	FlowControlRepeat
)

// FlowControl is if/else/for/loop/switch/repeat. Grounded on
// LILFlowControl.h's Arguments/Then/Else triple plus its
// ReceivesFunctionBody/ReceivesElse builder-routing flags (the builder
// uses these to know whether the next block of statements seen belongs
// to the Then or Else branch — see internal/builder).
type FlowControl struct {
	Base
	FlowKind             FlowControlKind
	Arguments            []Node
	Then                 []Node
	Else                 []Node
	ReceivesFunctionBody bool
	ReceivesElse         bool
	ReturnType           types.Type

	// TestType is the type operand of a FlowControlIfIs/FlowControlIfCast
	// test ("T" in "if type-of(x) is T"). Populated by the type
	// resolver pass once the written type name is resolved; consulted
	// by the structure lowerer to decide whether to splice Then or Else
	// into a given specialization.
	TestType types.Type
}

func NewFlowControl(kind FlowControlKind) *FlowControl {
	return &FlowControl{Base: newBase(KindFlowControl), FlowKind: kind}
}

func (n *FlowControl) AddArgument(a Node) {
	n.Arguments = append(n.Arguments, a)
	Attach(n, a)
}

func (n *FlowControl) AddThen(t Node) {
	n.Then = append(n.Then, t)
	Attach(n, t)
}

func (n *FlowControl) AddElse(e Node) {
	n.Else = append(n.Else, e)
	Attach(n, e)
}

func (n *FlowControl) Children() []Node {
	out := make([]Node, 0, len(n.Arguments)+len(n.Then)+len(n.Else))
	out = append(out, n.Arguments...)
	out = append(out, n.Then...)
	out = append(out, n.Else...)
	return out
}
func (n *FlowControl) Clone() Node {
	c := &FlowControl{
		Base: n.Base, FlowKind: n.FlowKind,
		ReceivesFunctionBody: n.ReceivesFunctionBody,
		ReceivesElse:         n.ReceivesElse,
		ReturnType:           n.ReturnType,
		TestType:             n.TestType,
	}
	c.Arguments = CloneChildren(c, n.Arguments)
	c.Then = CloneChildren(c, n.Then)
	c.Else = CloneChildren(c, n.Else)
	return c
}
func (n *FlowControl) EqualTo(other Node) bool {
	o, ok := other.(*FlowControl)
	return ok && o.FlowKind == n.FlowKind &&
		EqualChildren(n.Arguments, o.Arguments) &&
		EqualChildren(n.Then, o.Then) &&
		EqualChildren(n.Else, o.Else)
}
func (n *FlowControl) ReceiveNodeData(string) {}

// FlowControlCallKind enumerates the bare control-transfer calls
// (return/break/continue/repeat) LILFlowControlCall.h models as their
// own node rather than as arguments to FlowControl.
type FlowControlCallKind int

const (
	FlowControlCallReturn FlowControlCallKind = iota
	FlowControlCallBreak
	FlowControlCallContinue
	FlowControlCallRepeat
)

// FlowControlCall is a bare return/break/continue/repeat statement,
// with an optional Argument for "return <value>".
type FlowControlCall struct {
	Base
	CallKind FlowControlCallKind
	Argument Node
}

func NewFlowControlCall(kind FlowControlCallKind) *FlowControlCall {
	return &FlowControlCall{Base: newBase(KindFlowControlCall), CallKind: kind}
}

func (n *FlowControlCall) SetArgument(a Node) {
	n.Argument = a
	Attach(n, a)
}

func (n *FlowControlCall) Children() []Node {
	if n.Argument == nil {
		return nil
	}
	return []Node{n.Argument}
}
func (n *FlowControlCall) Clone() Node {
	c := &FlowControlCall{Base: n.Base, CallKind: n.CallKind}
	if n.Argument != nil {
		c.Argument = n.Argument.Clone()
		Attach(c, c.Argument)
	}
	return c
}
func (n *FlowControlCall) EqualTo(other Node) bool {
	o, ok := other.(*FlowControlCall)
	if !ok || o.CallKind != n.CallKind {
		return false
	}
	if n.Argument == nil || o.Argument == nil {
		return n.Argument == o.Argument
	}
	return n.Argument.EqualTo(o.Argument)
}
func (n *FlowControlCall) ReceiveNodeData(string) {}
