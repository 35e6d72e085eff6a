package ast

import "github.com/veosotano/lilc/internal/types"

// FunctionCallKind distinguishes an ordinary named call from the
// built-in pseudo-calls LIL recognizes syntactically (sizeof, pointer
// arithmetic helpers), mirroring LILFunctionCall.h's
// FunctionCallType.
type FunctionCallKind int

const (
	FunctionCallNamed FunctionCallKind = iota
	FunctionCallSizeOf
	FunctionCallValueOf
	FunctionCallPointerTo
	// FunctionCallSet is "set(@ptr, value)": the built-in pseudo-call
	// that writes through a pointer. The type guesser's weak-literal
	// resolution does not look at set calls, so a literal value here
	// does not take its type from the pointer's pointee.
	FunctionCallSet
	// FunctionCallConversion is a synthetic call the conversion
	// inserter pass (spec §4.5 pass 8) wraps an argument in when it
	// differs from the parameter's type and a matching ConversionDecl
	// is registered; never written directly by source.
	FunctionCallConversion
)

// FunctionCall is a call expression. Subject, when present, is the
// ValuePath identifying which function is being called (absent for the
// built-in pseudo-calls, which instead just carry Arguments). ArgTypes/
// ReturnType are not derived from the callee's signature: the
// conversion inserter sets ReturnType on the calls it synthesizes, and
// the type resolver only resolves aliases inside whatever types they
// already hold. Grounded on LILFunctionCall.h.
type FunctionCall struct {
	Base
	CallKind   FunctionCallKind
	Subject    Node
	Arguments  []Node
	ArgTypes   []types.Type
	ReturnType types.Type

	// Conversion is populated only on a FunctionCallConversion node:
	// the ConversionDecl the conversion inserter pass matched by
	// "<src>_to_<dst>" and wrapped the original argument in. Kept as a
	// direct pointer rather than a Subject value path, since this call
	// never appeared in source and has no name to route through the
	// ordinary callee-resolution machinery.
	Conversion *ConversionDecl

	// ResolvedCallee is the FunctionDecl this call was routed to once
	// its overload set (if any) has been disambiguated by actual
	// argument types (spec S3). A back-reference into the tree, not an
	// owned child: excluded from EqualTo and copied by pointer (not
	// deep-cloned) in Clone, the same treatment Parent() gets.
	ResolvedCallee *FunctionDecl
}

func NewFunctionCall(kind FunctionCallKind) *FunctionCall {
	return &FunctionCall{Base: newBase(KindFunctionCall), CallKind: kind}
}

func (n *FunctionCall) SetSubject(s Node) {
	n.Subject = s
	Attach(n, s)
}

func (n *FunctionCall) AddArgument(a Node) {
	n.Arguments = append(n.Arguments, a)
	Attach(n, a)
}

func (n *FunctionCall) Children() []Node {
	out := make([]Node, 0, len(n.Arguments)+1)
	if n.Subject != nil {
		out = append(out, n.Subject)
	}
	out = append(out, n.Arguments...)
	return out
}
func (n *FunctionCall) Clone() Node {
	c := &FunctionCall{
		Base: n.Base, CallKind: n.CallKind,
		ArgTypes:       append([]types.Type{}, n.ArgTypes...),
		ReturnType:     n.ReturnType,
		Conversion:     n.Conversion,
		ResolvedCallee: n.ResolvedCallee,
	}
	if n.Subject != nil {
		c.Subject = n.Subject.Clone()
		Attach(c, c.Subject)
	}
	c.Arguments = CloneChildren(c, n.Arguments)
	return c
}
func (n *FunctionCall) EqualTo(other Node) bool {
	o, ok := other.(*FunctionCall)
	if !ok || o.CallKind != n.CallKind || !EqualChildren(n.Arguments, o.Arguments) {
		return false
	}
	if (n.Subject == nil) != (o.Subject == nil) {
		return false
	}
	if n.Subject != nil && !n.Subject.EqualTo(o.Subject) {
		return false
	}
	return true
}
func (n *FunctionCall) ReceiveNodeData(string) {}
