// Package ast defines the heterogeneous node model the rest of the
// compiler operates on: every shape of LIL syntax tree node, a shared
// set of invariants (a node always knows its own source span and, once
// attached, its parent), and the Visitor interface the pass pipeline
// dispatches through.
//
// Teacher shape: internal/parser/ast/{ast,expr,stmt}.go's BaseNode
// embedding plus a giant Visitor interface with one VisitXxx method per
// node kind. What changes is the variant set itself — LIL's nodes
// (literals, rules, selector chains, flow control, object definitions,
// preprocessor instructions) share nothing with the teacher's C-like
// statement/expression set, so every concrete type below is new, but
// each follows the same "embed BaseNode, implement Accept" recipe the
// teacher's Expr/Stmt types do.
package ast

import "github.com/veosotano/lilc/internal/source"

// Kind tags which concrete node type a Node value holds. Passes that
// need to switch on shape without a full Go type switch (logging,
// generic tree walkers) can use this instead.
type Kind int

const (
	KindInvalid Kind = iota

	// Literals
	KindBoolLiteral
	KindNumberLiteral
	KindPercentageLiteral
	KindStringLiteral
	KindStringFunction
	KindNullLiteral

	// Names and paths
	KindVarName
	KindPropertyName
	KindValuePath
	KindIndexAccessor

	// Declarations
	KindVarDecl
	KindAliasDecl
	KindTypeDecl
	KindConversionDecl
	KindEnum
	KindClassDecl
	KindFunctionDecl

	// Composite values
	KindObjectDefinition
	KindValueList
	KindAssignment

	// Operators
	KindExpression
	KindUnaryExpression

	// Rules and selectors
	KindRule
	KindSelectorChain
	KindSimpleSelector
	KindSelector
	KindCombinator
	KindFilter
	KindFlag

	// Control flow
	KindFlowControl
	KindFlowControlCall

	// Calls
	KindFunctionCall

	// Instructions
	KindInstruction
	KindIfInstruction
	KindSnippetInstruction
	KindForeignLang

	// Supplemented (see SPEC_FULL.md SUPPLEMENTED FEATURES)
	KindDocumentation
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

var kindNames = map[Kind]string{
	KindBoolLiteral:        "boolLiteral",
	KindNumberLiteral:      "numberLiteral",
	KindPercentageLiteral:  "percentageLiteral",
	KindStringLiteral:      "stringLiteral",
	KindStringFunction:     "stringFunction",
	KindNullLiteral:        "nullLiteral",
	KindVarName:            "varName",
	KindPropertyName:       "propertyName",
	KindValuePath:          "valuePath",
	KindIndexAccessor:      "indexAccessor",
	KindVarDecl:            "varDecl",
	KindAliasDecl:          "aliasDecl",
	KindTypeDecl:           "typeDecl",
	KindConversionDecl:     "conversionDecl",
	KindEnum:               "enum",
	KindClassDecl:          "classDecl",
	KindFunctionDecl:       "functionDecl",
	KindObjectDefinition:   "objectDefinition",
	KindValueList:          "valueList",
	KindAssignment:         "assignment",
	KindExpression:         "expression",
	KindUnaryExpression:    "unaryExpression",
	KindRule:               "rule",
	KindSelectorChain:      "selectorChain",
	KindSimpleSelector:     "simpleSelector",
	KindSelector:           "selector",
	KindCombinator:         "combinator",
	KindFilter:             "filter",
	KindFlag:               "flag",
	KindFlowControl:        "flowControl",
	KindFlowControlCall:    "flowControlCall",
	KindFunctionCall:       "functionCall",
	KindInstruction:        "instruction",
	KindIfInstruction:      "ifInstruction",
	KindSnippetInstruction: "snippetInstruction",
	KindForeignLang:        "foreignLang",
	KindDocumentation:      "documentation",
}

// Node is implemented by every node variant. It is the minimal surface
// the builder and every pass need regardless of concrete shape: where
// the node came from, where it sits in the tree, whether it should be
// considered by downstream tooling, and how to copy or compare it.
//
// DESIGN CHOICE: Parent is a plain Node field rather than a weak
// reference, because unlike C++'s shared_ptr-cycle concern the Go
// garbage collector handles reference cycles between a node and its
// parent without help; the invariant to maintain by hand is only that
// Clone() never copies the parent pointer (the clone starts detached)
// and that Attach always sets it (see node_test.go's congruence
// checks).
type Node interface {
	Kind() Kind
	Pos() source.Position
	SetPos(source.Position)
	Parent() Node
	Children() []Node

	// Clone returns a deep copy detached from any parent. Cloning a
	// node must clone every descendant too so that mutating the clone
	// never affects the original tree (spec Testable Property 1).
	Clone() Node

	// EqualTo reports structural equality, ignoring Parent and any
	// position information — two nodes built from different source
	// spans with the same shape and content are equal.
	EqualTo(other Node) bool

	// Hidden reports whether this node should be skipped by tools that
	// render a tree back to source (documentation nodes, and
	// preprocessor artifacts consumed and discarded during the
	// preprocessor pass, are hidden once they've served their purpose).
	Hidden() bool
	SetHidden(bool)

	// Exported reports whether this node should be visible to another
	// compilation unit that "#needs" this one (spec §3.1's exported
	// flag, consulted by the preprocessor/NeedsImporter pass when it
	// splices an imported file's declarations into the importer's
	// root — see internal/passes).
	Exported() bool
	SetExported(bool)

	// ReceiveNodeData feeds builder-reported raw text data into the
	// node under construction (an identifier's name, a literal's
	// digits, and so on) per the event protocol in internal/builder.
	ReceiveNodeData(data string)

	attach(parent Node)
}

// Base is embedded by every concrete node type to provide the common
// Node surface, the same way the teacher's BaseNode supplies Pos()/
// End() to every Expr/Stmt/Decl. Embedding instead of duplicating these
// fields on every type keeps clone/equality bookkeeping in one place.
type Base struct {
	kind     Kind
	pos      source.Position
	parent   Node
	hidden   bool
	exported bool
}

func newBase(kind Kind) Base { return Base{kind: kind} }

func (b *Base) Kind() Kind               { return b.kind }
func (b *Base) Pos() source.Position     { return b.pos }
func (b *Base) SetPos(p source.Position) { b.pos = p }
func (b *Base) Parent() Node             { return b.parent }
func (b *Base) Hidden() bool             { return b.hidden }
func (b *Base) SetHidden(h bool)         { b.hidden = h }
func (b *Base) Exported() bool           { return b.exported }
func (b *Base) SetExported(e bool)       { b.exported = e }
func (b *Base) attach(parent Node)       { b.parent = parent }

// Attach sets child's parent to parent and is called by the Add*/Set*
// methods in this package right after a child is stored in a
// container node, so the parent back-reference invariant
// holds immediately rather than being established lazily.
func Attach(parent Node, child Node) {
	if child != nil {
		child.attach(parent)
	}
}

// CloneChildren is a small helper every container node's Clone() uses
// to deep-copy a child slice and attach the clones to the new parent.
func CloneChildren(parent Node, children []Node) []Node {
	if children == nil {
		return nil
	}
	out := make([]Node, len(children))
	for i, c := range children {
		cc := c.Clone()
		Attach(parent, cc)
		out[i] = cc
	}
	return out
}

// EqualChildren compares two child slices positionally with EqualTo,
// used by every container node's EqualTo implementation.
func EqualChildren(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if !a[i].EqualTo(b[i]) {
			return false
		}
	}
	return true
}
