package ast

// Rule is LIL's CSS-like top-level construct: one or more selector
// chains, a body of values/assignments, and nested child rules.
// Grounded on LILRule.h's three parallel slices (selector chains,
// values, child rules); kept as three slices here too rather than one
// flat list, so "the values" can be addressed independently of "the
// selector chains."
type Rule struct {
	Base
	SelectorChains []Node
	Values         []Node
	ChildRules     []*Rule
}

func NewRule() *Rule { return &Rule{Base: newBase(KindRule)} }

func (n *Rule) AddSelectorChain(sc Node) {
	n.SelectorChains = append(n.SelectorChains, sc)
	Attach(n, sc)
}

func (n *Rule) AddValue(v Node) {
	n.Values = append(n.Values, v)
	Attach(n, v)
}

func (n *Rule) AddChildRule(r *Rule) {
	n.ChildRules = append(n.ChildRules, r)
	Attach(n, r)
}

func (n *Rule) Children() []Node {
	out := make([]Node, 0, len(n.SelectorChains)+len(n.Values)+len(n.ChildRules))
	out = append(out, n.SelectorChains...)
	out = append(out, n.Values...)
	for _, r := range n.ChildRules {
		out = append(out, r)
	}
	return out
}
func (n *Rule) Clone() Node {
	c := &Rule{Base: n.Base}
	c.SelectorChains = CloneChildren(c, n.SelectorChains)
	c.Values = CloneChildren(c, n.Values)
	for _, r := range n.ChildRules {
		cr := r.Clone().(*Rule)
		Attach(c, cr)
		c.ChildRules = append(c.ChildRules, cr)
	}
	return c
}
func (n *Rule) EqualTo(other Node) bool {
	o, ok := other.(*Rule)
	if !ok || !EqualChildren(n.SelectorChains, o.SelectorChains) || !EqualChildren(n.Values, o.Values) {
		return false
	}
	if len(n.ChildRules) != len(o.ChildRules) {
		return false
	}
	for i, r := range n.ChildRules {
		if !r.EqualTo(o.ChildRules[i]) {
			return false
		}
	}
	return true
}
func (n *Rule) ReceiveNodeData(string) {}

// SelectorChain is an ordered list of simple selectors joined by
// combinators, e.g. "parent > .active". Grounded on
// LILSelectorChain.h.
type SelectorChain struct {
	Base
	Nodes []Node
}

func NewSelectorChain() *SelectorChain { return &SelectorChain{Base: newBase(KindSelectorChain)} }

func (n *SelectorChain) AddNode(node Node) {
	n.Nodes = append(n.Nodes, node)
	Attach(n, node)
}

func (n *SelectorChain) FirstNode() Node {
	if len(n.Nodes) == 0 {
		return nil
	}
	return n.Nodes[0]
}

func (n *SelectorChain) LastNode() Node {
	if len(n.Nodes) == 0 {
		return nil
	}
	return n.Nodes[len(n.Nodes)-1]
}

func (n *SelectorChain) Children() []Node { return n.Nodes }
func (n *SelectorChain) Clone() Node {
	c := &SelectorChain{Base: n.Base}
	c.Nodes = CloneChildren(c, n.Nodes)
	return c
}
func (n *SelectorChain) EqualTo(other Node) bool {
	o, ok := other.(*SelectorChain)
	return ok && EqualChildren(n.Nodes, o.Nodes)
}
func (n *SelectorChain) ReceiveNodeData(string) {}

// SimpleSelector groups a run of Selector/Filter/Flag nodes that apply
// to the same element, e.g. "div.active#main". Grounded on
// LILSimpleSelector.h.
type SimpleSelector struct {
	Base
	Nodes []Node
}

func NewSimpleSelector() *SimpleSelector { return &SimpleSelector{Base: newBase(KindSimpleSelector)} }

func (n *SimpleSelector) AddNode(node Node) {
	n.Nodes = append(n.Nodes, node)
	Attach(n, node)
}

func (n *SimpleSelector) Children() []Node { return n.Nodes }
func (n *SimpleSelector) Clone() Node {
	c := &SimpleSelector{Base: n.Base}
	c.Nodes = CloneChildren(c, n.Nodes)
	return c
}
func (n *SimpleSelector) EqualTo(other Node) bool {
	o, ok := other.(*SimpleSelector)
	return ok && EqualChildren(n.Nodes, o.Nodes)
}
func (n *SimpleSelector) ReceiveNodeData(string) {}

// Selector is a single named selector term, e.g. "parent" or "this".
// Grounded on LILSelector.h (kept separate from SimpleSelector the same
// way the original does: a SimpleSelector groups several Selector/
// Filter/Flag terms).
type Selector struct {
	Base
	Name string
}

func NewSelector(name string) *Selector { return &Selector{Base: newBase(KindSelector), Name: name} }

func (n *Selector) Children() []Node { return nil }
func (n *Selector) Clone() Node      { c := *n; return &c }
func (n *Selector) EqualTo(other Node) bool {
	o, ok := other.(*Selector)
	return ok && o.Name == n.Name
}
func (n *Selector) ReceiveNodeData(data string) { n.Name = n.Name + data }

// CombinatorKind enumerates the combinator glyphs between simple
// selectors in a chain, mirroring LILCombinator.h's CombinatorType.
type CombinatorKind int

const (
	CombinatorDescendant CombinatorKind = iota // whitespace
	CombinatorChild                            // >
	CombinatorSibling                          // ~
	CombinatorNextSibling                      // +
)

// Combinator is the glyph joining two simple selectors in a chain.
type Combinator struct {
	Base
	CombinatorKind CombinatorKind
}

func NewCombinator(kind CombinatorKind) *Combinator {
	return &Combinator{Base: newBase(KindCombinator), CombinatorKind: kind}
}

func (n *Combinator) Children() []Node { return nil }
func (n *Combinator) Clone() Node      { c := *n; return &c }
func (n *Combinator) EqualTo(other Node) bool {
	o, ok := other.(*Combinator)
	return ok && o.CombinatorKind == n.CombinatorKind
}
func (n *Combinator) ReceiveNodeData(string) {}

// Filter is a ":pseudo-class"-style selector qualifier, e.g.
// ":hover". Grounded on LILFilter.h.
type Filter struct {
	Base
	Name string
}

func NewFilter(name string) *Filter { return &Filter{Base: newBase(KindFilter), Name: name} }

func (n *Filter) Children() []Node { return nil }
func (n *Filter) Clone() Node      { c := *n; return &c }
func (n *Filter) EqualTo(other Node) bool {
	o, ok := other.(*Filter)
	return ok && o.Name == n.Name
}
func (n *Filter) ReceiveNodeData(data string) { n.Name = n.Name + data }

// Flag is a boolean selector qualifier, e.g. "$enabled". Grounded on
// LILFlag.h, including its IsOnByDefault bit (a flag a class declares
// for itself defaults to on unless the rule overrides it).
type Flag struct {
	Base
	Name          string
	IsOnByDefault bool
}

func NewFlag(name string) *Flag { return &Flag{Base: newBase(KindFlag), Name: name} }

func (n *Flag) Children() []Node { return nil }
func (n *Flag) Clone() Node      { c := *n; return &c }
func (n *Flag) EqualTo(other Node) bool {
	o, ok := other.(*Flag)
	return ok && o.Name == n.Name && o.IsOnByDefault == n.IsOnByDefault
}
func (n *Flag) ReceiveNodeData(data string) { n.Name = n.Name + data }
