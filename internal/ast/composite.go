package ast

import "github.com/veosotano/lilc/internal/types"

// ObjectDefinition is an object literal: "new(menu title: "File")".
// Grounded on LILObjectDefinition.h, whose single flat child list holds
// alternating/whatever-shaped property-definition nodes (typically
// Assignment nodes); this package keeps that same flat-list shape
// rather than modeling properties as a map, since source order is kept.
type ObjectDefinition struct {
	Base
	ObjectName string
	Properties []Node
	Type       types.Type
}

func NewObjectDefinition(objectName string) *ObjectDefinition {
	return &ObjectDefinition{Base: newBase(KindObjectDefinition), ObjectName: objectName}
}

func (n *ObjectDefinition) AddProperty(p Node) {
	n.Properties = append(n.Properties, p)
	Attach(n, p)
}

func (n *ObjectDefinition) Children() []Node { return n.Properties }
func (n *ObjectDefinition) Clone() Node {
	c := &ObjectDefinition{Base: n.Base, ObjectName: n.ObjectName, Type: n.Type}
	c.Properties = CloneChildren(c, n.Properties)
	return c
}
func (n *ObjectDefinition) EqualTo(other Node) bool {
	o, ok := other.(*ObjectDefinition)
	return ok && o.ObjectName == n.ObjectName && EqualChildren(n.Properties, o.Properties)
}
func (n *ObjectDefinition) ReceiveNodeData(data string) { n.ObjectName = n.ObjectName + data }

// ValueList is a comma-separated list of values, as used for a
// multiple-value assignment ("width: 10, 20%") or an argument list
// before the parameter-sorter pass resolves it against a signature.
// Grounded on the flat-node-list shape LILValuePath/LILObjectDefinition
// both use for their children.
type ValueList struct {
	Base
	Values []Node
	Type   types.Type
}

func NewValueList() *ValueList { return &ValueList{Base: newBase(KindValueList)} }

func (n *ValueList) AddValue(v Node) {
	n.Values = append(n.Values, v)
	Attach(n, v)
}

func (n *ValueList) Children() []Node { return n.Values }
func (n *ValueList) Clone() Node {
	c := &ValueList{Base: n.Base, Type: n.Type}
	c.Values = CloneChildren(c, n.Values)
	return c
}
func (n *ValueList) EqualTo(other Node) bool {
	o, ok := other.(*ValueList)
	return ok && EqualChildren(n.Values, o.Values)
}
func (n *ValueList) ReceiveNodeData(string) {}

// Assignment pairs a property name with a value inside an
// ObjectDefinition or Rule, e.g. "title: "File"".
type Assignment struct {
	Base
	PropertyName string
	Value        Node
	Type         types.Type
}

func NewAssignment(propertyName string) *Assignment {
	return &Assignment{Base: newBase(KindAssignment), PropertyName: propertyName}
}

func (n *Assignment) SetValue(v Node) {
	n.Value = v
	Attach(n, v)
}

func (n *Assignment) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}
func (n *Assignment) Clone() Node {
	c := &Assignment{Base: n.Base, PropertyName: n.PropertyName, Type: n.Type}
	if n.Value != nil {
		c.Value = n.Value.Clone()
		Attach(c, c.Value)
	}
	return c
}
func (n *Assignment) EqualTo(other Node) bool {
	o, ok := other.(*Assignment)
	if !ok || o.PropertyName != n.PropertyName {
		return false
	}
	if n.Value == nil || o.Value == nil {
		return n.Value == o.Value
	}
	return n.Value.EqualTo(o.Value)
}
func (n *Assignment) ReceiveNodeData(data string) { n.PropertyName = n.PropertyName + data }
