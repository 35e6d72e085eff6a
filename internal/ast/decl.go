package ast

import "github.com/veosotano/lilc/internal/types"

// VarDecl declares a local, instance ("ivar"), or class ("vvar")
// variable, optionally with an initializer. Grounded on LILVarDecl.h's
// field set (IsExtern/IsIVar/IsVVar/IsConst flags plus a single
// InitValue).
type VarDecl struct {
	Base
	Name     string
	InitVal  Node
	IsExtern bool
	IsIVar   bool
	IsVVar   bool
	IsConst  bool
	Type     types.Type
}

func NewVarDecl(name string) *VarDecl {
	return &VarDecl{Base: newBase(KindVarDecl), Name: name}
}

func (n *VarDecl) SetInitVal(v Node) {
	n.InitVal = v
	Attach(n, v)
}

func (n *VarDecl) Children() []Node {
	if n.InitVal == nil {
		return nil
	}
	return []Node{n.InitVal}
}
func (n *VarDecl) Clone() Node {
	c := &VarDecl{Base: n.Base, Name: n.Name, IsExtern: n.IsExtern, IsIVar: n.IsIVar, IsVVar: n.IsVVar, IsConst: n.IsConst, Type: n.Type}
	if n.InitVal != nil {
		c.InitVal = n.InitVal.Clone()
		Attach(c, c.InitVal)
	}
	return c
}
func (n *VarDecl) EqualTo(other Node) bool {
	o, ok := other.(*VarDecl)
	if !ok || o.Name != n.Name || o.IsExtern != n.IsExtern || o.IsIVar != n.IsIVar || o.IsVVar != n.IsVVar || o.IsConst != n.IsConst {
		return false
	}
	if n.InitVal == nil || o.InitVal == nil {
		return n.InitVal == o.InitVal
	}
	return n.InitVal.EqualTo(o.InitVal)
}
func (n *VarDecl) ReceiveNodeData(data string) { n.Name = n.Name + data }

// AliasDecl is a type alias ("type T => U"). Grounded on
// LILAliasDecl.h.
type AliasDecl struct {
	Base
	Name string
	Type types.Type
}

func NewAliasDecl(name string) *AliasDecl { return &AliasDecl{Base: newBase(KindAliasDecl), Name: name} }
func (n *AliasDecl) Children() []Node     { return nil }
func (n *AliasDecl) Clone() Node          { c := *n; return &c }
func (n *AliasDecl) EqualTo(other Node) bool {
	o, ok := other.(*AliasDecl)
	return ok && o.Name == n.Name
}
func (n *AliasDecl) ReceiveNodeData(data string) { n.Name = n.Name + data }

// TypeDecl declares a named type (as opposed to AliasDecl, which
// renames an existing one). IsObjName mirrors LILTypeDecl.h's flag
// distinguishing a type name that refers to a class/object from a
// built-in scalar name.
type TypeDecl struct {
	Base
	Name     string
	IsObjName bool
	Type     types.Type
}

func NewTypeDecl(name string) *TypeDecl { return &TypeDecl{Base: newBase(KindTypeDecl), Name: name} }
func (n *TypeDecl) Children() []Node    { return nil }
func (n *TypeDecl) Clone() Node         { c := *n; return &c }
func (n *TypeDecl) EqualTo(other Node) bool {
	o, ok := other.(*TypeDecl)
	return ok && o.Name == n.Name && o.IsObjName == n.IsObjName
}
func (n *TypeDecl) ReceiveNodeData(data string) { n.Name = n.Name + data }

// ConversionDecl declares an implicit conversion between two types,
// taking a single VarDecl argument (conversions are always unary) and
// a body of evaluables that produce the converted value. Grounded on
// LILConversionDecl.h; the source/destination type name pair is kept
// so the conversion-inserter pass can key its registry lookups by
// "<src>_to_<dst>" the way the original does internally via
// encodedName().
type ConversionDecl struct {
	Base
	Argument    *VarDecl
	Body        []Node
	SourceType  types.Type
	DestType    types.Type
}

func NewConversionDecl() *ConversionDecl { return &ConversionDecl{Base: newBase(KindConversionDecl)} }

func (n *ConversionDecl) SetArgument(v *VarDecl) {
	n.Argument = v
	Attach(n, v)
}

func (n *ConversionDecl) AddEvaluable(e Node) {
	n.Body = append(n.Body, e)
	Attach(n, e)
}

// EncodedName mirrors LILConversionDecl::encodedName(), used by the
// root environment's conversion registry key.
func (n *ConversionDecl) EncodedName() string {
	src, dst := "<unresolved>", "<unresolved>"
	if n.SourceType != nil {
		src = n.SourceType.String()
	}
	if n.DestType != nil {
		dst = n.DestType.String()
	}
	return src + "_to_" + dst
}

func (n *ConversionDecl) Children() []Node {
	children := make([]Node, 0, len(n.Body)+1)
	if n.Argument != nil {
		children = append(children, n.Argument)
	}
	children = append(children, n.Body...)
	return children
}
func (n *ConversionDecl) Clone() Node {
	c := &ConversionDecl{Base: n.Base, SourceType: n.SourceType, DestType: n.DestType}
	if n.Argument != nil {
		arg := n.Argument.Clone().(*VarDecl)
		c.Argument = arg
		Attach(c, arg)
	}
	c.Body = CloneChildren(c, n.Body)
	return c
}
func (n *ConversionDecl) EqualTo(other Node) bool {
	o, ok := other.(*ConversionDecl)
	if !ok || !EqualChildren(n.Body, o.Body) {
		return false
	}
	if (n.Argument == nil) != (o.Argument == nil) {
		return false
	}
	if n.Argument != nil && !n.Argument.EqualTo(o.Argument) {
		return false
	}
	return true
}
func (n *ConversionDecl) ReceiveNodeData(string) {}

// EnumMember is one named, optionally explicit-valued entry of an Enum.
type EnumMember struct {
	Name  string
	Value Node
}

// Enum declares a set of named integer constants.
type Enum struct {
	Base
	Name    string
	Members []EnumMember
	Type    types.Type
}

func NewEnum(name string) *Enum { return &Enum{Base: newBase(KindEnum), Name: name} }

func (n *Enum) AddMember(name string, value Node) {
	n.Members = append(n.Members, EnumMember{Name: name, Value: value})
	Attach(n, value)
}

func (n *Enum) Children() []Node {
	var out []Node
	for _, m := range n.Members {
		if m.Value != nil {
			out = append(out, m.Value)
		}
	}
	return out
}
func (n *Enum) Clone() Node {
	c := &Enum{Base: n.Base, Name: n.Name, Type: n.Type}
	for _, m := range n.Members {
		var v Node
		if m.Value != nil {
			v = m.Value.Clone()
			Attach(c, v)
		}
		c.Members = append(c.Members, EnumMember{Name: m.Name, Value: v})
	}
	return c
}
func (n *Enum) EqualTo(other Node) bool {
	o, ok := other.(*Enum)
	if !ok || o.Name != n.Name || len(o.Members) != len(n.Members) {
		return false
	}
	for i, m := range n.Members {
		om := o.Members[i]
		if m.Name != om.Name {
			return false
		}
		if (m.Value == nil) != (om.Value == nil) {
			return false
		}
		if m.Value != nil && !m.Value.EqualTo(om.Value) {
			return false
		}
	}
	return true
}
func (n *Enum) ReceiveNodeData(data string) { n.Name = n.Name + data }

// ClassDecl declares a class (LIL's object/"object type" kind), with an
// inherits-from name, a body of VarDecl/FunctionDecl members, and an
// optional Documentation node (see SUPPLEMENTED FEATURES). ClassDecl
// owns a scope the same way the teacher's ScopeStruct does for fields,
// but also for methods — LIL classes mix data and behavior.
type ClassDecl struct {
	Base
	Name      string
	Inherits  string
	Body      []Node
	Doc       *Documentation
	Type      types.Type
}

func NewClassDecl(name string) *ClassDecl { return &ClassDecl{Base: newBase(KindClassDecl), Name: name} }

func (n *ClassDecl) AddMember(m Node) {
	n.Body = append(n.Body, m)
	Attach(n, m)
}

func (n *ClassDecl) SetDoc(d *Documentation) {
	n.Doc = d
	Attach(n, d)
}

func (n *ClassDecl) Children() []Node {
	children := make([]Node, 0, len(n.Body)+1)
	if n.Doc != nil {
		children = append(children, n.Doc)
	}
	children = append(children, n.Body...)
	return children
}
func (n *ClassDecl) Clone() Node {
	c := &ClassDecl{Base: n.Base, Name: n.Name, Inherits: n.Inherits, Type: n.Type}
	c.Body = CloneChildren(c, n.Body)
	if n.Doc != nil {
		d := n.Doc.Clone().(*Documentation)
		c.Doc = d
		Attach(c, d)
	}
	return c
}
func (n *ClassDecl) EqualTo(other Node) bool {
	o, ok := other.(*ClassDecl)
	return ok && o.Name == n.Name && o.Inherits == n.Inherits && EqualChildren(n.Body, o.Body)
}
func (n *ClassDecl) ReceiveNodeData(data string) { n.Name = n.Name + data }

// FunctionDeclKind distinguishes a plain function from a class method,
// constructor, or destructor — LILFunctionDecl.h's FunctionDeclType.
type FunctionDeclKind int

const (
	FunctionDeclPlain FunctionDeclKind = iota
	FunctionDeclMethod
	FunctionDeclConstructor
	FunctionDeclDestructor
)

// Parameter is one entry of a FunctionDecl's parameter list, kept as
// its own struct rather than a bare VarDecl so the parameter-sorter
// pass can reorder entries without disturbing a VarDecl's own
// semantics. Default, when non-nil, is the initializer the parameter-
// sorter pass (spec §4.5 pass 6) substitutes at a call site that
// leaves this parameter unmentioned.
type Parameter struct {
	Name    string
	Type    types.Type
	Default Node
}

// FunctionDecl declares a function or method. NeedsNameMangling mirrors
// the teacher-adjacent field of the same name in LILFunctionDecl.h:
// extern "C" functions and the synthesized main are excluded from name
// lowering.
type FunctionDecl struct {
	Base
	Name              string
	Kind_             FunctionDeclKind
	Parameters        []Parameter
	ReturnType        types.Type
	Body              []Node
	Finally           Node
	NeedsNameMangling bool
	MangledName       string
	HasReturn         bool
	FnType            *types.Function
}

func NewFunctionDecl(name string) *FunctionDecl {
	return &FunctionDecl{Base: newBase(KindFunctionDecl), Name: name, NeedsNameMangling: true}
}

func (n *FunctionDecl) AddEvaluable(e Node) {
	n.Body = append(n.Body, e)
	Attach(n, e)
}

func (n *FunctionDecl) SetFinally(f Node) {
	n.Finally = f
	Attach(n, f)
}

func (n *FunctionDecl) Children() []Node {
	children := make([]Node, 0, len(n.Body)+1)
	children = append(children, n.Body...)
	if n.Finally != nil {
		children = append(children, n.Finally)
	}
	return children
}
func (n *FunctionDecl) Clone() Node {
	c := &FunctionDecl{
		Base: n.Base, Name: n.Name, Kind_: n.Kind_,
		Parameters:        cloneParameters(n.Parameters),
		ReturnType:        n.ReturnType,
		NeedsNameMangling: n.NeedsNameMangling,
		MangledName:       n.MangledName,
		HasReturn:         n.HasReturn,
		FnType:            n.FnType,
	}
	c.Body = CloneChildren(c, n.Body)
	if n.Finally != nil {
		c.Finally = n.Finally.Clone()
		Attach(c, c.Finally)
	}
	return c
}
func (n *FunctionDecl) EqualTo(other Node) bool {
	o, ok := other.(*FunctionDecl)
	if !ok || o.Name != n.Name || o.Kind_ != n.Kind_ || len(o.Parameters) != len(n.Parameters) {
		return false
	}
	for i, p := range n.Parameters {
		if p.Name != o.Parameters[i].Name {
			return false
		}
	}
	if !EqualChildren(n.Body, o.Body) {
		return false
	}
	if (n.Finally == nil) != (o.Finally == nil) {
		return false
	}
	if n.Finally != nil && !n.Finally.EqualTo(o.Finally) {
		return false
	}
	return true
}
func (n *FunctionDecl) ReceiveNodeData(data string) { n.Name = n.Name + data }

// cloneParameters deep-copies a parameter list, including each
// Default initializer -- Default is not part of FunctionDecl's
// Children() (it belongs to the signature, not the body), but it is
// still a node the clone must detach rather than alias.
func cloneParameters(params []Parameter) []Parameter {
	if params == nil {
		return nil
	}
	out := make([]Parameter, len(params))
	for i, p := range params {
		out[i] = p
		if p.Default != nil {
			out[i].Default = p.Default.Clone()
		}
	}
	return out
}

// Documentation is a doc-comment attached to a ClassDecl. See
// SPEC_FULL.md's SUPPLEMENTED FEATURES: hidden by default so it never
// affects code generation, but preserved through every pass so tooling
// built on top of this pipeline (doc generators) can still find it.
type Documentation struct {
	Base
	Text string
}

func NewDocumentation(text string) *Documentation {
	d := &Documentation{Base: newBase(KindDocumentation), Text: text}
	d.SetHidden(true)
	return d
}

func (n *Documentation) Children() []Node { return nil }
func (n *Documentation) Clone() Node      { c := *n; return &c }
func (n *Documentation) EqualTo(other Node) bool {
	o, ok := other.(*Documentation)
	return ok && o.Text == n.Text
}
func (n *Documentation) ReceiveNodeData(data string) { n.Text = n.Text + data }
