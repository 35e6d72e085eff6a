package ast

// InstructionKind enumerates the preprocessor/compile-time instruction
// names LIL recognizes, mirroring LILInstruction.h's InstructionType:
// #needs, #import, #arg, #getConfig, #paste, #new, and the color
// literals (grayscale #G/#GG, #RGB, #RGBA, #RGBAA, #RRGGBB, #RRGGBBA,
// #RRGGBBAA).
type InstructionKind int

const (
	InstructionNeeds InstructionKind = iota
	InstructionImport
	InstructionArg
	InstructionGetConfig
	InstructionPaste
	InstructionNew
	InstructionColor
)

// ColorFormat enumerates the eight literal color-instruction spellings
// (#G, #GG, #RGB, #RGBA, #RGBAA, #RRGGBB, #RRGGBBA, #RRGGBBAA)
// LILInstruction.h tags explicitly rather than re-deriving from string
// length (see SPEC_FULL.md SUPPLEMENTED FEATURES).
type ColorFormat int

const (
	ColorFormatNone ColorFormat = iota
	ColorFormatRGB
	ColorFormatRGBA
	ColorFormatRGBAA
	ColorFormatRRGGBB
	ColorFormatRRGGBBA
	ColorFormatRRGGBBAA
	ColorFormatGrayscale1
	ColorFormatGrayscale2
)

// Instruction is a single "#name argument" compile-time directive.
// Grounded on LILInstruction.h: Name is the instruction's bare name
// (without the leading "#"), Argument is whatever node follows it (a
// string literal for #needs/#import, an identifier for #arg, and so
// on), and IsColorInstruction/Format are set from ClassifyInstruction
// when the builder receives the instruction's name; the color-maker
// pass reads them.
type Instruction struct {
	Base
	InstrKind         InstructionKind
	Name              string
	Argument          Node
	IsColorInstruction bool
	Format            ColorFormat
	Verbose           bool
}

func NewInstruction(kind InstructionKind, name string) *Instruction {
	return &Instruction{Base: newBase(KindInstruction), InstrKind: kind, Name: name}
}

func (n *Instruction) SetArgument(a Node) {
	n.Argument = a
	Attach(n, a)
}

func (n *Instruction) Children() []Node {
	if n.Argument == nil {
		return nil
	}
	return []Node{n.Argument}
}
func (n *Instruction) Clone() Node {
	c := &Instruction{
		Base: n.Base, InstrKind: n.InstrKind, Name: n.Name,
		IsColorInstruction: n.IsColorInstruction, Format: n.Format, Verbose: n.Verbose,
	}
	if n.Argument != nil {
		c.Argument = n.Argument.Clone()
		Attach(c, c.Argument)
	}
	return c
}
func (n *Instruction) EqualTo(other Node) bool {
	o, ok := other.(*Instruction)
	if !ok || o.InstrKind != n.InstrKind || o.Name != n.Name ||
		o.IsColorInstruction != n.IsColorInstruction || o.Format != n.Format {
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
func (n *Instruction) ReceiveNodeData(data string) { n.Name = n.Name + data }

// instructionKeywords maps a directive's bare name to its
// InstructionKind, for every non-color instruction.
var instructionKeywords = map[string]InstructionKind{
	"needs":     InstructionNeeds,
	"import":    InstructionImport,
	"arg":       InstructionArg,
	"getConfig": InstructionGetConfig,
	"paste":     InstructionPaste,
	"new":       InstructionNew,
}

// ClassifyInstruction determines an instruction's kind from its
// accumulated bare name: one of the fixed keyword directives, or a
// string of hex digits naming a color literal. Called by the builder
// once an Instruction's Name has fully arrived (at NodeEnd), since the
// concrete-syntax parser this module's builder stands in for would
// otherwise have told it directly which directive it was looking at.
func ClassifyInstruction(name string) (kind InstructionKind, isColor bool, format ColorFormat) {
	if k, ok := instructionKeywords[name]; ok {
		return k, false, ColorFormatNone
	}
	if isHex(name) {
		switch len(name) {
		case 1:
			return InstructionColor, true, ColorFormatGrayscale1
		case 2:
			return InstructionColor, true, ColorFormatGrayscale2
		case 3:
			return InstructionColor, true, ColorFormatRGB
		case 4:
			return InstructionColor, true, ColorFormatRGBA
		case 5:
			return InstructionColor, true, ColorFormatRGBAA
		case 6:
			return InstructionColor, true, ColorFormatRRGGBB
		case 7:
			return InstructionColor, true, ColorFormatRRGGBBA
		case 8:
			return InstructionColor, true, ColorFormatRRGGBBAA
		}
	}
	return InstructionNeeds, false, ColorFormatNone
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// IfInstruction is "#if <condition> ... #else ... #endif", the
// preprocessor's conditional-inclusion form. Grounded on
// LILIfInstruction.h. Unlike runtime FlowControl, the Then/Else bodies
// here are spliced into the surrounding container (or discarded
// outright) entirely during the preprocessor pass — no trace of this
// node itself should reach later passes.
type IfInstruction struct {
	Base
	Condition Node
	Then      []Node
	Else      []Node
}

func NewIfInstruction() *IfInstruction { return &IfInstruction{Base: newBase(KindIfInstruction)} }

func (n *IfInstruction) SetCondition(c Node) {
	n.Condition = c
	Attach(n, c)
}

func (n *IfInstruction) AddThen(t Node) {
	n.Then = append(n.Then, t)
	Attach(n, t)
}

func (n *IfInstruction) AddElse(e Node) {
	n.Else = append(n.Else, e)
	Attach(n, e)
}

func (n *IfInstruction) Children() []Node {
	out := make([]Node, 0, len(n.Then)+len(n.Else)+1)
	if n.Condition != nil {
		out = append(out, n.Condition)
	}
	out = append(out, n.Then...)
	out = append(out, n.Else...)
	return out
}
func (n *IfInstruction) Clone() Node {
	c := &IfInstruction{Base: n.Base}
	if n.Condition != nil {
		c.Condition = n.Condition.Clone()
		Attach(c, c.Condition)
	}
	c.Then = CloneChildren(c, n.Then)
	c.Else = CloneChildren(c, n.Else)
	return c
}
func (n *IfInstruction) EqualTo(other Node) bool {
	o, ok := other.(*IfInstruction)
	if !ok || !EqualChildren(n.Then, o.Then) || !EqualChildren(n.Else, o.Else) {
		return false
	}
	if (n.Condition == nil) != (o.Condition == nil) {
		return false
	}
	if n.Condition != nil && !n.Condition.EqualTo(o.Condition) {
		return false
	}
	return true
}
func (n *IfInstruction) ReceiveNodeData(string) {}

// SnippetInstruction is "#snippet name ... #end", the preprocessor's
// macro-definition form; #paste later substitutes its Body verbatim
// wherever the snippet name is pasted. Hygiene-free by design per
// spec — pasted names can capture or shadow names at the paste site.
type SnippetInstruction struct {
	Base
	Name string
	Body []Node
}

func NewSnippetInstruction(name string) *SnippetInstruction {
	return &SnippetInstruction{Base: newBase(KindSnippetInstruction), Name: name}
}

func (n *SnippetInstruction) AddBodyNode(b Node) {
	n.Body = append(n.Body, b)
	Attach(n, b)
}

func (n *SnippetInstruction) Children() []Node { return n.Body }
func (n *SnippetInstruction) Clone() Node {
	c := &SnippetInstruction{Base: n.Base, Name: n.Name}
	c.Body = CloneChildren(c, n.Body)
	return c
}
func (n *SnippetInstruction) EqualTo(other Node) bool {
	o, ok := other.(*SnippetInstruction)
	return ok && o.Name == n.Name && EqualChildren(n.Body, o.Body)
}
func (n *SnippetInstruction) ReceiveNodeData(data string) { n.Name = n.Name + data }

// ForeignLang embeds a block of another language's source verbatim
// (e.g. "#foreignLang js { ... }"), passed through untouched by every
// pass after the AST validator confirms it is well-formed as an opaque
// blob. Grounded on LILForeignLang.h.
type ForeignLang struct {
	Base
	Language string
	Source   string
}

func NewForeignLang(language string) *ForeignLang {
	return &ForeignLang{Base: newBase(KindForeignLang), Language: language}
}

func (n *ForeignLang) Children() []Node { return nil }
func (n *ForeignLang) Clone() Node      { c := *n; return &c }
func (n *ForeignLang) EqualTo(other Node) bool {
	o, ok := other.(*ForeignLang)
	return ok && o.Language == n.Language && o.Source == n.Source
}
func (n *ForeignLang) ReceiveNodeData(data string) { n.Source = n.Source + data }
