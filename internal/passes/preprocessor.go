package passes

import (
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/builder"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/source"
)

// ParseFunc resolves one #needs/#import target to a nested compilation
// unit: given the resolved file path and its source text, it returns
// the root.Environment a full parser+builder run over that file would
// produce. The concrete-syntax parser itself is out of scope for this
// module (spec §1); tests supply this callback, standing in for the
// external collaborator the way a mock HTTP client stands in for a
// real one. cmd/lilc passes nil.
type ParseFunc func(path, source string) (*root.Environment, error)

// Preprocessor implements spec §4.5 pass 1: #needs/#import resolution
// (with cycle-safe, needs-vs-import-separate tracking), #if
// conditional inclusion, #paste/#snippet macro expansion, and #arg
// compile-time substitution. It is the first pass in the pipeline and
// the only one that can change which declarations exist at all, rather
// than just rewriting ones already present.
type Preprocessor struct {
	Base

	// Reader resolves a #needs/#import path to source text.
	Reader builder.SourceReader

	// Parse turns that source text into a nested compilation unit.
	// A nil Parse means #needs/#import instructions are left as
	// reference errors rather than resolved, which is still a valid
	// configuration for a unit with no imports.
	Parse ParseFunc

	// Dir is the directory #needs/#import paths are resolved against,
	// set by the driver per spec §6's compile-time configuration.
	Dir string

	// Args is the compile-time "#arg name => node" map spec §6
	// describes; Evaluate #arg instructions substitute from here.
	Args map[string]ast.Node

	snippets map[string]*ast.SnippetInstruction
}

// NewPreprocessor constructs a Preprocessor. reader/parse may be nil
// for a unit that never issues #needs/#import.
func NewPreprocessor(log *slog.Logger, reader builder.SourceReader, parse ParseFunc, dir string, args map[string]ast.Node) *Preprocessor {
	return &Preprocessor{
		Base:   NewBase("preprocessor", log),
		Reader: reader,
		Parse:  parse,
		Dir:    dir,
		Args:   args,
	}
}

func (p *Preprocessor) PerformVisit(env *root.Environment) {
	p.snippets = map[string]*ast.SnippetInstruction{}
	WalkEnvironment(env, func(n ast.Node) bool {
		if snip, ok := n.(*ast.SnippetInstruction); ok {
			p.snippets[snip.Name] = snip
		}
		return true
	})

	RewriteTopLevel(env, p.rewrite(env))
}

func (p *Preprocessor) rewrite(env *root.Environment) Rewriter {
	return func(n ast.Node) ([]ast.Node, bool) {
		switch v := n.(type) {
		case *ast.SnippetInstruction:
			// Already harvested into p.snippets; the definition itself
			// produces no node in the final tree.
			return nil, true
		case *ast.IfInstruction:
			return p.evalIf(v)
		case *ast.Instruction:
			switch v.InstrKind {
			case ast.InstructionNeeds:
				return p.resolveNeeds(env, v, false)
			case ast.InstructionImport:
				return p.resolveNeeds(env, v, true)
			case ast.InstructionPaste:
				return p.expandPaste(v)
			case ast.InstructionArg:
				return p.substituteArg(v)
			}
		}
		return nil, false
	}
}

func (p *Preprocessor) resolveNeeds(env *root.Environment, instr *ast.Instruction, isImport bool) ([]ast.Node, bool) {
	str, ok := instr.Argument.(*ast.StringLiteral)
	if !ok {
		p.Error(instr.Pos(), "#%s requires a string literal path", instr.Name)
		return nil, true
	}
	path := filepath.Join(p.Dir, str.Value)

	already := env.HasDependency(path)
	if isImport {
		already = env.HasImportDependency(path)
	}
	if already {
		return nil, true
	}
	if isImport {
		env.AddImportDependency(path)
	} else {
		env.AddDependency(path)
	}

	if p.Reader == nil || p.Parse == nil {
		p.Error(instr.Pos(), "cannot resolve #%s %q: no parser configured", instr.Name, str.Value)
		return nil, true
	}

	src, err := p.Reader.ReadSource(path)
	if err != nil {
		p.Error(instr.Pos(), "reading #%s %q: %v", instr.Name, str.Value, err)
		return nil, true
	}

	nested, err := p.Parse(path, src)
	if err != nil {
		p.Error(instr.Pos(), "parsing #%s %q: %v", instr.Name, str.Value, err)
		return nil, true
	}

	var spliced []ast.Node
	for _, decl := range nested.Root {
		if !decl.Exported() {
			continue
		}
		clone := decl.Clone()
		spliced = append(spliced, clone)
		switch d := clone.(type) {
		case *ast.ClassDecl:
			env.RegisterClass(d)
		case *ast.AliasDecl:
			env.RegisterAlias(d.Name, d.Type)
		}
	}
	for key, conv := range nested.Conversions {
		if conv.Decl.Exported() {
			env.Conversions[key] = conv
		}
	}
	return spliced, true
}

func (p *Preprocessor) expandPaste(instr *ast.Instruction) ([]ast.Node, bool) {
	name, ok := instr.Argument.(*ast.VarName)
	if !ok {
		p.Error(instr.Pos(), "#paste requires a snippet name")
		return nil, true
	}
	snip, ok := p.snippets[name.Name]
	if !ok {
		p.Error(instr.Pos(), "no #snippet named %q", name.Name)
		return nil, true
	}

	out := make([]ast.Node, 0, len(snip.Body))
	for _, b := range snip.Body {
		clone := b.Clone()
		// Every pasted node takes the paste site's own source location
		// rather than the snippet definition's -- preserving the
		// original would point diagnostics at the macro body instead
		// of where it was actually used.
		stampPosition(clone, instr.Pos())
		out = append(out, clone)
	}
	return out, true
}

// stampPosition recursively overwrites every node's position with pos,
// used by #paste expansion so diagnostics inside a pasted snippet point
// at the paste site rather than the #snippet definition.
func stampPosition(n ast.Node, pos source.Position) {
	ast.Walk(n, ast.VisitorFunc(func(c ast.Node) bool {
		c.SetPos(pos)
		return true
	}))
}

func (p *Preprocessor) substituteArg(instr *ast.Instruction) ([]ast.Node, bool) {
	name, ok := instr.Argument.(*ast.VarName)
	if !ok {
		p.Error(instr.Pos(), "#arg requires an argument name")
		return nil, true
	}
	val, ok := p.Args[name.Name]
	if !ok {
		p.Error(instr.Pos(), "no value supplied for #arg %s", name.Name)
		return nil, true
	}
	return []ast.Node{val.Clone()}, true
}

func (p *Preprocessor) evalIf(ifi *ast.IfInstruction) ([]ast.Node, bool) {
	val, ok := evalConstBool(ifi.Condition)
	if !ok {
		p.Error(ifi.Pos(), "#if condition cannot be evaluated at compile time")
		return nil, true
	}
	if val {
		return append([]ast.Node{}, ifi.Then...), true
	}
	return append([]ast.Node{}, ifi.Else...), true
}

// evalConstBool evaluates the small constant-expression subset #if
// conditions are written in: bool/number/string literals, "!", and the
// comparison/logical operators over them.
func evalConstBool(n ast.Node) (bool, bool) {
	switch v := n.(type) {
	case *ast.BoolLiteral:
		return v.Value, true
	case *ast.NumberLiteral:
		f, err := strconv.ParseFloat(v.Value, 64)
		return err == nil && f != 0, err == nil
	case *ast.UnaryExpression:
		if v.Op != ast.UnaryNot {
			return false, false
		}
		inner, ok := evalConstBool(v.Value)
		return !inner, ok
	case *ast.Expression:
		return evalConstExpression(v)
	default:
		return false, false
	}
}

func evalConstExpression(e *ast.Expression) (bool, bool) {
	switch e.Op {
	case ast.OpAnd, ast.OpOr:
		l, lok := evalConstBool(e.Left)
		r, rok := evalConstBool(e.Right)
		if !lok || !rok {
			return false, false
		}
		if e.Op == ast.OpAnd {
			return l && r, true
		}
		return l || r, true
	}

	lf, lok := constNumber(e.Left)
	rf, rok := constNumber(e.Right)
	if lok && rok {
		switch e.Op {
		case ast.OpEqual:
			return lf == rf, true
		case ast.OpNotEqual:
			return lf != rf, true
		case ast.OpLessThan:
			return lf < rf, true
		case ast.OpLessThanOrEqual:
			return lf <= rf, true
		case ast.OpGreaterThan:
			return lf > rf, true
		case ast.OpGreaterThanOrEqual:
			return lf >= rf, true
		}
	}

	ls, lsok := constString(e.Left)
	rs, rsok := constString(e.Right)
	if lsok && rsok {
		switch e.Op {
		case ast.OpEqual:
			return ls == rs, true
		case ast.OpNotEqual:
			return ls != rs, true
		}
	}
	return false, false
}

func constNumber(n ast.Node) (float64, bool) {
	lit, ok := n.(*ast.NumberLiteral)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit.Value, 64)
	return f, err == nil
}

func constString(n ast.Node) (string, bool) {
	lit, ok := n.(*ast.StringLiteral)
	if !ok {
		return "", false
	}
	return lit.Value, true
}
