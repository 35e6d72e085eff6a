package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

// Validator implements spec §4.5 pass 4: check structural invariants --
// required children present, selector chains non-empty, instruction
// kinds legal in their containers -- without mutating the tree. A
// validator error is "structural" in the spec §7 taxonomy.
type Validator struct {
	Base
}

func NewValidator(log *slog.Logger) *Validator {
	return &Validator{Base: NewBase("astValidator", log)}
}

func (p *Validator) PerformVisit(env *root.Environment) {
	WalkEnvironment(env, func(n ast.Node) bool {
		p.check(n)
		return true
	})
}

func (p *Validator) check(n ast.Node) {
	switch v := n.(type) {
	case *ast.SelectorChain:
		if len(v.Nodes) == 0 {
			p.Error(v.Pos(), "selector chain has no nodes")
		}
	case *ast.SimpleSelector:
		if len(v.Nodes) == 0 {
			p.Error(v.Pos(), "simple selector has no nodes")
		}
	case *ast.Rule:
		if len(v.SelectorChains) == 0 {
			p.Error(v.Pos(), "rule has no selector chains")
		}
	case *ast.ClassDecl:
		if v.Name == "" {
			p.Error(v.Pos(), "class declaration has no name")
		}
	case *ast.FunctionDecl:
		if v.Name == "" {
			p.Error(v.Pos(), "function declaration has no name")
		}
		if v.Kind_ == ast.FunctionDeclConstructor && len(v.Parameters) > 0 {
			p.Error(v.Pos(), "constructor %s takes no parameters", v.Name)
		}
	case *ast.ConversionDecl:
		if v.Argument == nil {
			p.Error(v.Pos(), "conversion declaration has no argument")
		}
	case *ast.VarDecl:
		if v.Name == "" {
			p.Error(v.Pos(), "variable declaration has no name")
		}
	case *ast.Assignment:
		if v.PropertyName == "" {
			p.Error(v.Pos(), "assignment has no property name")
		}
	case *ast.FunctionCall:
		if v.CallKind == ast.FunctionCallNamed && v.Subject == nil {
			p.Error(v.Pos(), "named function call has no subject")
		}
	case *ast.FlowControl:
		if v.ReceivesFunctionBody && len(v.Then) == 0 {
			p.Error(v.Pos(), "flow control expects a body but has none")
		}
	case *ast.Instruction:
		if v.InstrKind == ast.InstructionNeeds && !isStringArg(v.Argument) {
			p.Error(v.Pos(), "#needs requires a string literal argument")
		}
		if v.InstrKind == ast.InstructionImport && !isStringArg(v.Argument) {
			p.Error(v.Pos(), "#import requires a string literal argument")
		}
	}
}

func isStringArg(n ast.Node) bool {
	_, ok := n.(*ast.StringLiteral)
	return ok
}
