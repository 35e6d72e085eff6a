package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// StructureLowerer implements spec §4.5 pass 11: a function taking a
// strong multiple-typed argument is split into one specialization per
// union member, each with that parameter narrowed to a single member
// type and flagged for name mangling; inside each specialization,
// every "if type-of(x) is T"/"if x as T" flow control guarding that
// parameter is resolved at compile time and replaced by whichever
// branch applies to the specialization's concrete type.
type StructureLowerer struct {
	Base
}

func NewStructureLowerer(log *slog.Logger) *StructureLowerer {
	return &StructureLowerer{Base: NewBase("structureLowerer", log)}
}

func (p *StructureLowerer) PerformVisit(env *root.Environment) {
	RewriteTopLevel(env, p.rewrite)
}

func (p *StructureLowerer) rewrite(n ast.Node) ([]ast.Node, bool) {
	fn, ok := functionOf(n)
	if !ok {
		return nil, false
	}
	idx, multi := strongMultiParam(fn)
	if multi == nil {
		return nil, false
	}

	specializations := make([]ast.Node, 0, len(multi.Types))
	for _, member := range multi.Types {
		clone := fn.Clone().(*ast.FunctionDecl)
		clone.Parameters[idx].Type = member
		clone.NeedsNameMangling = true
		clone.Body = p.resolveGuards(clone.Body, fn.Parameters[idx].Name, member)
		specializations = append(specializations, clone)
	}
	return specializations, true
}

// strongMultiParam returns the index and type of fn's first strong
// multiple-typed parameter, or (-1, nil) if it has none.
func strongMultiParam(fn *ast.FunctionDecl) (int, *types.Multiple) {
	for i, param := range fn.Parameters {
		if m, ok := param.Type.(*types.Multiple); ok && m.Strong {
			return i, m
		}
	}
	return -1, nil
}

// resolveGuards splices every "if type-of(paramName) is T"/"if
// paramName as T" flow control in body into whichever branch matches
// concrete, discarding the test itself. A guard testing a different
// variable, or any other node, recurses unchanged.
func (p *StructureLowerer) resolveGuards(body []ast.Node, paramName string, concrete types.Type) []ast.Node {
	var rw Rewriter
	rw = func(n ast.Node) ([]ast.Node, bool) {
		fc, ok := n.(*ast.FlowControl)
		if !ok {
			return nil, false
		}
		if fc.FlowKind != ast.FlowControlIfIs && fc.FlowKind != ast.FlowControlIfCast {
			return nil, false
		}
		if len(fc.Arguments) == 0 || !referencesName(fc.Arguments[0], paramName) {
			return nil, false
		}
		if fc.TestType != nil && types.Is(concrete, fc.TestType) {
			return fc.Then, true
		}
		return fc.Else, true
	}
	return expandSequence(body, rw)
}

// referencesName reports whether n is a bare VarName or a ValuePath
// whose first segment names a variable called name -- the shape the
// builder produces for a guard's test subject ("x" in "if type-of(x)
// is T").
func referencesName(n ast.Node, name string) bool {
	switch v := n.(type) {
	case *ast.VarName:
		return v.Name == name
	case *ast.ValuePath:
		if len(v.Segments) == 0 {
			return false
		}
		if vn, ok := v.Segments[0].(*ast.VarName); ok {
			return vn.Name == name
		}
	}
	return false
}
