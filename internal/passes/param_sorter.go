package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

// ParameterSorter implements spec §4.5 pass 6: for every resolvable
// call, reorder its argument list into the callee's declared parameter
// order. Positional arguments fill remaining slots left-to-right;
// named arguments (an Assignment whose PropertyName matches a
// parameter) take priority; a parameter left unmentioned but carrying
// a Default is filled from it. An unsatisfiable slot is a reference
// error.
type ParameterSorter struct {
	Base
}

func NewParameterSorter(log *slog.Logger) *ParameterSorter {
	return &ParameterSorter{Base: NewBase("parameterSorter", log)}
}

func (p *ParameterSorter) PerformVisit(env *root.Environment) {
	WalkEnvironment(env, func(n ast.Node) bool {
		call, ok := n.(*ast.FunctionCall)
		if !ok || call.CallKind != ast.FunctionCallNamed {
			return true
		}
		vp, ok := call.Subject.(*ast.ValuePath)
		if !ok {
			return true
		}
		name, ok := calleeName(vp)
		if !ok {
			return true
		}
		fn := ResolveCallee(env, call, name, declaredType)
		if fn == nil {
			return true
		}
		call.ResolvedCallee = fn
		call.Arguments = p.reorder(call, fn)
		return true
	})
}

func (p *ParameterSorter) reorder(call *ast.FunctionCall, fn *ast.FunctionDecl) []ast.Node {
	named := map[string]ast.Node{}
	var positional []ast.Node
	for _, arg := range call.Arguments {
		if asn, ok := arg.(*ast.Assignment); ok && isParameterName(fn, asn.PropertyName) {
			named[asn.PropertyName] = asn.Value
			continue
		}
		positional = append(positional, arg)
	}

	out := make([]ast.Node, len(fn.Parameters))
	posIdx := 0
	for i, param := range fn.Parameters {
		switch {
		case named[param.Name] != nil:
			out[i] = named[param.Name]
		case posIdx < len(positional):
			out[i] = positional[posIdx]
			posIdx++
		case param.Default != nil:
			out[i] = param.Default.Clone()
		default:
			p.Error(call.Pos(), "call to %s is missing required argument %q", fn.Name, param.Name)
			continue
		}
		ast.Attach(call, out[i])
	}
	return out
}

func isParameterName(fn *ast.FunctionDecl, name string) bool {
	for _, param := range fn.Parameters {
		if param.Name == name {
			return true
		}
	}
	return false
}
