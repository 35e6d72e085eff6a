package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// ConversionInserter implements spec §4.5 pass 8: at every call site
// where an argument's already-known type differs from the matching
// parameter's type, wrap the argument in a synthesized
// FunctionCallConversion if a matching conversion is registered.
// Missing conversions pass through silently, left for the type
// guesser/validator to flag later.
type ConversionInserter struct {
	Base
}

func NewConversionInserter(log *slog.Logger) *ConversionInserter {
	return &ConversionInserter{Base: NewBase("conversionInserter", log)}
}

func (p *ConversionInserter) PerformVisit(env *root.Environment) {
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
		for i, param := range fn.Parameters {
			if i >= len(call.Arguments) || call.Arguments[i] == nil {
				continue
			}
			p.maybeWrap(env, call, i, param.Type)
		}
		return true
	})
}

func (p *ConversionInserter) maybeWrap(env *root.Environment, call *ast.FunctionCall, i int, paramType types.Type) {
	if paramType == nil {
		return
	}
	arg := call.Arguments[i]
	argType, ok := declaredType(arg)
	if !ok || argType.Equals(paramType) {
		return
	}
	conv := env.LookupConversion(argType, paramType)
	if conv == nil {
		return
	}

	wrapped := ast.NewFunctionCall(ast.FunctionCallConversion)
	wrapped.Conversion = conv.Decl
	wrapped.ReturnType = paramType
	wrapped.SetPos(arg.Pos())
	wrapped.AddArgument(arg)
	call.Arguments[i] = wrapped
	ast.Attach(call, wrapped)
}

// declaredType reads the type a node already carries without running
// inference -- the literal/declared types the builder assigned, not
// anything the (not-yet-run) type guesser would compute.
func declaredType(n ast.Node) (types.Type, bool) {
	switch v := n.(type) {
	case *ast.NumberLiteral:
		return v.Type, v.Type != nil
	case *ast.StringLiteral:
		return v.Type, v.Type != nil
	case *ast.BoolLiteral:
		return v.Type, v.Type != nil
	case *ast.PercentageLiteral:
		return v.Type, v.Type != nil
	case *ast.NullLiteral:
		return v.Type, v.Type != nil
	case *ast.VarName:
		return v.Type, v.Type != nil
	case *ast.ValuePath:
		return v.Type, v.Type != nil
	case *ast.FunctionCall:
		return v.ReturnType, v.ReturnType != nil
	case *ast.ObjectDefinition:
		return v.Type, v.Type != nil
	default:
		return nil, false
	}
}
