package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// TypeResolver implements spec §4.5 pass 10: replace every user-defined
// type name with its resolved target, recursing through pointer,
// multiple, static-array and function type positions, while preserving
// the original name as the resolved Single's StrongName so diagnostics
// can still report what the user actually wrote.
type TypeResolver struct {
	Base
}

func NewTypeResolver(log *slog.Logger) *TypeResolver {
	return &TypeResolver{Base: NewBase("typeResolver", log)}
}

func (p *TypeResolver) PerformVisit(env *root.Environment) {
	resolve := func(t types.Type) types.Type { return p.resolve(env, t) }

	WalkEnvironment(env, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.VarDecl:
			v.Type = resolve(v.Type)
		case *ast.FunctionDecl:
			for i := range v.Parameters {
				v.Parameters[i].Type = resolve(v.Parameters[i].Type)
			}
			v.ReturnType = resolve(v.ReturnType)
		case *ast.ConversionDecl:
			v.SourceType = resolve(v.SourceType)
			v.DestType = resolve(v.DestType)
		case *ast.FunctionCall:
			v.ReturnType = resolve(v.ReturnType)
			for i := range v.ArgTypes {
				v.ArgTypes[i] = resolve(v.ArgTypes[i])
			}
		case *ast.FlowControl:
			v.ReturnType = resolve(v.ReturnType)
			v.TestType = resolve(v.TestType)
		case *ast.ObjectDefinition:
			v.Type = resolve(v.Type)
		case *ast.Assignment:
			v.Type = resolve(v.Type)
		case *ast.NumberLiteral:
			v.Type = resolve(v.Type)
		case *ast.ValuePath:
			v.Type = resolve(v.Type)
		}
		return true
	})
}

// resolve recursively replaces a Single carrying an unresolved
// user-defined name with the alias/typedef target it refers to,
// preserving the written name as StrongName. Composite type shapes
// (Pointer/Multiple/StaticArray/SIMD/Function) recurse into their
// element positions. Built-in and already-resolved types pass through
// unchanged.
func (p *TypeResolver) resolve(env *root.Environment, t types.Type) types.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *types.Single:
		if v.StrongName != "" {
			return v
		}
		if target, ok := env.Aliases[v.Name]; ok {
			return types.NewResolvedAlias(target.String(), v.Name)
		}
		return v
	case *types.Pointer:
		return types.NewPointer(p.resolve(env, v.PointeeType))
	case *types.Multiple:
		resolved := make([]types.Type, len(v.Types))
		for i, elem := range v.Types {
			resolved[i] = p.resolve(env, elem)
		}
		return types.NewMultiple(resolved, v.Strong)
	case *types.StaticArray:
		v.ElementType = p.resolve(env, v.ElementType)
		return v
	case *types.SIMD:
		v.ElementType = p.resolve(env, v.ElementType)
		return v
	case *types.Function:
		v.ReturnType = p.resolve(env, v.ReturnType)
		for i := range v.ParamTypes {
			v.ParamTypes[i] = p.resolve(env, v.ParamTypes[i])
		}
		return v
	default:
		return t
	}
}
