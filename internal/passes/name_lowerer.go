package passes

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// NameLowerer implements spec §4.5 pass 12: compute each FunctionDecl's
// external symbol name under the `_lil_[c<len>_<className>_]f<len>_<name>
// [_<tyCode>…]` mangling scheme. This front end has no namespace
// concept, so the optional `n<ns>_` segment the scheme allows is never
// emitted -- there is nothing to put there.
type NameLowerer struct {
	Base
}

func NewNameLowerer(log *slog.Logger) *NameLowerer {
	return &NameLowerer{Base: NewBase("nameLowerer", log)}
}

func (p *NameLowerer) PerformVisit(env *root.Environment) {
	for _, n := range env.Root {
		if fn, ok := functionOf(n); ok {
			p.mangleIfNeeded(fn, "", len(overloadNames(env, fn.Name)) > 1)
		}
	}
	for _, class := range env.Classes {
		overloads := map[string]int{}
		for _, m := range class.Body {
			if fn, ok := functionOf(m); ok {
				overloads[fn.Name]++
			}
		}
		for _, m := range class.Body {
			if fn, ok := functionOf(m); ok {
				p.mangleIfNeeded(fn, class.Name, overloads[fn.Name] > 1)
			}
		}
	}
}

// overloadNames finds every top-level function sharing name -- used
// only to detect a multi-initializer VarDecl's set of same-named
// overloads, since FunctionIndex collapses them to one entry.
func overloadNames(env *root.Environment, name string) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for _, n := range env.Root {
		if fn, ok := functionOf(n); ok && fn.Name == name {
			out = append(out, fn)
		}
	}
	return out
}

func (p *NameLowerer) mangleIfNeeded(fn *ast.FunctionDecl, className string, isOverload bool) {
	if !fn.NeedsNameMangling {
		return
	}
	hadMultiArg := isOverload
	for _, param := range fn.Parameters {
		if _, ok := param.Type.(*types.Multiple); ok {
			hadMultiArg = true
		}
	}
	if className == "" && !hadMultiArg {
		return
	}

	mangled := "_lil_"
	if className != "" {
		mangled += fmt.Sprintf("c%d_%s_", len(className), className)
	}
	mangled += fmt.Sprintf("f%d_%s", len(fn.Name), fn.Name)
	for _, param := range fn.Parameters {
		mangled += "_" + typeCode(param.Type)
	}
	fn.MangledName = mangled
}

// typeCode encodes a single parameter type for the mangled name: a
// short letter token for primitives, the object's own name for a
// class type, or a nested f0<inner> wrapping for a function type.
func typeCode(t types.Type) string {
	switch v := t.(type) {
	case *types.Single:
		return primitiveCode(v.Name)
	case *types.Object:
		return v.Name
	case *types.Pointer:
		return "p" + typeCode(v.PointeeType)
	case *types.Function:
		s := "f0"
		for _, p := range v.ParamTypes {
			s += typeCode(p)
		}
		return s + "r" + typeCode(v.ReturnType)
	case *types.Multiple:
		s := "m" + strconv.Itoa(len(v.Types))
		for _, m := range v.Types {
			s += typeCode(m)
		}
		return s
	default:
		return "x"
	}
}

func primitiveCode(name string) string {
	switch name {
	case "bool":
		return "b"
	case "i8":
		return "c"
	case "i16":
		return "s"
	case "i32":
		return "i"
	case "i64":
		return "l"
	case "i128":
		return "q"
	case "f32":
		return "f"
	case "f64":
		return "d"
	case "cstr":
		return "cs"
	case "str":
		return "str"
	case "null":
		return "n"
	case "void":
		return "v"
	default:
		return name
	}
}
