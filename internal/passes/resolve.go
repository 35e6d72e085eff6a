package passes

import (
	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// functionOf returns the *ast.FunctionDecl a top-level or class-member
// slot holds. The builder commits a named function or method as a
// *ast.VarDecl whose InitVal is the FunctionDecl (spec §3.1/§3.3: a
// function declaration desugars to a named initializer, not a bare
// declaration), so every scan over env.Root/class.Body that is looking
// for functions has to unwrap that wrapper as well as accept an
// already-bare FunctionDecl -- the shape a synthesized method (method
// inserter) or a hand-built fixture uses.
func functionOf(n ast.Node) (*ast.FunctionDecl, bool) {
	switch v := n.(type) {
	case *ast.FunctionDecl:
		return v, true
	case *ast.VarDecl:
		fn, ok := v.InitVal.(*ast.FunctionDecl)
		return fn, ok
	default:
		return nil, false
	}
}

// FunctionIndex collects every FunctionDecl reachable from env -- every
// top-level function plus every method of every registered class --
// keyed by its bare (unmangled) name. A name declared in more than one
// place (an overload, or a method sharing a plain function's name)
// resolves to whichever declaration is indexed last. The type guesser's
// caller-linking step (pass 9a) falls back to this index when
// ResolveCallee finds no candidate; the parameter sorter and conversion
// inserter call ResolveCallee instead.
func FunctionIndex(env *root.Environment) map[string]*ast.FunctionDecl {
	idx := map[string]*ast.FunctionDecl{}
	for _, n := range env.Root {
		if fn, ok := functionOf(n); ok {
			idx[fn.Name] = fn
		}
	}
	for _, class := range env.Classes {
		for _, member := range class.Body {
			if fn, ok := functionOf(member); ok {
				idx[fn.Name] = fn
			}
		}
	}
	return idx
}

// AllFunctionsNamed collects every FunctionDecl (top level or class
// method) sharing name, in declaration order. A multi-initializer
// VarDecl (spec §3.1's "multiple initializers encode overloaded
// function sets under one name") is represented in this front end as
// several same-named top-level FunctionDecls rather than as a single
// VarDecl node carrying a list of initializers (spec §9's suggested
// "list of (function-type, function-decl) pairs"): both shapes carry
// the same information, and keeping FunctionDecl itself the unit
// addressed by the rest of the pipeline (parameter lists, bodies,
// mangling) avoids a second indirection nothing else in this package
// needs. AllFunctionsNamed is what lets overload-sensitive call sites
// see the whole set FunctionIndex's by-name map collapses to one entry.
func AllFunctionsNamed(env *root.Environment, name string) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for _, n := range env.Root {
		if fn, ok := functionOf(n); ok && fn.Name == name {
			out = append(out, fn)
		}
	}
	for _, class := range env.Classes {
		for _, member := range class.Body {
			if fn, ok := functionOf(member); ok && fn.Name == name {
				out = append(out, fn)
			}
		}
	}
	return out
}

// ResolveCallee implements spec S3's overload dispatch: among every
// FunctionDecl sharing name, pick the one whose declared parameter
// types match argTypeOf's reading of call's actual arguments.
// argTypeOf is injected so callers running at different pipeline
// stages can supply whatever type information they already have
// (declaredType pre-inference, inferredType once the type guesser has
// run) without this function depending on either.
//
// A weak numeric literal argument is treated as compatible with any
// numeric parameter type, not just the literal's own {i64|f64}
// placeholder members: at the call sites spec S3 describes (pass 6/8,
// both ahead of the type guesser), a bare numeric literal hasn't
// committed to a member of its weak multiple yet, so requiring exact
// equality would make every numeric overload unreachable until after
// inference already needed the routing decision. An exact parameter
// type match is always preferred over this numeric fallback; ties
// resolve to the first declared overload, and when nothing matches the
// first declared overload is returned. (FunctionIndex, by contrast,
// keeps the last declaration of a name.)
func ResolveCallee(env *root.Environment, call *ast.FunctionCall, name string, argTypeOf func(ast.Node) (types.Type, bool)) *ast.FunctionDecl {
	candidates := AllFunctionsNamed(env, name)
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	var numericFallback *ast.FunctionDecl
	for _, fn := range candidates {
		switch overloadMatch(fn, call, argTypeOf) {
		case matchExact:
			return fn
		case matchNumeric:
			if numericFallback == nil {
				numericFallback = fn
			}
		}
	}
	if numericFallback != nil {
		return numericFallback
	}
	return candidates[0]
}

type overloadMatchKind int

const (
	matchNone overloadMatchKind = iota
	matchNumeric
	matchExact
)

func overloadMatch(fn *ast.FunctionDecl, call *ast.FunctionCall, argTypeOf func(ast.Node) (types.Type, bool)) overloadMatchKind {
	if len(fn.Parameters) != len(call.Arguments) {
		return matchNone
	}
	best := matchExact
	for i, param := range fn.Parameters {
		if param.Type == nil {
			return matchNone
		}
		argType, ok := argTypeOf(call.Arguments[i])
		if !ok {
			return matchNone
		}
		switch {
		case param.Type.Equals(argType):
			// exact, keep best as-is
		case types.IsWeak(argType) && types.IsNumber(param.Type):
			if best == matchExact {
				best = matchNumeric
			}
		default:
			return matchNone
		}
	}
	return best
}

// calleeName extracts the function name a ValuePath's last segment
// names -- a VarName for a plain call ("foo()"), a PropertyName for a
// method call through a subject ("self.foo()").
func calleeName(vp *ast.ValuePath) (string, bool) {
	if len(vp.Segments) == 0 {
		return "", false
	}
	last := vp.Segments[len(vp.Segments)-1]
	switch seg := last.(type) {
	case *ast.VarName:
		return seg.Name, true
	case *ast.PropertyName:
		return seg.Name, true
	default:
		return "", false
	}
}
