package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// TypeGuesser implements spec §4.5 pass 9: bidirectional, multi-phase
// type inference. Each sub-phase below is a single traversal rather
// than a fixed point; spec §4.5 describes the phases in a fixed order
// with each building on the last, which a single ordered pass over the
// tree satisfies for the common (non-mutually-recursive) cases this
// front end targets.
type TypeGuesser struct {
	Base

	// callers maps a callee's declaration to every call site that
	// invokes it, the "register the call as a caller" bookkeeping
	// phase (a) performs -- kept pass-local rather than grafted onto
	// types.Function, since nothing past this pass needs the link.
	callers map[*ast.FunctionDecl][]*ast.FunctionCall
}

func NewTypeGuesser(log *slog.Logger) *TypeGuesser {
	return &TypeGuesser{Base: NewBase("typeGuesser", log)}
}

func (p *TypeGuesser) PerformVisit(env *root.Environment) {
	p.callers = map[*ast.FunctionDecl][]*ast.FunctionCall{}
	index := FunctionIndex(env)

	p.linkCallers(env, index)           // (a)
	p.propagateStrongTypes(env)         // (b)
	p.inferUninitializedVarDecls(env)   // (c)
	p.inferFromAssignments(env)         // (d)
	for _, fn := range index {
		p.inferParameterTypes(fn)   // (e)
		p.inferReturnType(fn)       // (f)
	}
	p.resolveWeakLiterals(env)          // (g)
	p.rewriteNullableMultiples(env)     // (h)
}

// (a) Link every named FunctionCall to its callee, picking the
// overload whose parameter types match the call's actual arguments
// when the callee name resolves to more than one declaration (spec
// S3).
func (p *TypeGuesser) linkCallers(env *root.Environment, index map[string]*ast.FunctionDecl) {
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
		fn := ResolveCallee(env, call, name, inferredType)
		if fn == nil {
			fn = index[name]
		}
		if fn != nil {
			call.ResolvedCallee = fn
			p.callers[fn] = append(p.callers[fn], call)
		}
		return true
	})
}

// (b) Propagate strong VarDecl-annotated types down into initializers,
// and from there into any weak-typed VarName/NumberLiteral operand an
// arithmetic expression initializer touches (spec S2: "x's inferred
// type is f64, back-propagated from the addition's context").
func (p *TypeGuesser) propagateStrongTypes(env *root.Environment) {
	decls := varDeclsByName(env)
	WalkEnvironment(env, func(n ast.Node) bool {
		v, ok := n.(*ast.VarDecl)
		if !ok || v.Type == nil || v.InitVal == nil {
			return true
		}
		if it, ok := inferredType(v.InitVal); ok && types.IsWeak(it) {
			setInferredType(v.InitVal, v.Type)
		}
		p.propagateInto(v.InitVal, v.Type, decls)
		return true
	})
}

// varDeclsByName indexes every VarDecl in env by name, the same
// lookup (d) and (e) already need to resolve a VarName back to the
// declaration it refers to.
func varDeclsByName(env *root.Environment) map[string]*ast.VarDecl {
	decls := map[string]*ast.VarDecl{}
	WalkEnvironment(env, func(n ast.Node) bool {
		if v, ok := n.(*ast.VarDecl); ok {
			decls[v.Name] = v
		}
		return true
	})
	return decls
}

// isArithmeticOp reports whether op's result type is determined by its
// operands (so a concrete context type can be pushed down through it),
// as opposed to a comparison/logical op whose result is always bool
// regardless of operand types.
func isArithmeticOp(op ast.ExpressionOp) bool {
	switch op {
	case ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide, ast.OpModulo,
		ast.OpBitwiseAnd, ast.OpBitwiseOr, ast.OpBitwiseXor:
		return true
	default:
		return false
	}
}

// propagateInto pushes a concrete context type t down into n: a weak
// number literal takes it directly; a VarName narrows the VarDecl it
// names (and recurses into that decl's own initializer) when the
// declaration is still untyped or weak; an arithmetic Expression/
// UnaryExpression takes the type itself and pushes it into both
// operands in turn.
func (p *TypeGuesser) propagateInto(n ast.Node, t types.Type, decls map[string]*ast.VarDecl) {
	if n == nil || t == nil {
		return
	}
	switch v := n.(type) {
	case *ast.NumberLiteral:
		if types.IsWeak(v.Type) {
			v.Type = t
		}
	case *ast.VarName:
		decl, ok := decls[v.Name]
		if !ok {
			return
		}
		if decl.Type == nil || types.IsWeak(decl.Type) {
			decl.Type = t
			v.Type = t
			if decl.InitVal != nil {
				p.propagateInto(decl.InitVal, t, decls)
			}
		} else {
			v.Type = decl.Type
		}
	case *ast.Expression:
		if !isArithmeticOp(v.Op) {
			return
		}
		if v.Type == nil || types.IsWeak(v.Type) {
			v.Type = t
		}
		p.propagateInto(v.Left, t, decls)
		p.propagateInto(v.Right, t, decls)
	case *ast.UnaryExpression:
		if v.Type == nil || types.IsWeak(v.Type) {
			v.Type = t
		}
		p.propagateInto(v.Value, t, decls)
	}
}

// (c) Infer an uninitialized-annotation VarDecl's type from its
// initializer's already-known type.
func (p *TypeGuesser) inferUninitializedVarDecls(env *root.Environment) {
	WalkEnvironment(env, func(n ast.Node) bool {
		v, ok := n.(*ast.VarDecl)
		if !ok || v.Type != nil || v.InitVal == nil {
			return true
		}
		if it, ok := inferredType(v.InitVal); ok {
			v.Type = it
		}
		return true
	})
}

// (d) Infer a still-untyped VarDecl's type from assignments to it
// within its enclosing function body.
func (p *TypeGuesser) inferFromAssignments(env *root.Environment) {
	decls := map[string]*ast.VarDecl{}
	WalkEnvironment(env, func(n ast.Node) bool {
		if v, ok := n.(*ast.VarDecl); ok {
			decls[v.Name] = v
		}
		return true
	})
	WalkEnvironment(env, func(n ast.Node) bool {
		asn, ok := n.(*ast.Assignment)
		if !ok {
			return true
		}
		decl, ok := decls[asn.PropertyName]
		if !ok || decl.Type != nil || asn.Value == nil {
			return true
		}
		if it, ok := inferredType(asn.Value); ok {
			decl.Type = it
		}
		return true
	})
}

// (e) Infer a function's parameter types. An explicit annotation is
// kept. Otherwise the types of assignments to the parameter inside the
// body and of the other operand of every binary expression using it are
// merged together, with no priority between the two; only if the body
// yields nothing are the callers' actual-argument types merged. A use
// of the parameter as an argument to another call is not consulted.
// Unresolved parameters default to "any".
func (p *TypeGuesser) inferParameterTypes(fn *ast.FunctionDecl) {
	for i := range fn.Parameters {
		param := &fn.Parameters[i]
		if param.Type != nil {
			continue
		}

		var inferred types.Type
		ast.Walk(bodyRoot(fn), ast.VisitorFunc(func(n ast.Node) bool {
			switch v := n.(type) {
			case *ast.Assignment:
				if v.PropertyName == param.Name && v.Value != nil {
					if it, ok := inferredType(v.Value); ok {
						inferred = types.Merge(inferred, it)
					}
				}
			case *ast.Expression:
				if name, ok := varNameOf(v.Left); ok && name == param.Name {
					if it, ok := inferredType(v.Right); ok {
						inferred = types.Merge(inferred, it)
					}
				}
				if name, ok := varNameOf(v.Right); ok && name == param.Name {
					if it, ok := inferredType(v.Left); ok {
						inferred = types.Merge(inferred, it)
					}
				}
			}
			return true
		}))

		if inferred == nil {
			for _, callers := range p.callers[fn] {
				for j, arg := range callers.Arguments {
					if j != i || arg == nil {
						continue
					}
					if it, ok := inferredType(arg); ok {
						inferred = types.Merge(inferred, it)
					}
				}
			}
		}

		if inferred == nil {
			inferred = types.Any
		}
		param.Type = inferred
	}
}

// (f) Compute a function's return type if not already annotated.
func (p *TypeGuesser) inferReturnType(fn *ast.FunctionDecl) {
	if fn.ReturnType != nil {
		return
	}
	var merged types.Type
	found := false
	ast.Walk(bodyRoot(fn), ast.VisitorFunc(func(n ast.Node) bool {
		ret, ok := n.(*ast.FlowControlCall)
		if !ok || ret.CallKind != ast.FlowControlCallReturn {
			return true
		}
		found = true
		if ret.Argument == nil {
			merged = types.Merge(merged, types.Null)
			return true
		}
		if it, ok := inferredType(ret.Argument); ok {
			merged = types.Merge(merged, it)
		}
		return true
	}))
	if !found {
		fn.ReturnType = types.Null
		return
	}
	if types.IsWeak(merged) {
		merged = types.I64
	}
	fn.ReturnType = merged
}

// (g) Resolve a number literal's weak type by walking upward through
// its ancestors until something imposes a concrete type.
func (p *TypeGuesser) resolveWeakLiterals(env *root.Environment) {
	WalkEnvironment(env, func(n ast.Node) bool {
		lit, ok := n.(*ast.NumberLiteral)
		if !ok || !types.IsWeak(lit.Type) {
			return true
		}
		if ctx := contextualType(lit); ctx != nil {
			lit.Type = ctx
		}
		return true
	})
}

// contextualType walks a node's ancestors looking for something that
// imposes a concrete type on it: an already-typed (non-weak) parent
// expression, an enclosing assignment's or VarDecl's type, an enclosing
// conversion call's return type, or, when n is a direct argument of an
// enclosing call, that call's ArgTypes entry for it. The callee's
// declared parameter types, an enclosing return, and a set call's
// pointer target are not consulted.
func contextualType(n ast.Node) types.Type {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		switch v := parent.(type) {
		case *ast.Expression:
			if v.Type != nil && !types.IsWeak(v.Type) {
				return v.Type
			}
		case *ast.Assignment:
			if v.Type != nil {
				return v.Type
			}
		case *ast.VarDecl:
			if v.Type != nil {
				return v.Type
			}
		case *ast.FunctionCall:
			if v.Conversion != nil {
				return v.ReturnType
			}
			for i, arg := range v.Arguments {
				if arg == n && i < len(v.ArgTypes) && v.ArgTypes[i] != nil {
					return v.ArgTypes[i]
				}
			}
		}
	}
	return nil
}

// (h) Rewrite a multiple-type containing null into its non-null
// remainder: the single remaining type, or a strong multiple-type of
// the remaining members. The result carries no nullable marker; the
// null alternative is dropped.
func (p *TypeGuesser) rewriteNullableMultiples(env *root.Environment) {
	rewrite := func(t types.Type) types.Type {
		if t == nil || !types.ContainsNull(t) {
			return t
		}
		rest := types.WithoutNull(t)
		if len(rest) == 1 {
			return rest[0]
		}
		return types.NewMultiple(rest, true)
	}

	WalkEnvironment(env, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.VarDecl:
			v.Type = rewrite(v.Type)
		case *ast.FunctionDecl:
			for i := range v.Parameters {
				v.Parameters[i].Type = rewrite(v.Parameters[i].Type)
			}
			v.ReturnType = rewrite(v.ReturnType)
		}
		return true
	})
}

func bodyRoot(fn *ast.FunctionDecl) ast.Node { return fn }

func varNameOf(n ast.Node) (string, bool) {
	if vn, ok := n.(*ast.VarName); ok {
		return vn.Name, true
	}
	return "", false
}

// inferredType reads the type a node currently carries, computing a
// best-effort type for composite nodes that don't store one directly.
func inferredType(n ast.Node) (types.Type, bool) {
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
	case *ast.Expression:
		if v.Type != nil {
			return v.Type, true
		}
		switch v.Op {
		case ast.OpEqual, ast.OpNotEqual, ast.OpLessThan, ast.OpLessThanOrEqual,
			ast.OpGreaterThan, ast.OpGreaterThanOrEqual, ast.OpAnd, ast.OpOr:
			return types.Bool, true
		default:
			lt, lok := inferredType(v.Left)
			rt, rok := inferredType(v.Right)
			if lok && rok {
				return types.Merge(lt, rt), true
			}
			if lok {
				return lt, true
			}
			if rok {
				return rt, true
			}
			return nil, false
		}
	case *ast.UnaryExpression:
		if v.Type != nil {
			return v.Type, true
		}
		if v.Op == ast.UnaryNot {
			return types.Bool, true
		}
		return inferredType(v.Value)
	default:
		return nil, false
	}
}

// setInferredType writes a computed type back onto a node that carries
// a settable Type field, used when a strong VarDecl annotation narrows
// a weak initializer.
func setInferredType(n ast.Node, t types.Type) {
	switch v := n.(type) {
	case *ast.NumberLiteral:
		v.Type = t
	case *ast.StringLiteral:
		v.Type = t
	case *ast.VarName:
		v.Type = t
	case *ast.ValuePath:
		v.Type = t
	case *ast.Expression:
		v.Type = t
	case *ast.UnaryExpression:
		v.Type = t
	}
}
