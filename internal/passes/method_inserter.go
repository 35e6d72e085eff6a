package passes

import (
	"log/slog"
	"strings"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

// MethodInserter implements spec §4.5 pass 7: synthesize a class's
// missing construct/destruct methods and missing ivar getter/setter
// pairs, and mark an existing hand-written getter's ivar read so later
// lowering doesn't double-wrap it in a getter call.
type MethodInserter struct {
	Base
}

func NewMethodInserter(log *slog.Logger) *MethodInserter {
	return &MethodInserter{Base: NewBase("methodInserter", log)}
}

func (p *MethodInserter) PerformVisit(env *root.Environment) {
	for _, class := range env.Classes {
		p.insertConstructDestruct(class)
		p.insertAccessors(class)
	}
}

func (p *MethodInserter) insertConstructDestruct(class *ast.ClassDecl) {
	hasConstruct, hasDestruct := false, false
	for _, m := range class.Body {
		fn, ok := functionOf(m)
		if !ok {
			continue
		}
		switch fn.Kind_ {
		case ast.FunctionDeclConstructor:
			hasConstruct = true
		case ast.FunctionDeclDestructor:
			hasDestruct = true
		}
	}
	if !hasConstruct {
		ctor := ast.NewFunctionDecl("construct")
		ctor.Kind_ = ast.FunctionDeclConstructor
		class.AddMember(ctor)
	}
	if !hasDestruct {
		dtor := ast.NewFunctionDecl("destruct")
		dtor.Kind_ = ast.FunctionDeclDestructor
		class.AddMember(dtor)
	}
}

func (p *MethodInserter) insertAccessors(class *ast.ClassDecl) {
	methods := map[string]*ast.FunctionDecl{}
	for _, m := range class.Body {
		if fn, ok := functionOf(m); ok {
			methods[fn.Name] = fn
		}
	}

	var ivars []*ast.VarDecl
	for _, m := range class.Body {
		if v, ok := m.(*ast.VarDecl); ok && v.IsIVar {
			ivars = append(ivars, v)
		}
	}

	for _, field := range ivars {
		capName := capitalize(field.Name)
		getterName, setterName := "get"+capName, "set"+capName

		if existing, ok := methods[getterName]; ok {
			p.suppressExistingGetter(existing, field.Name)
		} else {
			getter := ast.NewFunctionDecl(getterName)
			getter.Kind_ = ast.FunctionDeclMethod
			getter.ReturnType = field.Type
			ret := ast.NewFlowControlCall(ast.FlowControlCallReturn)
			ret.SetArgument(ivarPath(field.Name))
			getter.AddEvaluable(ret)
			class.AddMember(getter)
		}

		if _, ok := methods[setterName]; !ok {
			setter := ast.NewFunctionDecl(setterName)
			setter.Kind_ = ast.FunctionDeclMethod
			setter.Parameters = []ast.Parameter{{Name: "value", Type: field.Type}}
			asn := ast.NewAssignment(field.Name)
			asn.SetValue(ast.NewVarName("value"))
			setter.AddEvaluable(asn)
			class.AddMember(setter)
		}
	}
}

// suppressExistingGetter walks an already-written getter's body; if it
// returns the ivar through a ValuePath, that path's normal getter-call
// lowering is suppressed, since the method itself *is* the getter.
func (p *MethodInserter) suppressExistingGetter(getter *ast.FunctionDecl, fieldName string) {
	for _, stmt := range getter.Body {
		ret, ok := stmt.(*ast.FlowControlCall)
		if !ok || ret.CallKind != ast.FlowControlCallReturn {
			continue
		}
		if vp, ok := ret.Argument.(*ast.ValuePath); ok && valuePathNames(vp, fieldName) {
			vp.PreventEmitCallToIVar = true
		}
	}
}

// ivarPath builds "@self.<name>", the direct (getter-bypassing) ivar
// read the synthesized getter's body returns.
func ivarPath(name string) *ast.ValuePath {
	vp := ast.NewValuePath()
	vp.AddSegment(ast.NewVarName("self"))
	vp.AddSegment(ast.NewPropertyName(name))
	vp.PreventEmitCallToIVar = true
	return vp
}

// valuePathNames reports whether vp's last segment names field.
func valuePathNames(vp *ast.ValuePath, field string) bool {
	if len(vp.Segments) == 0 {
		return false
	}
	switch seg := vp.Segments[len(vp.Segments)-1].(type) {
	case *ast.PropertyName:
		return seg.Name == field
	case *ast.VarName:
		return seg.Name == field
	default:
		return false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
