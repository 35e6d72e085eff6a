package passes

import (
	"testing"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

func TestTypeResolver_ResolvesAliasOnVarDecl(t *testing.T) {
	env := root.New()
	env.Aliases["distance"] = types.I64

	v := ast.NewVarDecl("d")
	v.Type = types.NewSingle("distance")
	env.Main.AddEvaluable(v)

	NewTypeResolver(silentLogger()).PerformVisit(env)

	single, ok := v.Type.(*types.Single)
	if !ok {
		t.Fatalf("expected a resolved Single, got %#v", v.Type)
	}
	if single.Name != "i64" {
		t.Errorf("expected the resolved name to be i64, got %q", single.Name)
	}
	if single.StrongName != "distance" {
		t.Errorf("expected StrongName to preserve the written alias, got %q", single.StrongName)
	}
}

func TestTypeResolver_AlreadyResolvedSingleIsLeftAlone(t *testing.T) {
	env := root.New()
	env.Aliases["distance"] = types.F64

	v := ast.NewVarDecl("d")
	v.Type = types.NewResolvedAlias("i64", "distance")
	env.Main.AddEvaluable(v)

	NewTypeResolver(silentLogger()).PerformVisit(env)

	single := v.Type.(*types.Single)
	if single.Name != "i64" {
		t.Errorf("expected an already-resolved type to be left untouched, got %q", single.Name)
	}
}

func TestTypeResolver_RecursesThroughPointerAndMultiple(t *testing.T) {
	env := root.New()
	env.Aliases["distance"] = types.I64

	fn := ast.NewFunctionDecl("move")
	fn.Parameters = []ast.Parameter{
		{Name: "by", Type: types.NewPointer(types.NewSingle("distance"))},
	}
	fn.ReturnType = types.NewMultiple([]types.Type{types.NewSingle("distance"), types.Bool}, true)
	env.Root = append(env.Root, fn)

	NewTypeResolver(silentLogger()).PerformVisit(env)

	ptr, ok := fn.Parameters[0].Type.(*types.Pointer)
	if !ok {
		t.Fatalf("expected a Pointer, got %#v", fn.Parameters[0].Type)
	}
	pointee := ptr.PointeeType.(*types.Single)
	if pointee.Name != "i64" || pointee.StrongName != "distance" {
		t.Errorf("expected the pointee to resolve through the alias, got %#v", pointee)
	}

	multi, ok := fn.ReturnType.(*types.Multiple)
	if !ok {
		t.Fatalf("expected a Multiple, got %#v", fn.ReturnType)
	}
	first := multi.Types[0].(*types.Single)
	if first.Name != "i64" {
		t.Errorf("expected the first union member to resolve through the alias, got %#v", first)
	}
	if !multi.Strong {
		t.Error("expected the strong flag to be preserved across resolution")
	}
}

func TestTypeResolver_UnknownAliasPassesThroughUnchanged(t *testing.T) {
	env := root.New()

	v := ast.NewVarDecl("d")
	v.Type = types.NewSingle("mystery")
	env.Main.AddEvaluable(v)

	NewTypeResolver(silentLogger()).PerformVisit(env)

	single := v.Type.(*types.Single)
	if single.Name != "mystery" {
		t.Errorf("expected an unresolvable name to pass through unchanged, got %q", single.Name)
	}
}
