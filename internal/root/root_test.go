package root

import (
	"testing"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/symtab"
	"github.com/veosotano/lilc/internal/types"
)

func TestNew_SynthesizesMain(t *testing.T) {
	env := New()

	if env.Main == nil || env.Main.Name != "main" {
		t.Fatal("expected New to synthesize a main function")
	}
	if env.Main.NeedsNameMangling {
		t.Error("expected the synthesized main not to be name-mangled")
	}

	sym := env.Scope.LookupLocal("main")
	if sym == nil || sym.Kind != symtab.SymbolFunction {
		t.Error("expected main to be registered as a function symbol in the root scope")
	}
}

func TestRegisterClass(t *testing.T) {
	env := New()
	class := ast.NewClassDecl("menu")
	class.Type = types.NewObject("menu")

	env.RegisterClass(class)

	if env.Classes["menu"] != class {
		t.Error("expected class to be stored in the registry")
	}
	sym := env.Scope.LookupLocal("menu")
	if sym == nil || sym.Kind != symtab.SymbolClass {
		t.Error("expected menu to be registered as a class symbol")
	}
}

func TestRegisterAndLookupConversion(t *testing.T) {
	env := New()
	decl := ast.NewConversionDecl()
	arg := ast.NewVarDecl("value")
	decl.SetArgument(arg)

	env.RegisterConversion(decl, types.I32, types.F32)

	found := env.LookupConversion(types.I32, types.F32)
	if found == nil || found.Decl != decl {
		t.Fatal("expected to find the registered conversion")
	}
	if found.From != types.Type(types.I32) || found.To != types.Type(types.F32) {
		t.Error("conversion From/To types not recorded correctly")
	}

	if env.LookupConversion(types.F32, types.I32) != nil {
		t.Error("expected no conversion registered in the reverse direction")
	}
}

func TestDependencyTracking(t *testing.T) {
	env := New()

	if env.HasDependency("widgets.lil") {
		t.Fatal("expected no dependencies initially")
	}

	env.AddDependency("widgets.lil")
	env.AddDependency("widgets.lil") // duplicate #needs should be a no-op
	env.AddDependency("theme.lil")

	if len(env.Dependencies) != 2 {
		t.Errorf("expected 2 distinct dependencies, got %d: %v", len(env.Dependencies), env.Dependencies)
	}
	if !env.HasDependency("theme.lil") {
		t.Error("expected theme.lil to be tracked as a dependency")
	}
}

func TestAddTopLevel(t *testing.T) {
	env := New()
	v := ast.NewVarDecl("x")

	env.AddTopLevel(v)

	if len(env.Root) != 1 || env.Root[0] != ast.Node(v) {
		t.Error("expected top-level node to be appended to Root")
	}
}
