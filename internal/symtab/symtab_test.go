package symtab

import (
	"testing"

	"github.com/veosotano/lilc/internal/source"
	"github.com/veosotano/lilc/internal/types"
)

func TestSymbol_String(t *testing.T) {
	symbol := &Symbol{
		Name: "x",
		Kind: SymbolVariable,
		Type: types.I64,
		Pos:  source.Position{File: "test.lil", Line: 1, Column: 5},
	}

	want := "variable x: i64 at test.lil:1:5"
	if got := symbol.String(); got != want {
		t.Errorf("Symbol.String() = %q, want %q", got, want)
	}
}

func TestSymbol_IsGlobal(t *testing.T) {
	rootScope := NewScope(ScopeRoot, nil)
	localScope := NewScope(ScopeFunctionDecl, rootScope)

	global := &Symbol{Name: "x", Scope: rootScope}
	local := &Symbol{Name: "y", Scope: localScope}

	if !global.IsGlobal() {
		t.Error("expected root-scoped symbol IsGlobal() to be true")
	}
	if local.IsGlobal() {
		t.Error("expected function-scoped symbol IsGlobal() to be false")
	}
}

func TestSymbol_CanAssign(t *testing.T) {
	tests := []struct {
		name     string
		symbol   *Symbol
		expected bool
	}{
		{"variable can be assigned", &Symbol{Kind: SymbolVariable}, true},
		{"parameter can be assigned", &Symbol{Kind: SymbolParameter}, true},
		{"field can be assigned", &Symbol{Kind: SymbolField}, true},
		{"constant cannot be assigned", &Symbol{Kind: SymbolVariable, Constant: true}, false},
		{"function cannot be assigned", &Symbol{Kind: SymbolFunction}, false},
		{"class cannot be assigned", &Symbol{Kind: SymbolClass}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.symbol.CanAssign(); got != tt.expected {
				t.Errorf("Symbol.CanAssign() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSymbol_LookupField(t *testing.T) {
	class := &Symbol{
		Kind: SymbolClass,
		Fields: map[string]*Symbol{
			"x": {Name: "x", Type: types.I32},
			"y": {Name: "y", Type: types.I32},
		},
	}

	if field := class.LookupField("x"); field == nil || field.Name != "x" {
		t.Errorf("expected to find field x, got %v", field)
	}
	if field := class.LookupField("z"); field != nil {
		t.Errorf("expected nil for missing field, got %v", field)
	}

	notAClass := &Symbol{Kind: SymbolVariable}
	if field := notAClass.LookupField("x"); field != nil {
		t.Error("expected nil when looking up a field on a non-class symbol")
	}
}

func TestNewScope(t *testing.T) {
	parent := NewScope(ScopeRoot, nil)
	child := NewScope(ScopeFunctionDecl, parent)

	if child.Parent != parent {
		t.Error("expected child scope to have correct parent")
	}
	if child.Depth != 1 {
		t.Errorf("expected child depth = 1, got %d", child.Depth)
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Error("expected parent to list child in Children")
	}
}

func TestScope_Define(t *testing.T) {
	scope := NewScope(ScopeRoot, nil)
	symbol := &Symbol{Name: "x", Type: types.I32}

	if err := scope.Define(symbol); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if symbol.Scope != scope {
		t.Error("expected Define to set the symbol's Scope")
	}

	duplicate := &Symbol{Name: "x", Type: types.F32}
	if err := scope.Define(duplicate); err == nil {
		t.Error("expected an error for a duplicate definition in the same scope")
	}
}

func TestScope_Lookup(t *testing.T) {
	root := NewScope(ScopeRoot, nil)
	fn := NewScope(ScopeFunctionDecl, root)

	rootSym := &Symbol{Name: "x", Type: types.I32}
	fnSym := &Symbol{Name: "y", Type: types.F32}
	root.Define(rootSym)
	fn.Define(fnSym)

	if found := fn.Lookup("y"); found == nil || found.Name != "y" {
		t.Error("expected to find local symbol y")
	}
	if found := fn.Lookup("x"); found == nil || found.Name != "x" {
		t.Error("expected to find root symbol x from function scope")
	}
	if found := fn.Lookup("z"); found != nil {
		t.Error("expected nil for undeclared symbol")
	}

	if !rootSym.Used || !fnSym.Used {
		t.Error("expected Lookup to mark symbols used")
	}
}

func TestScope_LookupLocal(t *testing.T) {
	root := NewScope(ScopeRoot, nil)
	fn := NewScope(ScopeFunctionDecl, root)

	root.Define(&Symbol{Name: "x", Type: types.I32})
	fn.Define(&Symbol{Name: "y", Type: types.F32})

	if found := fn.LookupLocal("y"); found == nil {
		t.Error("expected to find local symbol y")
	}
	if found := fn.LookupLocal("x"); found != nil {
		t.Error("expected LookupLocal not to see the parent scope's symbol")
	}
}

func TestScope_FindEnclosingFunctionDecl(t *testing.T) {
	root := NewScope(ScopeRoot, nil)
	fn := NewScope(ScopeFunctionDecl, root)
	block := NewScope(ScopeFlowControl, fn)

	if found := block.FindEnclosingFunctionDecl(); found != fn {
		t.Error("expected to find enclosing functionDecl scope from flowControl scope")
	}
	if found := root.FindEnclosingFunctionDecl(); found != nil {
		t.Error("expected nil enclosing functionDecl scope from root")
	}
}

func TestScope_FindEnclosingFlowControl(t *testing.T) {
	fn := NewScope(ScopeFunctionDecl, nil)
	loop := NewScope(ScopeFlowControl, fn)
	nested := NewScope(ScopeFlowControl, loop)

	if found := nested.FindEnclosingFlowControl(); found != nested {
		t.Error("expected a flowControl scope to find itself")
	}
	if found := fn.FindEnclosingFlowControl(); found != nil {
		t.Error("expected nil enclosing flowControl scope from a bare function scope")
	}
}

func TestScope_UnusedSymbols(t *testing.T) {
	scope := NewScope(ScopeRoot, nil)

	used := &Symbol{Name: "x", Type: types.I32, Used: true}
	unused := &Symbol{Name: "y", Type: types.F32}
	scope.Define(used)
	scope.Define(unused)

	got := scope.UnusedSymbols()
	if len(got) != 1 || got[0].Name != "y" {
		t.Errorf("expected exactly one unused symbol named y, got %v", got)
	}
}

func TestSymbolKind_String(t *testing.T) {
	tests := []struct {
		kind SymbolKind
		want string
	}{
		{SymbolVariable, "variable"},
		{SymbolFunction, "function"},
		{SymbolParameter, "parameter"},
		{SymbolType, "type"},
		{SymbolClass, "class"},
		{SymbolField, "field"},
		{SymbolAlias, "alias"},
		{SymbolConversion, "conversion"},
		{SymbolEnum, "enum"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("SymbolKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScopeKind_String(t *testing.T) {
	tests := []struct {
		kind ScopeKind
		want string
	}{
		{ScopeRoot, "root"},
		{ScopeFunctionDecl, "functionDecl"},
		{ScopeFlowControl, "flowControl"},
		{ScopeClassDecl, "classDecl"},
		{ScopeConversionDecl, "conversionDecl"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ScopeKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
