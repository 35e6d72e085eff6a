// Package root implements the root environment (spec §4.4): the
// per-compilation-unit registries the pass pipeline consults and
// populates — the class registry, alias/typedef tables, the conversion
// registry, the dependency list built by the #needs/#import
// preprocessing, and the synthesized main function every LIL program
// gets even when its source never declares one explicitly.
//
// There is no direct teacher analog for a single object gathering all
// of this; the shape borrows from internal/symtab/scope.go's
// tree-linked, map-backed registries, generalized from "names visible
// in a scope" to "the several distinct registries a whole compilation
// unit needs." The root environment owns the outermost
// symtab.ScopeRoot scope that every other scope nests under.
package root

import (
	"github.com/google/uuid"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/symtab"
	"github.com/veosotano/lilc/internal/types"
)

// Conversion records one registered implicit conversion, keyed in the
// registry by EncodedName (see ast.ConversionDecl.EncodedName).
type Conversion struct {
	Decl *ast.ConversionDecl
	From types.Type
	To   types.Type
}

// Environment is the root environment for one compilation unit. A
// fresh Environment is created per top-level file the preprocessor
// resolves (including each file pulled in transitively by #needs), so
// the UUID lets logs and error batches from concurrent or nested
// compilation units be told apart.
type Environment struct {
	ID uuid.UUID

	// Scope is the outermost lexical scope; every functionDecl,
	// classDecl, conversionDecl, and flowControl scope nests under it
	// (or under one of its descendants).
	Scope *symtab.Scope

	// Classes maps a class name to its declaration.
	Classes map[string]*ast.ClassDecl

	// Aliases maps an alias name to the type it stands for.
	Aliases map[string]types.Type

	// Conversions maps "<src>_to_<dst>" to its registered Conversion.
	Conversions map[string]*Conversion

	// Dependencies lists, in resolution order, every file path pulled
	// in by a #needs instruction — populated by the preprocessor pass
	// and consulted by the needs-importer to detect cycles (spec §4.5
	// pass 1).
	Dependencies []string

	// ImportDependencies is the same bookkeeping for #import, tracked
	// separately per spec §4.5 pass 1 ("Track already-imported paths
	// (separately for #needs vs #import) so cycles terminate"):
	// #needs and #import resolve independently, so a file reachable by
	// both directives is visited once under each.
	ImportDependencies []string

	// Main is the synthesized entry-point function every compilation
	// unit has, even one whose source declares no explicit main: New
	// creates it eagerly and the builder appends top-level evaluables to
	// its body as they're committed.
	Main *ast.FunctionDecl

	// Root is the tree of top-level nodes this environment owns: every
	// ClassDecl, AliasDecl, FunctionDecl, and extern or function-valued
	// VarDecl the builder has routed to the compilation unit as a whole
	// (see internal/builder); other top-level nodes, rules included, go
	// to Main's body.
	Root []ast.Node
}

// New creates an Environment with its root scope and synthesized main
// already in place.
func New() *Environment {
	env := &Environment{
		ID:          uuid.New(),
		Scope:       symtab.NewScope(symtab.ScopeRoot, nil),
		Classes:     make(map[string]*ast.ClassDecl),
		Aliases:     make(map[string]types.Type),
		Conversions: make(map[string]*Conversion),
	}

	env.Main = ast.NewFunctionDecl("main")
	env.Main.NeedsNameMangling = false
	env.Main.ReturnType = types.I64
	mainSymbol := Symbol(env, "main", symtab.SymbolFunction, fnType(env.Main))
	env.Scope.Define(mainSymbol)

	return env
}

// fnType builds the *types.Function signature for a FunctionDecl from
// its current Parameters/ReturnType, used wherever a symbol needs a
// Function type to compare call sites against.
func fnType(fn *ast.FunctionDecl) *types.Function {
	params := make([]types.Type, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.Type
	}
	ret := fn.ReturnType
	if ret == nil {
		ret = types.Void
	}
	return types.NewFunction(params, ret)
}

// Symbol is a small constructor helper so every registry-populating
// pass builds *symtab.Symbol values the same way.
func Symbol(env *Environment, name string, kind symtab.SymbolKind, ty types.Type) *symtab.Symbol {
	return &symtab.Symbol{Name: name, Kind: kind, Type: ty}
}

// AddTopLevel appends a top-level node (ClassDecl, AliasDecl,
// FunctionDecl, VarDecl) to the environment's root node list.
func (env *Environment) AddTopLevel(n ast.Node) {
	env.Root = append(env.Root, n)
}

// RegisterClass adds decl to the class registry and defines a
// SymbolClass entry in the root scope.
func (env *Environment) RegisterClass(decl *ast.ClassDecl) {
	env.Classes[decl.Name] = decl
	sym := Symbol(env, decl.Name, symtab.SymbolClass, decl.Type)
	env.Scope.Define(sym)
}

// RegisterAlias adds a name => type alias and defines a SymbolAlias
// entry in the root scope.
func (env *Environment) RegisterAlias(name string, ty types.Type) {
	env.Aliases[name] = ty
	env.Scope.Define(Symbol(env, name, symtab.SymbolAlias, ty))
}

// RegisterConversion adds decl to the conversion registry, keyed by its
// encoded "<src>_to_<dst>" name.
func (env *Environment) RegisterConversion(decl *ast.ConversionDecl, from, to types.Type) {
	decl.SourceType = from
	decl.DestType = to
	env.Conversions[decl.EncodedName()] = &Conversion{Decl: decl, From: from, To: to}
}

// LookupConversion finds a registered conversion from `from` to `to`,
// or nil if none was registered.
func (env *Environment) LookupConversion(from, to types.Type) *Conversion {
	key := from.String() + "_to_" + to.String()
	return env.Conversions[key]
}

// AddDependency appends path to the dependency list if it is not
// already present, used by the preprocessor pass to build a cycle-safe
// #needs resolution order (#import uses AddImportDependency).
func (env *Environment) AddDependency(path string) {
	for _, d := range env.Dependencies {
		if d == path {
			return
		}
	}
	env.Dependencies = append(env.Dependencies, path)
}

// HasDependency reports whether path has already been pulled in,
// letting the needs-importer pass short-circuit a repeated or circular
// #needs without re-reading or re-parsing it.
func (env *Environment) HasDependency(path string) bool {
	for _, d := range env.Dependencies {
		if d == path {
			return true
		}
	}
	return false
}

// AddImportDependency is AddDependency's #import counterpart.
func (env *Environment) AddImportDependency(path string) {
	for _, d := range env.ImportDependencies {
		if d == path {
			return
		}
	}
	env.ImportDependencies = append(env.ImportDependencies, path)
}

// HasImportDependency is HasDependency's #import counterpart.
func (env *Environment) HasImportDependency(path string) bool {
	for _, d := range env.ImportDependencies {
		if d == path {
			return true
		}
	}
	return false
}
