// Package symtab implements the lexical scope chains backing LIL's
// root environment (spec §3.3, §4.4): every scope-owning node kind —
// root, functionDecl, flowControl, classDecl, conversionDecl — keeps a
// local name-to-declaration map, and name resolution walks outward
// through parent scopes exactly like block scoping in any C-family
// language.
//
// Teacher shape: internal/symtab/{scope,symbol}.go's Scope/Symbol pair,
// tree-linked via parent pointers with a Define/Lookup/LookupLocal
// surface. The kinds enumerated below and the Type field's package
// (internal/types instead of the teacher's internal/semantic/types)
// are the only things that change.
package symtab

import (
	"github.com/veosotano/lilc/internal/source"
	"github.com/veosotano/lilc/internal/types"
)

// SymbolKind represents the kind of entity a Symbol names.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
	SymbolType
	SymbolClass
	SymbolField
	SymbolAlias
	SymbolConversion
	SymbolEnum
)

func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolType:
		return "type"
	case SymbolClass:
		return "class"
	case SymbolField:
		return "field"
	case SymbolAlias:
		return "alias"
	case SymbolConversion:
		return "conversion"
	case SymbolEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Symbol is a named entity visible in some scope: a variable, a
// function, a class, a field, and so on. Kept as one struct for every
// kind (rather than one Go type per kind) the same way the teacher's
// Symbol is, since every pass that consults the symbol table wants the
// same handful of fields regardless of kind.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     types.Type
	Pos      source.Position
	Scope    *Scope
	Constant bool
	Used     bool

	// Fields holds a class symbol's member fields, keyed by name.
	Fields map[string]*Symbol

	// Index is the symbol's position within its scope — a parameter's
	// ordinal position, or a field's slot for layout purposes.
	Index int
}

func (s *Symbol) String() string {
	ty := "<untyped>"
	if s.Type != nil {
		ty = s.Type.String()
	}
	return s.Kind.String() + " " + s.Name + ": " + ty + " at " + s.Pos.String()
}

// IsGlobal reports whether this symbol was declared directly in the
// root environment's scope.
func (s *Symbol) IsGlobal() bool {
	return s.Scope != nil && s.Scope.IsRoot()
}

// IsLocal is the complement of IsGlobal.
func (s *Symbol) IsLocal() bool { return !s.IsGlobal() }

// CanAssign reports whether this symbol may appear as the target of an
// assignment: plain variables, parameters, and fields can; constants,
// functions, types, classes, aliases, conversions, and enums cannot.
func (s *Symbol) CanAssign() bool {
	if s.Constant {
		return false
	}
	switch s.Kind {
	case SymbolVariable, SymbolParameter, SymbolField:
		return true
	default:
		return false
	}
}

// MarkUsed records that this symbol was referenced by a name lookup.
func (s *Symbol) MarkUsed() { s.Used = true }

// LookupField looks up a field on a class symbol, returning nil if s is
// not a class or has no such field.
func (s *Symbol) LookupField(name string) *Symbol {
	if s.Kind != SymbolClass {
		return nil
	}
	return s.Fields[name]
}
