package types

import "github.com/aljojoby9/Axiom/internal/diag"

// SymbolKind classifies what a symbol names.
type SymbolKind string

const (
	SymbolVariable    SymbolKind = "variable"
	SymbolParameter   SymbolKind = "parameter"
	SymbolFunction    SymbolKind = "function"
	SymbolType        SymbolKind = "type"
	SymbolTrait       SymbolKind = "trait"
	SymbolModule      SymbolKind = "module"
	SymbolEnumVariant SymbolKind = "enum-variant"
)

// Symbol represents a named entity in the source code.
type Symbol struct {
	Name        string
	Kind        SymbolKind
	Type        Type
	Mutable     bool
	Public      bool
	Initialized bool
	Def         diag.Span
	TypeParams  []string // for generic functions
}

// ScopeKind classifies a lexical scope.
type ScopeKind string

const (
	ScopeGlobal   ScopeKind = "global"
	ScopeModule   ScopeKind = "module"
	ScopeFunction ScopeKind = "function"
	ScopeBlock    ScopeKind = "block"
	ScopeLoop     ScopeKind = "loop"
	ScopeStruct   ScopeKind = "struct"
	ScopeClass    ScopeKind = "class"
	ScopeTrait    ScopeKind = "trait"
	ScopeImpl     ScopeKind = "impl"
)

// Scope is one lexical scope. Function scopes additionally carry the expected
// return type and the saw-return flag.
type Scope struct {
	Kind    ScopeKind
	Parent  *Scope
	symbols map[string]*Symbol

	ExpectedReturn Type // function scopes only
	SawReturn      bool // function scopes only
}

// NewScope creates a scope with an optional parent.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{
		Kind:    kind,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Define adds a symbol to this scope. It reports false when the name is
// already bound here.
func (s *Scope) Define(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	return true
}

// LookupLocal finds a symbol in this scope only.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.symbols[name]
}

// Lookup finds a symbol here or in any ancestor scope.
func (s *Scope) Lookup(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}

// Symbols returns the scope's local symbol table.
func (s *Scope) Symbols() map[string]*Symbol {
	return s.symbols
}

// InLoop reports whether this scope or an ancestor is a loop scope.
func (s *Scope) InLoop() bool {
	if s.Kind == ScopeLoop {
		return true
	}
	if s.Parent != nil {
		return s.Parent.InLoop()
	}
	return false
}

// SymbolTable manages the scope stack, the type registry, and the recorded
// trait-implementation relationships. Scopes follow a strict stack
// discipline: created on entry, dropped on exit.
type SymbolTable struct {
	scopes   []*Scope
	registry map[string]Type
	impls    map[string][]string // type name -> implemented trait names
}

// NewSymbolTable creates a table with the global scope and built-in seed.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		registry: make(map[string]Type),
		impls:    make(map[string][]string),
	}
	t.scopes = append(t.scopes, NewScope(ScopeGlobal, nil))
	t.seedBuiltins()
	return t
}

// EnterScope pushes a new scope of the given kind.
func (t *SymbolTable) EnterScope(kind ScopeKind) *Scope {
	scope := NewScope(kind, t.CurrentScope())
	t.scopes = append(t.scopes, scope)
	return scope
}

// ExitScope pops the current scope. The global scope is never popped.
func (t *SymbolTable) ExitScope() {
	if len(t.scopes) > 1 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// CurrentScope returns the innermost scope.
func (t *SymbolTable) CurrentScope() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// GlobalScope returns the outermost scope.
func (t *SymbolTable) GlobalScope() *Scope {
	return t.scopes[0]
}

// Define adds a symbol to the current scope; false on redefinition.
func (t *SymbolTable) Define(sym *Symbol) bool {
	return t.CurrentScope().Define(sym)
}

// Lookup searches the scope chain for a symbol.
func (t *SymbolTable) Lookup(name string) *Symbol {
	return t.CurrentScope().Lookup(name)
}

// LookupLocal searches the current scope only.
func (t *SymbolTable) LookupLocal(name string) *Symbol {
	return t.CurrentScope().LookupLocal(name)
}

// LookupType finds a type in the registry.
func (t *SymbolTable) LookupType(name string) Type {
	return t.registry[name]
}

// RegisterType binds a name in the type registry.
func (t *SymbolTable) RegisterType(name string, typ Type) {
	t.registry[name] = typ
}

// RecordImpl records that typeName implements traitName.
func (t *SymbolTable) RecordImpl(typeName, traitName string) {
	t.impls[typeName] = append(t.impls[typeName], traitName)
}

// TraitImpls returns the trait names recorded for typeName.
func (t *SymbolTable) TraitImpls(typeName string) []string {
	return t.impls[typeName]
}

// InLoop reports whether the current scope chain crosses a loop scope.
func (t *SymbolTable) InLoop() bool {
	return t.CurrentScope().InLoop()
}

// InFunction reports whether any enclosing scope is a function scope.
func (t *SymbolTable) InFunction() bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if t.scopes[i].Kind == ScopeFunction {
			return true
		}
	}
	return false
}

// CurrentReturnType returns the innermost function scope's expected return
// type, or nil outside any function.
func (t *SymbolTable) CurrentReturnType() Type {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if t.scopes[i].Kind == ScopeFunction {
			return t.scopes[i].ExpectedReturn
		}
	}
	return nil
}

// SetSawReturn flags the innermost function scope as having returned.
func (t *SymbolTable) SetSawReturn() {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if t.scopes[i].Kind == ScopeFunction {
			t.scopes[i].SawReturn = true
			return
		}
	}
}

// seedBuiltins registers the primitive type names and the built-in functions
// in the global scope. TypeUnknown stands in for `any` parameters.
func (t *SymbolTable) seedBuiltins() {
	t.RegisterType("void", TypeVoid)
	t.RegisterType("bool", TypeBool)
	t.RegisterType("i8", TypeI8)
	t.RegisterType("i16", TypeI16)
	t.RegisterType("i32", TypeI32)
	t.RegisterType("i64", TypeI64)
	t.RegisterType("u8", TypeU8)
	t.RegisterType("u16", TypeU16)
	t.RegisterType("u32", TypeU32)
	t.RegisterType("u64", TypeU64)
	t.RegisterType("f32", TypeF32)
	t.RegisterType("f64", TypeF64)
	t.RegisterType("char", TypeChar)
	t.RegisterType("str", TypeStr)

	builtins := []struct {
		name string
		typ  *Function
	}{
		{"print", &Function{Params: []Type{TypeUnknown}, Return: TypeVoid}},
		{"len", &Function{Params: []Type{TypeUnknown}, Return: TypeI64}},
		{"range", &Function{Params: []Type{TypeI64, TypeI64}, Return: &List{Elem: TypeI64}}},
		{"type", &Function{Params: []Type{TypeUnknown}, Return: TypeStr}},
	}
	for _, b := range builtins {
		t.Define(&Symbol{
			Name:        b.name,
			Kind:        SymbolFunction,
			Type:        b.typ,
			Initialized: true,
		})
	}
}
