package types

import (
	"fmt"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
)

// Checker performs semantic analysis over a parsed file: it builds the
// symbol table, resolves references, infers and checks types, and validates
// structural constraints.
type Checker struct {
	Table  *SymbolTable
	Errors []diag.Diagnostic

	// generics is a stack of in-scope generic parameter sets, consulted by
	// the type resolver before the registry.
	generics []map[string]*Generic

	// selfType is the receiver type while checking struct/class/impl bodies.
	selfType Type

	nextTypeVar int
}

// NewChecker creates a checker with a freshly seeded symbol table.
func NewChecker() *Checker {
	return &Checker{Table: NewSymbolTable()}
}

// Check runs both analysis passes over the file. Pass 1 registers empty
// shells for every named type so bodies may reference peers by forward
// reference; pass 2 checks all declarations in source order.
func (c *Checker) Check(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.StructDecl:
			c.Table.RegisterType(d.Name, &Struct{Name: d.Name})
		case *ast.ClassDecl:
			c.Table.RegisterType(d.Name, &Class{Name: d.Name})
		case *ast.EnumDecl:
			c.Table.RegisterType(d.Name, &Enum{Name: d.Name})
		case *ast.TraitDecl:
			c.Table.RegisterType(d.Name, &Trait{Name: d.Name})
		}
	}

	for _, decl := range file.Decls {
		c.checkDecl(decl)
	}
}

// HasErrors reports whether any diagnostics were recorded.
func (c *Checker) HasErrors() bool {
	return len(c.Errors) > 0
}

// Diagnostics returns the recorded diagnostics.
func (c *Checker) Diagnostics() []diag.Diagnostic {
	return c.Errors
}

func (c *Checker) freshTypeVar() *TypeVar {
	c.nextTypeVar++
	return &TypeVar{ID: c.nextTypeVar}
}

func (c *Checker) pushGenerics(names []string) {
	frame := make(map[string]*Generic, len(names))
	for _, name := range names {
		frame[name] = &Generic{Name: name}
	}
	c.generics = append(c.generics, frame)
}

func (c *Checker) popGenerics() {
	c.generics = c.generics[:len(c.generics)-1]
}

func (c *Checker) lookupGeneric(name string) *Generic {
	for i := len(c.generics) - 1; i >= 0; i-- {
		if g, ok := c.generics[i][name]; ok {
			return g
		}
	}
	return nil
}

func (c *Checker) report(code diag.Code, msg string, span diag.Span) {
	c.Errors = append(c.Errors, diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span:     span,
	})
}

func (c *Checker) errorTypeMismatch(expected, actual Type, span diag.Span) {
	c.report(diag.CodeTypeMismatch,
		fmt.Sprintf("type mismatch: expected %s, got %s", typeName(expected), typeName(actual)), span)
}

func (c *Checker) errorUndefined(name string, span diag.Span) {
	c.report(diag.CodeResolveUndefined, "undefined symbol '"+name+"'", span)
}

func (c *Checker) errorRedefinition(name string, span diag.Span) {
	c.report(diag.CodeResolveRedefinition, "redefinition of '"+name+"'", span)
}

func typeName(t Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
