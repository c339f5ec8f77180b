package types

import (
	"fmt"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
)

func (c *Checker) checkStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		c.checkVarDecl(s)
	case *ast.IfStmt:
		c.checkIfStmt(s)
	case *ast.WhileStmt:
		c.checkWhileStmt(s)
	case *ast.ForStmt:
		c.checkForStmt(s)
	case *ast.MatchStmt:
		c.checkMatchStmt(s)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s)
	case *ast.BreakStmt:
		if !c.Table.InLoop() {
			c.report(diag.CodeTypeBreakOutside, "'break' outside of loop", s.Span())
		}
	case *ast.ContinueStmt:
		if !c.Table.InLoop() {
			c.report(diag.CodeTypeBreakOutside, "'continue' outside of loop", s.Span())
		}
	case *ast.YieldStmt:
		c.inferType(s.Value)
	case *ast.ExprStmt:
		c.inferType(s.Expr)
	}
}

// checkBlock opens a fresh block scope for the statement list.
func (c *Checker) checkBlock(block *ast.Block) {
	c.Table.EnterScope(ScopeBlock)
	for _, stmt := range block.Stmts {
		c.checkStatement(stmt)
	}
	c.Table.ExitScope()
}

// checkVarDecl types the binding from its annotation, its initializer, or
// both; with both, the initializer must be assignable to the annotation.
func (c *Checker) checkVarDecl(stmt *ast.VarDeclStmt) {
	var declared Type
	if stmt.Type != nil {
		declared = c.resolveType(stmt.Type)
	}

	var initType Type
	if stmt.Init != nil {
		initType = c.inferType(stmt.Init)
	}

	var varType Type
	switch {
	case declared != nil && initType != nil:
		if !IsUnknown(declared) && !IsUnknown(initType) && !Assignable(initType, declared) {
			c.errorTypeMismatch(declared, initType, stmt.Init.Span())
		}
		varType = declared
	case declared != nil:
		varType = declared
	case initType != nil:
		varType = initType
	default:
		c.report(diag.CodeTypeMismatch,
			fmt.Sprintf("cannot determine type of '%s'", stmt.Name), stmt.Span())
		varType = TypeUnknown
	}

	sym := &Symbol{
		Name:        stmt.Name,
		Kind:        SymbolVariable,
		Type:        varType,
		Mutable:     stmt.Mutable,
		Initialized: stmt.Init != nil,
		Def:         stmt.Span(),
	}
	if !c.Table.Define(sym) {
		c.errorRedefinition(stmt.Name, stmt.Span())
	}
}

func (c *Checker) requireBool(cond ast.Expr, what string) {
	condType := c.inferType(cond)
	if !IsUnknown(condType) && !IsBool(condType) {
		c.report(diag.CodeTypeBadCondition, what+" must be bool", cond.Span())
	}
}

func (c *Checker) checkIfStmt(stmt *ast.IfStmt) {
	c.requireBool(stmt.Cond, "condition")
	c.checkBlock(stmt.Then)
	for _, elif := range stmt.Elifs {
		c.requireBool(elif.Cond, "condition")
		c.checkBlock(elif.Body)
	}
	if stmt.Else != nil {
		c.checkBlock(stmt.Else)
	}
}

func (c *Checker) checkWhileStmt(stmt *ast.WhileStmt) {
	c.requireBool(stmt.Cond, "condition")
	c.Table.EnterScope(ScopeLoop)
	c.checkBlock(stmt.Body)
	c.Table.ExitScope()
}

// elementType gives the loop-variable type for an iterable: lists and arrays
// iterate their element type; everything else (ranges included) iterates i64.
func elementType(iterable Type) Type {
	switch t := iterable.(type) {
	case *List:
		return t.Elem
	case *Array:
		return t.Elem
	default:
		return TypeI64
	}
}

func (c *Checker) checkForStmt(stmt *ast.ForStmt) {
	iterType := c.inferType(stmt.Iterable)

	c.Table.EnterScope(ScopeLoop)
	c.Table.Define(&Symbol{
		Name:        stmt.Var,
		Kind:        SymbolVariable,
		Type:        elementType(iterType),
		Initialized: true,
		Def:         stmt.Span(),
	})
	c.checkBlock(stmt.Body)
	c.Table.ExitScope()
}

// checkMatchStmt types the scrutinee, every pattern (patterns are plain
// expressions for now; exhaustiveness is not enforced), every guard, and
// every arm body.
func (c *Checker) checkMatchStmt(stmt *ast.MatchStmt) {
	c.inferType(stmt.Scrutinee)

	for _, arm := range stmt.Arms {
		c.inferType(arm.Pattern)
		if arm.Guard != nil {
			c.requireBool(arm.Guard, "match guard")
		}
		c.checkBlock(arm.Body)
	}
}

func (c *Checker) checkReturnStmt(stmt *ast.ReturnStmt) {
	if !c.Table.InFunction() {
		c.report(diag.CodeTypeReturnOutside, "'return' outside of function", stmt.Span())
		return
	}

	c.Table.SetSawReturn()

	expected := c.Table.CurrentReturnType()
	if stmt.Value != nil {
		actual := c.inferType(stmt.Value)
		if !IsUnknown(actual) && !IsUnknown(expected) && !Assignable(actual, expected) {
			c.errorTypeMismatch(expected, actual, stmt.Value.Span())
		}
	} else if expected != nil && expected != TypeVoid && !IsUnknown(expected) {
		c.report(diag.CodeTypeMismatch,
			fmt.Sprintf("expected return value of type %s", expected), stmt.Span())
	}
}
