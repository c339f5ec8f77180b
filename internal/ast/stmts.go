package ast

import "github.com/aljojoby9/Axiom/internal/diag"

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	node
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span diag.Span) *ExprStmt {
	s := &ExprStmt{Expr: expr}
	s.span = span
	return s
}

// VarDeclStmt represents let/var/const bindings.
type VarDeclStmt struct {
	node
	Name    string
	Type    TypeExpr // optional annotation
	Init    Expr     // optional initializer
	Mutable bool
	Const   bool
}

func (*VarDeclStmt) stmtNode() {}

// NewVarDeclStmt constructs a variable declaration node.
func NewVarDeclStmt(name string, mutable, isConst bool, span diag.Span) *VarDeclStmt {
	s := &VarDeclStmt{Name: name, Mutable: mutable, Const: isConst}
	s.span = span
	return s
}

// ElifClause is one elif arm of an if chain.
type ElifClause struct {
	Cond Expr
	Body *Block
}

// IfStmt represents if/elif/else.
type IfStmt struct {
	node
	Cond  Expr
	Then  *Block
	Elifs []ElifClause
	Else  *Block // optional
}

func (*IfStmt) stmtNode() {}

// NewIfStmt constructs an if statement node.
func NewIfStmt(cond Expr, then *Block, span diag.Span) *IfStmt {
	s := &IfStmt{Cond: cond, Then: then}
	s.span = span
	return s
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	node
	Cond Expr
	Body *Block
}

func (*WhileStmt) stmtNode() {}

// NewWhileStmt constructs a while statement node.
func NewWhileStmt(cond Expr, body *Block, span diag.Span) *WhileStmt {
	s := &WhileStmt{Cond: cond, Body: body}
	s.span = span
	return s
}

// ForStmt represents for NAME in EXPR.
type ForStmt struct {
	node
	Var      string
	Iterable Expr
	Body     *Block
}

func (*ForStmt) stmtNode() {}

// NewForStmt constructs a for statement node.
func NewForStmt(varName string, iterable Expr, body *Block, span diag.Span) *ForStmt {
	s := &ForStmt{Var: varName, Iterable: iterable, Body: body}
	s.span = span
	return s
}

// MatchArm is one case arm: pattern, optional guard, body.
type MatchArm struct {
	Pattern Expr
	Guard   Expr // optional
	Body    *Block
}

// MatchStmt represents match/case.
type MatchStmt struct {
	node
	Scrutinee Expr
	Arms      []MatchArm
}

func (*MatchStmt) stmtNode() {}

// NewMatchStmt constructs a match statement node.
func NewMatchStmt(scrutinee Expr, span diag.Span) *MatchStmt {
	s := &MatchStmt{Scrutinee: scrutinee}
	s.span = span
	return s
}

// ReturnStmt represents return with an optional value.
type ReturnStmt struct {
	node
	Value Expr // optional
}

func (*ReturnStmt) stmtNode() {}

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span diag.Span) *ReturnStmt {
	s := &ReturnStmt{Value: value}
	s.span = span
	return s
}

// BreakStmt represents break.
type BreakStmt struct {
	node
}

func (*BreakStmt) stmtNode() {}

// NewBreakStmt constructs a break statement node.
func NewBreakStmt(span diag.Span) *BreakStmt {
	s := &BreakStmt{}
	s.span = span
	return s
}

// ContinueStmt represents continue.
type ContinueStmt struct {
	node
}

func (*ContinueStmt) stmtNode() {}

// NewContinueStmt constructs a continue statement node.
func NewContinueStmt(span diag.Span) *ContinueStmt {
	s := &ContinueStmt{}
	s.span = span
	return s
}

// YieldStmt represents yield EXPR.
type YieldStmt struct {
	node
	Value Expr
}

func (*YieldStmt) stmtNode() {}

// NewYieldStmt constructs a yield statement node.
func NewYieldStmt(value Expr, span diag.Span) *YieldStmt {
	s := &YieldStmt{Value: value}
	s.span = span
	return s
}
