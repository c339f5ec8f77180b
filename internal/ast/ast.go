package ast

import "github.com/aljojoby9/Axiom/internal/diag"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() diag.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level declaration.
type Decl interface {
	Node
	declNode()
	// Public reports the declaration's visibility.
	Public() bool
	setPublic(bool)
}

// TypeExpr represents a syntactic type reference.
type TypeExpr interface {
	Node
	typeNode()
}

// node carries the span shared by every AST node.
type node struct {
	span diag.Span
}

// Span returns the node's source span.
func (n *node) Span() diag.Span { return n.span }

// SetSpan updates the node's source span.
func (n *node) SetSpan(span diag.Span) { n.span = span }

// decl carries the visibility bit shared by every declaration.
type decl struct {
	node
	IsPublic bool
}

func (d *decl) Public() bool     { return d.IsPublic }
func (d *decl) setPublic(p bool) { d.IsPublic = p }

// SetPublic marks a declaration as pub.
func SetPublic(d Decl, public bool) { d.setPublic(public) }

// File represents a parsed compilation unit: an ordered list of top-level
// declarations plus the source filename.
type File struct {
	node
	Filename string
	Decls    []Decl
}

// NewFile constructs a file node.
func NewFile(filename string, span diag.Span) *File {
	f := &File{Filename: filename}
	f.span = span
	return f
}

// Block is an ordered statement list.
type Block struct {
	node
	Stmts []Stmt
}

// NewBlock constructs a block node.
func NewBlock(span diag.Span) *Block {
	b := &Block{}
	b.span = span
	return b
}

// Param represents a function parameter.
type Param struct {
	node
	Name    string
	Type    TypeExpr // the named type Self for self
	Mutable bool
	Default Expr // optional
}

// NewParam constructs a parameter node.
func NewParam(name string, typ TypeExpr, mutable bool, span diag.Span) *Param {
	p := &Param{Name: name, Type: typ, Mutable: mutable}
	p.span = span
	return p
}

// FnDecl represents a function declaration.
type FnDecl struct {
	decl
	Name       string
	TypeParams []string
	Params     []*Param
	ReturnType TypeExpr // nil means void
	Body       *Block
	Async      bool
}

func (*FnDecl) declNode() {}

// NewFnDecl constructs a function declaration node.
func NewFnDecl(name string, span diag.Span) *FnDecl {
	d := &FnDecl{Name: name}
	d.span = span
	return d
}

// StructField represents a field in a struct or class body.
type StructField struct {
	node
	Name    string
	Type    TypeExpr
	Public  bool
	Default Expr // optional
}

// StructDecl represents a struct declaration.
type StructDecl struct {
	decl
	Name       string
	TypeParams []string
	Fields     []*StructField
	Methods    []*FnDecl
}

func (*StructDecl) declNode() {}

// NewStructDecl constructs a struct declaration node.
func NewStructDecl(name string, span diag.Span) *StructDecl {
	d := &StructDecl{Name: name}
	d.span = span
	return d
}

// ClassDecl represents a class declaration with an optional base class.
type ClassDecl struct {
	decl
	Name       string
	Base       string // empty when absent
	TypeParams []string
	Fields     []*StructField
	Methods    []*FnDecl
}

func (*ClassDecl) declNode() {}

// NewClassDecl constructs a class declaration node.
func NewClassDecl(name string, span diag.Span) *ClassDecl {
	d := &ClassDecl{Name: name}
	d.span = span
	return d
}

// TraitDecl represents a trait declaration. Method bodies are optional
// defaults.
type TraitDecl struct {
	decl
	Name       string
	TypeParams []string
	Methods    []*FnDecl
}

func (*TraitDecl) declNode() {}

// NewTraitDecl constructs a trait declaration node.
func NewTraitDecl(name string, span diag.Span) *TraitDecl {
	d := &TraitDecl{Name: name}
	d.span = span
	return d
}

// ImplDecl represents an impl block: inherent (`impl Type:`) or a trait
// implementation (`impl Trait for Type:`).
type ImplDecl struct {
	decl
	TraitName string // empty for inherent impls
	TypeName  string
	Methods   []*FnDecl
}

func (*ImplDecl) declNode() {}

// NewImplDecl constructs an impl declaration node.
func NewImplDecl(typeName string, span diag.Span) *ImplDecl {
	d := &ImplDecl{TypeName: typeName}
	d.span = span
	return d
}

// EnumVariant represents one enum variant with optional tuple fields.
type EnumVariant struct {
	node
	Name   string
	Fields []TypeExpr
}

// EnumDecl represents an enum declaration.
type EnumDecl struct {
	decl
	Name       string
	TypeParams []string
	Variants   []*EnumVariant
}

func (*EnumDecl) declNode() {}

// NewEnumDecl constructs an enum declaration node.
func NewEnumDecl(name string, span diag.Span) *EnumDecl {
	d := &EnumDecl{Name: name}
	d.span = span
	return d
}

// TypeAliasDecl represents a type alias.
type TypeAliasDecl struct {
	decl
	Name    string
	Aliased TypeExpr
}

func (*TypeAliasDecl) declNode() {}

// NewTypeAliasDecl constructs a type alias node.
func NewTypeAliasDecl(name string, aliased TypeExpr, span diag.Span) *TypeAliasDecl {
	d := &TypeAliasDecl{Name: name, Aliased: aliased}
	d.span = span
	return d
}

// ImportDecl represents `import a.b [as x]` or `from a.b import x, y | *`.
type ImportDecl struct {
	decl
	ModulePath string
	Alias      string
	Symbols    []string
	ImportAll  bool
}

func (*ImportDecl) declNode() {}

// NewImportDecl constructs an import declaration node.
func NewImportDecl(path string, span diag.Span) *ImportDecl {
	d := &ImportDecl{ModulePath: path}
	d.span = span
	return d
}
