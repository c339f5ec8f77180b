package ast

import "github.com/aljojoby9/Axiom/internal/diag"

// NamedType is a simple type name like i32 or Point.
type NamedType struct {
	node
	Name string
}

func (*NamedType) typeNode() {}

// NewNamedType constructs a named type reference.
func NewNamedType(name string, span diag.Span) *NamedType {
	t := &NamedType{Name: name}
	t.span = span
	return t
}

// GenericType is a generic application like List[i32] or Dict[str, i64].
type GenericType struct {
	node
	Name string
	Args []TypeExpr
}

func (*GenericType) typeNode() {}

// NewGenericType constructs a generic type reference.
func NewGenericType(name string, args []TypeExpr, span diag.Span) *GenericType {
	t := &GenericType{Name: name, Args: args}
	t.span = span
	return t
}

// ArrayType is [T] (dynamic) or [T; N] (fixed length).
type ArrayType struct {
	node
	Elem TypeExpr
	Len  *int64 // nil for dynamic
}

func (*ArrayType) typeNode() {}

// NewArrayType constructs an array type reference.
func NewArrayType(elem TypeExpr, length *int64, span diag.Span) *ArrayType {
	t := &ArrayType{Elem: elem, Len: length}
	t.span = span
	return t
}

// TupleType is (T1, T2, ...).
type TupleType struct {
	node
	Elems []TypeExpr
}

func (*TupleType) typeNode() {}

// NewTupleType constructs a tuple type reference.
func NewTupleType(elems []TypeExpr, span diag.Span) *TupleType {
	t := &TupleType{Elems: elems}
	t.span = span
	return t
}

// FuncType is fn(T1, ...) -> R.
type FuncType struct {
	node
	Params []TypeExpr
	Return TypeExpr // nil means void
}

func (*FuncType) typeNode() {}

// NewFuncType constructs a function type reference.
func NewFuncType(params []TypeExpr, ret TypeExpr, span diag.Span) *FuncType {
	t := &FuncType{Params: params, Return: ret}
	t.span = span
	return t
}

// RefType is &T or &mut T.
type RefType struct {
	node
	Inner   TypeExpr
	Mutable bool
}

func (*RefType) typeNode() {}

// NewRefType constructs a reference type reference.
func NewRefType(inner TypeExpr, mutable bool, span diag.Span) *RefType {
	t := &RefType{Inner: inner, Mutable: mutable}
	t.span = span
	return t
}
