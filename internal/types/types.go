package types

import (
	"fmt"
	"strings"
)

// Type represents a semantic type, distinct from the AST's syntactic type
// references.
type Type interface {
	String() string
	// IsType is a marker method to keep the sum closed.
	IsType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Void    PrimitiveKind = "void"
	Bool    PrimitiveKind = "bool"
	I8      PrimitiveKind = "i8"
	I16     PrimitiveKind = "i16"
	I32     PrimitiveKind = "i32"
	I64     PrimitiveKind = "i64"
	U8      PrimitiveKind = "u8"
	U16     PrimitiveKind = "u16"
	U32     PrimitiveKind = "u32"
	U64     PrimitiveKind = "u64"
	F32     PrimitiveKind = "f32"
	F64     PrimitiveKind = "f64"
	Char    PrimitiveKind = "char"
	Str     PrimitiveKind = "str"
	Never   PrimitiveKind = "never"
	Unknown PrimitiveKind = "unknown"
)

// Primitive represents a primitive type. Primitives are canonical singletons;
// two references to the same primitive are equal by identity.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Canonical primitive instances. Never construct Primitive elsewhere.
var (
	TypeVoid    = &Primitive{Kind: Void}
	TypeBool    = &Primitive{Kind: Bool}
	TypeI8      = &Primitive{Kind: I8}
	TypeI16     = &Primitive{Kind: I16}
	TypeI32     = &Primitive{Kind: I32}
	TypeI64     = &Primitive{Kind: I64}
	TypeU8      = &Primitive{Kind: U8}
	TypeU16     = &Primitive{Kind: U16}
	TypeU32     = &Primitive{Kind: U32}
	TypeU64     = &Primitive{Kind: U64}
	TypeF32     = &Primitive{Kind: F32}
	TypeF64     = &Primitive{Kind: F64}
	TypeChar    = &Primitive{Kind: Char}
	TypeStr     = &Primitive{Kind: Str}
	TypeNever   = &Primitive{Kind: Never}
	TypeUnknown = &Primitive{Kind: Unknown}
)

// Array represents [T] or [T; N].
type Array struct {
	Elem Type
	Len  *int64 // nil for dynamic
}

func (a *Array) String() string {
	if a.Len != nil {
		return fmt.Sprintf("[%s; %d]", a.Elem, *a.Len)
	}
	return "[" + a.Elem.String() + "]"
}
func (a *Array) IsType() {}

// List represents List[T].
type List struct {
	Elem Type
}

func (l *List) String() string { return "List[" + l.Elem.String() + "]" }
func (l *List) IsType()        {}

// Dict represents Dict[K, V].
type Dict struct {
	Key   Type
	Value Type
}

func (d *Dict) String() string { return "Dict[" + d.Key.String() + ", " + d.Value.String() + "]" }
func (d *Dict) IsType()        {}

// Tuple represents (T1, T2, ...).
type Tuple struct {
	Elems []Type
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) IsType() {}

// Function represents fn(params) -> return.
type Function struct {
	Params []Type
	Return Type
	Async  bool
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	prefix := "fn"
	if f.Async {
		prefix = "async fn"
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") -> " + ret
}
func (f *Function) IsType() {}

// Reference represents &T and &mut T.
type Reference struct {
	Inner   Type
	Mutable bool
}

func (r *Reference) String() string {
	if r.Mutable {
		return "&mut " + r.Inner.String()
	}
	return "&" + r.Inner.String()
}
func (r *Reference) IsType() {}

// Optional represents T?.
type Optional struct {
	Inner Type
}

func (o *Optional) String() string { return o.Inner.String() + "?" }
func (o *Optional) IsType()        {}

// Result represents Result[T, E].
type Result struct {
	Ok  Type
	Err Type
}

func (r *Result) String() string { return "Result[" + r.Ok.String() + ", " + r.Err.String() + "]" }
func (r *Result) IsType()        {}

// Field is one named field of a struct or class.
type Field struct {
	Name   string
	Type   Type
	Public bool
}

// Struct is a user-defined struct type, equal to others by name.
type Struct struct {
	Name       string
	TypeParams []string
	Fields     []Field
}

func (s *Struct) String() string { return s.Name }
func (s *Struct) IsType()        {}

// FieldType returns the named field's type, or nil.
func (s *Struct) FieldType(name string) Type {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// Class is a user-defined class type with an optional base class name.
type Class struct {
	Name       string
	Base       string
	TypeParams []string
	Fields     []Field
}

func (c *Class) String() string { return c.Name }
func (c *Class) IsType()        {}

// FieldType returns the named field's type, or nil.
func (c *Class) FieldType(name string) Type {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// Variant is one enum variant with optional tuple payload types.
type Variant struct {
	Name   string
	Fields []Type
}

// Enum is a user-defined enum type.
type Enum struct {
	Name       string
	TypeParams []string
	Variants   []Variant
}

func (e *Enum) String() string { return e.Name }
func (e *Enum) IsType()        {}

// HasVariant reports whether the enum declares the named variant.
func (e *Enum) HasVariant(name string) bool {
	for _, v := range e.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

// TraitMethod is one required or defaulted method of a trait.
type TraitMethod struct {
	Name string
	Type *Function
}

// Trait is a user-defined trait type.
type Trait struct {
	Name       string
	TypeParams []string
	Methods    []TraitMethod
}

func (t *Trait) String() string { return t.Name }
func (t *Trait) IsType()        {}

// Generic is an unresolved generic parameter, named by its declaration.
type Generic struct {
	Name        string
	Constraints []Type
}

func (g *Generic) String() string { return g.Name }
func (g *Generic) IsType()        {}

// TypeVar is an inference variable, resolved by unification when possible.
type TypeVar struct {
	ID       int
	Resolved Type // nil until resolved
}

func (v *TypeVar) String() string {
	if v.Resolved != nil {
		return v.Resolved.String()
	}
	return fmt.Sprintf("T%d", v.ID)
}
func (v *TypeVar) IsType() {}

// IsNumeric reports whether t is an integer or floating-point primitive.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// IsInteger reports whether t is an integer primitive of any width.
func IsInteger(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.Kind {
	case I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	}
	return false
}

// IsFloat reports whether t is f32 or f64.
func IsFloat(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	return p.Kind == F32 || p.Kind == F64
}

// IsBool reports whether t is the bool primitive.
func IsBool(t Type) bool {
	return t == TypeBool
}

// IsUnknown reports whether t is the unknown (error) type. Checks against
// unknown are suppressed to avoid diagnostic cascades.
func IsUnknown(t Type) bool {
	return t == nil || t == TypeUnknown
}

func intWidth(k PrimitiveKind) int {
	switch k {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	}
	return 0
}

func isSignedKind(k PrimitiveKind) bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

// Equals compares two types: primitives by kind, user-defined types by name,
// everything else by recursive structure.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Kind == b.Kind
	case *Array:
		other, ok := b.(*Array)
		if !ok || !Equals(a.Elem, other.Elem) {
			return false
		}
		if (a.Len == nil) != (other.Len == nil) {
			return false
		}
		return a.Len == nil || *a.Len == *other.Len
	case *List:
		other, ok := b.(*List)
		return ok && Equals(a.Elem, other.Elem)
	case *Dict:
		other, ok := b.(*Dict)
		return ok && Equals(a.Key, other.Key) && Equals(a.Value, other.Value)
	case *Tuple:
		other, ok := b.(*Tuple)
		if !ok || len(a.Elems) != len(other.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equals(a.Elems[i], other.Elems[i]) {
				return false
			}
		}
		return true
	case *Function:
		other, ok := b.(*Function)
		if !ok || len(a.Params) != len(other.Params) || a.Async != other.Async {
			return false
		}
		for i := range a.Params {
			if !Equals(a.Params[i], other.Params[i]) {
				return false
			}
		}
		return Equals(a.Return, other.Return)
	case *Reference:
		other, ok := b.(*Reference)
		return ok && a.Mutable == other.Mutable && Equals(a.Inner, other.Inner)
	case *Optional:
		other, ok := b.(*Optional)
		return ok && Equals(a.Inner, other.Inner)
	case *Result:
		other, ok := b.(*Result)
		return ok && Equals(a.Ok, other.Ok) && Equals(a.Err, other.Err)
	case *Struct:
		other, ok := b.(*Struct)
		return ok && a.Name == other.Name
	case *Class:
		other, ok := b.(*Class)
		return ok && a.Name == other.Name
	case *Enum:
		other, ok := b.(*Enum)
		return ok && a.Name == other.Name
	case *Trait:
		other, ok := b.(*Trait)
		return ok && a.Name == other.Name
	case *Generic:
		other, ok := b.(*Generic)
		return ok && a.Name == other.Name
	case *TypeVar:
		other, ok := b.(*TypeVar)
		if !ok {
			return false
		}
		if a.Resolved != nil && other.Resolved != nil {
			return Equals(a.Resolved, other.Resolved)
		}
		return a.ID == other.ID
	}
	return false
}

// Assignable reports whether a value of type from can be assigned to a
// location of type to. Integer widening requires matching signedness; mixing
// signed and unsigned is rejected.
func Assignable(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}
	if Equals(from, to) {
		return true
	}
	if from == TypeNever {
		return true
	}

	if IsInteger(from) && IsInteger(to) {
		fk := from.(*Primitive).Kind
		tk := to.(*Primitive).Kind
		return isSignedKind(fk) == isSignedKind(tk) && intWidth(fk) <= intWidth(tk)
	}
	if IsInteger(from) && IsFloat(to) {
		return true
	}

	if opt, ok := to.(*Optional); ok {
		return Assignable(from, opt.Inner)
	}

	if ref, ok := to.(*Reference); ok {
		if ref.Mutable {
			return Equals(from, ref.Inner)
		}
		return Assignable(from, ref.Inner)
	}

	return false
}

// CommonType returns the minimum supertype of two types under numeric
// widening; unknown when the types have no common type.
func CommonType(a, b Type) Type {
	if a == nil || b == nil {
		return TypeUnknown
	}
	if Equals(a, b) {
		return a
	}
	if IsFloat(a) || IsFloat(b) {
		if a == TypeF64 || b == TypeF64 {
			return TypeF64
		}
		return TypeF32
	}
	if IsInteger(a) && IsInteger(b) {
		return TypeI64
	}
	return TypeUnknown
}

// Substitute rewrites type by replacing named generic parameters according to
// subs, descending into composite types.
func Substitute(t Type, subs map[string]Type) Type {
	if t == nil || len(subs) == 0 {
		return t
	}
	switch t := t.(type) {
	case *Generic:
		if repl, ok := subs[t.Name]; ok {
			return repl
		}
		return t
	case *Array:
		return &Array{Elem: Substitute(t.Elem, subs), Len: t.Len}
	case *List:
		return &List{Elem: Substitute(t.Elem, subs)}
	case *Dict:
		return &Dict{Key: Substitute(t.Key, subs), Value: Substitute(t.Value, subs)}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Substitute(e, subs)
		}
		return &Tuple{Elems: elems}
	case *Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Substitute(p, subs)
		}
		return &Function{Params: params, Return: Substitute(t.Return, subs), Async: t.Async}
	case *Reference:
		return &Reference{Inner: Substitute(t.Inner, subs), Mutable: t.Mutable}
	case *Optional:
		return &Optional{Inner: Substitute(t.Inner, subs)}
	case *Result:
		return &Result{Ok: Substitute(t.Ok, subs), Err: Substitute(t.Err, subs)}
	}
	return t
}
