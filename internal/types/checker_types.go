package types

import (
	"fmt"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
)

// resolveType maps a syntactic type reference onto a semantic type.
// Unresolved names become unknown and propagate; checks against unknown are
// suppressed downstream.
func (c *Checker) resolveType(ref ast.TypeExpr) Type {
	if ref == nil {
		return TypeUnknown
	}

	switch ref := ref.(type) {
	case *ast.NamedType:
		return c.resolveNamed(ref)

	case *ast.GenericType:
		args := make([]Type, len(ref.Args))
		for i, arg := range ref.Args {
			args[i] = c.resolveType(arg)
		}
		return c.resolveGeneric(ref, args)

	case *ast.ArrayType:
		return &Array{Elem: c.resolveType(ref.Elem), Len: ref.Len}

	case *ast.TupleType:
		elems := make([]Type, len(ref.Elems))
		for i, e := range ref.Elems {
			elems[i] = c.resolveType(e)
		}
		return &Tuple{Elems: elems}

	case *ast.FuncType:
		params := make([]Type, len(ref.Params))
		for i, p := range ref.Params {
			params[i] = c.resolveType(p)
		}
		ret := Type(TypeVoid)
		if ref.Return != nil {
			ret = c.resolveType(ref.Return)
		}
		return &Function{Params: params, Return: ret}

	case *ast.RefType:
		return &Reference{Inner: c.resolveType(ref.Inner), Mutable: ref.Mutable}

	default:
		return TypeUnknown
	}
}

func (c *Checker) resolveNamed(ref *ast.NamedType) Type {
	if g := c.lookupGeneric(ref.Name); g != nil {
		return g
	}
	if ref.Name == "Self" && c.selfType != nil {
		return c.selfType
	}
	if t := c.Table.LookupType(ref.Name); t != nil {
		return t
	}
	// A symbol of kind type that is not in the type registry also names a
	// type. Generic parameters are resolved earlier, from the generics stack.
	if sym := c.Table.Lookup(ref.Name); sym != nil && sym.Kind == SymbolType {
		return sym.Type
	}
	c.errorUndefined(ref.Name, ref.Span())
	return TypeUnknown
}

// resolveGeneric handles the built-in generic forms and user-defined generic
// instantiation by parameter substitution.
func (c *Checker) resolveGeneric(ref *ast.GenericType, args []Type) Type {
	switch {
	case ref.Name == "List" && len(args) == 1:
		return &List{Elem: args[0]}
	case ref.Name == "Dict" && len(args) == 2:
		return &Dict{Key: args[0], Value: args[1]}
	case ref.Name == "Optional" && len(args) == 1:
		return &Optional{Inner: args[0]}
	case ref.Name == "Result" && len(args) == 2:
		return &Result{Ok: args[0], Err: args[1]}
	}

	base := c.Table.LookupType(ref.Name)
	if base == nil {
		c.errorUndefined(ref.Name, ref.Span())
		return TypeUnknown
	}
	return c.instantiate(base, args, ref)
}

// instantiate substitutes a user-defined type's generic parameters with the
// supplied arguments. Structs, classes and enums get a fresh copy with
// concrete member types; any other type (a generic trait included) is
// returned unchanged once the argument count matches.
func (c *Checker) instantiate(base Type, args []Type, ref *ast.GenericType) Type {
	params := typeParamsOf(base)
	if len(params) != len(args) {
		c.report(diag.CodeTypeMismatch,
			fmt.Sprintf("%s expects %d type arguments, got %d", ref.Name, len(params), len(args)),
			ref.Span())
		return TypeUnknown
	}

	subs := make(map[string]Type, len(params))
	for i, p := range params {
		subs[p] = args[i]
	}

	switch base := base.(type) {
	case *Struct:
		inst := &Struct{Name: base.Name, Fields: make([]Field, len(base.Fields))}
		for i, f := range base.Fields {
			inst.Fields[i] = Field{Name: f.Name, Type: Substitute(f.Type, subs), Public: f.Public}
		}
		return inst
	case *Class:
		inst := &Class{Name: base.Name, Base: base.Base, Fields: make([]Field, len(base.Fields))}
		for i, f := range base.Fields {
			inst.Fields[i] = Field{Name: f.Name, Type: Substitute(f.Type, subs), Public: f.Public}
		}
		return inst
	case *Enum:
		inst := &Enum{Name: base.Name, Variants: make([]Variant, len(base.Variants))}
		for i, v := range base.Variants {
			fields := make([]Type, len(v.Fields))
			for j, f := range v.Fields {
				fields[j] = Substitute(f, subs)
			}
			inst.Variants[i] = Variant{Name: v.Name, Fields: fields}
		}
		return inst
	default:
		return base
	}
}

func typeParamsOf(t Type) []string {
	switch t := t.(type) {
	case *Struct:
		return t.TypeParams
	case *Class:
		return t.TypeParams
	case *Enum:
		return t.TypeParams
	case *Trait:
		return t.TypeParams
	}
	return nil
}
