package types

import (
	"fmt"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
)

func (c *Checker) checkDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FnDecl:
		c.checkFunction(d)
	case *ast.StructDecl:
		c.checkStruct(d)
	case *ast.ClassDecl:
		c.checkClass(d)
	case *ast.TraitDecl:
		c.checkTrait(d)
	case *ast.ImplDecl:
		c.checkImpl(d)
	case *ast.EnumDecl:
		c.checkEnum(d)
	case *ast.TypeAliasDecl:
		c.checkTypeAlias(d)
	case *ast.ImportDecl:
		// Imports are recorded in the tree; resolution is a later stage.
	}
}

// checkFunction resolves the signature, binds the function's name in the
// current scope, then checks the body in a fresh function scope. The
// function's semantic type is complete before its body is examined.
func (c *Checker) checkFunction(fn *ast.FnDecl) {
	if len(fn.TypeParams) > 0 {
		c.pushGenerics(fn.TypeParams)
		defer c.popGenerics()
	}

	paramTypes := make([]Type, len(fn.Params))
	for i, param := range fn.Params {
		paramTypes[i] = c.resolveType(param.Type)
	}

	returnType := Type(TypeVoid)
	if fn.ReturnType != nil {
		returnType = c.resolveType(fn.ReturnType)
	}

	fnType := &Function{Params: paramTypes, Return: returnType, Async: fn.Async}
	sym := &Symbol{
		Name:        fn.Name,
		Kind:        SymbolFunction,
		Type:        fnType,
		Public:      fn.Public(),
		Initialized: true,
		Def:         fn.Span(),
		TypeParams:  fn.TypeParams,
	}
	if !c.Table.Define(sym) {
		c.errorRedefinition(fn.Name, fn.Span())
	}

	scope := c.Table.EnterScope(ScopeFunction)
	scope.ExpectedReturn = returnType

	for i, param := range fn.Params {
		c.Table.Define(&Symbol{
			Name:        param.Name,
			Kind:        SymbolParameter,
			Type:        paramTypes[i],
			Mutable:     param.Mutable,
			Initialized: true,
			Def:         param.Span(),
		})
		if param.Default != nil {
			defaultType := c.inferType(param.Default)
			if !IsUnknown(defaultType) && !IsUnknown(paramTypes[i]) && !Assignable(defaultType, paramTypes[i]) {
				c.errorTypeMismatch(paramTypes[i], defaultType, param.Default.Span())
			}
		}
	}

	if fn.Body != nil {
		c.checkBlock(fn.Body)

		if returnType != TypeVoid && !IsUnknown(returnType) && !scope.SawReturn {
			c.report(diag.CodeTypeMissingReturn,
				fmt.Sprintf("function '%s' must return a value", fn.Name), fn.Span())
		}
	}

	c.Table.ExitScope()
}

func (c *Checker) checkStruct(st *ast.StructDecl) {
	typ, _ := c.Table.LookupType(st.Name).(*Struct)
	if typ == nil {
		return
	}
	typ.TypeParams = st.TypeParams

	if len(st.TypeParams) > 0 {
		c.pushGenerics(st.TypeParams)
		defer c.popGenerics()
	}

	for _, field := range st.Fields {
		fieldType := c.resolveType(field.Type)
		typ.Fields = append(typ.Fields, Field{Name: field.Name, Type: fieldType, Public: field.Public})
		if field.Default != nil {
			defaultType := c.inferType(field.Default)
			if !IsUnknown(defaultType) && !IsUnknown(fieldType) && !Assignable(defaultType, fieldType) {
				c.errorTypeMismatch(fieldType, defaultType, field.Default.Span())
			}
		}
	}

	c.Table.EnterScope(ScopeStruct)
	prevSelf := c.selfType
	c.selfType = typ
	for _, method := range st.Methods {
		c.checkFunction(method)
	}
	c.selfType = prevSelf
	c.Table.ExitScope()
}

func (c *Checker) checkClass(cls *ast.ClassDecl) {
	typ, _ := c.Table.LookupType(cls.Name).(*Class)
	if typ == nil {
		return
	}
	typ.Base = cls.Base
	typ.TypeParams = cls.TypeParams

	if cls.Base != "" {
		if _, ok := c.Table.LookupType(cls.Base).(*Class); !ok {
			c.errorUndefined(cls.Base, cls.Span())
		}
	}

	if len(cls.TypeParams) > 0 {
		c.pushGenerics(cls.TypeParams)
		defer c.popGenerics()
	}

	for _, field := range cls.Fields {
		fieldType := c.resolveType(field.Type)
		typ.Fields = append(typ.Fields, Field{Name: field.Name, Type: fieldType, Public: field.Public})
		if field.Default != nil {
			defaultType := c.inferType(field.Default)
			if !IsUnknown(defaultType) && !IsUnknown(fieldType) && !Assignable(defaultType, fieldType) {
				c.errorTypeMismatch(fieldType, defaultType, field.Default.Span())
			}
		}
	}

	c.Table.EnterScope(ScopeClass)
	prevSelf := c.selfType
	c.selfType = typ
	for _, method := range cls.Methods {
		c.checkFunction(method)
	}
	c.selfType = prevSelf
	c.Table.ExitScope()
}

func (c *Checker) checkTrait(trait *ast.TraitDecl) {
	typ, _ := c.Table.LookupType(trait.Name).(*Trait)
	if typ == nil {
		return
	}
	typ.TypeParams = trait.TypeParams

	if len(trait.TypeParams) > 0 {
		c.pushGenerics(trait.TypeParams)
		defer c.popGenerics()
	}

	c.Table.EnterScope(ScopeTrait)
	prevSelf := c.selfType
	c.selfType = typ
	for _, method := range trait.Methods {
		params := make([]Type, len(method.Params))
		for i, p := range method.Params {
			params[i] = c.resolveType(p.Type)
		}
		ret := Type(TypeVoid)
		if method.ReturnType != nil {
			ret = c.resolveType(method.ReturnType)
		}
		typ.Methods = append(typ.Methods, TraitMethod{
			Name: method.Name,
			Type: &Function{Params: params, Return: ret, Async: method.Async},
		})

		// Default bodies are checked like ordinary methods.
		if method.Body != nil {
			c.checkFunction(method)
		}
	}
	c.selfType = prevSelf
	c.Table.ExitScope()
}

func (c *Checker) checkImpl(impl *ast.ImplDecl) {
	target := c.Table.LookupType(impl.TypeName)
	if target == nil {
		c.errorUndefined(impl.TypeName, impl.Span())
	}

	if impl.TraitName != "" {
		if _, ok := c.Table.LookupType(impl.TraitName).(*Trait); !ok {
			c.errorUndefined(impl.TraitName, impl.Span())
		}
		c.Table.RecordImpl(impl.TypeName, impl.TraitName)
	}

	c.Table.EnterScope(ScopeImpl)
	prevSelf := c.selfType
	c.selfType = target
	for _, method := range impl.Methods {
		c.checkFunction(method)
	}
	c.selfType = prevSelf
	c.Table.ExitScope()
}

// checkEnum fills the enum's variants and registers one constructor symbol
// per variant, named EnumType::Variant.
func (c *Checker) checkEnum(en *ast.EnumDecl) {
	typ, _ := c.Table.LookupType(en.Name).(*Enum)
	if typ == nil {
		return
	}
	typ.TypeParams = en.TypeParams

	if len(en.TypeParams) > 0 {
		c.pushGenerics(en.TypeParams)
		defer c.popGenerics()
	}

	for _, variant := range en.Variants {
		fields := make([]Type, len(variant.Fields))
		for i, f := range variant.Fields {
			fields[i] = c.resolveType(f)
		}
		typ.Variants = append(typ.Variants, Variant{Name: variant.Name, Fields: fields})

		ctor := &Symbol{
			Name:        en.Name + "::" + variant.Name,
			Kind:        SymbolEnumVariant,
			Type:        &Function{Params: fields, Return: typ},
			Initialized: true,
			Def:         variant.Span(),
		}
		if !c.Table.Define(ctor) {
			c.errorRedefinition(ctor.Name, variant.Span())
		}
	}
}

func (c *Checker) checkTypeAlias(alias *ast.TypeAliasDecl) {
	c.Table.RegisterType(alias.Name, c.resolveType(alias.Aliased))
}
