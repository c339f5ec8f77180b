package types

import (
	"fmt"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
)

// inferType computes an expression's type bottom-up, reporting diagnostics
// along the way. Unresolved expressions yield unknown; checks against
// unknown operands are suppressed so one failure does not cascade.
func (c *Checker) inferType(expr ast.Expr) Type {
	if expr == nil {
		return TypeUnknown
	}

	switch e := expr.(type) {
	case *ast.IntLit:
		return TypeI64
	case *ast.FloatLit:
		return TypeF64
	case *ast.StringLit:
		return TypeStr
	case *ast.BoolLit:
		return TypeBool
	case *ast.NoneLit:
		return &Optional{Inner: c.freshTypeVar()}
	case *ast.Ident:
		return c.inferIdent(e)
	case *ast.BinaryExpr:
		return c.inferBinary(e)
	case *ast.UnaryExpr:
		return c.inferUnary(e)
	case *ast.CallExpr:
		return c.inferCall(e)
	case *ast.IndexExpr:
		return c.inferIndex(e)
	case *ast.SliceExpr:
		return c.inferSlice(e)
	case *ast.MemberExpr:
		return c.inferMember(e)
	case *ast.LambdaExpr:
		return c.inferLambda(e)
	case *ast.TernaryExpr:
		return c.inferTernary(e)
	case *ast.ListExpr:
		return c.inferList(e)
	case *ast.DictExpr:
		return c.inferDict(e)
	case *ast.TupleExpr:
		return c.inferTuple(e)
	case *ast.ListCompExpr:
		return c.inferListComp(e)
	case *ast.AssignExpr:
		return c.inferAssign(e)
	case *ast.RangeExpr:
		return c.inferRange(e)
	case *ast.AwaitExpr:
		// Future unwrapping is deferred; await passes its operand through.
		return c.inferType(e.Operand)
	}

	return TypeUnknown
}

func (c *Checker) inferIdent(id *ast.Ident) Type {
	sym := c.Table.Lookup(id.Name)
	if sym == nil {
		c.errorUndefined(id.Name, id.Span())
		return TypeUnknown
	}
	if sym.Kind == SymbolVariable && !sym.Initialized {
		c.report(diag.CodeResolveUninitialized,
			fmt.Sprintf("use of uninitialized variable '%s'", id.Name), id.Span())
	}
	if sym.Type == nil {
		return TypeUnknown
	}
	return sym.Type
}

func (c *Checker) inferBinary(bin *ast.BinaryExpr) Type {
	left := c.inferType(bin.Left)
	right := c.inferType(bin.Right)

	switch bin.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		if !IsUnknown(left) && !IsNumeric(left) {
			c.report(diag.CodeTypeBadOperand, "left operand must be numeric", bin.Left.Span())
		}
		if !IsUnknown(right) && !IsNumeric(right) {
			c.report(diag.CodeTypeBadOperand, "right operand must be numeric", bin.Right.Span())
		}
		return CommonType(left, right)

	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return TypeBool

	case ast.OpAnd, ast.OpOr:
		if !IsUnknown(left) && !IsBool(left) {
			c.report(diag.CodeTypeBadOperand, "left operand must be bool", bin.Left.Span())
		}
		if !IsUnknown(right) && !IsBool(right) {
			c.report(diag.CodeTypeBadOperand, "right operand must be bool", bin.Right.Span())
		}
		return TypeBool

	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		if !IsUnknown(left) && !IsInteger(left) {
			c.report(diag.CodeTypeBadOperand, "left operand must be integer", bin.Left.Span())
		}
		if !IsUnknown(right) && !IsInteger(right) {
			c.report(diag.CodeTypeBadOperand, "right operand must be integer", bin.Right.Span())
		}
		return left

	case ast.OpMatMul:
		return left
	}

	return TypeUnknown
}

func (c *Checker) inferUnary(un *ast.UnaryExpr) Type {
	operand := c.inferType(un.Operand)

	switch un.Op {
	case ast.OpNeg:
		if !IsUnknown(operand) && !IsNumeric(operand) {
			c.report(diag.CodeTypeBadOperand, "operand must be numeric", un.Operand.Span())
		}
		return operand
	case ast.OpNot:
		if !IsUnknown(operand) && !IsBool(operand) {
			c.report(diag.CodeTypeBadOperand, "operand must be bool", un.Operand.Span())
		}
		return TypeBool
	case ast.OpBitNot:
		if !IsUnknown(operand) && !IsInteger(operand) {
			c.report(diag.CodeTypeBadOperand, "operand must be integer", un.Operand.Span())
		}
		return operand
	}

	return TypeUnknown
}

func (c *Checker) inferCall(call *ast.CallExpr) Type {
	calleeType := c.inferType(call.Callee)
	if IsUnknown(calleeType) {
		for _, arg := range call.Args {
			c.inferType(arg)
		}
		return TypeUnknown
	}

	fn, ok := calleeType.(*Function)
	if !ok {
		c.report(diag.CodeTypeNotCallable, "cannot call non-function type "+calleeType.String(), call.Callee.Span())
		return TypeUnknown
	}

	if len(call.Args) != len(fn.Params) {
		c.report(diag.CodeTypeArgCount,
			fmt.Sprintf("expected %d arguments, got %d", len(fn.Params), len(call.Args)), call.Span())
	}

	n := len(call.Args)
	if len(fn.Params) < n {
		n = len(fn.Params)
	}
	for i := 0; i < n; i++ {
		argType := c.inferType(call.Args[i])
		if !IsUnknown(argType) && !IsUnknown(fn.Params[i]) && !Assignable(argType, fn.Params[i]) {
			c.errorTypeMismatch(fn.Params[i], argType, call.Args[i].Span())
		}
	}
	for i := n; i < len(call.Args); i++ {
		c.inferType(call.Args[i])
	}

	if fn.Return == nil {
		return TypeVoid
	}
	return fn.Return
}

func (c *Checker) inferIndex(index *ast.IndexExpr) Type {
	objType := c.inferType(index.Object)
	c.inferType(index.Index)

	switch t := objType.(type) {
	case *Array:
		return t.Elem
	case *List:
		return t.Elem
	case *Dict:
		return t.Value
	case *Tuple:
		// Best effort without constant folding: the first element type.
		if len(t.Elems) > 0 {
			return t.Elems[0]
		}
		return TypeUnknown
	}
	if objType == TypeStr {
		return TypeChar
	}
	if IsUnknown(objType) {
		return TypeUnknown
	}

	c.report(diag.CodeTypeNotIndexable, "cannot index type "+objType.String(), index.Object.Span())
	return TypeUnknown
}

// inferSlice types a slice as the sliced sequence itself; bounds and step
// must be integers.
func (c *Checker) inferSlice(slice *ast.SliceExpr) Type {
	objType := c.inferType(slice.Object)

	for _, bound := range []ast.Expr{slice.Start, slice.End, slice.Step} {
		if bound == nil {
			continue
		}
		boundType := c.inferType(bound)
		if !IsUnknown(boundType) && !IsInteger(boundType) {
			c.report(diag.CodeTypeBadOperand, "slice bound must be integer", bound.Span())
		}
	}

	switch objType.(type) {
	case *Array, *List:
		return objType
	}
	if objType == TypeStr || IsUnknown(objType) {
		return objType
	}

	c.report(diag.CodeTypeNotIndexable, "cannot slice type "+objType.String(), slice.Object.Span())
	return TypeUnknown
}

func (c *Checker) inferMember(member *ast.MemberExpr) Type {
	objType := c.inferType(member.Object)
	if IsUnknown(objType) {
		return TypeUnknown
	}

	switch t := objType.(type) {
	case *Struct:
		if fieldType := t.FieldType(member.Member); fieldType != nil {
			return fieldType
		}
		c.report(diag.CodeTypeBadMember,
			fmt.Sprintf("struct '%s' has no field '%s'", t.Name, member.Member), member.Span())
		return TypeUnknown
	case *Class:
		// Fields of base classes are visible through derived classes.
		for cls := t; cls != nil; {
			if fieldType := cls.FieldType(member.Member); fieldType != nil {
				return fieldType
			}
			if cls.Base == "" {
				break
			}
			cls, _ = c.Table.LookupType(cls.Base).(*Class)
		}
		c.report(diag.CodeTypeBadMember,
			fmt.Sprintf("class '%s' has no field '%s'", t.Name, member.Member), member.Span())
		return TypeUnknown
	}

	c.report(diag.CodeTypeBadMember, "cannot access member on type "+objType.String(), member.Object.Span())
	return TypeUnknown
}

// inferLambda opens a function scope, binds parameters (fresh inference
// variables when unannotated), and builds the function type from the body.
func (c *Checker) inferLambda(lambda *ast.LambdaExpr) Type {
	paramTypes := make([]Type, len(lambda.Params))

	c.Table.EnterScope(ScopeFunction)
	for i, param := range lambda.Params {
		var paramType Type
		if param.Type != nil {
			paramType = c.resolveType(param.Type)
		} else {
			paramType = c.freshTypeVar()
		}
		paramTypes[i] = paramType
		c.Table.Define(&Symbol{
			Name:        param.Name,
			Kind:        SymbolParameter,
			Type:        paramType,
			Initialized: true,
		})
	}
	bodyType := c.inferType(lambda.Body)
	c.Table.ExitScope()

	returnType := bodyType
	if lambda.ReturnType != nil {
		returnType = c.resolveType(lambda.ReturnType)
	}

	return &Function{Params: paramTypes, Return: returnType}
}

func (c *Checker) inferTernary(ternary *ast.TernaryExpr) Type {
	c.requireBool(ternary.Cond, "condition")
	thenType := c.inferType(ternary.Then)
	elseType := c.inferType(ternary.Else)
	return CommonType(thenType, elseType)
}

func (c *Checker) inferList(list *ast.ListExpr) Type {
	if len(list.Elems) == 0 {
		return &List{Elem: c.freshTypeVar()}
	}
	elemType := c.inferType(list.Elems[0])
	for _, elem := range list.Elems[1:] {
		elemType = CommonType(elemType, c.inferType(elem))
	}
	return &List{Elem: elemType}
}

func (c *Checker) inferDict(dict *ast.DictExpr) Type {
	if len(dict.Entries) == 0 {
		return &Dict{Key: c.freshTypeVar(), Value: c.freshTypeVar()}
	}
	keyType := c.inferType(dict.Entries[0].Key)
	valueType := c.inferType(dict.Entries[0].Value)
	for _, entry := range dict.Entries[1:] {
		keyType = CommonType(keyType, c.inferType(entry.Key))
		valueType = CommonType(valueType, c.inferType(entry.Value))
	}
	return &Dict{Key: keyType, Value: valueType}
}

func (c *Checker) inferTuple(tuple *ast.TupleExpr) Type {
	elems := make([]Type, len(tuple.Elems))
	for i, elem := range tuple.Elems {
		elems[i] = c.inferType(elem)
	}
	return &Tuple{Elems: elems}
}

// inferListComp evaluates the iterable, binds the loop variable in a fresh
// block scope, checks the optional guard, and yields a list of the body type.
func (c *Checker) inferListComp(comp *ast.ListCompExpr) Type {
	iterType := c.inferType(comp.Iterable)

	c.Table.EnterScope(ScopeBlock)
	c.Table.Define(&Symbol{
		Name:        comp.Var,
		Kind:        SymbolVariable,
		Type:        elementType(iterType),
		Initialized: true,
	})

	resultElem := c.inferType(comp.Elem)
	if comp.Cond != nil {
		c.requireBool(comp.Cond, "comprehension condition")
	}
	c.Table.ExitScope()

	return &List{Elem: resultElem}
}

// inferAssign requires an identifier target to be a mutable binding. The
// first assignment to an uninitialized binding initializes it regardless of
// mutability. Member and index targets are only type-checked; the mutability
// of the binding they reach is not checked.
func (c *Checker) inferAssign(assign *ast.AssignExpr) Type {
	var targetType Type

	if id, ok := assign.Target.(*ast.Ident); ok {
		sym := c.Table.Lookup(id.Name)
		if sym == nil {
			c.errorUndefined(id.Name, id.Span())
			targetType = TypeUnknown
		} else {
			if sym.Initialized && !sym.Mutable {
				c.report(diag.CodeTypeImmutableAssign,
					fmt.Sprintf("cannot assign to immutable variable '%s'", id.Name), assign.Span())
			}
			sym.Initialized = true
			targetType = sym.Type
			if targetType == nil {
				targetType = TypeUnknown
			}
		}
	} else {
		targetType = c.inferType(assign.Target)
	}

	valueType := c.inferType(assign.Value)
	if !IsUnknown(valueType) && !IsUnknown(targetType) && !Assignable(valueType, targetType) {
		c.errorTypeMismatch(targetType, valueType, assign.Span())
	}

	return targetType
}

func (c *Checker) inferRange(r *ast.RangeExpr) Type {
	startType := c.inferType(r.Start)
	endType := c.inferType(r.End)

	if !IsUnknown(startType) && !IsInteger(startType) {
		c.report(diag.CodeTypeBadOperand, "range start must be integer", r.Start.Span())
	}
	if !IsUnknown(endType) && !IsInteger(endType) {
		c.report(diag.CodeTypeBadOperand, "range end must be integer", r.End.Span())
	}

	// A list of integers stands in for a dedicated iterator type.
	return &List{Elem: TypeI64}
}
