package ast

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each non-nil node. If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *File:
		for _, d := range n.Decls {
			Inspect(d, f)
		}
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}

	case *FnDecl:
		for _, p := range n.Params {
			Inspect(p, f)
		}
		inspectType(n.ReturnType, f)
		inspectBlock(n.Body, f)
	case *Param:
		inspectType(n.Type, f)
		inspectExpr(n.Default, f)
	case *StructDecl:
		for _, fld := range n.Fields {
			Inspect(fld, f)
		}
		for _, m := range n.Methods {
			Inspect(m, f)
		}
	case *ClassDecl:
		for _, fld := range n.Fields {
			Inspect(fld, f)
		}
		for _, m := range n.Methods {
			Inspect(m, f)
		}
	case *StructField:
		inspectType(n.Type, f)
		inspectExpr(n.Default, f)
	case *TraitDecl:
		for _, m := range n.Methods {
			Inspect(m, f)
		}
	case *ImplDecl:
		for _, m := range n.Methods {
			Inspect(m, f)
		}
	case *EnumDecl:
		for _, v := range n.Variants {
			Inspect(v, f)
		}
	case *EnumVariant:
		for _, t := range n.Fields {
			inspectType(t, f)
		}
	case *TypeAliasDecl:
		inspectType(n.Aliased, f)
	case *ImportDecl:

	case *ExprStmt:
		inspectExpr(n.Expr, f)
	case *VarDeclStmt:
		inspectType(n.Type, f)
		inspectExpr(n.Init, f)
	case *IfStmt:
		inspectExpr(n.Cond, f)
		inspectBlock(n.Then, f)
		for _, e := range n.Elifs {
			inspectExpr(e.Cond, f)
			inspectBlock(e.Body, f)
		}
		inspectBlock(n.Else, f)
	case *WhileStmt:
		inspectExpr(n.Cond, f)
		inspectBlock(n.Body, f)
	case *ForStmt:
		inspectExpr(n.Iterable, f)
		inspectBlock(n.Body, f)
	case *MatchStmt:
		inspectExpr(n.Scrutinee, f)
		for _, a := range n.Arms {
			inspectExpr(a.Pattern, f)
			inspectExpr(a.Guard, f)
			inspectBlock(a.Body, f)
		}
	case *ReturnStmt:
		inspectExpr(n.Value, f)
	case *BreakStmt, *ContinueStmt:
	case *YieldStmt:
		inspectExpr(n.Value, f)

	case *BinaryExpr:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *UnaryExpr:
		inspectExpr(n.Operand, f)
	case *CallExpr:
		inspectExpr(n.Callee, f)
		for _, a := range n.Args {
			inspectExpr(a, f)
		}
	case *IndexExpr:
		inspectExpr(n.Object, f)
		inspectExpr(n.Index, f)
	case *SliceExpr:
		inspectExpr(n.Object, f)
		inspectExpr(n.Start, f)
		inspectExpr(n.End, f)
		inspectExpr(n.Step, f)
	case *MemberExpr:
		inspectExpr(n.Object, f)
	case *LambdaExpr:
		for _, p := range n.Params {
			inspectType(p.Type, f)
		}
		inspectType(n.ReturnType, f)
		inspectExpr(n.Body, f)
	case *TernaryExpr:
		inspectExpr(n.Cond, f)
		inspectExpr(n.Then, f)
		inspectExpr(n.Else, f)
	case *ListExpr:
		for _, e := range n.Elems {
			inspectExpr(e, f)
		}
	case *DictExpr:
		for _, entry := range n.Entries {
			inspectExpr(entry.Key, f)
			inspectExpr(entry.Value, f)
		}
	case *TupleExpr:
		for _, e := range n.Elems {
			inspectExpr(e, f)
		}
	case *ListCompExpr:
		inspectExpr(n.Elem, f)
		inspectExpr(n.Iterable, f)
		inspectExpr(n.Cond, f)
	case *AwaitExpr:
		inspectExpr(n.Operand, f)
	case *RangeExpr:
		inspectExpr(n.Start, f)
		inspectExpr(n.End, f)
	case *AssignExpr:
		inspectExpr(n.Target, f)
		inspectExpr(n.Value, f)

	case *GenericType:
		for _, a := range n.Args {
			inspectType(a, f)
		}
	case *ArrayType:
		inspectType(n.Elem, f)
	case *TupleType:
		for _, e := range n.Elems {
			inspectType(e, f)
		}
	case *FuncType:
		for _, p := range n.Params {
			inspectType(p, f)
		}
		inspectType(n.Return, f)
	case *RefType:
		inspectType(n.Inner, f)
	}
}

func inspectExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectBlock(b *Block, f func(Node) bool) {
	if b != nil {
		Inspect(b, f)
	}
}

func inspectType(t TypeExpr, f func(Node) bool) {
	if t != nil {
		Inspect(t, f)
	}
}
