package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/lexer"
)

func parseSource(t *testing.T, source string) (*ast.File, *Parser) {
	t.Helper()
	p := New(lexer.New(source, "test.ax"))
	file := p.Parse()
	if file == nil {
		t.Fatal("Parse returned nil file")
	}
	return file, p
}

func parseClean(t *testing.T, source string) *ast.File {
	t.Helper()
	file, p := parseSource(t, source)
	if p.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return file
}

// exprString renders an expression as an s-expression, ignoring spans, so
// trees can be compared structurally.
func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case nil:
		return "_"
	case *ast.IntLit:
		return fmt.Sprintf("%d", e.Value)
	case *ast.FloatLit:
		return fmt.Sprintf("%g", e.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", e.Value)
	case *ast.BoolLit:
		return fmt.Sprintf("%v", e.Value)
	case *ast.NoneLit:
		return "None"
	case *ast.Ident:
		return e.Name
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op, exprString(e.Left), exprString(e.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s %s)", e.Op, exprString(e.Operand))
	case *ast.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("(call %s %s)", exprString(e.Callee), strings.Join(args, " "))
	case *ast.IndexExpr:
		return fmt.Sprintf("(index %s %s)", exprString(e.Object), exprString(e.Index))
	case *ast.SliceExpr:
		return fmt.Sprintf("(slice %s %s %s %s)",
			exprString(e.Object), exprString(e.Start), exprString(e.End), exprString(e.Step))
	case *ast.MemberExpr:
		return fmt.Sprintf("(member %s %s)", exprString(e.Object), e.Member)
	case *ast.LambdaExpr:
		names := make([]string, len(e.Params))
		for i, p := range e.Params {
			names[i] = p.Name
		}
		return fmt.Sprintf("(lambda [%s] %s)", strings.Join(names, " "), exprString(e.Body))
	case *ast.ListExpr:
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = exprString(el)
		}
		return "(list " + strings.Join(elems, " ") + ")"
	case *ast.DictExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = exprString(entry.Key) + ":" + exprString(entry.Value)
		}
		return "(dict " + strings.Join(entries, " ") + ")"
	case *ast.TupleExpr:
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = exprString(el)
		}
		return "(tuple " + strings.Join(elems, " ") + ")"
	case *ast.ListCompExpr:
		return fmt.Sprintf("(for %s in %s if %s yield %s)",
			e.Var, exprString(e.Iterable), exprString(e.Cond), exprString(e.Elem))
	case *ast.AwaitExpr:
		return fmt.Sprintf("(await %s)", exprString(e.Operand))
	case *ast.RangeExpr:
		return fmt.Sprintf("(range %s %s)", exprString(e.Start), exprString(e.End))
	case *ast.AssignExpr:
		op := string(e.Op)
		if op == "" {
			op = "="
		} else {
			op += "="
		}
		return fmt.Sprintf("(%s %s %s)", op, exprString(e.Target), exprString(e.Value))
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// parseExprText parses a single expression by wrapping it in a function body.
func parseExprText(t *testing.T, source string) ast.Expr {
	t.Helper()
	file := parseClean(t, "fn test():\n    "+source+"\n")
	fn, ok := file.Decls[0].(*ast.FnDecl)
	if !ok || len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected one statement, got %#v", file.Decls)
	}
	stmt, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", fn.Body.Stmts[0])
	}
	return stmt.Expr
}

func TestParse_EmptyInput(t *testing.T) {
	file := parseClean(t, "")
	if len(file.Decls) != 0 {
		t.Fatalf("empty input should parse to an empty program, got %d decls", len(file.Decls))
	}
}

func TestParse_FunctionDecl(t *testing.T) {
	file := parseClean(t, "fn add(a: i32, b: i32) -> i32:\n    return a + b\n")

	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(file.Decls))
	}
	fn, ok := file.Decls[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected FnDecl, got %T", file.Decls[0])
	}
	if fn.Name != "add" {
		t.Errorf("name wrong. expected=%q, got=%q", "add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	ret, ok := fn.ReturnType.(*ast.NamedType)
	if !ok || ret.Name != "i32" {
		t.Errorf("return type wrong, got %#v", fn.ReturnType)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatal("expected a one-statement body")
	}
	retStmt, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", fn.Body.Stmts[0])
	}
	if got := exprString(retStmt.Value); got != "(+ a b)" {
		t.Errorf("return value wrong. expected=%q, got=%q", "(+ a b)", got)
	}
}

func TestParse_DeclKinds(t *testing.T) {
	source := strings.Join([]string{
		"import std.io",
		"from std.math import sin, cos",
		"type Id = i64",
		"struct Point:",
		"    x: f64",
		"    y: f64",
		"class Animal:",
		"    name: str",
		"class Dog(Animal):",
		"    breed: str",
		"trait Shape:",
		"    fn area(self) -> f64",
		"impl Shape for Point:",
		"    fn area(self) -> f64:",
		"        return 0.0",
		"enum Color:",
		"    Red",
		"    RGB(i32, i32, i32)",
		"async fn fetch(url: str) -> str:",
		"    return url",
		"pub fn visible():",
		"    return",
		"",
	}, "\n")

	file := parseClean(t, source)
	if len(file.Decls) != 11 {
		t.Fatalf("expected 11 declarations, got %d", len(file.Decls))
	}

	dog := file.Decls[5].(*ast.ClassDecl)
	if dog.Base != "Animal" {
		t.Errorf("base class wrong. expected=%q, got=%q", "Animal", dog.Base)
	}

	trait := file.Decls[6].(*ast.TraitDecl)
	if len(trait.Methods) != 1 || trait.Methods[0].Body != nil {
		t.Errorf("trait should have one bodyless method signature")
	}

	impl := file.Decls[7].(*ast.ImplDecl)
	if impl.TraitName != "Shape" || impl.TypeName != "Point" {
		t.Errorf("impl wrong: %+v", impl)
	}

	enum := file.Decls[8].(*ast.EnumDecl)
	if len(enum.Variants) != 2 || len(enum.Variants[1].Fields) != 3 {
		t.Errorf("enum variants wrong: %+v", enum.Variants)
	}

	async := file.Decls[9].(*ast.FnDecl)
	if !async.Async {
		t.Error("async flag not set")
	}

	if !file.Decls[10].Public() {
		t.Error("pub declaration should be public")
	}
}

func TestParse_PubSetsVisibility(t *testing.T) {
	file := parseClean(t, "pub fn visible():\n    return\nfn hidden():\n    return\n")
	if !file.Decls[0].Public() {
		t.Error("pub declaration should be public")
	}
	if file.Decls[1].Public() {
		t.Error("plain declaration should not be public")
	}
}

func TestParse_TopLevelStatementDiscarded(t *testing.T) {
	file, p := parseSource(t, "let x = 1\nfn f():\n    return\n")
	if p.HasErrors() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(file.Decls) != 1 {
		t.Fatalf("top-level statement should be discarded, got %d decls", len(file.Decls))
	}
	if _, ok := file.Decls[0].(*ast.FnDecl); !ok {
		t.Fatalf("expected the function declaration to survive, got %T", file.Decls[0])
	}
}

func TestParse_Statements(t *testing.T) {
	source := strings.Join([]string{
		"fn test():",
		"    let a = 1",
		"    var b: i64 = 2",
		"    const c = 3",
		"    if a == 1:",
		"        b = 2",
		"    elif a == 2:",
		"        b = 3",
		"    else:",
		"        b = 4",
		"    while b < 10:",
		"        b += 1",
		"        if b == 5:",
		"            break",
		"        continue",
		"    for i in range(0, 10):",
		"        print(i)",
		"    match a:",
		"        case 1:",
		"            return",
		"        case 2 if b > 0:",
		"            return",
		"    yield a",
		"    return",
		"",
	}, "\n")

	file := parseClean(t, source)
	fn := file.Decls[0].(*ast.FnDecl)
	if len(fn.Body.Stmts) != 9 {
		t.Fatalf("expected 9 statements, got %d", len(fn.Body.Stmts))
	}

	ifStmt := fn.Body.Stmts[3].(*ast.IfStmt)
	if len(ifStmt.Elifs) != 1 || ifStmt.Else == nil {
		t.Error("if statement should have one elif and an else")
	}
	for _, elif := range ifStmt.Elifs {
		if elif.Cond == nil {
			t.Error("elif must carry a condition")
		}
	}

	match := fn.Body.Stmts[6].(*ast.MatchStmt)
	if len(match.Arms) != 2 {
		t.Fatalf("expected 2 match arms, got %d", len(match.Arms))
	}
	if match.Arms[0].Guard != nil || match.Arms[1].Guard == nil {
		t.Error("guards wrong: first arm has none, second has one")
	}
}

// No parsed construct may have a missing required child.
func TestParse_NoDanglingChildren(t *testing.T) {
	source := strings.Join([]string{
		"fn f(n: i64) -> i64:",
		"    if n > 0:",
		"        while n > 0:",
		"            n -= 1",
		"    for i in [1, 2]:",
		"        print(i)",
		"    return n",
		"",
	}, "\n")

	file := parseClean(t, source)
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FnDecl:
			if n.Body == nil {
				t.Errorf("function %q has no body", n.Name)
			}
		case *ast.IfStmt:
			if n.Cond == nil || n.Then == nil {
				t.Error("if statement missing condition or body")
			}
		case *ast.WhileStmt:
			if n.Cond == nil || n.Body == nil {
				t.Error("while statement missing condition or body")
			}
		case *ast.ForStmt:
			if n.Iterable == nil || n.Body == nil {
				t.Error("for statement missing iterable or body")
			}
		}
		return true
	})
}

// Every node's span must sit inside the file's span.
func TestParse_SpansContained(t *testing.T) {
	source := "fn f(a: i64) -> i64:\n    return (a + 1) * len([1, 2])\n"
	file := parseClean(t, source)
	fileSpan := file.Span()

	ast.Inspect(file, func(n ast.Node) bool {
		span := n.Span()
		if span.Start < fileSpan.Start || span.End > fileSpan.End {
			t.Errorf("node %T span [%d,%d) escapes file span [%d,%d)",
				n, span.Start, span.End, fileSpan.Start, fileSpan.End)
		}
		return true
	})
}

func TestParse_BinarySpansNested(t *testing.T) {
	expr := parseExprText(t, "a + b * c")
	bin := expr.(*ast.BinaryExpr)
	if bin.Left.Span().Start < bin.Span().Start || bin.Right.Span().End > bin.Span().End {
		t.Error("child spans must be contained in the parent's span")
	}
	inner := bin.Right.(*ast.BinaryExpr)
	if inner.Span().Start < bin.Span().Start || inner.Span().End > bin.Span().End {
		t.Error("nested binary span escapes its parent")
	}
}
