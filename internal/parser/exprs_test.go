package parser

import (
	"testing"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c", "(+ a (* b c))"},
		{"a * b + c", "(+ (* a b) c)"},
		{"a + b - c", "(- (+ a b) c)"},
		{"a * b / c % d", "(% (/ (* a b) c) d)"},
		{"a @ b * c", "(* (@ a b) c)"},
		{"-a + b", "(+ (- a) b)"},
		{"not a and b", "(and (not a) b)"},
		{"a and b or c", "(or (and a b) c)"},
		{"a == b and c != d", "(and (== a b) (!= c d))"},
		{"a < b == c > d", "(== (< a b) (> c d))"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"a << b + c", "(<< a (+ b c))"},
		{"a .. b + c", "(range a (+ b c))"},
		{"a ** b ** c", "(** a (** b c))"},
		{"a ** b * c", "(* (** a b) c)"},
		{"~a & b", "(& (~ a) b)"},
		{"a = b + c", "(= a (+ b c))"},
		{"a += b * c", "(+= a (* b c))"},
		{"await f() + 1", "(+ (await (call f )) 1)"},
		{"a.b.c", "(member (member a b) c)"},
		{"a.b(c)[d]", "(index (call (member a b) c) d)"},
		{"f(a, b + c)", "(call f a (+ b c))"},
		{"xs[0]", "(index xs 0)"},
		{"xs[1:2]", "(slice xs 1 2 _)"},
		{"xs[:2]", "(slice xs _ 2 _)"},
		{"xs[1:]", "(slice xs 1 _ _)"},
		{"xs[1:10:2]", "(slice xs 1 10 2)"},
		{"xs[::2]", "(slice xs _ _ 2)"},
	}

	for _, tt := range tests {
		expr := parseExprText(t, tt.input)
		if got := exprString(expr); got != tt.want {
			t.Errorf("%q - expected=%q, got=%q", tt.input, tt.want, got)
		}
	}
}

func TestGroupingDoesNotChangeStructure(t *testing.T) {
	pairs := []struct {
		plain, grouped string
	}{
		{"a + b", "(a) + (b)"},
		{"a * b + c", "(a * b) + (c)"},
		{"a and b", "(a) and (b)"},
		{"a .. b", "(a) .. (b)"},
	}
	for _, tt := range pairs {
		plain := exprString(parseExprText(t, tt.plain))
		grouped := exprString(parseExprText(t, tt.grouped))
		if plain != grouped {
			t.Errorf("%q vs %q - expected identical trees, got %q and %q",
				tt.plain, tt.grouped, plain, grouped)
		}
	}
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	expr := parseExprText(t, "(a + b) * c")
	if got := exprString(expr); got != "(* (+ a b) c)" {
		t.Errorf("expected=%q, got=%q", "(* (+ a b) c)", got)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.5", "3.5"},
		{`"hi"`, `"hi"`},
		{"true", "true"},
		{"false", "false"},
		{"None", "None"},
		{"[1, 2, 3]", "(list 1 2 3)"},
		{"[]", "(list )"},
		{`{"a": 1, "b": 2}`, `(dict "a":1 "b":2)`},
		{"{}", "(dict )"},
		{"(1, 2)", "(tuple 1 2)"},
		{"()", "(tuple )"},
		{"(1,)", "(tuple 1)"},
	}
	for _, tt := range tests {
		expr := parseExprText(t, tt.input)
		if got := exprString(expr); got != tt.want {
			t.Errorf("%q - expected=%q, got=%q", tt.input, tt.want, got)
		}
	}
}

func TestListComprehension(t *testing.T) {
	expr := parseExprText(t, "[x * 2 for x in nums if x > 0]")
	want := "(for x in nums if (> x 0) yield (* x 2))"
	if got := exprString(expr); got != want {
		t.Errorf("expected=%q, got=%q", want, got)
	}

	expr = parseExprText(t, "[x for x in nums]")
	want = "(for x in nums if _ yield x)"
	if got := exprString(expr); got != want {
		t.Errorf("expected=%q, got=%q", want, got)
	}
}

func TestLambda(t *testing.T) {
	expr := parseExprText(t, "|x, y| x + y")
	want := "(lambda [x y] (+ x y))"
	if got := exprString(expr); got != want {
		t.Errorf("expected=%q, got=%q", want, got)
	}

	expr = parseExprText(t, "|x: i64| -> i64 { x * 2 }")
	want = "(lambda [x] (* x 2))"
	if got := exprString(expr); got != want {
		t.Errorf("expected=%q, got=%q", want, got)
	}

	expr = parseExprText(t, "|| 42")
	want = "(lambda [] 42)"
	if got := exprString(expr); got != want {
		t.Errorf("expected=%q, got=%q", want, got)
	}
}
