package lexer

import (
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `let x = 10`

	tests := []struct {
		expectedType   TokenType
		expectedLexeme string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "10"},
		{EOF, ""},
	}

	l := New(input, "test.ax")

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / % ** == != < <= > >= << >> & | ^ ~ -> => :: .. ... += -= *= /= %= ? @ . , ; :`

	expected := []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT, POWER,
		EQ, NE, LT, LE, GT, GE, SHL, SHR,
		AMPERSAND, PIPE, CARET, TILDE,
		ARROW, FAT_ARROW, DOUBLE_COLON, DOT_DOT, ELLIPSIS,
		PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		QUESTION, AT, DOT, COMMA, SEMICOLON, COLON,
		EOF,
	}

	l := New(input, "test.ax")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("step %d - expected token %q, got %q (lexeme %q)", i, want, tok.Type, tok.Lexeme)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `fn let var const struct class trait impl enum type if elif else match case while for in break continue return yield async await spawn import from as pub mut self Self super true false None and or not`

	expected := []TokenType{
		FN, LET, VAR, CONST, STRUCT, CLASS, TRAIT, IMPL, ENUM, TYPE,
		IF, ELIF, ELSE, MATCH, CASE, WHILE, FOR, IN, BREAK, CONTINUE,
		RETURN, YIELD, ASYNC, AWAIT, SPAWN, IMPORT, FROM, AS, PUB, MUT,
		SELF, SELF_TYPE, SUPER, TRUE, FALSE, NONE, AND, OR, NOT,
		EOF,
	}

	l := New(input, "test.ax")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("step %d - expected token %q, got %q", i, want, tok.Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input      string
		typ        TokenType
		intValue   int64
		floatValue float64
	}{
		{"42", INT, 42, 0},
		{"0", INT, 0, 0},
		{"0xff", INT, 255, 0},
		{"0XFF", INT, 255, 0},
		{"0b101", INT, 5, 0},
		{"0o17", INT, 15, 0},
		{"3.14", FLOAT, 0, 3.14},
		{"1e9", FLOAT, 0, 1e9},
		{"2.5e-3", FLOAT, 0, 2.5e-3},
		{"1E+2", FLOAT, 0, 100},
		{".5", FLOAT, 0, 0.5},
	}

	for _, tt := range tests {
		l := New(tt.input, "test.ax")
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Errorf("%q - type wrong. expected=%q, got=%q", tt.input, tt.typ, tok.Type)
			continue
		}
		if tok.Lexeme != tt.input {
			t.Errorf("%q - lexeme wrong. got=%q", tt.input, tok.Lexeme)
		}
		if tt.typ == INT && tok.IntValue != tt.intValue {
			t.Errorf("%q - int value wrong. expected=%d, got=%d", tt.input, tt.intValue, tok.IntValue)
		}
		if tt.typ == FLOAT && tok.FloatValue != tt.floatValue {
			t.Errorf("%q - float value wrong. expected=%g, got=%g", tt.input, tt.floatValue, tok.FloatValue)
		}
		if l.HasErrors() {
			t.Errorf("%q - unexpected lex errors: %v", tt.input, l.Errors)
		}
	}
}

func TestNumber_TrailingDotIsFloat(t *testing.T) {
	l := New("3.", "test.ax")
	tok := l.NextToken()
	if tok.Type != FLOAT || tok.FloatValue != 3.0 {
		t.Fatalf("expected FLOAT 3.0, got %q %v", tok.Type, tok.FloatValue)
	}
}

func TestNumber_RangeStaysInteger(t *testing.T) {
	l := New("1..5", "test.ax")
	expected := []TokenType{INT, DOT_DOT, INT, EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("step %d - expected %q, got %q", i, want, tok.Type)
		}
	}
}

func TestNumber_Overflow(t *testing.T) {
	l := New("99999999999999999999", "test.ax")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for overflowing literal, got %q", tok.Type)
	}
	if !l.HasErrors() {
		t.Fatal("expected a lex error for integer overflow")
	}
	if l.Errors[0].Kind != ErrMalformedNumber {
		t.Fatalf("expected ErrMalformedNumber, got %v", l.Errors[0].Kind)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"q\"q"`, `q"q`},
		{`"back\\slash"`, `back\slash`},
		{`"zero\0end"`, "zero\x00end"},
		{`"weird\qescape"`, `weird\qescape`},
		{`"""one
two"""`, "one\ntwo"},
		{`f"formatted"`, "formatted"},
	}

	for _, tt := range tests {
		l := New(tt.input, "test.ax")
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Errorf("%q - expected STRING, got %q", tt.input, tok.Type)
			continue
		}
		if tok.Value != tt.value {
			t.Errorf("%q - value wrong. expected=%q, got=%q", tt.input, tt.value, tok.Value)
		}
		if tok.Lexeme != tt.input {
			t.Errorf("%q - lexeme should be the raw source slice, got %q", tt.input, tok.Lexeme)
		}
	}
}

func TestString_Unterminated(t *testing.T) {
	for _, input := range []string{`"open`, "\"open\nnext", `'open`} {
		l := New(input, "test.ax")
		tok := l.NextToken()
		if tok.Type != ILLEGAL {
			t.Errorf("%q - expected ILLEGAL, got %q", input, tok.Type)
		}
		if !l.HasErrors() || l.Errors[0].Kind != ErrUnterminatedString {
			t.Errorf("%q - expected unterminated string error", input)
		}
	}
}

func TestString_MultilineSpanStartsAtOpeningQuote(t *testing.T) {
	input := "x = \"\"\"a\nb\"\"\""
	l := New(input, "test.ax")
	l.NextToken() // x
	l.NextToken() // =
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %q", tok.Type)
	}
	if tok.Span.Line != 1 || tok.Span.Column != 5 {
		t.Fatalf("expected span 1:5 at the opening quote, got %d:%d", tok.Span.Line, tok.Span.Column)
	}
}

func TestBareBangIsError(t *testing.T) {
	l := New("!x", "test.ax")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for bare '!', got %q", tok.Type)
	}
	if !l.HasErrors() || l.Errors[0].Kind != ErrUnexpectedChar {
		t.Fatal("expected an unexpected-character error for bare '!'")
	}
}

func TestComments(t *testing.T) {
	input := "x # trailing comment\n# full line\ny"
	l := New(input, "test.ax")
	expected := []TokenType{IDENT, NEWLINE, IDENT, EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("step %d - expected %q, got %q", i, want, tok.Type)
		}
	}
}

func TestLineContinuation(t *testing.T) {
	input := "a \\\nb"
	l := New(input, "test.ax")
	expected := []TokenType{IDENT, IDENT, EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("step %d - expected %q, got %q", i, want, tok.Type)
		}
	}
}

func TestPeekToken_Idempotent(t *testing.T) {
	l := New("a b", "test.ax")
	first := l.PeekToken()
	second := l.PeekToken()
	if first != second {
		t.Fatalf("peek not idempotent: %v vs %v", first, second)
	}
	next := l.NextToken()
	if next != first {
		t.Fatalf("NextToken should return the peeked token, got %v want %v", next, first)
	}
}

func TestEOF_Repeats(t *testing.T) {
	l := New("", "test.ax")
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != EOF {
			t.Fatalf("call %d - expected EOF, got %q", i, tok.Type)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	l := New("", "test.ax")
	tokens := l.TokenizeAll()
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Fatalf("empty input should produce a single EOF, got %v", tokens)
	}
	if l.HasErrors() {
		t.Fatalf("empty input produced errors: %v", l.Errors)
	}
}

// Every non-layout token's lexeme must be the exact source slice at its span.
func TestLexemeMatchesSourceSlice(t *testing.T) {
	source := "fn add(a: i32) -> i32:\n    return a + 0xff # done\ns = \"hi\"\n"
	runes := []rune(source)

	l := New(source, "test.ax")
	for _, tok := range l.TokenizeAll() {
		if IsLayout(tok.Type) || tok.Type == EOF {
			if tok.Lexeme != "" {
				t.Errorf("layout token %q has non-empty lexeme %q", tok.Type, tok.Lexeme)
			}
			continue
		}
		got := string(runes[tok.Span.Start:tok.Span.End])
		if got != tok.Lexeme {
			t.Errorf("token %q - source slice %q != lexeme %q", tok.Type, got, tok.Lexeme)
		}
	}
}
