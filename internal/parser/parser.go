package parser

import (
	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
	"github.com/aljojoby9/Axiom/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Binding powers for the Pratt expression parser, low to high. Everything is
// left-associative except POWER, which parseInfixExpr special-cases.
const (
	precedenceLowest = iota
	precedenceAssign
	precedenceOr
	precedenceAnd
	precedenceEquality
	precedenceComparison
	precedenceBitOr
	precedenceBitXor
	precedenceBitAnd
	precedenceShift
	precedenceRange
	precedenceSum
	precedenceProduct
	precedencePower
	precedencePrefix
	precedencePostfix
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:         precedenceAssign,
	lexer.PLUS_ASSIGN:    precedenceAssign,
	lexer.MINUS_ASSIGN:   precedenceAssign,
	lexer.STAR_ASSIGN:    precedenceAssign,
	lexer.SLASH_ASSIGN:   precedenceAssign,
	lexer.PERCENT_ASSIGN: precedenceAssign,
	lexer.OR:             precedenceOr,
	lexer.AND:            precedenceAnd,
	lexer.EQ:             precedenceEquality,
	lexer.NE:             precedenceEquality,
	lexer.LT:             precedenceComparison,
	lexer.LE:             precedenceComparison,
	lexer.GT:             precedenceComparison,
	lexer.GE:             precedenceComparison,
	lexer.PIPE:           precedenceBitOr,
	lexer.CARET:          precedenceBitXor,
	lexer.AMPERSAND:      precedenceBitAnd,
	lexer.SHL:            precedenceShift,
	lexer.SHR:            precedenceShift,
	lexer.DOT_DOT:        precedenceRange,
	lexer.PLUS:           precedenceSum,
	lexer.MINUS:          precedenceSum,
	lexer.STAR:           precedenceProduct,
	lexer.SLASH:          precedenceProduct,
	lexer.PERCENT:        precedenceProduct,
	lexer.AT:             precedenceProduct,
	lexer.POWER:          precedencePower,
	lexer.LPAREN:         precedencePostfix,
	lexer.LBRACKET:       precedencePostfix,
	lexer.DOT:            precedencePostfix,
}

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message string
	Span    diag.Span
}

// ToDiagnostic converts a parse error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  e.Message,
		Span:     e.Span,
	}
}

// Parser implements a Pratt-style recursive descent parser over the lexer's
// token stream. Invariants:
//   - curTok is the token under examination; peekTok mirrors the next token
//     pulled from the lexer. The pair is the parser's sole lookahead window
//     and is only mutated via nextToken.
//   - Every sub-parser is entered with curTok on its construct's first token
//     and returns with curTok on its last token.
//   - errors is an append-only accumulator; panicMode suppresses cascading
//     records until a synchronizing token is reached.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors    []ParseError
	panicMode bool

	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser reading from the provided lexer.
func New(lx *lexer.Lexer) *Parser {
	p := &Parser{
		lx:        lx,
		filename:  lx.Filename(),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
	}

	p.registerPrefix(lexer.INT, p.parseIntLit)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLit)
	p.registerPrefix(lexer.STRING, p.parseStringLit)
	p.registerPrefix(lexer.TRUE, p.parseBoolLit)
	p.registerPrefix(lexer.FALSE, p.parseBoolLit)
	p.registerPrefix(lexer.NONE, p.parseNoneLit)
	p.registerPrefix(lexer.IDENT, p.parseIdent)
	p.registerPrefix(lexer.SELF, p.parseIdent)
	p.registerPrefix(lexer.SELF_TYPE, p.parseIdent)
	p.registerPrefix(lexer.SUPER, p.parseIdent)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpr)
	p.registerPrefix(lexer.NOT, p.parseUnaryExpr)
	p.registerPrefix(lexer.TILDE, p.parseUnaryExpr)
	p.registerPrefix(lexer.AWAIT, p.parseAwaitExpr)
	p.registerPrefix(lexer.LPAREN, p.parseTupleOrGrouped)
	p.registerPrefix(lexer.LBRACKET, p.parseListOrComprehension)
	p.registerPrefix(lexer.LBRACE, p.parseDictLit)
	p.registerPrefix(lexer.PIPE, p.parseLambdaExpr)

	for _, tt := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.POWER, lexer.EQ, lexer.NE, lexer.LT, lexer.LE, lexer.GT,
		lexer.GE, lexer.AND, lexer.OR, lexer.AMPERSAND, lexer.PIPE,
		lexer.CARET, lexer.SHL, lexer.SHR, lexer.AT,
	} {
		p.registerInfix(tt, p.parseInfixExpr)
	}
	for _, tt := range []lexer.TokenType{
		lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN,
		lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN, lexer.PERCENT_ASSIGN,
	} {
		p.registerInfix(tt, p.parseAssignExpr)
	}
	p.registerInfix(lexer.DOT_DOT, p.parseRangeExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// HasErrors reports whether any parse errors were recorded.
func (p *Parser) HasErrors() bool {
	return len(p.errors) > 0
}

// Diagnostics converts the recorded errors into shared diagnostics.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.errors))
	for _, e := range p.errors {
		out = append(out, e.ToDiagnostic())
	}
	return out
}

// Parse consumes the whole token stream and returns the program tree. Errors
// are accumulated; Parse never fails outright.
func (p *Parser) Parse() *ast.File {
	file := ast.NewFile(p.filename, p.curTok.Span)

	for p.curTok.Type != lexer.EOF {
		switch p.curTok.Type {
		case lexer.NEWLINE, lexer.SEMICOLON, lexer.INDENT, lexer.DEDENT:
			p.nextToken()
			continue
		}

		pub := false
		if p.curTok.Type == lexer.PUB {
			pub = true
			p.nextToken()
		}

		if isDeclStart(p.curTok.Type) {
			decl := p.parseDecl()
			if decl == nil {
				p.synchronize()
				continue
			}
			ast.SetPublic(decl, pub)
			file.Decls = append(file.Decls, decl)
			file.SetSpan(file.Span().Merge(decl.Span()))
			p.nextToken()
			continue
		}

		if pub {
			p.reportError("expected declaration after 'pub'", p.curTok.Span)
			p.synchronize()
			continue
		}

		// Top-level statements are parsed for error reporting but discarded;
		// the front-end only accepts declarations at file scope.
		if stmt := p.parseStatement(); stmt == nil {
			p.synchronize()
		} else {
			p.nextToken()
		}
	}

	file.SetSpan(file.Span().Merge(p.curTok.Span))
	return file
}

// nextToken advances the token window. After the call, curTok == old(peekTok).
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type and promotes
// it into curTok on success.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}
	p.reportError("expected '"+string(tt)+"', got '"+string(p.peekTok.Type)+"'", p.peekTok.Span)
	return false
}

// reportError records a diagnostic unless panic mode is suppressing cascades.
func (p *Parser) reportError(msg string, span diag.Span) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, ParseError{Message: msg, Span: span})
}

// synchronize skips tokens until a declaration- or statement-start keyword at
// a line boundary, then clears panic mode. Used at the top level.
func (p *Parser) synchronize() {
	p.panicMode = false
	lineStart := isLineBreak(p.curTok.Type)
	if p.curTok.Type != lexer.EOF {
		// Always make progress, even when the failure left curTok on a
		// keyword that would satisfy isSyncStart immediately.
		p.nextToken()
	}
	for p.curTok.Type != lexer.EOF {
		if lineStart && isSyncStart(p.curTok.Type) {
			return
		}
		lineStart = isLineBreak(p.curTok.Type)
		p.nextToken()
	}
}

// recoverStatement skips to the start of the next line within a block.
func (p *Parser) recoverStatement() {
	p.panicMode = false
	for p.curTok.Type != lexer.EOF && p.curTok.Type != lexer.DEDENT && p.curTok.Type != lexer.NEWLINE {
		p.nextToken()
	}
	if p.curTok.Type == lexer.NEWLINE {
		p.nextToken()
	}
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

func (p *Parser) peekPrecedence() int {
	return precedences[p.peekTok.Type]
}

func (p *Parser) curPrecedence() int {
	return precedences[p.curTok.Type]
}

func isDeclStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.FN, lexer.ASYNC, lexer.STRUCT, lexer.CLASS, lexer.TRAIT,
		lexer.IMPL, lexer.ENUM, lexer.TYPE, lexer.IMPORT, lexer.FROM:
		return true
	default:
		return false
	}
}

func isStmtKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IF, lexer.WHILE, lexer.FOR, lexer.MATCH, lexer.RETURN,
		lexer.BREAK, lexer.CONTINUE, lexer.YIELD, lexer.LET, lexer.VAR,
		lexer.CONST:
		return true
	default:
		return false
	}
}

func isLineBreak(tt lexer.TokenType) bool {
	return tt == lexer.NEWLINE || tt == lexer.INDENT || tt == lexer.DEDENT
}

func isSyncStart(tt lexer.TokenType) bool {
	return isDeclStart(tt) || isStmtKeyword(tt) || tt == lexer.PUB
}
