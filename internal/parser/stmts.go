package parser

import (
	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/lexer"
)

// parseStatement dispatches on curTok. Sub-parsers return with curTok on the
// statement's last token.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.MATCH:
		return p.parseMatchStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		return ast.NewBreakStmt(p.curTok.Span)
	case lexer.CONTINUE:
		return ast.NewContinueStmt(p.curTok.Span)
	case lexer.YIELD:
		return p.parseYieldStmt()
	case lexer.LET, lexer.VAR, lexer.CONST:
		return p.parseVarDeclStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses ':' NEWLINE* INDENT stmt* DEDENT with curTok on the token
// preceding the colon. It returns with curTok on the closing DEDENT.
func (p *Parser) parseBlock() *ast.Block {
	if !p.expect(lexer.COLON) {
		return nil
	}
	start := p.curTok.Span
	p.nextToken()
	for p.curTok.Type == lexer.NEWLINE {
		p.nextToken()
	}
	if p.curTok.Type != lexer.INDENT {
		p.reportError("expected indented block", p.curTok.Span)
		return nil
	}
	p.nextToken()

	block := ast.NewBlock(start)
	for p.curTok.Type != lexer.DEDENT && p.curTok.Type != lexer.EOF {
		if p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
			continue
		}
		if isBlockDeclKeyword(p.curTok.Type) {
			p.reportError("declarations are not allowed inside a block", p.curTok.Span)
			p.recoverStatement()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.recoverStatement()
			continue
		}
		block.Stmts = append(block.Stmts, stmt)
		p.nextToken()
	}

	block.SetSpan(start.Merge(p.curTok.Span))
	return block
}

func isBlockDeclKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.FN, lexer.STRUCT, lexer.CLASS, lexer.TRAIT, lexer.IMPL,
		lexer.ENUM, lexer.IMPORT, lexer.FROM:
		return true
	default:
		return false
	}
}

func (p *Parser) parseVarDeclStmt() ast.Stmt {
	start := p.curTok.Span
	isConst := p.curTok.Type == lexer.CONST
	mutable := p.curTok.Type == lexer.VAR

	if !p.expect(lexer.IDENT) {
		return nil
	}
	stmt := ast.NewVarDeclStmt(p.curTok.Lexeme, mutable, isConst, start.Merge(p.curTok.Span))

	if p.peekTok.Type == lexer.COLON {
		p.nextToken()
		p.nextToken()
		stmt.Type = p.parseType()
		if stmt.Type == nil {
			return nil
		}
	}

	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken()
		p.nextToken()
		stmt.Init = p.parseExpression()
		if stmt.Init == nil {
			return nil
		}
	}

	stmt.SetSpan(start.Merge(p.curTok.Span))
	return stmt
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	then := p.parseBlock()
	if then == nil {
		return nil
	}
	stmt := ast.NewIfStmt(cond, then, start)

	for p.peekTok.Type == lexer.ELIF {
		p.nextToken()
		p.nextToken()
		elifCond := p.parseExpression()
		if elifCond == nil {
			return nil
		}
		elifBody := p.parseBlock()
		if elifBody == nil {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, ast.ElifClause{Cond: elifCond, Body: elifBody})
	}

	if p.peekTok.Type == lexer.ELSE {
		p.nextToken()
		stmt.Else = p.parseBlock()
		if stmt.Else == nil {
			return nil
		}
	}

	stmt.SetSpan(start.Merge(p.curTok.Span))
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return ast.NewWhileStmt(cond, body, start.Merge(p.curTok.Span))
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	varName := p.curTok.Lexeme

	if !p.expect(lexer.IN) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpression()
	if iterable == nil {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return ast.NewForStmt(varName, iterable, body, start.Merge(p.curTok.Span))
}

func (p *Parser) parseMatchStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken()
	scrutinee := p.parseExpression()
	if scrutinee == nil {
		return nil
	}
	stmt := ast.NewMatchStmt(scrutinee, start)

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken()
	for p.curTok.Type == lexer.NEWLINE {
		p.nextToken()
	}
	if p.curTok.Type != lexer.INDENT {
		p.reportError("expected indented block of case arms", p.curTok.Span)
		return nil
	}

	for {
		for p.peekTok.Type == lexer.NEWLINE {
			p.nextToken()
		}
		if p.peekTok.Type != lexer.CASE {
			break
		}
		p.nextToken()
		arm, ok := p.parseMatchArm()
		if !ok {
			p.recoverStatement()
			continue
		}
		stmt.Arms = append(stmt.Arms, arm)
	}

	if len(stmt.Arms) == 0 {
		p.reportError("expected 'case' arm in match", p.peekTok.Span)
	}

	// The block's DEDENT is consumed only when it is actually present; error
	// recovery may already have eaten it.
	if p.peekTok.Type == lexer.DEDENT {
		p.nextToken()
	}

	stmt.SetSpan(start.Merge(p.curTok.Span))
	return stmt
}

// parseMatchArm parses one `case PATTERN [if GUARD]: BLOCK` with curTok on
// the case keyword.
func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	var arm ast.MatchArm

	p.nextToken()
	arm.Pattern = p.parseExpression()
	if arm.Pattern == nil {
		return arm, false
	}

	if p.peekTok.Type == lexer.IF {
		p.nextToken()
		p.nextToken()
		arm.Guard = p.parseExpression()
		if arm.Guard == nil {
			return arm, false
		}
	}

	arm.Body = p.parseBlock()
	if arm.Body == nil {
		return arm, false
	}
	return arm, true
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span

	switch p.peekTok.Type {
	case lexer.NEWLINE, lexer.DEDENT, lexer.EOF, lexer.SEMICOLON:
		return ast.NewReturnStmt(nil, start)
	}

	p.nextToken()
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return ast.NewReturnStmt(value, start.Merge(p.curTok.Span))
}

func (p *Parser) parseYieldStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken()
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return ast.NewYieldStmt(value, start.Merge(p.curTok.Span))
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	return ast.NewExprStmt(expr, expr.Span())
}
