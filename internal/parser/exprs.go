package parser

import (
	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
	"github.com/aljojoby9/Axiom/internal/lexer"
)

func (p *Parser) parseExpression() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportError("unexpected token in expression '"+string(p.curTok.Type)+"'", p.curTok.Span)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIntLit() ast.Expr {
	return ast.NewIntLit(p.curTok.IntValue, p.curTok.Span)
}

func (p *Parser) parseFloatLit() ast.Expr {
	return ast.NewFloatLit(p.curTok.FloatValue, p.curTok.Span)
}

func (p *Parser) parseStringLit() ast.Expr {
	return ast.NewStringLit(p.curTok.Value, p.curTok.Span)
}

func (p *Parser) parseBoolLit() ast.Expr {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

func (p *Parser) parseNoneLit() ast.Expr {
	return ast.NewNoneLit(p.curTok.Span)
}

func (p *Parser) parseIdent() ast.Expr {
	return ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS: ast.OpNeg,
	lexer.NOT:   ast.OpNot,
	lexer.TILDE: ast.OpBitNot,
}

// parseUnaryExpr consumes the operator before recursing so prefix binding
// power controls how much of the right side it captures.
func (p *Parser) parseUnaryExpr() ast.Expr {
	opTok := p.curTok

	p.nextToken()
	operand := p.parseExprPrecedence(precedencePrefix)
	if operand == nil {
		return nil
	}

	return ast.NewUnaryExpr(unaryOps[opTok.Type], operand, opTok.Span.Merge(operand.Span()))
}

func (p *Parser) parseAwaitExpr() ast.Expr {
	start := p.curTok.Span

	p.nextToken()
	operand := p.parseExprPrecedence(precedencePrefix)
	if operand == nil {
		return nil
	}

	return ast.NewAwaitExpr(operand, start.Merge(operand.Span()))
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:      ast.OpAdd,
	lexer.MINUS:     ast.OpSub,
	lexer.STAR:      ast.OpMul,
	lexer.SLASH:     ast.OpDiv,
	lexer.PERCENT:   ast.OpMod,
	lexer.POWER:     ast.OpPow,
	lexer.EQ:        ast.OpEq,
	lexer.NE:        ast.OpNe,
	lexer.LT:        ast.OpLt,
	lexer.LE:        ast.OpLe,
	lexer.GT:        ast.OpGt,
	lexer.GE:        ast.OpGe,
	lexer.AND:       ast.OpAnd,
	lexer.OR:        ast.OpOr,
	lexer.AMPERSAND: ast.OpBitAnd,
	lexer.PIPE:      ast.OpBitOr,
	lexer.CARET:     ast.OpBitXor,
	lexer.SHL:       ast.OpShl,
	lexer.SHR:       ast.OpShr,
	lexer.AT:        ast.OpMatMul,
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opTok := p.curTok
	prec := p.curPrecedence()
	if opTok.Type == lexer.POWER {
		// Exponentiation is right-associative.
		prec--
	}

	p.nextToken()
	right := p.parseExprPrecedence(prec)
	if right == nil {
		return nil
	}

	return ast.NewBinaryExpr(binaryOps[opTok.Type], left, right, left.Span().Merge(right.Span()))
}

var compoundAssignOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS_ASSIGN:    ast.OpAdd,
	lexer.MINUS_ASSIGN:   ast.OpSub,
	lexer.STAR_ASSIGN:    ast.OpMul,
	lexer.SLASH_ASSIGN:   ast.OpDiv,
	lexer.PERCENT_ASSIGN: ast.OpMod,
}

func (p *Parser) parseAssignExpr(target ast.Expr) ast.Expr {
	op := compoundAssignOps[p.curTok.Type] // "" for plain '='
	prec := p.curPrecedence()

	p.nextToken()
	value := p.parseExprPrecedence(prec)
	if value == nil {
		return nil
	}

	return ast.NewAssignExpr(target, value, op, target.Span().Merge(value.Span()))
}

func (p *Parser) parseRangeExpr(start ast.Expr) ast.Expr {
	prec := p.curPrecedence()

	p.nextToken()
	end := p.parseExprPrecedence(prec)
	if end == nil {
		return nil
	}

	return ast.NewRangeExpr(start, end, false, start.Span().Merge(end.Span()))
}

// parseCallExpr is entered with curTok on '('.
func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	var args []ast.Expr

	if p.peekTok.Type != lexer.RPAREN {
		for {
			p.nextToken()
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return ast.NewCallExpr(callee, args, callee.Span().Merge(p.curTok.Span))
}

// parseIndexExpr is entered with curTok on '['. A colon anywhere inside the
// brackets turns the subscript into a slice with optional start/end/step.
func (p *Parser) parseIndexExpr(object ast.Expr) ast.Expr {
	var start ast.Expr
	if p.peekTok.Type != lexer.COLON && p.peekTok.Type != lexer.DOUBLE_COLON {
		p.nextToken()
		start = p.parseExpression()
		if start == nil {
			return nil
		}
	}

	// The lexer reads "::" as one token: a slice with no end, e.g. xs[::2].
	if p.peekTok.Type == lexer.DOUBLE_COLON {
		p.nextToken()
		var step ast.Expr
		if p.peekTok.Type != lexer.RBRACKET {
			p.nextToken()
			step = p.parseExpression()
			if step == nil {
				return nil
			}
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		return ast.NewSliceExpr(object, start, nil, step, object.Span().Merge(p.curTok.Span))
	}

	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // ':'
		var end, step ast.Expr
		if p.peekTok.Type != lexer.COLON && p.peekTok.Type != lexer.RBRACKET {
			p.nextToken()
			end = p.parseExpression()
			if end == nil {
				return nil
			}
		}
		if p.peekTok.Type == lexer.COLON {
			p.nextToken()
			if p.peekTok.Type != lexer.RBRACKET {
				p.nextToken()
				step = p.parseExpression()
				if step == nil {
					return nil
				}
			}
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		return ast.NewSliceExpr(object, start, end, step, object.Span().Merge(p.curTok.Span))
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewIndexExpr(object, start, object.Span().Merge(p.curTok.Span))
}

// parseMemberExpr is entered with curTok on '.'.
func (p *Parser) parseMemberExpr(object ast.Expr) ast.Expr {
	if !p.expect(lexer.IDENT) {
		return nil
	}
	return ast.NewMemberExpr(object, p.curTok.Lexeme, object.Span().Merge(p.curTok.Span))
}

// spanSetter is satisfied by all concrete AST nodes; grouping widens the
// inner expression's span instead of introducing a paren node.
type spanSetter interface {
	SetSpan(span diag.Span)
}

// parseTupleOrGrouped parses '(' as either a grouped expression or a tuple
// literal. A trailing comma or two or more elements make a tuple.
func (p *Parser) parseTupleOrGrouped() ast.Expr {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.RPAREN {
		p.nextToken()
		return ast.NewTupleExpr(nil, start.Merge(p.curTok.Span))
	}

	p.nextToken()
	first := p.parseExpression()
	if first == nil {
		return nil
	}

	if p.peekTok.Type == lexer.COMMA {
		elems := []ast.Expr{first}
		for p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			if p.peekTok.Type == lexer.RPAREN {
				break
			}
			p.nextToken()
			elem := p.parseExpression()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
		}
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return ast.NewTupleExpr(elems, start.Merge(p.curTok.Span))
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if setter, ok := first.(spanSetter); ok {
		setter.SetSpan(start.Merge(p.curTok.Span))
	}
	return first
}

// parseListOrComprehension parses '[' as a list literal or, when the first
// element is followed by `for`, a list comprehension.
func (p *Parser) parseListOrComprehension() ast.Expr {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.RBRACKET {
		p.nextToken()
		return ast.NewListExpr(nil, start.Merge(p.curTok.Span))
	}

	p.nextToken()
	first := p.parseExpression()
	if first == nil {
		return nil
	}

	if p.peekTok.Type == lexer.FOR {
		p.nextToken()
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
		var cond ast.Expr
		if p.peekTok.Type == lexer.IF {
			p.nextToken()
			p.nextToken()
			cond = p.parseExpression()
			if cond == nil {
				return nil
			}
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		return ast.NewListCompExpr(first, varName, iterable, cond, start.Merge(p.curTok.Span))
	}

	elems := []ast.Expr{first}
	for p.peekTok.Type == lexer.COMMA {
		p.nextToken()
		if p.peekTok.Type == lexer.RBRACKET {
			break
		}
		p.nextToken()
		elem := p.parseExpression()
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
	}
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewListExpr(elems, start.Merge(p.curTok.Span))
}

func (p *Parser) parseDictLit() ast.Expr {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.RBRACE {
		p.nextToken()
		return ast.NewDictExpr(nil, start.Merge(p.curTok.Span))
	}

	var entries []ast.DictEntry
	for {
		p.nextToken()
		key := p.parseExpression()
		if key == nil {
			return nil
		}
		if !p.expect(lexer.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
		if p.peekTok.Type == lexer.RBRACE {
			break
		}
	}

	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return ast.NewDictExpr(entries, start.Merge(p.curTok.Span))
}

// parseLambdaExpr parses |params| expr and |params| -> T { expr }.
func (p *Parser) parseLambdaExpr() ast.Expr {
	start := p.curTok.Span

	var params []ast.LambdaParam
	if p.peekTok.Type != lexer.PIPE {
		for {
			if !p.expect(lexer.IDENT) {
				return nil
			}
			param := ast.LambdaParam{Name: p.curTok.Lexeme}
			if p.peekTok.Type == lexer.COLON {
				p.nextToken()
				p.nextToken()
				param.Type = p.parseType()
				if param.Type == nil {
					return nil
				}
			}
			params = append(params, param)
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}
	if !p.expect(lexer.PIPE) {
		return nil
	}

	var returnType ast.TypeExpr
	if p.peekTok.Type == lexer.ARROW {
		p.nextToken()
		p.nextToken()
		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	var body ast.Expr
	if p.peekTok.Type == lexer.LBRACE {
		p.nextToken()
		p.nextToken()
		body = p.parseExpression()
		if body == nil {
			return nil
		}
		if !p.expect(lexer.RBRACE) {
			return nil
		}
	} else {
		p.nextToken()
		body = p.parseExpression()
		if body == nil {
			return nil
		}
	}

	return ast.NewLambdaExpr(params, returnType, body, start.Merge(p.curTok.Span))
}
