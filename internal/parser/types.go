package parser

import (
	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/lexer"
)

// parseType parses a type reference with curTok on its first token and
// returns with curTok on its last.
func (p *Parser) parseType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.AMPERSAND:
		return p.parseRefType()
	case lexer.LBRACKET:
		return p.parseArrayType()
	case lexer.LPAREN:
		return p.parseTupleType()
	case lexer.FN:
		return p.parseFuncType()
	case lexer.IDENT:
		return p.parseNamedOrGenericType(p.curTok.Lexeme)
	case lexer.SELF_TYPE:
		return p.parseNamedOrGenericType("Self")
	default:
		p.reportError("expected type, got '"+string(p.curTok.Type)+"'", p.curTok.Span)
		return nil
	}
}

// parseRefType parses &T and &mut T.
func (p *Parser) parseRefType() ast.TypeExpr {
	start := p.curTok.Span

	mutable := false
	if p.peekTok.Type == lexer.MUT {
		p.nextToken()
		mutable = true
	}

	p.nextToken()
	inner := p.parseType()
	if inner == nil {
		return nil
	}
	return ast.NewRefType(inner, mutable, start.Merge(p.curTok.Span))
}

// parseArrayType parses [T] and [T; N].
func (p *Parser) parseArrayType() ast.TypeExpr {
	start := p.curTok.Span

	p.nextToken()
	elem := p.parseType()
	if elem == nil {
		return nil
	}

	var length *int64
	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
		if !p.expect(lexer.INT) {
			return nil
		}
		n := p.curTok.IntValue
		length = &n
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewArrayType(elem, length, start.Merge(p.curTok.Span))
}

// parseTupleType parses (T1, T2, ...).
func (p *Parser) parseTupleType() ast.TypeExpr {
	start := p.curTok.Span

	var elems []ast.TypeExpr
	if p.peekTok.Type != lexer.RPAREN {
		for {
			p.nextToken()
			elem := p.parseType()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return ast.NewTupleType(elems, start.Merge(p.curTok.Span))
}

// parseFuncType parses fn(T1, ...) -> R.
func (p *Parser) parseFuncType() ast.TypeExpr {
	start := p.curTok.Span

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	var params []ast.TypeExpr
	if p.peekTok.Type != lexer.RPAREN {
		for {
			p.nextToken()
			param := p.parseType()
			if param == nil {
				return nil
			}
			params = append(params, param)
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	var ret ast.TypeExpr
	if p.peekTok.Type == lexer.ARROW {
		p.nextToken()
		p.nextToken()
		ret = p.parseType()
		if ret == nil {
			return nil
		}
	}

	return ast.NewFuncType(params, ret, start.Merge(p.curTok.Span))
}

// parseNamedOrGenericType parses Name and Name[T1, ...].
func (p *Parser) parseNamedOrGenericType(name string) ast.TypeExpr {
	start := p.curTok.Span

	if p.peekTok.Type != lexer.LBRACKET {
		return ast.NewNamedType(name, start)
	}

	p.nextToken()
	var args []ast.TypeExpr
	for {
		p.nextToken()
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	return ast.NewGenericType(name, args, start.Merge(p.curTok.Span))
}
