package parser

import (
	"strings"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/lexer"
)

// parseDecl dispatches on the declaration keyword under curTok. It returns
// nil after reporting an error; the caller synchronizes.
func (p *Parser) parseDecl() ast.Decl {
	switch p.curTok.Type {
	case lexer.FN, lexer.ASYNC:
		fn := p.parseFunction(false)
		if fn == nil {
			return nil
		}
		return fn
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.CLASS:
		return p.parseClass()
	case lexer.TRAIT:
		return p.parseTrait()
	case lexer.IMPL:
		return p.parseImpl()
	case lexer.ENUM:
		return p.parseEnum()
	case lexer.TYPE:
		return p.parseTypeAlias()
	case lexer.IMPORT, lexer.FROM:
		return p.parseImport()
	default:
		p.reportError("expected declaration", p.curTok.Span)
		return nil
	}
}

// parseFunction parses fn and async fn declarations. With allowSignature set
// (trait bodies) the body is optional and a bare signature is accepted.
func (p *Parser) parseFunction(allowSignature bool) *ast.FnDecl {
	start := p.curTok.Span

	async := false
	if p.curTok.Type == lexer.ASYNC {
		async = true
		if !p.expect(lexer.FN) {
			return nil
		}
	}
	if p.curTok.Type != lexer.FN {
		p.reportError("expected 'fn'", p.curTok.Span)
		return nil
	}

	if !p.expect(lexer.IDENT) {
		return nil
	}
	fn := ast.NewFnDecl(p.curTok.Lexeme, start.Merge(p.curTok.Span))
	fn.Async = async

	// Optional type parameters [T, U].
	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		params, ok := p.parseTypeParams()
		if !ok {
			return nil
		}
		fn.TypeParams = params
	}

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	if p.peekTok.Type != lexer.RPAREN {
		params, ok := p.parseParamList()
		if !ok {
			return nil
		}
		fn.Params = params
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	if p.peekTok.Type == lexer.ARROW {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseType()
		if fn.ReturnType == nil {
			return nil
		}
	}

	if p.peekTok.Type != lexer.COLON {
		if allowSignature {
			fn.SetSpan(start.Merge(p.curTok.Span))
			return fn
		}
		p.reportError("expected ':' before function body", p.peekTok.Span)
		return nil
	}

	fn.Body = p.parseBlock()
	if fn.Body == nil {
		return nil
	}
	fn.SetSpan(start.Merge(p.curTok.Span))
	return fn
}

// parseTypeParams parses the bracketed type parameter list with curTok on the
// opening '['.
func (p *Parser) parseTypeParams() ([]string, bool) {
	var params []string
	for {
		if !p.expect(lexer.IDENT) {
			return nil, false
		}
		params = append(params, p.curTok.Lexeme)
		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expect(lexer.RBRACKET) {
		return nil, false
	}
	return params, true
}

// parseParamList parses value parameters, including the method receiver
// `self` and `mut` markers, with curTok on '('.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	var params []*ast.Param

	if p.peekTok.Type == lexer.SELF {
		p.nextToken()
		selfSpan := p.curTok.Span
		params = append(params, ast.NewParam("self",
			ast.NewNamedType("Self", selfSpan), false, selfSpan))
		if p.peekTok.Type != lexer.COMMA {
			return params, true
		}
		p.nextToken()
	}

	for {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	return params, true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	mutable := false
	if p.peekTok.Type == lexer.MUT {
		p.nextToken()
		mutable = true
	}
	if !p.expect(lexer.IDENT) {
		return nil, false
	}
	start := p.curTok.Span
	name := p.curTok.Lexeme

	if !p.expect(lexer.COLON) {
		return nil, false
	}
	p.nextToken()
	typ := p.parseType()
	if typ == nil {
		return nil, false
	}

	param := ast.NewParam(name, typ, mutable, start.Merge(p.curTok.Span))
	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken()
		p.nextToken()
		param.Default = p.parseExpression()
		if param.Default == nil {
			return nil, false
		}
		param.SetSpan(start.Merge(p.curTok.Span))
	}
	return param, true
}

// bodyHeader consumes ':' NEWLINE* INDENT ahead of a declaration body,
// leaving curTok on the INDENT.
func (p *Parser) bodyHeader() bool {
	if !p.expect(lexer.COLON) {
		return false
	}
	p.nextToken()
	for p.curTok.Type == lexer.NEWLINE {
		p.nextToken()
	}
	if p.curTok.Type != lexer.INDENT {
		p.reportError("expected indented body", p.curTok.Span)
		return false
	}
	return true
}

// atBodyEnd reports whether the declaration body loop should stop.
func (p *Parser) atBodyEnd() bool {
	return p.curTok.Type == lexer.DEDENT || p.curTok.Type == lexer.EOF
}

func (p *Parser) parseStruct() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	st := ast.NewStructDecl(p.curTok.Lexeme, start)

	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		params, ok := p.parseTypeParams()
		if !ok {
			return nil
		}
		st.TypeParams = params
	}

	if !p.bodyHeader() {
		return nil
	}
	p.nextToken()

	for !p.atBodyEnd() {
		if p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
			continue
		}
		fieldPublic := false
		if p.curTok.Type == lexer.PUB {
			fieldPublic = true
			p.nextToken()
		}
		switch p.curTok.Type {
		case lexer.FN, lexer.ASYNC:
			method := p.parseFunction(false)
			if method == nil {
				p.recoverStatement()
				continue
			}
			ast.SetPublic(method, fieldPublic)
			st.Methods = append(st.Methods, method)
		case lexer.IDENT:
			field := p.parseStructField(fieldPublic)
			if field == nil {
				p.recoverStatement()
				continue
			}
			st.Fields = append(st.Fields, field)
		default:
			p.reportError("expected field or method in struct", p.curTok.Span)
			p.recoverStatement()
			continue
		}
		p.nextToken()
	}

	st.SetSpan(start.Merge(p.curTok.Span))
	return st
}

// parseStructField parses `name: Type [= default]` with curTok on the name.
func (p *Parser) parseStructField(public bool) *ast.StructField {
	field := &ast.StructField{Name: p.curTok.Lexeme, Public: public}
	start := p.curTok.Span

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken()
	field.Type = p.parseType()
	if field.Type == nil {
		return nil
	}

	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken()
		p.nextToken()
		field.Default = p.parseExpression()
		if field.Default == nil {
			return nil
		}
	}

	field.SetSpan(start.Merge(p.curTok.Span))
	return field
}

func (p *Parser) parseClass() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	cls := ast.NewClassDecl(p.curTok.Lexeme, start)

	// Optional base class: class Dog(Animal):
	if p.peekTok.Type == lexer.LPAREN {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		cls.Base = p.curTok.Lexeme
		if !p.expect(lexer.RPAREN) {
			return nil
		}
	}

	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		params, ok := p.parseTypeParams()
		if !ok {
			return nil
		}
		cls.TypeParams = params
	}

	if !p.bodyHeader() {
		return nil
	}
	p.nextToken()

	for !p.atBodyEnd() {
		if p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
			continue
		}
		memberPublic := false
		if p.curTok.Type == lexer.PUB {
			memberPublic = true
			p.nextToken()
		}
		switch p.curTok.Type {
		case lexer.FN, lexer.ASYNC:
			method := p.parseFunction(false)
			if method == nil {
				p.recoverStatement()
				continue
			}
			ast.SetPublic(method, memberPublic)
			cls.Methods = append(cls.Methods, method)
		case lexer.IDENT:
			field := p.parseStructField(memberPublic)
			if field == nil {
				p.recoverStatement()
				continue
			}
			cls.Fields = append(cls.Fields, field)
		default:
			p.reportError("expected field or method in class", p.curTok.Span)
			p.recoverStatement()
			continue
		}
		p.nextToken()
	}

	cls.SetSpan(start.Merge(p.curTok.Span))
	return cls
}

func (p *Parser) parseTrait() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	trait := ast.NewTraitDecl(p.curTok.Lexeme, start)

	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		params, ok := p.parseTypeParams()
		if !ok {
			return nil
		}
		trait.TypeParams = params
	}

	if !p.bodyHeader() {
		return nil
	}
	p.nextToken()

	for !p.atBodyEnd() {
		if p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
			continue
		}
		if p.curTok.Type != lexer.FN && p.curTok.Type != lexer.ASYNC {
			p.reportError("expected method in trait", p.curTok.Span)
			p.recoverStatement()
			continue
		}
		// Trait methods may be bare signatures or carry default bodies.
		method := p.parseFunction(true)
		if method == nil {
			p.recoverStatement()
			continue
		}
		trait.Methods = append(trait.Methods, method)
		p.nextToken()
	}

	trait.SetSpan(start.Merge(p.curTok.Span))
	return trait
}

func (p *Parser) parseImpl() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	first := p.curTok.Lexeme
	impl := ast.NewImplDecl(first, start)

	// impl Trait for Type:
	if p.peekTok.Type == lexer.FOR {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		impl.TraitName = first
		impl.TypeName = p.curTok.Lexeme
	}

	if !p.bodyHeader() {
		return nil
	}
	p.nextToken()

	for !p.atBodyEnd() {
		if p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
			continue
		}
		if p.curTok.Type != lexer.FN && p.curTok.Type != lexer.ASYNC {
			p.reportError("expected method in impl block", p.curTok.Span)
			p.recoverStatement()
			continue
		}
		method := p.parseFunction(false)
		if method == nil {
			p.recoverStatement()
			continue
		}
		impl.Methods = append(impl.Methods, method)
		p.nextToken()
	}

	impl.SetSpan(start.Merge(p.curTok.Span))
	return impl
}

func (p *Parser) parseEnum() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	en := ast.NewEnumDecl(p.curTok.Lexeme, start)

	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		params, ok := p.parseTypeParams()
		if !ok {
			return nil
		}
		en.TypeParams = params
	}

	if !p.bodyHeader() {
		return nil
	}
	p.nextToken()

	for !p.atBodyEnd() {
		if p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
			continue
		}
		if p.curTok.Type != lexer.IDENT {
			p.reportError("expected variant name", p.curTok.Span)
			p.recoverStatement()
			continue
		}
		variant := &ast.EnumVariant{Name: p.curTok.Lexeme}
		variant.SetSpan(p.curTok.Span)

		if p.peekTok.Type == lexer.LPAREN {
			p.nextToken()
			for p.peekTok.Type != lexer.RPAREN && p.peekTok.Type != lexer.EOF {
				p.nextToken()
				typ := p.parseType()
				if typ == nil {
					break
				}
				variant.Fields = append(variant.Fields, typ)
				if p.peekTok.Type != lexer.COMMA {
					break
				}
				p.nextToken()
			}
			if !p.expect(lexer.RPAREN) {
				p.recoverStatement()
				continue
			}
			variant.SetSpan(variant.Span().Merge(p.curTok.Span))
		}

		en.Variants = append(en.Variants, variant)
		p.nextToken()
	}

	en.SetSpan(start.Merge(p.curTok.Span))
	return en
}

func (p *Parser) parseTypeAlias() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curTok.Lexeme

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	aliased := p.parseType()
	if aliased == nil {
		return nil
	}

	return ast.NewTypeAliasDecl(name, aliased, start.Merge(p.curTok.Span))
}

func (p *Parser) parseImport() ast.Decl {
	start := p.curTok.Span

	if p.curTok.Type == lexer.IMPORT {
		if !p.expect(lexer.IDENT) {
			return nil
		}
		path := []string{p.curTok.Lexeme}
		for p.peekTok.Type == lexer.DOT {
			p.nextToken()
			if !p.expect(lexer.IDENT) {
				return nil
			}
			path = append(path, p.curTok.Lexeme)
		}
		imp := ast.NewImportDecl(strings.Join(path, "."), start.Merge(p.curTok.Span))
		if p.peekTok.Type == lexer.AS {
			p.nextToken()
			if !p.expect(lexer.IDENT) {
				return nil
			}
			imp.Alias = p.curTok.Lexeme
			imp.SetSpan(start.Merge(p.curTok.Span))
		}
		return imp
	}

	// from a.b import x, y | *
	if !p.expect(lexer.IDENT) {
		return nil
	}
	path := []string{p.curTok.Lexeme}
	for p.peekTok.Type == lexer.DOT {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		path = append(path, p.curTok.Lexeme)
	}
	if !p.expect(lexer.IMPORT) {
		return nil
	}
	imp := ast.NewImportDecl(strings.Join(path, "."), start)

	if p.peekTok.Type == lexer.STAR {
		p.nextToken()
		imp.ImportAll = true
	} else {
		for {
			if !p.expect(lexer.IDENT) {
				return nil
			}
			imp.Symbols = append(imp.Symbols, p.curTok.Lexeme)
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	imp.SetSpan(start.Merge(p.curTok.Span))
	return imp
}
