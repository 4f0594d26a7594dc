package syntax

import (
	"ngs/ast"
	"ngs/report"
	"ngs/token"
)

// block = '{' {stmt} '}'
func (p *Parser) parseBlock() (*ast.Block, bool) {
	if !p.assertAndNext(token.LBRACE) {
		return nil, false
	}

	block := &ast.Block{}
	for !p.got(token.RBRACE) {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, false
		}

		block.Stmts = append(block.Stmts, stmt)
	}

	p.next()
	return block, true
}

// stmt = var_decl | do_while | return_stmt | block | ';' | call_stmt | assign_stmt
func (p *Parser) parseStatement() (ast.Node, bool) {
	switch p.tok.Kind {
	case token.EST:
		return p.parseVariableDecl()
	case token.DO:
		return p.parseDoWhile()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.SEMICOLON:
		noop := &ast.NoOp{NodeBase: ast.NewNodeBase(p.tok)}
		p.next()
		return noop, true
	case token.IDENTIFIER:
	default:
		if !p.tok.Kind.IsBuiltin() {
			if p.got(token.EOF) {
				p.reject()
			} else {
				p.rejectWithMsg(report.CodeInvalidStatement, "expected statement, got `%s`", p.tok.Value)
			}

			return nil, false
		}
	}

	// identifier or builtin: disambiguate by the token that follows
	switch ahead := p.peek(); {
	case ahead.Kind == token.LPAREN:
		return p.parseCallStmt()
	case ahead.Kind.IsAssignOp():
		return p.parseAssignment()
	default:
		p.errorOn(ahead, report.CodeInvalidStatement, "expected `(` or an assignment operator after `%s`, got %s", p.tok.Value, p.describe(ahead))
		return nil, false
	}
}

// var_decl = 'est' [type] IDENT ['=' expr] ';'
//
// The type defaults to `int` when omitted.
func (p *Parser) parseVariableDecl() (*ast.VariableDecl, bool) {
	start := p.pos
	p.next()

	varType := ast.NewTypeSpecifier(nil, token.INT)
	if p.tok.Kind.IsTypeSpecifier() {
		var ok bool
		if varType, ok = p.parseTypeSpecifier(); !ok {
			return nil, false
		}
	}

	if !p.assert(token.IDENTIFIER) {
		return nil, false
	}

	decl := &ast.VariableDecl{
		NodeBase: ast.NewNodeBase(p.tok),
		Name:     p.tok.Value,
		Type:     varType,
	}
	p.next()

	if p.got(token.ASSIGN) {
		p.next()

		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		decl.Init = init
	}

	if !p.assertAndNext(token.SEMICOLON) || !p.checkPattern(ast.KindVariableDecl, start) {
		return nil, false
	}

	return decl, true
}

// assign_stmt = IDENT ('=' | '+=' | '-=' | '*=' | '/=') expr ';'
func (p *Parser) parseAssignment() (*ast.Assignment, bool) {
	start := p.pos

	// builtin markers are accepted here so that the analyzer can report the
	// bad target
	target := &ast.Identifier{NodeBase: ast.NewNodeBase(p.tok), Name: p.tok.Value}
	p.next()

	op := p.tok
	p.next()

	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	if !p.assertAndNext(token.SEMICOLON) || !p.checkPattern(ast.KindAssignment, start) {
		return nil, false
	}

	return &ast.Assignment{
		NodeBase: ast.NewNodeBase(op),
		Op:       op.Kind.String(),
		Target:   target,
		Expr:     expr,
	}, true
}

// call_stmt = call ';'
func (p *Parser) parseCallStmt() (*ast.FunctionCall, bool) {
	call, ok := p.parseCall()
	if !ok || !p.assertAndNext(token.SEMICOLON) {
		return nil, false
	}

	return call, true
}

// do_while = 'do' stmt 'while' '(' expr ')' ';'
func (p *Parser) parseDoWhile() (*ast.DoWhileLoop, bool) {
	start := p.pos
	doTok := p.tok
	p.next()

	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}

	if !p.assertAndNext(token.WHILE) || !p.assertAndNext(token.LPAREN) {
		return nil, false
	}

	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	if !p.assertAndNext(token.RPAREN) || !p.assertAndNext(token.SEMICOLON) {
		return nil, false
	}

	if !p.checkPattern(ast.KindDoWhile, start) {
		return nil, false
	}

	return &ast.DoWhileLoop{
		NodeBase: ast.NewNodeBase(doTok),
		Body:     body,
		Cond:     cond,
	}, true
}

// return_stmt = 'return' [expr] ';'
func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, bool) {
	ret := &ast.ReturnStmt{NodeBase: ast.NewNodeBase(p.tok)}
	p.next()

	if !p.got(token.SEMICOLON) {
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		ret.Expr = expr
	}

	if !p.assertAndNext(token.SEMICOLON) {
		return nil, false
	}

	return ret, true
}
