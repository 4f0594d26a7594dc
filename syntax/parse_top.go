package syntax

import (
	"ngs/ast"
	"ngs/report"
	"ngs/token"
)

// program = {proc_decl | func_decl | main_block | global_decl} EOF
func (p *Parser) parseProgram() (*ast.Program, bool) {
	prog := ast.NewProgram()
	var mainTok *token.Token

	for !p.got(token.EOF) {
		start := p.pos

		var decl ast.Node
		var ok bool

		switch {
		case p.got(token.PROCEDURE):
			decl, ok = p.parseProcedureDecl()
		case p.tok.Kind.IsTypeSpecifier():
			decl, ok = p.parseFunctionDecl()
		case p.got(token.CES):
			if mainTok != nil {
				p.rejectWithMsg(report.CodeMainBlock, "multiple main blocks: first declared on line %d", mainTok.Line)
				return nil, false
			}

			mainTok = p.tok
			decl, ok = p.parseMainBlock()
		case p.got(token.EST) && p.opts.AllowGlobals:
			// global declarations run their own pattern check
			if decl, ok = p.parseVariableDecl(); ok {
				prog.Decls = append(prog.Decls, decl)
			} else {
				return nil, false
			}

			continue
		default:
			p.reject()
			return nil, false
		}

		if !ok || !p.checkPattern(decl.Kind(), start) {
			return nil, false
		}

		prog.Decls = append(prog.Decls, decl)
	}

	if mainTok == nil {
		p.diags.Error(report.CodeMainBlock, 0, 0, "", "missing main block `ces`")
		return nil, false
	}

	return prog, true
}

// proc_decl = 'procedure' 'algo' IDENT '(' [params] ')' block
func (p *Parser) parseProcedureDecl() (*ast.ProcedureDecl, bool) {
	p.next()

	name, params, body, ok := p.parseCallableTail()
	if !ok {
		return nil, false
	}

	return &ast.ProcedureDecl{
		NodeBase: ast.NewNodeBase(name),
		Name:     name.Value,
		Params:   params,
		Body:     body,
	}, true
}

// func_decl = type 'algo' IDENT '(' [params] ')' block
func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, bool) {
	rtType, ok := p.parseTypeSpecifier()
	if !ok {
		return nil, false
	}

	name, params, body, ok := p.parseCallableTail()
	if !ok {
		return nil, false
	}

	return &ast.FunctionDecl{
		NodeBase:   ast.NewNodeBase(name),
		Name:       name.Value,
		ReturnType: rtType,
		Params:     params,
		Body:       body,
	}, true
}

// parseCallableTail parses the part shared by function and procedure
// declarations: everything after the return type or `procedure` keyword.
//
// callable_tail = 'algo' IDENT '(' [params] ')' block
func (p *Parser) parseCallableTail() (*token.Token, *ast.ParamList, *ast.Block, bool) {
	if !p.assertAndNext(token.ALGO) || !p.assert(token.IDENTIFIER) {
		return nil, nil, nil, false
	}

	name := p.tok
	p.next()

	if !p.assertAndNext(token.LPAREN) {
		return nil, nil, nil, false
	}

	params, ok := p.parseParams()
	if !ok {
		return nil, nil, nil, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, nil, nil, false
	}

	return name, params, body, true
}

// params = [param {',' param}] ')'
// param = type IDENT
func (p *Parser) parseParams() (*ast.ParamList, bool) {
	params := &ast.ParamList{}

	if !p.got(token.RPAREN) {
		for {
			paramType, ok := p.parseTypeSpecifier()
			if !ok || !p.assert(token.IDENTIFIER) {
				return nil, false
			}

			params.Params = append(params.Params, &ast.Identifier{
				NodeBase: ast.NewNodeBase(p.tok),
				Name:     p.tok.Value,
				Type:     paramType,
			})

			p.next()

			if p.got(token.COMMA) {
				p.next()
			} else {
				break
			}
		}
	}

	if !p.assertAndNext(token.RPAREN) {
		return nil, false
	}

	return params, true
}

// type = 'int' | 'bool' | 'string' | 'time_t' | 'symb' | 'unsigned' 'int'
func (p *Parser) parseTypeSpecifier() (*ast.TypeSpecifier, bool) {
	typeTok := p.tok

	switch {
	case p.got(token.UNSIGNED):
		p.next()

		if !p.got(token.INT) {
			p.rejectWithMsg(report.CodeInvalidType, "`unsigned` must be followed by `int`, got %s", p.describe(p.tok))
			return nil, false
		}
	case !p.tok.Kind.IsTypeSpecifier():
		p.rejectWithMsg(report.CodeInvalidType, "expected type, got %s", p.describe(p.tok))
		return nil, false
	}

	p.next()
	return ast.NewTypeSpecifier(typeTok, typeTok.Kind), true
}

// main_block = 'ces' block
func (p *Parser) parseMainBlock() (*ast.Block, bool) {
	p.next()

	block, ok := p.parseBlock()
	if !ok {
		return nil, false
	}

	block.IsMain = true
	return block, true
}
