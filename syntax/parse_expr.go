package syntax

import (
	"ngs/ast"
	"ngs/report"
	"ngs/token"
)

// expr = unary {binary_op unary}
func (p *Parser) parseExpr() (ast.Node, bool) {
	lhs, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	return p.precedenceParse(lhs, len(precTable))
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]token.Kind{
	{token.POW},
	{token.MULT, token.DIV, token.MOD},
	{token.PLUS, token.MINUS},
	{token.GT, token.LT, token.GE, token.LE},
	{token.EQ, token.NE},
	{token.AND, token.OR},
}

// precedenceParse is a helper function used to perform operator precedence
// parsing for binary operator -- it is essentially an augmented implementation
// of a Pratt parser.
func (p *Parser) precedenceParse(lhs ast.Node, maxPrec int) (ast.Node, bool) {
	for {
		// check to see if the lookahead matches any of the operators at or
		// above our precedence level.
		var op *token.Token
		var opPrec int
		for prec, precLevel := range precTable[:maxPrec] {
			if p.gotOneOf(precLevel...) {
				op = p.tok
				opPrec = prec
				break
			}
		}

		// no matching operator
		if op == nil {
			break
		}

		p.next()

		rhs, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}

	nextOpLoop:
		for {
			var precBound int

			// `^` is right associative
			if opPrec == 0 {
				precBound = 1
			} else {
				precBound = opPrec
			}

			for _, precLevel := range precTable[:precBound] {
				if p.gotOneOf(precLevel...) {
					rhs, ok = p.precedenceParse(rhs, precBound)
					if !ok {
						return nil, false
					}

					continue nextOpLoop
				}
			}

			break nextOpLoop
		}

		lhs = &ast.BinaryOp{
			NodeBase: ast.NewNodeBase(op),
			Op:       op.Kind,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs, true
}

// unary = ('+' | '-' | '!' | '~') unary | primary
func (p *Parser) parseUnaryExpr() (ast.Node, bool) {
	if !p.gotOneOf(token.PLUS, token.MINUS, token.NOT, token.BIT_NOT) {
		return p.parsePrimary()
	}

	op := p.tok
	p.next()

	operand, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	return &ast.UnaryOp{
		NodeBase: ast.NewNodeBase(op),
		Op:       op.Kind,
		Operand:  operand,
	}, true
}

// primary = NUMBER | STRING_LIT | CHAR_LIT | 'true' | 'false'
//         | call | IDENT | '(' expr ')'
func (p *Parser) parsePrimary() (ast.Node, bool) {
	switch {
	case p.tok.Kind.IsLiteral():
		lit := &ast.Literal{NodeBase: ast.NewNodeBase(p.tok)}
		p.next()
		return lit, true
	case p.got(token.IDENTIFIER), p.tok.Kind.IsBuiltin():
		if p.peek().Kind == token.LPAREN {
			if call, ok := p.tryParseCall(); ok {
				return call, true
			}
		}

		id := &ast.Identifier{NodeBase: ast.NewNodeBase(p.tok), Name: p.tok.Value}
		p.next()
		return id, true
	case p.got(token.LPAREN):
		p.next()

		expr, ok := p.parseExpr()
		if !ok || !p.assertAndNext(token.RPAREN) {
			return nil, false
		}

		return expr, true
	case p.got(token.EOF):
		p.reject()
	default:
		p.rejectWithMsg(report.CodeInvalidExpr, "expected expression, got `%s`", p.tok.Value)
	}

	return nil, false
}

// tryParseCall attempts to parse a call.  On failure, the parser is moved back
// to the callee and the errors of the attempt are discarded.
func (p *Parser) tryParseCall() (*ast.FunctionCall, bool) {
	start, diags := p.pos, p.diags
	p.diags = &report.Diagnostics{}

	call, ok := p.parseCall()

	p.diags = diags
	if !ok {
		p.rewind(start)
	}

	return call, ok
}

// call = (IDENT | BUILTIN) '(' [args] ')'
// args = expr {',' expr}
func (p *Parser) parseCall() (*ast.FunctionCall, bool) {
	call := &ast.FunctionCall{
		NodeBase: ast.NewNodeBase(p.tok),
		Name:     p.tok.Value,
		Args:     &ast.ArgList{},
	}
	p.next()

	if !p.assertAndNext(token.LPAREN) {
		return nil, false
	}

	if !p.got(token.RPAREN) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}

			call.Args.Args = append(call.Args.Args, arg)

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

	return call, true
}
