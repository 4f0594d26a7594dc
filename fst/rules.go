package fst

import "ngs/token"

// Unbounded is the MaxLength of rules without an upper length bound.
const Unbounded = -1

type opNode struct {
	kind token.Kind
	hint string
}

var binaryOperators = []opNode{
	{token.PLUS, "+"},
	{token.MINUS, "-"},
	{token.MULT, "*"},
	{token.DIV, "/"},
	{token.MOD, "%"},
	{token.POW, "^"},
	{token.GT, ">"},
	{token.LT, "<"},
	{token.GE, ">="},
	{token.LE, "<="},
	{token.EQ, "=="},
	{token.NE, "!="},
	{token.AND, "&&"},
	{token.OR, "||"},
}

var unaryOperators = []opNode{
	{token.MINUS, "-"},
	{token.PLUS, "+"},
	{token.NOT, "!"},
	{token.BIT_NOT, "~"},
}

var assignOperators = []opNode{
	{token.ASSIGN, "="},
	{token.PLUS_ASSIGN, "+="},
	{token.MINUS_ASSIGN, "-="},
	{token.MULT_ASSIGN, "*="},
	{token.DIV_ASSIGN, "/="},
}

// InitRules registers the default rule library.  The order of registration is
// significant: it breaks ties between equally long matches.
func (e *Engine) InitRules() {
	e.AddRule("variable_declaration", e.variableDeclChain(), 3, Unbounded)
	e.AddRule("function_call", e.callChain(token.IDENTIFIER, ""), 4, Unbounded)
	e.AddRule("builtin_function_call", e.callChain(token.ANY_BUILTIN, ""), 4, Unbounded)
	e.AddRule("assignment", e.assignmentChain(), 4, Unbounded)
	e.AddRule("do_while", e.doWhileChain(), 2, Unbounded)
	e.AddRule("function_declaration", e.functionDeclChain(), 6, Unbounded)
	e.AddRule("procedure_declaration", e.procedureDeclChain(), 6, Unbounded)
	e.AddRule("expression", e.expressionChain(), 3, 3)
	e.AddRule("return_statement", e.returnChain(), 2, Unbounded)
	e.AddRule("main_block", e.BuildChain(
		[]token.Kind{token.CES, token.LBRACE},
		[]string{"ces", "{"},
	), 2, 2)

	e.AddRule("string_assignment", e.BuildChain(
		[]token.Kind{token.IDENTIFIER, token.ASSIGN, token.STRING_LIT, token.SEMICOLON},
		[]string{"", "=", "", ";"},
	), 4, 4)

	e.AddRule("number_assignment", e.BuildChain(
		[]token.Kind{token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON},
		[]string{"", "=", "", ";"},
	), 4, 4)

	e.AddRule("unsigned_int_decl", e.BuildChain(
		[]token.Kind{token.EST, token.UNSIGNED, token.INT, token.IDENTIFIER, token.SEMICOLON},
		[]string{"est", "unsigned", "int", "", ";"},
	), 5, 5)

	e.AddRule("bool_decl", e.BuildChain(
		[]token.Kind{token.EST, token.BOOL, token.IDENTIFIER, token.SEMICOLON},
		[]string{"est", "bool", "", ";"},
	), 4, 4)

	e.AddRule("time_t_decl", e.BuildChain(
		[]token.Kind{token.EST, token.TIME_T, token.IDENTIFIER, token.SEMICOLON},
		[]string{"est", "time_t", "", ";"},
	), 4, 4)

	e.AddRule("symb_decl", e.BuildChain(
		[]token.Kind{token.EST, token.SYMB, token.IDENTIFIER, token.SEMICOLON},
		[]string{"est", "symb", "", ";"},
	), 4, 4)
}

// -----------------------------------------------------------------------------

// alternation builds one node per operator, each an alternative of the one
// before it.  Every operator node continues to next and the last alternative
// falls back to fallback.  It returns the first operator node.
func (e *Engine) alternation(ops []opNode, next, fallback Handle) Handle {
	first, prev := NoNode, NoNode
	for _, op := range ops {
		h := e.NewNode(op.kind, op.hint, false)
		e.Link(h, next)

		if prev == NoNode {
			first = h
		} else {
			e.SetAlternative(prev, h)
		}

		prev = h
	}

	e.SetAlternative(prev, fallback)
	return first
}

// exprNesting is the number of nested call and parenthesis levels the
// expression automaton describes.
const exprNesting = 2

// exprChain builds the automaton of an expression: operands, optionally
// prefixed by unary operators, separated by binary operators.  The expression
// continues to cont once no further binary operator follows.  If onEmpty is a
// node, it is taken when no expression starts at the current token.
//
//	expr    := {unary_op} operand {binary_op {unary_op} operand}
//	operand := ANY_OPERAND [call_args] | ANY_BUILTIN [call_args] | '(' expr ')'
//
// Calls and parenthesised expressions nest up to exprNesting levels.  The
// operand node is returned.  The chain is cyclic.
func (e *Engine) exprChain(cont, onEmpty Handle) Handle {
	return e.nestedExprChain(cont, onEmpty, exprNesting)
}

func (e *Engine) nestedExprChain(cont, onEmpty Handle, depth int) Handle {
	operand := e.NewNode(token.ANY_OPERAND, "", false)
	binops := e.alternation(binaryOperators, operand, cont)
	prefix := e.alternation(unaryOperators, operand, onEmpty)

	if depth == 0 {
		e.Link(operand, binops)
		e.SetAlternative(operand, prefix)
		return operand
	}

	// call suffix: '(' [expr {',' expr}] ')'
	callOpen := e.NewNode(token.LPAREN, "(", false)
	callClose := e.NewNode(token.RPAREN, ")", false)
	comma := e.NewNode(token.COMMA, ",", false)

	arg := e.nestedExprChain(comma, callClose, depth-1)
	e.Link(callOpen, arg)
	e.SetAlternative(callOpen, binops)
	e.Link(comma, arg)
	e.SetAlternative(comma, callClose)
	e.Link(callClose, binops)

	// parenthesised sub-expression
	groupOpen := e.NewNode(token.LPAREN, "(", false)
	groupClose := e.NewNode(token.RPAREN, ")", false)
	e.Link(groupOpen, e.nestedExprChain(groupClose, NoNode, depth-1))
	e.Link(groupClose, binops)

	builtin := e.NewNode(token.ANY_BUILTIN, "", false)
	e.Link(builtin, callOpen)

	e.SetAlternative(builtin, prefix)
	e.SetAlternative(groupOpen, builtin)
	e.SetAlternative(operand, groupOpen)
	e.Link(operand, callOpen)

	return operand
}

// variable_declaration := 'est' [type] ['int'] ident ['=' expr] ';'
func (e *Engine) variableDeclChain() Handle {
	c := e.buildChain(
		[]token.Kind{token.EST, token.ANY_TYPE_SPECIFIER, token.INT, token.IDENTIFIER, token.ASSIGN},
		[]string{"est", "", "int", "", "="},
	)
	semi := e.NewNode(token.SEMICOLON, ";", false)

	e.SetOptional(c[1], true)
	e.SetOptional(c[2], true)

	e.SetAlternative(c[4], semi)
	e.Link(c[4], e.exprChain(semi, NoNode))

	return c[0]
}

// call := callee '(' [expr {',' expr}] ')' ';'
func (e *Engine) callChain(callee token.Kind, hint string) Handle {
	c := e.buildChain([]token.Kind{callee, token.LPAREN}, []string{hint, "("})
	rparen := e.NewNode(token.RPAREN, ")", false)
	comma := e.NewNode(token.COMMA, ",", false)

	e.Link(rparen, e.NewNode(token.SEMICOLON, ";", false))
	e.SetAlternative(comma, rparen)

	arg := e.exprChain(comma, rparen)
	e.Link(comma, arg)
	e.Link(c[1], arg)

	return c[0]
}

// assignment := ident assign_op expr ';'
func (e *Engine) assignmentChain() Handle {
	target := e.NewNode(token.IDENTIFIER, "", false)
	semi := e.NewNode(token.SEMICOLON, ";", false)

	e.Link(target, e.alternation(assignOperators, e.exprChain(semi, NoNode), NoNode))
	return target
}

// do_while := 'do' (block | statement) ...
//
// Only the head of the loop is matched: the body of a do-while cannot be
// described by a flat chain.
func (e *Engine) doWhileChain() Handle {
	do := e.NewNode(token.DO, "do", false)

	e.Link(do, e.alternation([]opNode{
		{token.LBRACE, "{"},
		{token.IDENTIFIER, ""},
		{token.ANY_BUILTIN, ""},
		{token.EST, "est"},
		{token.DO, "do"},
		{token.RETURN, "return"},
		{token.SEMICOLON, ";"},
	}, NoNode, NoNode))

	return do
}

// paramsChain builds `[param {',' param}] ')' '{'` where a parameter is
// `type ['int'] ident`.  It returns the first node.
func (e *Engine) paramsChain() Handle {
	rparen := e.NewNode(token.RPAREN, ")", false)
	e.Link(rparen, e.NewNode(token.LBRACE, "{", false))

	p := e.buildChain(
		[]token.Kind{token.ANY_TYPE_SPECIFIER, token.INT, token.IDENTIFIER, token.COMMA},
		[]string{"", "int", "", ","},
	)

	e.SetAlternative(p[0], rparen)
	e.SetOptional(p[1], true)
	e.SetAlternative(p[3], rparen)
	e.Link(p[3], p[0])

	return p[0]
}

// function_declaration := type ['int'] 'algo' ident '(' params ')' '{' ...
func (e *Engine) functionDeclChain() Handle {
	c := e.buildChain(
		[]token.Kind{token.ANY_TYPE_SPECIFIER, token.INT, token.ALGO, token.IDENTIFIER, token.LPAREN},
		[]string{"", "int", "algo", "", "("},
	)

	e.SetOptional(c[1], true)
	e.Link(c[4], e.paramsChain())

	return c[0]
}

// procedure_declaration := 'procedure' 'algo' ident '(' params ')' '{' ...
func (e *Engine) procedureDeclChain() Handle {
	c := e.buildChain(
		[]token.Kind{token.PROCEDURE, token.ALGO, token.IDENTIFIER, token.LPAREN},
		[]string{"procedure", "algo", "", "("},
	)

	e.Link(c[3], e.paramsChain())
	return c[0]
}

// expression := operand binary_op operand
func (e *Engine) expressionChain() Handle {
	lhs := e.NewNode(token.ANY_OPERAND, "", false)
	rhs := e.NewNode(token.ANY_OPERAND, "", false)

	e.Link(lhs, e.alternation(binaryOperators[:6], rhs, NoNode))
	return lhs
}

// return_statement := 'return' [expr] ';'
func (e *Engine) returnChain() Handle {
	ret := e.NewNode(token.RETURN, "return", false)
	semi := e.NewNode(token.SEMICOLON, ";", false)

	e.Link(ret, e.exprChain(semi, semi))
	return ret
}
