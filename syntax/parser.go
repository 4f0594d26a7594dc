package syntax

import (
	"fmt"
	"ngs/ast"
	"ngs/fst"
	"ngs/report"
	"ngs/token"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse as well as any
// semantic actions they perform during parsing.

// PatternMode determines what the parser does with the structural pattern
// check it runs after each completed production.
type PatternMode int

// Enumeration of pattern modes.
const (
	PatternOff    PatternMode = iota // No pattern checks are run.
	PatternRecord                    // Checks are run and recorded (default).
	PatternStrict                    // A production matching no pattern is a syntax error.
)

var patternModeNames = map[PatternMode]string{
	PatternOff:    "off",
	PatternRecord: "record",
	PatternStrict: "strict",
}

func (pm PatternMode) String() string {
	return patternModeNames[pm]
}

// ParsePatternMode converts a pattern mode name into its enumerated value.
func ParsePatternMode(name string) (PatternMode, bool) {
	for mode, modeName := range patternModeNames {
		if modeName == name {
			return mode, true
		}
	}

	return PatternRecord, false
}

// ParserOptions configures a parser.
type ParserOptions struct {
	PatternMode PatternMode

	// Whether variable declarations are accepted at the top level.
	AllowGlobals bool
}

// PatternCheck is the outcome of a structural pattern check.
type PatternCheck struct {
	// The kind of production that was checked.
	Production ast.NodeKind

	// The token span of the production: [Start, End).
	Start, End int

	// Whether any rule matched at the start of the span.
	Matched bool

	// The best matching rule and its match length.
	Rule   string
	Length int
}

// -----------------------------------------------------------------------------

// Parser is the parser for a source file.  It is a recursive descent parser
// that acts as a state machine moving over the token stream and deciding what
// to parse based on the token it is currently positioned over and its context
// (implicit from the callstack of parsing functions).  All parsing functions
// assume that they begin with the parser centered on the first token of their
// production and must consume all tokens (including the last) of their
// production, leaving the parser on the next token.  Each parser owns the
// pattern engine its checks run against.
type Parser struct {
	toks []*token.Token

	// pos is the index of the current token; tok is the current token.
	pos int
	tok *token.Token

	opts   ParserOptions
	diags  *report.Diagnostics
	engine *fst.Engine

	prog   *ast.Program
	checks []PatternCheck
}

// NewParser creates a new parser over a token stream.  Diagnostics are
// appended to diags.  If the stream does not end with an EOF token, one is
// added.
func NewParser(toks []*token.Token, opts ParserOptions, diags *report.Diagnostics) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		eof := &token.Token{Kind: token.EOF}
		if len(toks) > 0 {
			last := toks[len(toks)-1]
			eof.Line, eof.Col = last.Line, last.Col+len(last.Value)
			eof.Index = last.Index + len(last.Value)
		}

		toks = append(toks[:len(toks):len(toks)], eof)
	}

	engine := fst.NewEngine()
	engine.InitRules()

	return &Parser{
		toks:   toks,
		tok:    toks[0],
		opts:   opts,
		diags:  diags,
		engine: engine,
	}
}

// Parse parses the token stream into a program.  It returns true if and only
// if a complete program was built without any syntax errors.
func (p *Parser) Parse() bool {
	if prog, ok := p.parseProgram(); ok {
		p.prog = prog
		return true
	}

	return false
}

// AST returns the parsed program.  It is nil unless Parse succeeded.
func (p *Parser) AST() *ast.Program {
	return p.prog
}

// PatternChecks returns the recorded pattern checks in the order the
// productions completed.
func (p *Parser) PatternChecks() []PatternCheck {
	return p.checks
}

// Engine returns the parser's pattern engine.
func (p *Parser) Engine() *fst.Engine {
	return p.engine
}

// Close releases the parser's pattern rules.  It returns the number of
// released pattern nodes.
func (p *Parser) Close() int {
	return p.engine.Cleanup()
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past the
// EOF token.
func (p *Parser) next() {
	if p.pos < len(p.toks)-1 {
		p.pos++
		p.tok = p.toks[p.pos]
	}
}

// peek returns the token after the current token.
func (p *Parser) peek() *token.Token {
	if p.pos < len(p.toks)-1 {
		return p.toks[p.pos+1]
	}

	return p.tok
}

// rewind moves the parser back to a saved position.
func (p *Parser) rewind(pos int) {
	p.pos = pos
	p.tok = p.toks[pos]
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.  It returns a boolean indicating whether or not the parser is
// on a matching token kind (and should continue).
func (p *Parser) assert(kind token.Kind) bool {
	if p.got(kind) {
		return true
	}

	p.rejectWithMsg(report.CodeUnexpectedToken, "expected `%s`, got %s", token.Spelling(kind), p.describe(p.tok))
	return false
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind token.Kind) bool {
	if p.assert(kind) {
		p.next()
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// describe renders a token for use in an error message.
func (p *Parser) describe(tok *token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}

	return fmt.Sprintf("`%s`", tok.Value)
}

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.got(token.EOF) {
		p.rejectWithMsg(report.CodeUnexpectedToken, "unexpected end of file")
	} else {
		p.rejectWithMsg(report.CodeUnexpectedToken, "unexpected token: `%s`", p.tok.Value)
	}
}

// rejectWithMsg rejects the current token with a specific message.  The
// function takes a message and arguments to format into it.
func (p *Parser) rejectWithMsg(code int, msg string, a ...interface{}) {
	p.errorOn(p.tok, code, msg, a...)
}

// errorOn reports an error on a given token.  The function takes a message and
// arguments to format into it.
func (p *Parser) errorOn(tok *token.Token, code int, msg string, a ...interface{}) {
	p.diags.Error(code, tok.Line, tok.Col, tok.Value, msg, a...)
}

// -----------------------------------------------------------------------------

// checkPattern runs the structural pattern check over the tokens consumed
// since start.  It returns false if the production should be rejected.
func (p *Parser) checkPattern(production ast.NodeKind, start int) bool {
	if p.opts.PatternMode == PatternOff || start >= p.pos {
		return true
	}

	check := PatternCheck{
		Production: production,
		Start:      start,
		End:        p.pos,
	}

	if m, ok := p.engine.BestRule(p.toks[start:p.pos], 0); ok {
		check.Matched = true
		check.Rule = m.Rule.Name
		check.Length = m.Length
	}

	p.checks = append(p.checks, check)

	if !check.Matched && p.opts.PatternMode == PatternStrict {
		p.errorOn(p.toks[start], report.CodePatternMismatch, "construct does not match any structural pattern")
		return false
	}

	return true
}
