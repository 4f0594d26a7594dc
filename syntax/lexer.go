package syntax

import (
	"bufio"
	"io"
	"ngs/report"
	"ngs/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	// The 1-indexed position of the next rune and its byte offset.
	line, col, offset int

	// The position at which the current token starts.
	startLine, startCol, startOffset int
}

// NewLexer creates a new lexer reading from r.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		file:    bufio.NewReader(r),
		tokBuff: &strings.Builder{},
		line:    1,
		col:     1,
	}
}

// Tokenize lexes the whole of r.  The returned stream always ends with an EOF
// token.  Lexing stops at the first lexical error.
func Tokenize(r io.Reader) ([]*token.Token, error) {
	l := NewLexer(r)

	var toks []*token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*token.Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				return tok, err
			}
		case '\'':
			return l.lexCharLit()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(token.EOF), nil
}

// -----------------------------------------------------------------------------

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (*token.Token, error) {
	l.mark()
	c, _ := l.eat()

	kind, ok := token.Symbols[l.tokBuff.String()]
	if !ok {
		return nil, l.raise(report.CodeUnknownChar, "unknown character `%c`", c)
	}

	return l.extendSymbol(kind)
}

// extendSymbol grows the symbol in the token buffer for as long as it remains
// a valid symbol so that the longest symbol is always matched.
func (l *Lexer) extendSymbol(kind token.Kind) (*token.Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := token.Symbols[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// lexIdentOrKeyword lexes an identifier, a keyword or a builtin name.
func (l *Lexer) lexIdentOrKeyword() (*token.Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	return l.makeToken(token.Lookup(l.tokBuff.String())), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes a numeric literal: a decimal integer, a float, a hex
// integer (`0x1F`) or an octal integer (`0xx17`).
func (l *Lexer) lexNumericLit() (*token.Token, error) {
	l.mark()
	c, _ := l.eat()

	base := 10
	if c == '0' {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == 'x' || c == 'X' {
			l.eat()
			base = 16

			c, err = l.peek()
			if err != nil {
				return nil, err
			}

			if c == 'x' {
				l.eat()
				base = 8
			}
		}
	}

	if base != 10 {
		return l.lexRadixLit(base)
	}

	isFloat := false
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(c) {
			l.eat()
		} else if c == '.' && !isFloat {
			l.eat()
			isFloat = true
		} else {
			break
		}
	}

	// exponent part
	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c == 'e' || c == 'E' {
		l.eat()
		isFloat = true

		if c, err = l.peek(); err != nil {
			return nil, err
		} else if c == '+' || c == '-' {
			l.eat()
		}

		hasDigit := false
		for {
			if c, err = l.peek(); err != nil {
				return nil, err
			} else if !isDecimalDigit(c) {
				break
			}

			l.eat()
			hasDigit = true
		}

		if !hasDigit {
			return nil, l.raise(report.CodeMalformedNumber, "incomplete exponent in numeric literal `%s`", l.tokBuff.String())
		}
	}

	text := l.tokBuff.String()
	tok := l.makeToken(token.NUMBER)

	if isFloat {
		tok.IsFloat = true
		tok.FloatValue, err = strconv.ParseFloat(text, 64)
	} else {
		tok.IntValue, err = strconv.ParseInt(text, 10, 64)
	}

	if err != nil {
		return nil, l.numberError(tok, err)
	}

	return tok, nil
}

// lexRadixLit lexes the digits of a hex or octal literal whose prefix has
// already been consumed.
func (l *Lexer) lexRadixLit(base int) (*token.Token, error) {
	digitStart := l.tokBuff.Len()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if (base == 16 && isHexDigit(c)) || (base == 8 && isOctalDigit(c)) {
			l.eat()
		} else {
			break
		}
	}

	text := l.tokBuff.String()
	if len(text) == digitStart {
		return nil, l.raise(report.CodeMalformedNumber, "incomplete numeric literal `%s`", text)
	}

	tok := l.makeToken(token.NUMBER)
	tok.IsHex = base == 16
	tok.IsOctal = base == 8

	var err error
	if tok.IntValue, err = strconv.ParseInt(text[digitStart:], base, 64); err != nil {
		return nil, l.numberError(tok, err)
	}

	return tok, nil
}

// numberError converts a numeric conversion error into a lexical error.
func (l *Lexer) numberError(tok *token.Token, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return report.Raise(report.CodeNumberOutOfRange, tok.Line, tok.Col, "numeric value out of range: `%s`", tok.Value)
	}

	return report.Raise(report.CodeMalformedNumber, tok.Line, tok.Col, "malformed numeric literal: `%s`", tok.Value)
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.  The token value holds the decoded text
// without its quotes.
func (l *Lexer) lexStringLit() (*token.Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, l.raise(report.CodeUnclosedString, "unclosed string literal")
		case '"':
			l.skip()
			return l.makeToken(token.STRING_LIT), nil
		case '\\':
			l.skip()
			if err = l.eatEscapeSequence(); err != nil {
				return nil, err
			}
		case '\n':
			return nil, l.raise(report.CodeUnclosedString, "string literal cannot contain a newline")
		default:
			l.eat()
		}
	}
}

// lexCharLit lexes a character literal.
func (l *Lexer) lexCharLit() (*token.Token, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case -1:
		return nil, l.raise(report.CodeUnclosedChar, "unclosed character literal")
	case '\'':
		return nil, l.raise(report.CodeUnclosedChar, "empty character literal")
	case '\n':
		return nil, l.raise(report.CodeUnclosedChar, "character literal cannot contain a newline")
	case '\\':
		l.skip()
		if err = l.eatEscapeSequence(); err != nil {
			return nil, err
		}
	default:
		l.eat()
	}

	c, err = l.skip()
	if err != nil {
		return nil, err
	} else if c == -1 {
		return nil, l.raise(report.CodeUnclosedChar, "unclosed character literal")
	} else if c != '\'' {
		return nil, l.raise(report.CodeUnclosedChar, "character literal cannot contain multiple characters")
	}

	tok := l.makeToken(token.CHAR_LIT)
	if r, _ := utf8.DecodeRuneInString(tok.Value); r != utf8.RuneError {
		tok.IntValue = int64(r)
	}

	return tok, nil
}

// escapes maps escape codes to the runes they denote.
var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// eatEscapeSequence decodes an escape sequence into the token buffer.  This
// assumes the leading `\` has already been skipped.
func (l *Lexer) eatEscapeSequence() error {
	c, err := l.skip()
	if err != nil {
		return err
	}

	if c == -1 {
		return l.raise(report.CodeUnknownEscape, "expected escape sequence not end of file")
	}

	if r, ok := escapes[c]; ok {
		l.tokBuff.WriteRune(r)
		return nil
	}

	return l.raise(report.CodeUnknownEscape, "unknown escape sequence: `\\%c`", c)
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.
func (l *Lexer) lexCommentOrDiv() (*token.Token, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case '/':
		for ; err == nil && c != '\n' && c != -1; c, err = l.skip() {
		}
	case '*':
		l.skip()

		for {
			c, err = l.skip()
			if err != nil || c == -1 {
				break
			}

			if c == '*' {
				if c, err = l.peek(); err != nil {
					break
				} else if c == '/' {
					l.skip()
					break
				}
			}
		}
	default:
		l.tokBuff.WriteRune('/')
		return l.extendSymbol(token.DIV)
	}

	return nil, err
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
	l.startOffset = l.offset
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind token.Kind) *token.Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &token.Token{
		Kind:  kind,
		Value: value,
		Line:  l.startLine,
		Col:   l.startCol,
		Index: l.startOffset,
	}
}

// raise creates a lexical error positioned at the start of the current token.
func (l *Lexer) raise(code int, msg string, args ...interface{}) error {
	l.tokBuff.Reset()
	return report.Raise(code, l.startLine, l.startCol, msg, args...)
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, err := l.skip()
	if err != nil || c == -1 {
		return c, err
	}

	l.tokBuff.WriteRune(c)
	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, size, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.offset += size
	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isOctalDigit returns whether c is an octal digit.
func isOctalDigit(c rune) bool {
	return '0' <= c && c <= '7'
}

// isHexDigit returns whether c is a hexadecimal digit.
func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
