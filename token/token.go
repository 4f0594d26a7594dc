package token

import "fmt"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind Kind

	// The string value of the token.  For string and character literals this
	// is the decoded text without the surrounding quotes.
	Value string

	// The 1-indexed line and column the token begins on.
	Line, Col int

	// The byte offset of the token within the source text.
	Index int

	// Numeric payload of NUMBER tokens.  IntValue is set for integer literals
	// (decimal, hex and octal), FloatValue for floating literals.  Character
	// literals store the code of their first character in IntValue.
	IntValue   int64
	FloatValue float64

	// Radix and float flags of NUMBER tokens.
	IsHex, IsOctal, IsFloat bool
}

// String returns a compact description of the token used in debug output.
func (t *Token) String() string {
	return fmt.Sprintf("%s(%q) @ %d:%d", t.Kind, t.Value, t.Line, t.Col)
}

// Kind is the closed enumeration of token kinds.
type Kind int

// Enumeration of token kinds.
const (
	PROCEDURE Kind = iota
	ALGO
	BOOL
	UNSIGNED
	INT
	STRING
	TIME_T
	CES
	EST
	DO
	WHILE
	RETURN
	SYMB
	IF
	ELSE

	BUILTIN_PROCLAIM
	BUILTIN_TO_STR
	BUILTIN_TIME_FLED
	BUILTIN_THIS_VERY_MOMENT
	BUILTIN_UNITE
	BUILTIN_SUM4

	IDENTIFIER
	NUMBER
	STRING_LIT
	CHAR_LIT
	TRUE
	FALSE

	PLUS
	MINUS
	MULT
	DIV
	MOD
	ASSIGN
	GT
	LT
	GE
	LE
	EQ
	NE
	POW
	AND
	OR
	NOT
	BIT_AND
	BIT_OR
	BIT_XOR
	BIT_NOT
	INCREMENT
	DECREMENT
	PLUS_ASSIGN
	MINUS_ASSIGN
	MULT_ASSIGN
	DIV_ASSIGN

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	COLON
	DOT

	EOF
	ERROR
	COMMENT

	// Pattern wildcards.  These are never produced by the lexer: they only
	// appear as the expected kind of a pattern-chain node.
	ANY_TYPE_SPECIFIER
	ANY_BUILTIN
	ANY_OPERAND
)

var kindNames = [...]string{
	PROCEDURE: "PROCEDURE",
	ALGO:      "ALGO",
	BOOL:      "BOOL",
	UNSIGNED:  "UNSIGNED",
	INT:       "INT",
	STRING:    "STRING",
	TIME_T:    "TIME_T",
	CES:       "CES",
	EST:       "EST",
	DO:        "DO",
	WHILE:     "WHILE",
	RETURN:    "RETURN",
	SYMB:      "SYMB",
	IF:        "IF",
	ELSE:      "ELSE",

	BUILTIN_PROCLAIM:         "PROCLAIM",
	BUILTIN_TO_STR:           "TO_STR",
	BUILTIN_TIME_FLED:        "TIME_FLED",
	BUILTIN_THIS_VERY_MOMENT: "THIS_VERY_MOMENT",
	BUILTIN_UNITE:            "UNITE",
	BUILTIN_SUM4:             "SUM4",

	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING_LIT: "STRING_LIT",
	CHAR_LIT:   "CHAR_LIT",
	TRUE:       "TRUE",
	FALSE:      "FALSE",

	PLUS:         "PLUS",
	MINUS:        "MINUS",
	MULT:         "MULT",
	DIV:          "DIV",
	MOD:          "MOD",
	ASSIGN:       "ASSIGN",
	GT:           "GT",
	LT:           "LT",
	GE:           "GE",
	LE:           "LE",
	EQ:           "EQ",
	NE:           "NE",
	POW:          "POW",
	AND:          "AND",
	OR:           "OR",
	NOT:          "NOT",
	BIT_AND:      "BIT_AND",
	BIT_OR:       "BIT_OR",
	BIT_XOR:      "BIT_XOR",
	BIT_NOT:      "BIT_NOT",
	INCREMENT:    "INCREMENT",
	DECREMENT:    "DECREMENT",
	PLUS_ASSIGN:  "PLUS_ASSIGN",
	MINUS_ASSIGN: "MINUS_ASSIGN",
	MULT_ASSIGN:  "MULT_ASSIGN",
	DIV_ASSIGN:   "DIV_ASSIGN",

	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	SEMICOLON: "SEMICOLON",
	COMMA:     "COMMA",
	COLON:     "COLON",
	DOT:       "DOT",

	EOF:     "EOF",
	ERROR:   "ERROR",
	COMMENT: "COMMENT",

	ANY_TYPE_SPECIFIER: "ANY_TYPE_SPECIFIER",
	ANY_BUILTIN:        "ANY_BUILTIN",
	ANY_OPERAND:        "ANY_OPERAND",
}

// String returns the display name of the kind used in diagnostics.
func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// -----------------------------------------------------------------------------

// IsTypeSpecifier returns whether the kind is one of the primitive type
// keywords.  `unsigned` counts since it begins the `unsigned int` type.
func (k Kind) IsTypeSpecifier() bool {
	switch k {
	case INT, UNSIGNED, BOOL, STRING, TIME_T, SYMB:
		return true
	}

	return false
}

// IsBuiltin returns whether the kind is a builtin-function marker.
func (k Kind) IsBuiltin() bool {
	return BUILTIN_PROCLAIM <= k && k <= BUILTIN_SUM4
}

// IsAssignOp returns whether the kind is one of the assignment-family
// operators.
func (k Kind) IsAssignOp() bool {
	switch k {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, MULT_ASSIGN, DIV_ASSIGN:
		return true
	}

	return false
}

// IsLiteral returns whether the kind is a literal token.
func (k Kind) IsLiteral() bool {
	switch k {
	case NUMBER, STRING_LIT, CHAR_LIT, TRUE, FALSE:
		return true
	}

	return false
}

// IsOperand returns whether a token of this kind can stand alone as an
// expression operand: a literal or an identifier.
func (k Kind) IsOperand() bool {
	return k == IDENTIFIER || k.IsLiteral()
}
