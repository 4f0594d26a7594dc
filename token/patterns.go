package token

// Keywords maps keyword strings (patterns) to their keyword token kind.
var Keywords = map[string]Kind{
	"procedure": PROCEDURE,
	"algo":      ALGO,

	"bool":     BOOL,
	"unsigned": UNSIGNED,
	"int":      INT,
	"string":   STRING,
	"time_t":   TIME_T,
	"symb":     SYMB,

	"ces": CES,
	"est": EST,

	"do":     DO,
	"while":  WHILE,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,

	"true":  TRUE,
	"false": FALSE,
}

// Builtins maps the names of the builtin library functions to their marker
// token kind.
var Builtins = map[string]Kind{
	"proclaim":       BUILTIN_PROCLAIM,
	"to_str":         BUILTIN_TO_STR,
	"TimeFled":       BUILTIN_TIME_FLED,
	"ThisVeryMoment": BUILTIN_THIS_VERY_MOMENT,
	"unite":          BUILTIN_UNITE,
	"sum4":           BUILTIN_SUM4,
}

// Symbols maps symbol strings (patterns) to their punctuation/operator token
// kind.  Every prefix of a multi-character symbol is itself a symbol.
var Symbols = map[string]Kind{
	"+":  PLUS,
	"++": INCREMENT,
	"+=": PLUS_ASSIGN,
	"-":  MINUS,
	"--": DECREMENT,
	"-=": MINUS_ASSIGN,
	"*":  MULT,
	"*=": MULT_ASSIGN,
	"/":  DIV,
	"/=": DIV_ASSIGN,
	"%":  MOD,
	"^":  POW,

	"=":  ASSIGN,
	"==": EQ,
	"!":  NOT,
	"!=": NE,
	">":  GT,
	">=": GE,
	"<":  LT,
	"<=": LE,

	"&":  BIT_AND,
	"&&": AND,
	"|":  BIT_OR,
	"||": OR,
	"~":  BIT_NOT,

	"(": LPAREN,
	")": RPAREN,
	"{": LBRACE,
	"}": RBRACE,
	"[": LBRACKET,
	"]": RBRACKET,
	";": SEMICOLON,
	",": COMMA,
	":": COLON,
	".": DOT,
}

// Lookup classifies an identifier-shaped word as a keyword, a builtin marker,
// or a plain identifier.
func Lookup(word string) Kind {
	if kind, ok := Keywords[word]; ok {
		return kind
	}

	if kind, ok := Builtins[word]; ok {
		return kind
	}

	return IDENTIFIER
}

// spellings maps keyword and symbol kinds back to their source text.
var spellings = make(map[Kind]string)

func init() {
	for text, kind := range Keywords {
		spellings[kind] = text
	}

	for text, kind := range Symbols {
		spellings[kind] = text
	}

	for text, kind := range Builtins {
		spellings[kind] = text
	}
}

// Spelling returns the source text of a keyword, builtin or symbol kind.  All
// other kinds are described by a lower case rendering of their name.
func Spelling(kind Kind) string {
	if text, ok := spellings[kind]; ok {
		return text
	}

	switch kind {
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING_LIT:
		return "string literal"
	case CHAR_LIT:
		return "character literal"
	case EOF:
		return "end of file"
	}

	return kind.String()
}
