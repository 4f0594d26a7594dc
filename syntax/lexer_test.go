package syntax

import (
	"errors"
	"ngs/report"
	"ngs/token"
	"strings"
	"testing"
)

func lex(t *testing.T, src string) []*token.Token {
	t.Helper()

	toks, err := Tokenize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %s", src, err)
	}

	return toks
}

func kindsOf(toks []*token.Token) []token.Kind {
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"declaration", "est int x = 5;", []token.Kind{
			token.EST, token.INT, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF,
		}},
		{"longest_symbol", "a<=b&&!c", []token.Kind{
			token.IDENTIFIER, token.LE, token.IDENTIFIER, token.AND, token.NOT, token.IDENTIFIER, token.EOF,
		}},
		{"compound_assign", "x /= 2; y -= 1", []token.Kind{
			token.IDENTIFIER, token.DIV_ASSIGN, token.NUMBER, token.SEMICOLON,
			token.IDENTIFIER, token.MINUS_ASSIGN, token.NUMBER, token.EOF,
		}},
		{"comments", "// line\n/* block\n comment */ a / b", []token.Kind{
			token.IDENTIFIER, token.DIV, token.IDENTIFIER, token.EOF,
		}},
		{"builtins", "proclaim TimeFled ThisVeryMoment sum4 proclaimer", []token.Kind{
			token.BUILTIN_PROCLAIM, token.BUILTIN_TIME_FLED, token.BUILTIN_THIS_VERY_MOMENT,
			token.BUILTIN_SUM4, token.IDENTIFIER, token.EOF,
		}},
		{"keywords", "procedure algo unsigned time_t symb ces do while return true false", []token.Kind{
			token.PROCEDURE, token.ALGO, token.UNSIGNED, token.TIME_T, token.SYMB, token.CES,
			token.DO, token.WHILE, token.RETURN, token.TRUE, token.FALSE, token.EOF,
		}},
		{"empty", "  \n\t ", []token.Kind{token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kindsOf(lex(t, tt.src))
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kinds = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	toks := lex(t, "ces {\n  x += 1;\n}")

	tests := []struct {
		index     int
		value     string
		line, col int
	}{
		{0, "ces", 1, 1},
		{1, "{", 1, 5},
		{2, "x", 2, 3},
		{3, "+=", 2, 5},
		{4, "1", 2, 8},
		{6, "}", 3, 1},
	}

	for _, tt := range tests {
		tok := toks[tt.index]
		if tok.Value != tt.value || tok.Line != tt.line || tok.Col != tt.col {
			t.Errorf("token %d = %q at %d:%d, want %q at %d:%d",
				tt.index, tok.Value, tok.Line, tok.Col, tt.value, tt.line, tt.col)
		}
	}

	if toks[2].Index != 8 {
		t.Errorf("offset of `x` = %d, want 8", toks[2].Index)
	}
}

func TestLexLiterals(t *testing.T) {
	t.Run("hex", func(t *testing.T) {
		tok := lex(t, "0x1F")[0]
		if !tok.IsHex || tok.IntValue != 31 {
			t.Errorf("0x1F = %d (hex: %v), want 31", tok.IntValue, tok.IsHex)
		}
	})

	t.Run("octal", func(t *testing.T) {
		tok := lex(t, "0xx17")[0]
		if !tok.IsOctal || tok.IntValue != 15 {
			t.Errorf("0xx17 = %d (octal: %v), want 15", tok.IntValue, tok.IsOctal)
		}
	})

	t.Run("float", func(t *testing.T) {
		tok := lex(t, "1.5e3")[0]
		if !tok.IsFloat || tok.FloatValue != 1500 {
			t.Errorf("1.5e3 = %v (float: %v), want 1500", tok.FloatValue, tok.IsFloat)
		}
	})

	t.Run("decimal", func(t *testing.T) {
		tok := lex(t, "042")[0]
		if tok.IsFloat || tok.IsHex || tok.IsOctal || tok.IntValue != 42 {
			t.Errorf("042 = %+v, want plain 42", tok)
		}
	})

	t.Run("string", func(t *testing.T) {
		tok := lex(t, `"a\tb\"c"`)[0]
		if tok.Kind != token.STRING_LIT || tok.Value != "a\tb\"c" {
			t.Errorf("string = %s %q", tok.Kind, tok.Value)
		}
	})

	t.Run("char", func(t *testing.T) {
		tok := lex(t, `'z'`)[0]
		if tok.Kind != token.CHAR_LIT || tok.Value != "z" || tok.IntValue != 'z' {
			t.Errorf("char = %s %q %d", tok.Kind, tok.Value, tok.IntValue)
		}
	})

	t.Run("escaped_char", func(t *testing.T) {
		tok := lex(t, `'\n'`)[0]
		if tok.Value != "\n" || tok.IntValue != '\n' {
			t.Errorf("escaped char = %q %d", tok.Value, tok.IntValue)
		}
	})
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		code      int
		line, col int
	}{
		{"unknown_char", "est x = @;", report.CodeUnknownChar, 1, 9},
		{"unclosed_string", `x = "abc`, report.CodeUnclosedString, 1, 5},
		{"string_newline", "\"ab\ncd\"", report.CodeUnclosedString, 1, 1},
		{"empty_char", "''", report.CodeUnclosedChar, 1, 1},
		{"multi_char", "'ab'", report.CodeUnclosedChar, 1, 1},
		{"empty_hex", "0x;", report.CodeMalformedNumber, 1, 1},
		{"empty_exponent", "\n  1e+", report.CodeMalformedNumber, 2, 3},
		{"unknown_escape", `"\q"`, report.CodeUnknownEscape, 1, 1},
		{"out_of_range", "99999999999999999999", report.CodeNumberOutOfRange, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected a lexical error")
			}

			var lce *report.LocalCompileError
			if !errors.As(err, &lce) {
				t.Fatalf("error %v is not a *LocalCompileError", err)
			}

			if lce.Code != tt.code || lce.Line != tt.line || lce.Col != tt.col {
				t.Errorf("error = %d at %d:%d, want %d at %d:%d",
					lce.Code, lce.Line, lce.Col, tt.code, tt.line, tt.col)
			}

			if report.ClassOf(lce.Code) != "Lexical" {
				t.Errorf("class = %s, want Lexical", report.ClassOf(lce.Code))
			}
		})
	}
}
