package fst

import (
	"ngs/token"
	"reflect"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func toks(kinds ...token.Kind) []*token.Token {
	out := make([]*token.Token, len(kinds))
	for i, k := range kinds {
		out[i] = &token.Token{Kind: k, Line: 1, Col: i + 1}
	}
	return out
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	e.InitRules()
	if len(e.Rules()) == 0 {
		t.Fatal("InitRules registered no rules")
	}
	return e
}

// ----------------------------------------------------------------------------
// Chain matching

func TestMatchChain(t *testing.T) {
	tests := []struct {
		name    string
		build   func(e *Engine) Handle
		input   []*token.Token
		wantOK  bool
		wantLen int
	}{
		{
			name: "straight",
			build: func(e *Engine) Handle {
				return e.BuildChain([]token.Kind{token.EST, token.INT, token.IDENTIFIER, token.SEMICOLON}, nil)
			},
			input:   toks(token.EST, token.INT, token.IDENTIFIER, token.SEMICOLON),
			wantOK:  true,
			wantLen: 4,
		},
		{
			name: "leftover_tokens_ignored",
			build: func(e *Engine) Handle {
				return e.BuildChain([]token.Kind{token.CES, token.LBRACE}, nil)
			},
			input:   toks(token.CES, token.LBRACE, token.RBRACE),
			wantOK:  true,
			wantLen: 2,
		},
		{
			name: "mismatch",
			build: func(e *Engine) Handle {
				return e.BuildChain([]token.Kind{token.EST, token.INT}, nil)
			},
			input: toks(token.EST, token.BOOL),
		},
		{
			name: "chain_longer_than_input",
			build: func(e *Engine) Handle {
				return e.BuildChain([]token.Kind{token.EST, token.INT, token.IDENTIFIER}, nil)
			},
			input: toks(token.EST, token.INT),
		},
		{
			name: "optional_skipped",
			build: func(e *Engine) Handle {
				c := e.buildChain([]token.Kind{token.EST, token.INT, token.IDENTIFIER}, nil)
				e.SetOptional(c[1], true)
				return c[0]
			},
			input:   toks(token.EST, token.IDENTIFIER),
			wantOK:  true,
			wantLen: 2,
		},
		{
			name: "trailing_optional",
			build: func(e *Engine) Handle {
				c := e.buildChain([]token.Kind{token.RETURN, token.IDENTIFIER, token.SEMICOLON}, nil)
				e.SetOptional(c[1], true)
				e.SetOptional(c[2], true)
				return c[0]
			},
			input:   toks(token.RETURN),
			wantOK:  true,
			wantLen: 1,
		},
		{
			name: "alternative_taken",
			build: func(e *Engine) Handle {
				c := e.buildChain([]token.Kind{token.IDENTIFIER, token.ASSIGN, token.NUMBER}, nil)
				alt := e.NewNode(token.PLUS_ASSIGN, "+=", false)
				e.Link(alt, c[2])
				e.SetAlternative(c[1], alt)
				return c[0]
			},
			input:   toks(token.IDENTIFIER, token.PLUS_ASSIGN, token.NUMBER),
			wantOK:  true,
			wantLen: 3,
		},
		{
			name: "optional_wins_over_alternative",
			build: func(e *Engine) Handle {
				c := e.buildChain([]token.Kind{token.IDENTIFIER, token.ASSIGN, token.NUMBER}, nil)
				alt := e.NewNode(token.SEMICOLON, ";", false)
				e.SetOptional(c[1], true)
				e.SetAlternative(c[1], alt)
				return c[0]
			},
			input: toks(token.IDENTIFIER, token.SEMICOLON),
		},
		{
			name: "wildcards",
			build: func(e *Engine) Handle {
				return e.BuildChain([]token.Kind{token.ANY_BUILTIN, token.ANY_TYPE_SPECIFIER, token.ANY_OPERAND}, nil)
			},
			input:   toks(token.BUILTIN_SUM4, token.SYMB, token.STRING_LIT),
			wantOK:  true,
			wantLen: 3,
		},
		{
			name: "operand_wildcard_rejects_operators",
			build: func(e *Engine) Handle {
				return e.BuildChain([]token.Kind{token.ANY_OPERAND}, nil)
			},
			input: toks(token.PLUS),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			ok, n := e.MatchChain(tt.build(e), tt.input, 0)
			if ok != tt.wantOK || n != tt.wantLen {
				t.Errorf("MatchChain = (%v, %d), want (%v, %d)", ok, n, tt.wantOK, tt.wantLen)
			}
		})
	}
}

func TestMatchChainMalformed(t *testing.T) {
	e := NewEngine()
	start := e.BuildChain([]token.Kind{token.CES}, nil)

	if ok, _ := e.MatchChain(Handle(42), toks(token.CES), 0); ok {
		t.Error("dangling start handle matched")
	}

	if ok, _ := e.MatchChain(NoNode, toks(token.CES), 0); ok {
		t.Error("NoNode start matched")
	}

	if ok, _ := e.MatchChain(start, toks(token.CES), 1); ok {
		t.Error("match past the end of the input")
	}

	if ok, _ := e.MatchChain(start, nil, 0); ok {
		t.Error("match against empty input")
	}

	if start := e.BuildChain(nil, nil); start != NoNode {
		t.Errorf("BuildChain(nil) = %d, want NoNode", start)
	}
}

func TestMatchChainCycles(t *testing.T) {
	t.Run("optional_self_loop", func(t *testing.T) {
		e := NewEngine()
		h := e.NewNode(token.COMMA, ",", true)
		e.Link(h, h)

		if ok, _ := e.MatchChain(h, toks(token.SEMICOLON), 0); ok {
			t.Error("non-consuming self loop matched")
		}
	})

	t.Run("alternative_ring", func(t *testing.T) {
		e := NewEngine()
		a := e.NewNode(token.PLUS, "+", false)
		b := e.NewNode(token.MINUS, "-", false)
		e.SetAlternative(a, b)
		e.SetAlternative(b, a)

		if ok, _ := e.MatchChain(a, toks(token.MULT), 0); ok {
			t.Error("alternative ring matched")
		}
	})

	t.Run("consuming_loop", func(t *testing.T) {
		e := NewEngine()
		c := e.buildChain([]token.Kind{token.IDENTIFIER, token.COMMA}, nil)
		end := e.NewNode(token.SEMICOLON, ";", false)
		e.Link(c[1], c[0])
		e.SetAlternative(c[1], end)

		input := toks(token.IDENTIFIER, token.COMMA, token.IDENTIFIER, token.COMMA, token.IDENTIFIER, token.SEMICOLON)
		if ok, n := e.MatchChain(c[0], input, 0); !ok || n != 6 {
			t.Errorf("MatchChain = (%v, %d), want (true, 6)", ok, n)
		}
	})
}

// ----------------------------------------------------------------------------
// Rule library

func TestRuleBounds(t *testing.T) {
	e := NewEngine()
	rule := e.AddRule("short", e.BuildChain([]token.Kind{token.IDENTIFIER, token.ASSIGN, token.NUMBER}, nil), 1, 2)

	if ok, _ := e.MatchRule(rule, toks(token.IDENTIFIER, token.ASSIGN, token.NUMBER), 0); ok {
		t.Error("rule matched beyond its maximum length")
	}

	rule.MaxLength = Unbounded
	if ok, n := e.MatchRule(rule, toks(token.IDENTIFIER, token.ASSIGN, token.NUMBER), 0); !ok || n != 3 {
		t.Errorf("MatchRule = (%v, %d), want (true, 3)", ok, n)
	}

	rule.MinLength = 4
	if ok, _ := e.MatchRule(rule, toks(token.IDENTIFIER, token.ASSIGN, token.NUMBER), 0); ok {
		t.Error("rule matched below its minimum length")
	}
}

func TestDefaultRules(t *testing.T) {
	tests := []struct {
		name     string
		input    []*token.Token
		wantBest string
		wantLen  int
	}{
		{
			"var_decl_with_init",
			toks(token.EST, token.INT, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON),
			"variable_declaration", 6,
		},
		{
			"var_decl_unsigned",
			toks(token.EST, token.UNSIGNED, token.INT, token.IDENTIFIER, token.SEMICOLON),
			"variable_declaration", 5,
		},
		{
			"var_decl_untyped_expr",
			toks(token.EST, token.IDENTIFIER, token.ASSIGN, token.MINUS, token.NUMBER, token.PLUS, token.IDENTIFIER, token.SEMICOLON),
			"variable_declaration", 8,
		},
		{
			"call_with_args",
			toks(token.IDENTIFIER, token.LPAREN, token.NUMBER, token.COMMA, token.IDENTIFIER, token.MULT, token.NUMBER, token.RPAREN, token.SEMICOLON),
			"function_call", 9,
		},
		{
			"nested_builtin_calls",
			toks(token.BUILTIN_PROCLAIM, token.LPAREN, token.BUILTIN_UNITE, token.LPAREN, token.STRING_LIT, token.COMMA,
				token.BUILTIN_TO_STR, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.RPAREN, token.RPAREN, token.SEMICOLON),
			"builtin_function_call", 13,
		},
		{
			"grouped_initializer",
			toks(token.EST, token.IDENTIFIER, token.ASSIGN, token.LPAREN, token.IDENTIFIER, token.PLUS, token.NUMBER,
				token.RPAREN, token.MULT, token.NUMBER, token.SEMICOLON),
			"variable_declaration", 11,
		},
		{
			"builtin_call_no_args",
			toks(token.BUILTIN_THIS_VERY_MOMENT, token.LPAREN, token.RPAREN, token.SEMICOLON),
			"builtin_function_call", 4,
		},
		{
			"compound_assignment",
			toks(token.IDENTIFIER, token.DIV_ASSIGN, token.NUMBER, token.SEMICOLON),
			"assignment", 4,
		},
		{
			"do_while",
			toks(token.DO, token.LBRACE, token.RBRACE, token.WHILE),
			"do_while", 2,
		},
		{
			"function_header",
			toks(token.INT, token.ALGO, token.IDENTIFIER, token.LPAREN, token.INT, token.IDENTIFIER, token.COMMA, token.BOOL, token.IDENTIFIER, token.RPAREN, token.LBRACE),
			"function_declaration", 11,
		},
		{
			"procedure_header",
			toks(token.PROCEDURE, token.ALGO, token.IDENTIFIER, token.LPAREN, token.RPAREN, token.LBRACE),
			"procedure_declaration", 6,
		},
		{
			"bare_return",
			toks(token.RETURN, token.SEMICOLON),
			"return_statement", 2,
		},
		{
			"main_block",
			toks(token.CES, token.LBRACE, token.RBRACE),
			"main_block", 2,
		},
		{
			"expression",
			toks(token.IDENTIFIER, token.POW, token.NUMBER),
			"expression", 3,
		},
	}

	e := defaultEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := e.BestRule(tt.input, 0)
			if !ok {
				t.Fatal("no rule matched")
			}
			if m.Rule.Name != tt.wantBest || m.Length != tt.wantLen {
				t.Errorf("BestRule = %s (length %d), want %s (length %d)", m.Rule.Name, m.Length, tt.wantBest, tt.wantLen)
			}
			if h := e.FindBestMatch(tt.input, 0); h != m.Rule.Start {
				t.Errorf("FindBestMatch = %d, want %d", h, m.Rule.Start)
			}
		})
	}
}

func TestFindMatchingRules(t *testing.T) {
	e := defaultEngine(t)

	tests := []struct {
		name  string
		input []*token.Token
		want  []string
	}{
		{
			"number_assignment",
			toks(token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON),
			[]string{"assignment (length: 4)", "number_assignment (length: 4)"},
		},
		{
			"bool_decl",
			toks(token.EST, token.BOOL, token.IDENTIFIER, token.SEMICOLON),
			[]string{"variable_declaration (length: 4)", "bool_decl (length: 4)"},
		},
		{
			"nothing",
			toks(token.RBRACE),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.FindMatchingRules(tt.input, 0)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindMatchingRules = %v, want %v", got, tt.want)
			}
		})
	}

	if h := e.FindBestMatch(toks(token.RBRACE), 0); h != NoNode {
		t.Errorf("FindBestMatch = %d, want NoNode", h)
	}
}

func TestRuleLookup(t *testing.T) {
	e := defaultEngine(t)

	if _, ok := e.Rule("main_block"); !ok {
		t.Error("main_block not registered")
	}

	if _, ok := e.Rule("no_such_rule"); ok {
		t.Error("lookup of unknown rule succeeded")
	}

	if got := e.Rules()[0].Name; got != "variable_declaration" {
		t.Errorf("first rule = %s, want variable_declaration", got)
	}
}

// ----------------------------------------------------------------------------
// Printing and cleanup

func TestPrintChainVisited(t *testing.T) {
	e := NewEngine()
	c := e.buildChain([]token.Kind{token.EST, token.IDENTIFIER}, []string{"est"})
	e.Link(c[1], c[0])

	var sb strings.Builder
	e.PrintChain(&sb, c[0])

	want := "[1] EST (\"est\")\n" +
		"  -> next:\n" +
		"  [2] IDENTIFIER\n" +
		"    -> next:\n" +
		"    [1] (visited)\n"

	if sb.String() != want {
		t.Errorf("PrintChain =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestPrintAllRules(t *testing.T) {
	e := defaultEngine(t)

	var sb strings.Builder
	e.PrintAllRules(&sb)
	out := sb.String()

	for _, rule := range e.Rules() {
		if !strings.Contains(out, ": "+rule.Name+" (min: ") {
			t.Errorf("rule %s missing from output", rule.Name)
		}
	}

	if !strings.Contains(out, "[OPTIONAL]") {
		t.Error("optional nodes not marked")
	}

	if !strings.Contains(out, "(visited)") {
		t.Error("cyclic chains not marked as visited")
	}
}

func TestCleanup(t *testing.T) {
	t.Run("cyclic", func(t *testing.T) {
		e := NewEngine()
		c := e.buildChain([]token.Kind{token.IDENTIFIER, token.COMMA, token.IDENTIFIER}, nil)
		e.Link(c[2], c[0])
		e.SetAlternative(c[1], c[0])
		e.NewNode(token.SEMICOLON, ";", false) // unreachable
		e.AddRule("ring", c[0], 1, Unbounded)
		e.AddRule("ring_again", c[1], 1, Unbounded)

		if n := e.Cleanup(); n != 3 {
			t.Errorf("Cleanup = %d, want 3", n)
		}

		if len(e.Rules()) != 0 || e.NodeCount() != 0 {
			t.Error("engine not emptied by Cleanup")
		}
	})

	t.Run("default_rules", func(t *testing.T) {
		e := defaultEngine(t)
		total := e.NodeCount()

		if n := e.Cleanup(); n != total {
			t.Errorf("Cleanup = %d, want %d", n, total)
		}
	})
}

func TestBestRuleSkipsEmptyMatch(t *testing.T) {
	e := NewEngine()
	start := e.BuildChain([]token.Kind{token.IDENTIFIER}, nil)
	e.SetOptional(start, true)
	e.AddRule("empty", start, 0, Unbounded)

	input := toks(token.RBRACE)
	if ok, n := e.MatchRule(e.Rules()[0], input, 0); !ok || n != 0 {
		t.Fatalf("MatchRule = (%v, %d), want (true, 0)", ok, n)
	}

	if m, ok := e.BestRule(input, 0); ok {
		t.Errorf("BestRule chose %s for an empty span", m.Rule.Name)
	}

	if h := e.FindBestMatch(input, 0); h != NoNode {
		t.Errorf("FindBestMatch = %d, want NoNode", h)
	}

	if m, ok := e.BestRule(toks(token.IDENTIFIER), 0); !ok || m.Length != 1 {
		t.Errorf("BestRule = (%+v, %v), want a match of length 1", m, ok)
	}
}
