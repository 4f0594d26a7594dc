package fst

import (
	"fmt"
	"ngs/token"
)

// Match is a successful application of a rule at a token position.
type Match struct {
	Rule   *Rule
	Length int
}

// accepts returns whether a node expecting `expected` accepts a token of kind
// `kind`.
func accepts(expected, kind token.Kind) bool {
	switch expected {
	case token.ANY_TYPE_SPECIFIER:
		return kind.IsTypeSpecifier()
	case token.ANY_BUILTIN:
		return kind.IsBuiltin()
	case token.ANY_OPERAND:
		return kind.IsOperand()
	default:
		return expected == kind
	}
}

// MatchChain runs the chain beginning at start against toks from pos.  It
// returns whether the chain matched and the number of tokens consumed.  The
// chain matches when it is exhausted, possibly after skipping trailing optional
// nodes: tokens left over after the chain ends are not considered.
//
// Chains may cycle.  Returning to a node without having consumed a token since
// the last visit is treated as a failed match so that matching always
// terminates.  A start handle that references no node never matches.
func (e *Engine) MatchChain(start Handle, toks []*token.Token, pos int) (bool, int) {
	if e.Node(start) == nil || pos < 0 || pos >= len(toks) {
		return false, 0
	}

	// seen maps each visited node to the token position it was last visited
	// at.  Revisiting a node at the same position means we are cycling.
	seen := make(map[Handle]int)
	visit := func(h Handle, at int) bool {
		if prev, ok := seen[h]; ok && prev == at {
			return false
		}

		seen[h] = at
		return true
	}

	curr, i := start, pos
	for curr != NoNode && i < len(toks) {
		node := e.Node(curr)
		if node == nil || !visit(curr, i) {
			return false, 0
		}

		if accepts(node.Expected, toks[i].Kind) {
			curr = node.Next
			i++
		} else if node.Optional {
			curr = node.Next
		} else if node.Alt != NoNode {
			curr = node.Alt
		} else {
			return false, 0
		}
	}

	// skip trailing optional nodes
	for curr != NoNode {
		node := e.Node(curr)
		if node == nil || !node.Optional || !visit(curr, i) {
			return false, 0
		}

		curr = node.Next
	}

	return true, i - pos
}

// MatchRule runs a rule at a token position.  Besides the chain matching, the
// consumed length must lie within the rule's bounds.
func (e *Engine) MatchRule(rule *Rule, toks []*token.Token, pos int) (bool, int) {
	ok, n := e.MatchChain(rule.Start, toks, pos)
	if !ok || n < rule.MinLength || (rule.MaxLength >= 0 && n > rule.MaxLength) {
		return false, 0
	}

	return true, n
}

// Matches returns every rule matching at pos in registration order.
func (e *Engine) Matches(toks []*token.Token, pos int) []Match {
	var matches []Match
	for _, rule := range e.rules {
		if ok, n := e.MatchRule(rule, toks, pos); ok {
			matches = append(matches, Match{Rule: rule, Length: n})
		}
	}

	return matches
}

// BestRule returns the rule with the longest match at pos.  Ties resolve to
// the earliest registered rule.  A match consuming no tokens never wins.
func (e *Engine) BestRule(toks []*token.Token, pos int) (Match, bool) {
	var best Match
	found := false

	for _, m := range e.Matches(toks, pos) {
		if m.Length > best.Length {
			best = m
			found = true
		}
	}

	return best, found
}

// FindBestMatch returns the start node of the best matching rule at pos (see
// BestRule) or NoNode if no rule matches.
func (e *Engine) FindBestMatch(toks []*token.Token, pos int) Handle {
	if m, ok := e.BestRule(toks, pos); ok {
		return m.Rule.Start
	}

	return NoNode
}

// FindMatchingRules returns a description of every rule matching at pos in the
// form `name (length: N)`.
func (e *Engine) FindMatchingRules(toks []*token.Token, pos int) []string {
	matches := e.Matches(toks, pos)
	descs := make([]string, len(matches))

	for i, m := range matches {
		descs[i] = fmt.Sprintf("%s (length: %d)", m.Rule.Name, m.Length)
	}

	return descs
}
