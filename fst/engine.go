// Package fst implements the pattern-chain validator: a small library of
// token-chain rules with optional nodes and alternative branches used to
// re-validate parsed constructs independently of the recursive descent parser.
package fst

import "ngs/token"

// Handle references a node stored in an engine's arena.
type Handle int

// NoNode is the handle of the absent node: the end of a chain or a missing
// alternative.
const NoNode Handle = -1

// Node is a single element of a pattern chain.
type Node struct {
	// The engine-unique, 1-indexed identifier of the node.
	ID int

	// The token kind this node accepts.  The wildcard kinds accept a class of
	// token kinds instead of a single one.
	Expected token.Kind

	// The literal text expected at this node.  Hints are informational only:
	// matching is done on kinds.
	Hint string

	// Whether the node may be skipped without consuming a token.
	Optional bool

	// Next continues the primary chain.  Alt offers a second path to try from
	// the same token position when this node does not match.  Either may point
	// back to an earlier node.
	Next, Alt Handle
}

// Rule is a named pattern chain representing a single grammatical construct.
type Rule struct {
	Name  string
	Start Handle

	// The accepted range of matched lengths.  A MaxLength < 0 means that the
	// length is unbounded.
	MinLength, MaxLength int
}

// Engine owns an arena of chain nodes and the table of registered rules.  An
// engine is created per parser: there is no process-wide rule table.
type Engine struct {
	nodes []*Node
	rules []*Rule
}

// NewEngine creates a new engine with no rules.
func NewEngine() *Engine {
	return &Engine{}
}

// Node returns the node referenced by a handle or nil if the handle does not
// reference a node of this engine.
func (e *Engine) Node(h Handle) *Node {
	if h < 0 || int(h) >= len(e.nodes) {
		return nil
	}

	return e.nodes[h]
}

// NodeCount returns the number of nodes currently allocated.
func (e *Engine) NodeCount() int {
	return len(e.nodes)
}

// -----------------------------------------------------------------------------

// AddRule registers a new rule.  Rules are tried in registration order.
func (e *Engine) AddRule(name string, start Handle, minLength, maxLength int) *Rule {
	rule := &Rule{
		Name:      name,
		Start:     start,
		MinLength: minLength,
		MaxLength: maxLength,
	}

	e.rules = append(e.rules, rule)
	return rule
}

// Rules returns the registered rules in registration order.
func (e *Engine) Rules() []*Rule {
	return e.rules
}

// Rule looks up a rule by name.
func (e *Engine) Rule(name string) (*Rule, bool) {
	for _, rule := range e.rules {
		if rule.Name == name {
			return rule, true
		}
	}

	return nil, false
}

// Cleanup releases every rule and node of the engine.  Rule chains are walked
// breadth first over a visited set so that each node is released exactly once
// even when chains cycle.  It returns the number of distinct nodes reached from
// the rules.
func (e *Engine) Cleanup() int {
	visited := make(map[Handle]struct{})

	for _, rule := range e.rules {
		if e.Node(rule.Start) == nil {
			continue
		} else if _, ok := visited[rule.Start]; ok {
			continue
		}

		queue := []Handle{rule.Start}
		visited[rule.Start] = struct{}{}

		for len(queue) > 0 {
			curr := e.nodes[queue[0]]
			queue = queue[1:]

			for _, h := range [2]Handle{curr.Next, curr.Alt} {
				if e.Node(h) == nil {
					continue
				}

				if _, ok := visited[h]; !ok {
					visited[h] = struct{}{}
					queue = append(queue, h)
				}
			}
		}
	}

	for _, node := range e.nodes {
		node.Next, node.Alt = NoNode, NoNode
	}

	e.nodes = nil
	e.rules = nil

	return len(visited)
}
