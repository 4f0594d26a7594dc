package fst

import "ngs/token"

// NewNode allocates a single unlinked node.
func (e *Engine) NewNode(expected token.Kind, hint string, optional bool) Handle {
	h := Handle(len(e.nodes))
	e.nodes = append(e.nodes, &Node{
		ID:       len(e.nodes) + 1,
		Expected: expected,
		Hint:     hint,
		Optional: optional,
		Next:     NoNode,
		Alt:      NoNode,
	})

	return h
}

// BuildChain links a straight chain of nodes, one per pattern element, and
// returns the handle of its first node.  literals provides the hint of the
// node at the same index; it may be shorter than the pattern or nil.  An empty
// pattern yields NoNode.
func (e *Engine) BuildChain(pattern []token.Kind, literals []string) Handle {
	chain := e.buildChain(pattern, literals)
	if len(chain) == 0 {
		return NoNode
	}

	return chain[0]
}

// buildChain is BuildChain but returns the handles of every node in the chain.
func (e *Engine) buildChain(pattern []token.Kind, literals []string) []Handle {
	chain := make([]Handle, len(pattern))

	for i, kind := range pattern {
		var hint string
		if i < len(literals) {
			hint = literals[i]
		}

		chain[i] = e.NewNode(kind, hint, false)
		if i > 0 {
			e.nodes[chain[i-1]].Next = chain[i]
		}
	}

	return chain
}

// Link sets the next node of from.  Invalid handles are ignored.
func (e *Engine) Link(from, to Handle) {
	if n := e.Node(from); n != nil {
		n.Next = to
	}
}

// SetAlternative sets the alternative node of from.  Invalid handles are
// ignored.
func (e *Engine) SetAlternative(from, to Handle) {
	if n := e.Node(from); n != nil {
		n.Alt = to
	}
}

// SetOptional marks a node as optional or required.
func (e *Engine) SetOptional(h Handle, optional bool) {
	if n := e.Node(h); n != nil {
		n.Optional = optional
	}
}
