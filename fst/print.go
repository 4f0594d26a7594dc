package fst

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PrintChain writes the node graph reachable from start to w.  Every node is
// printed once: later references to an already printed node are shown as
// `[id] (visited)`.
func (e *Engine) PrintChain(w io.Writer, start Handle) {
	e.printChain(w, start, 0, make(map[Handle]struct{}))
}

func (e *Engine) printChain(w io.Writer, h Handle, depth int, visited map[Handle]struct{}) {
	node := e.Node(h)
	if node == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	if _, ok := visited[h]; ok {
		fmt.Fprintf(w, "%s[%d] (visited)\n", indent, node.ID)
		return
	}
	visited[h] = struct{}{}

	sb := strings.Builder{}
	sb.WriteString(indent)
	sb.WriteRune('[')
	sb.WriteString(strconv.Itoa(node.ID))
	sb.WriteString("] ")
	sb.WriteString(node.Expected.String())

	if node.Hint != "" {
		sb.WriteString(" (\"")
		sb.WriteString(node.Hint)
		sb.WriteString("\")")
	}

	if node.Optional {
		sb.WriteString(" [OPTIONAL]")
	}

	fmt.Fprintln(w, sb.String())

	if e.Node(node.Next) != nil {
		fmt.Fprintf(w, "%s  -> next:\n", indent)
		e.printChain(w, node.Next, depth+1, visited)
	}

	if e.Node(node.Alt) != nil {
		fmt.Fprintf(w, "%s  -> alternative:\n", indent)
		e.printChain(w, node.Alt, depth+1, visited)
	}
}

// PrintAllRules writes every registered rule and its chain to w.
func (e *Engine) PrintAllRules(w io.Writer) {
	fmt.Fprintf(w, "Rules (%d):\n", len(e.rules))

	for i, rule := range e.rules {
		maxLen := "unbounded"
		if rule.MaxLength >= 0 {
			maxLen = strconv.Itoa(rule.MaxLength)
		}

		fmt.Fprintf(w, "\nRule %d: %s (min: %d, max: %s)\n", i+1, rule.Name, rule.MinLength, maxLen)
		e.printChain(w, rule.Start, 1, make(map[Handle]struct{}))
	}
}
