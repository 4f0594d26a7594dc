package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the depth-indented text view of the tree rooted at n: one
// `[KIND value] (lexeme)` line per node.  Control characters in values are
// escaped as in DOT labels.
func Dump(w io.Writer, n Node) {
	dump(w, n, 0)
}

// DumpString returns the text view of the tree rooted at n.
func DumpString(n Node) string {
	sb := strings.Builder{}
	Dump(&sb, n)
	return sb.String()
}

func dump(w io.Writer, n Node, depth int) {
	sb := strings.Builder{}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteRune('[')
	sb.WriteString(n.Kind().String())

	if value := n.Value(); value != "" {
		sb.WriteRune(' ')
		sb.WriteString(labelEscaper.Replace(value))
	}

	sb.WriteRune(']')

	// identifiers would only repeat their name
	if lexeme := Lexeme(n); lexeme != "" && n.Kind() != KindIdentifier {
		sb.WriteString(" (")
		sb.WriteString(labelEscaper.Replace(lexeme))
		sb.WriteRune(')')
	}

	fmt.Fprintln(w, sb.String())

	for _, child := range n.Children() {
		dump(w, child, depth+1)
	}
}

// -----------------------------------------------------------------------------

var labelEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// WriteDOT writes the tree rooted at root as a Graphviz digraph.  Nodes are
// numbered in breadth first order; each node gets one label statement and
// each parent/child link one edge statement.
func WriteDOT(w io.Writer, root Node) {
	fmt.Fprintln(w, "digraph AST {")
	fmt.Fprintln(w, "    node [shape=box, style=filled, fillcolor=lightblue];")
	fmt.Fprintln(w, "    edge [arrowhead=vee];")

	type queued struct {
		node Node
		id   int
	}

	queue := []queued{{root, 0}}
	nextID := 1

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		label := curr.node.Kind().String()
		if value := curr.node.Value(); value != "" {
			label += `\n` + labelEscaper.Replace(value)
		}

		fmt.Fprintf(w, "    n%d [label=\"%s\"];\n", curr.id, label)

		for _, child := range curr.node.Children() {
			fmt.Fprintf(w, "    n%d -> n%d;\n", curr.id, nextID)
			queue = append(queue, queued{child, nextID})
			nextID++
		}
	}

	fmt.Fprintln(w, "}")
}
