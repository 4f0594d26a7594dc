package ast

import "ngs/token"

// Node is the abstract interface for all AST nodes.  Every node is also
// viewable generically through its kind, its string payload, the token it
// originates from and its ordered children.
type Node interface {
	// Kind returns the node's kind.
	Kind() NodeKind

	// Value returns the string payload of the node: a name, an operator or
	// the text of a literal.  Structural nodes have no payload.
	Value() string

	// Token returns the token the node originates from.  It may be nil for
	// purely structural nodes.
	Token() *token.Token

	// Children returns the node's children in positional order.
	Children() []Node
}

// NodeKind enumerates the kinds of AST nodes.
type NodeKind int

// Enumeration of node kinds.
const (
	KindProgram NodeKind = iota
	KindProcedureDecl
	KindFunctionDecl
	KindVariableDecl
	KindAssignment
	KindFunctionCall
	KindDoWhile
	KindBinaryOp
	KindUnaryOp
	KindLiteral
	KindIdentifier
	KindBlock
	KindParamList
	KindArgList
	KindReturnStmt
	KindTypeSpecifier
	KindNoOp
)

var kindNames = [...]string{
	KindProgram:       "PROGRAM",
	KindProcedureDecl: "PROCEDURE",
	KindFunctionDecl:  "FUNCTION",
	KindVariableDecl:  "VAR",
	KindAssignment:    "ASSIGN",
	KindFunctionCall:  "CALL",
	KindDoWhile:       "DO_WHILE",
	KindBinaryOp:      "BIN_OP",
	KindUnaryOp:       "UNARY_OP",
	KindLiteral:       "LITERAL",
	KindIdentifier:    "ID",
	KindBlock:         "BLOCK",
	KindParamList:     "PARAMS",
	KindArgList:       "ARGS",
	KindReturnStmt:    "RETURN",
	KindTypeSpecifier: "TYPE",
	KindNoOp:          "NOOP",
}

func (k NodeKind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "NODE"
}

// -----------------------------------------------------------------------------

// NodeBase is a utility base struct for all AST nodes.
type NodeBase struct {
	tok *token.Token
}

// NewNodeBase creates a new node base originating from the given token.
func NewNodeBase(tok *token.Token) NodeBase {
	return NodeBase{tok: tok}
}

func (nb NodeBase) Token() *token.Token {
	return nb.tok
}

// Line returns the line of the node's token or 0 if it has none.
func (nb NodeBase) Line() int {
	if nb.tok == nil {
		return 0
	}

	return nb.tok.Line
}

// Col returns the column of the node's token or 0 if it has none.
func (nb NodeBase) Col() int {
	if nb.tok == nil {
		return 0
	}

	return nb.tok.Col
}

// Lexeme returns the text of a node's token or the empty string.
func Lexeme(n Node) string {
	if tok := n.Token(); tok != nil {
		return tok.Value
	}

	return ""
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 1
	for _, child := range n.Children() {
		count += Count(child)
	}

	return count
}
