package ast

import "ngs/token"

// BinaryOp represents a binary operator application.  Its token is the
// operator.
type BinaryOp struct {
	NodeBase

	Op       token.Kind
	Lhs, Rhs Node
}

func (bo *BinaryOp) Kind() NodeKind { return KindBinaryOp }
func (bo *BinaryOp) Value() string  { return Lexeme(bo) }

func (bo *BinaryOp) Children() []Node {
	return []Node{bo.Lhs, bo.Rhs}
}

// UnaryOp represents a prefix operator application.  Its token is the
// operator.
type UnaryOp struct {
	NodeBase

	Op      token.Kind
	Operand Node
}

func (uo *UnaryOp) Kind() NodeKind { return KindUnaryOp }
func (uo *UnaryOp) Value() string  { return Lexeme(uo) }

func (uo *UnaryOp) Children() []Node {
	return []Node{uo.Operand}
}

// -----------------------------------------------------------------------------

// Literal represents a literal value.  The kind of its token determines the
// type of the literal.
type Literal struct {
	NodeBase
}

func (l *Literal) Kind() NodeKind   { return KindLiteral }
func (l *Literal) Value() string    { return Lexeme(l) }
func (l *Literal) Children() []Node { return nil }

// Identifier represents a named reference.  Parameters are identifiers which
// additionally carry their declared type.
type Identifier struct {
	NodeBase

	Name string

	// The type of a parameter; nil everywhere else.
	Type *TypeSpecifier
}

func (id *Identifier) Kind() NodeKind { return KindIdentifier }
func (id *Identifier) Value() string  { return id.Name }

func (id *Identifier) Children() []Node {
	if id.Type == nil {
		return nil
	}

	return []Node{id.Type}
}

// FunctionCall represents a call to a user function or a builtin.  Its token
// is the callee.
type FunctionCall struct {
	NodeBase

	Name string
	Args *ArgList
}

// IsBuiltin returns whether the callee is a builtin function marker.
func (fc *FunctionCall) IsBuiltin() bool {
	return fc.tok != nil && fc.tok.Kind.IsBuiltin()
}

func (fc *FunctionCall) Kind() NodeKind { return KindFunctionCall }
func (fc *FunctionCall) Value() string  { return fc.Name }

func (fc *FunctionCall) Children() []Node {
	return []Node{fc.Args}
}

// ArgList is the argument list of a call.
type ArgList struct {
	NodeBase

	Args []Node
}

func (al *ArgList) Kind() NodeKind   { return KindArgList }
func (al *ArgList) Value() string    { return "" }
func (al *ArgList) Children() []Node { return al.Args }
