package ast

// VariableDecl represents a variable declaration.  Its token is the name of
// the variable.
type VariableDecl struct {
	NodeBase

	Name string
	Type *TypeSpecifier

	// The optional initializer.
	Init Node
}

func (vd *VariableDecl) Kind() NodeKind { return KindVariableDecl }
func (vd *VariableDecl) Value() string  { return vd.Name }

func (vd *VariableDecl) Children() []Node {
	if vd.Init == nil {
		return []Node{vd.Type}
	}

	return []Node{vd.Type, vd.Init}
}

// Assignment represents a simple or compound assignment.  Its token is the
// assignment operator.
type Assignment struct {
	NodeBase

	// The display name of the operator kind: eg. ASSIGN, PLUS_ASSIGN.
	Op string

	Target Node
	Expr   Node
}

func (as *Assignment) Kind() NodeKind { return KindAssignment }
func (as *Assignment) Value() string  { return as.Op }

func (as *Assignment) Children() []Node {
	return []Node{as.Target, as.Expr}
}

// DoWhileLoop represents a do-while loop.  Its token is the `do` keyword.
type DoWhileLoop struct {
	NodeBase

	// The body is either a Block or a single statement.
	Body Node
	Cond Node
}

func (dw *DoWhileLoop) Kind() NodeKind { return KindDoWhile }
func (dw *DoWhileLoop) Value() string  { return "" }

func (dw *DoWhileLoop) Children() []Node {
	return []Node{dw.Body, dw.Cond}
}

// ReturnStmt represents a return statement.  Its token is the `return`
// keyword.
type ReturnStmt struct {
	NodeBase

	// The returned expression: nil for a bare `return;`.
	Expr Node
}

func (rs *ReturnStmt) Kind() NodeKind { return KindReturnStmt }
func (rs *ReturnStmt) Value() string  { return "" }

func (rs *ReturnStmt) Children() []Node {
	if rs.Expr == nil {
		return nil
	}

	return []Node{rs.Expr}
}

// NoOp is the empty statement `;`.
type NoOp struct {
	NodeBase
}

func (no *NoOp) Kind() NodeKind   { return KindNoOp }
func (no *NoOp) Value() string    { return "" }
func (no *NoOp) Children() []Node { return nil }
