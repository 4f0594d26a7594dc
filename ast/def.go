package ast

import "ngs/token"

// Program is the root of the AST.
type Program struct {
	NodeBase

	// The top level declarations in source order.  The main block appears
	// among them as a Block whose IsMain flag is set.
	Decls []Node
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{}
}

// Main returns the program's main block or nil if it has none.
func (p *Program) Main() *Block {
	for _, decl := range p.Decls {
		if b, ok := decl.(*Block); ok && b.IsMain {
			return b
		}
	}

	return nil
}

func (p *Program) Kind() NodeKind   { return KindProgram }
func (p *Program) Value() string    { return "" }
func (p *Program) Children() []Node { return p.Decls }

// -----------------------------------------------------------------------------

// ProcedureDecl is a callable declared without a return type.
type ProcedureDecl struct {
	NodeBase

	Name   string
	Params *ParamList
	Body   *Block
}

func (pd *ProcedureDecl) Kind() NodeKind { return KindProcedureDecl }
func (pd *ProcedureDecl) Value() string  { return pd.Name }

func (pd *ProcedureDecl) Children() []Node {
	return []Node{pd.Params, pd.Body}
}

// FunctionDecl is a callable declared with a return type.
type FunctionDecl struct {
	NodeBase

	Name       string
	ReturnType *TypeSpecifier
	Params     *ParamList
	Body       *Block
}

func (fd *FunctionDecl) Kind() NodeKind { return KindFunctionDecl }
func (fd *FunctionDecl) Value() string  { return fd.Name }

func (fd *FunctionDecl) Children() []Node {
	return []Node{fd.ReturnType, fd.Params, fd.Body}
}

// ParamList is the parameter list of a declaration.  Each parameter is an
// Identifier carrying its type.
type ParamList struct {
	NodeBase

	Params []*Identifier
}

func (pl *ParamList) Kind() NodeKind { return KindParamList }
func (pl *ParamList) Value() string  { return "" }

func (pl *ParamList) Children() []Node {
	nodes := make([]Node, len(pl.Params))
	for i, param := range pl.Params {
		nodes[i] = param
	}

	return nodes
}

// -----------------------------------------------------------------------------

// TypeSpecifier is a type label.
type TypeSpecifier struct {
	NodeBase

	// The display name of the type: the token kind name of the type keyword
	// or `UNSIGNED INT`.
	Name string

	// The kind of the type keyword.  `unsigned int` is stored as UNSIGNED.
	TypeKind token.Kind
}

// NewTypeSpecifier creates a type label for a type keyword.  The token may be
// nil for implied types.
func NewTypeSpecifier(tok *token.Token, kind token.Kind) *TypeSpecifier {
	name := kind.String()
	if kind == token.UNSIGNED {
		name = "UNSIGNED INT"
	}

	return &TypeSpecifier{
		NodeBase: NewNodeBase(tok),
		Name:     name,
		TypeKind: kind,
	}
}

func (ts *TypeSpecifier) Kind() NodeKind   { return KindTypeSpecifier }
func (ts *TypeSpecifier) Value() string    { return ts.Name }
func (ts *TypeSpecifier) Children() []Node { return nil }

// Block is a braced sequence of statements: a declaration body, the main
// block, a loop body or a nested block.
type Block struct {
	NodeBase

	// Whether this block is the program's main block.
	IsMain bool

	Stmts []Node
}

func (b *Block) Kind() NodeKind   { return KindBlock }
func (b *Block) Value() string    { return "" }
func (b *Block) Children() []Node { return b.Stmts }
