package common

import "ngs/token"

// Symbol represents a named value: a variable or a parameter.
type Symbol struct {
	// The name of the symbol.
	Name string

	// The declared type of the symbol.
	Type TypeInfo

	// The token the symbol was declared on.
	DeclTok *token.Token

	// Whether the symbol has been assigned a value.
	Initialized bool

	// Whether the symbol was ever read.
	Used bool

	// The depth of the scope the symbol was declared in: 0 is global.
	ScopeLevel int

	// The declaration context of the symbol.
	Context SymbolContext
}

// SymbolContext is the context a symbol was declared in.
type SymbolContext int

// Enumeration of symbol contexts.
const (
	ContextGlobal SymbolContext = iota
	ContextLocal
	ContextParameter
)

func (sc SymbolContext) String() string {
	switch sc {
	case ContextGlobal:
		return "global"
	case ContextLocal:
		return "local"
	case ContextParameter:
		return "parameter"
	}

	return "unknown"
}

// -----------------------------------------------------------------------------

// Function represents a declared function or procedure.
type Function struct {
	// The name of the function.
	Name string

	// The return type of the function: `void` for procedures.
	ReturnType TypeInfo

	// The function's parameters in declaration order.
	Params []*Symbol

	// Whether the function's body has been seen.  Functions are registered
	// before their bodies are walked so this is false for forward references.
	Defined bool

	// Whether the function is called anywhere in the program.
	Called bool

	// The token the function was declared on.
	DeclTok *token.Token
}

// DeclLine returns the line the function was declared on.
func (fn *Function) DeclLine() int {
	if fn.DeclTok == nil {
		return 0
	}

	return fn.DeclTok.Line
}
