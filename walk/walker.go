package walk

import (
	"ngs/ast"
	"ngs/common"
	"ngs/report"
	"ngs/token"
)

// WalkerOptions configures a walker.
type WalkerOptions struct {
	// The name of the function exempt from the never-called warning.
	EntryPoint string
}

// Walker is responsible for walking a parsed program and performing semantic
// analysis on its declarations.  Errors and warnings are accumulated: walking
// always continues over the rest of the tree.
type Walker struct {
	opts  WalkerOptions
	diags *report.Diagnostics

	// The stack of scopes used to lookup symbols.  The bottom frame is the
	// global scope and is never popped.
	scopes []map[string]*common.Symbol

	// The flat global symbol table and its declaration order.
	globals     map[string]*common.Symbol
	globalOrder []*common.Symbol

	// Every declared variable and parameter in declaration order.
	symbols []*common.Symbol

	// The function table and its declaration order.
	funcs     map[string]*common.Function
	funcOrder []*common.Function

	// The function whose body is being walked.  If this is `nil`, then there
	// is no enclosing function: ie. return statements are not valid.
	enclosingFunc *common.Function

	// The resolved type of every walked expression.
	exprTypes map[ast.Node]common.TypeInfo
}

// NewWalker creates a new walker recording its diagnostics in diags.
func NewWalker(opts WalkerOptions, diags *report.Diagnostics) *Walker {
	if opts.EntryPoint == "" {
		opts.EntryPoint = common.DefaultEntryPoint
	}

	w := &Walker{opts: opts, diags: diags}
	w.reset()
	return w
}

// reset clears all analysis state and seeds the global scope.
func (w *Walker) reset() {
	w.scopes = []map[string]*common.Symbol{make(map[string]*common.Symbol)}
	w.globals = make(map[string]*common.Symbol)
	w.globalOrder = nil
	w.symbols = nil
	w.funcs = make(map[string]*common.Function)
	w.funcOrder = nil
	w.enclosingFunc = nil
	w.exprTypes = make(map[ast.Node]common.TypeInfo)
}

// Analyze semantically analyzes a program.  It returns true if and only if no
// errors were recorded during the analysis.
func (w *Walker) Analyze(prog *ast.Program) bool {
	w.reset()
	errorsBefore := w.diags.ErrorCount()

	if prog == nil {
		w.diags.Error(report.CodeNoProgram, 0, 0, "", "no syntax tree to analyze")
		return false
	}

	// All signatures are known before any body is walked so that calls may
	// precede the declarations they refer to.
	for _, decl := range prog.Decls {
		w.registerFunction(decl)
	}

	for _, decl := range prog.Decls {
		w.walkDecl(decl)
	}

	for _, fn := range w.funcOrder {
		if fn.Defined && !fn.Called && fn.Name != w.opts.EntryPoint {
			w.warn(fn.DeclTok, report.CodeNeverCalled, "Function '%s' is defined but never called", fn.Name)
		}
	}

	for _, sym := range w.globalOrder {
		if !sym.Initialized {
			w.warn(sym.DeclTok, report.CodeGlobalUninit, "Global variable '%s' may be uninitialized", sym.Name)
		}
	}

	return w.diags.ErrorCount() == errorsBefore
}

// -----------------------------------------------------------------------------

// Diagnostics returns the diagnostics the walker records to.
func (w *Walker) Diagnostics() *report.Diagnostics {
	return w.diags
}

// GlobalSymbols returns the global symbols in declaration order.
func (w *Walker) GlobalSymbols() []*common.Symbol {
	return w.globalOrder
}

// Symbols returns every declared variable and parameter in declaration order.
func (w *Walker) Symbols() []*common.Symbol {
	return w.symbols
}

// Functions returns the declared functions in declaration order.
func (w *Walker) Functions() []*common.Function {
	return w.funcOrder
}

// LookupFunction returns the function with the given name.
func (w *Walker) LookupFunction(name string) (*common.Function, bool) {
	fn, ok := w.funcs[name]
	return fn, ok
}

// ExprType returns the type an expression was resolved to.
func (w *Walker) ExprType(expr ast.Node) (common.TypeInfo, bool) {
	typ, ok := w.exprTypes[expr]
	return typ, ok
}

// ScopeLevel returns the depth of the current scope: 0 is global.
func (w *Walker) ScopeLevel() int {
	return len(w.scopes) - 1
}

// -----------------------------------------------------------------------------

// lookup looks up a symbol by name in all visible scopes and then in the
// global table.  It returns nil if no symbol by the given name exists.
func (w *Walker) lookup(name string) *common.Symbol {
	// Traverse scopes in reverse order to implement shadowing.
	for i := len(w.scopes) - 1; i > -1; i-- {
		if sym, ok := w.scopes[i][name]; ok {
			return sym
		}
	}

	if sym, ok := w.globals[name]; ok {
		return sym
	}

	return nil
}

// declare declares a symbol in the current scope.  If the symbol is already
// declared in that scope, then an error is reported and false is returned.
func (w *Walker) declare(sym *common.Symbol) bool {
	currScope := w.scopes[len(w.scopes)-1]

	if _, ok := currScope[sym.Name]; ok {
		w.error(sym.DeclTok, report.CodeRedeclaration, "Redeclaration of variable '%s'", sym.Name)
		return false
	}

	level := w.ScopeLevel()
	if _, ok := w.globals[sym.Name]; ok && level > 0 {
		w.warn(sym.DeclTok, report.CodeShadowsGlobal, "Variable '%s' shadows global declaration", sym.Name)
	}

	sym.ScopeLevel = level
	currScope[sym.Name] = sym
	w.symbols = append(w.symbols, sym)

	if level == 0 {
		w.globals[sym.Name] = sym
		w.globalOrder = append(w.globalOrder, sym)
	}

	return true
}

// pushScope pushes a new scope onto the scope stack.
func (w *Walker) pushScope() {
	w.scopes = append(w.scopes, make(map[string]*common.Symbol))
}

// popScope warns about every symbol of the top scope which was never read and
// then removes the scope from the scope stack.  The global scope is never
// removed.
func (w *Walker) popScope() {
	if len(w.scopes) == 1 {
		return
	}

	top := w.scopes[len(w.scopes)-1]

	// warnings are reported in declaration order
	for _, sym := range w.symbols {
		if top[sym.Name] == sym && !sym.Used {
			w.warn(sym.DeclTok, report.CodeUnusedVariable, "Unused variable '%s'", sym.Name)
		}
	}

	w.scopes = w.scopes[:len(w.scopes)-1]
}

// -----------------------------------------------------------------------------

// error records an error positioned on the given token.
func (w *Walker) error(tok *token.Token, code int, msg string, args ...interface{}) {
	line, col, lexeme := position(tok)
	w.diags.Error(code, line, col, lexeme, msg, args...)
}

// warn records a warning positioned on the given token.
func (w *Walker) warn(tok *token.Token, code int, msg string, args ...interface{}) {
	line, col, lexeme := position(tok)
	w.diags.Warn(code, line, col, lexeme, msg, args...)
}

func position(tok *token.Token) (int, int, string) {
	if tok == nil {
		return 0, 0, ""
	}

	return tok.Line, tok.Col, tok.Value
}
