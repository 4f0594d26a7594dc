package walk

import (
	"ngs/ast"
	"ngs/common"
	"ngs/report"
	"ngs/token"
)

// registerFunction adds the signature of a function or procedure declaration
// to the function table as a forward reference.  Only the first declaration
// of a name is registered: later ones are reported as redefinitions when they
// are walked.
func (w *Walker) registerFunction(decl ast.Node) {
	var fn *common.Function

	switch v := decl.(type) {
	case *ast.FunctionDecl:
		fn = newFunction(v.Token(), v.Name, typeOf(v.ReturnType), v.Params)
	case *ast.ProcedureDecl:
		fn = newFunction(v.Token(), v.Name, common.TypeVoid, v.Params)
	default:
		return
	}

	if _, ok := w.funcs[fn.Name]; !ok {
		w.funcs[fn.Name] = fn
		w.funcOrder = append(w.funcOrder, fn)
	}
}

// walkDecl walks a top level declaration.
func (w *Walker) walkDecl(decl ast.Node) {
	switch v := decl.(type) {
	case *ast.FunctionDecl:
		w.walkCallable(w.defineFunction(v), v.Body)
	case *ast.ProcedureDecl:
		w.walkCallable(w.defineFunction(v), v.Body)
	case *ast.Block:
		w.walkBlock(v)
	default:
		w.walkStmt(v)
	}
}

// defineFunction marks the function record of a declaration as defined and
// returns it.  If the name was already defined, then an error is reported and
// a detached record is returned so that the body can still be walked.
func (w *Walker) defineFunction(decl ast.Node) *common.Function {
	name := decl.Value()

	if fn, ok := w.funcs[name]; ok && !fn.Defined && fn.DeclTok == decl.Token() {
		fn.Defined = true
		return fn
	}

	w.error(decl.Token(), report.CodeRedefinition, "Redefinition of function '%s'", name)

	switch v := decl.(type) {
	case *ast.FunctionDecl:
		return newFunction(v.Token(), v.Name, typeOf(v.ReturnType), v.Params)
	default:
		pd := v.(*ast.ProcedureDecl)
		return newFunction(pd.Token(), pd.Name, common.TypeVoid, pd.Params)
	}
}

// walkCallable walks the body of a function or procedure.  The parameters and
// the top level statements of the body share one scope.
func (w *Walker) walkCallable(fn *common.Function, body *ast.Block) {
	w.enclosingFunc = fn
	w.pushScope()

	for _, param := range fn.Params {
		w.declare(param)
	}

	w.walkStmts(body.Stmts)

	w.popScope()
	w.enclosingFunc = nil
}

// -----------------------------------------------------------------------------

// newFunction creates an undefined function record.
func newFunction(tok *token.Token, name string, rtType common.TypeInfo, params *ast.ParamList) *common.Function {
	fn := &common.Function{
		Name:       name,
		ReturnType: rtType,
		DeclTok:    tok,
	}

	for _, param := range params.Params {
		fn.Params = append(fn.Params, &common.Symbol{
			Name:        param.Name,
			Type:        typeOf(param.Type),
			DeclTok:     param.Token(),
			Initialized: true,
			Context:     common.ContextParameter,
		})
	}

	return fn
}

// typeOf converts a type label into its primitive type.
func typeOf(ts *ast.TypeSpecifier) common.TypeInfo {
	return common.TypeFromKind(ts.TypeKind)
}
