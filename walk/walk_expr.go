package walk

import (
	"ngs/ast"
	"ngs/common"
	"ngs/report"
)

// walkExpr walks an expression and returns its type.  Expressions which can't
// be typed are reported and yield the `unknown` type.  The resulting type is
// recorded for the expression.
func (w *Walker) walkExpr(expr ast.Node) common.TypeInfo {
	typ := w.doWalkExpr(expr)
	w.exprTypes[expr] = typ
	return typ
}

// doWalkExpr types an expression.  This should only be called from `walkExpr`.
func (w *Walker) doWalkExpr(expr ast.Node) common.TypeInfo {
	switch v := expr.(type) {
	case *ast.Literal:
		return common.TypeFromKind(v.Token().Kind)
	case *ast.Identifier:
		return w.walkIdent(v)
	case *ast.BinaryOp:
		return w.walkBinaryOp(v)
	case *ast.UnaryOp:
		return w.walkExpr(v.Operand)
	case *ast.FunctionCall:
		return w.walkCall(v)
	}

	// any other node is typed by its first typeable child
	for _, child := range expr.Children() {
		if typ := w.walkExpr(child); !typ.IsUnknown() {
			return typ
		}
	}

	return common.TypeUnknown
}

// walkIdent resolves an identifier and marks the symbol it refers to as used.
// A bare function name evaluates to the function's return type.
func (w *Walker) walkIdent(id *ast.Identifier) common.TypeInfo {
	if sym := w.lookup(id.Name); sym != nil {
		sym.Used = true
		return sym.Type
	}

	if fn, ok := w.funcs[id.Name]; ok {
		return fn.ReturnType
	}

	w.error(id.Token(), report.CodeUndeclaredIdent, "Undeclared identifier '%s'", id.Name)
	return common.TypeUnknown
}

// walkBinaryOp walks a binary operator application.
func (w *Walker) walkBinaryOp(bop *ast.BinaryOp) common.TypeInfo {
	lhsType := w.walkExpr(bop.Lhs)
	rhsType := w.walkExpr(bop.Rhs)

	if lhsType.IsUnknown() || rhsType.IsUnknown() {
		return common.TypeUnknown
	}

	resultType := binaryResultType(bop.Op, lhsType, rhsType)
	if resultType.IsUnknown() {
		w.error(bop.Token(), report.CodeInvalidOperation,
			"Invalid operation '%s' for types %s and %s", bop.Value(), lhsType, rhsType)
	}

	return resultType
}

// walkCall walks a function call.  User functions take precedence over the
// builtin functions.  The arguments are always walked.
func (w *Walker) walkCall(call *ast.FunctionCall) common.TypeInfo {
	for _, arg := range call.Args.Args {
		w.walkExpr(arg)
	}

	argCount := len(call.Args.Args)

	if fn, ok := w.funcs[call.Name]; ok {
		fn.Called = true

		if argCount != len(fn.Params) {
			w.error(call.Token(), report.CodeArgCount,
				"Function '%s' expects %d arguments, got %d", fn.Name, len(fn.Params), argCount)
		}

		return fn.ReturnType
	}

	if builtin, ok := common.LookupBuiltin(call.Name); ok {
		if !builtin.AcceptsArgs(argCount) {
			w.error(call.Token(), report.CodeBuiltinArgs, "Invalid arguments for builtin function '%s'", call.Name)
		}

		return builtin.ReturnType
	}

	w.error(call.Token(), report.CodeUndeclaredFunc, "Undeclared function '%s'", call.Name)
	return common.TypeUnknown
}
