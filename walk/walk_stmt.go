package walk

import (
	"ngs/ast"
	"ngs/common"
	"ngs/report"
	"ngs/token"
)

// walkBlock walks a block in its own scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope()
	w.walkStmts(block.Stmts)
	w.popScope()
}

// walkStmts walks a sequence of statements in the current scope.
func (w *Walker) walkStmts(stmts []ast.Node) {
	for _, stmt := range stmts {
		w.walkStmt(stmt)
	}
}

// walkStmt walks a statement.
func (w *Walker) walkStmt(stmt ast.Node) {
	switch v := stmt.(type) {
	case *ast.VariableDecl:
		w.walkVarDecl(v)
	case *ast.Assignment:
		w.walkAssign(v)
	case *ast.DoWhileLoop:
		w.walkDoWhile(v)
	case *ast.ReturnStmt:
		w.walkReturn(v)
	case *ast.Block:
		w.walkBlock(v)
	case *ast.NoOp:
		// nothing to check
	default:
		w.walkExpr(v)
	}
}

// walkVarDecl walks a variable declaration.  The initializer is walked before
// the variable is declared so that it cannot refer to the variable itself.
func (w *Walker) walkVarDecl(vd *ast.VariableDecl) {
	sym := &common.Symbol{
		Name:    vd.Name,
		Type:    typeOf(vd.Type),
		DeclTok: vd.Token(),
		Context: common.ContextLocal,
	}

	if w.ScopeLevel() == 0 {
		sym.Context = common.ContextGlobal
	}

	if vd.Init != nil {
		initType := w.walkExpr(vd.Init)

		if !initType.IsUnknown() && !typeCompatible(sym.Type, initType, token.ASSIGN) {
			w.error(vd.Token(), report.CodeInitMismatch,
				"Type mismatch in initialization of '%s'. Expected %s, got %s", vd.Name, sym.Type, initType)
		}

		sym.Initialized = true
	}

	w.declare(sym)
}

// walkAssign walks an assignment statement.
func (w *Walker) walkAssign(as *ast.Assignment) {
	exprType := w.walkExpr(as.Expr)

	target, ok := as.Target.(*ast.Identifier)
	if !ok || target.Token() == nil || target.Token().Kind != token.IDENTIFIER {
		w.error(as.Token(), report.CodeAssignTarget, "Assignment target must be an identifier")
		return
	}

	sym := w.lookup(target.Name)
	if sym == nil {
		w.error(target.Token(), report.CodeUndeclaredAssign, "Undeclared variable '%s' in assignment", target.Name)
		return
	}

	w.exprTypes[target] = sym.Type

	if exprType.IsUnknown() {
		return
	}

	if !typeCompatible(sym.Type, exprType, as.Token().Kind) {
		w.error(as.Token(), report.CodeAssignMismatch,
			"Type mismatch in assignment to '%s'. Expected %s, got %s", target.Name, sym.Type, exprType)
		return
	}

	sym.Initialized = true
	sym.Used = true
}

// walkDoWhile walks a do-while loop.  The loop opens a scope which holds the
// body's declarations and in which the condition is checked.
func (w *Walker) walkDoWhile(dw *ast.DoWhileLoop) {
	w.pushScope()

	if block, ok := dw.Body.(*ast.Block); ok {
		w.walkStmts(block.Stmts)
	} else {
		w.walkStmt(dw.Body)
	}

	condType := w.walkExpr(dw.Cond)
	if !condType.IsUnknown() && condType != common.TypeBool && !condType.IsNumeric() {
		w.warn(dw.Token(), report.CodeLoopCondition, "Condition in do-while must be boolean or numeric, got %s", condType)
	}

	w.popScope()
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(rs *ast.ReturnStmt) {
	fn := w.enclosingFunc
	if fn == nil {
		w.error(rs.Token(), report.CodeReturnOutside, "return statement outside of function")

		if rs.Expr != nil {
			w.walkExpr(rs.Expr)
		}

		return
	}

	if rs.Expr == nil {
		if fn.ReturnType != common.TypeVoid {
			w.error(rs.Token(), report.CodeMissingReturnValue,
				"Function '%s' must return a value of type %s", fn.Name, fn.ReturnType)
		}

		return
	}

	rtType := w.walkExpr(rs.Expr)
	if !rtType.IsUnknown() && !typeCompatible(fn.ReturnType, rtType, token.RETURN) {
		w.error(rs.Token(), report.CodeReturnMismatch,
			"Return type mismatch in function '%s'. Expected %s, got %s", fn.Name, fn.ReturnType, rtType)
	}
}
