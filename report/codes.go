package report

// Enumeration of diagnostic codes.  Codes are grouped into classes by range:
// 101-199 lexical, 201-299 syntax, 301-349 semantic errors and 351-399
// semantic warnings.
const (
	// Lexical errors.
	CodeUnknownChar      = 101
	CodeUnclosedString   = 102
	CodeUnclosedChar     = 103
	CodeMalformedNumber  = 104
	CodeUnknownEscape    = 105
	CodeNumberOutOfRange = 106

	// Syntax errors.
	CodeUnexpectedToken  = 201
	CodeInvalidStatement = 202
	CodeInvalidExpr      = 203
	CodeMainBlock        = 204
	CodePatternMismatch  = 205
	CodeInvalidType      = 206

	// Semantic errors.
	CodeRedeclaration      = 301
	CodeRedefinition       = 302
	CodeUndeclaredIdent    = 303
	CodeUndeclaredFunc     = 304
	CodeInitMismatch       = 305
	CodeAssignTarget       = 306
	CodeUndeclaredAssign   = 307
	CodeAssignMismatch     = 308
	CodeInvalidOperation   = 309
	CodeBuiltinArgs        = 310
	CodeReturnOutside      = 311
	CodeMissingReturnValue = 312
	CodeReturnMismatch     = 313
	CodeArgCount           = 314
	CodeNoProgram          = 315

	// Semantic warnings.
	CodeUnusedVariable = 351
	CodeShadowsGlobal  = 352
	CodeNeverCalled    = 353
	CodeGlobalUninit   = 354
	CodeLoopCondition  = 355
)

// ClassOf returns the class name of a diagnostic code.
func ClassOf(code int) string {
	switch {
	case 101 <= code && code < 200:
		return "Lexical"
	case code == CodePatternMismatch:
		return "Pattern"
	case 201 <= code && code < 300:
		return "Syntax"
	case 301 <= code && code < 400:
		return "Semantic"
	}

	return "Internal"
}
