package report

import "fmt"

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.  The lexer returns these.
type LocalCompileError struct {
	// The diagnostic code of the error.
	Code int

	// The error message.
	Message string

	// The 1-indexed position at which the error occurs.
	Line, Col int
}

func (lce *LocalCompileError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", lce.Line, lce.Col, lce.Message)
}

// Diagnostic converts the error into a diagnostic record.
func (lce *LocalCompileError) Diagnostic() *Diagnostic {
	return &Diagnostic{
		Severity: SeverityError,
		Code:     lce.Code,
		Message:  lce.Message,
		Line:     lce.Line,
		Col:      lce.Col,
	}
}

// Raise creates a new local compile error.
func Raise(code, line, col int, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
		Line:    line,
		Col:     col,
	}
}
