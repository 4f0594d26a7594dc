package report

import (
	"fmt"
	"sort"
)

// Severity distinguishes errors from warnings.
type Severity int

// Enumeration of severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}

	return "Error"
}

// Diagnostic is a single positioned compilation message.
type Diagnostic struct {
	Severity Severity

	// The numeric diagnostic code.  The code determines the class of the
	// diagnostic: see the enumerated codes.
	Code int

	Message string

	// The 1-indexed source position.  A zero line means the diagnostic has no
	// meaningful position (eg. end of analysis sweeps).
	Line, Col int

	// The offending lexeme or identifier.  May be empty.
	Lexeme string
}

// Class returns the diagnostic's class name derived from its code.
func (d *Diagnostic) Class() string {
	return ClassOf(d.Code)
}

// IsError returns whether the diagnostic is an error.
func (d *Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

func (d *Diagnostic) String() string {
	var msg string
	if d.Line > 0 {
		msg = fmt.Sprintf("%s at line %d, column %d: %s", d.Severity, d.Line, d.Col, d.Message)
	} else {
		msg = fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}

	if d.Lexeme != "" {
		msg += fmt.Sprintf(" ('%s')", d.Lexeme)
	}

	return msg
}

// -----------------------------------------------------------------------------

// Diagnostics is an ordered accumulator of diagnostics.  The parser and the
// semantic analyzer append to it instead of printing: rendering is left to the
// caller.
type Diagnostics struct {
	list []*Diagnostic

	errorCount int
}

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d *Diagnostic) {
	if d.IsError() {
		ds.errorCount++
	}

	ds.list = append(ds.list, d)
}

// Error records an error with the given code at the given position.
func (ds *Diagnostics) Error(code, line, col int, lexeme, msg string, args ...interface{}) {
	ds.Add(&Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(msg, args...),
		Line:     line,
		Col:      col,
		Lexeme:   lexeme,
	})
}

// Warn records a warning with the given code at the given position.
func (ds *Diagnostics) Warn(code, line, col int, lexeme, msg string, args ...interface{}) {
	ds.Add(&Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(msg, args...),
		Line:     line,
		Col:      col,
		Lexeme:   lexeme,
	})
}

// All returns every diagnostic in the order it was recorded.
func (ds *Diagnostics) All() []*Diagnostic {
	return ds.list
}

// Errors returns the recorded errors in order.
func (ds *Diagnostics) Errors() []*Diagnostic {
	return ds.filter(SeverityError)
}

// Warnings returns the recorded warnings in order.
func (ds *Diagnostics) Warnings() []*Diagnostic {
	return ds.filter(SeverityWarning)
}

func (ds *Diagnostics) filter(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range ds.list {
		if d.Severity == sev {
			out = append(out, d)
		}
	}

	return out
}

// ErrorCount returns the number of recorded errors.
func (ds *Diagnostics) ErrorCount() int {
	return ds.errorCount
}

// WarningCount returns the number of recorded warnings.
func (ds *Diagnostics) WarningCount() int {
	return len(ds.list) - ds.errorCount
}

// HasErrors returns whether any error was recorded.
func (ds *Diagnostics) HasErrors() bool {
	return ds.errorCount > 0
}

// Len returns the number of recorded diagnostics.
func (ds *Diagnostics) Len() int {
	return len(ds.list)
}

// Sorted returns a copy of the diagnostics ordered by position.  Diagnostics
// without a position keep their relative order and sort last.
func (ds *Diagnostics) Sorted() []*Diagnostic {
	out := make([]*Diagnostic, len(ds.list))
	copy(out, ds.list)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Line == 0) != (b.Line == 0) {
			return b.Line == 0
		}

		if a.Line != b.Line {
			return a.Line < b.Line
		}

		return a.Col < b.Col
	})

	return out
}
