package report

import (
	"fmt"
	"os"
)

// InitReporter initializes the global reporter with the named log level.
func InitReporter(logLevelName string) {
	rep = newReporter(LogLevelFromName(logLevelName))
}

// LogLevel returns the log level of the global reporter.
func LogLevel() int {
	return rep.logLevel
}

// ShouldProceed indicates whether or not there have been any errors that
// should cause compilation to stop at the current phase.
func ShouldProceed() bool {
	return rep.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportDiagnostics hands every diagnostic of a compilation phase to the
// reporter in recorded order.
func ReportDiagnostics(ctx *CompilationContext, diags *Diagnostics) {
	for _, d := range diags.All() {
		rep.handleMsg(&compileMessage{ctx: ctx, diag: d})
	}
}

// ReportCompileError reports a single compilation error.
func ReportCompileError(ctx *CompilationContext, d *Diagnostic) {
	rep.handleMsg(&compileMessage{ctx: ctx, diag: d})
}

// ReportFatal reports a fatal error and exits the program.  These are errors
// that should cause all compilation to stop immediately: missing input files,
// invalid configuration, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		displayFatal(fmt.Sprintf(msg, args...))
		rep.m.Unlock()
	}

	os.Exit(1)
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.  These provide additional information about the
// compilation process to the user so as to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: the compiler version,
// the session and the pattern checking mode.
func ReportCompileHeader(session, patternMode string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(session, patternMode)
	}
}

// ReportBeginPhase indicates the start of a compilation phase.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// ReportEndPhase indicates the end of the current compilation phase.
func ReportEndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// ReportCompilationFinished reports the concluding message for compilation:
// all deferred warnings followed by the error and warning counts.
func ReportCompilationFinished() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		for _, warning := range rep.warnings {
			warning.display()
		}
	}

	rep.warnings = nil

	if rep.logLevel > LogLevelSilent {
		displayCompilationFinished(rep.errorCount == 0, rep.errorCount, rep.warningCount)
	}
}
