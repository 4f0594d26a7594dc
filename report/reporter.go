package report

import "sync"

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The total number of errors and warnings reported.
	errorCount, warningCount int

	// The warnings to display at the end of compilation.
	warnings []*compileMessage
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// compileMessage is a diagnostic paired with the file it occurred in.
type compileMessage struct {
	ctx  *CompilationContext
	diag *Diagnostic
}

// CompilationContext identifies the source file a batch of diagnostics belongs
// to.
type CompilationContext struct {
	// The path used to read the source text when displaying code selections.
	// It may be empty in which case no source text is displayed.
	FilePath string

	// The path displayed to the user.
	ReprPath string
}

// rep is the global reporter instance.
var rep = newReporter(LogLevelVerbose)

func newReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// LogLevelFromName converts a log level name into its enumerated value.
// Everything else (including invalid log levels) defaults to verbose.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// handleMsg prompts the reporter to process a message.  Errors are displayed
// immediately while warnings are deferred until compilation finishes.
func (r *Reporter) handleMsg(cm *compileMessage) {
	r.m.Lock()
	defer r.m.Unlock()

	if cm.diag.IsError() {
		r.errorCount++

		if r.logLevel > LogLevelSilent {
			displayEndPhase(false)
			cm.display()
		}
	} else {
		r.warningCount++
		r.warnings = append(r.warnings, cm)
	}
}
