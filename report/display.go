package report

import (
	"bufio"
	"errors"
	"fmt"
	"ngs/common"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

func (cm *compileMessage) display() {
	cm.displayBanner()
	fmt.Println(cm.diag.String())

	if cm.diag.Line > 0 && cm.ctx != nil && cm.ctx.FilePath != "" {
		cm.displayCodeSelection()
	}
}

// displayBanner displays the banner on top of all compilation messages
func (cm *compileMessage) displayBanner() {
	fmt.Print("\n-- ")
	kindStr := cm.diag.Class()
	kindLen := len(kindStr)
	if cm.diag.IsError() {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 6
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 8
	}

	fmt.Print(" ")

	fileName := "<input>"
	if cm.ctx != nil && cm.ctx.ReprPath != "" {
		fileName = filepath.Base(cm.ctx.ReprPath)
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the erroneous line with its line number and
// underlines the offending lexeme.
func (cm *compileMessage) displayCodeSelection() {
	f, err := os.Open(cm.ctx.FilePath)
	if err != nil {
		return
	}
	defer f.Close()

	var line string
	found := false
	sc := bufio.NewScanner(f)
	for lineNumber := 1; sc.Scan(); lineNumber++ {
		if lineNumber == cm.diag.Line {
			line = strings.ReplaceAll(sc.Text(), "\t", " ")
			found = true
			break
		}
	}

	if !found {
		return
	}

	lineNumberWidth := len(strconv.Itoa(cm.diag.Line)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(lineNumberWidth) + "v"

	fmt.Println()
	InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, cm.diag.Line))
	fmt.Print("|  ")
	fmt.Println(line)

	caretCount := len(cm.diag.Lexeme)
	if caretCount == 0 {
		caretCount = 1
	}

	prefix := cm.diag.Col - 1
	if prefix < 0 || prefix > len(line) {
		prefix = 0
	}

	fmt.Print(strings.Repeat(" ", lineNumberWidth), "|  ")
	fmt.Print(strings.Repeat(" ", prefix))
	ErrorColorFG.Println(strings.Repeat("^", caretCount))
	fmt.Println()
}

// displayFatal displays a fatal error message.
func displayFatal(msg string) {
	fmt.Print("\n")
	PrintErrorMessage("Fatal Error", errors.New(msg))
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before starting
// compilation.
func displayCompileHeader(session, patternMode string) {
	fmt.Print("ngs ")
	InfoColorFG.Print("v" + common.NgsVersion)
	fmt.Print(" -- patterns: ")
	InfoColorFG.Print(patternMode)
	fmt.Print(" -- session: ")
	InfoColorFG.Println(session)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Exporting")

// displayBeginPhase displays the beginning of a compilation phase
func displayBeginPhase(phase string) {
	currentPhase = phase
	padding := maxPhaseLength - len(phase) + 2
	if padding < 1 {
		padding = 1
	}

	phaseText := phase + "..." + strings.Repeat(" ", padding)
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner, _ = spinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a compilation phase
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		padding := maxPhaseLength - len(currentPhase) + 2
		if padding < 1 {
			padding = 1
		}

		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", padding),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", padding))
		}

		phaseSpinner = nil
	}
}

// displayCompilationFinished displays a compilation finished message
func displayCompilationFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
