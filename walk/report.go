package walk

import (
	"fmt"
	"io"
	"ngs/report"
	"sort"
	"strings"
	"text/tabwriter"
)

// Report generates the human readable analysis report: the diagnostic counts,
// the diagnostics themselves and statistics over the symbol and function
// tables.
func (w *Walker) Report(sessionID string) string {
	sb := &strings.Builder{}

	sb.WriteString("=== SEMANTIC ANALYSIS REPORT ===\n")
	if sessionID != "" {
		fmt.Fprintf(sb, "Session: %s\n", sessionID)
	}

	errs, warnings := w.diags.Errors(), w.diags.Warnings()
	fmt.Fprintf(sb, "Errors: %d\n", len(errs))
	fmt.Fprintf(sb, "Warnings: %d\n\n", len(warnings))

	writeDiagnostics(sb, "ERRORS:", errs)
	writeDiagnostics(sb, "WARNINGS:", warnings)

	used, initialized := 0, 0
	for _, sym := range w.globalOrder {
		if sym.Used {
			used++
		}

		if sym.Initialized {
			initialized++
		}
	}

	called := 0
	for _, fn := range w.funcOrder {
		if fn.Called {
			called++
		}
	}

	nGlobals, nFuncs := len(w.globalOrder), len(w.funcOrder)

	sb.WriteString("STATISTICS:\n")
	fmt.Fprintf(sb, "  Global symbols: %d\n", nGlobals)
	fmt.Fprintf(sb, "  Functions: %d\n", nFuncs)
	fmt.Fprintf(sb, "  Used variables: %d/%d\n", used, nGlobals)
	fmt.Fprintf(sb, "  Initialized variables: %d/%d\n", initialized, nGlobals)
	fmt.Fprintf(sb, "  Called functions: %d/%d\n", called, nFuncs)

	return sb.String()
}

func writeDiagnostics(sb *strings.Builder, title string, diags []*report.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	sb.WriteString(title)
	sb.WriteRune('\n')

	for _, d := range diags {
		sb.WriteString("  ")
		sb.WriteString(d.String())
		sb.WriteRune('\n')
	}

	sb.WriteRune('\n')
}

// -----------------------------------------------------------------------------

// SymbolTable writes the global symbol table.
func (w *Walker) SymbolTable(out io.Writer) {
	fmt.Fprintln(out, "=== SYMBOL TABLE ===")

	if len(w.globalOrder) == 0 {
		fmt.Fprintln(out, "No global symbols")
		return
	}

	fmt.Fprintf(out, "Global symbols (%d):\n", len(w.globalOrder))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tType\tInitialized\tUsed\tContext")
	for _, sym := range w.globalOrder {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", sym.Name, sym.Type, yesNo(sym.Initialized), yesNo(sym.Used), sym.Context)
	}

	tw.Flush()
}

// FunctionTable writes the function table.
func (w *Walker) FunctionTable(out io.Writer) {
	fmt.Fprintln(out, "=== FUNCTION TABLE ===")

	if len(w.funcOrder) == 0 {
		fmt.Fprintln(out, "No functions")
		return
	}

	fmt.Fprintf(out, "Functions (%d):\n", len(w.funcOrder))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tReturn Type\tDefined\tCalled\tParams\tLine")
	for _, fn := range w.funcOrder {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", fn.Name, fn.ReturnType, yesNo(fn.Defined), yesNo(fn.Called), len(fn.Params), fn.DeclLine())
	}

	tw.Flush()
}

// TypeSummary writes the number of declared variables and parameters of each
// type, sorted by type name.
func (w *Walker) TypeSummary(out io.Writer) {
	fmt.Fprintln(out, "=== TYPE SUMMARY ===")

	counts := make(map[string]int)
	for _, sym := range w.symbols {
		counts[sym.Type.Name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "%s: %d variables\n", name, counts[name])
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
