package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"ngs/ast"
	"ngs/common"
	"ngs/mods"
	"ngs/report"
	"ngs/syntax"
	"ngs/token"
	"ngs/walk"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// BuildOptions are the command line overrides of a module's configuration.
type BuildOptions struct {
	// OutputDir replaces the module's output directory when it is not empty.
	OutputDir string

	// PatternMode replaces the module's pattern mode when it is not empty.
	PatternMode string
}

// Compiler represents the state of a single compilation: one source file run
// through lexing, parsing, analysis and export.
type Compiler struct {
	// srcAbsPath is the absolute path to the source file.
	srcAbsPath string

	// mod is the module configuring the compilation.
	mod *mods.NgsModule

	// outputDir is the absolute path of the directory artifacts are written to.
	outputDir string

	// session is the identifier stamped on every artifact of this run.
	session string

	patternMode syntax.PatternMode
	ctx         *report.CompilationContext

	// diags collects the diagnostics of every phase.  reported is the number
	// of them already handed to the reporter.
	diags    *report.Diagnostics
	reported int

	toks   []*token.Token
	prog   *ast.Program
	checks []syntax.PatternCheck
	walker *walk.Walker
}

// NewCompiler creates a new compiler for the source file at srcPath
// configured by mod.
func NewCompiler(srcPath string, mod *mods.NgsModule, opts BuildOptions) (*Compiler, error) {
	// calculate the absolute path to the source file.
	srcAbsPath, err := filepath.Abs(srcPath)
	if err != nil {
		return nil, fmt.Errorf("error calculating absolute path: %s", err.Error())
	}

	modeName := mod.PatternMode
	if opts.PatternMode != "" {
		modeName = opts.PatternMode
	}

	mode, ok := syntax.ParsePatternMode(modeName)
	if !ok {
		return nil, fmt.Errorf("invalid pattern mode `%s`", modeName)
	}

	outputDir := mod.OutputPath()
	if opts.OutputDir != "" {
		if outputDir, err = filepath.Abs(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("error calculating absolute path: %s", err.Error())
		}
	}

	reprPath := filepath.Base(srcAbsPath)
	if mod.Root != "" {
		if rel, err := filepath.Rel(mod.Root, srcAbsPath); err == nil {
			reprPath = filepath.ToSlash(rel)
		}
	}

	return &Compiler{
		srcAbsPath:  srcAbsPath,
		mod:         mod,
		outputDir:   outputDir,
		session:     uuid.New().String(),
		patternMode: mode,
		ctx: &report.CompilationContext{
			FilePath: srcAbsPath,
			ReprPath: reprPath,
		},
		diags: &report.Diagnostics{},
	}, nil
}

// Session returns the session identifier of the compilation.
func (c *Compiler) Session() string {
	return c.session
}

// Diagnostics returns every diagnostic produced so far.
func (c *Compiler) Diagnostics() *report.Diagnostics {
	return c.diags
}

// ArtifactName returns the base name shared by every exported artifact: the
// name of the source file without its extension.
func (c *Compiler) ArtifactName() string {
	return strings.TrimSuffix(filepath.Base(c.srcAbsPath), filepath.Ext(c.srcAbsPath))
}

// Syntax runs the lexing and parsing phases of the compiler.
func (c *Compiler) Syntax() bool {
	if !c.runPhase("Lexing", c.lex) {
		return false
	}

	return c.runPhase("Parsing", c.parse)
}

// Check runs the lexing, parsing and analysis phases of the compiler.  It
// returns true if all of them succeeded.
func (c *Compiler) Check() bool {
	report.ReportCompileHeader(c.session, c.patternMode.String())

	if !c.Syntax() {
		return false
	}

	return c.runPhase("Analyzing", c.analyze)
}

// AST returns the parsed program.  It is `nil` until parsing has run.
func (c *Compiler) AST() *ast.Program {
	return c.prog
}

// Tokens returns the token stream of the source file.
func (c *Compiler) Tokens() []*token.Token {
	return c.toks
}

// PatternChecks returns the pattern checks made while parsing.
func (c *Compiler) PatternChecks() []syntax.PatternCheck {
	return c.checks
}

// Walker returns the semantic analyzer.  It is `nil` until analysis has run.
func (c *Compiler) Walker() *walk.Walker {
	return c.walker
}

// Build runs every phase of the compiler including the export of the enabled
// artifacts.  Analysis failures do not prevent the report and the tables from
// being exported since they describe those failures.
func (c *Compiler) Build() bool {
	ok := c.Check()
	if c.walker == nil {
		return false
	}

	report.ReportBeginPhase("Exporting")
	if err := c.Export(); err != nil {
		report.ReportEndPhase(false)
		report.PrintErrorMessage("Export Error", err)
		return false
	}
	report.ReportEndPhase(true)

	return ok
}

// runPhase runs a single phase of compilation and hands the diagnostics it
// produced to the reporter.
func (c *Compiler) runPhase(phase string, f func() bool) bool {
	report.ReportBeginPhase(phase)
	ok := f()
	report.ReportEndPhase(ok)

	for _, d := range c.diags.All()[c.reported:] {
		report.ReportCompileError(c.ctx, d)
	}
	c.reported = c.diags.Len()

	return ok
}

// lex reads the source file into a token stream.
func (c *Compiler) lex() bool {
	f, err := os.Open(c.srcAbsPath)
	if err != nil {
		report.ReportFatal("unable to open source file at `%s`: %s", c.srcAbsPath, err.Error())
		return false
	}
	defer f.Close()

	toks, err := syntax.Tokenize(f)
	if err != nil {
		var lce *report.LocalCompileError
		if errors.As(err, &lce) {
			c.diags.Add(lce.Diagnostic())
			return false
		}

		report.ReportFatal("error reading source file at `%s`: %s", c.srcAbsPath, err.Error())
		return false
	}

	c.toks = toks
	return true
}

// parse builds the AST and records the pattern checks made while parsing.
func (c *Compiler) parse() bool {
	p := syntax.NewParser(c.toks, syntax.ParserOptions{
		PatternMode:  c.patternMode,
		AllowGlobals: c.mod.AllowGlobals,
	}, c.diags)
	defer p.Close()

	ok := p.Parse()
	c.prog = p.AST()
	c.checks = p.PatternChecks()

	return ok
}

// analyze runs the semantic analyzer over the AST.
func (c *Compiler) analyze() bool {
	c.walker = walk.NewWalker(walk.WalkerOptions{EntryPoint: c.mod.EntryPoint}, c.diags)
	return c.walker.Analyze(c.prog)
}

// -----------------------------------------------------------------------------

// Export writes every artifact enabled by the module's output configuration
// to the output directory.  It can only be called after analysis has run.
func (c *Compiler) Export() error {
	if c.walker == nil {
		return errors.New("nothing to export: analysis has not run")
	}

	if err := os.MkdirAll(c.outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating output directory: %s", err.Error())
	}

	out := c.mod.Output
	if out.ASTDump {
		if err := c.writeArtifact(".ast.txt", func(w io.Writer) error {
			ast.Dump(w, c.prog)
			return nil
		}); err != nil {
			return err
		}
	}

	if out.ASTDot {
		if err := c.writeArtifact(".ast.dot", func(w io.Writer) error {
			ast.WriteDOT(w, c.prog)
			return nil
		}); err != nil {
			return err
		}
	}

	if out.Tables {
		if err := c.writeArtifact(".tables.yaml", func(w io.Writer) error {
			return walk.ExportTables(w, c.walker, c.session)
		}); err != nil {
			return err
		}
	}

	if out.Report {
		if err := c.writeArtifact(".report.txt", func(w io.Writer) error {
			c.WriteReport(w)
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

// writeArtifact creates the artifact with the given suffix and fills it.
func (c *Compiler) writeArtifact(suffix string, fill func(w io.Writer) error) error {
	path := filepath.Join(c.outputDir, c.ArtifactName()+suffix)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating `%s`: %s", path, err.Error())
	}
	defer f.Close()

	if err := fill(f); err != nil {
		return fmt.Errorf("error writing `%s`: %s", path, err.Error())
	}

	return nil
}

// WriteReport writes the full textual report: the analysis report followed by
// the symbol table, the function table, the type summary and the pattern
// checks.
func (c *Compiler) WriteReport(w io.Writer) {
	fmt.Fprint(w, c.walker.Report(c.session))
	fmt.Fprintln(w)
	c.walker.SymbolTable(w)
	fmt.Fprintln(w)
	c.walker.FunctionTable(w)
	fmt.Fprintln(w)
	c.walker.TypeSummary(w)
	fmt.Fprintln(w)
	writePatternChecks(w, c.patternMode, c.checks)
}

// writePatternChecks writes the outcome of the pattern checks grouped by
// production kind.
func writePatternChecks(w io.Writer, mode syntax.PatternMode, checks []syntax.PatternCheck) {
	fmt.Fprintln(w, "=== PATTERN CHECKS ===")
	fmt.Fprintf(w, "Mode: %s\n", mode)

	if len(checks) == 0 {
		fmt.Fprintln(w, "No pattern checks")
		return
	}

	matched := make(map[ast.NodeKind]int)
	total := make(map[ast.NodeKind]int)
	for _, check := range checks {
		total[check.Production]++
		if check.Matched {
			matched[check.Production]++
		}
	}

	kinds := make([]ast.NodeKind, 0, len(total))
	for kind := range total {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})

	for _, kind := range kinds {
		fmt.Fprintf(w, "  %s: %d/%d matched\n", kind, matched[kind], total[kind])
	}

	for _, check := range checks {
		if !check.Matched {
			fmt.Fprintf(w, "  unmatched %s at tokens %d-%d\n", check.Production, check.Start, check.End)
		}
	}
}

// -----------------------------------------------------------------------------

// findSources returns the source files to build for a path: the file itself
// or every source file directly inside a directory, sorted by name.
func findSources(path string) ([]string, error) {
	finfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !finfo.IsDir() {
		return []string{path}, nil
	}

	finfos, err := ioutil.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var srcs []string
	for _, fi := range finfos {
		if !fi.IsDir() && filepath.Ext(fi.Name()) == common.SrcFileExtension {
			srcs = append(srcs, filepath.Join(path, fi.Name()))
		}
	}

	if len(srcs) == 0 {
		return nil, fmt.Errorf("no `%s` files in `%s`", common.SrcFileExtension, path)
	}

	return srcs, nil
}

// loadModuleFor loads the module enclosing a source path.  A directory holding
// a module file is loaded from that file.  Otherwise the default module named
// after the source is used and rooted at the source's directory.
func loadModuleFor(path string) (*mods.NgsModule, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dir := abspath
	if finfo, err := os.Stat(abspath); err != nil {
		return nil, err
	} else if !finfo.IsDir() {
		dir = filepath.Dir(abspath)
	}

	if mods.HasModuleFile(dir) {
		return mods.LoadModule(dir)
	}

	name := strings.TrimSuffix(filepath.Base(abspath), filepath.Ext(abspath))
	if !mods.IsValidIdentifier(name) {
		name = "main"
	}

	mod := mods.DefaultModule(name)
	mod.Root = dir
	return mod, nil
}
