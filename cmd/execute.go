package cmd

import (
	"errors"
	"fmt"
	"ngs/ast"
	"ngs/common"
	"ngs/fst"
	"ngs/mods"
	"ngs/report"
	"ngs/syntax"
	"os"
	"strconv"
	"strings"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `ngs` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("ngs", "ngs is a tool for checking and compiling ngs programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile source code and export its artifacts", true)
	buildCmd.AddPrimaryArg("path", "the source file or module directory to build", true)
	buildCmd.AddStringArg("output", "o", "the directory to write artifacts to", false)
	buildCmd.AddSelectorArg("pattern-mode", "pm", "the pattern checking mode", false, []string{"off", "record", "strict"})

	checkCmd := cli.AddSubcommand("check", "check a source file and print the analysis report", true)
	checkCmd.AddPrimaryArg("file", "the source file to check", true)

	dumpCmd := cli.AddSubcommand("dump", "print the syntax tree of a source file", true)
	dumpCmd.AddPrimaryArg("file", "the source file to parse", true)
	formatArg := dumpCmd.AddSelectorArg("format", "f", "the output format", false, []string{"text", "dot"})
	formatArg.SetDefaultValue("text")

	rulesCmd := cli.AddSubcommand("rules", "print the structural pattern rules", false)
	rulesCmd.AddStringArg("rule", "t", "the name of the single rule to print", false)

	matchCmd := cli.AddSubcommand("match", "list the pattern rules matching a source file", true)
	matchCmd.AddPrimaryArg("file", "the source file to match", true)
	matchCmd.AddStringArg("position", "p", "the token position to match at", false)

	initCmd := cli.AddSubcommand("init", "initialize a module in the working directory", true)
	initCmd.AddPrimaryArg("name", "the name of the module", true)

	cli.AddSubcommand("version", "print the ngs version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	// the log level is left unset when not given so that the module's log
	// level can apply
	loglevel := ""
	if llArg, ok := result.Arguments["loglevel"]; ok {
		loglevel = llArg.(string)
	}

	// process the inputed command line
	success := true
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		success = execBuildCommand(subResult, loglevel)
	case "check":
		success = execCheckCommand(subResult, loglevel)
	case "dump":
		success = execDumpCommand(subResult)
	case "rules":
		success = execRulesCommand(subResult)
	case "match":
		success = execMatchCommand(subResult)
	case "init":
		success = execInitCommand(subResult)
	case "version":
		report.PrintInfoMessage("ngs Version", common.NgsVersion)
	}

	if !success {
		os.Exit(1)
	}
}

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(result *olive.ArgParseResult, loglevel string) bool {
	path, _ := result.PrimaryArg()

	opts := BuildOptions{}
	if outArg, ok := result.Arguments["output"]; ok {
		opts.OutputDir = outArg.(string)
	}

	if pmArg, ok := result.Arguments["pattern-mode"]; ok {
		opts.PatternMode = pmArg.(string)
	}

	mod, ok := setupModule(path, loglevel)
	if !ok {
		return false
	}

	srcs, err := findSources(path)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return false
	}

	success := true
	for _, src := range srcs {
		c, err := NewCompiler(src, mod, opts)
		if err != nil {
			report.PrintErrorMessage("Config Error", err)
			return false
		}

		if !c.Build() {
			success = false
		}
	}

	report.ReportCompilationFinished()
	return success
}

// execCheckCommand executes the check subcommand: the analysis phases followed
// by the printed report
func execCheckCommand(result *olive.ArgParseResult, loglevel string) bool {
	path, _ := result.PrimaryArg()

	mod, ok := setupModule(path, loglevel)
	if !ok {
		return false
	}

	c, err := NewCompiler(path, mod, BuildOptions{})
	if err != nil {
		report.PrintErrorMessage("Config Error", err)
		return false
	}

	success := c.Check()
	report.ReportCompilationFinished()

	if c.Walker() != nil && report.LogLevel() > report.LogLevelSilent {
		fmt.Println()
		c.WriteReport(os.Stdout)
	}

	return success
}

// execDumpCommand executes the dump subcommand.  Only errors are displayed so
// that the output can be piped.
func execDumpCommand(result *olive.ArgParseResult) bool {
	path, _ := result.PrimaryArg()

	c, ok := newQuietCompiler(path)
	if !ok {
		return false
	}

	if !c.Syntax() {
		return false
	}

	if result.Arguments["format"].(string) == "dot" {
		ast.WriteDOT(os.Stdout, c.AST())
	} else {
		ast.Dump(os.Stdout, c.AST())
	}

	return true
}

// execRulesCommand executes the rules subcommand
func execRulesCommand(result *olive.ArgParseResult) bool {
	e := fst.NewEngine()
	e.InitRules()
	defer e.Cleanup()

	ruleArg, ok := result.Arguments["rule"]
	if !ok {
		e.PrintAllRules(os.Stdout)
		return true
	}

	rule, ok := e.Rule(ruleArg.(string))
	if !ok {
		report.PrintErrorMessage("Rule Error", fmt.Errorf("no rule named `%s`", ruleArg))
		return false
	}

	fmt.Printf("Rule: %s\n", rule.Name)
	e.PrintChain(os.Stdout, rule.Start)
	return true
}

// execMatchCommand executes the match subcommand
func execMatchCommand(result *olive.ArgParseResult) bool {
	path, _ := result.PrimaryArg()

	pos := 0
	if posArg, ok := result.Arguments["position"]; ok {
		n, err := strconv.Atoi(posArg.(string))
		if err != nil || n < 0 {
			report.PrintErrorMessage("CLI Usage Error", fmt.Errorf("invalid token position `%s`", posArg))
			return false
		}

		pos = n
	}

	c, ok := newQuietCompiler(path)
	if !ok {
		return false
	}

	if !c.runPhase("Lexing", c.lex) {
		return false
	}

	toks := c.Tokens()
	if pos >= len(toks) {
		report.PrintErrorMessage("CLI Usage Error", fmt.Errorf("token position %d is past the end of the file (%d tokens)", pos, len(toks)))
		return false
	}

	e := fst.NewEngine()
	e.InitRules()
	defer e.Cleanup()

	fmt.Printf("Matches at token %d (%s):\n", pos, toks[pos].Kind)

	matches := e.FindMatchingRules(toks, pos)
	if len(matches) == 0 {
		fmt.Println("  none")
		return true
	}

	fmt.Println("  " + strings.Join(matches, "\n  "))
	return true
}

// execInitCommand executes the init subcommand
func execInitCommand(result *olive.ArgParseResult) bool {
	name, _ := result.PrimaryArg()

	workDir, err := os.Getwd()
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return false
	}

	if err := mods.InitModule(name, workDir); err != nil {
		report.PrintErrorMessage("Module Init Error", err)
		return false
	}

	report.PrintInfoMessage("Module Initialized", name)
	return true
}

// -----------------------------------------------------------------------------

// setupModule initializes the reporter and loads the module enclosing path.
// The log level given on the command line takes precedence over the module's.
func setupModule(path, loglevel string) (*mods.NgsModule, bool) {
	report.InitReporter(loglevel)

	mod, err := loadModuleFor(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.New("no such file or directory: " + path)
		}

		report.PrintErrorMessage("Module Load Error", err)
		return nil, false
	}

	if loglevel == "" && mod.LogLevel != "" {
		report.InitReporter(mod.LogLevel)
	}

	return mod, true
}

// newQuietCompiler creates a compiler for the commands that write their result
// to standard out: only errors are displayed.
func newQuietCompiler(path string) (*Compiler, bool) {
	report.InitReporter("error")

	mod, err := loadModuleFor(path)
	if err != nil {
		report.PrintErrorMessage("Module Load Error", err)
		return nil, false
	}

	c, err := NewCompiler(path, mod, BuildOptions{PatternMode: syntax.PatternOff.String()})
	if err != nil {
		report.PrintErrorMessage("Config Error", err)
		return nil, false
	}

	return c, true
}
