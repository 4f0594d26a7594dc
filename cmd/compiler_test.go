package cmd

import (
	"io/ioutil"
	"ngs/ast"
	"ngs/common"
	"ngs/mods"
	"ngs/report"
	"ngs/syntax"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validSource = `int algo add(int a, int b) {
    return a + b;
}

ces {
    est int x = add(1, 2);
    proclaim(x);
}
`

// setupSource writes a source file into a fresh directory and returns the
// path of the file and the default module rooted at that directory.
func setupSource(t *testing.T, name, src string) (string, *mods.NgsModule) {
	t.Helper()

	report.InitReporter("silent")
	t.Cleanup(func() { report.InitReporter("verbose") })

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write source file: %s", err)
	}

	mod := mods.DefaultModule("demo")
	mod.Root = dir
	return path, mod
}

func readArtifact(t *testing.T, path string) string {
	t.Helper()

	buff, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("missing artifact: %s", err)
	}

	return string(buff)
}

func TestCompilerBuild(t *testing.T) {
	path, mod := setupSource(t, "demo.ngs", validSource)

	c, err := NewCompiler(path, mod, BuildOptions{})
	if err != nil {
		t.Fatalf("NewCompiler failed: %s", err)
	}

	if !c.Build() {
		t.Fatalf("build failed: %v", c.Diagnostics().All())
	}

	if c.ArtifactName() != "demo" {
		t.Errorf("ArtifactName() = %s", c.ArtifactName())
	}

	outDir := filepath.Join(mod.Root, "out")

	dump := readArtifact(t, filepath.Join(outDir, "demo.ast.txt"))
	if dump != ast.DumpString(c.AST()) {
		t.Errorf("AST dump does not match the parsed program:\n%s", dump)
	}

	if dot := readArtifact(t, filepath.Join(outDir, "demo.ast.dot")); !strings.HasPrefix(dot, "digraph") {
		t.Errorf("DOT export =\n%s", dot)
	}

	tables := readArtifact(t, filepath.Join(outDir, "demo.tables.yaml"))
	if !strings.HasPrefix(tables, "session: "+c.Session()+"\n") || !strings.Contains(tables, "name: add") {
		t.Errorf("tables export =\n%s", tables)
	}

	rep := readArtifact(t, filepath.Join(outDir, "demo.report.txt"))
	for _, want := range []string{
		"=== SEMANTIC ANALYSIS REPORT ===\nSession: " + c.Session() + "\nErrors: 0\nWarnings: 0\n",
		"=== SYMBOL TABLE ===\nNo global symbols\n",
		"=== FUNCTION TABLE ===\nFunctions (1):\n",
		"=== TYPE SUMMARY ===\nint: 3 variables\n",
		"=== PATTERN CHECKS ===\nMode: record\n",
	} {
		if !strings.Contains(rep, want) {
			t.Errorf("report does not contain %q:\n%s", want, rep)
		}
	}

	if len(c.PatternChecks()) == 0 {
		t.Error("no pattern checks were recorded")
	}
}

func TestCompilerBuildWithErrors(t *testing.T) {
	path, mod := setupSource(t, "broken.ngs", "ces { proclaim(y); }\n")

	c, err := NewCompiler(path, mod, BuildOptions{})
	if err != nil {
		t.Fatalf("NewCompiler failed: %s", err)
	}

	if c.Build() {
		t.Fatal("build of an invalid program succeeded")
	}

	errs := c.Diagnostics().Errors()
	if len(errs) != 1 || errs[0].Code != report.CodeUndeclaredIdent {
		t.Fatalf("errors = %v", errs)
	}

	// the report still documents the failure
	rep := readArtifact(t, filepath.Join(mod.Root, "out", "broken.report.txt"))
	if !strings.Contains(rep, "Undeclared identifier 'y'") {
		t.Errorf("report =\n%s", rep)
	}
}

func TestCompilerStopsAtSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code int
	}{
		{"lexical", "ces { est string s = \"abc; }", report.CodeUnclosedString},
		{"syntax", "ces { est int = 1; }", report.CodeUnexpectedToken},
		{"missing_main", "procedure algo p() {}", report.CodeMainBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, mod := setupSource(t, tt.name+".ngs", tt.src)

			c, err := NewCompiler(path, mod, BuildOptions{})
			if err != nil {
				t.Fatalf("NewCompiler failed: %s", err)
			}

			if c.Build() {
				t.Fatal("build succeeded")
			}

			if c.Walker() != nil {
				t.Error("analysis ran after a failed phase")
			}

			errs := c.Diagnostics().Errors()
			if len(errs) == 0 || errs[0].Code != tt.code {
				t.Errorf("errors = %v, want code %d first", errs, tt.code)
			}

			if _, err := os.Stat(filepath.Join(mod.Root, "out")); !os.IsNotExist(err) {
				t.Error("artifacts were exported")
			}
		})
	}
}

func TestCompilerOptions(t *testing.T) {
	path, mod := setupSource(t, "demo.ngs", validSource)
	mod.Output.ASTDot = false
	mod.Output.Tables = false

	outDir := filepath.Join(t.TempDir(), "artifacts")

	c, err := NewCompiler(path, mod, BuildOptions{OutputDir: outDir, PatternMode: "strict"})
	if err != nil {
		t.Fatalf("NewCompiler failed: %s", err)
	}

	if !c.Build() {
		t.Fatalf("build failed: %v", c.Diagnostics().All())
	}

	finfos, err := ioutil.ReadDir(outDir)
	if err != nil {
		t.Fatalf("output directory was not created: %s", err)
	}

	var names []string
	for _, fi := range finfos {
		names = append(names, fi.Name())
	}

	if strings.Join(names, " ") != "demo.ast.txt demo.report.txt" {
		t.Errorf("artifacts = %v", names)
	}

	if !strings.Contains(readArtifact(t, filepath.Join(outDir, "demo.report.txt")), "Mode: strict\n") {
		t.Error("pattern mode override was not applied")
	}

	if _, err := NewCompiler(path, mod, BuildOptions{PatternMode: "loose"}); err == nil {
		t.Error("NewCompiler accepted an invalid pattern mode")
	}
}

func TestWritePatternChecks(t *testing.T) {
	checks := []syntax.PatternCheck{
		{Production: ast.KindVariableDecl, Start: 2, End: 6, Matched: true, Rule: "variable_declaration", Length: 4},
		{Production: ast.KindBlock, Start: 0, End: 20, Matched: true, Rule: "main_block", Length: 2},
		{Production: ast.KindVariableDecl, Start: 7, End: 19},
	}

	sb := &strings.Builder{}
	writePatternChecks(sb, syntax.PatternRecord, checks)

	want := strings.Join([]string{
		"=== PATTERN CHECKS ===",
		"Mode: record",
		"  VAR: 1/2 matched",
		"  BLOCK: 1/1 matched",
		"  unmatched VAR at tokens 7-19",
		"",
	}, "\n")

	if sb.String() != want {
		t.Errorf("pattern checks =\n%s\nwant\n%s", sb.String(), want)
	}

	sb.Reset()
	writePatternChecks(sb, syntax.PatternOff, nil)

	if sb.String() != "=== PATTERN CHECKS ===\nMode: off\nNo pattern checks\n" {
		t.Errorf("empty pattern checks =\n%s", sb.String())
	}
}

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ngs", "a.ngs", "notes.txt"} {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte("ces {}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	srcs, err := findSources(dir)
	if err != nil {
		t.Fatalf("findSources failed: %s", err)
	}

	if len(srcs) != 2 || filepath.Base(srcs[0]) != "a.ngs" || filepath.Base(srcs[1]) != "b.ngs" {
		t.Errorf("sources = %v", srcs)
	}

	single := filepath.Join(dir, "a.ngs")
	if srcs, err := findSources(single); err != nil || len(srcs) != 1 || srcs[0] != single {
		t.Errorf("findSources(file) = %v, %v", srcs, err)
	}

	if _, err := findSources(t.TempDir()); err == nil {
		t.Error("findSources accepted a directory without sources")
	}
}

func TestLoadModuleFor(t *testing.T) {
	report.InitReporter("silent")
	defer report.InitReporter("verbose")

	dir := t.TempDir()
	src := filepath.Join(dir, "hello.ngs")
	if err := ioutil.WriteFile(src, []byte("ces {}"), 0644); err != nil {
		t.Fatal(err)
	}

	mod, err := loadModuleFor(src)
	if err != nil {
		t.Fatalf("loadModuleFor failed: %s", err)
	}

	if mod.Name != "hello" || mod.Root != dir || mod.PatternMode != "record" {
		t.Errorf("default module = %+v", mod)
	}

	if err := mods.InitModule("proj", dir); err != nil {
		t.Fatalf("InitModule failed: %s", err)
	}

	mod, err = loadModuleFor(src)
	if err != nil {
		t.Fatalf("loadModuleFor failed: %s", err)
	}

	if mod.Name != "proj" || mod.EntryPoint != common.DefaultEntryPoint {
		t.Errorf("loaded module = %+v", mod)
	}
}
