package mods

import (
	"io/ioutil"
	"ngs/common"
	"ngs/report"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func writeModFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, common.ModuleFileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write module file: %s", err)
	}

	return dir
}

func TestLoadModule(t *testing.T) {
	report.InitReporter("silent")
	defer report.InitReporter("verbose")

	dir := writeModFile(t, `
[module]
name = "demo"
ngs-version = "0.3.0"
pattern-mode = "strict"
allow-global-decls = true
log-level = "warn"

[output]
directory = "build"
ast-dump = true
tables = true
`)

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("LoadModule failed: %s", err)
	}

	want := &NgsModule{
		Name:         "demo",
		Root:         dir,
		Version:      "0.3.0",
		EntryPoint:   common.DefaultEntryPoint,
		PatternMode:  "strict",
		AllowGlobals: true,
		LogLevel:     "warn",
		Output: OutputConfig{
			Directory: "build",
			ASTDump:   true,
			Tables:    true,
		},
	}

	if diff := pretty.Diff(want, mod); len(diff) > 0 {
		t.Errorf("unexpected module:\n%s", strings.Join(diff, "\n"))
	}

	if mod.OutputPath() != filepath.Join(dir, "build") {
		t.Errorf("OutputPath() = %s", mod.OutputPath())
	}
}

func TestLoadModuleDefaults(t *testing.T) {
	report.InitReporter("silent")
	defer report.InitReporter("verbose")

	dir := writeModFile(t, "[module]\nname = \"demo\"\nngs-version = \"0.3.7\"\n")

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("LoadModule failed: %s", err)
	}

	want := DefaultModule("demo")
	want.Root = dir
	want.Version = "0.3.7"

	if diff := pretty.Diff(want, mod); len(diff) > 0 {
		t.Errorf("unexpected module:\n%s", strings.Join(diff, "\n"))
	}
}

func TestLoadModuleErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing_table", "name = \"demo\"\n", "missing the [module] table"},
		{"missing_name", "[module]\nngs-version = \"0.3.0\"\n", "missing module name"},
		{"bad_name", "[module]\nname = \"9lives\"\nngs-version = \"0.3.0\"\n", "valid identifier"},
		{"bad_pattern_mode", "[module]\nname = \"demo\"\nngs-version = \"0.3.0\"\npattern-mode = \"loose\"\n", "invalid pattern mode `loose`"},
		{"bad_log_level", "[module]\nname = \"demo\"\nngs-version = \"0.3.0\"\nlog-level = \"loud\"\n", "invalid log level"},
		{"missing_version", "[module]\nname = \"demo\"\n", "does not specify an ngs-version"},
		{"malformed_version", "[module]\nname = \"demo\"\nngs-version = \"three\"\n", "malformed ngs-version"},
		{"major_mismatch", "[module]\nname = \"demo\"\nngs-version = \"1.0.0\"\n", "incompatible"},
		{"bad_toml", "[module\nname = \"demo\"\n", "error parsing module file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadModule(writeModFile(t, tt.content))
			if err == nil {
				t.Fatalf("expected an error containing %q", tt.want)
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadModuleMissingFile(t *testing.T) {
	dir := t.TempDir()

	if HasModuleFile(dir) {
		t.Fatal("empty directory reported as having a module file")
	}

	if _, err := LoadModule(dir); !os.IsNotExist(err) {
		t.Errorf("LoadModule error = %v, want a not-exist error", err)
	}
}

func TestInitModule(t *testing.T) {
	dir := t.TempDir()

	if err := InitModule("fresh", dir); err != nil {
		t.Fatalf("InitModule failed: %s", err)
	}

	if !HasModuleFile(dir) {
		t.Fatal("module file was not created")
	}

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("LoadModule of an initialized module failed: %s", err)
	}

	want := DefaultModule("fresh")
	want.Root = mod.Root

	if diff := pretty.Diff(want, mod); len(diff) > 0 {
		t.Errorf("initialized module does not round trip:\n%s", strings.Join(diff, "\n"))
	}

	if err := InitModule("fresh", dir); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second InitModule error = %v", err)
	}

	if err := InitModule("not-valid", t.TempDir()); err == nil {
		t.Error("InitModule accepted an invalid name")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"demo", true},
		{"_demo2", true},
		{"Demo_Mod", true},
		{"", false},
		{"2demo", false},
		{"de-mo", false},
		{"dé", false},
	}

	for _, tt := range tests {
		if got := IsValidIdentifier(tt.in); got != tt.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
