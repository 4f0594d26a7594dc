package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"ngs/common"
	"ngs/report"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"
)

// NgsModule represents a project: a directory holding an `ngs-mod.toml` file
// and the source files it compiles.
type NgsModule struct {
	// Name is the name of the module.  It is also the base name of every
	// exported artifact.
	Name string

	// Root is the absolute path to the directory enclosing the module file.
	// It is empty for modules that were not loaded from disk.
	Root string

	// Version is the compiler version the module was written for.
	Version string

	// EntryPoint names the function that is never reported as uncalled.
	EntryPoint string

	// PatternMode is the name of the pattern checking mode.
	PatternMode string

	// AllowGlobals enables top-level `est` declarations.
	AllowGlobals bool

	// LogLevel is the log level used when the command line does not override
	// it.  It may be empty.
	LogLevel string

	Output OutputConfig
}

// OutputConfig selects which artifacts a build produces and where.
type OutputConfig struct {
	// Directory is the output directory relative to the module root.
	Directory string

	ASTDump bool
	ASTDot  bool
	Tables  bool
	Report  bool
}

// OutputPath returns the absolute path of the output directory.
func (m *NgsModule) OutputPath() string {
	if filepath.IsAbs(m.Output.Directory) {
		return m.Output.Directory
	}

	return filepath.Join(m.Root, m.Output.Directory)
}

// -----------------------------------------------------------------------------

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
	Output *tomlOutput `toml:"output"`
}

// tomlModule represents the `[module]` table
type tomlModule struct {
	Name         string `toml:"name"`
	Version      string `toml:"ngs-version"`
	EntryPoint   string `toml:"entry-point"`
	PatternMode  string `toml:"pattern-mode"`
	AllowGlobals bool   `toml:"allow-global-decls"`
	LogLevel     string `toml:"log-level,omitempty"`
}

// tomlOutput represents the `[output]` table
type tomlOutput struct {
	Directory string `toml:"directory"`
	ASTDump   bool   `toml:"ast-dump"`
	ASTDot    bool   `toml:"ast-dot"`
	Tables    bool   `toml:"tables"`
	Report    bool   `toml:"report"`
}

// patternModes lists the accepted values of `pattern-mode`
var patternModes = map[string]struct{}{
	"off":    {},
	"record": {},
	"strict": {},
}

// logLevels lists the accepted values of `log-level`
var logLevels = map[string]struct{}{
	"silent":  {},
	"error":   {},
	"warn":    {},
	"verbose": {},
}

// DefaultModule returns the module used when no module file is present: every
// export is enabled and patterns are recorded but not enforced.
func DefaultModule(name string) *NgsModule {
	return &NgsModule{
		Name:        name,
		Version:     common.NgsVersion,
		EntryPoint:  common.DefaultEntryPoint,
		PatternMode: "record",
		Output: OutputConfig{
			Directory: "out",
			ASTDump:   true,
			ASTDot:    true,
			Tables:    true,
			Report:    true,
		},
	}
}

// HasModuleFile reports whether dir contains a module file.
func HasModuleFile(dir string) bool {
	finfo, err := os.Stat(filepath.Join(dir, common.ModuleFileName))
	return err == nil && !finfo.IsDir()
}

// LoadModule loads and validates the module file in dir.  Optional fields of
// the `[module]` table keep the values of `DefaultModule` and so does the
// whole `[output]` table when it is omitted.
func LoadModule(dir string) (*NgsModule, error) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	// open file
	f, err := os.Open(filepath.Join(abspath, common.ModuleFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, fmt.Errorf("error parsing module file at `%s`: %s", abspath, err.Error())
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("module file at `%s` is missing the [module] table", abspath)
	}

	if err := validateModule(abspath, tmf.Module); err != nil {
		return nil, err
	}

	mod := DefaultModule(tmf.Module.Name)
	mod.Root = abspath
	mod.Version = tmf.Module.Version
	mod.AllowGlobals = tmf.Module.AllowGlobals
	mod.LogLevel = tmf.Module.LogLevel

	if tmf.Module.EntryPoint != "" {
		mod.EntryPoint = tmf.Module.EntryPoint
	}

	if tmf.Module.PatternMode != "" {
		mod.PatternMode = tmf.Module.PatternMode
	}

	if tmf.Output != nil {
		mod.Output = OutputConfig{
			Directory: tmf.Output.Directory,
			ASTDump:   tmf.Output.ASTDump,
			ASTDot:    tmf.Output.ASTDot,
			Tables:    tmf.Output.Tables,
			Report:    tmf.Output.Report,
		}

		if mod.Output.Directory == "" {
			mod.Output.Directory = "out"
		}
	}

	return mod, nil
}

// validateModule checks that the module table is valid
func validateModule(abspath string, tm *tomlModule) error {
	if tm.Name == "" {
		return fmt.Errorf("missing module name for module at `%s`", abspath)
	}

	if !IsValidIdentifier(tm.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if tm.PatternMode != "" {
		if _, ok := patternModes[tm.PatternMode]; !ok {
			return fmt.Errorf("invalid pattern mode `%s`: expected `off`, `record` or `strict`", tm.PatternMode)
		}
	}

	if tm.LogLevel != "" {
		if _, ok := logLevels[tm.LogLevel]; !ok {
			return fmt.Errorf("invalid log level `%s`", tm.LogLevel)
		}
	}

	if tm.EntryPoint != "" && !IsValidIdentifier(tm.EntryPoint) {
		return errors.New("entry point must be a valid identifier")
	}

	return checkVersion(tm)
}

// checkVersion rejects modules written for a different major version of the
// compiler and warns about any other mismatch.
func checkVersion(tm *tomlModule) error {
	if tm.Version == "" {
		return fmt.Errorf("module `%s` does not specify an ngs-version", tm.Name)
	}

	modVersion, ngsVersion := "v"+tm.Version, "v"+common.NgsVersion
	if !semver.IsValid(modVersion) {
		return fmt.Errorf("module `%s` has a malformed ngs-version: `%s`", tm.Name, tm.Version)
	}

	if semver.Major(modVersion) != semver.Major(ngsVersion) {
		return fmt.Errorf("module `%s` requires ngs v%s which is incompatible with the current version (v%s)",
			tm.Name,
			tm.Version,
			common.NgsVersion,
		)
	}

	if semver.Compare(modVersion, ngsVersion) != 0 && report.LogLevel() >= report.LogLevelWarn {
		report.PrintWarningMessage("Module", fmt.Sprintf("version of module `%s` (v%s) does not match current ngs version (v%s)",
			tm.Name,
			tm.Version,
			common.NgsVersion,
		))
	}

	return nil
}

// InitModule creates a new module with the given name in the directory dir.
func InitModule(name, dir string) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(dir, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("module file error: %s", err.Error())
	}

	// validate module name
	if !IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	def := DefaultModule(name)
	tmf := &tomlModuleFile{
		Module: &tomlModule{
			Name:        def.Name,
			Version:     def.Version,
			EntryPoint:  def.EntryPoint,
			PatternMode: def.PatternMode,
		},
		Output: &tomlOutput{
			Directory: def.Output.Directory,
			ASTDump:   def.Output.ASTDump,
			ASTDot:    def.Output.ASTDot,
			Tables:    def.Output.Tables,
			Report:    def.Output.Report,
		},
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(tmf); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, entry point, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
