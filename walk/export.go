package walk

import (
	"io"
	"ngs/common"

	"gopkg.in/yaml.v3"
)

type tableExport struct {
	Session     string             `yaml:"session,omitempty"`
	Globals     []symbolExport     `yaml:"globals"`
	Functions   []functionExport   `yaml:"functions"`
	Diagnostics []diagnosticExport `yaml:"diagnostics,omitempty"`
}

type symbolExport struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Target      string `yaml:"target"`
	Initialized bool   `yaml:"initialized"`
	Used        bool   `yaml:"used"`
	Context     string `yaml:"context"`
	Line        int    `yaml:"line,omitempty"`
}

type functionExport struct {
	Name       string         `yaml:"name"`
	ReturnType string         `yaml:"return_type"`
	Target     string         `yaml:"target"`
	Defined    bool           `yaml:"defined"`
	Called     bool           `yaml:"called"`
	Line       int            `yaml:"line,omitempty"`
	Params     []symbolExport `yaml:"params,omitempty"`
}

type diagnosticExport struct {
	Severity string `yaml:"severity"`
	Class    string `yaml:"class"`
	Code     int    `yaml:"code"`
	Line     int    `yaml:"line,omitempty"`
	Col      int    `yaml:"col,omitempty"`
	Message  string `yaml:"message"`
}

// ExportTables writes the global symbol table, the function table and the
// recorded diagnostics of an analysis as a YAML document.  These tables are
// the handoff to code generation tools.
func ExportTables(out io.Writer, w *Walker, sessionID string) error {
	doc := tableExport{
		Session:   sessionID,
		Globals:   []symbolExport{},
		Functions: []functionExport{},
	}

	for _, sym := range w.globalOrder {
		doc.Globals = append(doc.Globals, exportSymbol(sym))
	}

	for _, fn := range w.funcOrder {
		fe := functionExport{
			Name:       fn.Name,
			ReturnType: fn.ReturnType.Name,
			Target:     fn.ReturnType.Target,
			Defined:    fn.Defined,
			Called:     fn.Called,
			Line:       fn.DeclLine(),
		}

		for _, param := range fn.Params {
			fe.Params = append(fe.Params, exportSymbol(param))
		}

		doc.Functions = append(doc.Functions, fe)
	}

	for _, d := range w.diags.All() {
		doc.Diagnostics = append(doc.Diagnostics, diagnosticExport{
			Severity: d.Severity.String(),
			Class:    d.Class(),
			Code:     d.Code,
			Line:     d.Line,
			Col:      d.Col,
			Message:  d.Message,
		})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

func exportSymbol(sym *common.Symbol) symbolExport {
	se := symbolExport{
		Name:        sym.Name,
		Type:        sym.Type.Name,
		Target:      sym.Type.Target,
		Initialized: sym.Initialized,
		Used:        sym.Used,
		Context:     sym.Context.String(),
	}

	if sym.DeclTok != nil {
		se.Line = sym.DeclTok.Line
	}

	return se
}
