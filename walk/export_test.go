package walk

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestExportTables(t *testing.T) {
	w, _, _ := analyze(t, "est int g;\nprocedure algo show(string msg) { proclaim(msg); }\nces { show(\"hi\"); }")

	sb := &strings.Builder{}
	if err := ExportTables(sb, w, "4f1c"); err != nil {
		t.Fatalf("ExportTables failed: %s", err)
	}

	var doc tableExport
	if err := yaml.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("export is not valid YAML: %s\n%s", err, sb.String())
	}

	if doc.Session != "4f1c" {
		t.Errorf("session = %q", doc.Session)
	}

	if len(doc.Globals) != 1 || doc.Globals[0].Name != "g" || doc.Globals[0].Target != "number" || doc.Globals[0].Initialized {
		t.Errorf("globals = %+v", doc.Globals)
	}

	if len(doc.Functions) != 1 {
		t.Fatalf("functions = %+v", doc.Functions)
	}

	show := doc.Functions[0]
	if show.Name != "show" || show.ReturnType != "void" || !show.Called || show.Line != 2 {
		t.Errorf("show = %+v", show)
	}

	if len(show.Params) != 1 || show.Params[0].Context != "parameter" || !show.Params[0].Used {
		t.Errorf("show params = %+v", show.Params)
	}

	// `g` is never read nor initialized
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Class != "Semantic" || doc.Diagnostics[0].Severity != "Warning" {
		t.Errorf("diagnostics = %+v", doc.Diagnostics)
	}

	if !strings.HasPrefix(sb.String(), "session: 4f1c\n") {
		t.Errorf("unexpected layout:\n%s", sb.String())
	}
}
