package prompt

import (
	"reflect"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	out, err := Render("Extract: {{.Content}}", map[string]any{"Content": "Hello world"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "Extract: Hello world" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderMissingVariable(t *testing.T) {
	_, err := Render("Extract: {{.Content}} by {{.Author}}", map[string]any{"Content": "x"})
	if err == nil {
		t.Fatal("expected error for unresolved placeholder")
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	_, err := Render("{{.Content", map[string]any{"Content": "x"})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVariables(t *testing.T) {
	vars := Variables("Hello {{.Name}}, you have {{ .Count }} items and {{.Name}} again, plus {{.Doc.Title}}")
	want := []string{"Count", "Doc.Title", "Name"}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("Variables = %v, want %v", vars, want)
	}
}

func TestVariablesNone(t *testing.T) {
	if vars := Variables("no placeholders here"); vars != nil {
		t.Errorf("expected nil, got %v", vars)
	}
}

func TestDefaultTemplates(t *testing.T) {
	extract := Default()
	if !strings.Contains(extract, "{{.Content}}") {
		t.Error("extract template missing Content placeholder")
	}
	if got := Variables(extract); !reflect.DeepEqual(got, []string{"Content"}) {
		t.Errorf("extract template variables = %v", got)
	}

	repair := DefaultRepair()
	if got := Variables(repair); !reflect.DeepEqual(got, []string{"Previous", "Problems"}) {
		t.Errorf("repair template variables = %v", got)
	}

	// Both must render without error against their expected contexts.
	if _, err := Render(extract, map[string]any{"Content": "doc"}); err != nil {
		t.Errorf("default extract template failed to render: %v", err)
	}
	if _, err := Render(repair, map[string]any{"Previous": "p", "Problems": "q"}); err != nil {
		t.Errorf("default repair template failed to render: %v", err)
	}
}

func TestHash(t *testing.T) {
	a := Hash("abc")
	if a != Hash("abc") {
		t.Error("hash should be stable")
	}
	if a == Hash("abd") {
		t.Error("different text should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}
