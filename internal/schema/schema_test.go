package schema

import (
	"reflect"
	"strings"
	"testing"
)

func testFields() []Field {
	return []Field{
		{Name: "title", Type: TypeString, Required: true},
		{Name: "note", Type: TypeString},
		{Name: "kind", Type: TypeString, Required: true, Enum: []string{"a", "b"}},
		{Name: "author", Type: TypeObject, Required: true, Nested: []Field{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "city", Type: TypeString},
		}},
	}
}

func validPayload() map[string]any {
	return map[string]any{
		"title": "t",
		"kind":  "a",
		"author": map[string]any{
			"name": "n",
		},
	}
}

func TestValidateValidPayload(t *testing.T) {
	if got := Validate(validPayload(), testFields()); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	p := validPayload()
	delete(p, "title")
	got := Validate(p, testFields())
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
	if got[0].Path != "title" || got[0].Constraint != "required field is missing" {
		t.Errorf("unexpected violation: %+v", got[0])
	}
}

func TestValidateNullRequired(t *testing.T) {
	p := validPayload()
	p["title"] = nil
	got := Validate(p, testFields())
	if len(got) != 1 || got[0].Observed != "null" {
		t.Fatalf("expected null violation for title, got %v", got)
	}
}

func TestValidateOptionalAbsentOrNull(t *testing.T) {
	p := validPayload()
	if got := Validate(p, testFields()); len(got) != 0 {
		t.Fatalf("absent optional should be valid, got %v", got)
	}
	p["note"] = nil
	if got := Validate(p, testFields()); len(got) != 0 {
		t.Fatalf("null optional should be valid, got %v", got)
	}
}

func TestValidateWrongType(t *testing.T) {
	p := validPayload()
	p["title"] = 42.0
	got := Validate(p, testFields())
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
	if got[0].Constraint != "must be a string" || got[0].Observed != "number 42" {
		t.Errorf("unexpected violation: %+v", got[0])
	}
}

func TestValidateEnum(t *testing.T) {
	p := validPayload()
	p["kind"] = "c"
	got := Validate(p, testFields())
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
	if !strings.Contains(got[0].Constraint, "must be one of") || got[0].Observed != "c" {
		t.Errorf("unexpected violation: %+v", got[0])
	}
}

func TestValidateNestedPath(t *testing.T) {
	p := validPayload()
	p["author"] = map[string]any{"city": "x"}
	got := Validate(p, testFields())
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
	if got[0].Path != "author.name" {
		t.Errorf("expected nested path author.name, got %q", got[0].Path)
	}
}

func TestValidateNonObjectNested(t *testing.T) {
	p := validPayload()
	p["author"] = "someone"
	got := Validate(p, testFields())
	if len(got) != 1 || got[0].Constraint != "must be an object" {
		t.Fatalf("expected object violation, got %v", got)
	}
}

func TestValidateUnknownFieldsIgnored(t *testing.T) {
	p := validPayload()
	p["extra"] = 99
	if got := Validate(p, testFields()); len(got) != 0 {
		t.Fatalf("unknown fields must be ignored, got %v", got)
	}
}

func TestValidateDeterministic(t *testing.T) {
	p := map[string]any{"author": map[string]any{}}
	first := Validate(p, testFields())
	for i := 0; i < 5; i++ {
		if again := Validate(p, testFields()); !reflect.DeepEqual(first, again) {
			t.Fatalf("validation not deterministic: %v vs %v", first, again)
		}
	}
	// violations follow descriptor order
	if first[0].Path != "title" || first[1].Path != "kind" || first[2].Path != "author.name" {
		t.Errorf("unexpected violation order: %v", first)
	}
}

func TestViolationString(t *testing.T) {
	v := Violation{Path: "a.b", Constraint: "must be a string", Observed: "null"}
	want := "a.b: must be a string (observed: null)"
	if v.String() != want {
		t.Errorf("got %q, want %q", v.String(), want)
	}
}
