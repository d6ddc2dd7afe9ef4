package parse

import (
	"strings"
	"testing"
)

func TestExtractBareJSON(t *testing.T) {
	payload, fail := Extract(`{"title": "t", "n": 1}`)
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if payload["title"] != "t" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestExtractFencedJSON(t *testing.T) {
	raw := "Here is the metadata you asked for:\n```json\n{\"title\": \"t\"}\n```\nLet me know if you need more."
	payload, fail := Extract(raw)
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if payload["title"] != "t" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestExtractFenceWithoutLanguage(t *testing.T) {
	raw := "```\n{\"a\": true}\n```"
	payload, fail := Extract(raw)
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if payload["a"] != true {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestExtractSurroundingProse(t *testing.T) {
	raw := "Sure! {\"title\": \"t\", \"nested\": {\"x\": 1}} Hope that helps."
	payload, fail := Extract(raw)
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	nested, ok := payload["nested"].(map[string]any)
	if !ok || nested["x"] != 1.0 {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestExtractTrailingCommas(t *testing.T) {
	raw := "{\"a\": \"x\", \"b\": [1, 2,],}"
	payload, fail := Extract(raw)
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if payload["a"] != "x" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestExtractAllOrNothing(t *testing.T) {
	// A malformed block must not yield a partial payload.
	raw := `{"a": "x", "b": `
	payload, fail := Extract(raw)
	if fail == nil {
		t.Fatalf("expected failure, got %v", payload)
	}
	if fail.Raw != raw {
		t.Error("failure should carry raw text")
	}
}

func TestExtractProseOnly(t *testing.T) {
	_, fail := Extract("I am sorry, I cannot help with that.")
	if fail == nil {
		t.Fatal("expected failure for prose without JSON")
	}
}

func TestExtractEmpty(t *testing.T) {
	_, fail := Extract("   \n ")
	if fail == nil || fail.Reason != "empty response" {
		t.Fatalf("expected empty-response failure, got %v", fail)
	}
}

func TestExtractTopLevelArrayRejected(t *testing.T) {
	if payload, fail := Extract(`[1, 2, 3]`); fail == nil {
		t.Fatalf("top-level array is not a payload, got %v", payload)
	}
}

func TestSnippetBounds(t *testing.T) {
	long := strings.Repeat("a", 1000)
	s := Snippet(long)
	if len(s) != snippetLen+3 || !strings.HasSuffix(s, "...") {
		t.Errorf("unexpected snippet length %d", len(s))
	}
	if Snippet("short") != "short" {
		t.Error("short text should pass through")
	}
}
