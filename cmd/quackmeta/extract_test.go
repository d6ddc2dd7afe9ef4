package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aipengineer/quackmetadata/internal/extract"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runExtract(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "stub")

	// Reset flag state between runs.
	outputDir, templatePath, retries, dryRun = "", "", -1, false

	rootCmd.SetArgs(append([]string{"extract"}, args...))
	return rootCmd.Execute()
}

func TestExtractCommandDryRun(t *testing.T) {
	path := writeDoc(t, "Ducks prefer shallow ponds.")
	if err := runExtract(t, path, "--dry-run"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractCommandWritesRecord(t *testing.T) {
	path := writeDoc(t, "Ducks prefer shallow ponds.")
	outDir := t.TempDir()

	if err := runExtract(t, path, "--output", outDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "note.metadata.json"))
	if err != nil {
		t.Fatalf("expected metadata record: %v", err)
	}
	var rec extract.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("record is not valid JSON: %v", err)
	}
	if !rec.Success {
		t.Errorf("Success = false, want true")
	}
	if rec.Source != path {
		t.Errorf("Source = %q, want %q", rec.Source, path)
	}
	if rec.Metadata == nil || rec.Metadata.Title == "" {
		t.Error("expected populated metadata")
	}
}

func TestExtractCommandMissingFile(t *testing.T) {
	err := runExtract(t, filepath.Join(t.TempDir(), "absent.txt"), "--dry-run")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, errExtractionFailed) {
		t.Error("missing file should be a configuration error, not an extraction failure")
	}
}

func TestExtractCommandBadTemplate(t *testing.T) {
	path := writeDoc(t, "Ducks prefer shallow ponds.")
	tmpl := filepath.Join(t.TempDir(), "bad.tmpl")
	if err := os.WriteFile(tmpl, []byte("analyze {{.Missing}} now"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runExtract(t, path, "--dry-run", "--prompt-template", tmpl)
	if err == nil {
		t.Fatal("expected error for template with unresolved variable")
	}
	if errors.Is(err, errExtractionFailed) {
		t.Error("template error should be a configuration error, not an extraction failure")
	}
}
