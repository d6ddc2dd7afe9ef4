// Package source moves documents and artifacts across the local
// filesystem boundary: fetching document text (plain or PDF) and storing
// result JSON. The extraction core never touches I/O itself.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text converts uploaded file content to plain text. PDF files are
// detected by extension; everything else is treated as UTF-8 text.
func Text(filename string, content []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return pdfText(bytes.NewReader(content), int64(len(content)))
	}
	return string(content), nil
}

// FetchText reads a local document and returns its plain text.
func FetchText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Text(filepath.Base(path), content)
}

func pdfText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return sb.String(), nil
}

// StoreJSON writes v as indented JSON to path, creating parent
// directories as needed.
func StoreJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// OutputPath derives the default artifact path for a document:
// <outputDir>/<stem>.metadata.json.
func OutputPath(outputDir, documentPath string) string {
	base := filepath.Base(documentPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".metadata.json")
}
