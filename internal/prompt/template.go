// Package prompt renders LLM prompt templates. Templates use Go template
// syntax ({{.Content}}); a placeholder with no matching context entry is a
// configuration error, surfaced at render time rather than retried.
package prompt

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Default returns the embedded initial extraction template.
func Default() string {
	return mustTemplate("templates/extract.tmpl")
}

// DefaultRepair returns the embedded repair template. It expects the
// context keys Previous and Problems.
func DefaultRepair() string {
	return mustTemplate("templates/repair.tmpl")
}

func mustTemplate(name string) string {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		// Embedded files are part of the binary; a missing one is a build defect.
		panic(fmt.Sprintf("embedded template %s: %v", name, err))
	}
	return string(content)
}

// Render fills tmplText with the provided context. Parse errors and
// unresolved placeholders both return an error; nothing is retried here.
func Render(tmplText string, context map[string]any) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, context); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return sb.String(), nil
}

// variablePattern matches Go template variable references like {{.VarName}}
// or {{ .VarName }}, including nested fields like {{.Doc.Title}}.
var variablePattern = regexp.MustCompile(`\{\{\s*\.([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}`)

// Variables extracts the sorted set of placeholder names from a template.
func Variables(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var vars []string
	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			seen[match[1]] = true
			vars = append(vars, match[1])
		}
	}
	sort.Strings(vars)
	return vars
}

// Hash returns a SHA-256 hash of the template text for change detection
// and cache keying.
func Hash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
