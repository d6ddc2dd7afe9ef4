// Package parse pulls a structured JSON object out of free-form model
// output: surrounding prose, markdown code fences and trailing commas are
// tolerated, but a block either decodes completely or not at all.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Failure reports that no structured block could be extracted. It carries
// the raw response for diagnostics and repair prompts.
type Failure struct {
	Raw    string
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("no structured block found in response: %s", f.Reason)
}

const snippetLen = 240

// Snippet returns a bounded excerpt of the raw response for user display.
func (f *Failure) Snippet() string {
	return Snippet(f.Raw)
}

// Snippet bounds raw model output for diagnostics.
func Snippet(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) <= snippetLen {
		return raw
	}
	return raw[:snippetLen] + "..."
}

// Extract locates and decodes a JSON object embedded in raw model text.
// Candidates are tried in order: the text as-is, the text with code fences
// stripped, and the widest {...} span; each candidate is also retried with
// trailing commas removed.
func Extract(raw string) (map[string]any, *Failure) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &Failure{Raw: raw, Reason: "empty response"}
	}

	candidates := []string{trimmed}
	if stripped := stripCodeFences(trimmed); stripped != "" && stripped != trimmed {
		candidates = append(candidates, stripped)
	}
	if span := objectSpan(trimmed); span != "" && span != trimmed {
		candidates = append(candidates, span)
	}

	seen := make(map[string]struct{}, len(candidates)*2)
	for _, candidate := range candidates {
		for _, text := range []string{candidate, dropTrailingCommas(candidate)} {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}

			var payload map[string]any
			if err := json.Unmarshal([]byte(text), &payload); err == nil {
				return payload, nil
			}
		}
	}
	return nil, &Failure{Raw: raw, Reason: "response is not a JSON object"}
}

// stripCodeFences removes a leading ```/```json fence line and the matching
// trailing fence.
func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// objectSpan returns the widest {...} span in content.
func objectSpan(content string) string {
	start := strings.Index(content, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(content, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// dropTrailingCommas normalizes the most common model JSON defect.
func dropTrailingCommas(content string) string {
	return trailingCommaPattern.ReplaceAllString(content, "$1")
}
