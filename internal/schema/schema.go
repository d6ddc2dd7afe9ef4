// Package schema defines the structural contract a parsed payload must
// satisfy, as an ordered list of field descriptors interpreted by Validate.
// Validation is pure: the same payload and descriptors always yield the
// same violations in the same order.
package schema

import (
	"fmt"
	"strings"
)

// Type is the expected primitive shape of a field value.
type Type string

const (
	TypeString Type = "string"
	TypeObject Type = "object"
)

// Field describes one expected payload field. Object fields carry their
// own descriptor list in Nested.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Enum     []string // allowed values for string fields, empty = any
	Nested   []Field  // sub-structure for object fields
}

// Violation records a single failed check.
type Violation struct {
	Path       string // dotted field path, e.g. "author_profile.name"
	Constraint string // what was expected
	Observed   string // what was found
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (observed: %s)", v.Path, v.Constraint, v.Observed)
}

// Strings formats a violation list for prompts and diagnostics.
func Strings(violations []Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.String()
	}
	return out
}

// Validate checks payload against fields. It returns nil for a valid
// payload. Checks run in descriptor order: presence, then type, then
// enum, then nested structure. Fields present in the payload but absent
// from the descriptors are ignored.
func Validate(payload map[string]any, fields []Field) []Violation {
	return validate(payload, fields, "")
}

func validate(payload map[string]any, fields []Field, prefix string) []Violation {
	var violations []Violation
	for _, f := range fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		value, present := payload[f.Name]

		if !present || value == nil {
			if f.Required && !present {
				violations = append(violations, Violation{
					Path:       path,
					Constraint: "required field is missing",
					Observed:   "<absent>",
				})
			} else if f.Required && value == nil {
				violations = append(violations, Violation{
					Path:       path,
					Constraint: fmt.Sprintf("must be a %s", f.Type),
					Observed:   "null",
				})
			}
			// optional fields may be absent or null
			continue
		}

		switch f.Type {
		case TypeString:
			s, ok := value.(string)
			if !ok {
				violations = append(violations, Violation{
					Path:       path,
					Constraint: "must be a string",
					Observed:   describe(value),
				})
				continue
			}
			if len(f.Enum) > 0 && !contains(f.Enum, s) {
				violations = append(violations, Violation{
					Path:       path,
					Constraint: fmt.Sprintf("must be one of [%s]", strings.Join(f.Enum, ", ")),
					Observed:   s,
				})
			}
		case TypeObject:
			obj, ok := value.(map[string]any)
			if !ok {
				violations = append(violations, Violation{
					Path:       path,
					Constraint: "must be an object",
					Observed:   describe(value),
				})
				continue
			}
			violations = append(violations, validate(obj, f.Nested, path)...)
		}
	}
	return violations
}

func contains(set []string, s string) bool {
	for _, item := range set {
		if item == s {
			return true
		}
	}
	return false
}

const maxObservedLen = 60

// describe renders an observed value compactly for a violation record.
func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return truncate(v)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case bool:
		return fmt.Sprintf("boolean %v", v)
	case float64:
		return fmt.Sprintf("number %v", v)
	default:
		return truncate(fmt.Sprintf("%v", v))
	}
}

func truncate(s string) string {
	if len(s) <= maxObservedLen {
		return s
	}
	return s[:maxObservedLen] + "..."
}
