package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ErrUnhandledCategory is wrapped by UnhandledCategoryError.
var ErrUnhandledCategory = errors.New("render: no renderer for category")

// KeyTypePlaceholder replaces the key input of a map whose key type is
// neither primitive nor constrained.
const KeyTypePlaceholder = "<div>KEYTYPE</div>"

// UnhandledCategoryError reports a descriptor whose category has no renderer
// registered.
type UnhandledCategoryError struct {
	Field    string
	Category model.Category
}

func (e *UnhandledCategoryError) Error() string {
	return fmt.Sprintf("render: field %q: no renderer for category %s", e.Field, e.Category)
}

func (e *UnhandledCategoryError) Unwrap() error {
	return ErrUnhandledCategory
}

// ErrorMarker is the inline text emitted in place of a container whose inner
// type cannot be rendered, e.g. "[tags]ERROR[list]".
func ErrorMarker(name, container string) string {
	return "[" + name + "]ERROR[" + container + "]"
}

// ErrorMapping splits a validation payload into field-level and form-level
// messages keyed by qualified field names.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// FieldPaths returns the qualified names of every rendered field of record.
// Synthesized map and list controls are skipped because submitted payloads
// carry real keys in their place.
func FieldPaths(builder model.Builder, record schema.Structure) (map[string]struct{}, error) {
	paths := make(map[string]struct{})
	err := builder.Walk(record, func(desc model.Descriptor, _ int) error {
		name := desc.QualifiedName()
		if hasSynthesizedSegment(name) {
			return nil
		}
		paths[name] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// MapErrorPayload files validation messages under the longest rendered field
// path that prefixes their dotted path, so an error on a map entry or a list
// item lands on the collection control. Unknown and empty paths become
// form-level errors so messages are not lost.
func MapErrorPayload(fieldPaths map[string]struct{}, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}

	for rawPath, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		if path := matchFieldPath(rawPath, fieldPaths); path != "" {
			mapping.Fields[path] = append(mapping.Fields[path], messages...)
			continue
		}
		mapping.Form = append(mapping.Form, messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func matchFieldPath(raw string, fieldPaths map[string]struct{}) string {
	best := ""
	path := ""
	for _, segment := range strings.Split(strings.TrimSpace(raw), ".") {
		path = model.JoinPath(path, segment)
		if _, ok := fieldPaths[path]; ok {
			best = path
		}
	}
	return best
}

func hasSynthesizedSegment(path string) bool {
	for _, segment := range strings.Split(path, ".") {
		if model.IsKeySegment(segment) || model.IsValueSegment(segment) || model.IsListSegment(segment) {
			return true
		}
	}
	return false
}
