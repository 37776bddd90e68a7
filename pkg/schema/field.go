package schema

import "strings"

// Extension keys recognised on Field.Extensions.
const (
	// ExtensionNoHTML suppresses the field from rendered forms.
	ExtensionNoHTML = "no_html"
)

// Field is a named, typed attribute of a record. Schema sources build fields;
// renderers only read them.
type Field struct {
	Name        string
	Type        Type
	Required    bool
	Default     any
	Description string
	Alias       string
	Extensions  map[string]any
}

// Hidden reports whether the no_html extension is present. Presence is what
// matters; the value is ignored.
func (f Field) Hidden() bool {
	if len(f.Extensions) == 0 {
		return false
	}
	_, ok := f.Extensions[ExtensionNoHTML]
	return ok
}

// Label returns the alias when set, otherwise the field name.
func (f Field) Label() string {
	if alias := strings.TrimSpace(f.Alias); alias != "" {
		return alias
	}
	return f.Name
}

// WithType returns a copy of f carrying a different declared type.
func (f Field) WithType(t Type) Field {
	f.Type = t
	return f
}

// NoHTML returns an extension map marking a field as suppressed.
func NoHTML() map[string]any {
	return map[string]any{ExtensionNoHTML: true}
}
