package model

import "strings"

// JoinPath joins a parent path and a field name with a dot, skipping empty
// segments.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// KeyFieldName is the synthesized name of a map key input.
func KeyFieldName(field string) string {
	return "_" + field + "-key"
}

// ValueFieldName is the synthesized name of a primitive map value input.
func ValueFieldName(field string) string {
	return "_" + field + "-value"
}

// ListFieldName is the synthesized name of a list template input.
func ListFieldName(field string) string {
	return "_" + field + "-list"
}

// IsKeySegment reports whether a path segment is a synthesized map key.
func IsKeySegment(segment string) bool {
	return strings.HasPrefix(segment, "_") && strings.HasSuffix(segment, "-key")
}

// IsValueSegment reports whether a path segment is a synthesized map value.
func IsValueSegment(segment string) bool {
	return strings.HasPrefix(segment, "_") && strings.HasSuffix(segment, "-value")
}

// IsListSegment reports whether a path segment is a synthesized list input.
func IsListSegment(segment string) bool {
	return strings.HasPrefix(segment, "_") && strings.HasSuffix(segment, "-list")
}
