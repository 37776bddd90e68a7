// Package model exposes the type classifier and the field descriptor builder.
// A descriptor captures one field's category, its category-dependent inner
// type info, its qualified name (the dotted path used as element id and
// submission name) and the immutable rendering attributes: required marker,
// truthy default, placeholder (from the description) and alias. Builders live
// in internal/model; this package re-exports the public surface.
package model
