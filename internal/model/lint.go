package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// IssueKind names a degrade condition renderers handle with a marker.
type IssueKind string

const (
	IssueMapKey      IssueKind = "map-key"
	IssueMapValue    IssueKind = "map-value"
	IssueListElement IssueKind = "list-element"
)

// Issue is a field that renders, but only as a placeholder or error marker.
type Issue struct {
	Field string
	Kind  IssueKind
	Type  string
}

func (i Issue) Error() string {
	switch i.Kind {
	case IssueMapKey:
		return fmt.Sprintf("model: field %q: map key type %q is not scalar", i.Field, i.Type)
	case IssueMapValue:
		return fmt.Sprintf("model: field %q: map value type %q is not supported", i.Field, i.Type)
	case IssueListElement:
		return fmt.Sprintf("model: field %q: list element type %q is not scalar", i.Field, i.Type)
	default:
		return fmt.Sprintf("model: field %q: %s", i.Field, i.Kind)
	}
}

// Lint walks every top-level field of record and aggregates classification
// failures, cycles and degrade conditions. A nil result means the record
// renders without markers.
func (b *Builder) Lint(record schema.Structure) error {
	var result *multierror.Error
	for _, field := range record.Fields() {
		err := b.WalkField(record, field, func(desc Descriptor, _ int) error {
			for _, issue := range Inspect(desc) {
				result = multierror.Append(result, issue)
			}
			return nil
		})
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Inspect reports the degrade conditions of a single descriptor.
func Inspect(desc Descriptor) []Issue {
	var issues []Issue
	switch desc.Category() {
	case CategoryList, CategoryTuple:
		elem, _ := desc.Elem()
		if !elem.Category.Scalar() {
			issues = append(issues, Issue{Field: desc.QualifiedName(), Kind: IssueListElement, Type: elem.Name})
		}
	case CategoryMap:
		info, _ := desc.Map()
		if !info.Key.Category.MapSlot() {
			issues = append(issues, Issue{Field: desc.QualifiedName(), Kind: IssueMapKey, Type: info.Key.Name})
		}
		if !SupportedMapValue(info.Value.Category) {
			issues = append(issues, Issue{Field: desc.QualifiedName(), Kind: IssueMapValue, Type: info.Value.Name})
		}
	}
	return issues
}

// SupportedMapValue reports whether the map renderer can build a value form
// for the category.
func SupportedMapValue(category Category) bool {
	return category.MapSlot() || category == CategoryRecord || category == CategoryMap
}
