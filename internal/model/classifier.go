package model

import (
	"regexp"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// primitiveInputTypes doubles as the primitive name table and the input widget
// mapping for scalar categories.
var primitiveInputTypes = map[string]string{
	"bool":     "checkbox",
	"int":      "number",
	"float":    "number",
	"string":   "text",
	"str":      "text",
	"datetime": "datetime-local",
}

var constrainedNamePattern = regexp.MustCompile(`^Constrained(Int|Float)Value$`)

// Classify maps a schema type onto its structural category. Resolution order:
// primitive name table, then capability checks (enumeration, record,
// sequence, map, alternative), then the bounded trait, then the constrained
// display-name pattern. Anything else is unclassifiable.
func Classify(t schema.Type) (Category, error) {
	if t == nil {
		return CategoryUnknown, &UnclassifiableTypeError{TypeName: "<nil>"}
	}

	name := t.Name()
	if _, ok := primitiveInputTypes[name]; ok {
		return CategoryPrimitive, nil
	}

	switch typed := t.(type) {
	case schema.Enumeration:
		return CategoryEnumeration, nil
	case schema.Structure:
		return CategoryRecord, nil
	case schema.Sequence:
		if typed.Fixed() {
			return CategoryTuple, nil
		}
		return CategoryList, nil
	case schema.Mapping:
		return CategoryMap, nil
	case schema.Alternatives:
		return CategoryAlternative, nil
	case schema.Bounded:
		return CategoryConstrained, nil
	}

	if constrainedNamePattern.MatchString(name) {
		return CategoryConstrained, nil
	}

	return CategoryUnknown, &UnclassifiableTypeError{TypeName: name}
}

// InputType returns the input widget type for scalar categories.
func InputType(category Category, t schema.Type) (string, bool) {
	switch category {
	case CategoryConstrained:
		return "number", true
	case CategoryPrimitive:
		if t == nil {
			return "", false
		}
		input, ok := primitiveInputTypes[t.Name()]
		return input, ok
	default:
		return "", false
	}
}

// IsPrimitive reports whether t resolves to the primitive category.
func IsPrimitive(t schema.Type) bool {
	category, err := Classify(t)
	return err == nil && category == CategoryPrimitive
}
