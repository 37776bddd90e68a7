package parser

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const (
	extensionNamespace = "x-formgen"
	noHTMLExtensionKey = "x-no-html"
)

var errCyclicSchema = errors.New("cyclic schema without an object in between")

// converter maps kin-openapi schemas onto schema types. Records are memoized
// by schema pointer so shared and recursive references resolve to a single
// record.
type converter struct {
	records   map[*openapi3.Schema]*schema.Record
	types     map[*openapi3.Schema]schema.Type
	resolving map[*openapi3.Schema]bool
}

func newConverter() *converter {
	return &converter{
		records:   make(map[*openapi3.Schema]*schema.Record),
		types:     make(map[*openapi3.Schema]schema.Type),
		resolving: make(map[*openapi3.Schema]bool),
	}
}

func (c *converter) seal() {
	for _, record := range c.records {
		record.Seal()
	}
}

func (c *converter) typeOf(ref *openapi3.SchemaRef, hint string) (schema.Type, error) {
	if ref == nil || ref.Value == nil {
		return schema.Opaque{TypeName: "any"}, nil
	}
	if name := refName(ref.Ref); name != "" {
		hint = name
	}
	src := ref.Value
	if record, ok := c.records[src]; ok {
		return record, nil
	}
	if cached, ok := c.types[src]; ok {
		return cached, nil
	}
	if c.resolving[src] {
		return nil, fmt.Errorf("%w at %q", errCyclicSchema, hint)
	}
	c.resolving[src] = true
	defer delete(c.resolving, src)

	t, err := c.build(src, hint)
	if err != nil {
		return nil, err
	}
	if _, isRecord := t.(*schema.Record); !isRecord {
		c.types[src] = t
	}
	return t, nil
}

func (c *converter) build(src *openapi3.Schema, hint string) (schema.Type, error) {
	if len(src.Enum) > 0 {
		values := make([]string, 0, len(src.Enum))
		for _, value := range src.Enum {
			if value != nil {
				values = append(values, literal(value))
			}
		}
		return schema.NewEnum(typeName(src, hint), values...), nil
	}

	if branches := append(append(openapi3.SchemaRefs(nil), src.OneOf...), src.AnyOf...); len(branches) > 0 {
		types := make([]schema.Type, 0, len(branches))
		for i, branch := range branches {
			t, err := c.typeOf(branch, hint+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		return schema.UnionOf(types...), nil
	}

	declared := declaredTypes(src)
	switch len(declared) {
	case 0:
		if len(src.Properties) > 0 || src.AdditionalProperties.Schema != nil {
			return c.object(src, hint)
		}
		if src.Items != nil {
			return c.typed(src, openapi3.TypeArray, hint)
		}
		return schema.Opaque{TypeName: "any"}, nil
	case 1:
		return c.typed(src, declared[0], hint)
	}

	types := make([]schema.Type, 0, len(declared))
	for _, name := range declared {
		t, err := c.typed(src, name, hint)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return schema.UnionOf(types...), nil
}

func (c *converter) typed(src *openapi3.Schema, name, hint string) (schema.Type, error) {
	switch name {
	case openapi3.TypeString:
		if src.Format == "date-time" {
			return schema.Datetime, nil
		}
		return schema.String, nil
	case openapi3.TypeInteger:
		if bounds, ok := numericBounds(src, true); ok {
			return schema.Constrained{Range: bounds}, nil
		}
		return schema.Int, nil
	case openapi3.TypeNumber:
		if bounds, ok := numericBounds(src, false); ok {
			return schema.Constrained{Range: bounds}, nil
		}
		return schema.Float, nil
	case openapi3.TypeBoolean:
		return schema.Bool, nil
	case openapi3.TypeArray:
		elem, err := c.typeOf(src.Items, hint)
		if err != nil {
			return nil, err
		}
		return schema.ListOf(elem), nil
	case openapi3.TypeObject:
		return c.object(src, hint)
	}
	return schema.Opaque{TypeName: name}, nil
}

func (c *converter) object(src *openapi3.Schema, hint string) (schema.Type, error) {
	if len(src.Properties) == 0 {
		if value := src.AdditionalProperties.Schema; value != nil {
			elem, err := c.typeOf(value, hint+"Value")
			if err != nil {
				return nil, err
			}
			return schema.MapOf(schema.String, elem), nil
		}
		if has := src.AdditionalProperties.Has; has != nil && *has {
			return schema.MapOf(schema.String, schema.String), nil
		}
	}
	return c.record(src, typeName(src, hint))
}

// record declares the record before walking properties so self references
// resolve to the same instance. Properties are visited in name order.
func (c *converter) record(src *openapi3.Schema, name string) (*schema.Record, error) {
	if record, ok := c.records[src]; ok {
		return record, nil
	}
	record := schema.NewRecord(name)
	record.Description = src.Description
	c.records[src] = record

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}
	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		property := src.Properties[name]
		t, err := c.typeOf(property, name)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		field := schema.Field{Name: name, Type: t, Required: required[name]}
		if property != nil && property.Value != nil {
			field.Default = property.Value.Default
			field.Description = property.Value.Description
			field.Alias = property.Value.Title
			if hidden(property.Value.Extensions) {
				field.Extensions = schema.NoHTML()
			}
		}
		if err := record.Add(field); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func isRecordSchema(src *openapi3.Schema) bool {
	declared := declaredTypes(src)
	if len(src.Properties) > 0 {
		return len(declared) == 0 || (len(declared) == 1 && declared[0] == openapi3.TypeObject)
	}
	return len(declared) == 1 && declared[0] == openapi3.TypeObject &&
		src.AdditionalProperties.Schema == nil &&
		(src.AdditionalProperties.Has == nil || !*src.AdditionalProperties.Has)
}

func declaredTypes(src *openapi3.Schema) []string {
	if src.Type == nil {
		return nil
	}
	var out []string
	for _, name := range src.Type.Slice() {
		if name != openapi3.TypeNull {
			out = append(out, name)
		}
	}
	return out
}

func numericBounds(src *openapi3.Schema, integer bool) (schema.Bounds, bool) {
	if src.Min == nil && src.Max == nil {
		return schema.Bounds{}, false
	}
	bounds := schema.Bounds{
		Integer:      integer,
		ExclusiveMin: src.ExclusiveMin && src.Min != nil,
		ExclusiveMax: src.ExclusiveMax && src.Max != nil,
	}
	if src.Min != nil {
		bounds.Minimum = schema.Float64(*src.Min)
	}
	if src.Max != nil {
		bounds.Maximum = schema.Float64(*src.Max)
	}
	return bounds, true
}

func hidden(extensions map[string]any) bool {
	if flag(extensions[noHTMLExtensionKey]) {
		return true
	}
	if nested, ok := extensions[extensionNamespace].(map[string]any); ok {
		return flag(nested["no_html"])
	}
	return false
}

func flag(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		return err == nil && parsed
	}
	return false
}

func typeName(src *openapi3.Schema, hint string) string {
	if name := model.PascalName(src.Title); name != "" {
		return name
	}
	if name := model.PascalName(hint); name != "" {
		return name
	}
	return "Anonymous"
}

func literal(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(value)
}
