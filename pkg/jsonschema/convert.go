package jsonschema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

var (
	// ErrUnsupportedRef is returned for $ref values outside the document.
	ErrUnsupportedRef = errors.New("jsonschema: unsupported $ref")
	// ErrCyclicRef is returned when a reference cycle does not pass through an
	// object schema.
	ErrCyclicRef = errors.New("jsonschema: cyclic $ref without an object schema")
)

const anyTypeName = "any"

// Convert maps a parsed document onto a catalog. The root schema is
// registered under rootName when it describes an object, followed by every
// object entry of $defs and definitions.
func Convert(root *Node, rootName string) (*schema.Catalog, error) {
	if root == nil {
		return nil, errors.New("jsonschema: root schema is nil")
	}
	c := &converter{
		root:      root,
		records:   make(map[*Node]*schema.Record),
		types:     make(map[*Node]schema.Type),
		resolving: make(map[*Node]bool),
	}
	catalog := schema.NewCatalog()

	if root.isObject() {
		record, err := c.record(root, rootName)
		if err != nil {
			return nil, err
		}
		if err := catalog.Add(record.TypeName, record); err != nil {
			return nil, err
		}
	}

	for _, defs := range []*Properties{root.Defs, root.Definitions} {
		if defs == nil {
			continue
		}
		for pair := defs.Oldest(); pair != nil; pair = pair.Next() {
			if !pair.Value.isObject() {
				if _, err := c.typeOf(pair.Value, pair.Key); err != nil {
					return nil, fmt.Errorf("jsonschema: definition %q: %w", pair.Key, err)
				}
				continue
			}
			record, err := c.record(pair.Value, pair.Key)
			if err != nil {
				return nil, fmt.Errorf("jsonschema: definition %q: %w", pair.Key, err)
			}
			if err := catalog.Add(pair.Key, record); err != nil {
				return nil, err
			}
		}
	}

	for _, record := range c.records {
		record.Seal()
	}
	return catalog, nil
}

type converter struct {
	root      *Node
	records   map[*Node]*schema.Record
	types     map[*Node]schema.Type
	resolving map[*Node]bool
}

func (c *converter) typeOf(node *Node, hint string) (schema.Type, error) {
	if node == nil {
		return schema.Opaque{TypeName: anyTypeName}, nil
	}
	if node.Ref != "" {
		target, name, err := c.resolve(node.Ref)
		if err != nil {
			return nil, err
		}
		return c.typeOf(target, name)
	}
	if record, ok := c.records[node]; ok {
		return record, nil
	}
	if cached, ok := c.types[node]; ok {
		return cached, nil
	}
	if c.resolving[node] {
		return nil, fmt.Errorf("%w at %q", ErrCyclicRef, hint)
	}
	c.resolving[node] = true
	defer delete(c.resolving, node)

	t, err := c.build(node, hint)
	if err != nil {
		return nil, err
	}
	if _, isRecord := t.(*schema.Record); !isRecord {
		c.types[node] = t
	}
	return t, nil
}

func (c *converter) build(node *Node, hint string) (schema.Type, error) {
	if len(node.Enum) > 0 {
		return schema.NewEnum(typeName(node, hint), enumValues(node.Enum)...), nil
	}
	if node.Const != nil {
		return schema.NewEnum(typeName(node, hint), literal(node.Const)), nil
	}

	if branches := append(append([]*Node(nil), node.OneOf...), node.AnyOf...); len(branches) > 0 {
		types := make([]schema.Type, 0, len(branches))
		for i, branch := range branches {
			t, err := c.typeOf(branch, fmt.Sprintf("%s%d", hint, i))
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		return schema.UnionOf(types...), nil
	}

	declared, err := node.Types()
	if err != nil {
		return nil, err
	}
	declared = withoutNull(declared)
	switch len(declared) {
	case 0:
		return c.untyped(node, hint)
	case 1:
		return c.typed(node, declared[0], hint)
	}

	types := make([]schema.Type, 0, len(declared))
	for _, name := range declared {
		t, err := c.typed(node, name, hint)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return schema.UnionOf(types...), nil
}

func (c *converter) typed(node *Node, name, hint string) (schema.Type, error) {
	switch name {
	case "string":
		if node.Format == "date-time" {
			return schema.Datetime, nil
		}
		return schema.String, nil
	case "integer":
		if bounds, ok := numericBounds(node, true); ok {
			return schema.Constrained{Range: bounds}, nil
		}
		return schema.Int, nil
	case "number":
		if bounds, ok := numericBounds(node, false); ok {
			return schema.Constrained{Range: bounds}, nil
		}
		return schema.Float, nil
	case "boolean":
		return schema.Bool, nil
	case "array":
		return c.array(node, hint)
	case "object":
		return c.object(node, hint)
	}
	return schema.Opaque{TypeName: name}, nil
}

func (c *converter) untyped(node *Node, hint string) (schema.Type, error) {
	switch {
	case node.Properties != nil || node.AllowsAdditional():
		return c.object(node, hint)
	case node.items != nil || len(node.tupleItems) > 0 || len(node.PrefixItems) > 0:
		return c.array(node, hint)
	}
	return schema.Opaque{TypeName: anyTypeName}, nil
}

func (c *converter) array(node *Node, hint string) (schema.Type, error) {
	tuple := node.PrefixItems
	if len(tuple) == 0 {
		tuple = node.tupleItems
	}
	if len(tuple) > 0 {
		elem, err := c.typeOf(tuple[0], hint)
		if err != nil {
			return nil, err
		}
		return schema.TupleOf(elem), nil
	}
	elem, err := c.typeOf(node.items, hint)
	if err != nil {
		return nil, err
	}
	return schema.ListOf(elem), nil
}

func (c *converter) object(node *Node, hint string) (schema.Type, error) {
	if node.Properties == nil || node.Properties.Len() == 0 {
		if node.additional != nil {
			value, err := c.typeOf(node.additional, hint+"Value")
			if err != nil {
				return nil, err
			}
			return schema.MapOf(schema.String, value), nil
		}
		if node.AllowsAdditional() {
			return schema.MapOf(schema.String, schema.String), nil
		}
	}
	return c.record(node, typeName(node, hint))
}

// record declares the record before its fields so self references resolve
// to the same instance.
func (c *converter) record(node *Node, name string) (*schema.Record, error) {
	if record, ok := c.records[node]; ok {
		return record, nil
	}
	record := schema.NewRecord(name)
	record.Description = node.Description
	c.records[node] = record

	if node.Properties == nil {
		return record, nil
	}
	required := make(map[string]bool, len(node.Required))
	for _, name := range node.Required {
		required[name] = true
	}
	for pair := node.Properties.Oldest(); pair != nil; pair = pair.Next() {
		field, err := c.field(pair.Key, pair.Value, required[pair.Key])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", pair.Key, err)
		}
		if err := record.Add(field); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (c *converter) field(name string, node *Node, required bool) (schema.Field, error) {
	t, err := c.typeOf(node, name)
	if err != nil {
		return schema.Field{}, err
	}
	field := schema.Field{
		Name:        name,
		Type:        t,
		Required:    required,
		Default:     node.Default,
		Description: node.Description,
		Alias:       node.Title,
	}
	if node.Extension != nil && node.Extension.Label != "" {
		field.Alias = node.Extension.Label
	}
	if node.Hidden() {
		field.Extensions = schema.NoHTML()
	}
	return field, nil
}

func (c *converter) resolve(ref string) (*Node, string, error) {
	if ref == "#" {
		return c.root, "", nil
	}
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}
		name := unescapePointer(strings.TrimPrefix(ref, prefix))
		defs := c.root.Defs
		if prefix == "#/definitions/" {
			defs = c.root.Definitions
		}
		if defs != nil {
			if target, ok := defs.Get(name); ok {
				return target, name, nil
			}
		}
		return nil, "", fmt.Errorf("jsonschema: $ref %q not found", ref)
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
}

func (n *Node) isObject() bool {
	if n == nil || n.Ref != "" {
		return false
	}
	declared, err := n.Types()
	if err != nil {
		return false
	}
	declared = withoutNull(declared)
	if len(declared) == 1 && declared[0] == "object" {
		return n.Properties != nil && n.Properties.Len() > 0 || !n.AllowsAdditional()
	}
	return len(declared) == 0 && n.Properties != nil && n.Properties.Len() > 0
}

func numericBounds(node *Node, integer bool) (schema.Bounds, bool) {
	minimum, exclusiveMin := exclusiveBound(node.ExclusiveMinimum, node.Minimum)
	maximum, exclusiveMax := exclusiveBound(node.ExclusiveMaximum, node.Maximum)
	if minimum == nil && maximum == nil {
		return schema.Bounds{}, false
	}
	return schema.Bounds{
		Integer:      integer,
		Minimum:      minimum,
		Maximum:      maximum,
		ExclusiveMin: exclusiveMin,
		ExclusiveMax: exclusiveMax,
	}, true
}

func typeName(node *Node, hint string) string {
	if node.Title != "" {
		if name := model.PascalName(node.Title); name != "" {
			return name
		}
	}
	if name := model.PascalName(hint); name != "" {
		return name
	}
	return "Anonymous"
}

func enumValues(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		out = append(out, literal(value))
	}
	return out
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

func withoutNull(types []string) []string {
	out := types[:0:0]
	for _, t := range types {
		if t != "null" {
			out = append(out, t)
		}
	}
	return out
}

func unescapePointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
