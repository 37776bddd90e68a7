package cueschema

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const formAttribute = "form"

var errCyclicDefinition = errors.New("cueschema: cyclic definition without a struct in between")

// Convert maps the struct definitions of an evaluated CUE value onto a
// catalog, in declaration order.
func Convert(root cue.Value) (*schema.Catalog, error) {
	c := &converter{
		defs:      make(map[string]cue.Value),
		records:   make(map[string]*schema.Record),
		types:     make(map[string]schema.Type),
		resolving: make(map[string]bool),
	}

	iter, err := root.Fields(cue.Definitions(true))
	if err != nil {
		return nil, fmt.Errorf("cueschema: list definitions: %w", err)
	}
	var order []string
	for iter.Next() {
		if !iter.Selector().IsDefinition() {
			continue
		}
		name := strings.TrimPrefix(iter.Selector().String(), "#")
		c.defs[name] = iter.Value()
		order = append(order, name)
	}

	catalog := schema.NewCatalog()
	for _, name := range order {
		def := c.defs[name]
		if def.IncompleteKind() != cue.StructKind || isMap(def) {
			continue
		}
		record, err := c.definition(name)
		if err != nil {
			return nil, err
		}
		if err := catalog.Add(name, record); err != nil {
			return nil, err
		}
	}

	for _, record := range c.records {
		record.Seal()
	}
	return catalog, nil
}

type converter struct {
	defs      map[string]cue.Value
	records   map[string]*schema.Record
	types     map[string]schema.Type
	resolving map[string]bool
}

// definition declares the record before its fields so references back to
// the same definition resolve to one instance.
func (c *converter) definition(name string) (*schema.Record, error) {
	if record, ok := c.records[name]; ok {
		return record, nil
	}
	def := c.defs[name]
	record := schema.NewRecord(name)
	record.Description = docText(def)
	c.records[name] = record
	if err := c.fields(record, def); err != nil {
		return nil, fmt.Errorf("cueschema: #%s: %w", name, err)
	}
	return record, nil
}

func (c *converter) fields(record *schema.Record, value cue.Value) error {
	iter, err := value.Fields(cue.Optional(true))
	if err != nil {
		return err
	}
	for iter.Next() {
		name := strings.TrimSuffix(strings.TrimSuffix(iter.Selector().String(), "?"), "!")
		if strings.HasPrefix(name, "_") {
			continue
		}
		field, err := c.field(name, iter.Value(), !iter.IsOptional())
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if err := record.Add(field); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) field(name string, value cue.Value, required bool) (schema.Field, error) {
	t, err := c.typeOf(value, name)
	if err != nil {
		return schema.Field{}, err
	}
	field := schema.Field{
		Name:        name,
		Type:        t,
		Required:    required,
		Description: docText(value),
	}
	if def, ok := value.Default(); ok {
		var decoded any
		if err := def.Decode(&decoded); err == nil {
			field.Default = decoded
		}
	}

	attr := value.Attribute(formAttribute)
	if attr.Err() == nil {
		if hidden, err := attr.Flag(0, "no_html"); err == nil && hidden {
			field.Extensions = schema.NoHTML()
		}
		if alias, found, err := attr.Lookup(0, "alias"); err == nil && found {
			field.Alias = alias
		}
	}
	return field, nil
}

func (c *converter) typeOf(value cue.Value, hint string) (schema.Type, error) {
	if isTime(value) {
		return schema.Datetime, nil
	}
	if name := reference(value); name != "" {
		if _, known := c.defs[name]; known {
			return c.named(name)
		}
	}

	if members, ok := stringDisjunction(value); ok {
		return schema.NewEnum(model.PascalName(hint), members...), nil
	}

	kind := value.IncompleteKind()
	op, args := value.Expr()
	if op == cue.OrOp && !isScalarKind(kind) {
		branches := make([]schema.Type, 0, len(args))
		for i, arg := range args {
			t, err := c.typeOf(arg, fmt.Sprintf("%s%d", hint, i))
			if err != nil {
				return nil, err
			}
			branches = append(branches, t)
		}
		return schema.UnionOf(branches...), nil
	}

	switch kind {
	case cue.BoolKind:
		return schema.Bool, nil
	case cue.StringKind:
		return schema.String, nil
	case cue.IntKind:
		if bounds, ok := numericBounds(value, true); ok {
			return schema.Constrained{Range: bounds}, nil
		}
		return schema.Int, nil
	case cue.FloatKind, cue.NumberKind:
		if bounds, ok := numericBounds(value, false); ok {
			return schema.Constrained{Range: bounds}, nil
		}
		return schema.Float, nil
	case cue.ListKind:
		elem := value.LookupPath(cue.MakePath(cue.AnyIndex))
		if elem.Err() != nil {
			return schema.ListOf(schema.Opaque{TypeName: "_"}), nil
		}
		t, err := c.typeOf(elem, hint)
		if err != nil {
			return nil, err
		}
		return schema.ListOf(t), nil
	case cue.StructKind:
		if isMap(value) {
			t, err := c.typeOf(value.LookupPath(cue.MakePath(cue.AnyString)), hint+"Value")
			if err != nil {
				return nil, err
			}
			return schema.MapOf(schema.String, t), nil
		}
		record := schema.NewRecord(model.PascalName(hint))
		record.Description = docText(value)
		if err := c.fields(record, value); err != nil {
			return nil, err
		}
		return record.Seal(), nil
	}
	return schema.Opaque{TypeName: kind.String()}, nil
}

// named resolves a reference to a top-level definition.
func (c *converter) named(name string) (schema.Type, error) {
	def := c.defs[name]
	if def.IncompleteKind() == cue.StructKind && !isMap(def) {
		return c.definition(name)
	}
	if cached, ok := c.types[name]; ok {
		return cached, nil
	}
	if c.resolving[name] {
		return nil, fmt.Errorf("%w: #%s", errCyclicDefinition, name)
	}
	c.resolving[name] = true
	defer delete(c.resolving, name)

	t, err := c.typeOf(def, name)
	if err != nil {
		return nil, err
	}
	c.types[name] = t
	return t, nil
}

func reference(value cue.Value) string {
	_, path := value.ReferencePath()
	selectors := path.Selectors()
	if len(selectors) == 0 {
		return ""
	}
	last := selectors[len(selectors)-1]
	if !last.IsDefinition() {
		return ""
	}
	return strings.TrimPrefix(last.String(), "#")
}

func isTime(value cue.Value) bool {
	op, args := value.Expr()
	if op == cue.SelectorOp && len(args) >= 2 {
		if s, err := args[1].String(); err == nil && s == "Time" {
			return true
		}
	}
	if op == cue.AndOp {
		for _, arg := range args {
			if isTime(arg) {
				return true
			}
		}
	}
	return false
}

// stringDisjunction reports the members of a disjunction made only of string
// literals, e.g. *"a" | "b".
func stringDisjunction(value cue.Value) ([]string, bool) {
	op, args := value.Expr()
	if op != cue.OrOp || len(args) == 0 {
		return nil, false
	}
	members := make([]string, 0, len(args))
	for _, arg := range args {
		s, err := arg.String()
		if err != nil {
			def, ok := arg.Default()
			if !ok {
				return nil, false
			}
			if s, err = def.String(); err != nil {
				return nil, false
			}
		}
		members = append(members, s)
	}
	return members, true
}

func isMap(value cue.Value) bool {
	iter, err := value.Fields(cue.Optional(true))
	if err != nil || iter.Next() {
		return false
	}
	return value.LookupPath(cue.MakePath(cue.AnyString)).Err() == nil
}

func isScalarKind(kind cue.Kind) bool {
	switch kind {
	case cue.BoolKind, cue.StringKind, cue.IntKind, cue.FloatKind, cue.NumberKind:
		return true
	}
	return false
}

// numericBounds collects >, >=, < and <= constraints from a conjunction.
func numericBounds(value cue.Value, integer bool) (schema.Bounds, bool) {
	bounds := schema.Bounds{Integer: integer}
	collectBounds(value, &bounds)
	if bounds.Minimum == nil && bounds.Maximum == nil {
		return schema.Bounds{}, false
	}
	return bounds, true
}

func collectBounds(value cue.Value, bounds *schema.Bounds) {
	op, args := value.Expr()
	if op == cue.AndOp {
		for _, arg := range args {
			collectBounds(arg, bounds)
		}
		return
	}
	if len(args) == 0 {
		return
	}
	limit, err := args[len(args)-1].Float64()
	if err != nil {
		return
	}
	switch op {
	case cue.GreaterThanEqualOp, cue.GreaterThanOp:
		bounds.Minimum = schema.Float64(limit)
		bounds.ExclusiveMin = op == cue.GreaterThanOp
	case cue.LessThanEqualOp, cue.LessThanOp:
		bounds.Maximum = schema.Float64(limit)
		bounds.ExclusiveMax = op == cue.LessThanOp
	}
}

func docText(value cue.Value) string {
	var parts []string
	for _, group := range value.Doc() {
		if text := strings.TrimSpace(group.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
