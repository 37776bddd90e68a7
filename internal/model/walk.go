package model

import (
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// VisitFunc receives each descriptor reachable from a record. depth counts
// record nesting from the root.
type VisitFunc func(desc Descriptor, depth int) error

// Walk visits every descriptor reachable from record, depth first and in
// declaration order, using the same naming rules the renderers apply: record
// children nest under the field, map record values nest under the synthesized
// key name, and alternatives expand their first branch in place.
func (b *Builder) Walk(record schema.Structure, visit VisitFunc) error {
	w := &walker{b: b, visit: visit, guard: NewGuard(b.opts.MaxDepth)}
	return w.record(record, "", 0)
}

// WalkField visits a single top-level field of a record and its descendants.
func (b *Builder) WalkField(record schema.Structure, field schema.Field, visit VisitFunc) error {
	w := &walker{b: b, visit: visit, guard: NewGuard(b.opts.MaxDepth)}
	release, err := w.guard.Enter(record, "", 0)
	if err != nil {
		return err
	}
	defer release()
	return w.field(field, "", 0)
}

type walker struct {
	b     *Builder
	visit VisitFunc
	guard *Guard
}

func (w *walker) record(record schema.Structure, parent string, depth int) error {
	release, err := w.guard.Enter(record, parent, depth)
	if err != nil {
		return err
	}
	defer release()

	for _, field := range record.Fields() {
		if err := w.field(field, parent, depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) field(field schema.Field, parent string, depth int) error {
	desc, ok, err := w.b.Build(field, parent)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if w.visit != nil {
		if err := w.visit(desc, depth); err != nil {
			return err
		}
	}
	return w.children(desc, depth)
}

func (w *walker) children(desc Descriptor, depth int) error {
	switch desc.Category() {
	case CategoryRecord:
		record, _ := desc.Record()
		return w.record(record, desc.QualifiedName(), depth+1)

	case CategoryMap:
		info, _ := desc.Map()
		keyName := KeyFieldName(desc.FieldName())
		switch info.Value.Category {
		case CategoryRecord:
			record := info.Value.Type.(schema.Structure)
			return w.record(record, JoinPath(desc.QualifiedName(), keyName), depth+1)
		case CategoryMap:
			nested, err := w.b.Derive(keyName, desc.QualifiedName(), info.Value.Type, desc.Attributes().WithoutDefault())
			if err != nil {
				return err
			}
			if w.visit != nil {
				if err := w.visit(nested, depth+1); err != nil {
					return err
				}
			}
			return w.children(nested, depth+1)
		}

	case CategoryAlternative:
		info, _ := desc.Alternatives()
		branch, err := w.b.Derive(desc.FieldName(), desc.ParentPath(), info.Branches[0].Type, desc.Attributes())
		if err != nil {
			return err
		}
		return w.children(branch, depth)
	}
	return nil
}
