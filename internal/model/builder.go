package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Builder turns schema fields into descriptors.
type Builder struct {
	opts Options
}

// New constructs a Builder with the supplied options.
func New(options Options) *Builder {
	return &Builder{opts: options.withDefaults()}
}

// Options returns the resolved builder options.
func (b *Builder) Options() Options {
	return b.opts
}

// Logger returns the builder's logger.
func (b *Builder) Logger() *zap.Logger {
	return b.opts.Logger
}

// Label humanises a field name through the configured labeler.
func (b *Builder) Label(name string) string {
	return b.opts.Labeler(name)
}

// Build describes field at parentPath. The boolean is false when the field is
// suppressed by the no_html extension; in that case no descriptor exists and
// no descendant is visited.
func (b *Builder) Build(field schema.Field, parentPath string) (Descriptor, bool, error) {
	qualified := JoinPath(parentPath, field.Name)
	if field.Hidden() {
		b.opts.Logger.Warn("field hidden by no_html", zap.String("field", qualified))
		return Descriptor{}, false, nil
	}

	def := field.Default
	if value, ok := b.opts.Values[qualified]; ok {
		def = value
	}
	attrs := NewAttributes(field.Required, def, field.Description, field.Alias)

	desc, err := b.describe(field.Name, parentPath, field.Type, attrs)
	if err != nil {
		return Descriptor{}, false, err
	}
	return desc, true, nil
}

// Derive describes a synthesized field (map keys and values, list templates,
// alternative branches) that has no schema field of its own.
func (b *Builder) Derive(name, parentPath string, t schema.Type, attrs Attributes) (Descriptor, error) {
	return b.describe(name, parentPath, t, attrs)
}

func (b *Builder) describe(name, parentPath string, t schema.Type, attrs Attributes) (Descriptor, error) {
	qualified := JoinPath(parentPath, name)

	category, err := Classify(t)
	if err != nil {
		return Descriptor{}, withField(err, qualified)
	}

	inner, innerType, err := b.innerInfo(qualified, category, t)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		fieldName:  name,
		parentPath: parentPath,
		category:   category,
		inner:      inner,
		outer:      t,
		innerType:  innerType,
		attrs:      attrs,
	}, nil
}

func (b *Builder) innerInfo(qualified string, category Category, t schema.Type) (InnerInfo, schema.Type, error) {
	switch category {
	case CategoryList, CategoryTuple:
		seq, ok := t.(schema.Sequence)
		if !ok {
			return nil, nil, fmt.Errorf("model: field %q: %s type %q exposes no element type", qualified, category, t.Name())
		}
		elem := b.elemInfo(qualified, seq.Elem())
		return elem, elem.Type, nil

	case CategoryMap:
		mapping, ok := t.(schema.Mapping)
		if !ok || mapping.Key() == nil || mapping.Value() == nil {
			return nil, nil, fmt.Errorf("model: field %q: %w", qualified, ErrIncompleteMap)
		}
		info := MapInfo{
			Key:   b.elemInfo(qualified, mapping.Key()),
			Value: b.elemInfo(qualified, mapping.Value()),
		}
		return info, info.Value.Type, nil

	case CategoryAlternative:
		alternatives, ok := t.(schema.Alternatives)
		if !ok {
			return nil, nil, &UnclassifiableTypeError{Field: qualified, TypeName: t.Name()}
		}
		branches := alternatives.Branches()
		if len(branches) == 0 {
			return nil, nil, fmt.Errorf("model: field %q: alternative declares no branches: %w", qualified, ErrUnclassifiableType)
		}
		info := AlternativeInfo{Branches: make([]ElemInfo, 0, len(branches))}
		for _, branch := range branches {
			info.Branches = append(info.Branches, b.elemInfo(qualified, branch))
		}
		return info, branches[0], nil

	default:
		return nil, t, nil
	}
}

// elemInfo classifies a nested type. Failures are recorded as
// CategoryUnknown so container renderers can degrade to a marker.
func (b *Builder) elemInfo(qualified string, t schema.Type) ElemInfo {
	if t == nil {
		return ElemInfo{Name: "<nil>", Category: CategoryUnknown}
	}
	category, err := Classify(t)
	if err != nil {
		b.opts.Logger.Debug("nested type not classifiable",
			zap.String("field", qualified),
			zap.String("type", t.Name()),
		)
	}
	return ElemInfo{
		Type:     t,
		Name:     t.Name(),
		Category: category,
		IsEnum:   category == CategoryEnumeration,
	}
}
