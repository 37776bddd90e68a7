package vanilla

import (
	"bytes"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// pass holds the state of one render invocation: the builder carrying the
// initial values, the cycle guard and the categories seen so far.
type pass struct {
	r       *Renderer
	builder model.Builder
	guard   *model.Guard
	depth   int
	used    []model.Category
	seen    map[model.Category]struct{}
}

func (r *Renderer) newPass(values map[string]any) *pass {
	return &pass{
		r: r,
		builder: model.NewBuilder(
			model.WithLogger(r.logger),
			model.WithValues(values),
			model.WithMaxDepth(r.maxDepth),
		),
		guard: model.NewGuard(r.maxDepth),
		seen:  make(map[model.Category]struct{}),
	}
}

// record renders every field of record under parent and concatenates the
// fragments. Suppressed fields contribute nothing.
func (p *pass) record(record schema.Structure, parent string) (string, error) {
	release, err := p.guard.Enter(record, parent, p.depth)
	if err != nil {
		return "", err
	}
	defer release()

	p.depth++
	defer func() { p.depth-- }()

	var buf bytes.Buffer
	for _, field := range record.Fields() {
		desc, ok, err := p.builder.Build(field, parent)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		fragment, err := p.dispatch(desc, "")
		if err != nil {
			return "", err
		}
		buf.WriteString(fragment)
	}
	return buf.String(), nil
}

func (p *pass) dispatch(desc model.Descriptor, label string) (string, error) {
	descriptor, ok := p.r.registry.Descriptor(desc.Category())
	if !ok {
		return "", &render.UnhandledCategoryError{Field: desc.QualifiedName(), Category: desc.Category()}
	}
	if _, exists := p.seen[desc.Category()]; !exists {
		p.seen[desc.Category()] = struct{}{}
		p.used = append(p.used, desc.Category())
	}

	var buf bytes.Buffer
	err := descriptor.Renderer(&buf, desc, components.ComponentData{
		Builder:  p.builder,
		Logger:   p.r.logger,
		Label:    label,
		Dispatch: p.dispatch,
		Record:   p.record,
		Config: components.Config{
			ConstrainedBounds: p.r.constrainedBounds,
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
