package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func (o *Orchestrator) resolveAdapter(req Request, doc schema.Document) (schema.FormatAdapter, error) {
	if o.adapters == nil {
		return nil, errors.New("orchestrator: adapter registry is nil")
	}

	format := strings.TrimSpace(req.Format)
	if format != "" {
		return o.adapters.Get(format)
	}

	matches := o.adapters.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		if o.defaultAdapter == "" {
			return nil, fmt.Errorf("orchestrator: unable to detect format of %s", doc.Location())
		}
		return o.adapters.Get(o.defaultAdapter)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("orchestrator: multiple adapters matched payload (%s), specify format", formatAdapterNames(matches))
	}
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	if o.loader == nil {
		return schema.Document{}, errors.New("orchestrator: loader is nil")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// selectRecord picks the requested record, or the only one when the catalog
// holds a single entry and no name was given.
func selectRecord(catalog *schema.Catalog, name string) (*schema.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		names := catalog.Names()
		if len(names) == 1 {
			record, _ := catalog.Record(names[0])
			return record, nil
		}
		return nil, fmt.Errorf("%w: record name is required (available: %s)", ErrRecordNotFound, formatNames(catalog.SortedNames()))
	}
	record, ok := catalog.Record(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrRecordNotFound, name, formatNames(catalog.SortedNames()))
	}
	return record, nil
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func formatAdapterNames(adapters []schema.FormatAdapter) string {
	if len(adapters) == 0 {
		return ""
	}
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		name := strings.TrimSpace(adapter.Name())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
