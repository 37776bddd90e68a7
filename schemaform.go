// Package schemaform renders HTML forms from record schemas and decodes what
// those forms post back.
//
// The entry points here cover the common cases. The packages under pkg/ hold
// the full pipeline: schema adapters, the descriptor builder, renderers and
// submission decoding.
package schemaform

import (
	"context"
	"net/http"

	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/submission"
)

// RenderOptions describes per-request data (submission URI, initial values,
// extra hidden inputs) renderers apply without mutating the schema.
type RenderOptions = render.RenderOptions

// Record is the schema record forms are rendered from.
type Record = schema.Record

// Field is a single record field.
type Field = schema.Field

// NewOrchestrator exposes the pipeline constructor from the top-level module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderForm renders record as a complete form posting to uri. Initial values
// are keyed by qualified field name and replace schema defaults.
func RenderForm(record schema.Structure, uri string, initialValues map[string]any) (string, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return "", err
	}
	return renderer.RenderForm(record, uri, initialValues)
}

// Generate loads source, selects recordName from its catalog and renders it
// with the named renderer ("vanilla" when empty).
func Generate(ctx context.Context, source schema.Source, recordName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   source,
		Record:   recordName,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders from a pre-loaded document, bypassing the
// loader stage.
func GenerateFromDocument(ctx context.Context, doc schema.Document, recordName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document: &doc,
		Record:   recordName,
		Renderer: rendererName,
	})
}

// ParseSubmission decodes a form post (JSON from the runtime script or a
// plain urlencoded post) and validates it against record.
func ParseSubmission(r *http.Request, record schema.Structure) (map[string]any, error) {
	payload, err := submission.FromRequest(r)
	if err != nil {
		return nil, err
	}
	if err := submission.Validate(record, payload); err != nil {
		return payload, err
	}
	return payload, nil
}
