package openapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

const DefaultAdapterName = "openapi"

// Adapter wraps the OpenAPI parser behind the schema.FormatAdapter interface.
type Adapter struct {
	parser Parser
}

var _ schema.FormatAdapter = (*Adapter)(nil)

// NewAdapter constructs an OpenAPI adapter with the supplied parser.
func NewAdapter(parser Parser) *Adapter {
	return &Adapter{parser: parser}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be OpenAPI.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	return detectOpenAPI(raw)
}

// Catalog parses the document into records.
func (a *Adapter) Catalog(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("openapi adapter: parser is nil")
	}
	catalog, err := a.parser.Catalog(ctx, doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Location(), err)
	}
	return catalog, nil
}

func detectOpenAPI(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
		return false
	}
	lower := strings.ToLower(string(trimmed))
	return strings.HasPrefix(lower, "openapi:") || strings.Contains(lower, "\nopenapi:") ||
		strings.HasPrefix(lower, "swagger:") || strings.Contains(lower, "\nswagger:")
}
