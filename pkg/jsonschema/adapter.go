package jsonschema

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const DefaultAdapterName = "jsonschema"

// DefaultRootName names the root record when neither a title nor a source
// location suggests one.
const DefaultRootName = "Root"

// Adapter turns JSON Schema documents (JSON or YAML) into record catalogs.
type Adapter struct {
	rootName string
	logger   *zap.Logger
}

var _ schema.FormatAdapter = (*Adapter)(nil)

// AdapterOption configures a JSON Schema adapter.
type AdapterOption func(*Adapter)

// WithRootName overrides the catalog name of the root record.
func WithRootName(name string) AdapterOption {
	return func(a *Adapter) {
		a.rootName = strings.TrimSpace(name)
	}
}

// WithLogger attaches a logger used for debug output.
func WithLogger(logger *zap.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter constructs a JSON Schema adapter.
func NewAdapter(options ...AdapterOption) *Adapter {
	a := &Adapter{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be JSON Schema.
func (a *Adapter) Detect(src schema.Source, raw []byte) bool {
	switch schema.Ext(src) {
	case ".json", "":
		return detectJSONSchema(raw)
	case ".yaml", ".yml":
		return detectYAMLSchema(raw)
	}
	return false
}

// Catalog parses the document and converts it to records.
func (a *Adapter) Catalog(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := Parse(doc.Raw())
	if err != nil {
		return nil, err
	}
	name := a.resolveRootName(root, doc)
	catalog, err := Convert(root, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Location(), err)
	}
	a.logger.Debug("json schema converted",
		zap.String("location", doc.Location()),
		zap.Int("records", catalog.Len()),
	)
	return catalog, nil
}

func (a *Adapter) resolveRootName(root *Node, doc schema.Document) string {
	if a.rootName != "" {
		return a.rootName
	}
	if name := model.PascalName(root.Title); name != "" {
		return name
	}
	base := path.Base(strings.ReplaceAll(doc.Location(), "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimSuffix(base, ".schema")
	if name := model.PascalName(base); name != "" {
		return name
	}
	return DefaultRootName
}

func detectJSONSchema(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return false
	}
	return looksLikeSchema(payload)
}

func detectYAMLSchema(raw []byte) bool {
	var payload map[string]any
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return false
	}
	return looksLikeSchema(payload)
}

func looksLikeSchema(payload map[string]any) bool {
	if payload == nil {
		return false
	}
	if _, ok := payload["openapi"]; ok {
		return false
	}
	if _, ok := payload["swagger"]; ok {
		return false
	}
	for _, key := range []string{"$schema", "$id", "$defs", "definitions", "properties", "type", "items"} {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}
