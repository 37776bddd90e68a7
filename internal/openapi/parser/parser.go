package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/model"
	pkgopenapi "github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// Catalog converts the document into records. Component schemas come first,
// sorted by name, followed by operation request bodies in path order.
func (p *Parser) Catalog(ctx context.Context, raw []byte) (*schema.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if (spec.Paths == nil || spec.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	conv := newConverter()
	catalog := schema.NewCatalog()

	if spec.Components != nil {
		names := make([]string, 0, len(spec.Components.Schemas))
		for name := range spec.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ref := spec.Components.Schemas[name]
			if ref == nil || ref.Value == nil || !isRecordSchema(ref.Value) {
				continue
			}
			record, err := conv.record(ref.Value, name)
			if err != nil {
				return nil, fmt.Errorf("openapi parser: component %q: %w", name, err)
			}
			if err := catalog.Add(name, record); err != nil {
				return nil, err
			}
		}
	}

	if spec.Paths != nil {
		items := spec.Paths.Map()
		paths := make([]string, 0, len(items))
		for path := range items {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			item := items[path]
			if item == nil {
				continue
			}
			for _, method := range methodOrder {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				operation := item.GetOperation(method)
				if operation == nil {
					continue
				}
				if err := p.collectOperation(conv, catalog, method, path, operation); err != nil {
					return nil, err
				}
			}
		}
	}

	conv.seal()
	if catalog.Len() == 0 {
		return nil, errors.New("openapi parser: no records extracted")
	}
	return catalog, nil
}

func (p *Parser) collectOperation(conv *converter, catalog *schema.Catalog, method, path string, operation *openapi3.Operation) error {
	body := requestSchema(operation.RequestBody)
	if body == nil || body.Value == nil || !isRecordSchema(body.Value) {
		return nil
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	name := refName(body.Ref)
	if name == "" {
		name = model.PascalName(opID)
	}
	record, err := conv.record(body.Value, name)
	if err != nil {
		return fmt.Errorf("openapi parser: operation %q: %w", opID, err)
	}
	if record.Description == "" {
		record.Description = operation.Summary
	}
	return catalog.Add(opID, record)
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	types := make([]string, 0, len(content))
	for mediaType := range content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	for _, mediaType := range types {
		if mt := content[mediaType]; mt != nil {
			return mt.Schema
		}
	}
	return nil
}

func refName(ref string) string {
	if ref == "" {
		return ""
	}
	return ref[strings.LastIndex(ref, "/")+1:]
}
