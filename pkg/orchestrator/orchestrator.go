package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalloader "github.com/goliatone/go-schemaform/internal/loader"
	internalparser "github.com/goliatone/go-schemaform/internal/openapi/parser"
	"github.com/goliatone/go-schemaform/pkg/cueschema"
	"github.com/goliatone/go-schemaform/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/page"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const defaultRendererName = "vanilla"

// ErrRecordNotFound is returned when the requested record is missing from the
// document catalog.
var ErrRecordNotFound = errors.New("orchestrator: record not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithAdapterRegistry replaces the format adapter registry.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = registry
	}
}

// WithAdapters registers additional format adapters on top of the defaults.
func WithAdapters(adapters ...schema.FormatAdapter) Option {
	return func(o *Orchestrator) {
		o.extraAdapters = append(o.extraAdapters, adapters...)
	}
}

// WithDefaultAdapter names the adapter used when detection finds no match.
func WithDefaultAdapter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultAdapter = name
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger handed to default adapters and renderers.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from schema document to rendered
// output. It applies sensible defaults (file loader, JSON Schema, OpenAPI and
// CUE adapters, vanilla renderer) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	loader          schema.Loader
	adapters        *AdapterRegistry
	extraAdapters   []schema.FormatAdapter
	defaultAdapter  string
	registry        *render.Registry
	defaultRenderer string
	logger          *zap.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a record from a schema
// document.
type Request struct {
	// Source identifies where the schema document lives. Optional when Document
	// is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already hold the
	// payload.
	Document *schema.Document

	// Format names the adapter to use. Empty means detect.
	Format string

	// Record selects the catalog entry to render. Optional when the document
	// declares a single record.
	Record string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries the submission URI, initial values and extra
	// hidden inputs.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → adapter → catalog → renderer sequence and
// returns the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	record, err := o.Record(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, record, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Record resolves the requested record without rendering it.
func (o *Orchestrator) Record(ctx context.Context, req Request) (*schema.Record, error) {
	catalog, err := o.Catalog(ctx, req)
	if err != nil {
		return nil, err
	}
	return selectRecord(catalog, req.Record)
}

// Catalog loads the document and converts it with the matching adapter.
func (o *Orchestrator) Catalog(ctx context.Context, req Request) (*schema.Catalog, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	adapter, err := o.resolveAdapter(req, doc)
	if err != nil {
		return nil, err
	}
	catalog, err := adapter.Catalog(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %s adapter: %w", adapter.Name(), err)
	}
	o.logger.Debug("catalog resolved",
		zap.String("location", doc.Location()),
		zap.String("adapter", adapter.Name()),
		zap.Int("records", catalog.Len()),
	)
	return catalog, nil
}

// Adapters exposes the adapter registry.
func (o *Orchestrator) Adapters() *AdapterRegistry {
	return o.adapters
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalloader.New(schema.NewLoaderOptions())
	}
	if o.adapters == nil {
		o.adapters = NewAdapterRegistry()
		defaults := []schema.FormatAdapter{
			jsonschema.NewAdapter(jsonschema.WithLogger(o.logger)),
			pkgopenapi.NewAdapter(internalparser.New(pkgopenapi.NewParserOptions())),
			cueschema.NewAdapter(cueschema.WithLogger(o.logger)),
		}
		for _, adapter := range defaults {
			o.adapters.MustRegister(adapter)
		}
	}
	for _, adapter := range o.extraAdapters {
		if err := o.adapters.Register(adapter); err != nil {
			o.initialiseErr = err
			break
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
			pageRenderer, err := page.New(page.WithFormRenderer(renderer), page.WithLogger(o.logger))
			if err != nil {
				o.initialiseErr = fmt.Errorf("orchestrator: page renderer: %w", err)
			} else {
				o.registry.MustRegister(pageRenderer)
			}
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
