package vanilla

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// EnumPresentation selects how enumerations render.
type EnumPresentation string

const (
	EnumSelect EnumPresentation = "select"
	EnumRadio  EnumPresentation = "radio"
)

type Option func(*config)

type config struct {
	logger            *zap.Logger
	registry          *components.Registry
	maxDepth          int
	constrainedBounds bool
	enumPresentation  EnumPresentation
}

// WithLogger routes suppression and degrade notices to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRegistry replaces the category registry. The registry is cloned so
// later mutations by the caller do not leak into the renderer.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithMaxDepth bounds record nesting. Deeper schemas fail the render.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		cfg.maxDepth = depth
	}
}

// WithConstrainedBounds emits min/max attributes on constrained numerics.
func WithConstrainedBounds(enabled bool) Option {
	return func(cfg *config) {
		cfg.constrainedBounds = enabled
	}
}

// WithEnumPresentation switches enumerations between select and radio
// groups.
func WithEnumPresentation(presentation EnumPresentation) Option {
	return func(cfg *config) {
		cfg.enumPresentation = presentation
	}
}

// Renderer turns records into HTML forms.
type Renderer struct {
	logger            *zap.Logger
	registry          *components.Registry
	maxDepth          int
	constrainedBounds bool
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		logger:           zap.NewNop(),
		maxDepth:         model.DefaultMaxDepth,
		enumPresentation: EnumSelect,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	switch cfg.enumPresentation {
	case EnumSelect, "":
	case EnumRadio:
		if err := registry.Register(model.CategoryEnumeration, components.RadioEnum()); err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure enum presentation: %w", err)
		}
	default:
		return nil, fmt.Errorf("vanilla renderer: unknown enum presentation %q", cfg.enumPresentation)
	}

	return &Renderer{
		logger:            cfg.logger,
		registry:          registry,
		maxDepth:          cfg.maxDepth,
		constrainedBounds: cfg.constrainedBounds,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer, producing the assembled form.
func (r *Renderer) Render(ctx context.Context, record schema.Structure, options render.RenderOptions) ([]byte, error) {
	result, err := r.Compose(ctx, record, options)
	if err != nil {
		return nil, err
	}
	return []byte(result.HTML), nil
}

// RenderForm renders record as a form posting to uri, pre-filled with values
// keyed by qualified field name.
func (r *Renderer) RenderForm(record schema.Structure, uri string, values map[string]any) (string, error) {
	result, err := r.Compose(context.Background(), record, render.RenderOptions{URI: uri, Values: values})
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// RenderFields renders the field fragments of record without the form
// wrapper or the submit controls.
func (r *Renderer) RenderFields(ctx context.Context, record schema.Structure, values map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if record == nil {
		return "", fmt.Errorf("vanilla renderer: record is nil")
	}
	p := r.newPass(values)
	return p.record(record, "")
}

var _ render.Renderer = (*Renderer)(nil)
