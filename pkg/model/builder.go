package model

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/internal/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Builder converts schema fields into descriptors and walks records.
type Builder interface {
	Build(field schema.Field, parentPath string) (Descriptor, bool, error)
	Derive(name, parentPath string, t schema.Type, attrs Attributes) (Descriptor, error)
	Walk(record schema.Structure, visit VisitFunc) error
	WalkField(record schema.Structure, field schema.Field, visit VisitFunc) error
	Lint(record schema.Structure) error
	Label(name string) string
	Logger() *zap.Logger
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logger   *zap.Logger
	values   map[string]any
	labeler  func(string) string
	maxDepth int
}

// WithLogger routes suppression and degrade notices to logger.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// WithValues pre-fills defaults keyed by qualified field name.
func WithValues(values map[string]any) BuilderOption {
	return func(opts *builderOptions) {
		opts.values = values
	}
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithMaxDepth bounds record nesting during walks.
func WithMaxDepth(depth int) BuilderOption {
	return func(opts *builderOptions) {
		opts.maxDepth = depth
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(model.Options{
		Logger:   cfg.logger,
		Values:   cfg.values,
		Labeler:  cfg.labeler,
		MaxDepth: cfg.maxDepth,
	})
}
