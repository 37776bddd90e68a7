package openapi

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Parser turns a raw OpenAPI document into records: one per operation with a
// request body plus one per object schema under components.
type Parser interface {
	Catalog(ctx context.Context, raw []byte) (*schema.Catalog, error)
}

// ParserOptions exposes toggles for document handling.
type ParserOptions struct {
	// ResolveReferences controls whether the parser validates the document and
	// allows external $refs. Defaults to true.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without paths (components only).
	// Defaults to true.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for component-only documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:     true,
		AllowPartialDocuments: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level schemaform package to avoid import cycles.
