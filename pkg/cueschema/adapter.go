// Package cueschema reads CUE definitions as form records. Every top-level
// struct definition (#Name) becomes a catalog entry; fields map onto schema
// types through their constraints:
//
//	#Signup: {
//		// Shown as the placeholder.
//		email: string @form(alias="E-mail")
//		plan:  *"free" | "pro"
//		age?:  int & >=18 & <=120
//		tags:  [...string]
//		meta:  [string]: string
//		token: string @form(no_html)
//	}
package cueschema

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

const DefaultAdapterName = "cue"

// Adapter implements schema.FormatAdapter for .cue documents.
type Adapter struct {
	logger *zap.Logger
}

var _ schema.FormatAdapter = (*Adapter)(nil)

// AdapterOption configures the CUE adapter.
type AdapterOption func(*Adapter)

// WithLogger attaches a logger used for debug output.
func WithLogger(logger *zap.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter constructs a CUE adapter.
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

// Detect matches on the .cue extension.
func (a *Adapter) Detect(src schema.Source, _ []byte) bool {
	return schema.Ext(src) == ".cue"
}

// Catalog compiles the document and converts its definitions.
func (a *Adapter) Catalog(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog, err := Compile(doc.Raw(), doc.Location())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("cue definitions converted",
		zap.String("location", doc.Location()),
		zap.Strings("records", catalog.Names()),
	)
	return catalog, nil
}

// Compile evaluates CUE source and returns the catalog of its struct
// definitions.
func Compile(raw []byte, filename string) (*schema.Catalog, error) {
	value := cuecontext.New().CompileBytes(raw, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("cueschema: compile %s: %w", filename, err)
	}
	return Convert(value)
}
