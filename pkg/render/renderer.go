package render

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Renderer converts a record into a byte representation (an HTML form, a
// terminal prompt session, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, record schema.Structure, options RenderOptions) ([]byte, error)
}
