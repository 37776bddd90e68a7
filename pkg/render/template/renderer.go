package template

import (
	"io"
)

// TemplateRenderer is the seam page assembly renders through. The rendered
// page is returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}
