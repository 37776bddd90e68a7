package page

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/render"
	rendertemplate "github.com/goliatone/go-schemaform/pkg/render/template"
	"github.com/goliatone/go-schemaform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-schemaform/pkg/runtime"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const (
	// Name is the renderer name registered in render registries.
	Name = "page"

	templateName = "page"

	// themeAssetStylesheet is the go-theme asset key resolved for the page
	// stylesheet.
	themeAssetStylesheet = "stylesheet"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded page layout.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option customises the page renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	form             *vanilla.Renderer
	theme            *theme.RendererConfig
	assetURLPrefix   string
	title            string
	lang             string
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate layout bundle. It must contain
// page.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads the layout from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFormRenderer sets the renderer that produces the form body.
func WithFormRenderer(renderer *vanilla.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.form = renderer
		}
	}
}

// WithTheme applies a go-theme renderer configuration: theme and variant
// names land on the html element, CSS variables in a style block, and the
// "stylesheet" asset is linked when the resolver knows it.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithAssetURLPrefix links the runtime scripts from prefix (for example
// "/assets") instead of inlining them.
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURLPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithTitle overrides the page title. The record name is used otherwise.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
	}
}

// WithLang sets the html lang attribute. Defaults to "en".
func WithLang(lang string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			cfg.lang = trimmed
		}
	}
}

// WithLogger sets the logger used for asset resolution notices.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer wraps a composed form in a complete HTML document with the runtime
// scripts it depends on.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	form           *vanilla.Renderer
	theme          *theme.RendererConfig
	assetURLPrefix string
	title          string
	lang           string
	logger         *zap.Logger
}

// New constructs a page renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		lang:       "en",
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.form == nil {
		form, err := vanilla.New(vanilla.WithLogger(cfg.logger))
		if err != nil {
			return nil, fmt.Errorf("page: form renderer: %w", err)
		}
		cfg.form = form
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("page: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:      templates,
		form:           cfg.form,
		theme:          cfg.theme,
		assetURLPrefix: cfg.assetURLPrefix,
		title:          cfg.title,
		lang:           cfg.lang,
		logger:         cfg.logger,
	}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, record schema.Structure, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("page: renderer is not configured")
	}
	result, err := r.form.Compose(ctx, record, options)
	if err != nil {
		return nil, err
	}

	scripts, err := r.scripts(result.Scripts)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"lang":        r.lang,
		"title":       r.pageTitle(record),
		"description": recordDescription(record),
		"form":        result.HTML,
		"scripts":     scripts,
		"theme":       r.themeContext(),
	}

	out, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("page: render %q: %w", record.Name(), err)
	}
	return []byte(out), nil
}

func (r *Renderer) scripts(scripts []components.Script) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		entry := map[string]any{"name": script.Name, "defer": script.Defer}
		switch {
		case script.Src != "":
			entry["src"] = script.Src
		case r.assetURLPrefix != "":
			entry["src"] = r.assetURLPrefix + "/" + script.Name
		default:
			content, err := runtime.Script(script.Name)
			if err != nil {
				return nil, fmt.Errorf("page: inline script %q: %w", script.Name, err)
			}
			entry["content"] = content
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *Renderer) pageTitle(record schema.Structure) string {
	if r.title != "" {
		return r.title
	}
	return record.Name()
}

func (r *Renderer) themeContext() map[string]any {
	if r.theme == nil {
		return map[string]any{}
	}
	ctx := map[string]any{
		"name":    r.theme.Theme,
		"variant": r.theme.Variant,
	}
	if len(r.theme.CSSVars) > 0 {
		ctx["css_vars"] = r.theme.CSSVars
	}
	if r.theme.AssetURL != nil {
		if href := r.theme.AssetURL(themeAssetStylesheet); href != "" {
			ctx["stylesheet"] = href
		} else {
			r.logger.Debug("theme has no stylesheet asset", zap.String("theme", r.theme.Theme))
		}
	}
	return ctx
}

func recordDescription(record schema.Structure) string {
	if rec, ok := record.(*schema.Record); ok {
		return rec.Description
	}
	return ""
}

var _ render.Renderer = (*Renderer)(nil)
