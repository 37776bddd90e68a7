package cmd

import (
	"fmt"
	"io"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	internalloader "github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/page"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const (
	stdinSchema     = "-"
	stdinInlineName = "stdin"
	themeStylesheet = "stylesheet"
	rendererVanilla = "vanilla"
)

func bindFlags(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if flag := lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// source resolves the configured schema location and the loader options it
// needs.
func (a *app) source() (schema.Source, []schema.LoaderOption, error) {
	if err := requireSchema(a.cfg); err != nil {
		return nil, nil, err
	}
	location := strings.TrimSpace(a.cfg.Schema)

	switch {
	case location == stdinSchema:
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read schema from stdin: %w", err)
		}
		return schema.SourceInline(stdinInlineName), []schema.LoaderOption{schema.WithInline(stdinInlineName, data)}, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return schema.SourceFromURL(location), []schema.LoaderOption{schema.WithHTTPFallback(a.cfg.Loader.Timeout)}, nil
	default:
		return schema.SourceFromFile(location), nil, nil
	}
}

func (a *app) formRenderer() (*vanilla.Renderer, error) {
	options := []vanilla.Option{
		vanilla.WithLogger(a.logger),
		vanilla.WithConstrainedBounds(a.cfg.Render.ConstrainedBounds),
		vanilla.WithEnumPresentation(vanilla.EnumPresentation(a.cfg.Render.EnumPresentation)),
	}
	if a.cfg.Render.MaxDepth > 0 {
		options = append(options, vanilla.WithMaxDepth(a.cfg.Render.MaxDepth))
	}
	return vanilla.New(options...)
}

func (a *app) pageRenderer(form *vanilla.Renderer, assetPrefix string) (*page.Renderer, error) {
	return page.New(
		page.WithFormRenderer(form),
		page.WithTheme(a.themeConfig()),
		page.WithTitle(a.cfg.Render.Title),
		page.WithLang(a.cfg.Render.Lang),
		page.WithAssetURLPrefix(assetPrefix),
		page.WithLogger(a.logger),
	)
}

func (a *app) themeConfig() *theme.RendererConfig {
	t := a.cfg.Theme
	if t.Name == "" && len(t.CSSVars) == 0 && t.Stylesheet == "" {
		return nil
	}
	stylesheet := t.Stylesheet
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		CSSVars: t.CSSVars,
		AssetURL: func(key string) string {
			if key == themeStylesheet {
				return stylesheet
			}
			return ""
		},
	}
}

func (a *app) promptRenderer(driver tui.PromptDriver) (*tui.Renderer, error) {
	options := []tui.Option{
		tui.WithLogger(a.logger),
		tui.WithOutputFormat(tui.OutputFormatPrettyJSON),
	}
	if driver != nil {
		options = append(options, tui.WithPromptDriver(driver))
	}
	if a.cfg.Render.MaxDepth > 0 {
		options = append(options, tui.WithMaxDepth(a.cfg.Render.MaxDepth))
	}
	return tui.New(options...)
}

// orchestrator wires the loader and every renderer the binary offers into a
// pipeline. A nil driver prompts on the terminal.
func (a *app) orchestrator(loaderOptions []schema.LoaderOption, driver tui.PromptDriver) (*orchestrator.Orchestrator, error) {
	form, err := a.formRenderer()
	if err != nil {
		return nil, err
	}
	pageRenderer, err := a.pageRenderer(form, a.cfg.Render.AssetPrefix)
	if err != nil {
		return nil, err
	}
	prompts, err := a.promptRenderer(driver)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	for _, r := range []render.Renderer{form, pageRenderer, prompts} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}

	return orchestrator.New(
		orchestrator.WithLoader(internalloader.New(schema.NewLoaderOptions(loaderOptions...))),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(rendererVanilla),
		orchestrator.WithLogger(a.logger),
	), nil
}

// pipeline returns the orchestrator and a request carrying the configured
// source, format and record.
func (a *app) pipeline(driver tui.PromptDriver) (*orchestrator.Orchestrator, orchestrator.Request, error) {
	src, loaderOptions, err := a.source()
	if err != nil {
		return nil, orchestrator.Request{}, err
	}
	orch, err := a.orchestrator(loaderOptions, driver)
	if err != nil {
		return nil, orchestrator.Request{}, err
	}
	return orch, orchestrator.Request{
		Source: src,
		Format: a.cfg.Format,
		Record: a.cfg.Record,
		RenderOptions: render.RenderOptions{
			URI:      a.cfg.Render.URI,
			FormName: a.cfg.Render.FormName,
		},
	}, nil
}

func (a *app) builder() model.Builder {
	options := []model.BuilderOption{model.WithLogger(a.logger)}
	if a.cfg.Render.MaxDepth > 0 {
		options = append(options, model.WithMaxDepth(a.cfg.Render.MaxDepth))
	}
	return model.NewBuilder(options...)
}
