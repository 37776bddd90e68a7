package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-schemaform/pkg/render/template"
)

const defaultExtension = ".tpl"

var registerFilters sync.Once

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// Engine satisfies template.TemplateRenderer with a pongo2 template set.
// Parsed templates are cached by path.
type Engine struct {
	mu        sync.RWMutex
	files     fs.FS
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. A template source is required.
func New(options ...Option) (*Engine, error) {
	engine := &Engine{templates: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt != nil {
			opt(engine)
		}
	}
	if engine.files == nil {
		return nil, errors.New("gotemplate: a template fs.FS is required")
	}

	engine.set = pongo2.NewSet("schemaform", pongo2.NewFSLoader(engine.files))
	registerFilters.Do(func() {
		if !pongo2.FilterExists("cssvars") {
			_ = pongo2.RegisterFilter("cssvars", filterCSSVars)
		}
	})
	return engine, nil
}

// RenderTemplate executes the named template, appending the .tpl extension
// when it is missing.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, defaultExtension) {
		path += defaultExtension
	}

	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// filterCSSVars renders a map of custom properties as a :root rule with the
// names sorted. Empty input renders nothing.
func filterCSSVars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars := make(map[string]string)
	switch v := in.Interface().(type) {
	case map[string]string:
		for name, value := range v {
			vars[name] = value
		}
	case map[string]any:
		for name, value := range v {
			vars[name] = fmt.Sprint(value)
		}
	}
	if len(vars) == 0 {
		return pongo2.AsValue(""), nil
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {")
	for _, name := range names {
		fmt.Fprintf(&b, " %s: %s;", name, vars[name])
	}
	b.WriteString(" }")
	return pongo2.AsSafeValue(b.String()), nil
}
