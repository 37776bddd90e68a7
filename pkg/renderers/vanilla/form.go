package vanilla

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const submitHandler = "return submit_form(event)"

// Result is an assembled form together with the client scripts it calls.
type Result struct {
	HTML    string
	Scripts []components.Script
}

// Compose renders the field fragments of record, appends the submit control
// and the hidden _uri input, and wraps everything in a form element whose
// submission is intercepted by the client script.
func (r *Renderer) Compose(ctx context.Context, record schema.Structure, options render.RenderOptions) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if record == nil {
		return Result{}, fmt.Errorf("vanilla renderer: record is nil")
	}

	p := r.newPass(options.Values)
	fields, err := p.record(record, "")
	if err != nil {
		return Result{}, fmt.Errorf("vanilla renderer: render %q: %w", record.Name(), err)
	}

	controls, err := formControls(options)
	if err != nil {
		return Result{}, fmt.Errorf("vanilla renderer: render %q: %w", record.Name(), err)
	}

	form, err := markup.MakeTag("form", markup.Attrs{
		markup.A("onsubmit", submitHandler),
		markup.A("name", options.ResolvedFormName()),
	}, fields+controls)
	if err != nil {
		return Result{}, fmt.Errorf("vanilla renderer: render %q: %w", record.Name(), err)
	}

	scripts := append(components.FormScripts(), r.registry.Scripts(p.used)...)
	return Result{HTML: form, Scripts: dedupeScripts(scripts)}, nil
}

type tagSpec struct {
	name    string
	attrs   markup.Attrs
	content string
}

func formControls(options render.RenderOptions) (string, error) {
	tags := []tagSpec{
		{"label", markup.Attrs{markup.A("for", render.SubmitControlName)}, "submit"},
		{"input", markup.Attrs{markup.A("type", "submit"), markup.A("id", render.SubmitControlName)}, ""},
		hiddenInput(render.URIControlName, options.URI),
	}
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		tags = append(tags, hiddenInput(field.Name, field.Value))
	}

	var out strings.Builder
	for _, tag := range tags {
		html, err := markup.MakeTag(tag.name, tag.attrs, tag.content)
		if err != nil {
			return "", err
		}
		out.WriteString(html)
	}
	return out.String(), nil
}

func hiddenInput(name, value string) tagSpec {
	return tagSpec{name: "input", attrs: markup.Attrs{
		markup.A("type", "hidden"),
		markup.A("id", name),
		markup.A("name", name),
		markup.A("value", value),
	}}
}

func dedupeScripts(scripts []components.Script) []components.Script {
	seen := make(map[string]struct{}, len(scripts))
	out := scripts[:0]
	for _, script := range scripts {
		if _, ok := seen[script.Name]; ok {
			continue
		}
		seen[script.Name] = struct{}{}
		out = append(out, script)
	}
	return out
}
