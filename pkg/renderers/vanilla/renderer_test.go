package vanilla_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const formPrefix = "<form onsubmit='return submit_form(event)' name='myform'>"

func formSuffix(uri string) string {
	return "<label for='_submit'>submit</label>" +
		"<input type='submit' id='_submit'></input>" +
		"<input type='hidden' id='_uri' name='_uri' value='" + uri + "'></input>" +
		"</form>"
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("vanilla.New() error: %v", err)
	}
	return renderer
}

func renderFields(t *testing.T, renderer *vanilla.Renderer, record schema.Structure) string {
	t.Helper()
	html, err := renderer.RenderFields(context.Background(), record, nil)
	if err != nil {
		t.Fatalf("RenderFields() error: %v", err)
	}
	return html
}

func TestRenderFormRequiredAndNumberInputs(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "name", Type: schema.String, Required: true},
		schema.Field{Name: "age", Type: schema.Int},
	)

	html, err := newRenderer(t).RenderForm(record, "/users", nil)
	if err != nil {
		t.Fatalf("RenderForm() error: %v", err)
	}

	want := formPrefix +
		"<label for='name'>name</label><input type='text' id='name' name='name' required></input>" +
		"<label for='age'>age</label><input type='number' id='age' name='age'></input>" +
		formSuffix("/users")
	if html != want {
		t.Fatalf("unexpected form:\n got: %s\nwant: %s", html, want)
	}
}

func TestRenderEnumerationAsSelect(t *testing.T) {
	record := schema.NewRecord("Pet",
		schema.Field{Name: "type", Type: schema.NewEnum("UserType", "dog", "person", "robot")},
	)

	want := "<label for='type'>type</label><select name='type' id='type'>" +
		"<option value='dog'>dog</option>" +
		"<option value='person'>person</option>" +
		"<option value='robot'>robot</option>" +
		"</select>"
	if got := renderFields(t, newRenderer(t), record); got != want {
		t.Fatalf("unexpected select:\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderEnumerationAsRadioGroup(t *testing.T) {
	record := schema.NewRecord("Pet",
		schema.Field{Name: "type", Type: schema.NewEnum("UserType", "dog", "cat")},
	)

	want := "<fieldset><legend>type</legend>" +
		"<label for='type-dog'>dog</label><input type='radio' id='type-dog' name='type' value='dog'></input>" +
		"<label for='type-cat'>cat</label><input type='radio' id='type-cat' name='type' value='cat'></input>" +
		"</fieldset>"
	got := renderFields(t, newRenderer(t, vanilla.WithEnumPresentation(vanilla.EnumRadio)), record)
	if got != want {
		t.Fatalf("unexpected radio group:\n got: %s\nwant: %s", got, want)
	}
}

func addressRecord() *schema.Record {
	return schema.NewRecord("Address",
		schema.Field{Name: "street", Type: schema.String},
		schema.Field{Name: "city", Type: schema.String},
	)
}

func TestRenderMapOfRecords(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "addresses", Type: schema.MapOf(schema.String, addressRecord())},
	)

	got := renderFields(t, newRenderer(t), record)

	want := `
<section id='addresses-section'>
<h3 onclick="collapsible('addresses-items'); return false;">addresses</h3>
<div>
<a id='addresses-add-button' href='#' onclick='duplicate_item("_addresses-key", "addresses-template", "addresses-section"); return false;'>add</a>
</div>
<template id='addresses-template'>
<fieldset name='addresses-items' class='collapsible'>
` +
		"<label for='addresses._addresses-key'>Address</label>" +
		"<input type='text' id='addresses._addresses-key' name='addresses._addresses-key' value='01'></input>" +
		"<label for='addresses._addresses-key.street'>street</label>" +
		"<input type='text' id='addresses._addresses-key.street' name='addresses._addresses-key.street'></input>" +
		"<label for='addresses._addresses-key.city'>city</label>" +
		"<input type='text' id='addresses._addresses-key.city' name='addresses._addresses-key.city'></input>" +
		`
<a id='addresses-remove-button' href='#' onclick='remove_item("_addresses-key", "addresses-template", "addresses-section"); return false;'>remove</a>
</fieldset>
</template>
</section>
`
	if got != want {
		t.Fatalf("unexpected map section:\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderMapOfPrimitivesNaming(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "friends", Type: schema.MapOf(schema.String, schema.Int), Required: true},
	)

	got := renderFields(t, newRenderer(t), record)

	for _, fragment := range []string{
		"<label for='friends._friends-key'>reference</label>",
		"<input type='text' id='friends._friends-key' name='friends._friends-key' value='01' required></input>",
		"<label for='friends._friends-value'>value</label>",
		"<input type='number' id='friends._friends-value' name='friends._friends-value' required></input>",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, got)
		}
	}
}

func TestRenderMapOfMapsNestsUnderKeyName(t *testing.T) {
	record := schema.NewRecord("Grid",
		schema.Field{Name: "cells", Type: schema.MapOf(schema.String, schema.MapOf(schema.String, schema.Float))},
	)

	got := renderFields(t, newRenderer(t), record)

	for _, fragment := range []string{
		"<section id='cells-section'>",
		"<label for='cells._cells-key'>reference</label>",
		"<section id='cells._cells-key-section'>",
		`duplicate_item("__cells-key-key", "cells._cells-key-template", "cells._cells-key-section")`,
		"<input type='number' id='cells._cells-key.__cells-key-value' name='cells._cells-key.__cells-key-value'></input>",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, got)
		}
	}
}

func TestRenderMapWithRecordKeyDegrades(t *testing.T) {
	record := schema.NewRecord("Odd",
		schema.Field{Name: "title", Type: schema.String},
		schema.Field{Name: "lookup", Type: schema.MapOf(addressRecord(), schema.String)},
		schema.Field{Name: "count", Type: schema.Int},
	)

	got, err := newRenderer(t).RenderForm(record, "/odd", nil)
	if err != nil {
		t.Fatalf("RenderForm() error: %v", err)
	}

	for _, fragment := range []string{
		"<input type='text' id='title' name='title'></input>",
		"<fieldset name='lookup-items' class='collapsible'>\n" + render.KeyTypePlaceholder + "<label for='lookup._lookup-value'>value</label>",
		"<input type='number' id='count' name='count'></input>",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, got)
		}
	}
	if !strings.HasSuffix(got, formSuffix("/odd")) {
		t.Fatalf("expected complete form, got:\n%s", got)
	}
}

func TestRenderContainerErrorMarkers(t *testing.T) {
	record := schema.NewRecord("Odd",
		schema.Field{Name: "rows", Type: schema.ListOf(addressRecord())},
		schema.Field{Name: "pairs", Type: schema.MapOf(schema.String, schema.ListOf(schema.Int))},
	)

	want := "[rows]ERROR[list][pairs]ERROR[dict]"
	if got := renderFields(t, newRenderer(t), record); got != want {
		t.Fatalf("unexpected markers: got %q, want %q", got, want)
	}
}

func TestRenderMapRejectsEnumerationValues(t *testing.T) {
	record := schema.NewRecord("Palette",
		schema.Field{Name: "paint", Type: schema.MapOf(schema.String, schema.NewEnum("Color", "red", "blue"))},
	)

	want := "[paint]ERROR[dict]"
	if got := renderFields(t, newRenderer(t), record); got != want {
		t.Fatalf("unexpected output: got %q, want %q", got, want)
	}
}

func TestRenderMapWithEnumerationKeyDegrades(t *testing.T) {
	record := schema.NewRecord("Lookup",
		schema.Field{Name: "bykey", Type: schema.MapOf(schema.NewEnum("Color", "red", "blue"), schema.String)},
	)

	got := renderFields(t, newRenderer(t), record)
	if !strings.Contains(got, "<fieldset name='bykey-items' class='collapsible'>\n"+render.KeyTypePlaceholder) {
		t.Fatalf("expected key placeholder in output:\n%s", got)
	}
	for _, fragment := range []string{"<select", "bykey._bykey-key"} {
		if strings.Contains(got, fragment) {
			t.Fatalf("unexpected %q in output:\n%s", fragment, got)
		}
	}
}

func TestRenderListTemplateInput(t *testing.T) {
	owner := schema.NewRecord("Owner",
		schema.Field{Name: "tags", Type: schema.ListOf(schema.NewEnum("Tag", "red", "blue"))},
	)
	record := schema.NewRecord("Pet",
		schema.Field{Name: "owner", Type: owner},
		schema.Field{Name: "coords", Type: schema.TupleOf(schema.Float)},
	)

	want := "<section><h3>tags</h3></section>" +
		"<label for='owner.tags._tags-list'>_tags-list</label>" +
		"<input type='text' id='owner.tags._tags-list' name='owner.tags._tags-list'></input>" +
		"<section><h3>coords</h3></section>" +
		"<label for='coords._coords-list'>_coords-list</label>" +
		"<input type='text' id='coords._coords-list' name='coords._coords-list'></input>"
	if got := renderFields(t, newRenderer(t), record); got != want {
		t.Fatalf("unexpected list output:\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderNestedRecordInline(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "home", Type: addressRecord()},
	)

	want := "<label for='home.street'>street</label><input type='text' id='home.street' name='home.street'></input>" +
		"<label for='home.city'>city</label><input type='text' id='home.city' name='home.city'></input>"
	if got := renderFields(t, newRenderer(t), record); got != want {
		t.Fatalf("unexpected record output:\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderAlternativeMatchesFirstBranch(t *testing.T) {
	union := schema.NewRecord("R", schema.Field{
		Name:        "contact",
		Type:        schema.UnionOf(addressRecord(), schema.Int),
		Required:    true,
		Description: "where",
	})
	plain := schema.NewRecord("R", schema.Field{
		Name:        "contact",
		Type:        addressRecord(),
		Required:    true,
		Description: "where",
	})
	scalarUnion := schema.NewRecord("R", schema.Field{Name: "n", Type: schema.UnionOf(schema.Int, addressRecord()), Required: true})
	scalarPlain := schema.NewRecord("R", schema.Field{Name: "n", Type: schema.Int, Required: true})

	renderer := newRenderer(t)
	if got, want := renderFields(t, renderer, union), renderFields(t, renderer, plain); got != want {
		t.Fatalf("alternative differs from first branch:\n got: %s\nwant: %s", got, want)
	}
	if got, want := renderFields(t, renderer, scalarUnion), renderFields(t, renderer, scalarPlain); got != want {
		t.Fatalf("alternative differs from first branch:\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderSuppressedField(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	record := schema.NewRecord("User",
		schema.Field{Name: "name", Type: schema.String},
		schema.Field{Name: "secret", Type: schema.MapOf(schema.String, schema.String), Extensions: schema.NoHTML()},
	)

	got := renderFields(t, newRenderer(t, vanilla.WithLogger(zap.New(core))), record)
	if strings.Contains(got, "secret") {
		t.Fatalf("suppressed field leaked into output:\n%s", got)
	}
	if logs.FilterMessage("field hidden by no_html").Len() != 1 {
		t.Fatalf("expected suppression to be logged")
	}
}

func TestRenderIsStable(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "name", Type: schema.String},
		schema.Field{Name: "home", Type: addressRecord()},
		schema.Field{Name: "offices", Type: schema.MapOf(schema.String, addressRecord())},
		schema.Field{Name: "tags", Type: schema.ListOf(schema.String)},
	)
	renderer := newRenderer(t)
	first, err := renderer.RenderForm(record, "/users", nil)
	if err != nil {
		t.Fatalf("RenderForm() error: %v", err)
	}
	second, err := renderer.RenderForm(record, "/users", nil)
	if err != nil {
		t.Fatalf("RenderForm() error: %v", err)
	}
	if first != second {
		t.Fatalf("renders differ:\n%s\n%s", first, second)
	}
}

func TestRenderInitialValuesOverrideDefaults(t *testing.T) {
	home := addressRecord()
	record := schema.NewRecord("User",
		schema.Field{Name: "name", Type: schema.String, Default: "anon"},
		schema.Field{Name: "home", Type: home},
	)

	html, err := newRenderer(t).RenderForm(record, "/users", map[string]any{
		"name":      "Ada",
		"home.city": "London",
	})
	if err != nil {
		t.Fatalf("RenderForm() error: %v", err)
	}
	for _, fragment := range []string{
		"<input type='text' id='name' name='name' value='Ada'></input>",
		"<input type='text' id='home.city' name='home.city' value='London'></input>",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRenderConstrainedNumeric(t *testing.T) {
	record := schema.NewRecord("Item",
		schema.Field{Name: "qty", Type: schema.ConstrainedInt(schema.Float64(10), schema.Float64(99))},
	)

	core, logs := observer.New(zapcore.WarnLevel)
	got := renderFields(t, newRenderer(t, vanilla.WithLogger(zap.New(core))), record)
	if got != "<label for='qty'>qty</label><input type='number' id='qty' name='qty'></input>" {
		t.Fatalf("unexpected default output: %s", got)
	}
	if logs.FilterMessage("constrained value rendered without range bounds").Len() != 1 {
		t.Fatalf("expected constrained limitation to be logged")
	}

	bounded := renderFields(t, newRenderer(t, vanilla.WithConstrainedBounds(true)), record)
	if bounded != "<label for='qty'>qty</label><input type='number' id='qty' name='qty' min='10' max='99'></input>" {
		t.Fatalf("unexpected bounded output: %s", bounded)
	}
}

func TestRenderAliasAndPlaceholder(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "dob", Type: schema.Datetime, Alias: "Date of birth", Description: "when you were born"},
		schema.Field{Name: "active", Type: schema.Bool, Default: true},
	)

	want := "<label for='dob'>Date of birth</label>" +
		"<input type='datetime-local' id='dob' name='dob' placeholder='when you were born'></input>" +
		"<label for='active'>active</label>" +
		"<input type='checkbox' id='active' name='active' value='true'></input>"
	if got := renderFields(t, newRenderer(t), record); got != want {
		t.Fatalf("unexpected output:\n got: %s\nwant: %s", got, want)
	}
}

func TestRenderRejectsCycles(t *testing.T) {
	node := schema.NewRecord("Node", schema.Field{Name: "label", Type: schema.String})
	node.MustAdd(schema.Field{Name: "next", Type: node})

	_, err := newRenderer(t).RenderForm(node, "/nodes", nil)
	if !errors.Is(err, model.ErrCyclicSchema) {
		t.Fatalf("expected ErrCyclicSchema, got %v", err)
	}
}

func TestRenderSurfacesUnclassifiableTypes(t *testing.T) {
	record := schema.NewRecord("Blob", schema.Field{Name: "payload", Type: schema.Opaque{TypeName: "bytes"}})

	_, err := newRenderer(t).RenderForm(record, "/blobs", nil)
	var typed *model.UnclassifiableTypeError
	if !errors.As(err, &typed) || typed.Field != "payload" {
		t.Fatalf("expected UnclassifiableTypeError for payload, got %v", err)
	}
}

func TestRenderUnhandledCategory(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithRegistry(components.New()))
	record := schema.NewRecord("R", schema.Field{Name: "coords", Type: schema.TupleOf(schema.Int)})

	_, err := renderer.RenderForm(record, "/r", nil)
	if !errors.Is(err, render.ErrUnhandledCategory) {
		t.Fatalf("expected ErrUnhandledCategory, got %v", err)
	}
}

func TestRenderImplementsRendererContract(t *testing.T) {
	record := schema.NewRecord("User", schema.Field{Name: "name", Type: schema.String})
	renderer := newRenderer(t)

	out, err := renderer.Render(context.Background(), record, render.RenderOptions{
		URI:      "/users",
		FormName: "signup",
		Hidden:   map[string]string{"_csrf": "token"},
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	html := string(out)
	if !strings.HasPrefix(html, "<form onsubmit='return submit_form(event)' name='signup'>") {
		t.Fatalf("unexpected form header: %s", html)
	}
	if !strings.Contains(html, "<input type='hidden' id='_uri' name='_uri' value='/users'></input><input type='hidden' id='_csrf' name='_csrf' value='token'></input></form>") {
		t.Fatalf("expected hidden controls, got: %s", html)
	}
	if renderer.ContentType() != "text/html; charset=utf-8" || renderer.Name() != "vanilla" {
		t.Fatalf("unexpected renderer metadata")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, record, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestComposeReportsScripts(t *testing.T) {
	record := schema.NewRecord("User",
		schema.Field{Name: "name", Type: schema.String},
		schema.Field{Name: "offices", Type: schema.MapOf(schema.String, addressRecord())},
	)

	result, err := newRenderer(t).Compose(context.Background(), record, render.RenderOptions{URI: "/users"})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	var names []string
	for _, script := range result.Scripts {
		names = append(names, script.Name)
	}
	if strings.Join(names, ",") != "common.js,submission.js,append.js,collapsible.js" {
		t.Fatalf("unexpected scripts: %v", names)
	}
}
