package schema_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func TestCatalogKeepsRegistrationOrder(t *testing.T) {
	catalog := schema.NewCatalog()
	person := schema.NewRecord("Person", schema.Field{Name: "nick", Type: schema.String})
	address := schema.NewRecord("Address", schema.Field{Name: "street", Type: schema.String})

	if err := catalog.Add("Person", person); err != nil {
		t.Fatalf("add person: %v", err)
	}
	if err := catalog.Add("Address", address); err != nil {
		t.Fatalf("add address: %v", err)
	}
	if err := catalog.Add("Person", person); err != nil {
		t.Fatalf("re-adding the same record should be a no-op: %v", err)
	}

	if diff := cmp.Diff([]string{"Person", "Address"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Address", "Person"}, catalog.SortedNames()); diff != "" {
		t.Fatalf("sorted names mismatch (-want +got):\n%s", diff)
	}
	if catalog.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", catalog.Len())
	}
	if got, ok := catalog.Record("Address"); !ok || got != address {
		t.Fatalf("expected address record, got %v %v", got, ok)
	}
	if _, ok := catalog.Record("Missing"); ok {
		t.Fatalf("expected missing record lookup to fail")
	}
}

func TestCatalogRejectsConflicts(t *testing.T) {
	catalog := schema.NewCatalog()
	if err := catalog.Add("", schema.NewRecord("X")); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := catalog.Add("X", nil); err == nil {
		t.Fatalf("expected error for nil record")
	}
	if err := catalog.Add("X", schema.NewRecord("X")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := catalog.Add("X", schema.NewRecord("X")); err == nil {
		t.Fatalf("expected error for a different record under an existing name")
	}

	var nilCatalog *schema.Catalog
	if nilCatalog.Len() != 0 || nilCatalog.Names() != nil {
		t.Fatalf("expected nil catalog to be empty")
	}
}

func TestRecordFields(t *testing.T) {
	record := schema.NewRecord("Person", schema.Field{Name: "nick", Type: schema.String})
	if err := record.Add(schema.Field{Name: "nick", Type: schema.Int}); err == nil {
		t.Fatalf("expected duplicate field error")
	}
	if err := record.Add(schema.Field{Name: "age"}); err == nil {
		t.Fatalf("expected missing type error")
	}
	record.MustAdd(schema.Field{Name: "age", Type: schema.Int})
	record.Seal()
	if err := record.Add(schema.Field{Name: "late", Type: schema.String}); err == nil {
		t.Fatalf("expected sealed record to reject fields")
	}

	names := make([]string, 0)
	for _, field := range record.Fields() {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"nick", "age"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if field, ok := record.Field("age"); !ok || field.Type != schema.Int {
		t.Fatalf("unexpected age field %+v", field)
	}
}

func TestFieldHiddenAndLabel(t *testing.T) {
	plain := schema.Field{Name: "nick", Type: schema.String}
	if plain.Hidden() {
		t.Fatalf("expected plain field to be visible")
	}
	if plain.Label() != "nick" {
		t.Fatalf("expected name as label, got %q", plain.Label())
	}

	hidden := schema.Field{Name: "secret", Type: schema.String, Alias: " Secret ", Extensions: map[string]any{schema.ExtensionNoHTML: false}}
	if !hidden.Hidden() {
		t.Fatalf("expected no_html presence to hide the field regardless of value")
	}
	if hidden.Label() != "Secret" {
		t.Fatalf("expected alias as label, got %q", hidden.Label())
	}
	if retyped := hidden.WithType(schema.Int); retyped.Type != schema.Int || hidden.Type != schema.String {
		t.Fatalf("expected WithType to return a copy")
	}
}

func TestTypeNames(t *testing.T) {
	cases := map[string]schema.Type{
		"list":                  schema.ListOf(schema.String),
		"tuple":                 schema.TupleOf(schema.Int),
		"dict":                  schema.MapOf(schema.String, schema.Int),
		"Union":                 schema.UnionOf(schema.String, schema.Int),
		"ConstrainedIntValue":   schema.ConstrainedInt(schema.Float64(1), nil),
		"ConstrainedFloatValue": schema.ConstrainedFloat(nil, schema.Float64(2.5)),
		"any":                   schema.Opaque{},
	}
	for want, typ := range cases {
		if typ.Name() != want {
			t.Errorf("expected %q, got %q", want, typ.Name())
		}
	}
	if got := schema.MapOf(schema.String, schema.ListOf(schema.Int)).String(); got != "dict[string, list]" {
		t.Fatalf("unexpected map string %q", got)
	}
}

func TestDocument(t *testing.T) {
	if _, err := schema.NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := schema.NewDocument(schema.SourceInline("a.json"), []byte("  \n")); err == nil {
		t.Fatalf("expected error for blank payload")
	}

	raw := []byte(` {"title": "Person"}`)
	doc := schema.MustNewDocument(schema.SourceInline("Person.JSON"), raw)
	raw[1] = 'x'

	if doc.Raw()[1] != '{' {
		t.Fatalf("expected document to own a copy of the payload")
	}
	if !doc.LooksLikeJSON() {
		t.Fatalf("expected JSON detection")
	}
	if doc.Location() != "Person.JSON" || doc.Ext() != ".json" {
		t.Fatalf("unexpected location %q ext %q", doc.Location(), doc.Ext())
	}
}

func TestSources(t *testing.T) {
	file := schema.SourceFromFile("schemas/../schemas/user.cue")
	if file.Kind() != schema.SourceKindFile || file.Location() != "schemas/user.cue" {
		t.Fatalf("unexpected file source %s %s", file.Kind(), file.Location())
	}
	if fsSrc := schema.SourceFromFS("a/b.yaml"); fsSrc.Kind() != schema.SourceKindFS || schema.Ext(fsSrc) != ".yaml" {
		t.Fatalf("unexpected fs source %s", fsSrc.Location())
	}

	remote := schema.SourceFromURL("https://example.com/schemas/user.json?rev=2")
	if remote.Kind() != schema.SourceKindURL || schema.Ext(remote) != ".json" {
		t.Fatalf("unexpected url source ext %q", schema.Ext(remote))
	}
	if schema.Ext(nil) != "" {
		t.Fatalf("expected empty ext for nil source")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	schema.SourceFromURL("not a url")
}

func TestLoaderOptions(t *testing.T) {
	payload := []byte("{}")
	opts := schema.NewLoaderOptions(
		schema.WithHTTPFallback(3*time.Second),
		schema.WithInline("a.json", payload),
		nil,
	)
	payload[0] = 'x'

	if !opts.AllowHTTPFallback || opts.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected http options %+v", opts)
	}
	if string(opts.Inline["a.json"]) != "{}" {
		t.Fatalf("expected inline payload copy, got %q", opts.Inline["a.json"])
	}
}
