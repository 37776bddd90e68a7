package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func TestBuildPrimitiveAttributes(t *testing.T) {
	b := New(Options{})
	desc, ok, err := b.Build(schema.Field{
		Name:        "name",
		Type:        schema.String,
		Required:    true,
		Default:     "Ada",
		Description: "Full name",
		Alias:       "Name",
	}, "person")
	if err != nil || !ok {
		t.Fatalf("Build() = ok %v, err %v", ok, err)
	}

	if got := desc.QualifiedName(); got != "person.name" {
		t.Fatalf("QualifiedName() = %q", got)
	}
	if desc.Category() != CategoryPrimitive {
		t.Fatalf("Category() = %s", desc.Category())
	}
	want := map[string]any{
		"alias":       "Name",
		"required":    "",
		"default":     "Ada",
		"placeholder": "Full name",
	}
	if diff := cmp.Diff(want, desc.Attributes().Map()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if desc.Label() != "Name" {
		t.Fatalf("Label() = %q", desc.Label())
	}
}

func TestBuildDropsFalsyDefaults(t *testing.T) {
	b := New(Options{})
	for _, def := range []any{nil, false, 0, "", []string{}, map[string]int{}, json.Number("0.0"), json.Number("0")} {
		desc, _, err := b.Build(schema.Field{Name: "f", Type: schema.Int, Default: def}, "")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if _, ok := desc.Attributes().Default(); ok {
			t.Fatalf("default %#v should have been dropped", def)
		}
	}
}

func TestBuildKeepsNonZeroNumberDefault(t *testing.T) {
	desc, _, err := New(Options{}).Build(schema.Field{Name: "ratio", Type: schema.Float, Default: json.Number("0.5")}, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got, ok := desc.Attributes().Default(); !ok || got != json.Number("0.5") {
		t.Fatalf("Default() = %v, %v", got, ok)
	}
}

func TestBuildValuesOverrideDefault(t *testing.T) {
	b := New(Options{Values: map[string]any{"owner.age": 42}})
	desc, _, err := b.Build(schema.Field{Name: "age", Type: schema.Int, Default: 7}, "owner")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	got, ok := desc.Attributes().Default()
	if !ok || got != 42 {
		t.Fatalf("Default() = %v, %v", got, ok)
	}
}

func TestBuildSuppressedFieldLogsAndSkipsClassification(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := New(Options{Logger: zap.New(core)})

	_, ok, err := b.Build(schema.Field{
		Name:       "secret",
		Type:       schema.Opaque{TypeName: "bytes"},
		Extensions: map[string]any{schema.ExtensionNoHTML: nil},
	}, "")
	if err != nil {
		t.Fatalf("suppressed field must not be classified, got %v", err)
	}
	if ok {
		t.Fatalf("expected suppressed field to produce no descriptor")
	}
	entries := logs.FilterMessage("field hidden by no_html").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["field"]; got != "secret" {
		t.Fatalf("logged field = %v", got)
	}
}

func TestBuildUnclassifiableCarriesQualifiedName(t *testing.T) {
	b := New(Options{})
	_, _, err := b.Build(schema.Field{Name: "blob", Type: schema.Opaque{TypeName: "bytes"}}, "outer")
	var typed *UnclassifiableTypeError
	if !errors.As(err, &typed) {
		t.Fatalf("expected UnclassifiableTypeError, got %v", err)
	}
	if typed.Field != "outer.blob" || typed.TypeName != "bytes" {
		t.Fatalf("unexpected error payload: %+v", typed)
	}
}

func TestBuildContainerInnerInfo(t *testing.T) {
	b := New(Options{})

	list, _, err := b.Build(schema.Field{Name: "tags", Type: schema.ListOf(schema.String)}, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	elem, ok := list.Elem()
	if !ok || elem.Category != CategoryPrimitive || elem.Name != "string" {
		t.Fatalf("unexpected list elem: %+v", elem)
	}

	color := schema.NewEnum("Color", "red")
	dict, _, err := b.Build(schema.Field{Name: "scores", Type: schema.MapOf(schema.String, color)}, "")
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	info, ok := dict.Map()
	if !ok {
		t.Fatalf("expected map info")
	}
	if info.Key.Category != CategoryPrimitive || !info.Value.IsEnum {
		t.Fatalf("unexpected map info: %+v", info)
	}
	if dict.InnerType() != schema.Type(color) {
		t.Fatalf("map inner type should be the value type")
	}

	union, _, err := b.Build(schema.Field{Name: "choice", Type: schema.UnionOf(schema.Int, schema.String)}, "")
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	alts, ok := union.Alternatives()
	if !ok || len(alts.Branches) != 2 || union.InnerType() != schema.Int {
		t.Fatalf("unexpected alternative info: %+v", alts)
	}
}

func TestBuildUnclassifiableInnerDegrades(t *testing.T) {
	b := New(Options{})
	desc, _, err := b.Build(schema.Field{Name: "blobs", Type: schema.ListOf(schema.Opaque{TypeName: "bytes"})}, "")
	if err != nil {
		t.Fatalf("inner failures must not fail the build: %v", err)
	}
	elem, _ := desc.Elem()
	if elem.Category != CategoryUnknown || elem.Name != "bytes" {
		t.Fatalf("unexpected elem: %+v", elem)
	}
}

func TestBuildRejectsIncompleteMapsAndEmptyUnions(t *testing.T) {
	b := New(Options{})
	_, _, err := b.Build(schema.Field{Name: "m", Type: schema.Map{KeyType: schema.String}}, "")
	if !errors.Is(err, ErrIncompleteMap) {
		t.Fatalf("expected ErrIncompleteMap, got %v", err)
	}
	_, _, err = b.Build(schema.Field{Name: "u", Type: schema.UnionOf()}, "")
	if !errors.Is(err, ErrUnclassifiableType) {
		t.Fatalf("expected ErrUnclassifiableType, got %v", err)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"first_name":  "First Name",
		"homeAddress": "Home Address",
		"zip-code":    "Zip Code",
		"line2":       "Line 2",
		"":            "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
	if got := PascalName("home_address"); got != "HomeAddress" {
		t.Fatalf("PascalName() = %q", got)
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct{ parent, child, want string }{
		{"", "a", "a"},
		{"a", "b", "a.b"},
		{"a.b", "", "a.b"},
		{" a ", " b ", "a.b"},
	}
	for _, tc := range cases {
		if got := JoinPath(tc.parent, tc.child); got != tc.want {
			t.Fatalf("JoinPath(%q, %q) = %q, want %q", tc.parent, tc.child, got, tc.want)
		}
	}
	if KeyFieldName("scores") != "_scores-key" || ListFieldName("tags") != "_tags-list" {
		t.Fatalf("unexpected synthesized names")
	}
	if !IsKeySegment("_scores-key") || IsKeySegment("scores") {
		t.Fatalf("IsKeySegment mismatch")
	}
}
