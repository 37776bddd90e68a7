package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/model"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error { return nil }

	if err := reg.Register(model.CategoryList, Descriptor{Renderer: renderer, Scripts: []Script{{Name: "a.js"}}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor(model.CategoryList)
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Scripts[0].Name = "mutated.js"

	original, _ := reg.Descriptor(model.CategoryList)
	if len(original.Scripts) != 1 || original.Scripts[0].Name != "a.js" {
		t.Fatalf("registry descriptor mutated: %#v", original.Scripts)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(model.CategoryUnknown, Descriptor{Renderer: primitiveRenderer}); err == nil {
		t.Fatalf("expected unknown category to be rejected")
	}
	if err := reg.Register(model.CategoryMap, Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer to be rejected")
	}
}

func TestRegistryScriptsDeduplicates(t *testing.T) {
	reg := NewDefaultRegistry()

	scripts := reg.Scripts([]model.Category{model.CategoryPrimitive, model.CategoryList, model.CategoryMap, model.CategoryTuple})
	var names []string
	for _, script := range scripts {
		names = append(names, script.Name)
	}

	want := []string{ScriptCommon, ScriptAppend, ScriptCollapsible}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistryCoversEveryCategory(t *testing.T) {
	reg := NewDefaultRegistry()
	if diff := cmp.Diff(model.Categories(), reg.Categories()); diff != "" {
		t.Fatalf("category table mismatch (-want +got):\n%s", diff)
	}

	clone := reg.Clone()
	clone.MustRegister(model.CategoryEnumeration, RadioEnum())
	original, _ := reg.Descriptor(model.CategoryEnumeration)
	overridden, _ := clone.Descriptor(model.CategoryEnumeration)
	if original.Renderer == nil || overridden.Renderer == nil {
		t.Fatalf("expected enumeration renderers to be registered")
	}
}
