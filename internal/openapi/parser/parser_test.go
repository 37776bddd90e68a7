package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/model"
	pkgopenapi "github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const petstore = `{
  "openapi": "3.0.0",
  "info": { "title": "Pets", "version": "1.0.0" },
  "paths": {
    "/pets": {
      "post": {
        "operationId": "createPet",
        "summary": "Create a pet",
        "requestBody": {
          "content": {
            "application/json": { "schema": { "$ref": "#/components/schemas/Pet" } }
          }
        },
        "responses": { "201": { "description": "created" } }
      }
    },
    "/owners": {
      "put": {
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": { "type": "string", "title": "Owner name" },
                  "visits": { "type": "integer", "minimum": 0, "maximum": 10, "exclusiveMaximum": true }
                }
              }
            }
          }
        },
        "responses": { "200": { "description": "ok" } }
      },
      "get": { "responses": { "200": { "description": "ok" } } }
    }
  },
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "tag": { "type": "array", "items": { "type": "string" } },
          "name": { "type": "string" },
          "kind": { "type": "string", "enum": ["cat", "dog"], "default": "cat" },
          "born": { "type": "string", "format": "date-time" },
          "owner": { "$ref": "#/components/schemas/Owner" },
          "notes": { "type": "object", "additionalProperties": { "type": "string" } },
          "secret": { "type": "string", "x-no-html": true },
          "token": { "type": "string", "x-formgen": { "no_html": true } }
        }
      },
      "Owner": {
        "type": "object",
        "properties": {
          "pet": { "$ref": "#/components/schemas/Pet" }
        }
      },
      "Color": { "type": "string", "enum": ["red"] }
    }
  }
}`

func parse(t *testing.T, raw string) *schema.Catalog {
	t.Helper()
	catalog, err := New(pkgopenapi.NewParserOptions()).Catalog(context.Background(), []byte(raw))
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	return catalog
}

func TestCatalogCollectsComponentsAndOperations(t *testing.T) {
	catalog := parse(t, petstore)

	want := []string{"Owner", "Pet", "put:/owners", "createPet"}
	if diff := cmp.Diff(want, catalog.Names()); diff != "" {
		t.Fatalf("catalog names mismatch (-want +got):\n%s", diff)
	}

	pet, _ := catalog.Record("Pet")
	created, _ := catalog.Record("createPet")
	if pet != created {
		t.Fatalf("expected operation body $ref to reuse the component record")
	}

	owners, _ := catalog.Record("put:/owners")
	if owners.Name() != "PutOwners" {
		t.Fatalf("unexpected inline body record name %q", owners.Name())
	}
}

func TestCatalogSortsPropertiesAndMapsTypes(t *testing.T) {
	pet, _ := parse(t, petstore).Record("Pet")

	var names []string
	categories := map[string]model.Category{}
	for _, field := range pet.Fields() {
		names = append(names, field.Name)
		category, err := model.Classify(field.Type)
		if err != nil {
			t.Fatalf("classify %s: %v", field.Name, err)
		}
		categories[field.Name] = category
	}

	if diff := cmp.Diff([]string{"born", "kind", "name", "notes", "owner", "secret", "tag", "token"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	want := map[string]model.Category{
		"born":   model.CategoryPrimitive,
		"kind":   model.CategoryEnumeration,
		"name":   model.CategoryPrimitive,
		"notes":  model.CategoryMap,
		"owner":  model.CategoryRecord,
		"secret": model.CategoryPrimitive,
		"tag":    model.CategoryList,
		"token":  model.CategoryPrimitive,
	}
	if diff := cmp.Diff(want, categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	kind, _ := pet.Field("kind")
	if kind.Default != "cat" {
		t.Fatalf("unexpected default %v", kind.Default)
	}
	name, _ := pet.Field("name")
	if !name.Required {
		t.Fatalf("expected name to be required")
	}
	for _, hiddenName := range []string{"secret", "token"} {
		field, _ := pet.Field(hiddenName)
		if !field.Hidden() {
			t.Fatalf("expected %s to be suppressed", hiddenName)
		}
	}
}

func TestCatalogResolvesRecursiveReferences(t *testing.T) {
	catalog := parse(t, petstore)
	pet, _ := catalog.Record("Pet")
	owner, _ := catalog.Record("Owner")

	ownerField, _ := pet.Field("owner")
	if ownerField.Type != schema.Type(owner) {
		t.Fatalf("expected owner field to reference the Owner record")
	}
	petField, _ := owner.Field("pet")
	if petField.Type != schema.Type(pet) {
		t.Fatalf("expected the cycle to close on the Pet record")
	}
}

func TestCatalogConstrainedBounds(t *testing.T) {
	owners, _ := parse(t, petstore).Record("put:/owners")

	visits, _ := owners.Field("visits")
	bounds := visits.Type.(schema.Bounded).Bounds()
	if !bounds.Integer || *bounds.Minimum != 0 || *bounds.Maximum != 10 || bounds.ExclusiveMin || !bounds.ExclusiveMax {
		t.Fatalf("unexpected bounds: %+v", bounds)
	}
	name, _ := owners.Field("name")
	if name.Alias != "Owner name" || !name.Required {
		t.Fatalf("unexpected name field: %+v", name)
	}
}

func TestCatalogRejectsEmptyDocuments(t *testing.T) {
	parser := New(pkgopenapi.NewParserOptions())
	if _, err := parser.Catalog(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload to fail")
	}

	const bare = `{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`
	_, err := parser.Catalog(context.Background(), []byte(bare))
	if err == nil || !strings.Contains(err.Error(), "no records") {
		t.Fatalf("expected no records error, got %v", err)
	}

	strict := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(false)))
	if _, err := strict.Catalog(context.Background(), []byte(bare)); err == nil || !strings.Contains(err.Error(), "paths") {
		t.Fatalf("expected paths error, got %v", err)
	}
}
