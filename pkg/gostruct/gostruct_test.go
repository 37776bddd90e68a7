package gostruct

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

type Address struct {
	Street string `json:"street"`
	Zip    int    `json:"zip,omitempty"`
}

type Account struct {
	Email    string            `json:"email" jsonschema:"title=E-mail"`
	Plan     string            `json:"plan" jsonschema:"enum=free,enum=pro"`
	Age      int               `json:"age,omitempty" jsonschema:"minimum=18,maximum=120"`
	Joined   time.Time         `json:"joined,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Home     Address           `json:"home"`
	Token    string            `json:"token,omitempty" jsonschema_extras:"x-no-html=true"`
}

type Chain struct {
	Value string `json:"value"`
	Next  *Chain `json:"next,omitempty"`
}

func TestRecordFromStruct(t *testing.T) {
	record, err := Record(&Account{})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	var names []string
	categories := map[string]model.Category{}
	for _, field := range record.Fields() {
		names = append(names, field.Name)
		category, err := model.Classify(field.Type)
		if err != nil {
			t.Fatalf("classify %s: %v", field.Name, err)
		}
		categories[field.Name] = category
	}

	if diff := cmp.Diff([]string{"email", "plan", "age", "joined", "tags", "metadata", "home", "token"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]model.Category{
		"email":    model.CategoryPrimitive,
		"plan":     model.CategoryEnumeration,
		"age":      model.CategoryConstrained,
		"joined":   model.CategoryPrimitive,
		"tags":     model.CategoryList,
		"metadata": model.CategoryMap,
		"home":     model.CategoryRecord,
		"token":    model.CategoryPrimitive,
	}
	if diff := cmp.Diff(want, categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	email, _ := record.Field("email")
	if !email.Required || email.Alias != "E-mail" {
		t.Fatalf("unexpected email field: %+v", email)
	}
	joined, _ := record.Field("joined")
	if joined.Type != schema.Datetime || joined.Required {
		t.Fatalf("unexpected joined field: %+v", joined)
	}
	token, _ := record.Field("token")
	if !token.Hidden() {
		t.Fatalf("expected token to be suppressed")
	}
}

func TestRecordFromRecursiveStruct(t *testing.T) {
	record := MustRecord(Chain{})
	next, ok := record.Field("next")
	if !ok {
		t.Fatalf("expected next field")
	}
	if next.Type != schema.Type(record) {
		t.Fatalf("expected self reference to reuse the record")
	}
}

func TestRecordRejectsNonStructs(t *testing.T) {
	if _, err := Record(42); err == nil {
		t.Fatalf("expected error for non-struct")
	}
	if _, err := Record(struct{ A string }{}); err == nil {
		t.Fatalf("expected error for anonymous struct")
	}
}
