package schemaform_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/submission"
	"github.com/goliatone/go-schemaform/pkg/testsupport"
)

func TestRenderForm(t *testing.T) {
	html, err := schemaform.RenderForm(testsupport.AddressRecord(), "/addresses", map[string]any{"street": "Main"})
	if err != nil {
		t.Fatalf("RenderForm() error: %v", err)
	}
	for _, want := range []string{
		"<form onsubmit='return submit_form(event)' name='myform'>",
		"<input type='hidden' id='_uri' name='_uri' value='/addresses'></input>",
		"value='Main'",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in\n%s", want, html)
		}
	}
}

func TestGenerateFromDocument(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceInline("note.json"), []byte(`{"title":"Note","type":"object","properties":{"body":{"type":"string"}}}`))

	out, err := schemaform.GenerateFromDocument(context.Background(), doc, "", "")
	if err != nil {
		t.Fatalf("GenerateFromDocument() error: %v", err)
	}
	if !strings.Contains(string(out), "name='body'") {
		t.Fatalf("expected body control, got %s", out)
	}
}

func TestParseSubmission(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(`{"street":"Main","zip":12345}`))
	req.Header.Set("Content-Type", "application/json")

	payload, err := schemaform.ParseSubmission(req, testsupport.AddressRecord())
	if err != nil {
		t.Fatalf("ParseSubmission() error: %v", err)
	}
	if diff := cmp.Diff("Main", payload["street"]); diff != "" {
		t.Fatalf("street mismatch (-want +got):\n%s", diff)
	}

	req = httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(`{"zip":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := schemaform.ParseSubmission(req, testsupport.AddressRecord()); !errors.Is(err, submission.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}
