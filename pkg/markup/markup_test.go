package markup_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-schemaform/pkg/markup"
)

func TestMakeTag(t *testing.T) {
	cases := []struct {
		name    string
		tag     string
		attrs   markup.Attrs
		content string
		want    string
	}{
		{
			name: "no attributes",
			tag:  "section",
			want: "<section></section>",
		},
		{
			name:    "valued attributes keep order",
			tag:     "label",
			attrs:   markup.Attrs{markup.A("for", "name")},
			content: "name",
			want:    "<label for='name'>name</label>",
		},
		{
			name: "bare attributes follow valued ones",
			tag:  "input",
			attrs: markup.Attrs{
				markup.A("type", "text"),
				markup.A("required", ""),
				markup.A("id", "name"),
			},
			want: "<input type='text' id='name' required></input>",
		},
		{
			name: "single character values are dropped",
			tag:  "input",
			attrs: markup.Attrs{
				markup.A("type", "number"),
				markup.A("value", 7),
			},
			want: "<input type='number'></input>",
		},
		{
			name:  "values are escaped",
			tag:   "input",
			attrs: markup.Attrs{markup.A("placeholder", "it's <here>")},
			want:  "<input placeholder='it&#39;s &lt;here&gt;'></input>",
		},
		{
			name:  "numbers and times stringify",
			tag:   "input",
			attrs: markup.Attrs{markup.A("value", 42), markup.A("min", 1.5), markup.A("when", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC))},
			want:  "<input value='42' min='1.5' when='2024-05-01T10:30:00'></input>",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := markup.MakeTag(tc.tag, tc.attrs, tc.content)
			if err != nil {
				t.Fatalf("MakeTag() error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("MakeTag() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMakeTagRejectsNonScalarValues(t *testing.T) {
	_, err := markup.MakeTag("input", markup.Attrs{markup.A("value", []string{"a", "b"})}, "")
	if !errors.Is(err, markup.ErrAttributeConstruction) {
		t.Fatalf("expected ErrAttributeConstruction, got %v", err)
	}
	var typed *markup.AttributeError
	if !errors.As(err, &typed) || typed.Key != "value" || typed.Tag != "input" {
		t.Fatalf("unexpected error payload: %#v", err)
	}
}

func TestStringify(t *testing.T) {
	cases := map[string]any{
		"true":  true,
		"12":    json.Number("12"),
		"-3":    int64(-3),
		"0.25":  float32(0.25),
		"plain": "plain",
	}
	for want, value := range cases {
		got, err := markup.Stringify(value)
		if err != nil {
			t.Fatalf("Stringify(%v) error: %v", value, err)
		}
		if got != want {
			t.Fatalf("Stringify(%v) = %q, want %q", value, got, want)
		}
	}
	if _, err := markup.Stringify(nil); err == nil {
		t.Fatalf("expected nil to be rejected")
	}
}

func TestAttrsSet(t *testing.T) {
	attrs := markup.Attrs{markup.A("type", "text"), markup.A("id", "a")}
	updated := attrs.Set("type", "number").Set("value", "42")

	if got, _ := attrs.Get("type"); got != "text" {
		t.Fatalf("Set must not mutate the receiver, got %v", got)
	}
	html, err := markup.MakeTag("input", updated, "")
	if err != nil {
		t.Fatalf("MakeTag() error: %v", err)
	}
	if html != "<input type='number' id='a' value='42'></input>" {
		t.Fatalf("unexpected tag: %s", html)
	}
}

func TestText(t *testing.T) {
	if got := markup.Text("<b>Home</b> & away"); got != "Home &amp; away" {
		t.Fatalf("Text() = %q", got)
	}
}
