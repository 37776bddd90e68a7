// Package markup holds the tag construction helpers shared by the HTML
// renderers.
package markup

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// ErrAttributeConstruction is wrapped by AttributeError.
var ErrAttributeConstruction = errors.New("markup: attribute value cannot be stringified")

// AttributeError reports an attribute whose value has no string form.
type AttributeError struct {
	Tag   string
	Key   string
	Value any
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("markup: <%s> attribute %q: cannot stringify %T", e.Tag, e.Key, e.Value)
}

func (e *AttributeError) Unwrap() error {
	return ErrAttributeConstruction
}

// Attr is a single tag attribute.
type Attr struct {
	Key   string
	Value any
}

// Attrs is an ordered attribute list. Later entries replace earlier ones
// with the same key in place.
type Attrs []Attr

// A returns an Attr.
func A(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Set returns a copy of attrs with key set to value, keeping the position of
// an existing entry.
func (attrs Attrs) Set(key string, value any) Attrs {
	out := append(Attrs(nil), attrs...)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Key: key, Value: value})
}

// Get returns the value stored under key.
func (attrs Attrs) Get(key string) (any, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// MakeTag builds an open/close tag pair. Attribute values longer than one
// character render as key='value'; empty values render as bare marker
// attributes after the valued ones; single-character values are dropped.
// Content is inserted verbatim.
func MakeTag(name string, attrs Attrs, content string) (string, error) {
	var valued, bare []string
	for _, attr := range attrs {
		value, err := Stringify(attr.Value)
		if err != nil {
			return "", &AttributeError{Tag: name, Key: attr.Key, Value: attr.Value}
		}
		switch {
		case len(value) > 1:
			valued = append(valued, attr.Key+"='"+html.EscapeString(value)+"'")
		case len(value) == 0:
			bare = append(bare, attr.Key)
		}
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	if rendered := append(valued, bare...); len(rendered) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(rendered, " "))
	}
	b.WriteString(">")
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
	return b.String(), nil
}

// Stringify converts a scalar attribute value to its string form.
func Stringify(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case time.Time:
		return v.Format("2006-01-02T15:04:05"), nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrAttributeConstruction, value)
	}
}

var textPolicy = bluemonday.StrictPolicy()

// Text sanitises human-facing text (labels, headings, option text). Markup is
// stripped and special characters are escaped.
func Text(s string) string {
	return textPolicy.Sanitize(s)
}
