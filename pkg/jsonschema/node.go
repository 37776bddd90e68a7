package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties keeps object members in document order.
type Properties = orderedmap.OrderedMap[string, *Node]

// Node is the subset of a JSON Schema object the adapter understands.
// Polymorphic keywords are kept raw and interpreted on demand.
type Node struct {
	Schema      string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`

	Type    json.RawMessage `json:"type,omitempty"`
	Enum    []any           `json:"enum,omitempty"`
	Const   any             `json:"const,omitempty"`
	Default any             `json:"default,omitempty"`

	Minimum          *float64        `json:"minimum,omitempty"`
	Maximum          *float64        `json:"maximum,omitempty"`
	ExclusiveMinimum json.RawMessage `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum json.RawMessage `json:"exclusiveMaximum,omitempty"`

	Properties           *Properties     `json:"properties,omitempty"`
	Required             []string        `json:"required,omitempty"`
	AdditionalProperties json.RawMessage `json:"additionalProperties,omitempty"`

	Items       json.RawMessage `json:"items,omitempty"`
	PrefixItems []*Node         `json:"prefixItems,omitempty"`

	OneOf []*Node `json:"oneOf,omitempty"`
	AnyOf []*Node `json:"anyOf,omitempty"`

	Defs        *Properties `json:"$defs,omitempty"`
	Definitions *Properties `json:"definitions,omitempty"`

	NoHTML    Flag       `json:"x-no-html,omitempty"`
	Extension *Extension `json:"x-formgen,omitempty"`

	items      *Node
	tupleItems []*Node
	additional *Node
}

// Extension carries the x-formgen vendor keyword.
type Extension struct {
	NoHTML Flag   `json:"no_html,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Parse decodes a JSON or YAML schema document.
func Parse(raw []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("jsonschema: empty document")
	}
	if trimmed[0] != '{' {
		converted, err := yamlToJSON(trimmed)
		if err != nil {
			return nil, err
		}
		trimmed = converted
	}

	var node Node
	if err := json.Unmarshal(trimmed, &node); err != nil {
		return nil, fmt.Errorf("jsonschema: decode: %w", err)
	}
	if err := node.expand(); err != nil {
		return nil, err
	}
	return &node, nil
}

// expand decodes the raw sub-schemas once so every nested Node has a stable
// identity for memoization.
func (n *Node) expand() error {
	if n == nil {
		return nil
	}
	if isObject(n.Items) {
		n.items = &Node{}
		if err := json.Unmarshal(n.Items, n.items); err != nil {
			return fmt.Errorf("jsonschema: decode items: %w", err)
		}
	} else if isArray(n.Items) {
		if err := json.Unmarshal(n.Items, &n.tupleItems); err != nil {
			return fmt.Errorf("jsonschema: decode items: %w", err)
		}
	}
	if isObject(n.AdditionalProperties) {
		n.additional = &Node{}
		if err := json.Unmarshal(n.AdditionalProperties, n.additional); err != nil {
			return fmt.Errorf("jsonschema: decode additionalProperties: %w", err)
		}
	}

	children := make([]*Node, 0)
	children = append(children, n.items, n.additional)
	children = append(children, n.tupleItems...)
	children = append(children, n.PrefixItems...)
	children = append(children, n.OneOf...)
	children = append(children, n.AnyOf...)
	for _, props := range []*Properties{n.Properties, n.Defs, n.Definitions} {
		if props == nil {
			continue
		}
		for pair := props.Oldest(); pair != nil; pair = pair.Next() {
			children = append(children, pair.Value)
		}
	}
	for _, child := range children {
		if err := child.expand(); err != nil {
			return err
		}
	}
	return nil
}

// Types returns the declared type keyword as a list.
func (n *Node) Types() ([]string, error) {
	raw := bytes.TrimSpace(n.Type)
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("jsonschema: decode type: %w", err)
		}
		return list, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("jsonschema: decode type: %w", err)
	}
	return []string{single}, nil
}

// Hidden reports whether a vendor keyword suppresses the property.
func (n *Node) Hidden() bool {
	return bool(n.NoHTML) || (n.Extension != nil && bool(n.Extension.NoHTML))
}

// Flag is a boolean keyword that also accepts the string spellings emitted by
// struct tag based generators ("true").
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if trimmed == "" || trimmed == "null" {
		*f = false
		return nil
	}
	value, err := strconv.ParseBool(trimmed)
	if err != nil {
		return fmt.Errorf("jsonschema: invalid flag %s", data)
	}
	*f = Flag(value)
	return nil
}

// AllowsAdditional reports whether additionalProperties admits arbitrary keys.
func (n *Node) AllowsAdditional() bool {
	if n.additional != nil {
		return true
	}
	return bytes.Equal(bytes.TrimSpace(n.AdditionalProperties), []byte("true"))
}

// exclusiveBound interprets both the numeric (2019+) and boolean (draft-04)
// spellings of exclusiveMinimum/exclusiveMaximum.
func exclusiveBound(raw json.RawMessage, inclusive *float64) (*float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return inclusive, false
	case bytes.Equal(trimmed, []byte("true")):
		return inclusive, inclusive != nil
	case bytes.Equal(trimmed, []byte("false")):
		return inclusive, false
	}
	value, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return inclusive, false
	}
	return &value, true
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
