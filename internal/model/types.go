package model

import (
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Category is the closed set of structural classifications a field type can
// resolve to. Renderers dispatch on it; display names never drive control
// flow.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPrimitive
	CategoryEnumeration
	CategoryConstrained
	CategoryRecord
	CategoryList
	CategoryMap
	CategoryTuple
	CategoryAlternative
)

var categoryNames = map[Category]string{
	CategoryUnknown:     "unknown",
	CategoryPrimitive:   "primitive",
	CategoryEnumeration: "enumeration",
	CategoryConstrained: "constrained-numeric",
	CategoryRecord:      "record",
	CategoryList:        "list",
	CategoryMap:         "map",
	CategoryTuple:       "tuple",
	CategoryAlternative: "alternative",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Categories lists every renderable category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryPrimitive,
		CategoryEnumeration,
		CategoryConstrained,
		CategoryRecord,
		CategoryList,
		CategoryMap,
		CategoryTuple,
		CategoryAlternative,
	}
}

// Scalar reports whether values of the category are entered through a single
// input control. Enumerations count: they degrade to a text input when they
// appear as list elements.
func (c Category) Scalar() bool {
	switch c {
	case CategoryPrimitive, CategoryEnumeration, CategoryConstrained:
		return true
	default:
		return false
	}
}

// MapSlot reports whether the category can fill a map key or a scalar map
// value. Enumerations are excluded: a map row has no select fallback.
func (c Category) MapSlot() bool {
	return c == CategoryPrimitive || c == CategoryConstrained
}

// InnerInfo is the category-dependent payload of a descriptor. It is one of
// ElemInfo, MapInfo or AlternativeInfo.
type InnerInfo interface {
	innerInfo()
}

// ElemInfo describes one nested type together with its classification.
// Category is CategoryUnknown when the nested type could not be classified;
// renderers degrade such slots to error markers.
type ElemInfo struct {
	Type     schema.Type
	Name     string
	Category Category
	IsEnum   bool
}

// MapInfo carries both halves of a map type.
type MapInfo struct {
	Key   ElemInfo
	Value ElemInfo
}

// AlternativeInfo lists union branches in declaration order.
type AlternativeInfo struct {
	Branches []ElemInfo
}

func (ElemInfo) innerInfo()        {}
func (MapInfo) innerInfo()         {}
func (AlternativeInfo) innerInfo() {}

// Attributes is the immutable set of rendering hints derived from a schema
// field.
type Attributes struct {
	required    bool
	def         any
	hasDefault  bool
	placeholder string
	alias       string
}

// NewAttributes constructs an attribute record. The default is kept only when
// truthy.
func NewAttributes(required bool, def any, placeholder, alias string) Attributes {
	attrs := Attributes{
		required:    required,
		placeholder: placeholder,
		alias:       alias,
	}
	if truthy(def) {
		attrs.def = def
		attrs.hasDefault = true
	}
	return attrs
}

func (a Attributes) Required() bool {
	return a.required
}

func (a Attributes) Default() (any, bool) {
	return a.def, a.hasDefault
}

func (a Attributes) Placeholder() (string, bool) {
	return a.placeholder, a.placeholder != ""
}

func (a Attributes) Alias() string {
	return a.alias
}

// WithDefault returns a copy carrying def as its default.
func (a Attributes) WithDefault(def any) Attributes {
	if !truthy(def) {
		return a.WithoutDefault()
	}
	a.def = def
	a.hasDefault = true
	return a
}

// WithoutDefault returns a copy with the default cleared.
func (a Attributes) WithoutDefault() Attributes {
	a.def = nil
	a.hasDefault = false
	return a
}

// WithoutAlias returns a copy with the alias cleared.
func (a Attributes) WithoutAlias() Attributes {
	a.alias = ""
	return a
}

// Map returns a snapshot keyed by attribute name. The required marker maps to
// an empty string.
func (a Attributes) Map() map[string]any {
	out := map[string]any{"alias": a.alias}
	if a.required {
		out["required"] = ""
	}
	if a.hasDefault {
		out["default"] = a.def
	}
	if a.placeholder != "" {
		out["placeholder"] = a.placeholder
	}
	return out
}

// Descriptor is the immutable working description of one field during a
// render pass.
type Descriptor struct {
	fieldName  string
	parentPath string
	category   Category
	inner      InnerInfo
	outer      schema.Type
	innerType  schema.Type
	attrs      Attributes
}

func (d Descriptor) FieldName() string {
	return d.fieldName
}

// ParentPath returns the dotted path of enclosing fields; empty at top level.
func (d Descriptor) ParentPath() string {
	return d.parentPath
}

// QualifiedName is the element id and the submission name.
func (d Descriptor) QualifiedName() string {
	return JoinPath(d.parentPath, d.fieldName)
}

func (d Descriptor) Category() Category {
	return d.category
}

func (d Descriptor) Inner() InnerInfo {
	return d.inner
}

func (d Descriptor) OuterType() schema.Type {
	return d.outer
}

func (d Descriptor) InnerType() schema.Type {
	return d.innerType
}

func (d Descriptor) Attributes() Attributes {
	return d.attrs
}

// Label returns the alias when present, otherwise the field name.
func (d Descriptor) Label() string {
	if d.attrs.alias != "" {
		return d.attrs.alias
	}
	return d.fieldName
}

// Elem returns the element info of list and tuple descriptors.
func (d Descriptor) Elem() (ElemInfo, bool) {
	info, ok := d.inner.(ElemInfo)
	return info, ok
}

// Map returns the key/value info of map descriptors.
func (d Descriptor) Map() (MapInfo, bool) {
	info, ok := d.inner.(MapInfo)
	return info, ok
}

// Alternatives returns the branch info of alternative descriptors.
func (d Descriptor) Alternatives() (AlternativeInfo, bool) {
	info, ok := d.inner.(AlternativeInfo)
	return info, ok
}

// Record returns the structure behind a record descriptor.
func (d Descriptor) Record() (schema.Structure, bool) {
	if d.category != CategoryRecord {
		return nil, false
	}
	structure, ok := d.outer.(schema.Structure)
	return structure, ok
}
