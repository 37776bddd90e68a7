package schema

import (
	"fmt"
	"sync"
)

// Type is a read-only handle on a declared field type. Name returns the
// human-facing display name; capability interfaces below describe structure.
type Type interface {
	Name() string
}

// Enumeration is implemented by types with a closed set of literal members.
type Enumeration interface {
	Type
	Members() []EnumMember
}

// Structure is implemented by record types exposing ordered fields.
type Structure interface {
	Type
	Fields() []Field
}

// Sequence is implemented by homogeneous lists and tuples. Fixed reports true
// for tuples.
type Sequence interface {
	Type
	Elem() Type
	Fixed() bool
}

// Mapping is implemented by key/value map types.
type Mapping interface {
	Type
	Key() Type
	Value() Type
}

// Alternatives is implemented by tagged unions. Branches are returned in
// declaration order.
type Alternatives interface {
	Type
	Branches() []Type
}

// Bounded is the explicit trait for constrained numeric types.
type Bounded interface {
	Type
	Bounds() Bounds
}

// Bounds describes the numeric range of a constrained type. Nil pointers mean
// the side is open.
type Bounds struct {
	Integer      bool
	Minimum      *float64
	Maximum      *float64
	ExclusiveMin bool
	ExclusiveMax bool
}

// PrimitiveKind enumerates the scalar kinds with a direct input mapping.
type PrimitiveKind string

const (
	KindBool     PrimitiveKind = "bool"
	KindInt      PrimitiveKind = "int"
	KindFloat    PrimitiveKind = "float"
	KindString   PrimitiveKind = "string"
	KindDatetime PrimitiveKind = "datetime"
)

// Primitive is a scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

// Name implements Type.
func (p Primitive) Name() string {
	return string(p.Kind)
}

var (
	Bool     Type = Primitive{Kind: KindBool}
	Int      Type = Primitive{Kind: KindInt}
	Float    Type = Primitive{Kind: KindFloat}
	String   Type = Primitive{Kind: KindString}
	Datetime Type = Primitive{Kind: KindDatetime}
)

// EnumMember is one literal member of an enumeration.
type EnumMember struct {
	Name  string
	Value string
}

// Enum is a named enumeration.
type Enum struct {
	TypeName string
	members  []EnumMember
}

// NewEnum builds an enumeration whose member names equal their values.
func NewEnum(name string, values ...string) *Enum {
	members := make([]EnumMember, 0, len(values))
	for _, value := range values {
		members = append(members, EnumMember{Name: value, Value: value})
	}
	return &Enum{TypeName: name, members: members}
}

// NewEnumMembers builds an enumeration from explicit members.
func NewEnumMembers(name string, members ...EnumMember) *Enum {
	return &Enum{TypeName: name, members: append([]EnumMember(nil), members...)}
}

func (e *Enum) Name() string {
	if e.TypeName == "" {
		return "enum"
	}
	return e.TypeName
}

func (e *Enum) Members() []EnumMember {
	return append([]EnumMember(nil), e.members...)
}

// Record is a named structure with fields in declaration order. Records can be
// declared before their fields are attached so schema sources can express
// self references; Seal freezes the field list.
type Record struct {
	TypeName    string
	Description string

	mu     sync.RWMutex
	fields []Field
	index  map[string]int
	sealed bool
}

// NewRecord declares a record with the provided fields.
func NewRecord(name string, fields ...Field) *Record {
	r := &Record{TypeName: name, index: make(map[string]int)}
	for _, field := range fields {
		r.MustAdd(field)
	}
	return r
}

func (r *Record) Name() string {
	return r.TypeName
}

// Add appends a field. Duplicate names and additions after Seal fail.
func (r *Record) Add(field Field) error {
	if field.Name == "" {
		return fmt.Errorf("schema: record %q: field name is required", r.TypeName)
	}
	if field.Type == nil {
		return fmt.Errorf("schema: record %q: field %q has no type", r.TypeName, field.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("schema: record %q is sealed", r.TypeName)
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, exists := r.index[field.Name]; exists {
		return fmt.Errorf("schema: record %q: duplicate field %q", r.TypeName, field.Name)
	}
	r.index[field.Name] = len(r.fields)
	r.fields = append(r.fields, field)
	return nil
}

// MustAdd panics when Add fails.
func (r *Record) MustAdd(field Field) *Record {
	if err := r.Add(field); err != nil {
		panic(err)
	}
	return r
}

// Seal marks the record read-only.
func (r *Record) Seal() *Record {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
	return r
}

// Fields returns a copy of the ordered field list.
func (r *Record) Fields() []Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Field(nil), r.fields...)
}

// Field looks up a field by name.
func (r *Record) Field(name string) (Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.fields[idx], true
}

// List is a homogeneous, variable-length sequence.
type List struct {
	Of Type
}

// ListOf returns a list type for elem.
func ListOf(elem Type) List {
	return List{Of: elem}
}

func (l List) Name() string {
	return "list"
}

func (l List) Elem() Type {
	return l.Of
}

func (l List) Fixed() bool {
	return false
}

func (l List) String() string {
	return fmt.Sprintf("list[%s]", typeName(l.Of))
}

// Tuple is a fixed-size sequence described by its element type.
type Tuple struct {
	Of Type
}

// TupleOf returns a tuple type for elem.
func TupleOf(elem Type) Tuple {
	return Tuple{Of: elem}
}

func (t Tuple) Name() string {
	return "tuple"
}

func (t Tuple) Elem() Type {
	return t.Of
}

func (t Tuple) Fixed() bool {
	return true
}

func (t Tuple) String() string {
	return fmt.Sprintf("tuple[%s]", typeName(t.Of))
}

// Map is a key/value mapping.
type Map struct {
	KeyType   Type
	ValueType Type
}

// MapOf returns a map type.
func MapOf(key, value Type) Map {
	return Map{KeyType: key, ValueType: value}
}

func (m Map) Name() string {
	return "dict"
}

func (m Map) Key() Type {
	return m.KeyType
}

func (m Map) Value() Type {
	return m.ValueType
}

func (m Map) String() string {
	return fmt.Sprintf("dict[%s, %s]", typeName(m.KeyType), typeName(m.ValueType))
}

// Union is a tagged alternative of several types.
type Union struct {
	Options []Type
}

// UnionOf returns a union of the provided branches.
func UnionOf(branches ...Type) Union {
	return Union{Options: append([]Type(nil), branches...)}
}

func (u Union) Name() string {
	return "Union"
}

func (u Union) Branches() []Type {
	return append([]Type(nil), u.Options...)
}

// Constrained is a bounded integer or float.
type Constrained struct {
	Range Bounds
}

// ConstrainedInt returns a bounded integer type.
func ConstrainedInt(minimum, maximum *float64) Constrained {
	return Constrained{Range: Bounds{Integer: true, Minimum: minimum, Maximum: maximum}}
}

// ConstrainedFloat returns a bounded float type.
func ConstrainedFloat(minimum, maximum *float64) Constrained {
	return Constrained{Range: Bounds{Minimum: minimum, Maximum: maximum}}
}

func (c Constrained) Name() string {
	if c.Range.Integer {
		return "ConstrainedIntValue"
	}
	return "ConstrainedFloatValue"
}

func (c Constrained) Bounds() Bounds {
	return c.Range
}

// Opaque stands in for a type a schema source could not describe. It exposes
// no capabilities, so classification rejects it.
type Opaque struct {
	TypeName string
}

func (o Opaque) Name() string {
	if o.TypeName == "" {
		return "any"
	}
	return o.TypeName
}

// Float64 returns a pointer to v, handy for building Bounds.
func Float64(v float64) *float64 {
	return &v
}

func typeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
