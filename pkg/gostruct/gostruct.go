// Package gostruct derives form records from Go struct declarations. Structs
// are reflected to JSON Schema and converted through pkg/jsonschema, so tags
// understood by github.com/invopop/jsonschema drive the resulting fields:
//
//	type Signup struct {
//		Email string  `json:"email" jsonschema:"title=E-mail"`
//		Plan  string  `json:"plan" jsonschema:"enum=free,enum=pro"`
//		Token string  `json:"token,omitempty" jsonschema_extras:"x-no-html=true"`
//	}
package gostruct

import (
	"errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	invopop "github.com/invopop/jsonschema"

	"github.com/goliatone/go-schemaform/pkg/jsonschema"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Reflector returns the reflector configuration used by Catalog. Callers can
// tweak it and pass it to CatalogWith.
func Reflector() *invopop.Reflector {
	return &invopop.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            false,
		ExpandedStruct:            false,
		FieldNameTag:              "json",
	}
}

// Catalog reflects value (a struct or pointer to struct) and returns a catalog
// holding its record and every struct it references.
func Catalog(value any) (*schema.Catalog, error) {
	return CatalogWith(Reflector(), value)
}

// CatalogWith is Catalog with a caller supplied reflector.
func CatalogWith(reflector *invopop.Reflector, value any) (*schema.Catalog, error) {
	if reflector == nil {
		return nil, errors.New("gostruct: reflector is nil")
	}
	if _, err := structType(value); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(reflector.Reflect(value))
	if err != nil {
		return nil, fmt.Errorf("gostruct: encode schema: %w", err)
	}
	root, err := jsonschema.Parse(raw)
	if err != nil {
		return nil, err
	}
	return jsonschema.Convert(root, jsonschema.DefaultRootName)
}

// Record reflects value and returns the record named after its type.
func Record(value any) (*schema.Record, error) {
	t, err := structType(value)
	if err != nil {
		return nil, err
	}
	catalog, err := Catalog(value)
	if err != nil {
		return nil, err
	}
	record, ok := catalog.Record(t.Name())
	if !ok {
		return nil, fmt.Errorf("gostruct: record %q missing from reflected catalog", t.Name())
	}
	return record, nil
}

// MustRecord panics when Record fails.
func MustRecord(value any) *schema.Record {
	record, err := Record(value)
	if err != nil {
		panic(err)
	}
	return record
}

func structType(value any) (reflect.Type, error) {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("gostruct: expected a struct, got %T", value)
	}
	if t.Name() == "" {
		return nil, errors.New("gostruct: anonymous structs have no record name")
	}
	return t, nil
}
