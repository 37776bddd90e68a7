package model

import (
	"encoding/json"
	"reflect"
	"time"
)

// truthy mirrors the usual scripting notion: nil, false, zero numbers, empty
// strings and empty collections are falsy.
func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case time.Time:
		return !v.IsZero()
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f != 0
		}
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return truthy(rv.Elem().Interface())
	case reflect.Func:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}
