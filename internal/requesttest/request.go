// Package requesttest provides a map-backed request for exercising cache policies in tests.
package requesttest

import (
	"reflect"
)

// MapRequest is a schema-described request whose values live in a map
type MapRequest struct {
	fields []string
	values map[string]any
}

// NewMapRequest creates a request declaring fields and carrying values.
// Values for undeclared fields are ignored.
func NewMapRequest(fields []string, values map[string]any) *MapRequest {
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f] = struct{}{}
	}

	carried := make(map[string]any, len(values))
	for k, v := range values {
		if _, ok := declared[k]; ok {
			carried[k] = v
		}
	}

	return &MapRequest{
		fields: append([]string(nil), fields...),
		values: carried,
	}
}

// DeclaredFields returns the request schema
func (r *MapRequest) DeclaredFields() []string {
	return append([]string(nil), r.fields...)
}

// HasField reports whether a value was supplied for name
func (r *MapRequest) HasField(name string) bool {
	_, ok := r.values[name]
	return ok
}

// HasAndPresent reports whether name was supplied with a non-empty value
func (r *MapRequest) HasAndPresent(name string) bool {
	v, ok := r.values[name]
	return ok && !IsEmptyValue(v)
}

// ValueOf returns the supplied value for name, or nil
func (r *MapRequest) ValueOf(name string) any {
	return r.values[name]
}

// IsEmptyValue reports whether v is nil or an empty string, slice, map or array.
// Zero numbers and false are considered present.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmptyValue(rv.Elem().Interface())
	}
	return false
}
