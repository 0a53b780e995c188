package output

import (
	"encoding/json"
	"reflect"
	"strings"
)

// DeterministicEncodeIndented marshals v as indented JSON after
// normalizing it: struct fields become a map keyed by their JSON tag
// (or field name) so key order is always alphabetical rather than
// struct-declaration order, and a nil slice encodes as [] instead of
// null. Both guarantee the same report serializes to the same bytes
// regardless of how it was built.
func DeterministicEncodeIndented(v interface{}, indent string) ([]byte, error) {
	return json.MarshalIndent(normalizeValue(v), "", indent)
}

func normalizeValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Slice:
		return normalizeSlice(val)
	case reflect.Struct:
		return normalizeStruct(val)
	default:
		return v
	}
}

func normalizeSlice(val reflect.Value) interface{} {
	if val.IsNil() {
		return []interface{}{}
	}
	result := make([]interface{}, val.Len())
	for i := range result {
		result[i] = normalizeValue(val.Index(i).Interface())
	}
	return result
}

func normalizeStruct(val reflect.Value) map[string]interface{} {
	typ := val.Type()
	result := make(map[string]interface{}, val.NumField())
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag := field.Tag.Get("json"); tag == "-" {
			continue
		}
		result[jsonFieldName(field)] = normalizeValue(val.Field(i).Interface())
	}
	return result
}

func jsonFieldName(field reflect.StructField) string {
	tag, ok := field.Tag.Lookup("json")
	if !ok || tag == "" {
		return field.Name
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return field.Name
}
