package patch

import (
	"reflect"
	"strings"
)

// FieldPointers lists the JSON pointers of the exported top-level fields of
// T, in declaration order. T must be a struct or a pointer to one.
func FieldPointers[T any]() []string {
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return []string{}
	}

	paths := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := jsonFieldName(field)
		if name == "-" {
			continue
		}
		paths = append(paths, Pointer(name))
	}
	return paths
}

func jsonFieldName(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return field.Name
	}
	if jsonTag == "-" {
		return "-"
	}
	name, _, _ := strings.Cut(jsonTag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
