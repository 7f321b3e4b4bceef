package patch

import (
	"encoding/json"
	"strings"
)

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
)

type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Replace builds a replace operation for a top-level field. A nil value is
// encoded as JSON null so that clearing a field survives omitempty.
func Replace(name string, value any) Operation {
	if value == nil {
		value = json.RawMessage("null")
	}
	return Operation{Op: OperationReplace, Path: Pointer(name), Value: value}
}

// Pointer returns the JSON pointer of a top-level field.
func Pointer(name string) string {
	return "/" + escapeJSONPointer(name)
}

// FieldName is the inverse of Pointer for top-level pointers.
func FieldName(pointer string) string {
	name := strings.TrimPrefix(pointer, "/")
	name = strings.ReplaceAll(name, "~1", "/")
	return strings.ReplaceAll(name, "~0", "~")
}
