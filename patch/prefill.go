package patch

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/bytedance/sonic"
)

// GeneratePatchesFromInitial compares caller-supplied initial values with the
// current state and returns the operations that bring current in line.
// Zero-valued initial fields are skipped so that partial initial data does
// not wipe defaults. Operations are ordered by field name.
func GeneratePatchesFromInitial[T any](current, initial T) ([]Operation, error) {
	currentMap, err := toMap(current)
	if err != nil {
		return nil, fmt.Errorf("failed to convert current state: %w", err)
	}
	initialMap, err := toMap(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to convert initial state: %w", err)
	}

	keys := make([]string, 0, len(initialMap))
	for key := range initialMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	patches := make([]Operation, 0)
	for _, key := range keys {
		initialValue := initialMap[key]
		if isZeroValue(initialValue) {
			continue
		}
		currentValue, exists := currentMap[key]
		switch {
		case !exists:
			patches = append(patches, Operation{Op: OperationAdd, Path: Pointer(key), Value: initialValue})
		case !reflect.DeepEqual(currentValue, initialValue):
			patches = append(patches, Operation{Op: OperationReplace, Path: Pointer(key), Value: initialValue})
		}
	}
	return patches, nil
}

func toMap(v any) (map[string]any, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func escapeJSONPointer(token string) string {
	result := ""
	for _, ch := range token {
		switch ch {
		case '~':
			result += "~0"
		case '/':
			result += "~1"
		default:
			result += string(ch)
		}
	}
	return result
}

func isZeroValue(v any) bool {
	if v == nil {
		return true
	}

	switch val := v.(type) {
	case string:
		return val == ""
	case float64:
		return val == 0
	case bool:
		return !val
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
