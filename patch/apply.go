package patch

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyRFC6902 applies ops to a typed form state and decodes the result back
// into T. The input value is never modified.
func ApplyRFC6902[T any](current T, ops []Operation) (T, error) {
	var zero T

	if len(ops) == 0 {
		return current, nil
	}

	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal current state: %w", err)
	}

	ops = FixOperation(currentJSON, ops)

	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal patch operations: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to apply patch: %w", err)
	}

	var result T
	if err := sonic.Unmarshal(modifiedJSON, &result); err != nil {
		return zero, fmt.Errorf("type mismatch: patch would result in invalid type T: %w", err)
	}

	return result, nil
}

// FixOperation turns replace on an absent path into add, so a patch built
// against defaults still applies.
func FixOperation(currentJSON []byte, ops []Operation) []Operation {
	var doc map[string]any
	if err := sonic.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}

	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op.Op == OperationReplace && !pathExists(doc, op.Path) {
			op.Op = OperationAdd
		}
		fixed = append(fixed, op)
	}
	return fixed
}

func pathExists(doc map[string]any, path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}

	var cur any = doc
	for _, token := range strings.Split(path[1:], "/") {
		node, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		if cur, ok = node[FieldName("/"+token)]; !ok {
			return false
		}
	}
	return true
}
