package patch

import (
	"fmt"
	"strings"
)

// PathError reports an operation whose path lies outside the form's fixed
// field set.
type PathError struct {
	Index int
	Path  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("operation %d: path %q is not in the allowed paths set", e.Index, e.Path)
}

// ValidatePatchOperations checks every op path against allowedPaths. Nested
// pointers are accepted when their top-level field is allowed, since a field
// value is always replaced as a whole.
func ValidatePatchOperations(ops []Operation, allowedPaths map[string]bool) error {
	if len(ops) == 0 || len(allowedPaths) == 0 {
		return nil
	}
	for i, op := range ops {
		if !allowedPaths[topLevel(op.Path)] {
			return &PathError{Index: i, Path: op.Path}
		}
	}
	return nil
}

func topLevel(path string) string {
	if !strings.HasPrefix(path, "/") {
		return path
	}
	if i := strings.Index(path[1:], "/"); i >= 0 {
		return path[:i+1]
	}
	return path
}
