package form

import (
	"errors"
	"fmt"

	"github.com/tbxark/formsubmit/types"
)

var (
	ErrCheckpointVersion = errors.New("form: incompatible checkpoint version")
	ErrCheckpointForm    = errors.New("form: checkpoint belongs to another form")
	ErrKeyNotFound       = errors.New("form: state key not found in context")
)

// ValidationError is a local, recoverable failure. The form stays editable.
type ValidationError struct {
	Issue types.Issue
	All   []types.Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form invalid: %s: %s", e.Issue.Reason, e.Issue.Message)
}

// Reason returns the machine-readable reason, e.g. "missing file".
func (e *ValidationError) Reason() string {
	return e.Issue.Reason
}

// SubmissionError wraps a failure reported by the submission collaborator.
type SubmissionError struct {
	SubmissionID string
	Err          error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %s failed: %v", e.SubmissionID, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
