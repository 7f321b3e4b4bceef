package form

import "github.com/tbxark/formsubmit/types"

// Spec describes one form variant: its fixed field set, how it is presented
// and which facts must hold before it may be submitted.
type Spec[T any] interface {
	Name() string
	Fields() []types.FieldInfo
	Presentation() types.Presentation

	// ValidateFacts returns the local validation issues of current, in
	// priority order. An empty result means the form may be submitted.
	ValidateFacts(current T) []types.Issue
}

// Validate runs the spec's checks against state. It returns nil when the
// state is valid and a *ValidationError carrying the first issue otherwise.
func Validate[T any](spec Spec[T], state T) error {
	issues := spec.ValidateFacts(state)
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issue: issues[0], All: issues}
}
