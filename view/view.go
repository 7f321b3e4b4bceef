// Package view turns controller state into what a form's submit control
// shows. It holds no state of its own.
package view

import "github.com/tbxark/formsubmit/types"

type ButtonState struct {
	Label    string
	Disabled bool
	Busy     bool
}

// Button describes the submit control. ready reports whether every required
// field has a value; the control stays disabled until it does and for as
// long as a submission is in flight or done.
func Button(p types.Presentation, status types.Status, ready bool) ButtonState {
	switch status {
	case types.StatusSubmitting:
		return ButtonState{Label: busyLabel(p), Disabled: true, Busy: true}
	case types.StatusSubmitted:
		return ButtonState{Label: p.SubmitLabel, Disabled: true}
	default:
		return ButtonState{Label: p.SubmitLabel, Disabled: !ready}
	}
}

func busyLabel(p types.Presentation) string {
	if p.BusyLabel != "" {
		return p.BusyLabel
	}
	return "Submitting..."
}

func StatusText(status types.Status) string {
	switch status {
	case types.StatusSubmitting:
		return "Submitting"
	case types.StatusSubmitted:
		return "Submitted"
	default:
		return "Ready"
	}
}

// RequiredFilled reports whether every required field has a non-empty
// value in values.
func RequiredFilled(fields []types.FieldInfo, values map[string]any) bool {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		switch v := values[f.Name].(type) {
		case nil:
			return false
		case string:
			if v == "" {
				return false
			}
		}
	}
	return true
}

// Ready reports whether the submit control may be enabled: every required
// field has a value and local validation reports nothing.
func Ready(fields []types.FieldInfo, values map[string]any, issues []types.Issue) bool {
	return len(issues) == 0 && RequiredFilled(fields, values)
}
