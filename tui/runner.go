package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tbxark/formsubmit/form"
	"github.com/tbxark/formsubmit/types"
	"github.com/tbxark/formsubmit/variants"
	"github.com/tbxark/formsubmit/view"
)

// Form is the part of a form controller the terminal view drives.
type Form interface {
	Name() string
	Fields() []types.FieldInfo
	Presentation() types.Presentation
	Values() map[string]any
	Status() types.Status
	Issues() []types.Issue
	SetField(name string, value any)
	Submit(ctx context.Context) (form.Outcome, error)
}

// FileResolver turns a user-entered path into a file handle.
type FileResolver func(path string) (*types.FileHandle, error)

type Runner struct {
	driver      PromptDriver
	resolveFile FileResolver
	skipFill    bool
}

type Option func(*Runner)

func WithFileResolver(fn FileResolver) Option {
	return func(r *Runner) {
		if fn != nil {
			r.resolveFile = fn
		}
	}
}

// WithoutInitialFill goes straight to the action menu, for forms restored
// from a draft.
func WithoutInitialFill() Option {
	return func(r *Runner) {
		r.skipFill = true
	}
}

func NewRunner(driver PromptDriver, opts ...Option) *Runner {
	r := &Runner{driver: driver, resolveFile: variants.FileFromPath}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

const (
	actionSubmit = iota
	actionEdit
	actionQuit
)

// Run prompts for every field, then loops on the action menu until the form
// is handed off or the user quits. Quitting returns ErrAborted.
func (r *Runner) Run(ctx context.Context, f Form) error {
	p := f.Presentation()
	if err := r.driver.Info(ctx, "== "+p.Title+" =="); err != nil {
		return err
	}
	if !r.skipFill {
		for _, field := range f.Fields() {
			if err := r.promptField(ctx, f, field); err != nil {
				return err
			}
		}
	}

	for {
		values := f.Values()
		issues := f.Issues()
		button := view.Button(p, f.Status(), view.Ready(f.Fields(), values, issues))
		if err := r.driver.Info(ctx, types.FormatFields(f.Fields(), values)); err != nil {
			return err
		}
		if len(issues) > 0 {
			if err := r.driver.Info(ctx, types.FormatIssues(issues)); err != nil {
				return err
			}
		}

		submitLabel := button.Label
		if button.Disabled {
			submitLabel += " (not ready)"
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: []string{submitLabel, "Edit a field", "Quit"},
		})
		if err != nil {
			return err
		}

		switch choice {
		case actionSubmit:
			done, err := r.submit(ctx, f)
			if err != nil || done {
				return err
			}
		case actionEdit:
			if err := r.editField(ctx, f); err != nil {
				return err
			}
		default:
			return ErrAborted
		}
	}
}

func (r *Runner) submit(ctx context.Context, f Form) (bool, error) {
	outcome, err := f.Submit(ctx)

	switch outcome {
	case form.OutcomeRejected:
		var vErr *form.ValidationError
		if errors.As(err, &vErr) {
			return false, r.driver.Info(ctx, types.FormatIssues(vErr.All))
		}
		return false, err
	case form.OutcomeError:
		return false, r.driver.Info(ctx, fmt.Sprintf("Could not prepare the submission: %v", err))
	case form.OutcomeIgnored:
		return true, r.driver.Info(ctx, "This form has already been submitted.")
	}

	var sErr *form.SubmissionError
	if errors.As(err, &sErr) {
		return false, r.driver.Info(ctx, fmt.Sprintf("Submission failed: %v. You can edit the form and try again.", sErr.Err))
	}
	if err != nil {
		return false, err
	}
	busy := view.Button(f.Presentation(), types.StatusSubmitting, true).Label
	return true, r.driver.Info(ctx, busy+" "+view.StatusText(f.Status()))
}

func (r *Runner) editField(ctx context.Context, f Form) error {
	fields := f.Fields()
	options := make([]string, 0, len(fields))
	for _, field := range fields {
		options = append(options, field.DisplayName)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Which field?", Options: options})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(fields) {
		return nil
	}
	return r.promptField(ctx, f, fields[idx])
}

func (r *Runner) promptField(ctx context.Context, f Form, field types.FieldInfo) error {
	current := f.Values()[field.Name]
	message := field.DisplayName
	if field.Required {
		message += " *"
	}

	switch field.Kind {
	case types.KindBool:
		def, _ := current.(bool)
		v, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: field.Description})
		if err != nil {
			return err
		}
		f.SetField(field.Name, v)

	case types.KindMultiline:
		def, _ := current.(string)
		v, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: def, Help: field.Description})
		if err != nil {
			return err
		}
		f.SetField(field.Name, v)

	case types.KindFile:
		if name := fileName(current); name != "" {
			keep, err := r.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Keep %s?", name), Default: true})
			if err != nil || keep {
				return err
			}
		}
		path, err := r.driver.Input(ctx, InputConfig{
			Message: message + " (path, empty for none)",
			Help:    field.Description,
			Validator: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				_, err := r.resolveFile(s)
				return err
			},
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(path) == "" {
			if current != nil {
				f.SetField(field.Name, nil)
			}
			return nil
		}
		file, err := r.resolveFile(path)
		if err != nil {
			return r.driver.Info(ctx, err.Error())
		}
		f.SetField(field.Name, file)

	default:
		def, _ := current.(string)
		v, err := r.driver.Input(ctx, InputConfig{Message: message, Default: def, Help: field.Description})
		if err != nil {
			return err
		}
		f.SetField(field.Name, v)
	}
	return nil
}

func fileName(v any) string {
	file, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := file["name"].(string)
	return name
}
