package form

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/callbacks"
	"github.com/eino-contrib/jsonschema"
	"github.com/google/uuid"

	"github.com/tbxark/formsubmit/logger"
	"github.com/tbxark/formsubmit/patch"
	"github.com/tbxark/formsubmit/submit"
	"github.com/tbxark/formsubmit/types"
)

// Controller mediates between field edits and a single submission call per
// cycle. It exclusively owns one form state value.
type Controller[T any] struct {
	mu           sync.Mutex
	spec         Spec[T]
	submitter    submit.Submitter[T]
	state        T
	status       types.Status
	allowedPaths map[string]bool
	observers    []Observer
	submissionID string
	lastErr      error
	newID        func() string
	log          *slog.Logger
}

type Option[T any] func(*options[T])

type options[T any] struct {
	initial   *T
	observers []Observer
	logger    *slog.Logger
	newID     func() string
}

// WithInitial seeds the form with caller-supplied values. Zero-valued fields
// keep their defaults.
func WithInitial[T any](initial T) Option[T] {
	return func(o *options[T]) {
		o.initial = &initial
	}
}

func WithObserver[T any](fn Observer) Option[T] {
	return func(o *options[T]) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = l
	}
}

// WithIDGenerator overrides how submission IDs are minted.
func WithIDGenerator[T any](fn func() string) Option[T] {
	return func(o *options[T]) {
		o.newID = fn
	}
}

// New creates a controller in the idle state.
func New[T any](spec Spec[T], submitter submit.Submitter[T], opts ...Option[T]) (*Controller[T], error) {
	if spec == nil {
		return nil, fmt.Errorf("form: spec is required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("form: submitter is required for %s", spec.Name())
	}
	o := &options[T]{}
	for _, opt := range opts {
		opt(o)
	}

	allowedPaths := make(map[string]bool)
	for _, path := range patch.FieldPointers[T]() {
		allowedPaths[path] = true
	}

	log := o.logger
	if log == nil {
		log = slog.Default()
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}

	c := &Controller[T]{
		spec:         spec,
		submitter:    submitter,
		status:       types.StatusIdle,
		allowedPaths: allowedPaths,
		observers:    o.observers,
		newID:        o.newID,
		log:          log.With("form", spec.Name()),
	}

	if o.initial != nil {
		if err := c.setInitialState(*o.initial); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Controller[T]) setInitialState(initial T) error {
	ops, err := patch.GeneratePatchesFromInitial(c.state, initial)
	if err != nil {
		return fmt.Errorf("failed to generate patches from initial values: %w", err)
	}
	if len(ops) == 0 {
		return nil
	}
	if err := patch.ValidatePatchOperations(ops, c.allowedPaths); err != nil {
		return fmt.Errorf("initial values: %w", err)
	}
	newState, err := patch.ApplyRFC6902(c.state, ops)
	if err != nil {
		return fmt.Errorf("failed to apply initial values: %w", err)
	}
	c.state = newState
	return nil
}

// SetField replaces the value of one field. Unknown names and values of the
// wrong type are programming errors and panic.
func (c *Controller[T]) SetField(name string, value any) {
	op := patch.Replace(name, value)
	if err := patch.ValidatePatchOperations([]patch.Operation{op}, c.allowedPaths); err != nil {
		panic(fmt.Sprintf("form %s: unknown field %q", c.spec.Name(), name))
	}

	c.mu.Lock()
	newState, err := patch.ApplyRFC6902(c.state, []patch.Operation{op})
	if err != nil {
		c.mu.Unlock()
		panic(fmt.Sprintf("form %s: field %q: %v", c.spec.Name(), name, err))
	}
	c.state = newState
	status := c.status
	c.mu.Unlock()

	c.log.Debug("Field changed", "field", name)
	c.notify(Event{Kind: EventFieldChanged, Form: c.spec.Name(), Field: name, Status: status})
}

// Submit validates the current state and, when valid and idle, hands an
// immutable snapshot to the submitter exactly once.
//
// A nil submitter error moves the form to submitted, which is terminal. A
// non-nil error returns it to idle so the user may edit and retry; the error
// is returned as a *SubmissionError. Cancelling ctx is the only way to abort
// an in-flight submission.
func (c *Controller[T]) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.status != types.StatusIdle {
		status := c.status
		c.mu.Unlock()
		c.log.Debug("Submit ignored", "status", status)
		return OutcomeIgnored, nil
	}

	if err := Validate(c.spec, c.state); err != nil {
		c.mu.Unlock()
		vErr := err.(*ValidationError)
		c.log.Info("Submit rejected", "reason", vErr.Reason())
		c.notify(Event{Kind: EventRejected, Form: c.spec.Name(), Status: types.StatusIdle, Issue: &vErr.Issue})
		return OutcomeRejected, err
	}

	snapshot, err := clone(c.state)
	if err != nil {
		c.mu.Unlock()
		c.log.Error("Failed to snapshot form state", "error", err)
		return OutcomeError, fmt.Errorf("failed to snapshot form state: %w", err)
	}
	id := c.newID()
	c.status = types.StatusSubmitting
	c.submissionID = id
	c.lastErr = nil
	c.mu.Unlock()

	c.notify(Event{Kind: EventStatusChanged, Form: c.spec.Name(), Status: types.StatusSubmitting, SubmissionID: id})

	sub := submit.Submission[T]{ID: id, Form: c.spec.Name(), Payload: snapshot}
	ctx = logger.WithSubmission(ctx, c.spec.Name(), id)
	log := c.log.With("submission_id", id)
	log.Info("Dispatching submission")

	if err := c.dispatch(ctx, sub); err != nil {
		sErr := &SubmissionError{SubmissionID: id, Err: err}
		c.mu.Lock()
		c.status = types.StatusIdle
		c.lastErr = sErr
		c.mu.Unlock()
		log.Warn("Submission failed", "error", err)
		c.notify(Event{Kind: EventFailed, Form: c.spec.Name(), Status: types.StatusIdle, SubmissionID: id, Err: sErr})
		return OutcomeDispatched, sErr
	}

	c.mu.Lock()
	c.status = types.StatusSubmitted
	c.mu.Unlock()
	log.Info("Submission accepted")
	c.notify(Event{Kind: EventStatusChanged, Form: c.spec.Name(), Status: types.StatusSubmitted, SubmissionID: id})
	return OutcomeDispatched, nil
}

func (c *Controller[T]) dispatch(ctx context.Context, sub submit.Submission[T]) (err error) {
	ctx = callbacks.EnsureRunInfo(ctx, c.spec.Name(), "Form")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"submission_id": sub.ID,
		"form":          sub.Form,
		"payload":       sub.Payload,
	})
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in submitter: %v", r)
		}
		if err != nil {
			callbacks.OnError(ctx, err)
			return
		}
		callbacks.OnEnd(ctx, map[string]any{"submission_id": sub.ID})
	}()
	return c.submitter.Submit(ctx, sub)
}

func (c *Controller[T]) notify(ev Event) {
	c.mu.Lock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()
	for _, fn := range observers {
		fn(ev)
	}
}

// Subscribe adds an observer after construction.
func (c *Controller[T]) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

func (c *Controller[T]) Name() string {
	return c.spec.Name()
}

func (c *Controller[T]) Fields() []types.FieldInfo {
	return c.spec.Fields()
}

func (c *Controller[T]) Presentation() types.Presentation {
	return c.spec.Presentation()
}

func (c *Controller[T]) Status() types.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns a copy of the current form state.
func (c *Controller[T]) State() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, err := clone(c.state)
	if err != nil {
		return c.state
	}
	return snapshot
}

// Values returns the form state as a field-name keyed map.
func (c *Controller[T]) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	values, err := toValues(c.state)
	if err != nil {
		return map[string]any{}
	}
	return values
}

// Field returns the current value of one field in its JSON form.
func (c *Controller[T]) Field(name string) (any, bool) {
	values := c.Values()
	v, ok := values[name]
	return v, ok
}

// Issues runs validation without changing anything.
func (c *Controller[T]) Issues() []types.Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec.ValidateFacts(c.state)
}

// CanSubmit reports whether a Submit call right now would dispatch.
func (c *Controller[T]) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == types.StatusIdle && len(c.spec.ValidateFacts(c.state)) == 0
}

// LastError returns the failure of the most recent submission, if any.
func (c *Controller[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller[T]) SubmissionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submissionID
}

// Schema returns the JSON Schema of the submitted payload.
func (c *Controller[T]) Schema() (string, error) {
	var zero T
	schema := jsonschema.Reflect(zero)
	p := c.spec.Presentation()
	schema.Title = p.Title
	schema.Description = fmt.Sprintf("Payload submitted by the %s workflow form.", c.spec.Name())
	data, err := sonic.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return string(data), nil
}

func clone[T any](v T) (T, error) {
	var out T
	data, err := sonic.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := sonic.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

func toValues[T any](v T) (map[string]any, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := sonic.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
