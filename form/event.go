package form

import "github.com/tbxark/formsubmit/types"

type EventKind string

const (
	EventFieldChanged  EventKind = "field_changed"
	EventStatusChanged EventKind = "status_changed"
	EventRejected      EventKind = "rejected"
	EventFailed        EventKind = "failed"
	EventRestored      EventKind = "restored"
)

// Event is delivered to observers after the controller state has changed.
type Event struct {
	Kind         EventKind
	Form         string
	Field        string
	Status       types.Status
	SubmissionID string
	Issue        *types.Issue
	Err          error
}

// Observer is notified of every change, outside the controller lock, so it
// may read the controller back.
type Observer func(Event)

// Outcome is what a call to Submit did.
type Outcome string

const (
	// OutcomeDispatched means the collaborator was invoked with a snapshot.
	OutcomeDispatched Outcome = "dispatched"
	// OutcomeRejected means local validation failed; nothing was sent.
	OutcomeRejected Outcome = "rejected"
	// OutcomeIgnored means a submission was already in progress or done.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeError means the state could not be prepared for sending. Nothing
	// was sent and the form stays idle.
	OutcomeError Outcome = "error"
)
