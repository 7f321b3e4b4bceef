package form

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tbxark/formsubmit/types"
)

const checkpointVersion = "1.0"

// Checkpoint is a serialisable draft of a form instance.
type Checkpoint[T any] struct {
	Version      string       `json:"version"`
	Form         string       `json:"form"`
	Status       types.Status `json:"status"`
	FormState    T            `json:"form_state"`
	SubmissionID string       `json:"submission_id,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

func (c *Controller[T]) CreateCheckpoint() ([]byte, error) {
	c.mu.Lock()
	checkpoint := Checkpoint[T]{
		Version:      checkpointVersion,
		Form:         c.spec.Name(),
		Status:       c.status,
		FormState:    c.state,
		SubmissionID: c.submissionID,
		Timestamp:    time.Now(),
	}
	data, err := sonic.Marshal(checkpoint)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	return data, nil
}

// RestoreCheckpoint replaces the controller state with a saved draft. A
// draft saved mid-submission comes back idle: the outcome of that call is
// unknown, and the user decides whether to send again.
func (c *Controller[T]) RestoreCheckpoint(data []byte) error {
	var checkpoint Checkpoint[T]
	if err := sonic.Unmarshal(data, &checkpoint); err != nil {
		return fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	if checkpoint.Version != checkpointVersion {
		return fmt.Errorf("%w: %s (expected %s)", ErrCheckpointVersion, checkpoint.Version, checkpointVersion)
	}
	if checkpoint.Form != c.spec.Name() {
		return fmt.Errorf("%w: %q", ErrCheckpointForm, checkpoint.Form)
	}

	status := checkpoint.Status
	switch status {
	case types.StatusSubmitted:
	case types.StatusSubmitting:
		c.log.Warn("Restored an in-flight submission as idle", "submission_id", checkpoint.SubmissionID)
		status = types.StatusIdle
	default:
		status = types.StatusIdle
	}

	c.mu.Lock()
	c.state = checkpoint.FormState
	c.status = status
	c.submissionID = checkpoint.SubmissionID
	c.lastErr = nil
	c.mu.Unlock()

	c.notify(Event{Kind: EventRestored, Form: c.spec.Name(), Status: status, SubmissionID: checkpoint.SubmissionID})
	return nil
}
