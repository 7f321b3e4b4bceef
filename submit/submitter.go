package submit

import "context"

// Submission is a single hand-off to the workflow engine. Payload is the
// form state exactly as it stood when submit ran, with field names unchanged.
type Submission[T any] struct {
	ID      string `json:"id"`
	Form    string `json:"form"`
	Payload T      `json:"payload"`
}

// Submitter is the submission collaborator. A nil error means the payload
// was accepted; it says nothing about what the workflow engine does next.
type Submitter[T any] interface {
	Submit(ctx context.Context, sub Submission[T]) error
}

// Func adapts a plain function to Submitter.
type Func[T any] func(ctx context.Context, sub Submission[T]) error

func (f Func[T]) Submit(ctx context.Context, sub Submission[T]) error {
	return f(ctx, sub)
}
