package submit

import (
	"context"
	"fmt"

	"github.com/tbxark/formsubmit/logger"
)

// AsyncSubmitter hands each submission to a goroutine and returns at once.
// The caller never learns the outcome except through OnDone; this is the
// fire-and-forget hand-off workflow forms use by default.
type AsyncSubmitter[T any] struct {
	inner  Submitter[T]
	onDone func(Submission[T], error)
}

// Async wraps inner. onDone may be nil, in which case failures are logged.
func Async[T any](inner Submitter[T], onDone func(Submission[T], error)) *AsyncSubmitter[T] {
	return &AsyncSubmitter[T]{inner: inner, onDone: onDone}
}

func (a *AsyncSubmitter[T]) Submit(ctx context.Context, sub Submission[T]) error {
	// The hand-off outlives the caller's event handler.
	ctx = context.WithoutCancel(ctx)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in submitter: %v", r)
			}
			if a.onDone != nil {
				a.onDone(sub, err)
				return
			}
			if err != nil {
				logger.Error(ctx, "Background submission failed", "error", err)
			}
		}()
		err = a.inner.Submit(ctx, sub)
	}()
	return nil
}
