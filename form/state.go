package form

import "context"

type stateKeyContext struct{}

// WithStateKey sets the routing key used to file drafts, typically the
// workflow task id the form belongs to.
func WithStateKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, stateKeyContext{}, key)
}

// StateKeyFromContext gets the routing key from the context.
func StateKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(stateKeyContext{}).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
