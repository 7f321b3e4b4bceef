package form

import (
	"context"
	"time"
)

const checkpointNamespace = "form:checkpoint"

// Checkpointer is implemented by *Controller of any form type.
type Checkpointer interface {
	Name() string
	CreateCheckpoint() ([]byte, error)
	RestoreCheckpoint(data []byte) error
}

// CheckpointStore files controller drafts under
// form:checkpoint:<form>:<state key>, where the state key comes from the
// context. Each form may keep its drafts for a different time.
type CheckpointStore struct {
	cache   DraftCache
	ttl     time.Duration
	formTTL map[string]time.Duration
}

type StoreOption func(*CheckpointStore)

// WithDraftTTL sets how long drafts of forms without their own TTL are kept.
func WithDraftTTL(ttl time.Duration) StoreOption {
	return func(s *CheckpointStore) {
		s.ttl = ttl
	}
}

// WithFormTTL overrides the draft lifetime of one form.
func WithFormTTL(form string, ttl time.Duration) StoreOption {
	return func(s *CheckpointStore) {
		s.formTTL[form] = ttl
	}
}

func NewCheckpointStore(cache DraftCache, opts ...StoreOption) *CheckpointStore {
	s := &CheckpointStore{cache: cache, formTTL: map[string]time.Duration{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewMemoryCheckpointStore(opts ...StoreOption) *CheckpointStore {
	return NewCheckpointStore(NewMemoryCache(), opts...)
}

// TTL returns how long drafts of form are kept.
func (s *CheckpointStore) TTL(form string) time.Duration {
	if ttl, ok := s.formTTL[form]; ok {
		return ttl
	}
	return s.ttl
}

func (s *CheckpointStore) key(ctx context.Context, form string) (string, error) {
	session, ok := StateKeyFromContext(ctx)
	if !ok {
		return "", ErrKeyNotFound
	}
	return checkpointNamespace + ":" + form + ":" + session, nil
}

func (s *CheckpointStore) Save(ctx context.Context, c Checkpointer) error {
	key, err := s.key(ctx, c.Name())
	if err != nil {
		return err
	}
	data, err := c.CreateCheckpoint()
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, key, data, s.TTL(c.Name()))
}

// Load restores the saved draft into c. It reports false when no draft
// exists for the key.
func (s *CheckpointStore) Load(ctx context.Context, c Checkpointer) (bool, error) {
	key, err := s.key(ctx, c.Name())
	if err != nil {
		return false, err
	}
	data, ok, err := s.cache.Fetch(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := c.RestoreCheckpoint(data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CheckpointStore) Clear(ctx context.Context, c Checkpointer) error {
	key, err := s.key(ctx, c.Name())
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, key)
}
