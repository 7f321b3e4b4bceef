package form

import (
	"context"
	"sync"
	"time"
)

// DraftCache holds encoded checkpoints. A ttl of zero keeps a draft until it
// is deleted.
type DraftCache interface {
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Fetch(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}

type memoryDraft struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is a process-local DraftCache. Expired drafts are dropped on
// read.
type MemoryCache struct {
	mu     sync.Mutex
	drafts map[string]memoryDraft
	now    func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{drafts: map[string]memoryDraft{}, now: time.Now}
}

func (m *MemoryCache) Put(_ context.Context, key string, data []byte, ttl time.Duration) error {
	d := memoryDraft{data: append([]byte(nil), data...)}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl > 0 {
		d.expiresAt = m.now().Add(ttl)
	}
	m.drafts[key] = d
	return nil
}

func (m *MemoryCache) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[key]
	if !ok {
		return nil, false, nil
	}
	if !d.expiresAt.IsZero() && !m.now().Before(d.expiresAt) {
		delete(m.drafts, key)
		return nil, false, nil
	}
	return append([]byte(nil), d.data...), true, nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.drafts, key)
	m.mu.Unlock()
	return nil
}
