package audit

import (
	"context"
	"sync"
)

const defaultMemoryCapacity = 500

// MemoryStore keeps the most recent provider calls in a bounded ring.
type MemoryStore struct {
	mu       sync.RWMutex
	calls    []ProviderCall
	capacity int
}

// NewMemoryStore constructs a MemoryStore holding up to capacity calls.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryStore{capacity: capacity}
}

// Record appends a call, evicting the oldest once full.
func (s *MemoryStore) Record(ctx context.Context, call ProviderCall) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if over := len(s.calls) - s.capacity; over > 0 {
		s.calls = append([]ProviderCall(nil), s.calls[over:]...)
	}
	return nil
}

// ListRecent returns calls newest first.
func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]ProviderCall, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(limit, len(s.calls))
	out := make([]ProviderCall, 0, n)
	for i := len(s.calls) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.calls[i])
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
