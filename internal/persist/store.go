package persist

import (
	"context"
	"sync"
)

// Store reads and writes a profile's opaque save blob. The engine does
// not care what sits behind it: a file, Redis, or memory.
type Store interface {
	// Load returns the saved blob, or (nil, nil) when no save exists.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// MemoryStore keeps the blob in memory. Used in tests and as a sink
// for throwaway profiles.
type MemoryStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), m.blob...), nil
}

func (m *MemoryStore) Save(ctx context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	return nil
}
