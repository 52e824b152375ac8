package session

import (
	"context"
	"sync"

	"living_pages/story"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (story.State, error) {
	if err := ctx.Err(); err != nil {
		return story.State{}, err
	}
	m.mu.RLock()
	data, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return story.State{}, ErrNotFound
	}
	return decodeState(data)
}

func (m *MemoryStore) Save(ctx context.Context, id string, st story.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeState(st)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[id] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.data, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
