package memory

import (
	"context"

	"npcmind/internal/app/ports"
)

// NPCMemoryStore satisfies ports.MemoryStore for tests and demo runs.
type NPCMemoryStore struct {
	store *Store
}

func NewNPCMemoryStore(store *Store) NPCMemoryStore {
	return NPCMemoryStore{store: store}
}

func (m NPCMemoryStore) AddMemory(_ context.Context, record ports.MemoryRecord) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.memories = append(m.store.memories, record)
	return nil
}
