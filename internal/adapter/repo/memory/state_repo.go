package memory

import (
	"context"

	"npcmind/internal/app/ports"
)

type EmotionStateRepo struct {
	store *Store
}

func NewEmotionStateRepo(store *Store) EmotionStateRepo {
	return EmotionStateRepo{store: store}
}

func (r EmotionStateRepo) GetByNPCID(_ context.Context, npcID string) (ports.NPCStateRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.states[npcID]
	if !ok {
		return ports.NPCStateRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r EmotionStateRepo) SaveWithVersion(_ context.Context, rec ports.NPCStateRecord, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.states[rec.NPCID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.states[rec.NPCID] = rec
		return nil
	}
	if expectedVersion == 0 || current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.states[rec.NPCID] = rec
	return nil
}
