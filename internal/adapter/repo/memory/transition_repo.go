package memory

import (
	"context"
	"time"

	"npcmind/internal/domain/emotion"
)

type TransitionRepo struct {
	store *Store
}

func NewTransitionRepo(store *Store) TransitionRepo {
	return TransitionRepo{store: store}
}

func (r TransitionRepo) Append(_ context.Context, tr emotion.Transition) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transitions = append(r.store.transitions, tr)
	return nil
}

func (r TransitionRepo) ListByNPCID(_ context.Context, npcID string, limit int) ([]emotion.Transition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []emotion.Transition{}
	for i := len(r.store.transitions) - 1; i >= 0 && len(out) < limit; i-- {
		if r.store.transitions[i].NPCID == npcID {
			out = append(out, r.store.transitions[i])
		}
	}
	return out, nil
}

func (r TransitionRepo) PruneBefore(_ context.Context, horizon time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.transitions[:0]
	dropped := int64(0)
	for _, tr := range r.store.transitions {
		if tr.OccurredAt.Before(horizon) {
			dropped++
			continue
		}
		kept = append(kept, tr)
	}
	r.store.transitions = kept
	return dropped, nil
}
