package memory

import (
	"context"
	"time"

	"npcmind/internal/domain/analytics"
)

type ActionLogRepo struct {
	store *Store
}

func NewActionLogRepo(store *Store) ActionLogRepo {
	return ActionLogRepo{store: store}
}

func (r ActionLogRepo) Append(_ context.Context, action analytics.GameAction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.actions = append(r.store.actions, action)
	return nil
}

func (r ActionLogRepo) ListByPlayerID(_ context.Context, playerID string) ([]analytics.GameAction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []analytics.GameAction{}
	for _, a := range r.store.actions {
		if a.PlayerID == playerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r ActionLogRepo) ListBetween(_ context.Context, from, to time.Time) ([]analytics.GameAction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []analytics.GameAction{}
	for _, a := range r.store.actions {
		if inRange(a.OccurredAt, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r ActionLogRepo) PruneBefore(_ context.Context, horizon time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.actions[:0]
	dropped := int64(0)
	for _, a := range r.store.actions {
		if a.OccurredAt.Before(horizon) {
			dropped++
			continue
		}
		kept = append(kept, a)
	}
	r.store.actions = kept
	return dropped, nil
}

// inRange treats zero bounds as open, matching the port contract [from, to).
func inRange(at, from, to time.Time) bool {
	if !from.IsZero() && at.Before(from) {
		return false
	}
	if !to.IsZero() && !at.Before(to) {
		return false
	}
	return true
}
