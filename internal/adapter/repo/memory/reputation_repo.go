package memory

import (
	"context"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/reputation"
)

type ReputationRepo struct {
	store *Store
}

func NewReputationRepo(store *Store) ReputationRepo {
	return ReputationRepo{store: store}
}

func (r ReputationRepo) GetByPlayerID(_ context.Context, playerID string) (reputation.PlayerReputation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rep, ok := r.store.reputations[playerID]
	if !ok {
		return reputation.PlayerReputation{}, ports.ErrNotFound
	}
	return clone(rep), nil
}

func (r ReputationRepo) Save(_ context.Context, rep reputation.PlayerReputation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reputations[rep.PlayerID] = clone(rep)
	return nil
}

// clone keeps the per-NPC map from leaking between the store and callers.
func clone(rep reputation.PlayerReputation) reputation.PlayerReputation {
	out := rep
	out.PerNPC = make(map[string]int, len(rep.PerNPC))
	for k, v := range rep.PerNPC {
		out.PerNPC[k] = v
	}
	return out
}
