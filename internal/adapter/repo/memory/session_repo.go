package memory

import (
	"context"
	"time"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/analytics"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) EnsureActive(_ context.Context, sessionID, playerID string, startedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[sessionID]; ok {
		return nil
	}
	r.store.sessions[sessionID] = analytics.SessionRecord{
		ID:        sessionID,
		PlayerID:  playerID,
		StartedAt: startedAt,
	}
	return nil
}

func (r SessionRepo) Close(_ context.Context, sessionID string, endedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sessions[sessionID]
	if !ok {
		return ports.ErrNotFound
	}
	if s.EndedAt == nil {
		s.EndedAt = &endedAt
		r.store.sessions[sessionID] = s
	}
	return nil
}

func (r SessionRepo) ListBetween(_ context.Context, from, to time.Time) ([]analytics.SessionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []analytics.SessionRecord{}
	for _, s := range r.store.sessions {
		if inRange(s.StartedAt, from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}
