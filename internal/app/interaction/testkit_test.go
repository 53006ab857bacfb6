package interaction

import (
	"context"
	"sync"
	"time"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/emotion"
	"npcmind/internal/domain/reputation"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	mu      sync.Mutex
	byNPC   map[string]ports.NPCStateRecord
	failSet bool
}

func newStubStateRepo() *stubStateRepo {
	return &stubStateRepo{byNPC: map[string]ports.NPCStateRecord{}}
}

func (r *stubStateRepo) GetByNPCID(_ context.Context, npcID string) (ports.NPCStateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byNPC[npcID]
	if !ok {
		return ports.NPCStateRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, rec ports.NPCStateRecord, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byNPC[rec.NPCID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byNPC[rec.NPCID] = rec
		return nil
	}
	if expectedVersion == 0 || current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byNPC[rec.NPCID] = rec
	return nil
}

type stubReputationRepo struct {
	mu       sync.Mutex
	byPlayer map[string]reputation.PlayerReputation
}

func newStubReputationRepo() *stubReputationRepo {
	return &stubReputationRepo{byPlayer: map[string]reputation.PlayerReputation{}}
}

func (r *stubReputationRepo) GetByPlayerID(_ context.Context, playerID string) (reputation.PlayerReputation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.byPlayer[playerID]
	if !ok {
		return reputation.PlayerReputation{}, ports.ErrNotFound
	}
	return rep, nil
}

func (r *stubReputationRepo) Save(_ context.Context, rep reputation.PlayerReputation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPlayer[rep.PlayerID] = rep
	return nil
}

type stubTransitionRepo struct {
	mu      sync.Mutex
	entries []emotion.Transition
}

func (r *stubTransitionRepo) Append(_ context.Context, tr emotion.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, tr)
	return nil
}

func (r *stubTransitionRepo) ListByNPCID(_ context.Context, npcID string, limit int) ([]emotion.Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []emotion.Transition{}
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].NPCID == npcID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *stubTransitionRepo) PruneBefore(_ context.Context, horizon time.Time) (int64, error) {
	return 0, nil
}

type stubMemory struct {
	mu      sync.Mutex
	records []ports.MemoryRecord
	fail    error
}

func (m *stubMemory) AddMemory(_ context.Context, rec ports.MemoryRecord) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

type stubNotifier struct {
	mu    sync.Mutex
	calls []emotion.Transition
	fail  error
}

func (n *stubNotifier) NotifyTransition(_ context.Context, tr emotion.Transition) error {
	if n.fail != nil {
		return n.fail
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, tr)
	return nil
}
