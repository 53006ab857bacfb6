package memory

import (
	"context"
	"time"

	"npcmind/internal/domain/analytics"
)

type ExploitRepo struct {
	store *Store
}

func NewExploitRepo(store *Store) ExploitRepo {
	return ExploitRepo{store: store}
}

func (r ExploitRepo) Save(_ context.Context, detection analytics.ExploitDetection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.exploits = append(r.store.exploits, detection)
	return nil
}

func (r ExploitRepo) ListBetween(_ context.Context, from, to time.Time) ([]analytics.ExploitDetection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []analytics.ExploitDetection{}
	for _, d := range r.store.exploits {
		if inRange(d.DetectedAt, from, to) {
			out = append(out, d)
		}
	}
	return out, nil
}
