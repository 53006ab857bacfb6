// Package fairness recomputes the threshold-checked health metrics over the
// action, session, and exploit logs.
package fairness

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/analytics"
)

type UseCase struct {
	Actions  ports.ActionLogRepository
	Sessions ports.SessionRepository
	Exploits ports.ExploitRepository
	Now      func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now()
}

// Compute derives all four fairness metrics from the full logs. Reads only;
// it never blocks interactive task handling.
func (u UseCase) Compute(ctx context.Context) ([]analytics.FairnessMetric, error) {
	return u.ComputeRange(ctx, time.Time{}, time.Time{})
}

// ComputeRange derives the metrics over a bounded slice of the logs. Zero
// bounds are open.
func (u UseCase) ComputeRange(ctx context.Context, from, to time.Time) ([]analytics.FairnessMetric, error) {
	actions, err := u.Actions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sessions, err := u.Sessions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	exploits, err := u.Exploits.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeFairnessMetrics(actions, sessions, exploits, u.now()), nil
}

// Runner recomputes the fairness snapshot on a fixed interval. The latest
// snapshot replaces the previous one wholesale; readers get a copy.
type Runner struct {
	UseCase  UseCase
	Interval time.Duration
	Logger   *slog.Logger

	mu     sync.RWMutex
	latest []analytics.FairnessMetric
}

// Run blocks until ctx is done, recomputing every Interval. An immediate
// first computation primes the snapshot.
func (r *Runner) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	r.recompute(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.recompute(ctx)
		}
	}
}

func (r *Runner) recompute(ctx context.Context) {
	metrics, err := r.UseCase.Compute(ctx)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("fairness recomputation failed", "err", err)
		}
		return
	}
	r.mu.Lock()
	r.latest = metrics
	r.mu.Unlock()
}

// Latest returns a copy of the most recent snapshot (nil before the first
// successful computation).
func (r *Runner) Latest() []analytics.FairnessMetric {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return nil
	}
	out := make([]analytics.FairnessMetric, len(r.latest))
	copy(out, r.latest)
	return out
}
