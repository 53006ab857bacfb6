// Package report aggregates fairness metrics with exploit and session
// summaries into one analytics report.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"npcmind/internal/app/fairness"
	"npcmind/internal/app/ports"
	"npcmind/internal/domain/analytics"
)

type UseCase struct {
	Fairness fairness.UseCase
	Actions  ports.ActionLogRepository
	Sessions ports.SessionRepository
	Exploits ports.ExploitRepository
	Now      func() time.Time
	NewID    func() string
}

type Request struct {
	From time.Time
	To   time.Time
}

type ExploitSummary struct {
	Total      int            `json:"total"`
	ByPattern  map[string]int `json:"by_pattern"`
	BySeverity map[string]int `json:"by_severity"`
}

type SessionSummary struct {
	Total         int     `json:"total"`
	Ended         int     `json:"ended"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

type ActionSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
}

type AnalyticsReport struct {
	ID          string                     `json:"id"`
	GeneratedAt time.Time                  `json:"generated_at"`
	From        *time.Time                 `json:"from,omitempty"`
	To          *time.Time                 `json:"to,omitempty"`
	Metrics     []analytics.FairnessMetric `json:"metrics"`
	Exploits    ExploitSummary             `json:"exploits"`
	Sessions    SessionSummary             `json:"sessions"`
	Actions     ActionSummary              `json:"actions"`
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now()
}

func (u UseCase) newID() string {
	if u.NewID == nil {
		return uuid.NewString()
	}
	return u.NewID()
}

// Generate computes the fairness metrics synchronously and summarizes the
// exploit, session, and action logs over the requested range. Zero bounds
// are open.
func (u UseCase) Generate(ctx context.Context, req Request) (AnalyticsReport, error) {
	metrics, err := u.Fairness.ComputeRange(ctx, req.From, req.To)
	if err != nil {
		return AnalyticsReport{}, err
	}
	actions, err := u.Actions.ListBetween(ctx, req.From, req.To)
	if err != nil {
		return AnalyticsReport{}, err
	}
	sessions, err := u.Sessions.ListBetween(ctx, req.From, req.To)
	if err != nil {
		return AnalyticsReport{}, err
	}
	exploits, err := u.Exploits.ListBetween(ctx, req.From, req.To)
	if err != nil {
		return AnalyticsReport{}, err
	}

	out := AnalyticsReport{
		ID:          u.newID(),
		GeneratedAt: u.now(),
		Metrics:     metrics,
		Exploits:    summarizeExploits(exploits),
		Sessions:    summarizeSessions(sessions),
		Actions:     summarizeActions(actions),
	}
	if !req.From.IsZero() {
		from := req.From
		out.From = &from
	}
	if !req.To.IsZero() {
		to := req.To
		out.To = &to
	}
	return out, nil
}

func summarizeExploits(exploits []analytics.ExploitDetection) ExploitSummary {
	out := ExploitSummary{
		Total:      len(exploits),
		ByPattern:  map[string]int{},
		BySeverity: map[string]int{},
	}
	for _, e := range exploits {
		out.ByPattern[e.Pattern]++
		out.BySeverity[string(e.Severity)]++
	}
	return out
}

func summarizeSessions(sessions []analytics.SessionRecord) SessionSummary {
	out := SessionSummary{Total: len(sessions)}
	totalMS := int64(0)
	for _, s := range sessions {
		if !s.Ended() {
			continue
		}
		out.Ended++
		totalMS += s.DurationMS()
	}
	if out.Ended > 0 {
		out.AvgDurationMS = float64(totalMS) / float64(out.Ended)
	}
	return out
}

func summarizeActions(actions []analytics.GameAction) ActionSummary {
	out := ActionSummary{Total: len(actions)}
	for _, a := range actions {
		if a.Success {
			out.Succeeded++
		}
	}
	return out
}
