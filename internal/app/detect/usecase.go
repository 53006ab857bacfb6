// Package detect runs the exploit pattern battery after every recorded
// action.
package detect

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/analytics"
)

var ErrInvalidAction = errors.New("invalid action record")

type UseCase struct {
	Actions  ports.ActionLogRepository
	Sessions ports.SessionRepository
	Exploits ports.ExploitRepository
	Metrics  ports.TaskMetrics
	NewID    func() string
}

func (u UseCase) newID() string {
	if u.NewID == nil {
		return uuid.NewString()
	}
	return u.NewID()
}

// RecordAction appends the action to the log, keeps the player's session
// alive, and runs every pattern check against the player's history. The
// history read happens after the append so the triggering action is its last
// element.
func (u UseCase) RecordAction(ctx context.Context, action analytics.GameAction) ([]analytics.ExploitDetection, error) {
	if action.PlayerID == "" || action.OccurredAt.IsZero() {
		return nil, ErrInvalidAction
	}
	if action.ID == "" {
		action.ID = u.newID()
	}

	if u.Sessions != nil && action.SessionID != "" {
		if err := u.Sessions.EnsureActive(ctx, action.SessionID, action.PlayerID, action.OccurredAt); err != nil {
			return nil, err
		}
	}
	if err := u.Actions.Append(ctx, action); err != nil {
		return nil, err
	}

	history, err := u.Actions.ListByPlayerID(ctx, action.PlayerID)
	if err != nil {
		return nil, err
	}

	detections := analytics.CheckPatterns(history, action)
	for i := range detections {
		detections[i].ID = u.newID()
		if err := u.Exploits.Save(ctx, detections[i]); err != nil {
			return nil, err
		}
		if u.Metrics != nil {
			u.Metrics.RecordDetection(detections[i].Pattern)
		}
	}
	return detections, nil
}

// CloseSession ends a player session.
func (u UseCase) CloseSession(ctx context.Context, sessionID string, endedAt time.Time) error {
	if u.Sessions == nil || sessionID == "" {
		return nil
	}
	return u.Sessions.Close(ctx, sessionID, endedAt)
}
