// Package interaction implements the emotion engine: trigger-driven state
// mutation, reputation aggregation, and the mood transition log.
package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"npcmind/internal/app/ports"
	"npcmind/internal/app/shared/keylock"
	"npcmind/internal/domain/emotion"
	"npcmind/internal/domain/reputation"
)

var (
	ErrInvalidRequest = errors.New("invalid interaction request")
)

// UseCase wires the emotion engine. Locks serializes the full
// read-modify-write per NPC id; interactions with different NPCs run in
// parallel.
type UseCase struct {
	TxManager   ports.TxManager
	StateRepo   ports.EmotionStateRepository
	Reputations ports.ReputationRepository
	Transitions ports.TransitionRepository
	Memory      ports.MemoryStore
	Notifier    ports.TransitionNotifier
	Catalog     []emotion.Trigger
	Locks       *keylock.KeyLock
	Logger      *slog.Logger
	Now         func() time.Time
	NewID       func() string
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

func (u UseCase) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}

// ProcessInteraction applies the best-matching trigger for one player action
// against one NPC. No matching trigger is a no-op, not an error. State,
// reputation, and the transition log persist atomically; the memory write and
// notification hook on significant transitions are best-effort.
func (u UseCase) ProcessInteraction(ctx context.Context, req Request) (Response, error) {
	req.NPCID = strings.TrimSpace(req.NPCID)
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.ActionName = strings.TrimSpace(req.ActionName)
	if req.NPCID == "" || req.PlayerID == "" || req.ActionName == "" {
		return Response{}, ErrInvalidRequest
	}

	if u.Locks != nil {
		u.Locks.Lock(req.NPCID)
		defer u.Locks.Unlock(req.NPCID)
	}

	rec, err := u.StateRepo.GetByNPCID(ctx, req.NPCID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, ports.ErrUnknownEntity
		}
		return Response{}, err
	}

	trig, ok := emotion.Select(u.Catalog, req.ActionName, req.Context)
	if !ok {
		return Response{State: rec.State, ReputationDelta: 0}, nil
	}

	now := u.now()
	from := rec.State
	to := from.WithDeltas(trig.Deltas)

	intensity := trig.ReputationImpact
	if intensity < 0 {
		intensity = -intensity
	}
	tr := emotion.Transition{
		ID:         u.newID(),
		NPCID:      req.NPCID,
		PlayerID:   req.PlayerID,
		From:       from,
		To:         to,
		Event:      req.ActionName,
		Intensity:  intensity,
		Context:    encodeContext(req.Context),
		OccurredAt: now,
	}

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		next := rec
		next.State = to
		next.Version = rec.Version + 1
		next.UpdatedAt = now
		if err := u.StateRepo.SaveWithVersion(txCtx, next, rec.Version); err != nil {
			return err
		}

		rep, err := u.Reputations.GetByPlayerID(txCtx, req.PlayerID)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				return err
			}
			rep = reputation.New(req.PlayerID)
		}
		rep.ApplyImpact(req.NPCID, trig.ReputationImpact, now)
		if err := u.Reputations.Save(txCtx, rep); err != nil {
			return err
		}

		return u.Transitions.Append(txCtx, tr)
	})
	if err != nil {
		return Response{}, err
	}

	if tr.Significant() {
		u.recordSignificantTransition(ctx, req, trig, tr)
	}

	return Response{State: to, ReputationDelta: trig.ReputationImpact, Transition: &tr}, nil
}

// recordSignificantTransition writes the memory entry and fires the
// notification hook. Both are fire-and-continue: a failure here must never
// fail the interaction that caused it.
func (u UseCase) recordSignificantTransition(ctx context.Context, req Request, trig emotion.Trigger, tr emotion.Transition) {
	if u.Memory != nil {
		err := u.Memory.AddMemory(ctx, ports.MemoryRecord{
			NPCID:           req.NPCID,
			RelatedAddress:  req.PlayerID,
			MemoryType:      "mood_shift",
			Content:         trig.Description,
			EmotionalWeight: tr.Intensity,
			Tags:            []string{req.ActionName},
			IsPositive:      trig.ReputationImpact > 0,
		})
		if err != nil {
			u.logger().Warn("mood memory write failed", "npc_id", req.NPCID, "err", err)
		}
	}
	if u.Notifier != nil {
		if err := u.Notifier.NotifyTransition(ctx, tr); err != nil {
			u.logger().Warn("transition notification failed", "npc_id", req.NPCID, "err", err)
		}
	}
}

// InitializeNPC seeds an emotional state from an archetype and quirks.
// Initializing an existing NPC returns ErrConflict.
func (u UseCase) InitializeNPC(ctx context.Context, req InitRequest) (ports.NPCStateRecord, error) {
	req.NPCID = strings.TrimSpace(req.NPCID)
	req.Archetype = strings.TrimSpace(req.Archetype)
	if req.NPCID == "" || req.Archetype == "" {
		return ports.NPCStateRecord{}, ErrInvalidRequest
	}

	rec := ports.NPCStateRecord{
		NPCID:     req.NPCID,
		Archetype: req.Archetype,
		Backstory: req.Backstory,
		Quirks:    req.Quirks,
		State:     emotion.NewState(req.Archetype, req.Quirks),
		Version:   1,
		UpdatedAt: u.now(),
	}
	if err := u.StateRepo.SaveWithVersion(ctx, rec, 0); err != nil {
		return ports.NPCStateRecord{}, err
	}
	return rec, nil
}

// ApplyDecay moves an idle NPC's mood toward neutral for the elapsed hours.
func (u UseCase) ApplyDecay(ctx context.Context, npcID string, hours float64) (emotion.State, error) {
	npcID = strings.TrimSpace(npcID)
	if npcID == "" || hours < 0 {
		return emotion.State{}, ErrInvalidRequest
	}

	if u.Locks != nil {
		u.Locks.Lock(npcID)
		defer u.Locks.Unlock(npcID)
	}

	rec, err := u.StateRepo.GetByNPCID(ctx, npcID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return emotion.State{}, ports.ErrUnknownEntity
		}
		return emotion.State{}, err
	}

	decayed := rec.State.Decayed(hours)
	if decayed == rec.State {
		return decayed, nil
	}

	next := rec
	next.State = decayed
	next.Version = rec.Version + 1
	next.UpdatedAt = u.now()
	if err := u.StateRepo.SaveWithVersion(ctx, next, rec.Version); err != nil {
		return emotion.State{}, err
	}
	return decayed, nil
}

// Influence returns the composite behavioral scores for an NPC.
func (u UseCase) Influence(ctx context.Context, npcID string) (emotion.Influence, error) {
	rec, err := u.StateRepo.GetByNPCID(ctx, npcID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return emotion.Influence{}, ports.ErrUnknownEntity
		}
		return emotion.Influence{}, err
	}
	return rec.State.Influence(), nil
}

// GetState reads one NPC's current record.
func (u UseCase) GetState(ctx context.Context, npcID string) (ports.NPCStateRecord, error) {
	rec, err := u.StateRepo.GetByNPCID(ctx, npcID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.NPCStateRecord{}, ports.ErrUnknownEntity
		}
		return ports.NPCStateRecord{}, err
	}
	return rec, nil
}

// GetReputation reads one player's reputation. A player with no recorded
// interactions reads as a fresh neutral aggregate.
func (u UseCase) GetReputation(ctx context.Context, playerID string) (reputation.PlayerReputation, error) {
	rep, err := u.Reputations.GetByPlayerID(ctx, playerID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return reputation.New(playerID), nil
		}
		return reputation.PlayerReputation{}, err
	}
	return rep, nil
}

const defaultMoodHistoryLimit = 50

// MoodHistory lists an NPC's most recent transitions, newest first.
func (u UseCase) MoodHistory(ctx context.Context, npcID string, limit int) ([]emotion.Transition, error) {
	if limit <= 0 {
		limit = defaultMoodHistoryLimit
	}
	if _, err := u.StateRepo.GetByNPCID(ctx, npcID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrUnknownEntity
		}
		return nil, err
	}
	return u.Transitions.ListByNPCID(ctx, npcID, limit)
}

func encodeContext(ctx map[string]any) string {
	if len(ctx) == 0 {
		return ""
	}
	b, err := json.Marshal(ctx)
	if err != nil {
		return ""
	}
	return string(b)
}
