package ports

import (
	"context"
	"time"

	"npcmind/internal/domain/analytics"
	"npcmind/internal/domain/emotion"
	"npcmind/internal/domain/reputation"
)

// NPCStateRecord is the persisted emotional state aggregate for one NPC.
// Version backs optimistic concurrency on writes.
type NPCStateRecord struct {
	NPCID     string        `json:"npc_id"`
	Archetype string        `json:"archetype"`
	Backstory string        `json:"backstory,omitempty"`
	Quirks    []string      `json:"quirks,omitempty"`
	State     emotion.State `json:"state"`
	Version   int64         `json:"version"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type EmotionStateRepository interface {
	GetByNPCID(ctx context.Context, npcID string) (NPCStateRecord, error)
	// SaveWithVersion creates the record when expectedVersion is 0 and
	// otherwise updates it only if the stored version matches, returning
	// ErrConflict on a mismatch.
	SaveWithVersion(ctx context.Context, record NPCStateRecord, expectedVersion int64) error
}

type ReputationRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (reputation.PlayerReputation, error)
	Save(ctx context.Context, rep reputation.PlayerReputation) error
}

type TransitionRepository interface {
	Append(ctx context.Context, tr emotion.Transition) error
	ListByNPCID(ctx context.Context, npcID string, limit int) ([]emotion.Transition, error)
	// PruneBefore removes transitions older than the horizon and reports how
	// many were dropped.
	PruneBefore(ctx context.Context, horizon time.Time) (int64, error)
}

type ActionLogRepository interface {
	Append(ctx context.Context, action analytics.GameAction) error
	// ListByPlayerID returns the player's full history ordered oldest first.
	ListByPlayerID(ctx context.Context, playerID string) ([]analytics.GameAction, error)
	// ListBetween returns actions in [from, to); zero bounds are open.
	ListBetween(ctx context.Context, from, to time.Time) ([]analytics.GameAction, error)
	PruneBefore(ctx context.Context, horizon time.Time) (int64, error)
}

type SessionRepository interface {
	EnsureActive(ctx context.Context, sessionID, playerID string, startedAt time.Time) error
	Close(ctx context.Context, sessionID string, endedAt time.Time) error
	ListBetween(ctx context.Context, from, to time.Time) ([]analytics.SessionRecord, error)
}

type ExploitRepository interface {
	Save(ctx context.Context, detection analytics.ExploitDetection) error
	ListBetween(ctx context.Context, from, to time.Time) ([]analytics.ExploitDetection, error)
}

type PlayerCredentialRecord struct {
	PlayerAddress string
	KeySalt       []byte
	KeyHash       []byte
	Status        string
	CreatedAt     time.Time
}

type PlayerCredentialRepository interface {
	Create(ctx context.Context, credential PlayerCredentialRecord) error
	GetByAddress(ctx context.Context, playerAddress string) (PlayerCredentialRecord, error)
}
