package ports

import (
	"context"

	"npcmind/internal/domain/emotion"
)

// GameStateSnapshot is what perception reports before planning.
type GameStateSnapshot struct {
	NPCID      string         `json:"npc_id"`
	ObservedAt int64          `json:"observed_at"`
	Facts      map[string]any `json:"facts,omitempty"`
}

// Plan is the planner's output for one task.
type Plan struct {
	ID       string         `json:"id"`
	TaskType string         `json:"task_type"`
	Steps    []string       `json:"steps,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// ExecutionResult is the raw outcome of running a plan, before validation.
type ExecutionResult struct {
	PlanID     string         `json:"plan_id"`
	Output     map[string]any `json:"output,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// FinalResult is the referee's verdict on an execution.
type FinalResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Output  map[string]any `json:"output,omitempty"`
}

// Perception observes the game state once per task before planning.
type Perception interface {
	Observe(ctx context.Context, npcID string) (GameStateSnapshot, error)
}

// Planner turns an observation plus task intent into a plan.
type Planner interface {
	Plan(ctx context.Context, observation GameStateSnapshot, taskType string, contextJSON string) (Plan, error)
}

// ActionExecutor runs a plan.
type ActionExecutor interface {
	Execute(ctx context.Context, plan Plan) (ExecutionResult, error)
}

// Referee validates an execution result into a final verdict.
type Referee interface {
	Validate(ctx context.Context, result ExecutionResult) (FinalResult, error)
}

// MemoryRecord is one entry written to the NPC's persistent memory.
type MemoryRecord struct {
	NPCID           string   `json:"npc_id"`
	RelatedAddress  string   `json:"related_address"`
	MemoryType      string   `json:"memory_type"`
	Content         string   `json:"content"`
	EmotionalWeight int      `json:"emotional_weight"`
	Tags            []string `json:"tags,omitempty"`
	IsPositive      bool     `json:"is_positive"`
}

// MemoryStore persists NPC memories. Writes are best-effort for callers:
// a failure is logged and swallowed, never surfaced to the player.
type MemoryStore interface {
	AddMemory(ctx context.Context, record MemoryRecord) error
}

// TransitionNotifier is the fire-and-continue hook invoked on significant
// mood transitions. Failures must never fail the parent interaction.
type TransitionNotifier interface {
	NotifyTransition(ctx context.Context, tr emotion.Transition) error
}

// TriggerProvider supplies the read-only trigger catalog.
type TriggerProvider interface {
	Catalog(ctx context.Context) ([]emotion.Trigger, error)
}
