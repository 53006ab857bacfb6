// Package runtime provides deterministic in-process pipeline collaborators
// for demo runs without external perception/planning/chain services.
package runtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"npcmind/internal/app/ports"
)

type Provider struct {
	Now func() time.Time
}

func NewProvider() Provider {
	return Provider{Now: time.Now}
}

func (p Provider) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now()
}

func (p Provider) Observe(_ context.Context, npcID string) (ports.GameStateSnapshot, error) {
	return ports.GameStateSnapshot{
		NPCID:      npcID,
		ObservedAt: p.now().Unix(),
		Facts:      map[string]any{"source": "runtime"},
	}, nil
}

func (p Provider) Plan(_ context.Context, observation ports.GameStateSnapshot, taskType string, contextJSON string) (ports.Plan, error) {
	payload := map[string]any{}
	if contextJSON != "" {
		// Malformed context degrades to an empty payload instead of failing
		// the stage.
		_ = json.Unmarshal([]byte(contextJSON), &payload)
	}
	payload["npc_id"] = observation.NPCID
	return ports.Plan{
		ID:       uuid.NewString(),
		TaskType: taskType,
		Steps:    []string{"resolve_target", "apply_" + taskType},
		Payload:  payload,
	}, nil
}

func (p Provider) Execute(_ context.Context, plan ports.Plan) (ports.ExecutionResult, error) {
	output := make(map[string]any, len(plan.Payload))
	for k, v := range plan.Payload {
		output[k] = v
	}
	output["executed_steps"] = len(plan.Steps)
	return ports.ExecutionResult{
		PlanID:     plan.ID,
		Output:     output,
		DurationMS: 1,
	}, nil
}

func (p Provider) Validate(_ context.Context, result ports.ExecutionResult) (ports.FinalResult, error) {
	success := true
	if v, ok := result.Output["force_failure"].(bool); ok && v {
		success = false
	}
	message := "task executed"
	if !success {
		message = "task rejected by referee"
	}
	return ports.FinalResult{
		Success: success,
		Message: message,
		Output:  result.Output,
	}, nil
}
