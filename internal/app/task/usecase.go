// Package task orchestrates the per-request pipeline
// perceive → plan → act → validate → record. Every executed task invokes the
// emotion engine and appends to the action log exactly once.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"npcmind/internal/app/detect"
	"npcmind/internal/app/interaction"
	"npcmind/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid task request")

// StageError wraps a collaborator failure with the stage it happened in.
// It unwraps to both the cause and ErrUpstreamFailure.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{ports.ErrUpstreamFailure, e.Err}
}

type UseCase struct {
	Interaction interaction.UseCase
	Detector    detect.UseCase
	Perception  ports.Perception
	Planner     ports.Planner
	Executor    ports.ActionExecutor
	Referee     ports.Referee
	Memory      ports.MemoryStore
	Metrics     ports.TaskMetrics

	// StageTimeout bounds each collaborator call; expiry is a stage failure.
	StageTimeout time.Duration

	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
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

// Execute runs one task through the full pipeline. Stage ordering is strict
// and sequential per task; tasks for different NPCs may run concurrently
// (per-NPC state writes serialize inside the emotion engine).
//
// A collaborator failure yields a Response with Success=false rather than an
// error; emotional and reputation state already written before the failure is
// intentionally not rolled back. Unknown NPCs surface as ErrUnknownEntity.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	tc, err := u.ValidateRequest(req)
	if err != nil {
		return Response{}, err
	}

	steps := []struct {
		name string
		next Status
		run  func(context.Context, *TaskContext) error
	}{
		{"perceive", StatusPerceived, u.Perceive},
		{"plan", StatusPlanned, u.Plan},
		{"execute", StatusExecuted, u.ExecutePlan},
		{"validate", StatusValidated, u.ValidateResult},
	}
	for _, step := range steps {
		if err := step.run(ctx, &tc); err != nil {
			return u.failTask(ctx, &tc, step.name, err)
		}
		tc.Status = step.next
	}

	if err := u.Record(ctx, &tc); err != nil {
		if errors.Is(err, ports.ErrUnknownEntity) {
			u.logger().Error("task against unknown npc", "task_id", tc.In.TaskID, "npc_id", tc.In.NPCID)
			u.writeFailureMemory(ctx, &tc, err)
			return Response{}, err
		}
		return u.failTask(ctx, &tc, "record", err)
	}
	tc.Status = StatusRecorded

	u.writeCompletionMemory(ctx, &tc)
	if u.Metrics != nil {
		u.Metrics.RecordCompleted(tc.In.Req.Type)
	}
	tc.Status = StatusCompleted

	return Response{
		TaskID:          tc.In.TaskID,
		Status:          tc.Status,
		Success:         tc.View.Final.Success,
		Message:         tc.View.Final.Message,
		Output:          tc.View.Final.Output,
		State:           tc.View.NewState,
		ReputationDelta: tc.View.ReputationDelta,
		Detections:      tc.View.Detections,
	}, nil
}

// failTask drives the Failed terminal state: a best-effort memory write
// recording the failure, then a caller-visible result with Success=false.
func (u UseCase) failTask(ctx context.Context, tc *TaskContext, stage string, cause error) (Response, error) {
	tc.Status = StatusFailed
	err := &StageError{Stage: stage, Err: cause}
	u.logger().Warn("task failed", "task_id", tc.In.TaskID, "stage", stage, "err", cause)

	u.writeFailureMemory(ctx, tc, err)
	if u.Metrics != nil {
		u.Metrics.RecordFailed(stage)
	}

	return Response{
		TaskID:          tc.In.TaskID,
		Status:          StatusFailed,
		Success:         false,
		Message:         err.Error(),
		State:           tc.View.NewState,
		ReputationDelta: tc.View.ReputationDelta,
		Detections:      tc.View.Detections,
	}, nil
}

func (u UseCase) writeFailureMemory(ctx context.Context, tc *TaskContext, cause error) {
	if u.Memory == nil {
		return
	}
	err := u.Memory.AddMemory(ctx, ports.MemoryRecord{
		NPCID:          tc.In.NPCID,
		RelatedAddress: tc.In.PlayerID,
		MemoryType:     "task_failure",
		Content:        cause.Error(),
		Tags:           []string{tc.In.Req.Type},
		IsPositive:     false,
	})
	if err != nil {
		u.logger().Warn("failure memory write failed", "task_id", tc.In.TaskID, "err", err)
	}
}

func (u UseCase) writeCompletionMemory(ctx context.Context, tc *TaskContext) {
	if u.Memory == nil {
		return
	}
	err := u.Memory.AddMemory(ctx, ports.MemoryRecord{
		NPCID:          tc.In.NPCID,
		RelatedAddress: tc.In.PlayerID,
		MemoryType:     "task_completed",
		Content:        tc.View.Final.Message,
		Tags:           []string{tc.In.Req.Type},
		IsPositive:     tc.View.Final.Success,
	})
	if err != nil {
		u.logger().Warn("completion memory write failed", "task_id", tc.In.TaskID, "err", err)
	}
}
