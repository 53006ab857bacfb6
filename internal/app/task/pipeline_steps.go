package task

import (
	"context"
	"encoding/json"
	"strings"

	"npcmind/internal/app/interaction"
	"npcmind/internal/domain/analytics"
)

func (u UseCase) ValidateRequest(req Request) (TaskContext, error) {
	req.Type = strings.TrimSpace(req.Type)
	req.NPCID = strings.TrimSpace(req.NPCID)
	req.PlayerAddress = strings.TrimSpace(req.PlayerAddress)
	req.SessionID = strings.TrimSpace(req.SessionID)

	if req.Type == "" || req.NPCID == "" || req.PlayerAddress == "" {
		return TaskContext{}, ErrInvalidRequest
	}
	if req.SessionID == "" {
		req.SessionID = "session-" + req.PlayerAddress
	}

	return TaskContext{
		In: TaskInput{
			Req:       req,
			TaskID:    u.newID(),
			NPCID:     req.NPCID,
			PlayerID:  req.PlayerAddress,
			SessionID: req.SessionID,
			NowAt:     u.now(),
		},
		Status: StatusReceived,
	}, nil
}

func (u UseCase) stageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.StageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.StageTimeout)
}

func (u UseCase) Perceive(ctx context.Context, tc *TaskContext) error {
	sctx, cancel := u.stageCtx(ctx)
	defer cancel()
	obs, err := u.Perception.Observe(sctx, tc.In.NPCID)
	if err != nil {
		return err
	}
	tc.View.Observation = obs
	return nil
}

func (u UseCase) Plan(ctx context.Context, tc *TaskContext) error {
	sctx, cancel := u.stageCtx(ctx)
	defer cancel()
	plan, err := u.Planner.Plan(sctx, tc.View.Observation, tc.In.Req.Type, encodeParams(tc.In.Req.Params))
	if err != nil {
		return err
	}
	tc.View.Plan = plan
	return nil
}

func (u UseCase) ExecutePlan(ctx context.Context, tc *TaskContext) error {
	sctx, cancel := u.stageCtx(ctx)
	defer cancel()
	start := u.now()
	result, err := u.Executor.Execute(sctx, tc.View.Plan)
	if err != nil {
		return err
	}
	if result.DurationMS == 0 {
		result.DurationMS = u.now().Sub(start).Milliseconds()
	}
	tc.View.ExecResult = result
	return nil
}

func (u UseCase) ValidateResult(ctx context.Context, tc *TaskContext) error {
	sctx, cancel := u.stageCtx(ctx)
	defer cancel()
	final, err := u.Referee.Validate(sctx, tc.View.ExecResult)
	if err != nil {
		return err
	}
	tc.View.Final = final
	return nil
}

// Record is the only stage with behavioral side effects: it runs the emotion
// engine and appends the executed action to the log exactly once. The
// interaction context merges the task params with the referee output so
// trigger conditions can reference either.
func (u UseCase) Record(ctx context.Context, tc *TaskContext) error {
	interactionCtx := make(map[string]any, len(tc.In.Req.Params)+len(tc.View.Final.Output)+1)
	for k, v := range tc.In.Req.Params {
		interactionCtx[k] = v
	}
	for k, v := range tc.View.Final.Output {
		interactionCtx[k] = v
	}
	interactionCtx["success"] = tc.View.Final.Success

	out, err := u.Interaction.ProcessInteraction(ctx, interaction.Request{
		NPCID:      tc.In.NPCID,
		PlayerID:   tc.In.PlayerID,
		ActionName: tc.In.Req.Type,
		Context:    interactionCtx,
	})
	if err != nil {
		return err
	}
	tc.View.NewState = &out.State
	tc.View.ReputationDelta = out.ReputationDelta

	detections, err := u.Detector.RecordAction(ctx, analytics.GameAction{
		ID:          u.newID(),
		SessionID:   tc.In.SessionID,
		PlayerID:    tc.In.PlayerID,
		NPCID:       tc.In.NPCID,
		Type:        tc.In.Req.Type,
		OccurredAt:  u.now(),
		Params:      tc.In.Req.Params,
		Result:      tc.View.Final.Output,
		Success:     tc.View.Final.Success,
		ExecutionMS: tc.View.ExecResult.DurationMS,
	})
	if err != nil {
		return err
	}
	tc.View.Detections = detections
	return nil
}

func encodeParams(params map[string]any) string {
	if len(params) == 0 {
		return "{}"
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "{}"
	}
	return string(b)
}
