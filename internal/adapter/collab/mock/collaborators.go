// Package mock provides canned pipeline collaborators for tests.
package mock

import (
	"context"

	"npcmind/internal/app/ports"
)

type Perception struct {
	Snapshot ports.GameStateSnapshot
	Err      error
}

func (p Perception) Observe(_ context.Context, npcID string) (ports.GameStateSnapshot, error) {
	if p.Err != nil {
		return ports.GameStateSnapshot{}, p.Err
	}
	s := p.Snapshot
	s.NPCID = npcID
	return s, nil
}

type Planner struct {
	Out ports.Plan
	Err error
}

func (p Planner) Plan(_ context.Context, _ ports.GameStateSnapshot, taskType string, _ string) (ports.Plan, error) {
	if p.Err != nil {
		return ports.Plan{}, p.Err
	}
	out := p.Out
	out.TaskType = taskType
	return out, nil
}

type Executor struct {
	Result ports.ExecutionResult
	Err    error
}

func (e Executor) Execute(_ context.Context, plan ports.Plan) (ports.ExecutionResult, error) {
	if e.Err != nil {
		return ports.ExecutionResult{}, e.Err
	}
	out := e.Result
	out.PlanID = plan.ID
	return out, nil
}

type Referee struct {
	Final ports.FinalResult
	Err   error
}

func (r Referee) Validate(_ context.Context, _ ports.ExecutionResult) (ports.FinalResult, error) {
	if r.Err != nil {
		return ports.FinalResult{}, r.Err
	}
	return r.Final, nil
}
