package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrUnknownEntity marks a call against an NPC or session that was never
	// initialized. Fatal to the single call, recovered at the orchestrator
	// boundary.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrUpstreamFailure marks a perception/planner/executor/referee error.
	// It propagates and drives the task to its Failed terminal state.
	ErrUpstreamFailure = errors.New("upstream failure")
)
