package task

import (
	"time"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/analytics"
	"npcmind/internal/domain/emotion"
)

// Status tracks the task through its pipeline. Completed and Failed are
// terminal; Failed is reachable from any stage.
type Status string

const (
	StatusReceived  Status = "received"
	StatusPerceived Status = "perceived"
	StatusPlanned   Status = "planned"
	StatusExecuted  Status = "executed"
	StatusValidated Status = "validated"
	StatusRecorded  Status = "recorded"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Request struct {
	Type          string
	Params        map[string]any
	NPCID         string
	PlayerAddress string
	SessionID     string
}

type Response struct {
	TaskID          string                       `json:"task_id"`
	Status          Status                       `json:"status"`
	Success         bool                         `json:"success"`
	Message         string                       `json:"message,omitempty"`
	Output          map[string]any               `json:"output,omitempty"`
	State           *emotion.State               `json:"state,omitempty"`
	ReputationDelta int                          `json:"reputation_delta"`
	Detections      []analytics.ExploitDetection `json:"detections,omitempty"`
}

// TaskContext carries one task through the pipeline stages.
type TaskContext struct {
	In     TaskInput
	View   TaskView
	Status Status
}

type TaskInput struct {
	Req       Request
	TaskID    string
	NPCID     string
	PlayerID  string
	SessionID string
	NowAt     time.Time
}

type TaskView struct {
	Observation ports.GameStateSnapshot
	Plan        ports.Plan
	ExecResult  ports.ExecutionResult
	Final       ports.FinalResult

	NewState        *emotion.State
	ReputationDelta int
	Detections      []analytics.ExploitDetection
}
