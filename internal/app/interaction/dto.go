package interaction

import "npcmind/internal/domain/emotion"

type Request struct {
	NPCID      string
	PlayerID   string
	ActionName string
	Context    map[string]any
}

type Response struct {
	State           emotion.State       `json:"state"`
	ReputationDelta int                 `json:"reputation_delta"`
	Transition      *emotion.Transition `json:"transition,omitempty"`
}

type InitRequest struct {
	NPCID     string
	Archetype string
	Backstory string
	Quirks    []string
}
