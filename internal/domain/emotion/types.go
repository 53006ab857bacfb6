// Package emotion holds the emotional state model for NPCs: the eight
// bounded mood dimensions, the declarative trigger rules that mutate them,
// and the transition records produced by every mutation.
package emotion

import "time"

// Dimension names one of the eight mood axes.
type Dimension string

const (
	DimHappiness  Dimension = "happiness"
	DimAnger      Dimension = "anger"
	DimFear       Dimension = "fear"
	DimTrust      Dimension = "trust"
	DimExcitement Dimension = "excitement"
	DimSadness    Dimension = "sadness"
	DimDisgust    Dimension = "disgust"
	DimSurprise   Dimension = "surprise"
)

// Dimensions lists every mood axis in canonical order.
var Dimensions = []Dimension{
	DimHappiness, DimAnger, DimFear, DimTrust,
	DimExcitement, DimSadness, DimDisgust, DimSurprise,
}

const (
	// DimMin and DimMax bound every dimension. Values are clamped, never
	// rejected.
	DimMin = 0
	DimMax = 100

	// DimNeutral is the midpoint decay pulls toward.
	DimNeutral = 50
)

// State is one NPC's mood snapshot. Every field stays within [DimMin, DimMax]
// after every mutation.
type State struct {
	Happiness  int `json:"happiness"`
	Anger      int `json:"anger"`
	Fear       int `json:"fear"`
	Trust      int `json:"trust"`
	Excitement int `json:"excitement"`
	Sadness    int `json:"sadness"`
	Disgust    int `json:"disgust"`
	Surprise   int `json:"surprise"`
}

// NeutralState returns a state with every dimension at the midpoint.
func NeutralState() State {
	return State{
		Happiness:  DimNeutral,
		Anger:      DimNeutral,
		Fear:       DimNeutral,
		Trust:      DimNeutral,
		Excitement: DimNeutral,
		Sadness:    DimNeutral,
		Disgust:    DimNeutral,
		Surprise:   DimNeutral,
	}
}

// Get returns the value of one dimension. Unknown dimensions read as 0.
func (s State) Get(d Dimension) int {
	switch d {
	case DimHappiness:
		return s.Happiness
	case DimAnger:
		return s.Anger
	case DimFear:
		return s.Fear
	case DimTrust:
		return s.Trust
	case DimExcitement:
		return s.Excitement
	case DimSadness:
		return s.Sadness
	case DimDisgust:
		return s.Disgust
	case DimSurprise:
		return s.Surprise
	}
	return 0
}

func (s *State) set(d Dimension, v int) {
	v = ClampDim(v)
	switch d {
	case DimHappiness:
		s.Happiness = v
	case DimAnger:
		s.Anger = v
	case DimFear:
		s.Fear = v
	case DimTrust:
		s.Trust = v
	case DimExcitement:
		s.Excitement = v
	case DimSadness:
		s.Sadness = v
	case DimDisgust:
		s.Disgust = v
	case DimSurprise:
		s.Surprise = v
	}
}

// WithDeltas returns a copy of s with each delta applied and clamped
// independently. Dimensions absent from deltas are unchanged.
func (s State) WithDeltas(deltas map[Dimension]int) State {
	out := s
	for d, delta := range deltas {
		out.set(d, out.Get(d)+delta)
	}
	return out
}

// Clamped returns a copy of s with every dimension forced into range.
func (s State) Clamped() State {
	out := s
	for _, d := range Dimensions {
		out.set(d, out.Get(d))
	}
	return out
}

// ClampDim forces a single dimension value into [DimMin, DimMax].
func ClampDim(v int) int {
	if v < DimMin {
		return DimMin
	}
	if v > DimMax {
		return DimMax
	}
	return v
}

// Transition is the immutable record of one mood change. Intensity is the
// absolute value of the reputation impact that caused it.
type Transition struct {
	ID         string    `json:"id"`
	NPCID      string    `json:"npc_id"`
	PlayerID   string    `json:"player_id"`
	From       State     `json:"from"`
	To         State     `json:"to"`
	Event      string    `json:"event"`
	Intensity  int       `json:"intensity"`
	Context    string    `json:"context,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SignificanceThreshold marks transitions intense enough to warrant a memory
// write and a notification hook call.
const SignificanceThreshold = 50

// Significant reports whether the transition crosses the notification
// threshold.
func (t Transition) Significant() bool {
	return t.Intensity > SignificanceThreshold
}
