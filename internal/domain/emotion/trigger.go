package emotion

import (
	"encoding/json"
	"math"
	"reflect"
)

// Op is the closed set of condition operators.
type Op string

const (
	OpEquals      Op = "eq"
	OpGreaterThan Op = "gt"
	OpLessThan    Op = "lt"
)

// Condition constrains a single context key. Comparisons are numeric;
// equality falls back to deep equality for non-numeric values.
type Condition struct {
	Op    Op  `json:"op"`
	Value any `json:"value"`
}

// Trigger is one declarative rule in the catalog: when Event fires and every
// condition holds against the interaction context, Deltas are applied to the
// NPC state and ReputationImpact to the player's standing.
type Trigger struct {
	Event            string               `json:"event"`
	Conditions       map[string]Condition `json:"conditions,omitempty"`
	Deltas           map[Dimension]int    `json:"deltas"`
	ReputationImpact int                  `json:"reputation_impact"`
	Description      string               `json:"description,omitempty"`
}

// Matches reports whether the trigger fires for the given event and context.
// A condition referencing a missing context key fails the whole match.
func (t Trigger) Matches(event string, ctx map[string]any) bool {
	if t.Event != event {
		return false
	}
	for key, cond := range t.Conditions {
		got, ok := ctx[key]
		if !ok {
			return false
		}
		if !cond.holds(got) {
			return false
		}
	}
	return true
}

func (c Condition) holds(got any) bool {
	switch c.Op {
	case OpGreaterThan, OpLessThan:
		gotNum, ok1 := toFloat(got)
		wantNum, ok2 := toFloat(c.Value)
		if !ok1 || !ok2 {
			return false
		}
		if c.Op == OpGreaterThan {
			return gotNum > wantNum
		}
		return gotNum < wantNum
	case OpEquals, "":
		gotNum, ok1 := toFloat(got)
		wantNum, ok2 := toFloat(c.Value)
		if ok1 && ok2 {
			return gotNum == wantNum
		}
		return reflect.DeepEqual(got, c.Value)
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Select picks the trigger to apply among all catalog entries matching the
// event and context: the one with the largest absolute reputation impact,
// ties resolved by catalog order. The second return is false when nothing
// matches.
func Select(catalog []Trigger, event string, ctx map[string]any) (Trigger, bool) {
	var best Trigger
	bestAbs := -1
	for _, t := range catalog {
		if !t.Matches(event, ctx) {
			continue
		}
		abs := int(math.Abs(float64(t.ReputationImpact)))
		if abs > bestAbs {
			best = t
			bestAbs = abs
		}
	}
	return best, bestAbs >= 0
}
