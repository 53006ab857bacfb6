package analytics

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	rapidFireWindow    = 10 * time.Second
	rapidFireLimit     = 20
	identicalWindow    = 10
	identicalMinimum   = 5
	timingFloor        = 100 * time.Millisecond
	successRateMinimum = 20
	successRateLimit   = 0.95
	evidenceWindowSize = 10
)

// CheckPatterns runs the full battery of exploit checks against one player's
// action history. History must be ordered oldest first and include the
// triggering action as its last element. Each positive check yields one
// detection; the battery never dedups against earlier ticks.
func CheckPatterns(history []GameAction, trigger GameAction) []ExploitDetection {
	var out []ExploitDetection
	if d, ok := checkRapidFire(history, trigger); ok {
		out = append(out, d)
	}
	if d, ok := checkIdenticalParams(history, trigger); ok {
		out = append(out, d)
	}
	if d, ok := checkImpossibleTiming(history, trigger); ok {
		out = append(out, d)
	}
	if d, ok := checkSuccessRate(history, trigger); ok {
		out = append(out, d)
	}
	return out
}

// checkRapidFire flags more than 20 actions inside the trailing 10 seconds.
func checkRapidFire(history []GameAction, trigger GameAction) (ExploitDetection, bool) {
	cutoff := trigger.OccurredAt.Add(-rapidFireWindow)
	count := 0
	for _, a := range history {
		if !a.OccurredAt.Before(cutoff) {
			count++
		}
	}
	if count <= rapidFireLimit {
		return ExploitDetection{}, false
	}
	return newDetection(
		PatternRapidFire, SeverityMedium, history, trigger,
		fmt.Sprintf("%d actions within %s", count, rapidFireWindow),
	), true
}

// checkIdenticalParams flags a full window of byte-identical parameter sets.
// Fewer than a full window never flags: nine identical actions in a row are
// still below the bar, ten are not.
func checkIdenticalParams(history []GameAction, trigger GameAction) (ExploitDetection, bool) {
	window := lastN(history, identicalWindow)
	if len(window) < identicalWindow || len(window) < identicalMinimum {
		return ExploitDetection{}, false
	}
	first := serializeParams(window[0].Params)
	for _, a := range window[1:] {
		if serializeParams(a.Params) != first {
			return ExploitDetection{}, false
		}
	}
	return newDetection(
		PatternIdenticalParams, SeverityHigh, history, trigger,
		fmt.Sprintf("last %d actions carry identical parameters", len(window)),
	), true
}

// checkImpossibleTiming flags two consecutive actions under 100ms apart.
func checkImpossibleTiming(history []GameAction, trigger GameAction) (ExploitDetection, bool) {
	window := lastN(history, 2)
	if len(window) < 2 {
		return ExploitDetection{}, false
	}
	delta := window[1].OccurredAt.Sub(window[0].OccurredAt)
	if delta < 0 {
		delta = -delta
	}
	if delta >= timingFloor {
		return ExploitDetection{}, false
	}
	return newDetection(
		PatternTiming, SeverityHigh, history, trigger,
		fmt.Sprintf("consecutive actions %s apart", delta),
	), true
}

// checkSuccessRate flags a success fraction above 0.95 once at least 20
// actions exist.
func checkSuccessRate(history []GameAction, trigger GameAction) (ExploitDetection, bool) {
	if len(history) < successRateMinimum {
		return ExploitDetection{}, false
	}
	succeeded := 0
	for _, a := range history {
		if a.Success {
			succeeded++
		}
	}
	rate := float64(succeeded) / float64(len(history))
	if rate <= successRateLimit {
		return ExploitDetection{}, false
	}
	return newDetection(
		PatternSuccessRate, SeverityMedium, history, trigger,
		fmt.Sprintf("success rate %.3f over %d actions", rate, len(history)),
	), true
}

func newDetection(pattern string, sev Severity, history []GameAction, trigger GameAction, desc string) ExploitDetection {
	return ExploitDetection{
		Pattern:     pattern,
		Severity:    sev,
		PlayerID:    trigger.PlayerID,
		NPCID:       trigger.NPCID,
		Description: desc,
		Evidence: Evidence{
			Pattern: pattern,
			Window:  lastN(history, evidenceWindowSize),
			Trigger: trigger,
		},
		DetectedAt: trigger.OccurredAt,
		Status:     StatusDetected,
	}
}

func lastN(actions []GameAction, n int) []GameAction {
	if len(actions) <= n {
		return actions
	}
	return actions[len(actions)-n:]
}

// serializeParams produces a stable byte representation of a parameter map.
// json.Marshal sorts map keys, so equal maps serialize identically.
func serializeParams(params map[string]any) string {
	if len(params) == 0 {
		return "{}"
	}
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%v", params)
	}
	return string(b)
}
