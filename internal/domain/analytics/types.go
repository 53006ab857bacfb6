// Package analytics defines the action/session records the behavioral core
// emits and the pure pattern checks and fairness computations that run over
// them.
package analytics

import "time"

// GameAction is one executed task, immutable once appended to the action log.
type GameAction struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	PlayerID    string         `json:"player_id"`
	NPCID       string         `json:"npc_id"`
	Type        string         `json:"type"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Params      map[string]any `json:"params,omitempty"`
	Result      map[string]any `json:"result,omitempty"`
	Success     bool           `json:"success"`
	ExecutionMS int64          `json:"execution_ms"`
	Cost        float64        `json:"cost,omitempty"`
}

// SessionRecord tracks one player session. EndedAt is nil while active.
type SessionRecord struct {
	ID        string     `json:"id"`
	PlayerID  string     `json:"player_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Ended reports whether the session has closed.
func (s SessionRecord) Ended() bool {
	return s.EndedAt != nil
}

// DurationMS returns the session length in milliseconds (0 while active).
func (s SessionRecord) DurationMS() int64 {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt).Milliseconds()
}

// Severity grades a detection.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DetectionStatus is the moderation lifecycle of a detection. Only the
// initial value is assigned here; later transitions belong to an external
// moderation process.
type DetectionStatus string

const (
	StatusDetected      DetectionStatus = "detected"
	StatusInvestigating DetectionStatus = "investigating"
	StatusConfirmed     DetectionStatus = "confirmed"
	StatusFalsePositive DetectionStatus = "false_positive"
)

// Exploit pattern names.
const (
	PatternRapidFire       = "rapid_fire_actions"
	PatternIdenticalParams = "identical_parameters"
	PatternTiming          = "impossible_timing"
	PatternSuccessRate     = "unusual_success_rate"
)

// Evidence is the action window that triggered a detection.
type Evidence struct {
	Pattern string       `json:"pattern"`
	Window  []GameAction `json:"window"`
	Trigger GameAction   `json:"trigger"`
}

// ExploitDetection flags an anomalous action pattern. Detections are purely
// additive: the same pattern firing on subsequent actions produces repeated
// records, each evidence of continued behavior.
type ExploitDetection struct {
	ID          string          `json:"id"`
	Pattern     string          `json:"pattern"`
	Severity    Severity        `json:"severity"`
	PlayerID    string          `json:"player_id"`
	NPCID       string          `json:"npc_id,omitempty"`
	Description string          `json:"description"`
	Evidence    Evidence        `json:"evidence"`
	DetectedAt  time.Time       `json:"detected_at"`
	Status      DetectionStatus `json:"status"`
}

// MetricStatus is the threshold-derived health of a fairness metric.
type MetricStatus string

const (
	MetricHealthy  MetricStatus = "healthy"
	MetricWarning  MetricStatus = "warning"
	MetricCritical MetricStatus = "critical"
)

// Fairness metric names. All four are always emitted together; each
// computation replaces the previous snapshot for its name.
const (
	MetricWinRateVariance    = "win_rate_variance"
	MetricAvgSessionDuration = "average_session_duration"
	MetricOverallSuccessRate = "overall_success_rate"
	MetricExploitRate        = "exploit_detection_rate"
)

// FairnessMetric is one recomputed health indicator.
type FairnessMetric struct {
	Name        string       `json:"name"`
	Value       float64      `json:"value"`
	Threshold   float64      `json:"threshold"`
	Status      MetricStatus `json:"status"`
	Description string       `json:"description"`
	ComputedAt  time.Time    `json:"computed_at"`
}
