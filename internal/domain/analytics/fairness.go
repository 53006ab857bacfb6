package analytics

import "time"

const (
	winRateVarianceThreshold   = 0.10
	sessionDurationThresholdMS = 300000
	successRateCritical        = 0.30
	successRateWarning         = 0.50
	exploitRateThreshold       = 0.01
	exploitRateWindow          = 24 * time.Hour
)

// ComputeFairnessMetrics derives all four fairness metrics from the current
// logs. The four are always emitted together and replace any previous
// snapshot; nothing here accumulates.
func ComputeFairnessMetrics(actions []GameAction, sessions []SessionRecord, exploits []ExploitDetection, now time.Time) []FairnessMetric {
	return []FairnessMetric{
		winRateVariance(actions, now),
		averageSessionDuration(sessions, now),
		overallSuccessRate(actions, now),
		exploitDetectionRate(actions, exploits, now),
	}
}

// winRateVariance computes the population variance of per-player win rates
// over duel and quest actions only.
func winRateVariance(actions []GameAction, now time.Time) FairnessMetric {
	type tally struct{ wins, total int }
	perPlayer := map[string]*tally{}
	for _, a := range actions {
		if a.Type != "duel" && a.Type != "quest" {
			continue
		}
		t := perPlayer[a.PlayerID]
		if t == nil {
			t = &tally{}
			perPlayer[a.PlayerID] = t
		}
		t.total++
		if a.Success {
			t.wins++
		}
	}

	variance := 0.0
	if len(perPlayer) > 0 {
		rates := make([]float64, 0, len(perPlayer))
		mean := 0.0
		for _, t := range perPlayer {
			r := float64(t.wins) / float64(t.total)
			rates = append(rates, r)
			mean += r
		}
		mean /= float64(len(rates))
		for _, r := range rates {
			variance += (r - mean) * (r - mean)
		}
		variance /= float64(len(rates))
	}

	status := MetricHealthy
	if variance > winRateVarianceThreshold {
		status = MetricWarning
	}
	return FairnessMetric{
		Name:        MetricWinRateVariance,
		Value:       variance,
		Threshold:   winRateVarianceThreshold,
		Status:      status,
		Description: "population variance of per-player win rate over duel/quest actions",
		ComputedAt:  now,
	}
}

// averageSessionDuration reports the mean duration of ended sessions in
// milliseconds. With no ended sessions the metric reads 0 and stays healthy
// rather than alarming on an empty log.
func averageSessionDuration(sessions []SessionRecord, now time.Time) FairnessMetric {
	total := int64(0)
	ended := 0
	for _, s := range sessions {
		if !s.Ended() {
			continue
		}
		total += s.DurationMS()
		ended++
	}

	value := 0.0
	status := MetricHealthy
	if ended > 0 {
		value = float64(total) / float64(ended)
		if value < sessionDurationThresholdMS {
			status = MetricWarning
		}
	}
	return FairnessMetric{
		Name:        MetricAvgSessionDuration,
		Value:       value,
		Threshold:   sessionDurationThresholdMS,
		Status:      status,
		Description: "mean duration (ms) of ended sessions",
		ComputedAt:  now,
	}
}

// overallSuccessRate is successful actions over total actions. An empty log
// reads 0 and healthy.
func overallSuccessRate(actions []GameAction, now time.Time) FairnessMetric {
	value := 0.0
	status := MetricHealthy
	if len(actions) > 0 {
		succeeded := 0
		for _, a := range actions {
			if a.Success {
				succeeded++
			}
		}
		value = float64(succeeded) / float64(len(actions))
		switch {
		case value < successRateCritical:
			status = MetricCritical
		case value < successRateWarning:
			status = MetricWarning
		}
	}
	return FairnessMetric{
		Name:        MetricOverallSuccessRate,
		Value:       value,
		Threshold:   successRateWarning,
		Status:      status,
		Description: "successful actions / total actions",
		ComputedAt:  now,
	}
}

// exploitDetectionRate is detections in the trailing 24h over total actions,
// with a denominator floor of 1.
func exploitDetectionRate(actions []GameAction, exploits []ExploitDetection, now time.Time) FairnessMetric {
	cutoff := now.Add(-exploitRateWindow)
	recent := 0
	for _, e := range exploits {
		if !e.DetectedAt.Before(cutoff) {
			recent++
		}
	}
	denom := len(actions)
	if denom < 1 {
		denom = 1
	}
	value := float64(recent) / float64(denom)

	status := MetricHealthy
	if value > exploitRateThreshold {
		status = MetricWarning
	}
	return FairnessMetric{
		Name:        MetricExploitRate,
		Value:       value,
		Threshold:   exploitRateThreshold,
		Status:      status,
		Description: "exploit detections in the last 24h / total actions",
		ComputedAt:  now,
	}
}
