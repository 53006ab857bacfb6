package ports

// TaskMetrics counts orchestrator outcomes for the ops KPI endpoint.
type TaskMetrics interface {
	RecordCompleted(taskType string)
	RecordFailed(stage string)
	RecordDetection(pattern string)
}
