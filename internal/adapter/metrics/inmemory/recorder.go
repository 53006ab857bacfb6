package inmemory

import "sync"

type Snapshot struct {
	TaskTotal     uint64            `json:"task_total"`
	TaskCompleted uint64            `json:"task_completed"`
	TaskFailed    uint64            `json:"task_failed"`
	ByTaskType    map[string]uint64 `json:"by_task_type"`
	FailedByStage map[string]uint64 `json:"failed_by_stage"`
	Detections    map[string]uint64 `json:"detections_by_pattern"`
}

type Recorder struct {
	mu            sync.Mutex
	completed     uint64
	failed        uint64
	byTaskType    map[string]uint64
	failedByStage map[string]uint64
	detections    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTaskType:    map[string]uint64{},
		failedByStage: map[string]uint64{},
		detections:    map[string]uint64{},
	}
}

func (r *Recorder) RecordCompleted(taskType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
	r.byTaskType[taskType]++
}

func (r *Recorder) RecordFailed(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
	r.failedByStage[stage]++
}

func (r *Recorder) RecordDetection(pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detections[pattern]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TaskCompleted: r.completed,
		TaskFailed:    r.failed,
		TaskTotal:     r.completed + r.failed,
		ByTaskType:    make(map[string]uint64, len(r.byTaskType)),
		FailedByStage: make(map[string]uint64, len(r.failedByStage)),
		Detections:    make(map[string]uint64, len(r.detections)),
	}
	for k, v := range r.byTaskType {
		out.ByTaskType[k] = v
	}
	for k, v := range r.failedByStage {
		out.FailedByStage[k] = v
	}
	for k, v := range r.detections {
		out.Detections[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
