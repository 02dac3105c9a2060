package models

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Job represents an async operation, such as a capture scan.
type Job struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`   // "scan"
	Target     string     `json:"target"` // what the job works on, e.g. a capture directory
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	Output     []string   `json:"output"`
	Result     any        `json:"result,omitempty"`
	cancel     context.CancelFunc
	mu         sync.Mutex
}

// AppendLog adds a log line to the job output.
func (j *Job) AppendLog(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Output = append(j.Output, line)
}

// LogsSince returns log lines starting from the given index.
func (j *Job) LogsSince(offset int) []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if offset >= len(j.Output) {
		return nil
	}
	lines := make([]string, len(j.Output)-offset)
	copy(lines, j.Output[offset:])
	return lines
}

// Context returns a context that is cancelled when the job is.
func (j *Job) Context() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cancel = cancel
	return ctx
}

// State returns the job status and whether the job has finished.
func (j *Job) State() (status string, done bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status, j.Status != StatusRunning
}

// Snapshot returns a copy of the job safe to serialize while it runs.
func (j *Job) Snapshot() *Job {
	j.mu.Lock()
	defer j.mu.Unlock()
	return &Job{
		ID:         j.ID,
		Type:       j.Type,
		Target:     j.Target,
		Status:     j.Status,
		StartedAt:  j.StartedAt,
		FinishedAt: j.FinishedAt,
		Error:      j.Error,
		Output:     append([]string{}, j.Output...),
		Result:     j.Result,
	}
}

// Complete marks the job as completed with its result. A job that was
// cancelled or already finished is left as is.
func (j *Job) Complete(result any) {
	j.finish(StatusCompleted, "", result)
}

// Fail marks the job as failed with an error message.
func (j *Job) Fail(err string) {
	j.finish(StatusFailed, err, nil)
}

// Cancel stops the job. It reports false when the job was not running.
func (j *Job) Cancel() bool {
	j.mu.Lock()
	if j.Status != StatusRunning {
		j.mu.Unlock()
		return false
	}
	cancel := j.cancel
	j.mu.Unlock()
	j.finish(StatusCancelled, "cancelled by user", nil)
	if cancel != nil {
		cancel()
	}
	return true
}

func (j *Job) finish(status, err string, result any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status != StatusRunning {
		return
	}
	j.Status = status
	j.Error = err
	j.Result = result
	now := time.Now()
	j.FinishedAt = &now
	if j.cancel != nil {
		j.cancel()
	}
}

// JobStore is an in-memory thread-safe store for jobs.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

// Create adds a new running job, assigning it a UUID.
func (s *JobStore) Create(jobType, target string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Target:    target,
		Status:    StatusRunning,
		StartedAt: time.Now(),
		Output:    []string{},
	}
	s.jobs[j.ID] = j
	return j
}

// Get returns a job by ID.
func (s *JobStore) Get(id string) *Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[id]
}

// List returns snapshots of all jobs, most recent first.
func (s *JobStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		result = append(result, j.Snapshot())
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].StartedAt.After(result[b].StartedAt)
	})
	return result
}
