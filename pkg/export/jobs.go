package export

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of an export job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one asynchronous customer export.
type Job struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Status     JobStatus `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Error      string    `json:"error,omitempty"`
	Result     *Result   `json:"result,omitempty"`
}

// JobManager tracks export jobs in memory.
type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobManager creates an empty job manager.
func NewJobManager() *JobManager {
	return &JobManager{jobs: make(map[string]*Job)}
}

// Create registers a new pending job for a customer. Concurrent exports of
// one customer would write the same shapefile paths, so an existing pending
// or running job for the customer is returned instead, with created false.
func (m *JobManager) Create(customerID string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, job := range m.jobs {
		if job.CustomerID == customerID && (job.Status == JobPending || job.Status == JobRunning) {
			return snapshot(job), false
		}
	}

	job := &Job{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     JobPending,
		CreatedAt:  time.Now(),
	}
	m.jobs[job.ID] = job
	return snapshot(job), true
}

// Run executes a job's export synchronously, updating its status. Callers
// wanting asynchronous behavior run it in a goroutine. Only a pending job
// starts; running a job twice is a no-op.
func (m *JobManager) Run(ctx context.Context, jobID string, exporter *Exporter) {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok || job.Status != JobPending {
		m.mu.Unlock()
		return
	}
	job.Status = JobRunning
	job.StartedAt = time.Now()
	customerID := job.CustomerID
	m.mu.Unlock()

	result, err := exporter.ExportCustomer(ctx, customerID)

	m.mu.Lock()
	defer m.mu.Unlock()
	job.FinishedAt = time.Now()
	if err != nil {
		job.Status = JobFailed
		job.Error = err.Error()
		return
	}
	job.Status = JobCompleted
	job.Result = result
}

// Get returns a snapshot of a job, or false when unknown.
func (m *JobManager) Get(jobID string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, false
	}
	return snapshot(job), true
}

// List returns snapshots of all jobs, newest first.
func (m *JobManager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		out = append(out, snapshot(job))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func snapshot(job *Job) *Job {
	copied := *job
	return &copied
}
