package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pedro-visualizer/backend/internal/storage"
)

// Status represents the scan job status.
type Status string

const (
	StatusScanning Status = "scanning"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Job represents an asynchronous directory scan.
type Job struct {
	ID          string     `json:"id"`
	Directory   string     `json:"directory"`
	Status      Status     `json:"status"`
	Result      *Result    `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Manager runs scans in the background and keeps their results.
type Manager struct {
	jobs        map[string]*Job
	mu          sync.RWMutex
	fs          storage.FileSystem
	concurrency int
}

// NewManager creates a scan manager reading through fs.
func NewManager(fs storage.FileSystem, concurrency int) *Manager {
	return &Manager{
		jobs:        make(map[string]*Job),
		fs:          fs,
		concurrency: concurrency,
	}
}

// StartJob begins an asynchronous scan of dir. The returned job is a
// snapshot; poll GetJob for progress.
func (m *Manager) StartJob(dir string) Job {
	job := &Job{
		ID:        uuid.New().String(),
		Directory: dir,
		Status:    StatusScanning,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	snapshot := *job
	m.mu.Unlock()

	go m.runJob(job)

	return snapshot
}

// Scan runs a scan synchronously.
func (m *Manager) Scan(ctx context.Context, dir string) (*Result, error) {
	return EventNames(ctx, m.fs, dir, m.concurrency)
}

// GetJob returns a snapshot of a job by ID.
func (m *Manager) GetJob(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (m *Manager) runJob(job *Job) {
	fmt.Printf("[ScanJob %s] Scanning %s\n", job.ID[:8], job.Directory)

	defer func() {
		if r := recover(); r != nil {
			m.finish(job, nil, fmt.Errorf("scan panicked: %v", r))
		}
	}()

	res, err := m.Scan(context.Background(), job.Directory)
	m.finish(job, res, err)
}

func (m *Manager) finish(job *Job, res *Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	job.CompletedAt = &now
	if err != nil {
		job.Status = StatusError
		job.Error = err.Error()
		fmt.Printf("[ScanJob %s] Error: %v\n", job.ID[:8], err)
		return
	}
	job.Status = StatusComplete
	job.Result = res
	fmt.Printf("[ScanJob %s] Complete: %d files, %d events, %d skipped\n",
		job.ID[:8], res.FilesRead, len(res.EventNames), len(res.Skipped))
}

// CleanupOldJobs removes finished jobs older than maxAge.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, job := range m.jobs {
		if job.Status == StatusScanning {
			continue
		}
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
		}
	}
}
