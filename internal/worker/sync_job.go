package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/syncer"
)

// SyncJob runs one sync per Process call and remembers the latest summary
type SyncJob struct {
	runner  syncer.Runner
	running atomic.Bool

	mu   sync.RWMutex
	last *domain.RunSummary
}

// NewSyncJob wraps a sync runner as a pool job
func NewSyncJob(runner syncer.Runner) *SyncJob {
	return &SyncJob{runner: runner}
}

// Process performs the run. Aborted runs return their error so the pool logs it.
func (j *SyncJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	j.running.Store(true)
	defer j.running.Store(false)

	log.Info(LogMsgSyncJobStarting)
	summary, err := j.runner.Run(ctx)
	if summary != nil {
		j.mu.Lock()
		j.last = summary
		j.mu.Unlock()
	}
	if err != nil {
		log.Error(LogMsgSyncJobAborted, "error", err)
		return err
	}
	log.Info(LogMsgSyncJobFinished, "run_id", summary.RunID)
	return nil
}

// Running reports whether a run is in progress
func (j *SyncJob) Running() bool {
	return j.running.Load()
}

// Last returns the summary of the most recent run, or nil
func (j *SyncJob) Last() *domain.RunSummary {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.last
}

// Dispatcher queues the sync job on a pool for manual triggers
type Dispatcher struct {
	pool *Pool
	job  *SyncJob
}

// NewDispatcher creates a dispatcher for job on pool
func NewDispatcher(pool *Pool, job *SyncJob) *Dispatcher {
	return &Dispatcher{pool: pool, job: job}
}

// Trigger queues a run and reports whether it was accepted
func (d *Dispatcher) Trigger() bool {
	return d.pool.TryEnqueue(d.job)
}

// Running reports whether a run is in progress
func (d *Dispatcher) Running() bool {
	return d.job.Running()
}

// Last returns the summary of the most recent run, or nil
func (d *Dispatcher) Last() *domain.RunSummary {
	return d.job.Last()
}
