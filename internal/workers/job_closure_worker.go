package workers

import (
	"context"
	"time"

	"jobscape_backend/internal/logger"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
)

// JobClosureWorker closes postings whose application deadline has passed and
// releases their quota slots. The close is the same guarded flip manual
// closes use, so a job racing between the sweep and its owner still releases
// exactly one slot.
type JobClosureWorker struct {
	jobRepo      repositories.JobRepository
	employerRepo repositories.EmployerRepository
	interval     time.Duration
}

func NewJobClosureWorker(jobRepo repositories.JobRepository, employerRepo repositories.EmployerRepository, interval time.Duration) *JobClosureWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JobClosureWorker{
		jobRepo:      jobRepo,
		employerRepo: employerRepo,
		interval:     interval,
	}
}

// Start launches the sweep loop.
func (w *JobClosureWorker) Start(ctx context.Context) {
	go w.sweepLoop(ctx)
}

func (w *JobClosureWorker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job closure worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(time.Now())
		}
	}
}

// RunOnce performs a single sweep pass and returns the number of jobs it
// closed.
func (w *JobClosureWorker) RunOnce(now time.Time) int {
	expired, err := w.jobRepo.FindExpiredIDs(now)
	if err != nil {
		logger.WorkerLog("job_closure", "find_expired", err)
		return 0
	}

	closed := 0
	for _, job := range expired {
		won, err := w.jobRepo.CloseJob(job.ID, models.ClosureDeadlinePassed, now)
		if err != nil {
			logger.WorkerLog("job_closure", "close_job", err)
			continue
		}
		if !won {
			// Closed manually between the listing and now.
			continue
		}

		if err := w.employerRepo.DecrementActiveJobCount(job.EmployerID); err != nil {
			logger.WorkerLog("job_closure", "release_slot", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		logger.Info("expired jobs closed", "count", closed)
	}
	return closed
}
