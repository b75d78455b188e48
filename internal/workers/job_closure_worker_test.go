package workers

import (
	"testing"
	"time"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJobRepo overrides only the sweep path; the embedded interface panics on
// anything else.
type fakeJobRepo struct {
	repositories.JobRepository
	expired       []repositories.ExpiredJob
	alreadyClosed map[string]bool
	closeErr      map[string]error
	closedIDs     []string
}

func (f *fakeJobRepo) FindExpiredIDs(time.Time) ([]repositories.ExpiredJob, error) {
	return f.expired, nil
}

func (f *fakeJobRepo) CloseJob(id, reason string, _ time.Time) (bool, error) {
	if err := f.closeErr[id]; err != nil {
		return false, err
	}
	if reason != models.ClosureDeadlinePassed {
		return false, nil
	}
	if f.alreadyClosed[id] {
		return false, nil
	}
	f.closedIDs = append(f.closedIDs, id)
	return true, nil
}

type fakeEmployerRepo struct {
	repositories.EmployerRepository
	decremented []string
}

func (f *fakeEmployerRepo) DecrementActiveJobCount(employerID string) error {
	f.decremented = append(f.decremented, employerID)
	return nil
}

func TestJobClosureSweep(t *testing.T) {
	now := time.Date(2026, 4, 1, 3, 0, 0, 0, time.UTC)

	t.Run("closes expired jobs and releases their slots", func(t *testing.T) {
		jobRepo := &fakeJobRepo{
			expired: []repositories.ExpiredJob{
				{ID: "job-1", EmployerID: "emp-1"},
				{ID: "job-2", EmployerID: "emp-2"},
			},
		}
		employerRepo := &fakeEmployerRepo{}
		worker := NewJobClosureWorker(jobRepo, employerRepo, time.Hour)

		closed := worker.RunOnce(now)
		assert.Equal(t, 2, closed)
		assert.Equal(t, []string{"job-1", "job-2"}, jobRepo.closedIDs)
		assert.Equal(t, []string{"emp-1", "emp-2"}, employerRepo.decremented)
	})

	t.Run("skips jobs closed manually between listing and sweep", func(t *testing.T) {
		jobRepo := &fakeJobRepo{
			expired: []repositories.ExpiredJob{
				{ID: "job-1", EmployerID: "emp-1"},
				{ID: "job-2", EmployerID: "emp-2"},
			},
			alreadyClosed: map[string]bool{"job-1": true},
		}
		employerRepo := &fakeEmployerRepo{}
		worker := NewJobClosureWorker(jobRepo, employerRepo, time.Hour)

		closed := worker.RunOnce(now)
		assert.Equal(t, 1, closed)
		assert.Equal(t, []string{"emp-2"}, employerRepo.decremented)
	})

	t.Run("a failing close does not stop the sweep", func(t *testing.T) {
		jobRepo := &fakeJobRepo{
			expired: []repositories.ExpiredJob{
				{ID: "job-1", EmployerID: "emp-1"},
				{ID: "job-2", EmployerID: "emp-2"},
			},
			closeErr: map[string]error{"job-1": assert.AnError},
		}
		employerRepo := &fakeEmployerRepo{}
		worker := NewJobClosureWorker(jobRepo, employerRepo, time.Hour)

		closed := worker.RunOnce(now)
		assert.Equal(t, 1, closed)
		assert.Equal(t, []string{"job-2"}, jobRepo.closedIDs)
	})

	t.Run("empty sweep is a no-op", func(t *testing.T) {
		jobRepo := &fakeJobRepo{}
		employerRepo := &fakeEmployerRepo{}
		worker := NewJobClosureWorker(jobRepo, employerRepo, time.Hour)

		require.Zero(t, worker.RunOnce(now))
		assert.Empty(t, employerRepo.decremented)
	})
}
