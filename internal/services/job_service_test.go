package services

import (
	"testing"
	"time"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJobFixture() (*MockJobRepository, *MockEmployerRepository, JobService) {
	jobRepo := new(MockJobRepository)
	employerRepo := new(MockEmployerRepository)
	svc := NewJobService(jobRepo, employerRepo, NewQuotaService(employerRepo))
	return jobRepo, employerRepo, svc
}

func openJob(id string) *models.Job {
	j := &models.Job{
		EmployerID:          "emp-1",
		Title:               "Backend Engineer",
		ApplicationDeadline: time.Now().Add(14 * 24 * time.Hour),
		IsActive:            true,
	}
	j.ID = id
	return j
}

func TestCreateJob(t *testing.T) {
	deadline := time.Now().Add(7 * 24 * time.Hour)

	t.Run("reserves a slot then persists", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		employerRepo.On("FindByID", "emp-1").
			Return(quotaEmployer(models.SubscriptionFree, models.TierEmailVerified, 0), nil)
		employerRepo.On("IncrementJobCounters", "emp-1", 2).Return(true, nil)
		jobRepo.On("Create", mock.AnythingOfType("*models.Job")).Return(nil)

		job, err := svc.CreateJob("emp-1", &dto.CreateJobRequest{
			Title:               "Backend Engineer",
			Description:         "Go services",
			Location:            "Remote",
			ApplicationDeadline: deadline,
		})
		require.NoError(t, err)
		assert.Equal(t, "emp-1", job.EmployerID)
		assert.True(t, job.IsActive)
		jobRepo.AssertExpectations(t)
		employerRepo.AssertExpectations(t)
	})

	t.Run("returns the slot when the insert fails", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		employerRepo.On("FindByID", "emp-1").
			Return(quotaEmployer(models.SubscriptionFree, models.TierEmailVerified, 0), nil)
		employerRepo.On("IncrementJobCounters", "emp-1", 2).Return(true, nil)
		jobRepo.On("Create", mock.Anything).Return(assert.AnError)
		employerRepo.On("DecrementActiveJobCount", "emp-1").Return(nil)

		_, err := svc.CreateJob("emp-1", &dto.CreateJobRequest{
			Title:               "Backend Engineer",
			ApplicationDeadline: deadline,
		})
		require.Error(t, err)
		employerRepo.AssertCalled(t, "DecrementActiveJobCount", "emp-1")
	})

	t.Run("rejects past deadlines before touching the quota", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		_, err := svc.CreateJob("emp-1", &dto.CreateJobRequest{
			Title:               "Backend Engineer",
			ApplicationDeadline: time.Now().Add(-time.Hour),
		})
		require.Error(t, err)
		employerRepo.AssertNotCalled(t, "IncrementJobCounters", mock.Anything, mock.Anything)
		jobRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("quota refusal surfaces unchanged", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		employerRepo.On("FindByID", "emp-1").
			Return(quotaEmployer(models.SubscriptionFree, models.TierUnverified, 0), nil)

		_, err := svc.CreateJob("emp-1", &dto.CreateJobRequest{
			Title:               "Backend Engineer",
			ApplicationDeadline: deadline,
		})
		assert.ErrorIs(t, err, apperrors.ErrVerificationRequired)
		jobRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestCloseJob(t *testing.T) {
	t.Run("winner releases the slot", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(openJob("job-1"), nil)
		jobRepo.On("CloseJob", "job-1", models.ClosureManualFilled, mock.AnythingOfType("time.Time")).Return(true, nil)
		employerRepo.On("DecrementActiveJobCount", "emp-1").Return(nil)

		require.NoError(t, svc.CloseJob("emp-1", "job-1", models.ClosureManualFilled))
		employerRepo.AssertExpectations(t)
	})

	t.Run("lost race is idempotent and keeps the counter", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(openJob("job-1"), nil)
		jobRepo.On("CloseJob", "job-1", models.ClosureManualOther, mock.AnythingOfType("time.Time")).Return(false, nil)

		require.NoError(t, svc.CloseJob("emp-1", "job-1", ""))
		employerRepo.AssertNotCalled(t, "DecrementActiveJobCount", mock.Anything)
	})

	t.Run("empty reason defaults to manual_other", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(openJob("job-1"), nil)
		jobRepo.On("CloseJob", "job-1", models.ClosureManualOther, mock.AnythingOfType("time.Time")).Return(true, nil)
		employerRepo.On("DecrementActiveJobCount", "emp-1").Return(nil)

		require.NoError(t, svc.CloseJob("emp-1", "job-1", ""))
		jobRepo.AssertExpectations(t)
	})

	t.Run("foreign job reads as not found", func(t *testing.T) {
		jobRepo, _, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-2").Return(nil, repositories.ErrJobNotFound)

		err := svc.CloseJob("emp-2", "job-1", "")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestReopenJob(t *testing.T) {
	deadline := time.Now().Add(7 * 24 * time.Hour)

	closedJob := func() *models.Job {
		j := openJob("job-1")
		j.IsActive = false
		j.IsClosed = true
		return j
	}

	t.Run("consumes a fresh slot", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(closedJob(), nil)
		employerRepo.On("FindByID", "emp-1").
			Return(quotaEmployer(models.SubscriptionFree, models.TierEmailVerified, 1), nil)
		employerRepo.On("IncrementJobCounters", "emp-1", 2).Return(true, nil)
		jobRepo.On("Reopen", "job-1", deadline).Return(true, nil)

		require.NoError(t, svc.ReopenJob("emp-1", "job-1", deadline))
		jobRepo.AssertExpectations(t)
	})

	t.Run("lost reopen race returns the slot", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(closedJob(), nil)
		employerRepo.On("FindByID", "emp-1").
			Return(quotaEmployer(models.SubscriptionFree, models.TierEmailVerified, 1), nil)
		employerRepo.On("IncrementJobCounters", "emp-1", 2).Return(true, nil)
		jobRepo.On("Reopen", "job-1", deadline).Return(false, nil)
		employerRepo.On("DecrementActiveJobCount", "emp-1").Return(nil)

		require.NoError(t, svc.ReopenJob("emp-1", "job-1", deadline))
		employerRepo.AssertCalled(t, "DecrementActiveJobCount", "emp-1")
	})

	t.Run("rejects an open job", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(openJob("job-1"), nil)

		err := svc.ReopenJob("emp-1", "job-1", deadline)
		require.Error(t, err)
		employerRepo.AssertNotCalled(t, "IncrementJobCounters", mock.Anything, mock.Anything)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("closes an open job first", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(openJob("job-1"), nil)
		jobRepo.On("CloseJob", "job-1", models.ClosureDeleted, mock.AnythingOfType("time.Time")).Return(true, nil)
		employerRepo.On("DecrementActiveJobCount", "emp-1").Return(nil)
		jobRepo.On("Delete", "job-1").Return(nil)

		require.NoError(t, svc.DeleteJob("emp-1", "job-1"))
		jobRepo.AssertExpectations(t)
		employerRepo.AssertExpectations(t)
	})

	t.Run("deletes a closed job without touching the counter", func(t *testing.T) {
		jobRepo, employerRepo, svc := newJobFixture()

		closed := openJob("job-1")
		closed.IsActive = false
		closed.IsClosed = true
		jobRepo.On("FindByIDForEmployer", "job-1", "emp-1").Return(closed, nil)
		jobRepo.On("Delete", "job-1").Return(nil)

		require.NoError(t, svc.DeleteJob("emp-1", "job-1"))
		employerRepo.AssertNotCalled(t, "DecrementActiveJobCount", mock.Anything)
	})
}
