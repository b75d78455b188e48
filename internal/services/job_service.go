package services

import (
	"errors"
	"time"

	"jobscape_backend/internal/logger"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(employerID string, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(jobID string) (*models.Job, error)
	ListJobs(employerID string, limit, offset int) ([]models.Job, int64, error)

	// CloseJob ends a posting. Only the close that actually flips the flag
	// releases the quota slot, so repeated or racing closes decrement once.
	CloseJob(employerID, jobID, reason string) error
	ReopenJob(employerID, jobID string, deadline time.Time) error
	DeleteJob(employerID, jobID string) error
}

type jobService struct {
	jobRepo      repositories.JobRepository
	employerRepo repositories.EmployerRepository
	quota        QuotaService
}

func NewJobService(jobRepo repositories.JobRepository, employerRepo repositories.EmployerRepository, quota QuotaService) JobService {
	return &jobService{jobRepo: jobRepo, employerRepo: employerRepo, quota: quota}
}

// CreateJob reserves a quota slot, then persists the posting. If the insert
// fails the slot is returned.
func (s *jobService) CreateJob(employerID string, req *dto.CreateJobRequest) (*models.Job, error) {
	if !req.ApplicationDeadline.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("Application deadline must be in the future")
	}

	if err := s.quota.Reserve(employerID); err != nil {
		return nil, err
	}

	job := &models.Job{
		EmployerID:          employerID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		ApplicationDeadline: req.ApplicationDeadline,
		IsActive:            true,
	}

	if err := s.jobRepo.Create(job); err != nil {
		if relErr := s.quota.Release(employerID); relErr != nil {
			logger.WithError(relErr).Error("failed to release quota slot after insert failure", "employer_id", employerID)
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("job created", "job_id", job.ID, "employer_id", employerID)
	return job, nil
}

func (s *jobService) GetJob(jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return job, nil
}

func (s *jobService) ListJobs(employerID string, limit, offset int) ([]models.Job, int64, error) {
	jobs, total, err := s.jobRepo.FindByEmployer(employerID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	return jobs, total, nil
}

func (s *jobService) CloseJob(employerID, jobID, reason string) error {
	if _, err := s.ownedJob(employerID, jobID); err != nil {
		return err
	}

	if reason == "" {
		reason = models.ClosureManualOther
	}

	won, err := s.jobRepo.CloseJob(jobID, reason, time.Now())
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if !won {
		// Already closed by another caller or the sweep. Idempotent success,
		// the winner already released the slot.
		return nil
	}

	if err := s.quota.Release(employerID); err != nil {
		logger.WithError(err).Error("failed to release quota slot on close", "job_id", jobID)
		return err
	}

	logger.Info("job closed", "job_id", jobID, "reason", reason)
	return nil
}

// ReopenJob reverses a close. It consumes a fresh quota slot and requires a
// new future deadline.
func (s *jobService) ReopenJob(employerID, jobID string, deadline time.Time) error {
	job, err := s.ownedJob(employerID, jobID)
	if err != nil {
		return err
	}
	if !job.IsClosed {
		return apperrors.NewBadRequestError("Job is not closed")
	}
	if !deadline.After(time.Now()) {
		return apperrors.NewBadRequestError("Application deadline must be in the future")
	}

	if err := s.quota.Reserve(employerID); err != nil {
		return err
	}

	won, err := s.jobRepo.Reopen(jobID, deadline)
	if err != nil {
		if relErr := s.quota.Release(employerID); relErr != nil {
			logger.WithError(relErr).Error("failed to release quota slot after reopen failure", "job_id", jobID)
		}
		return apperrors.DatabaseError(err)
	}
	if !won {
		// Someone reopened it first; give the slot back.
		if relErr := s.quota.Release(employerID); relErr != nil {
			logger.WithError(relErr).Error("failed to release quota slot after lost reopen race", "job_id", jobID)
		}
		return nil
	}

	logger.Info("job reopened", "job_id", jobID)
	return nil
}

// DeleteJob removes a posting. An open posting is closed first so its slot is
// released exactly once.
func (s *jobService) DeleteJob(employerID, jobID string) error {
	job, err := s.ownedJob(employerID, jobID)
	if err != nil {
		return err
	}

	if !job.IsClosed {
		won, err := s.jobRepo.CloseJob(jobID, models.ClosureDeleted, time.Now())
		if err != nil {
			return apperrors.DatabaseError(err)
		}
		if won {
			if err := s.quota.Release(employerID); err != nil {
				logger.WithError(err).Error("failed to release quota slot on delete", "job_id", jobID)
				return err
			}
		}
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.Info("job deleted", "job_id", jobID)
	return nil
}

func (s *jobService) ownedJob(employerID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByIDForEmployer(jobID, employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return job, nil
}
