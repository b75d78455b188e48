package repositories

import (
	"errors"
	"time"

	"jobscape_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	FindByIDForEmployer(id, employerID string) (*models.Job, error)
	FindByEmployer(employerID string, limit, offset int) ([]models.Job, int64, error)

	// CloseJob is the guarded close: it flips is_closed false -> true in one
	// conditional UPDATE and reports whether this caller won. Quota counters
	// are only decremented by the winner.
	CloseJob(id, reason string, closedAt time.Time) (bool, error)
	Reopen(id string, deadline time.Time) (bool, error)
	Delete(id string) error

	// FindExpiredIDs lists jobs the expiry sweep should close, together with
	// their owning employer.
	FindExpiredIDs(now time.Time) ([]ExpiredJob, error)
}

// ExpiredJob pairs a lapsed job with its owner for the sweep.
type ExpiredJob struct {
	ID         string
	EmployerID string
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDForEmployer(id, employerID string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ? AND employer_id = ?", id, employerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByEmployer(employerID string, limit, offset int) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	query := r.db.Model(&models.Job{}).Where("employer_id = ?", employerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) CloseJob(id, reason string, closedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Where("is_closed = ?", false).
		Updates(map[string]interface{}{
			"is_active":      false,
			"is_closed":      true,
			"closed_at":      closedAt,
			"closure_reason": reason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *JobRepositoryImpl) Reopen(id string, deadline time.Time) (bool, error) {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Where("is_closed = ?", true).
		Updates(map[string]interface{}{
			"is_active":            true,
			"is_closed":            false,
			"closed_at":            nil,
			"closure_reason":       "",
			"application_deadline": deadline,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *JobRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) FindExpiredIDs(now time.Time) ([]ExpiredJob, error) {
	var expired []ExpiredJob
	err := r.db.Model(&models.Job{}).
		Select("id, employer_id").
		Where("is_active = ? AND is_closed = ? AND application_deadline <= ?", true, false, now).
		Scan(&expired).Error
	if err != nil {
		return nil, err
	}
	return expired, nil
}
