package services

import (
	"errors"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"
)

type QuotaService interface {
	// Status reports the live quota without consuming a slot.
	Status(employerID string) (*dto.QuotaStatus, error)

	// Reserve consumes one posting slot. The increment re-checks the limit
	// inside the UPDATE, so two concurrent reservations for the last slot
	// cannot both succeed.
	Reserve(employerID string) error

	// Release returns one active slot, never dropping below zero.
	Release(employerID string) error

	// Matrix exposes the full quota matrix for the pricing page.
	Matrix() map[models.SubscriptionTier]map[models.VerificationTier]int
}

type quotaService struct {
	employerRepo repositories.EmployerRepository
}

func NewQuotaService(employerRepo repositories.EmployerRepository) QuotaService {
	return &quotaService{employerRepo: employerRepo}
}

func (s *quotaService) Status(employerID string) (*dto.QuotaStatus, error) {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	canPost, reason := employer.CanPostJob()
	return &dto.QuotaStatus{
		CanPost:          canPost,
		Reason:           reason,
		ActivePosts:      employer.ActiveJobPostsCount,
		Limit:            employer.JobPostingLimit(),
		Remaining:        employer.RemainingSlots(),
		SubscriptionTier: string(employer.SubscriptionTier),
		VerificationTier: string(employer.VerificationTier),
	}, nil
}

func (s *quotaService) Reserve(employerID string) error {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	// Gate checks first, so the caller gets the precise refusal.
	if employer.SubscriptionStatus != models.SubscriptionStatusActive {
		return apperrors.ErrSubscriptionInactive
	}
	switch employer.VerificationTier {
	case models.TierUnverified:
		return apperrors.ErrVerificationRequired
	case models.TierSuspended:
		return apperrors.ErrAccountSuspended
	case models.TierRejected:
		return apperrors.ErrVerificationRejected
	}

	limit := employer.JobPostingLimit()
	won, err := s.employerRepo.IncrementJobCounters(employerID, limit)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if !won {
		return apperrors.ErrQuotaExceeded(employer.ActiveJobPostsCount, limit)
	}
	return nil
}

func (s *quotaService) Release(employerID string) error {
	if err := s.employerRepo.DecrementActiveJobCount(employerID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *quotaService) Matrix() map[models.SubscriptionTier]map[models.VerificationTier]int {
	matrix := make(map[models.SubscriptionTier]map[models.VerificationTier]int)
	for _, sub := range []models.SubscriptionTier{
		models.SubscriptionFree, models.SubscriptionBasic,
		models.SubscriptionPremium, models.SubscriptionBusiness,
	} {
		matrix[sub] = models.QuotaRow(sub)
	}
	return matrix
}
