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

type SubscriptionService interface {
	// Upgrade switches tiers immediately. Payment is handled out of band;
	// the upgrade only records the tier the quota matrix reads.
	Upgrade(employerID, tier string) (*dto.SubscriptionInfo, error)
	Cancel(employerID string) error
	Info(employerID string) (*dto.SubscriptionInfo, error)
	Pricing() []dto.TierPricing
}

type subscriptionService struct {
	employerRepo repositories.EmployerRepository
}

func NewSubscriptionService(employerRepo repositories.EmployerRepository) SubscriptionService {
	return &subscriptionService{employerRepo: employerRepo}
}

func (s *subscriptionService) Upgrade(employerID, tier string) (*dto.SubscriptionInfo, error) {
	if !models.ValidSubscriptionTier(tier) {
		return nil, apperrors.ErrInvalidSubscriptionTier
	}

	employer, err := s.findEmployer(employerID)
	if err != nil {
		return nil, err
	}

	newTier := models.SubscriptionTier(tier)

	var expiresAt *time.Time
	if newTier != models.SubscriptionFree {
		t := time.Now().AddDate(0, 1, 0)
		expiresAt = &t
	}

	if err := s.employerRepo.UpdateSubscription(employerID, newTier, models.SubscriptionStatusActive, expiresAt); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("subscription changed",
		"employer_id", employerID, "from", string(employer.SubscriptionTier), "to", tier)

	employer.SubscriptionTier = newTier
	employer.SubscriptionStatus = models.SubscriptionStatusActive
	employer.SubscriptionExpiresAt = expiresAt
	return s.info(employer), nil
}

func (s *subscriptionService) Cancel(employerID string) error {
	employer, err := s.findEmployer(employerID)
	if err != nil {
		return err
	}

	if employer.SubscriptionStatus == models.SubscriptionStatusCancelled {
		return apperrors.ErrSubscriptionCancelled
	}

	// Cancelling drops to FREE at once; no grace period in the stub.
	if err := s.employerRepo.UpdateSubscription(employerID, models.SubscriptionFree, models.SubscriptionStatusCancelled, nil); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.Info("subscription cancelled", "employer_id", employerID)
	return nil
}

func (s *subscriptionService) Info(employerID string) (*dto.SubscriptionInfo, error) {
	employer, err := s.findEmployer(employerID)
	if err != nil {
		return nil, err
	}
	return s.info(employer), nil
}

func (s *subscriptionService) Pricing() []dto.TierPricing {
	tiers := []models.SubscriptionTier{
		models.SubscriptionFree, models.SubscriptionBasic,
		models.SubscriptionPremium, models.SubscriptionBusiness,
	}

	pricing := make([]dto.TierPricing, 0, len(tiers))
	for _, tier := range tiers {
		p := models.SubscriptionPricing[tier]
		pricing = append(pricing, dto.TierPricing{
			Tier:         string(tier),
			MonthlyPrice: p["monthly"],
			AnnualPrice:  p["yearly"],
		})
	}
	return pricing
}

func (s *subscriptionService) findEmployer(employerID string) (*models.Employer, error) {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return employer, nil
}

func (s *subscriptionService) info(e *models.Employer) *dto.SubscriptionInfo {
	info := &dto.SubscriptionInfo{
		Tier:     string(e.SubscriptionTier),
		Status:   string(e.SubscriptionStatus),
		JobLimit: e.JobPostingLimit(),
	}
	if e.SubscriptionExpiresAt != nil {
		info.ExpiresAt = e.SubscriptionExpiresAt.Format(time.RFC3339)
	}
	return info
}
