package services

import (
	"errors"

	"jobscape_backend/internal/logger"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"
)

type EmployerService interface {
	CreateProfile(userID string, req *dto.CreateEmployerRequest) (*models.Employer, error)
	GetProfile(employerID string) (*models.Employer, error)
	GetProfileByUserID(userID string) (*models.Employer, error)
	UpdateProfile(employerID string, req *dto.UpdateEmployerRequest) (*models.Employer, error)
}

type employerService struct {
	employerRepo repositories.EmployerRepository
	userRepo     repositories.UserRepository
}

func NewEmployerService(employerRepo repositories.EmployerRepository, userRepo repositories.UserRepository) EmployerService {
	return &employerService{employerRepo: employerRepo, userRepo: userRepo}
}

func (s *employerService) CreateProfile(userID string, req *dto.CreateEmployerRequest) (*models.Employer, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	if user.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrInsufficientPermissions
	}

	companyType := models.CompanyRegistered
	if req.CompanyType != "" {
		companyType = models.CompanyType(req.CompanyType)
	}

	employer := &models.Employer{
		UserID:             userID,
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		Industry:           req.Industry,
		Location:           req.Location,
		Description:        req.Description,
		CompanyType:        companyType,
		FoundedYear:        req.FoundedYear,
		VerificationTier:   models.TierUnverified,
		TrustScore:         models.DefaultTrustScore,
		SubscriptionTier:   models.SubscriptionFree,
		SubscriptionStatus: models.SubscriptionStatusActive,
	}

	if err := s.employerRepo.Create(employer); err != nil {
		if errors.Is(err, repositories.ErrEmployerAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("employer profile created", "employer_id", employer.ID, "user_id", userID)
	return employer, nil
}

func (s *employerService) GetProfile(employerID string) (*models.Employer, error) {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return employer, nil
}

func (s *employerService) GetProfileByUserID(userID string) (*models.Employer, error) {
	employer, err := s.employerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return employer, nil
}

func (s *employerService) UpdateProfile(employerID string, req *dto.UpdateEmployerRequest) (*models.Employer, error) {
	employer, err := s.GetProfile(employerID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		employer.CompanyName = *req.CompanyName
	}
	if req.CompanyWebsite != nil {
		employer.CompanyWebsite = *req.CompanyWebsite
	}
	if req.Industry != nil {
		employer.Industry = *req.Industry
	}
	if req.Location != nil {
		employer.Location = *req.Location
	}
	if req.Description != nil {
		employer.Description = *req.Description
	}
	if req.LogoURL != nil {
		employer.LogoURL = *req.LogoURL
	}
	if req.FoundedYear != nil {
		employer.FoundedYear = *req.FoundedYear
	}

	if err := s.employerRepo.UpdateProfile(employer); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return employer, nil
}
