package services

import (
	"errors"

	"jobscape_backend/internal/auth"
	"jobscape_backend/internal/logger"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo     repositories.UserRepository
	employerRepo repositories.EmployerRepository
}

func NewAuthService(userRepo repositories.UserRepository, employerRepo repositories.EmployerRepository) AuthService {
	return &authService{userRepo: userRepo, employerRepo: employerRepo}
}

// Register creates the account and, for employers, an UNVERIFIED profile at
// the default trust score.
func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         models.UserRole(req.Role),
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	if user.Role == models.UserRoleEmployer {
		companyName := req.CompanyName
		if companyName == "" {
			companyName = req.FullName
		}
		employer := &models.Employer{
			UserID:             user.ID,
			CompanyName:        companyName,
			VerificationTier:   models.TierUnverified,
			TrustScore:         models.DefaultTrustScore,
			SubscriptionTier:   models.SubscriptionFree,
			SubscriptionStatus: models.SubscriptionStatusActive,
		}
		if err := s.employerRepo.Create(employer); err != nil {
			logger.WithError(err).Error("failed to create employer profile at registration", "user_id", user.ID)
			return nil, apperrors.DatabaseError(err)
		}
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "role", string(user.Role))
	return &dto.AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}
