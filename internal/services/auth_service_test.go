package services

import (
	"testing"

	"jobscape_backend/internal/auth"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("employer registration creates an unverified profile", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		employerRepo := new(MockEmployerRepository)
		svc := NewAuthService(userRepo, employerRepo)

		userRepo.On("Create", mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*models.User).ID = "user-1"
			}).Return(nil)
		employerRepo.On("Create", mock.MatchedBy(func(e *models.Employer) bool {
			return e.UserID == "user-1" &&
				e.CompanyName == "Acme Ltd" &&
				e.VerificationTier == models.TierUnverified &&
				e.TrustScore == models.DefaultTrustScore &&
				e.SubscriptionTier == models.SubscriptionFree
		})).Return(nil)

		resp, err := svc.Register(&dto.RegisterRequest{
			Email:       "owner@acme.com",
			Password:    "s3cure-pass",
			FullName:    "Ada Owner",
			Role:        "employer",
			CompanyName: "Acme Ltd",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user-1", resp.UserID)
		assert.Equal(t, "employer", resp.Role)
		employerRepo.AssertExpectations(t)
	})

	t.Run("company name falls back to the full name", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		employerRepo := new(MockEmployerRepository)
		svc := NewAuthService(userRepo, employerRepo)

		userRepo.On("Create", mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(0).(*models.User).ID = "user-1"
			}).Return(nil)
		employerRepo.On("Create", mock.MatchedBy(func(e *models.Employer) bool {
			return e.CompanyName == "Ada Owner"
		})).Return(nil)

		_, err := svc.Register(&dto.RegisterRequest{
			Email:    "owner@acme.com",
			Password: "s3cure-pass",
			FullName: "Ada Owner",
			Role:     "employer",
		})
		require.NoError(t, err)
	})

	t.Run("job seekers get no employer profile", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		employerRepo := new(MockEmployerRepository)
		svc := NewAuthService(userRepo, employerRepo)

		userRepo.On("Create", mock.Anything).Return(nil)

		_, err := svc.Register(&dto.RegisterRequest{
			Email:    "dev@example.com",
			Password: "s3cure-pass",
			FullName: "Dev Person",
			Role:     "job_seeker",
		})
		require.NoError(t, err)
		employerRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockEmployerRepository))

		userRepo.On("Create", mock.Anything).Return(repositories.ErrUserAlreadyExists)

		_, err := svc.Register(&dto.RegisterRequest{
			Email:    "owner@acme.com",
			Password: "s3cure-pass",
			FullName: "Ada Owner",
			Role:     "employer",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("weak password is rejected before any write", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockEmployerRepository))

		_, err := svc.Register(&dto.RegisterRequest{
			Email:    "owner@acme.com",
			Password: "short",
			FullName: "Ada Owner",
			Role:     "employer",
		})
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cure-pass")
	require.NoError(t, err)

	storedUser := func() *models.User {
		u := &models.User{
			Email:        "owner@acme.com",
			PasswordHash: hash,
			FullName:     "Ada Owner",
			Role:         models.UserRoleEmployer,
			Status:       models.UserStatusActive,
		}
		u.ID = "user-1"
		return u
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockEmployerRepository))

		userRepo.On("FindByEmail", "owner@acme.com").Return(storedUser(), nil)

		resp, err := svc.Login(&dto.LoginRequest{Email: "owner@acme.com", Password: "s3cure-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user-1", resp.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockEmployerRepository))

		userRepo.On("FindByEmail", "owner@acme.com").Return(storedUser(), nil)

		_, err := svc.Login(&dto.LoginRequest{Email: "owner@acme.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email reads the same as a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockEmployerRepository))

		userRepo.On("FindByEmail", "ghost@acme.com").Return(nil, repositories.ErrUserNotFound)

		_, err := svc.Login(&dto.LoginRequest{Email: "ghost@acme.com", Password: "whatever1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
