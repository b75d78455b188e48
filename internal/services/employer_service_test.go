package services

import (
	"testing"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func employerUser(role models.UserRole) *models.User {
	u := &models.User{
		Email:  "owner@acme.com",
		Role:   role,
		Status: models.UserStatusActive,
	}
	u.ID = "user-1"
	return u
}

func TestCreateProfile(t *testing.T) {
	t.Run("new profile starts unverified on the free tier", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		employerRepo := new(MockEmployerRepository)
		svc := NewEmployerService(employerRepo, userRepo)

		userRepo.On("FindByID", "user-1").Return(employerUser(models.UserRoleEmployer), nil)
		employerRepo.On("Create", mock.AnythingOfType("*models.Employer")).Return(nil)

		employer, err := svc.CreateProfile("user-1", &dto.CreateEmployerRequest{
			CompanyName:    "Acme Ltd",
			CompanyWebsite: "https://acme.com",
			CompanyType:    "STARTUP",
			FoundedYear:    2023,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TierUnverified, employer.VerificationTier)
		assert.Equal(t, models.DefaultTrustScore, employer.TrustScore)
		assert.Equal(t, models.SubscriptionFree, employer.SubscriptionTier)
		assert.Equal(t, models.CompanyStartup, employer.CompanyType)
	})

	t.Run("company type defaults to registered", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		employerRepo := new(MockEmployerRepository)
		svc := NewEmployerService(employerRepo, userRepo)

		userRepo.On("FindByID", "user-1").Return(employerUser(models.UserRoleEmployer), nil)
		employerRepo.On("Create", mock.Anything).Return(nil)

		employer, err := svc.CreateProfile("user-1", &dto.CreateEmployerRequest{CompanyName: "Acme Ltd"})
		require.NoError(t, err)
		assert.Equal(t, models.CompanyRegistered, employer.CompanyType)
	})

	t.Run("non employers are refused", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		employerRepo := new(MockEmployerRepository)
		svc := NewEmployerService(employerRepo, userRepo)

		userRepo.On("FindByID", "user-1").Return(employerUser(models.UserRoleSeeker), nil)

		_, err := svc.CreateProfile("user-1", &dto.CreateEmployerRequest{CompanyName: "Acme Ltd"})
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
		employerRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("patches only the provided fields", func(t *testing.T) {
		employerRepo := new(MockEmployerRepository)
		svc := NewEmployerService(employerRepo, new(MockUserRepository))

		existing := unverifiedEmployer()
		existing.Industry = "Logistics"
		employerRepo.On("FindByID", "emp-1").Return(existing, nil)
		employerRepo.On("UpdateProfile", mock.AnythingOfType("*models.Employer")).Return(nil)

		website := "https://acme.example"
		updated, err := svc.UpdateProfile("emp-1", &dto.UpdateEmployerRequest{
			CompanyWebsite: &website,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://acme.example", updated.CompanyWebsite)
		// Untouched fields survive.
		assert.Equal(t, "Acme Ltd", updated.CompanyName)
		assert.Equal(t, "Logistics", updated.Industry)
	})
}
