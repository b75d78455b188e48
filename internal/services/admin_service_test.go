package services

import (
	"encoding/json"
	"testing"
	"time"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func pendingReviewEmployer(t *testing.T) models.Employer {
	t.Helper()

	docs, err := json.Marshal([]models.VerificationDocument{{
		Type:       models.DocumentIncorporation,
		Identifier: "INC-1001",
		URL:        "https://files.example.com/inc.pdf",
	}})
	require.NoError(t, err)

	trail, err := json.Marshal([]models.AuditEntry{{
		Actor:     "emp-1",
		Action:    "documents_submitted",
		Timestamp: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	e := models.Employer{
		CompanyName:      "Acme Ltd",
		CompanyType:      models.CompanyRegistered,
		WorkEmail:        "hr@acme.com",
		TrustScore:       60,
		VerificationTier: models.TierDocumentVerified,
		Documents:        datatypes.JSON(docs),
		AuditTrail:       datatypes.JSON(trail),
	}
	e.ID = "emp-1"
	return e
}

func TestPendingVerifications(t *testing.T) {
	repo := new(MockEmployerRepository)
	svc := NewAdminService(repo)

	repo.On("FindByTier", models.TierDocumentVerified, 20, 0).
		Return([]models.Employer{pendingReviewEmployer(t)}, int64(1), nil)

	items, total, err := svc.PendingVerifications(20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "emp-1", items[0].EmployerID)
	assert.Equal(t, "Acme Ltd", items[0].CompanyName)
	assert.Equal(t, 60, items[0].TrustScore)
	assert.Equal(t, "2026-08-20T10:00:00Z", items[0].SubmittedAt)
}

func TestVerificationDetail(t *testing.T) {
	t.Run("matching domain passes the automatic check", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)

		employer := pendingReviewEmployer(t)
		employer.CompanyWebsite = "https://acme.com"
		repo.On("FindByID", "emp-1").Return(&employer, nil)

		detail, err := svc.VerificationDetail("emp-1")
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", detail.CompanyName)
		assert.Equal(t, dto.CheckPass, detail.Checklist["work_email_domain"].Status)
		assert.Equal(t, "INC-1001", detail.Checklist["registration_number"].Value)
		assert.Equal(t, "1 documents uploaded", detail.Checklist["documents"].Value)
		assert.Equal(t, 1, detail.ChecksPassed)
	})

	t.Run("mismatched domain fails the automatic check", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)

		employer := pendingReviewEmployer(t)
		employer.CompanyWebsite = "https://other.com"
		repo.On("FindByID", "emp-1").Return(&employer, nil)

		detail, err := svc.VerificationDetail("emp-1")
		require.NoError(t, err)
		assert.Equal(t, dto.CheckFail, detail.Checklist["work_email_domain"].Status)
		assert.Equal(t, 0, detail.ChecksPassed)
	})

	t.Run("missing website and registration number", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)

		employer := pendingReviewEmployer(t)
		employer.Documents = datatypes.JSON([]byte("[]"))
		repo.On("FindByID", "emp-1").Return(&employer, nil)

		detail, err := svc.VerificationDetail("emp-1")
		require.NoError(t, err)
		assert.Equal(t, dto.CheckMissing, detail.Checklist["website"].Status)
		assert.Equal(t, dto.CheckMissing, detail.Checklist["registration_number"].Status)
		assert.Equal(t, dto.CheckMissing, detail.Checklist["work_email_domain"].Status)
	})

	t.Run("unknown employer", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)
		repo.On("FindByID", "missing").Return(nil, repositories.ErrEmployerNotFound)

		_, err := svc.VerificationDetail("missing")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestListEmployers(t *testing.T) {
	t.Run("unfiltered", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)

		repo.On("FindAll", 20, 20).
			Return([]models.Employer{pendingReviewEmployer(t)}, int64(21), nil)

		employers, total, err := svc.ListEmployers("", 20, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(21), total)
		assert.Len(t, employers, 1)
	})

	t.Run("filtered by tier", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)

		repo.On("FindByTier", models.TierRejected, 20, 0).
			Return([]models.Employer{}, int64(0), nil)

		_, total, err := svc.ListEmployers("REJECTED", 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("unknown tier value", func(t *testing.T) {
		repo := new(MockEmployerRepository)
		svc := NewAdminService(repo)

		_, _, err := svc.ListEmployers("PLATINUM", 20, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTier)
		repo.AssertNotCalled(t, "FindByTier")
		repo.AssertNotCalled(t, "FindAll")
	})
}

func TestVerificationStats(t *testing.T) {
	repo := new(MockEmployerRepository)
	svc := NewAdminService(repo)

	repo.On("TierStats").Return(map[models.VerificationTier]int64{
		models.TierUnverified:       5,
		models.TierEmailVerified:    3,
		models.TierDocumentVerified: 2,
		models.TierFullyVerified:    1,
	}, nil)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(11), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(3), stats.ByTier["EMAIL_VERIFIED"])
}
