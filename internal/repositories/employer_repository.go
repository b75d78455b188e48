package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobscape_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEmployerNotFound      = errors.New("employer not found")
	ErrEmployerAlreadyExists = errors.New("employer profile already exists for this user")
)

type EmployerRepository interface {
	Create(employer *models.Employer) error
	FindByID(id string) (*models.Employer, error)
	FindByUserID(userID string) (*models.Employer, error)
	UpdateProfile(employer *models.Employer) error
	ResetWorkEmail(employerID, workEmail string) error

	// One-time-code channel. SavePendingCode is a conditional write: it only
	// succeeds when no code was sent within the resend window, so concurrent
	// resends cannot both win.
	SavePendingCode(employerID, codeHash string, sentAt time.Time, resendWindow time.Duration) (bool, error)
	ConfirmWorkEmail(employerID string, tier models.VerificationTier, trustScore int, entry models.AuditEntry) error

	// Verification transitions. Each call is a single UPDATE so the tier
	// change and its audit entry commit together.
	SubmitDocuments(employerID string, docs []models.VerificationDocument, tier models.VerificationTier, trustScore int, entry models.AuditEntry) error
	ApplyAdminDecision(employerID string, tier models.VerificationTier, trustScore int, verifiedBy string, verifiedAt *time.Time, entry models.AuditEntry) error
	SaveAlternativeData(employerID string, data map[string]interface{}, trustScore int) error

	// Quota counters, atomic arithmetic updates.
	IncrementJobCounters(employerID string, limit int) (bool, error)
	DecrementActiveJobCount(employerID string) error

	UpdateSubscription(employerID string, tier models.SubscriptionTier, status models.SubscriptionStatus, expiresAt *time.Time) error

	// Admin listings
	FindByTier(tier models.VerificationTier, limit, offset int) ([]models.Employer, int64, error)
	FindAll(limit, offset int) ([]models.Employer, int64, error)
	TierStats() (map[models.VerificationTier]int64, error)
}

type EmployerRepositoryImpl struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) EmployerRepository {
	return &EmployerRepositoryImpl{db: db}
}

func (r *EmployerRepositoryImpl) Create(employer *models.Employer) error {
	var existing models.Employer
	if err := r.db.Where("user_id = ?", employer.UserID).First(&existing).Error; err == nil {
		return ErrEmployerAlreadyExists
	}

	return r.db.Create(employer).Error
}

func (r *EmployerRepositoryImpl) FindByID(id string) (*models.Employer, error) {
	var employer models.Employer
	err := r.db.First(&employer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployerNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) FindByUserID(userID string) (*models.Employer, error) {
	var employer models.Employer
	err := r.db.First(&employer, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployerNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) UpdateProfile(employer *models.Employer) error {
	result := r.db.Model(employer).Updates(map[string]interface{}{
		"company_name":    employer.CompanyName,
		"company_website": employer.CompanyWebsite,
		"industry":        employer.Industry,
		"location":        employer.Location,
		"description":     employer.Description,
		"logo_url":        employer.LogoURL,
		"company_type":    employer.CompanyType,
		"founded_year":    employer.FoundedYear,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployerNotFound
	}
	return nil
}

// ResetWorkEmail replaces the work email and drops all verification state
// tied to the previous address.
func (r *EmployerRepositoryImpl) ResetWorkEmail(employerID, workEmail string) error {
	result := r.db.Model(&models.Employer{}).Where("id = ?", employerID).
		Updates(map[string]interface{}{
			"work_email":          workEmail,
			"work_email_verified": false,
			"pending_code_hash":   "",
			"code_sent_at":        nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployerNotFound
	}
	return nil
}

func (r *EmployerRepositoryImpl) SavePendingCode(employerID, codeHash string, sentAt time.Time, resendWindow time.Duration) (bool, error) {
	result := r.db.Model(&models.Employer{}).
		Where("id = ?", employerID).
		Where("code_sent_at IS NULL OR code_sent_at <= ?", sentAt.Add(-resendWindow)).
		Updates(map[string]interface{}{
			"pending_code_hash": codeHash,
			"code_sent_at":      sentAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *EmployerRepositoryImpl) ConfirmWorkEmail(employerID string, tier models.VerificationTier, trustScore int, entry models.AuditEntry) error {
	return r.applyUpdate(employerID, map[string]interface{}{
		"work_email_verified": true,
		"pending_code_hash":   "",
		"code_sent_at":        nil,
		"verification_tier":   tier,
		"trust_score":         trustScore,
	}, &entry)
}

func (r *EmployerRepositoryImpl) SubmitDocuments(employerID string, docs []models.VerificationDocument, tier models.VerificationTier, trustScore int, entry models.AuditEntry) error {
	docsJSON, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}

	return r.applyUpdate(employerID, map[string]interface{}{
		"documents":         gorm.Expr("COALESCE(documents, '[]'::jsonb) || ?::jsonb", string(docsJSON)),
		"verification_tier": tier,
		"trust_score":       trustScore,
	}, &entry)
}

func (r *EmployerRepositoryImpl) ApplyAdminDecision(employerID string, tier models.VerificationTier, trustScore int, verifiedBy string, verifiedAt *time.Time, entry models.AuditEntry) error {
	updates := map[string]interface{}{
		"verification_tier": tier,
		"trust_score":       trustScore,
	}
	if verifiedBy != "" {
		updates["verified_by"] = verifiedBy
	}
	if verifiedAt != nil {
		updates["verified_at"] = verifiedAt
	}

	return r.applyUpdate(employerID, updates, &entry)
}

func (r *EmployerRepositoryImpl) SaveAlternativeData(employerID string, data map[string]interface{}, trustScore int) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal alternative verification data: %w", err)
	}

	return r.applyUpdate(employerID, map[string]interface{}{
		"alternative_data": string(dataJSON),
		"trust_score":      trustScore,
	}, nil)
}

// IncrementJobCounters bumps both counters in one statement and re-checks the
// limit inside the WHERE clause, so concurrent creations cannot over-admit.
// Returns false when the guard rejected the update.
func (r *EmployerRepositoryImpl) IncrementJobCounters(employerID string, limit int) (bool, error) {
	query := r.db.Model(&models.Employer{}).Where("id = ?", employerID)
	if limit != models.UnlimitedPosts {
		query = query.Where("active_job_posts_count < ?", limit)
	}

	result := query.Updates(map[string]interface{}{
		"active_job_posts_count": gorm.Expr("active_job_posts_count + 1"),
		"total_job_posts_count":  gorm.Expr("total_job_posts_count + 1"),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecrementActiveJobCount floors the counter at zero. Idempotency against
// double-closure is the caller's job: close the job with a guarded update
// first and only decrement on the winning close.
func (r *EmployerRepositoryImpl) DecrementActiveJobCount(employerID string) error {
	return r.db.Model(&models.Employer{}).
		Where("id = ?", employerID).
		Where("active_job_posts_count > 0").
		Update("active_job_posts_count", gorm.Expr("active_job_posts_count - 1")).Error
}

func (r *EmployerRepositoryImpl) UpdateSubscription(employerID string, tier models.SubscriptionTier, status models.SubscriptionStatus, expiresAt *time.Time) error {
	result := r.db.Model(&models.Employer{}).Where("id = ?", employerID).
		Updates(map[string]interface{}{
			"subscription_tier":       tier,
			"subscription_status":     status,
			"subscription_expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployerNotFound
	}
	return nil
}

func (r *EmployerRepositoryImpl) FindByTier(tier models.VerificationTier, limit, offset int) ([]models.Employer, int64, error) {
	var employers []models.Employer
	var total int64

	query := r.db.Model(&models.Employer{}).Where("verification_tier = ?", tier)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&employers).Error
	if err != nil {
		return nil, 0, err
	}
	return employers, total, nil
}

func (r *EmployerRepositoryImpl) FindAll(limit, offset int) ([]models.Employer, int64, error) {
	var employers []models.Employer
	var total int64

	if err := r.db.Model(&models.Employer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&employers).Error
	if err != nil {
		return nil, 0, err
	}
	return employers, total, nil
}

func (r *EmployerRepositoryImpl) TierStats() (map[models.VerificationTier]int64, error) {
	type tierCount struct {
		VerificationTier models.VerificationTier
		Count            int64
	}

	var rows []tierCount
	err := r.db.Model(&models.Employer{}).
		Select("verification_tier, COUNT(*) as count").
		Group("verification_tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[models.VerificationTier]int64, len(rows))
	for _, row := range rows {
		stats[row.VerificationTier] = row.Count
	}
	return stats, nil
}

// applyUpdate runs a single-row UPDATE, appending the audit entry in the same
// statement when one is given.
func (r *EmployerRepositoryImpl) applyUpdate(employerID string, updates map[string]interface{}, entry *models.AuditEntry) error {
	if entry != nil {
		entryJSON, err := json.Marshal([]models.AuditEntry{*entry})
		if err != nil {
			return fmt.Errorf("failed to marshal audit entry: %w", err)
		}
		updates["audit_trail"] = gorm.Expr("COALESCE(audit_trail, '[]'::jsonb) || ?::jsonb", string(entryJSON))
	}

	result := r.db.Model(&models.Employer{}).Where("id = ?", employerID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployerNotFound
	}
	return nil
}
