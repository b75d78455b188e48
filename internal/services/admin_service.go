package services

import (
	"errors"
	"fmt"
	"time"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/internal/trust"
	"jobscape_backend/pkg/apperrors"
)

type AdminService interface {
	// PendingVerifications lists employers waiting for an admin verdict.
	PendingVerifications(limit, offset int) ([]dto.VerificationQueueItem, int64, error)
	// VerificationDetail builds the per-employer review sheet: the
	// domain-match result plus the manual checks an admin walks through
	// before a verdict.
	VerificationDetail(employerID string) (*dto.VerificationDetail, error)
	Stats() (*dto.VerificationStats, error)
	// ListEmployers pages through all employers, optionally filtered to a
	// single verification tier.
	ListEmployers(tier string, limit, offset int) ([]models.Employer, int64, error)
}

type adminService struct {
	employerRepo repositories.EmployerRepository
}

func NewAdminService(employerRepo repositories.EmployerRepository) AdminService {
	return &adminService{employerRepo: employerRepo}
}

func (s *adminService) PendingVerifications(limit, offset int) ([]dto.VerificationQueueItem, int64, error) {
	employers, total, err := s.employerRepo.FindByTier(models.TierDocumentVerified, limit, offset)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}

	items := make([]dto.VerificationQueueItem, 0, len(employers))
	for i := range employers {
		e := &employers[i]
		docs, err := e.DecodedDocuments()
		if err != nil {
			return nil, 0, apperrors.InternalError(err)
		}

		submittedAt := ""
		if entries, err := e.DecodedAuditTrail(); err == nil {
			for j := len(entries) - 1; j >= 0; j-- {
				if entries[j].Action == "documents_submitted" {
					submittedAt = entries[j].Timestamp.Format(time.RFC3339)
					break
				}
			}
		}

		items = append(items, dto.VerificationQueueItem{
			EmployerID:  e.ID,
			CompanyName: e.CompanyName,
			CompanyType: string(e.CompanyType),
			WorkEmail:   e.WorkEmail,
			TrustScore:  e.TrustScore,
			Documents:   docs,
			SubmittedAt: submittedAt,
		})
	}

	return items, total, nil
}

func (s *adminService) VerificationDetail(employerID string) (*dto.VerificationDetail, error) {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	docs, err := employer.DecodedDocuments()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	checklist := map[string]dto.ChecklistItem{
		"company_name": {
			Value:       employer.CompanyName,
			Status:      dto.CheckPending,
			Instruction: "Search the company on the official business registry",
		},
		"website": {
			Value:       employer.CompanyWebsite,
			Status:      dto.CheckPending,
			Instruction: "Visit the website and verify it is legitimate",
		},
		"online_presence": {
			Value:       employer.CompanyName,
			Status:      dto.CheckPending,
			Instruction: "Search the company on LinkedIn and the open web",
		},
		"documents": {
			Value:       fmt.Sprintf("%d documents uploaded", len(docs)),
			Status:      dto.CheckPending,
			Instruction: "Check document authenticity against the stated identifiers",
		},
	}
	if employer.CompanyWebsite == "" {
		checklist["website"] = dto.ChecklistItem{
			Value:  "Not provided",
			Status: dto.CheckMissing,
		}
	}

	// Registration number comes from the submitted identifiers.
	registration := dto.ChecklistItem{
		Value:  "Not provided",
		Status: dto.CheckMissing,
	}
	for _, d := range docs {
		if d.Identifier != "" {
			registration = dto.ChecklistItem{
				Value:       d.Identifier,
				Status:      dto.CheckPending,
				Instruction: "Verify the number exists in the registry database",
			}
			break
		}
	}
	checklist["registration_number"] = registration

	// The domain comparison is the one check settled automatically.
	domainItem := dto.ChecklistItem{
		Value:       trust.EmailDomain(employer.WorkEmail),
		Instruction: fmt.Sprintf("Must match the website domain: %s", trust.WebsiteDomain(employer.CompanyWebsite)),
	}
	switch trust.CompareDomains(employer.WorkEmail, employer.CompanyWebsite) {
	case trust.OutcomeMatch:
		domainItem.Status = dto.CheckPass
	case trust.OutcomeNoWebsite:
		domainItem.Status = dto.CheckMissing
	default:
		domainItem.Status = dto.CheckFail
	}
	checklist["work_email_domain"] = domainItem

	passed := 0
	for _, item := range checklist {
		if item.Status == dto.CheckPass {
			passed++
		}
	}

	return &dto.VerificationDetail{
		EmployerID:       employer.ID,
		CompanyName:      employer.CompanyName,
		CompanyType:      string(employer.CompanyType),
		VerificationTier: string(employer.VerificationTier),
		TrustScore:       employer.TrustScore,
		WorkEmail:        employer.WorkEmail,
		Checklist:        checklist,
		ChecksPassed:     passed,
		Documents:        docs,
	}, nil
}

func (s *adminService) Stats() (*dto.VerificationStats, error) {
	byTier, err := s.employerRepo.TierStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats := &dto.VerificationStats{ByTier: make(map[string]int64, len(byTier))}
	for tier, count := range byTier {
		stats.ByTier[string(tier)] = count
		stats.Total += count
	}
	stats.Pending = byTier[models.TierDocumentVerified]
	return stats, nil
}

func (s *adminService) ListEmployers(tier string, limit, offset int) ([]models.Employer, int64, error) {
	if tier != "" {
		if !models.ValidVerificationTier(tier) {
			return nil, 0, apperrors.ErrInvalidTier
		}
		employers, total, err := s.employerRepo.FindByTier(models.VerificationTier(tier), limit, offset)
		if err != nil {
			return nil, 0, apperrors.DatabaseError(err)
		}
		return employers, total, nil
	}

	employers, total, err := s.employerRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	return employers, total, nil
}
