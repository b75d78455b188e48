package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"jobscape_backend/internal/config"
	"jobscape_backend/internal/email"
	"jobscape_backend/internal/logger"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/ratelimit"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/services/dto"
	"jobscape_backend/internal/trust"
	"jobscape_backend/pkg/apperrors"
)

type VerificationService interface {
	// Work email channel
	SendCode(ctx context.Context, employerID, workEmail string) error
	ConfirmCode(ctx context.Context, employerID, code string) error

	// Document channel
	SubmitDocuments(ctx context.Context, employerID string, docs []models.VerificationDocument) error
	SubmitStartupData(ctx context.Context, employerID string, req *dto.StartupDataRequest) (int, error)

	// Admin verdicts
	Approve(employerID, adminID, notes string) error
	Reject(employerID, adminID, notes string) error
	Suspend(employerID, adminID, notes string) error

	// Status view
	GetStatus(employerID string) (*dto.VerificationStatus, error)
}

type verificationService struct {
	employerRepo repositories.EmployerRepository
	userRepo     repositories.UserRepository
	notifier     email.Notifier
	limiter      ratelimit.ResendLimiter
}

func NewVerificationService(
	employerRepo repositories.EmployerRepository,
	userRepo repositories.UserRepository,
	notifier email.Notifier,
	limiter ratelimit.ResendLimiter,
) VerificationService {
	return &verificationService{
		employerRepo: employerRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		limiter:      limiter,
	}
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// hashCode stores only a digest of the code, never the code itself.
func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func codesEqual(hash, code string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(hashCode(code))) == 1
}

func resendWindow() time.Duration {
	return time.Duration(config.GetConfig().Verification.ResendWindowSeconds) * time.Second
}

func codeTTL() time.Duration {
	return time.Duration(config.GetConfig().Verification.CodeTTLMinutes) * time.Minute
}

// SendCode issues a fresh one-time code and emails it to the work address.
// Resends within the cooldown window are rejected with a retry-after hint.
// Already verified employers cannot restart the channel.
func (s *verificationService) SendCode(ctx context.Context, employerID, workEmail string) error {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	// Re-sending to an already confirmed address is a no-op request. A new
	// address restarts the channel without touching the tier.
	if employer.WorkEmailVerified && employer.WorkEmail == workEmail {
		return apperrors.ErrAlreadyVerified
	}

	window := resendWindow()

	// Shared-store limiter first. It is advisory: the conditional write on
	// code_sent_at below is the final arbiter.
	reserved := false
	if s.limiter != nil {
		retryAfter, err := s.limiter.Reserve(ctx, employerID, window)
		if err != nil {
			logger.Warn("resend limiter unavailable, falling back to database guard", "error", err)
		} else if retryAfter > 0 {
			return apperrors.ErrResendTooSoon(int(retryAfter.Seconds() + 0.5))
		} else {
			reserved = true
		}
	}

	// A failed issue returns the slot, so the caller can retry without
	// waiting out the window.
	releaseSlot := func() {
		if !reserved {
			return
		}
		if err := s.limiter.Release(ctx, employerID); err != nil {
			logger.WithError(err).Warn("failed to release resend slot", "employer_id", employerID)
		}
	}

	code, err := generateCode()
	if err != nil {
		releaseSlot()
		return apperrors.InternalError(err)
	}

	now := time.Now()
	if employer.WorkEmail != workEmail {
		if err := s.employerRepo.ResetWorkEmail(employerID, workEmail); err != nil {
			releaseSlot()
			return apperrors.DatabaseError(err)
		}
	}

	won, err := s.employerRepo.SavePendingCode(employerID, hashCode(code), now, window)
	if err != nil {
		releaseSlot()
		return apperrors.DatabaseError(err)
	}
	if !won {
		// A code was sent inside the window, possibly by another instance.
		remaining := window
		if employer.CodeSentAt != nil {
			remaining = window - now.Sub(*employer.CodeSentAt)
		}
		if remaining < time.Second {
			remaining = time.Second
		}
		return apperrors.ErrResendTooSoon(int(remaining.Seconds() + 0.5))
	}

	// Delivery failure is reported but never rolls back the issued code.
	if err := s.notifier.SendVerificationCode(workEmail, employer.CompanyName, code); err != nil {
		logger.WithError(err).Error("failed to deliver verification code", "employer_id", employerID)
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "verification",
			"Code was issued but could not be delivered. Try resending later.", 502)
	}

	logger.Info("verification code sent", "employer_id", employerID)
	return nil
}

// ConfirmCode validates the submitted code against the stored digest and, on
// success, promotes the employer to EMAIL_VERIFIED with the domain-based
// trust score. The pending code is cleared on success, and kept on mismatch
// so the employer can retry until expiry.
func (s *verificationService) ConfirmCode(ctx context.Context, employerID, code string) error {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	// A confirmed address with no outstanding code has nothing left to
	// confirm. A fresh pending code (issued for a changed address) still
	// goes through the normal path below.
	if employer.WorkEmailVerified && employer.PendingCodeHash == "" {
		return apperrors.ErrAlreadyVerified
	}

	if employer.PendingCodeHash == "" || employer.CodeSentAt == nil {
		return apperrors.ErrNoPendingCode
	}

	if time.Since(*employer.CodeSentAt) > codeTTL() {
		return apperrors.ErrCodeExpired
	}

	if !codesEqual(employer.PendingCodeHash, code) {
		return apperrors.ErrCodeMismatch
	}

	next, ok := models.NextTier(employer.VerificationTier, models.TriggerCodeConfirmed)
	if !ok {
		if employer.VerificationTier != models.TierUnverified {
			// Email re-verification after an address change does not move
			// the tier; just mark the address confirmed.
			next = employer.VerificationTier
		} else {
			return apperrors.ErrInvalidTransition(string(employer.VerificationTier), string(models.TierEmailVerified))
		}
	}

	score := employer.TrustScore
	if next == models.TierEmailVerified {
		score = trust.EmailVerifiedScore(employer.WorkEmail, employer.CompanyWebsite)
	}

	entry := models.AuditEntry{
		Actor:     employerID,
		Action:    "work_email_verified",
		Timestamp: time.Now(),
	}

	if err := s.employerRepo.ConfirmWorkEmail(employerID, next, score, entry); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.Info("work email confirmed", "employer_id", employerID, "tier", string(next), "trust_score", score)
	return nil
}

// SubmitDocuments promotes an EMAIL_VERIFIED (or resubmitting REJECTED)
// employer to DOCUMENT_VERIFIED once at least one accepted document carries
// both an identifier and a stored file reference.
func (s *verificationService) SubmitDocuments(ctx context.Context, employerID string, docs []models.VerificationDocument) error {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	next, ok := models.NextTier(employer.VerificationTier, models.TriggerDocumentsSubmitted)
	if !ok {
		return apperrors.ErrInvalidTransition(string(employer.VerificationTier), string(models.TierDocumentVerified))
	}

	complete := false
	for _, d := range docs {
		if models.ValidDocumentType(string(d.Type)) &&
			strings.TrimSpace(d.Identifier) != "" && d.URL != "" {
			complete = true
			break
		}
	}
	if !complete {
		return apperrors.ErrIncompleteDocuments
	}

	score := trust.DocumentSubmittedScore(employer.TrustScore)
	entry := models.AuditEntry{
		Actor:     employerID,
		Action:    "documents_submitted",
		Timestamp: time.Now(),
	}

	if err := s.employerRepo.SubmitDocuments(employerID, docs, next, score, entry); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.Info("verification documents submitted", "employer_id", employerID, "tier", string(next), "trust_score", score)
	return nil
}

// SubmitStartupData runs the alternative verification path for startups and
// returns the computed trust score. It does not change the verification tier;
// the documents channel still owns tier promotion.
func (s *verificationService) SubmitStartupData(ctx context.Context, employerID string, req *dto.StartupDataRequest) (int, error) {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return 0, apperrors.ErrNotFound(err)
		}
		return 0, apperrors.DatabaseError(err)
	}

	if employer.CompanyType != models.CompanyStartup {
		return 0, apperrors.NewBadRequestError("Alternative verification is only available to startups")
	}

	sig := trust.StartupSignals{
		LinkedInURL:       req.LinkedInURL,
		LinkedInFollowers: req.LinkedInFollowers,
		WebsiteHasSSL:     req.WebsiteHasSSL,
		FoundedYear:       employer.FoundedYear,
		WorkEmail:         employer.WorkEmail,
		CompanyWebsite:    employer.CompanyWebsite,
	}
	score := trust.StartupScore(sig, time.Now())

	data := map[string]interface{}{
		"linkedin_url":       req.LinkedInURL,
		"linkedin_followers": req.LinkedInFollowers,
		"website_has_ssl":    req.WebsiteHasSSL,
		"pitch_deck_url":     req.PitchDeckURL,
		"submitted_at":       time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.employerRepo.SaveAlternativeData(employerID, data, score); err != nil {
		return 0, apperrors.DatabaseError(err)
	}

	logger.Info("startup alternative data scored", "employer_id", employerID, "trust_score", score)
	return score, nil
}

// Approve moves a DOCUMENT_VERIFIED employer to FULLY_VERIFIED at the
// approved trust score and notifies the company.
func (s *verificationService) Approve(employerID, adminID, notes string) error {
	return s.decide(employerID, adminID, notes, models.TriggerAdminApprove, "approved")
}

// Reject moves a DOCUMENT_VERIFIED employer to REJECTED. The employer can
// resubmit documents afterwards.
func (s *verificationService) Reject(employerID, adminID, notes string) error {
	return s.decide(employerID, adminID, notes, models.TriggerAdminReject, "rejected")
}

// Suspend zeroes the trust score and halts all posting. Legal from any tier.
func (s *verificationService) Suspend(employerID, adminID, notes string) error {
	return s.decide(employerID, adminID, notes, models.TriggerAdminSuspend, "suspended")
}

func (s *verificationService) decide(employerID, adminID, notes string, trigger models.VerificationTrigger, decision string) error {
	employer, err := s.employerRepo.FindByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployerNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	next, ok := models.NextTier(employer.VerificationTier, trigger)
	if !ok {
		targets := map[models.VerificationTrigger]models.VerificationTier{
			models.TriggerAdminApprove: models.TierFullyVerified,
			models.TriggerAdminReject:  models.TierRejected,
			models.TriggerAdminSuspend: models.TierSuspended,
		}
		return apperrors.ErrInvalidTransition(string(employer.VerificationTier), string(targets[trigger]))
	}

	var score int
	var verifiedAt *time.Time
	verifiedBy := ""
	switch next {
	case models.TierFullyVerified:
		score = trust.ScoreAdminApproved
		now := time.Now()
		verifiedAt = &now
		verifiedBy = adminID
	case models.TierSuspended:
		score = trust.ScoreSuspended
	default: // REJECTED keeps the current score
		score = employer.TrustScore
	}

	entry := models.AuditEntry{
		Actor:     adminID,
		Action:    "admin_" + decision,
		Timestamp: time.Now(),
		Note:      notes,
	}

	if err := s.employerRepo.ApplyAdminDecision(employerID, next, score, verifiedBy, verifiedAt, entry); err != nil {
		return apperrors.DatabaseError(err)
	}

	// Suspension blocks the login too.
	if next == models.TierSuspended {
		if err := s.userRepo.UpdateStatus(employer.UserID, models.UserStatusSuspended); err != nil {
			return apperrors.DatabaseError(err)
		}
	}

	if employer.WorkEmail != "" {
		if err := s.notifier.SendDecision(employer.WorkEmail, employer.CompanyName, decision, notes); err != nil {
			logger.WithError(err).Warn("failed to send decision notification", "employer_id", employerID)
		}
	}

	logger.Info("admin decision applied",
		"employer_id", employerID, "admin_id", adminID, "decision", decision, "tier", string(next))
	return nil
}

// GetStatus assembles the verification view: tier, score, badges, documents
// and the live quota.
func (s *verificationService) GetStatus(employerID string) (*dto.VerificationStatus, error) {
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

	canPost, reason := employer.CanPostJob()
	nextUpgrade, upgradeBenefits := employer.UpgradeHint()

	// Pending-code state for the UI: whether the last code is stale and
	// whether a resend would pass the cooldown right now.
	codeExpired := false
	canResend := true
	if employer.PendingCodeHash != "" && employer.CodeSentAt != nil {
		codeExpired = time.Since(*employer.CodeSentAt) > codeTTL()
		canResend = time.Since(*employer.CodeSentAt) >= resendWindow()
	}

	return &dto.VerificationStatus{
		VerificationTier:  string(employer.VerificationTier),
		TrustScore:        employer.TrustScore,
		WorkEmail:         employer.WorkEmail,
		WorkEmailVerified: employer.WorkEmailVerified,
		CodeExpired:       codeExpired,
		CanResend:         canResend,
		VerifiedAt:        employer.VerifiedAt,
		Badges:            employer.Badges(),
		NextUpgrade:       nextUpgrade,
		UpgradeBenefits:   upgradeBenefits,
		Documents:         docs,
		Quota: dto.QuotaStatus{
			CanPost:          canPost,
			Reason:           reason,
			ActivePosts:      employer.ActiveJobPostsCount,
			Limit:            employer.JobPostingLimit(),
			Remaining:        employer.RemainingSlots(),
			SubscriptionTier: string(employer.SubscriptionTier),
			VerificationTier: string(employer.VerificationTier),
		},
	}, nil
}
