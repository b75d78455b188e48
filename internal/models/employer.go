package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DefaultTrustScore is assigned at registration, before any verification.
const DefaultTrustScore = 20

// VerificationDocument is one uploaded document reference. The upload itself
// happens in the blob store; only the returned reference is persisted.
type VerificationDocument struct {
	Type       DocumentType `json:"type"`
	Identifier string       `json:"identifier"` // registration / license / TIN number
	URL        string       `json:"url"`
	Filename   string       `json:"filename"`
	UploadedAt time.Time    `json:"uploaded_at"`
}

// AuditEntry is one immutable record in the verification audit trail.
type AuditEntry struct {
	Actor     string    `json:"actor"` // user id of the admin or employer
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Employer is the aggregate root of the trust, verification and quota engine.
type Employer struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// Company descriptors (inputs to the trust score, not owned by the engine)
	CompanyName    string      `gorm:"not null" json:"company_name"`
	CompanyWebsite string      `json:"company_website"`
	Industry       string      `json:"industry"`
	Location       string      `json:"location"`
	Description    string      `json:"description"`
	LogoURL        string      `json:"logo_url"`
	CompanyType    CompanyType `gorm:"type:varchar(20);default:'REGISTERED'" json:"company_type"`
	FoundedYear    int         `json:"founded_year"`

	// Work email OTP state
	WorkEmail         string     `json:"work_email"`
	WorkEmailVerified bool       `gorm:"default:false" json:"work_email_verified"`
	PendingCodeHash   string     `json:"-"`
	CodeSentAt        *time.Time `json:"-"`

	// Verification state
	VerificationTier VerificationTier `gorm:"type:varchar(20);not null;default:'UNVERIFIED'" json:"verification_tier"`
	TrustScore       int              `gorm:"default:20" json:"trust_score"`
	VerifiedAt       *time.Time       `json:"verified_at"`
	VerifiedBy       string           `json:"verified_by,omitempty"`

	// Documents and audit trail, stored as JSONB
	Documents  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"documents"`
	AuditTrail datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"audit_trail"`

	// Startup alternative verification signals
	AlternativeData datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"alternative_data"`

	// Subscription (billing is stubbed; the tier gates the quota matrix)
	SubscriptionTier      SubscriptionTier   `gorm:"type:varchar(20);not null;default:'FREE'" json:"subscription_tier"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `json:"subscription_expires_at"`

	// Quota counters
	ActiveJobPostsCount int `gorm:"default:0" json:"active_job_posts_count"`
	TotalJobPostsCount  int `gorm:"default:0" json:"total_job_posts_count"`
}

// DecodedDocuments unmarshals the JSONB document list.
func (e *Employer) DecodedDocuments() ([]VerificationDocument, error) {
	var docs []VerificationDocument
	if len(e.Documents) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(e.Documents, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// DecodedAuditTrail unmarshals the JSONB audit list.
func (e *Employer) DecodedAuditTrail() ([]AuditEntry, error) {
	var entries []AuditEntry
	if len(e.AuditTrail) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(e.AuditTrail, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit trail: %w", err)
	}
	return entries, nil
}

// JobPostingLimit resolves the current posting limit from the quota matrix.
// -1 means unlimited.
func (e *Employer) JobPostingLimit() int {
	return QuotaLimit(e.SubscriptionTier, e.VerificationTier)
}

// CanPostJob checks subscription status, verification tier and the quota
// matrix against the live counter. The reason string reports remaining slots
// on success.
func (e *Employer) CanPostJob() (bool, string) {
	if e.SubscriptionStatus != SubscriptionStatusActive {
		return false, "Subscription is not active"
	}

	switch e.VerificationTier {
	case TierUnverified:
		return false, "Please verify your work email first"
	case TierSuspended:
		return false, "Account is suspended"
	case TierRejected:
		return false, "Verification was rejected. Please contact support"
	}

	limit := e.JobPostingLimit()
	if limit == -1 {
		return true, "Unlimited job postings"
	}

	if e.ActiveJobPostsCount < limit {
		remaining := limit - e.ActiveJobPostsCount
		return true, fmt.Sprintf("Can post (%d remaining out of %d)", remaining, limit)
	}
	return false, fmt.Sprintf("Job posting limit reached (%d/%d). Upgrade subscription or verification tier.",
		e.ActiveJobPostsCount, limit)
}

// RemainingSlots reports how many more jobs can be posted right now.
// -1 means unlimited.
func (e *Employer) RemainingSlots() int {
	limit := e.JobPostingLimit()
	if limit == UnlimitedPosts {
		return UnlimitedPosts
	}
	remaining := limit - e.ActiveJobPostsCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UpgradeHint names the next step that raises the posting limit, with the
// benefit it unlocks. Both strings are empty when no upgrade is left.
func (e *Employer) UpgradeHint() (next, benefits string) {
	describe := func(limit int) string {
		if limit == UnlimitedPosts {
			return "Unlimited job postings"
		}
		return fmt.Sprintf("Raises the job posting limit to %d", limit)
	}

	switch {
	case e.VerificationTier == TierEmailVerified:
		return "Document verification",
			describe(QuotaLimit(e.SubscriptionTier, TierDocumentVerified))
	case e.VerificationTier == TierDocumentVerified:
		return "Full verification",
			describe(QuotaLimit(e.SubscriptionTier, TierFullyVerified)) + " + Trusted badge"
	case e.SubscriptionTier == SubscriptionFree:
		return "BASIC subscription",
			describe(QuotaLimit(SubscriptionBasic, e.VerificationTier))
	case e.SubscriptionTier == SubscriptionBasic:
		return "PREMIUM subscription",
			describe(QuotaLimit(SubscriptionPremium, e.VerificationTier))
	case e.SubscriptionTier == SubscriptionPremium:
		return "BUSINESS subscription",
			describe(QuotaLimit(SubscriptionBusiness, e.VerificationTier))
	}
	return "", ""
}

// Badges derives the display badges for the current verification and
// subscription state.
func (e *Employer) Badges() []string {
	badges := []string{}

	if e.VerificationTier.TierNumber() >= 1 {
		badges = append(badges, "Email Verified")
	}

	if e.VerificationTier.TierNumber() >= 2 {
		switch e.CompanyType {
		case CompanyRegistered:
			badges = append(badges, "Registry Verified")
		case CompanyStartup:
			badges = append(badges, "Startup Verified")
		default:
			badges = append(badges, "Document Verified")
		}
	}

	if e.VerificationTier == TierFullyVerified {
		badges = append(badges, "Trusted Employer")
	}

	if e.SubscriptionStatus == SubscriptionStatusActive {
		switch e.SubscriptionTier {
		case SubscriptionPremium:
			badges = append(badges, "Premium Subscriber")
		case SubscriptionBusiness:
			badges = append(badges, "Business Subscriber")
		}
	}

	if e.TrustScore >= 90 {
		badges = append(badges, "High Trust Score")
	}

	return badges
}
