package dto

import "time"

type CreateEmployerRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=2,max=200"`
	CompanyWebsite string `json:"company_website" validate:"omitempty,url"`
	Industry       string `json:"industry" validate:"max=100"`
	Location       string `json:"location" validate:"max=200"`
	Description    string `json:"description" validate:"max=5000"`
	CompanyType    string `json:"company_type" validate:"omitempty,is-company-type"`
	FoundedYear    int    `json:"founded_year" validate:"omitempty,min=1800,max=2100"`
}

type UpdateEmployerRequest struct {
	CompanyName    *string `json:"company_name" validate:"omitempty,min=2,max=200"`
	CompanyWebsite *string `json:"company_website" validate:"omitempty,url"`
	Industry       *string `json:"industry" validate:"omitempty,max=100"`
	Location       *string `json:"location" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	LogoURL        *string `json:"logo_url" validate:"omitempty,url"`
	FoundedYear    *int    `json:"founded_year" validate:"omitempty,min=1800,max=2100"`
}

// QuotaStatus reports the live posting quota for an employer.
type QuotaStatus struct {
	CanPost          bool   `json:"can_post"`
	Reason           string `json:"reason"`
	ActivePosts      int    `json:"active_posts"`
	Limit            int    `json:"limit"`     // -1 means unlimited
	Remaining        int    `json:"remaining"` // -1 means unlimited
	SubscriptionTier string `json:"subscription_tier"`
	VerificationTier string `json:"verification_tier"`
}

// VerificationStatus is the public verification view of an employer.
type VerificationStatus struct {
	VerificationTier  string      `json:"verification_tier"`
	TrustScore        int         `json:"trust_score"`
	WorkEmail         string      `json:"work_email,omitempty"`
	WorkEmailVerified bool        `json:"work_email_verified"`
	CodeExpired       bool        `json:"code_expired"`
	CanResend         bool        `json:"can_resend"`
	VerifiedAt        *time.Time  `json:"verified_at,omitempty"`
	Badges            []string    `json:"badges"`
	NextUpgrade       string      `json:"next_upgrade,omitempty"`
	UpgradeBenefits   string      `json:"upgrade_benefits,omitempty"`
	Documents         interface{} `json:"documents,omitempty"`
	Quota             QuotaStatus `json:"quota"`
}
