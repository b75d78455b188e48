package models

type UserRole string
type UserStatus string
type VerificationTier string
type SubscriptionTier string
type SubscriptionStatus string
type CompanyType string
type DocumentType string

const (
	UserRoleSeeker   UserRole = "job_seeker"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	TierUnverified       VerificationTier = "UNVERIFIED"
	TierEmailVerified    VerificationTier = "EMAIL_VERIFIED"
	TierDocumentVerified VerificationTier = "DOCUMENT_VERIFIED"
	TierFullyVerified    VerificationTier = "FULLY_VERIFIED"
	TierRejected         VerificationTier = "REJECTED"
	TierSuspended        VerificationTier = "SUSPENDED"

	SubscriptionFree     SubscriptionTier = "FREE"
	SubscriptionBasic    SubscriptionTier = "BASIC"
	SubscriptionPremium  SubscriptionTier = "PREMIUM"
	SubscriptionBusiness SubscriptionTier = "BUSINESS"

	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"

	CompanyRegistered CompanyType = "REGISTERED"
	CompanyStartup    CompanyType = "STARTUP"
	CompanyOther      CompanyType = "OTHER"

	DocumentIncorporation  DocumentType = "incorporation_certificate"
	DocumentTradeLicense   DocumentType = "trade_license"
	DocumentTaxCertificate DocumentType = "tax_certificate"
)

// ValidVerificationTier reports whether s is a member of the closed tier set.
func ValidVerificationTier(s string) bool {
	switch VerificationTier(s) {
	case TierUnverified, TierEmailVerified, TierDocumentVerified,
		TierFullyVerified, TierRejected, TierSuspended:
		return true
	}
	return false
}

// ValidSubscriptionTier reports whether s names a subscription tier.
func ValidSubscriptionTier(s string) bool {
	switch SubscriptionTier(s) {
	case SubscriptionFree, SubscriptionBasic, SubscriptionPremium, SubscriptionBusiness:
		return true
	}
	return false
}

// ValidDocumentType reports whether s is an accepted document type.
func ValidDocumentType(s string) bool {
	switch DocumentType(s) {
	case DocumentIncorporation, DocumentTradeLicense, DocumentTaxCertificate:
		return true
	}
	return false
}

// TierNumber converts a verification tier to its ladder position:
// 0 = UNVERIFIED/REJECTED/SUSPENDED, 1 = EMAIL_VERIFIED,
// 2 = DOCUMENT_VERIFIED, 3 = FULLY_VERIFIED.
func (t VerificationTier) TierNumber() int {
	switch t {
	case TierEmailVerified:
		return 1
	case TierDocumentVerified:
		return 2
	case TierFullyVerified:
		return 3
	default:
		return 0
	}
}
