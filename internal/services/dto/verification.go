package dto

// SendCodeRequest starts (or restarts) work email verification.
type SendCodeRequest struct {
	WorkEmail string `json:"work_email" validate:"required,email"`
}

type ConfirmCodeRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// StartupDataRequest is the alternative verification path for startups that
// have no registry papers yet.
type StartupDataRequest struct {
	LinkedInURL       string `json:"linkedin_url" validate:"omitempty,url"`
	LinkedInFollowers int    `json:"linkedin_followers" validate:"min=0"`
	WebsiteHasSSL     bool   `json:"website_has_ssl"`
	PitchDeckURL      string `json:"pitch_deck_url" validate:"omitempty,url"`
}

// AdminDecisionRequest records an approve/reject/suspend verdict.
type AdminDecisionRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}
