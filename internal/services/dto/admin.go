package dto

// VerificationQueueItem is one employer awaiting an admin verdict.
type VerificationQueueItem struct {
	EmployerID  string      `json:"employer_id"`
	CompanyName string      `json:"company_name"`
	CompanyType string      `json:"company_type"`
	WorkEmail   string      `json:"work_email"`
	TrustScore  int         `json:"trust_score"`
	Documents   interface{} `json:"documents"`
	SubmittedAt string      `json:"submitted_at"`
}

// ChecklistItem is one manual or automatic check on the admin review sheet.
type ChecklistItem struct {
	Value       string `json:"value"`
	Status      string `json:"status"`
	Instruction string `json:"instruction,omitempty"`
}

// Checklist statuses. Automatic checks settle on pass/fail; manual ones stay
// pending until the admin works through them.
const (
	CheckPending = "pending"
	CheckMissing = "missing"
	CheckPass    = "pass"
	CheckFail    = "fail"
)

// VerificationDetail is the per-employer review sheet for an admin verdict.
type VerificationDetail struct {
	EmployerID       string                   `json:"employer_id"`
	CompanyName      string                   `json:"company_name"`
	CompanyType      string                   `json:"company_type"`
	VerificationTier string                   `json:"verification_tier"`
	TrustScore       int                      `json:"trust_score"`
	WorkEmail        string                   `json:"work_email"`
	Checklist        map[string]ChecklistItem `json:"checklist"`
	ChecksPassed     int                      `json:"checks_passed"`
	Documents        interface{}              `json:"documents"`
}

// VerificationStats aggregates the tier distribution for the admin dashboard.
type VerificationStats struct {
	ByTier  map[string]int64 `json:"by_tier"`
	Pending int64            `json:"pending"`
	Total   int64            `json:"total"`
}
