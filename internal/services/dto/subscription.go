package dto

// UpgradeSubscriptionRequest switches the paid tier. Billing is out of band,
// the upgrade takes effect immediately.
type UpgradeSubscriptionRequest struct {
	Tier string `json:"tier" validate:"required,is-subscription-tier"`
}

type SubscriptionInfo struct {
	Tier      string `json:"tier"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
	JobLimit  int    `json:"job_limit"` // at the current verification tier
}

type TierPricing struct {
	Tier         string `json:"tier"`
	MonthlyPrice int    `json:"monthly_price"`
	AnnualPrice  int    `json:"yearly_price"`
}
