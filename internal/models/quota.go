package models

// UnlimitedPosts marks a quota cell with no posting cap.
const UnlimitedPosts = -1

// jobPostingLimits is the static quota matrix:
// subscription tier x verification tier -> active posting limit.
var jobPostingLimits = map[SubscriptionTier]map[VerificationTier]int{
	SubscriptionFree: {
		TierUnverified:       0,
		TierEmailVerified:    2,
		TierDocumentVerified: 3,
		TierFullyVerified:    5,
	},
	SubscriptionBasic: {
		TierUnverified:       0,
		TierEmailVerified:    5,
		TierDocumentVerified: 10,
		TierFullyVerified:    15,
	},
	SubscriptionPremium: {
		TierUnverified:       0,
		TierEmailVerified:    20,
		TierDocumentVerified: 50,
		TierFullyVerified:    100,
	},
	SubscriptionBusiness: {
		TierUnverified:       0,
		TierEmailVerified:    50,
		TierDocumentVerified: 150,
		TierFullyVerified:    UnlimitedPosts,
	},
}

// QuotaLimit looks up the posting limit for a subscription/verification pair.
// Tiers outside the matrix (REJECTED, SUSPENDED) resolve to 0.
func QuotaLimit(sub SubscriptionTier, ver VerificationTier) int {
	row, ok := jobPostingLimits[sub]
	if !ok {
		return 0
	}
	return row[ver]
}

// QuotaRow returns the full verification row for a subscription tier, for
// status and pricing responses.
func QuotaRow(sub SubscriptionTier) map[VerificationTier]int {
	row := make(map[VerificationTier]int, 4)
	for ver, limit := range jobPostingLimits[sub] {
		row[ver] = limit
	}
	return row
}

// SubscriptionPricing lists the stubbed monthly/yearly prices per tier.
var SubscriptionPricing = map[SubscriptionTier]map[string]int{
	SubscriptionFree:     {"monthly": 0, "yearly": 0},
	SubscriptionBasic:    {"monthly": 2000, "yearly": 20000},
	SubscriptionPremium:  {"monthly": 5000, "yearly": 50000},
	SubscriptionBusiness: {"monthly": 15000, "yearly": 150000},
}
