package models

// VerificationTrigger is an event that may advance the verification tier.
type VerificationTrigger string

const (
	TriggerCodeConfirmed      VerificationTrigger = "code_confirmed"
	TriggerDocumentsSubmitted VerificationTrigger = "documents_submitted"
	TriggerAdminApprove       VerificationTrigger = "admin_approve"
	TriggerAdminReject        VerificationTrigger = "admin_reject"
	TriggerAdminSuspend       VerificationTrigger = "admin_suspend"
)

// verificationTransitions is the closed transition table. Anything absent
// here is an illegal tier change.
var verificationTransitions = map[VerificationTier]map[VerificationTrigger]VerificationTier{
	TierUnverified: {
		TriggerCodeConfirmed: TierEmailVerified,
	},
	TierEmailVerified: {
		TriggerDocumentsSubmitted: TierDocumentVerified,
	},
	TierDocumentVerified: {
		TriggerAdminApprove: TierFullyVerified,
		TriggerAdminReject:  TierRejected,
	},
	TierRejected: {
		TriggerDocumentsSubmitted: TierDocumentVerified,
	},
}

// NextTier resolves the target tier for a trigger fired at the current tier.
// Suspension is legal from every tier except SUSPENDED itself.
func NextTier(from VerificationTier, trigger VerificationTrigger) (VerificationTier, bool) {
	if trigger == TriggerAdminSuspend {
		if from == TierSuspended {
			return "", false
		}
		return TierSuspended, true
	}

	targets, ok := verificationTransitions[from]
	if !ok {
		return "", false
	}
	to, ok := targets[trigger]
	return to, ok
}
