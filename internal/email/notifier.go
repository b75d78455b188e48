// Package email delivers verification notifications. Failures are logged and
// surfaced as warnings to the caller; the engine never retries and never rolls
// back a state transition because a message did not go out.
package email

// Notifier delivers engine notifications to a contact address.
type Notifier interface {
	// SendVerificationCode delivers the one-time code to the work email.
	SendVerificationCode(to, companyName, code string) error

	// SendDecision notifies the employer of an admin decision
	// (approved / rejected / suspended).
	SendDecision(to, companyName, decision, notes string) error
}
