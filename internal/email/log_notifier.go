package email

import "jobscape_backend/internal/logger"

// LogNotifier records notifications in the log instead of sending them.
// Used in development and tests where SMTP is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendVerificationCode(to, companyName, code string) error {
	logger.Info("verification code (not sent, SMTP disabled)", "to", to, "company", companyName, "code", code)
	return nil
}

func (n *LogNotifier) SendDecision(to, companyName, decision, notes string) error {
	logger.Info("decision notification (not sent, SMTP disabled)", "to", to, "company", companyName, "decision", decision)
	return nil
}
