package email

import (
	"fmt"

	"jobscape_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPNotifier sends notifications over SMTP via gomail.
type SMTPNotifier struct {
	cfg *config.Config
}

func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) SendVerificationCode(to, companyName, code string) error {
	subject := "Your JobScape verification code"
	body := fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>Your work email verification code is:</p>"+
			"<h2>%s</h2>"+
			"<p>The code expires in 15 minutes. If you did not request it, ignore this email.</p>",
		companyName, code,
	)
	return n.send(to, subject, body)
}

func (n *SMTPNotifier) SendDecision(to, companyName, decision, notes string) error {
	subject := fmt.Sprintf("Your JobScape verification was %s", decision)
	body := fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>Your employer verification request was <b>%s</b>.</p>",
		companyName, decision,
	)
	if notes != "" {
		body += fmt.Sprintf("<p>Reviewer notes: %s</p>", notes)
	}
	return n.send(to, subject, body)
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.Email.FromEmail, n.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		n.cfg.Email.SMTPHost,
		n.cfg.Email.SMTPPort,
		n.cfg.Email.SMTPUsername,
		n.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
