// Package mailer sends the portal's transactional mail. Delivery is a
// collaborator concern: callers treat failures as non-fatal and log them.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
)

// Mailer sends a single plain message.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewSMTP creates a Mailer backed by the configured SMTP relay.
func NewSMTP(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// Welcome composes the account-created message.
func Welcome(name, role, detailLabel, detailValue, loginURL string) (subject, body string) {
	subject = "Welcome to College Complaint Portal"
	body = fmt.Sprintf(
		"Hi %s,\n\nYour account has been created successfully.\n%s: %s\nRole: %s\n\nLogin at %s\n",
		name, detailLabel, detailValue, role, loginURL)
	return subject, body
}

// PasswordReset composes the reset-link message.
func PasswordReset(name, resetURL string) (subject, body string) {
	subject = "Password Reset Request"
	body = fmt.Sprintf(
		"Hi %s,\n\nYou requested a password reset. Open this link to choose a new password: %s\n\nThis link expires in 1 hour.\n",
		name, resetURL)
	return subject, body
}
