package service

import (
	"fmt"

	"dental-clinic-api/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends account-related emails. Delivery failure is never fatal to
// the operation that triggered the send; callers log and move on.
type Mailer interface {
	SendResetPasswordEmail(email, token string) error
	SendPasswordChangedEmail(email string) error
}

type smtpMailer struct {
	cfg     config.SMTPConfig
	baseURL string
	log     *logrus.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, baseURL string, log *logrus.Logger) Mailer {
	return &smtpMailer{
		cfg:     cfg,
		baseURL: baseURL,
		log:     log,
	}
}

func (m *smtpMailer) SendResetPasswordEmail(email, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)

	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>We received a request to reset the password for your account.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>This link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>
	`, resetLink)

	return m.send(email, "Reset your password", body)
}

func (m *smtpMailer) SendPasswordChangedEmail(email string) error {
	body := `
		<h2>Password Changed</h2>
		<p>The password for your account was just changed.</p>
		<p>If this was not you, please contact the clinic immediately.</p>
	`

	return m.send(email, "Your password was changed", body)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Warnf("Failed to send email to %s: %+v", to, err)
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
