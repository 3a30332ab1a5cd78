package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/eventhive/eventhive-api/internal/config"
)

type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

func New(conf *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.User, conf.Password),
		sender: conf.Sender,
	}
}

func (m *Mailer) SendPasswordReset(toEmail, toName, resetLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You requested to reset your password. Click the link below to reset it:</p>
		<a href="%s">Reset Password</a>
		<p>This link will expire in 1 hour.</p>
	`, toName, resetLink))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("m.dialer.DialAndSend -> %w", err)
	}

	return nil
}
