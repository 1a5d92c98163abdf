package mailer

import (
	"fmt"

	"ai-modelgen-be/internal/config"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcomeEmail(to string, bonusCredits int) error
}

type EmailService struct {
	dialer *gomail.Dialer
	cfg    config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) IEmailService {
	return &EmailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
		cfg:    cfg,
	}
}

// SendWelcomeEmail tells a freshly initialized user about their signup bonus.
// Callers treat failure as non-fatal; the ledger write already committed.
func (s *EmailService) SendWelcomeEmail(to string, bonusCredits int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Email, s.cfg.SenderName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome! Your free credits are ready")

	body := fmt.Sprintf(`
		<h2>Welcome aboard!</h2>
		<p>Your account has been credited with <b>%d free credits</b>.</p>
		<p>Use them to generate your first 3D models from text or images.</p>
	`, bonusCredits)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
