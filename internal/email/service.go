package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Failures are reported, not retried;
// callers decide whether mail is best-effort.
type Service interface {
	SendWelcome(to, name string) error
	SendPatientCredentials(to, name, patientID string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendWelcome(to, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour hospital account has been created.\n", name)
	return s.send(to, "Welcome", body)
}

func (s *smtpService) SendPatientCredentials(to, name, patientID string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour patient ID is %s. You can sign in with it and your registered phone number.\n",
		name, patientID,
	)
	return s.send(to, "Your patient ID", body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService discards all mail. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendWelcome(string, string) error                    { return nil }
func (NoopService) SendPatientCredentials(string, string, string) error { return nil }
