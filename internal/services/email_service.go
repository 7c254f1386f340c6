package services

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"taskly/internal/config"
	"taskly/internal/models"
)

// EmailRelay mails a notification to a recipient who had no open connection when it was created.
type EmailRelay struct {
	dial    func() (gomail.SendCloser, error)
	from    string
	baseURL string
}

func NewEmailRelay(cfg config.EmailConfig, baseURL string) *EmailRelay {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &EmailRelay{
		dial:    dialer.Dial,
		from:    cfg.FromEmail,
		baseURL: baseURL,
	}
}

func (r *EmailRelay) Name() string { return "email" }

func (r *EmailRelay) Deliver(ctx context.Context, user *models.User, n *models.Notification) error {
	if user.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", r.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "New notification")

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>%s</p>
		<p><a href="%s">Open in taskly</a></p>
	`, html.EscapeString(user.DisplayName()), html.EscapeString(n.Message), html.EscapeString(r.baseURL+n.Link))
	m.SetBody("text/html", body)
	m.AddAlternative("text/plain", n.Message+"\n\n"+r.baseURL+n.Link)

	s, err := r.dial()
	if err != nil {
		return fmt.Errorf("failed to reach smtp server: %w", err)
	}
	defer s.Close()
	if err := gomail.Send(s, m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
