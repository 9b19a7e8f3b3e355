package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/promowatch/promowatch/internal/monitor"
)

// EmailConfig holds SMTP configuration for the email channel.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

// Complete reports whether the config carries everything needed to send.
func (c EmailConfig) Complete() bool {
	return c.SMTPServer != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.ToEmail != ""
}

// EmailProvider sends one summary email per run when promotions were found.
type EmailProvider struct {
	cfg  EmailConfig
	send func(m *gomail.Message) error
}

// NewEmailProvider creates an email channel with the given SMTP settings.
func NewEmailProvider(cfg EmailConfig) (*EmailProvider, error) {
	if !cfg.Complete() {
		return nil, fmt.Errorf("incomplete SMTP configuration")
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.SMTPUser
	}
	dialer := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second
	return &EmailProvider{
		cfg:  cfg,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}, nil
}

// NotifyPromotions sends a plain-text digest of the run's positive
// verdicts. Runs with no promotions send nothing.
func (p *EmailProvider) NotifyPromotions(_ context.Context, result monitor.RunResult) error {
	found := promotions(result)
	if len(found) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.FromEmail)
	m.SetHeader("To", p.cfg.ToEmail)
	m.SetHeader("Subject", fmt.Sprintf("promowatch: %d promotion(s) found", len(found)))
	m.SetBody("text/plain", renderDigest(result.RunID, found))

	if err := p.send(m); err != nil {
		return fmt.Errorf("send digest email: %w", err)
	}
	return nil
}

// Close does nothing; the dialer connects per send.
func (p *EmailProvider) Close() error { return nil }

func renderDigest(runID string, found []monitor.Verdict) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s found promotions on %d site(s):\n\n", runID, len(found))
	for _, v := range found {
		fmt.Fprintf(&sb, "- %s\n  %s\n", v.Site, v.PromotionText)
	}
	return sb.String()
}
