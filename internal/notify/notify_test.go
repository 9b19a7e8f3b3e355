package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/mail.v2"

	"github.com/promowatch/promowatch/internal/monitor"
)

func runWithPromotions() monitor.RunResult {
	checked := time.Unix(1700000000, 0).UTC()
	return monitor.RunResult{
		RunID: "run-7",
		Verdicts: []monitor.Verdict{
			{Site: "https://a.example", HasPromotion: true, PromotionText: "flash sale 30% off", CheckedAt: checked},
			{Site: "https://b.example", HasPromotion: false, CheckedAt: checked},
			{Site: "https://c.example", Error: "fetch_error: dial timeout", CheckedAt: checked},
			{Site: "https://d.example", HasPromotion: true, PromotionText: "free shipping weekend", CheckedAt: checked},
		},
	}
}

func TestMemoryProviderRecordsOnlyPromotions(t *testing.T) {
	t.Parallel()

	p := NewMemoryProvider()
	require.NoError(t, p.NotifyPromotions(context.Background(), runWithPromotions()))

	events := p.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "https://a.example", events[0].Site)
	assert.Equal(t, "flash sale 30% off", events[0].PromotionText)
	assert.Equal(t, "run-7", events[0].RunID)
	assert.Equal(t, "2023-11-14T22:13:20Z", events[0].CheckedAt)
	assert.Equal(t, "https://d.example", events[1].Site)
}

func TestMemoryProviderEmptyRun(t *testing.T) {
	t.Parallel()

	p := NewMemoryProvider()
	require.NoError(t, p.NotifyPromotions(context.Background(), monitor.RunResult{RunID: "run-8"}))
	assert.Empty(t, p.Events())
}

func TestEmailProviderSendsDigest(t *testing.T) {
	t.Parallel()

	var captured *gomail.Message
	p := &EmailProvider{
		cfg: EmailConfig{
			FromEmail: "alerts@promowatch.example",
			ToEmail:   "ops@promowatch.example",
		},
		send: func(m *gomail.Message) error {
			captured = m
			return nil
		},
	}

	require.NoError(t, p.NotifyPromotions(context.Background(), runWithPromotions()))
	require.NotNil(t, captured)

	assert.Equal(t, []string{"ops@promowatch.example"}, captured.GetHeader("To"))
	assert.Equal(t, []string{"alerts@promowatch.example"}, captured.GetHeader("From"))
	assert.Contains(t, captured.GetHeader("Subject")[0], "2 promotion(s)")
}

func TestEmailProviderSkipsQuietRun(t *testing.T) {
	t.Parallel()

	sent := false
	p := &EmailProvider{
		cfg: EmailConfig{ToEmail: "ops@promowatch.example"},
		send: func(*gomail.Message) error {
			sent = true
			return nil
		},
	}

	quiet := monitor.RunResult{
		RunID:    "run-9",
		Verdicts: []monitor.Verdict{{Site: "https://b.example", HasPromotion: false}},
	}
	require.NoError(t, p.NotifyPromotions(context.Background(), quiet))
	assert.False(t, sent)
}

func TestEmailProviderSendFailure(t *testing.T) {
	t.Parallel()

	p := &EmailProvider{
		cfg:  EmailConfig{ToEmail: "ops@promowatch.example"},
		send: func(*gomail.Message) error { return errors.New("smtp refused") },
	}

	err := p.NotifyPromotions(context.Background(), runWithPromotions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp refused")
}

func TestNewEmailProviderRequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := NewEmailProvider(EmailConfig{SMTPServer: "smtp.example"})
	assert.Error(t, err)

	p, err := NewEmailProvider(EmailConfig{
		SMTPServer: "smtp.example",
		SMTPPort:   587,
		SMTPUser:   "alerts@promowatch.example",
		SMTPPass:   "secret",
		ToEmail:    "ops@promowatch.example",
	})
	require.NoError(t, err)
	// From defaults to the SMTP user.
	assert.Equal(t, "alerts@promowatch.example", p.cfg.FromEmail)
}

func TestRenderDigest(t *testing.T) {
	t.Parallel()

	digest := renderDigest("run-7", []monitor.Verdict{
		{Site: "https://a.example", HasPromotion: true, PromotionText: "flash sale 30% off"},
	})
	assert.Contains(t, digest, "run-7")
	assert.Contains(t, digest, "https://a.example")
	assert.Contains(t, digest, "flash sale 30% off")
}

func TestNoOpProviderNotify(t *testing.T) {
	t.Parallel()

	var p NoOpProvider
	assert.NoError(t, p.NotifyPromotions(context.Background(), runWithPromotions()))
	assert.NoError(t, p.Close())
}
