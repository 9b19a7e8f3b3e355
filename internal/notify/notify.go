// Package notify pushes promotion alerts to external channels once a run
// completes. Notification failures are logged and never abort the run; the
// persisted result files remain the source of truth.
package notify

import (
	"context"

	"github.com/promowatch/promowatch/internal/monitor"
)

// PromotionEvent is the payload published for one positive verdict.
type PromotionEvent struct {
	RunID         string `json:"run_id"`
	Site          string `json:"site"`
	PromotionText string `json:"promotion_text"`
	CheckedAt     string `json:"checked_at"`
}

// Provider defines the common interface for a notification channel.
type Provider interface {
	// NotifyPromotions reports the positive verdicts of one run.
	NotifyPromotions(ctx context.Context, result monitor.RunResult) error

	// Close cleans up any client connections and resources.
	Close() error
}

// NoOpProvider is the default channel; it reports nothing.
type NoOpProvider struct{}

// NotifyPromotions for NoOpProvider does nothing.
func (NoOpProvider) NotifyPromotions(_ context.Context, _ monitor.RunResult) error { return nil }

// Close for NoOpProvider does nothing.
func (NoOpProvider) Close() error { return nil }

// promotions filters a run's verdicts down to the positive ones.
func promotions(result monitor.RunResult) []monitor.Verdict {
	var out []monitor.Verdict
	for _, v := range result.Verdicts {
		if v.HasPromotion {
			out = append(out, v)
		}
	}
	return out
}
