package notify

import (
	"context"
	"sync"
	"time"

	"github.com/promowatch/promowatch/internal/monitor"
)

// MemoryProvider stores notified events for inspection in tests.
type MemoryProvider struct {
	mu     sync.RWMutex
	events []PromotionEvent
}

// NewMemoryProvider returns a MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// NotifyPromotions records one event per positive verdict.
func (p *MemoryProvider) NotifyPromotions(_ context.Context, result monitor.RunResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, v := range promotions(result) {
		p.events = append(p.events, PromotionEvent{
			RunID:         result.RunID,
			Site:          v.Site,
			PromotionText: v.PromotionText,
			CheckedAt:     v.CheckedAt.Format(time.RFC3339),
		})
	}
	return nil
}

// Close does nothing.
func (p *MemoryProvider) Close() error { return nil }

// Events returns the recorded notifications.
func (p *MemoryProvider) Events() []PromotionEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]PromotionEvent, len(p.events))
	copy(out, p.events)
	return out
}
