package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/promowatch/promowatch/internal/monitor"
)

// PubSubProvider publishes one JSON PromotionEvent per positive verdict to
// a Google Cloud Pub/Sub topic.
type PubSubProvider struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubProvider creates a Pub/Sub client and verifies the topic exists.
// It authenticates using Application Default Credentials.
func NewPubSubProvider(ctx context.Context, projectID, topicID string) (*PubSubProvider, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to check for topic existence: %w", err)
	}
	if !exists {
		_ = client.Close()
		return nil, fmt.Errorf("pubsub topic %q does not exist in project %q", topicID, projectID)
	}

	return &PubSubProvider{
		client: client,
		topic:  topic,
	}, nil
}

// NotifyPromotions publishes each positive verdict and waits for the server
// acks so a scheduled run does not exit before delivery.
func (p *PubSubProvider) NotifyPromotions(ctx context.Context, result monitor.RunResult) error {
	for _, v := range promotions(result) {
		event := PromotionEvent{
			RunID:         result.RunID,
			Site:          v.Site,
			PromotionText: v.PromotionText,
			CheckedAt:     v.CheckedAt.Format(time.RFC3339),
		}
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event for %s: %w", v.Site, err)
		}
		res := p.topic.Publish(ctx, &pubsub.Message{Data: data})
		if _, err := res.Get(ctx); err != nil {
			return fmt.Errorf("publish event for %s: %w", v.Site, err)
		}
	}
	return nil
}

// Close stops the topic's publisher and closes the client connection.
func (p *PubSubProvider) Close() error {
	p.topic.Stop()
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("failed to close pubsub client: %w", err)
	}
	return nil
}
