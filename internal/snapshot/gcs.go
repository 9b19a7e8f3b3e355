package snapshot

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/promowatch/promowatch/internal/monitor"
)

// GCSStore writes snapshots to a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a GCS-backed snapshot store. The client authenticates
// via Application Default Credentials.
func NewGCSStore(client *storage.Client, bucket string) (*GCSStore, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

// SaveSnapshot uploads the page body and returns a gs:// URI.
func (s *GCSStore) SaveSnapshot(ctx context.Context, runID string, page monitor.Page) (string, error) {
	if page.ContentLength() == 0 {
		return "", fmt.Errorf("empty page body")
	}
	object := objectName(runID, page)
	writer := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	writer.ContentType = "text/html; charset=utf-8"
	if _, err := writer.Write(page.Body); err != nil {
		if closeErr := writer.Close(); closeErr != nil {
			return "", fmt.Errorf("write object: %w (close writer: %v)", err, closeErr)
		}
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}
