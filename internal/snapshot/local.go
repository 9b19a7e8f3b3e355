package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promowatch/promowatch/internal/monitor"
)

// LocalStore writes snapshots to the local filesystem.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a filesystem-backed snapshot store rooted at baseDir.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// SaveSnapshot writes the page body to disk and returns a file:// URI.
func (s *LocalStore) SaveSnapshot(ctx context.Context, runID string, page monitor.Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}
	if page.ContentLength() == 0 {
		return "", fmt.Errorf("empty page body")
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(objectName(runID, page)))

	// Reject paths escaping the base directory.
	cleanBase := filepath.Clean(s.baseDir)
	if !strings.HasPrefix(filepath.Clean(fullPath), cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create snapshot subdir: %w", err)
	}
	if err := os.WriteFile(fullPath, page.Body, 0o600); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", fullPath, err)
	}
	return fmt.Sprintf("file://%s", fullPath), nil
}
