// Package snapshot archives raw homepage HTML for audit, one object per
// site per run.
package snapshot

import (
	"context"
	"crypto/sha256"
	"fmt"
	"path"

	"github.com/promowatch/promowatch/internal/monitor"
)

// objectName builds a stable object path for a page within a run.
func objectName(runID string, page monitor.Page) string {
	urlHash := fmt.Sprintf("%x", sha256.Sum256([]byte(page.URL)))
	return path.Join("snapshots", runID, fmt.Sprintf("%s.html", urlHash))
}

// NoOp discards snapshots. It is the default when archiving is disabled.
type NoOp struct{}

// SaveSnapshot for NoOp does nothing and returns an empty URI.
func (NoOp) SaveSnapshot(_ context.Context, _ string, _ monitor.Page) (string, error) {
	return "", nil
}
