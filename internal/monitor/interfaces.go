package monitor

import (
	"context"
	"time"
)

// Fetcher fetches a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Judge asks the judgment endpoint whether the supplied page text describes
// a promotion. Implementations return *APIError when the remote call fails
// and *ParseError when the response is malformed.
type Judge interface {
	Judge(ctx context.Context, site string, text string) (Judgment, error)
}

// Snapshotter archives the raw homepage HTML for one site in one run.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, runID string, page Page) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
