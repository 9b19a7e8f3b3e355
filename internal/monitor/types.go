// Package monitor defines core types shared across the promotion
// monitoring pipeline.
package monitor

import (
	"net/http"
	"time"
)

// Page is the result of fetching one URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// ContentLength returns the number of body bytes.
func (p Page) ContentLength() int {
	return len(p.Body)
}

// Judgment is the structured answer from the judgment endpoint.
type Judgment struct {
	HasPromotion  bool   `json:"has_promotion"`
	PromotionText string `json:"promotion_text"`
}

// Verdict is the final promotion judgment for one site in one run.
// Exactly one Verdict is produced per configured site per run; sites whose
// pipeline failed carry a non-empty Error and HasPromotion=false.
type Verdict struct {
	Site          string    `json:"site"`
	HasPromotion  bool      `json:"has_promotion"`
	PromotionText string    `json:"promotion_text"`
	Error         string    `json:"error,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}

// RunResult is the ordered sequence of Verdicts for one execution.
type RunResult struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Verdicts   []Verdict `json:"verdicts"`
}
