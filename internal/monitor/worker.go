package monitor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// SiteWorker produces exactly one Verdict for one site: fetch homepage,
// classify promotion-looking links, fetch and extract candidate pages,
// then ask the Judge for a verdict. Upstream failures are downgraded to
// error Verdicts so one bad site never aborts the run.
type SiteWorker struct {
	cfg         Config
	fetcher     Fetcher
	judge       Judge
	snapshotter Snapshotter
	clock       Clock
	logger      *zap.Logger
}

// NewSiteWorker constructs a SiteWorker. The snapshotter may be nil when
// raw HTML archiving is disabled.
func NewSiteWorker(
	cfg Config,
	fetcher Fetcher,
	judge Judge,
	snapshotter Snapshotter,
	clock Clock,
	logger *zap.Logger,
) *SiteWorker {
	return &SiteWorker{
		cfg:         cfg,
		fetcher:     fetcher,
		judge:       judge,
		snapshotter: snapshotter,
		clock:       clock,
		logger:      logger,
	}
}

// Process runs the full per-site pipeline and always returns a Verdict.
func (w *SiteWorker) Process(ctx context.Context, runID, site string) Verdict {
	ActiveWorkers.Inc()
	defer ActiveWorkers.Dec()

	homepage, err := w.fetcher.Fetch(ctx, site)
	if err != nil {
		TotalFetchErrors.Inc()
		w.logger.Warn("homepage fetch failed", zap.String("site", site), zap.Error(err))
		return w.errorVerdict(site, err)
	}
	TotalPagesFetched.Inc()
	w.maybeSnapshot(ctx, runID, homepage)

	text := w.collectText(ctx, site, homepage)

	judgment, err := w.judge.Judge(ctx, site, text)
	if err != nil {
		TotalJudgments.WithLabelValues("error").Inc()
		w.logger.Warn("judgment failed", zap.String("site", site), zap.Error(err))
		return w.errorVerdict(site, err)
	}

	outcome := "no_promotion"
	if judgment.HasPromotion {
		outcome = "promotion"
	}
	TotalJudgments.WithLabelValues(outcome).Inc()

	return Verdict{
		Site:          site,
		HasPromotion:  judgment.HasPromotion,
		PromotionText: judgment.PromotionText,
		CheckedAt:     w.clock.Now(),
	}
}

// collectText extracts homepage text plus text from keyword-matching
// candidate pages, concatenated up to the configured character limit.
// Candidate fetch failures are skipped; the homepage text alone is enough
// for a judgment.
func (w *SiteWorker) collectText(ctx context.Context, site string, homepage Page) string {
	parts := []string{ExtractText(homepage.Body, w.cfg.MaxChars)}
	total := utf8.RuneCountInString(parts[0])

	links, err := ClassifyLinks(homepage.Body, site, w.cfg.Keywords, w.cfg.MaxPagesPerSite)
	if err != nil {
		w.logger.Debug("link classification failed", zap.String("site", site), zap.Error(err))
	}

	for _, link := range links {
		if total >= w.cfg.MaxChars {
			break
		}
		page, err := w.fetcher.Fetch(ctx, link)
		if err != nil {
			TotalFetchErrors.Inc()
			w.logger.Debug("candidate fetch skipped", zap.String("url", link), zap.Error(err))
			continue
		}
		TotalPagesFetched.Inc()
		text := ExtractText(page.Body, w.cfg.MaxChars-total)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		total += utf8.RuneCountInString(text) + 1
	}

	return TruncateText(strings.Join(parts, " "), w.cfg.MaxChars)
}

func (w *SiteWorker) maybeSnapshot(ctx context.Context, runID string, page Page) {
	if w.snapshotter == nil {
		return
	}
	uri, err := w.snapshotter.SaveSnapshot(ctx, runID, page)
	if err != nil {
		w.logger.Warn("snapshot failed", zap.String("url", page.URL), zap.Error(err))
		return
	}
	w.logger.Debug("snapshot saved", zap.String("url", page.URL), zap.String("uri", uri))
}

func (w *SiteWorker) errorVerdict(site string, err error) Verdict {
	return Verdict{
		Site:      site,
		Error:     fmt.Sprintf("%s: %v", ClassifyFailure(err), err),
		CheckedAt: w.clock.Now(),
	}
}
