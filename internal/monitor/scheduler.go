package monitor

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// BatchScheduler partitions the configured site list into fixed-size
// batches and runs site workers inside each batch with bounded concurrency.
// Batches execute sequentially; batch N+1 does not start until batch N has
// completed, which caps peak resource usage.
type BatchScheduler struct {
	cfg    Config
	worker *SiteWorker
	clock  Clock
	logger *zap.Logger
}

// NewBatchScheduler constructs a BatchScheduler.
func NewBatchScheduler(cfg Config, worker *SiteWorker, clock Clock, logger *zap.Logger) *BatchScheduler {
	return &BatchScheduler{
		cfg:    cfg,
		worker: worker,
		clock:  clock,
		logger: logger,
	}
}

// Run executes the full site list and returns one Verdict per configured
// site, in configured site order. Each worker writes into a disjoint slot
// of the result slice, so no locking is needed around the collection.
func (s *BatchScheduler) Run(ctx context.Context, runID string) RunResult {
	result := RunResult{
		RunID:     runID,
		StartedAt: s.clock.Now(),
		Verdicts:  make([]Verdict, len(s.cfg.Sites)),
	}

	for start := 0; start < len(s.cfg.Sites); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(s.cfg.Sites))
		s.runBatch(ctx, runID, start, end, result.Verdicts)
		s.logger.Info("batch complete",
			zap.String("run_id", runID),
			zap.Int("from", start),
			zap.Int("to", end),
		)
	}

	result.FinishedAt = s.clock.Now()
	return result
}

// runBatch fans out one batch of sites over at most MaxConcurrency workers.
func (s *BatchScheduler) runBatch(ctx context.Context, runID string, start, end int, slots []Verdict) {
	sem := make(chan struct{}, s.cfg.MaxConcurrency)
	var wg sync.WaitGroup

	for i := start; i < end; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[idx] = s.worker.Process(ctx, runID, s.cfg.Sites[idx])
		}(i)
	}
	wg.Wait()
}
