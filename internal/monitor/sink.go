package monitor

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Output file names inside the sink directory. Both are fully replaced on
// every run; no history is appended.
const (
	jsonFileName = "results.json"
	csvFileName  = "results.csv"
)

// FileSink persists the collected verdicts as JSON and CSV.
type FileSink struct {
	root   string
	logger *zap.Logger
}

// NewFileSink returns a sink rooted at dir, creating it if necessary.
func NewFileSink(root string, logger *zap.Logger) (*FileSink, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create sink dir %s: %w", root, err)
	}
	return &FileSink{
		root:   root,
		logger: logger,
	}, nil
}

// Write persists the run's verdicts. A failed write is fatal to the run: a
// run with no persisted output has accomplished nothing, so the error is
// returned rather than swallowed.
func (s *FileSink) Write(ctx context.Context, result RunResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if err := s.writeJSON(result.Verdicts); err != nil {
		return err
	}
	if err := s.writeCSV(result.Verdicts); err != nil {
		return err
	}
	s.logger.Info("results written",
		zap.String("dir", s.root),
		zap.Int("verdicts", len(result.Verdicts)),
	)
	return nil
}

// JSONPath returns the path of the JSON output file.
func (s *FileSink) JSONPath() string {
	return filepath.Join(s.root, jsonFileName)
}

// CSVPath returns the path of the CSV output file.
func (s *FileSink) CSVPath() string {
	return filepath.Join(s.root, csvFileName)
}

func (s *FileSink) writeJSON(verdicts []Verdict) error {
	payload, err := json.MarshalIndent(verdicts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal verdicts: %w", err)
	}
	if err := os.WriteFile(s.JSONPath(), payload, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.JSONPath(), err)
	}
	return nil
}

func (s *FileSink) writeCSV(verdicts []Verdict) error {
	f, err := os.Create(s.CSVPath())
	if err != nil {
		return fmt.Errorf("create %s: %w", s.CSVPath(), err)
	}
	defer f.Close() //nolint:errcheck // flushed and closed explicitly below

	w := csv.NewWriter(f)
	if err := w.Write([]string{"site", "has_promotion", "promotion_text"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range verdicts {
		row := []string{v.Site, strconv.FormatBool(v.HasPromotion), v.PromotionText}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", v.Site, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.CSVPath(), err)
	}
	return nil
}
