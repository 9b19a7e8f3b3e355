// Package cmd defines and implements the CLI commands for the promowatch
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/promowatch/promowatch/internal/api"
	"github.com/promowatch/promowatch/internal/clock/system"
	"github.com/promowatch/promowatch/internal/id/uuid"
	"github.com/promowatch/promowatch/internal/judge"
	"github.com/promowatch/promowatch/internal/monitor"
)

// geminiAPIKeyEnv names the environment variable carrying the judgment
// endpoint credential. A missing key aborts the run before any fetching.
const geminiAPIKeyEnv = "GEMINI_API_KEY"

// newMonitorCmd creates and configures the 'monitor' subcommand, which
// executes one full monitoring run over the configured site list.
func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Runs one monitoring pass over the configured sites",
		Long: `Crawls every configured site, asks the judgment endpoint whether a
promotion is present, and writes results.json and results.csv. Intended to
run unattended on a schedule; each run re-evaluates all sites from scratch.`,

		RunE: runMonitorCommand,
	}
	return cmd
}

func runMonitorCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	appInstance, err := resolveApp(ctx)
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	cfg, err := monitor.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load monitor config: %w", err)
	}

	apiKey := os.Getenv(geminiAPIKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("missing %s environment variable", geminiAPIKeyEnv)
	}

	judgeClient, err := judge.New(ctx, judge.Config{
		APIKey: apiKey,
		Model:  viper.GetString("judge.model"),
	})
	if err != nil {
		return fmt.Errorf("init judge: %w", err)
	}

	fetcher, err := monitor.NewCollyFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	sink, err := monitor.NewFileSink(cfg.OutputDir, logger)
	if err != nil {
		return fmt.Errorf("init sink: %w", err)
	}

	if viper.GetBool("api.enabled") {
		statusServer := api.NewServer(viper.GetString("api.addr"), logger)
		statusServer.Start()
		defer func() {
			if serr := statusServer.Shutdown(ctx); serr != nil {
				logger.Warn("Failed to stop status server", zap.Error(serr))
			}
		}()
	}

	clk := system.New()
	runID, err := uuid.New().NewID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	worker := monitor.NewSiteWorker(cfg, fetcher, judgeClient, appInstance.GetSnapshotter(), clk, logger)
	scheduler := monitor.NewBatchScheduler(cfg, worker, clk, logger)

	logger.Info("Starting monitoring run",
		zap.String("run_id", runID),
		zap.Int("sites", len(cfg.Sites)),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
	)

	result := scheduler.Run(ctx, runID)

	// The output files are the run's whole point; failing to write them is
	// the one pipeline error that aborts.
	if err := sink.Write(ctx, result); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if err := appInstance.GetDatabase().SaveRun(ctx, result); err != nil {
		logger.Warn("Failed to persist run history", zap.Error(err))
	}
	if err := appInstance.GetNotifier().NotifyPromotions(ctx, result); err != nil {
		logger.Warn("Failed to send notifications", zap.Error(err))
	}

	logger.Info("Monitoring run finished.",
		zap.String("run_id", runID),
		zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
	)
	return nil
}
