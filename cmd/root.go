package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promowatch/promowatch/internal/app"
	"github.com/promowatch/promowatch/internal/database"
	"github.com/promowatch/promowatch/internal/logging"
	"github.com/promowatch/promowatch/internal/monitor"
	"github.com/promowatch/promowatch/internal/notify"
	"github.com/promowatch/promowatch/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands use. This allows us
// to inject a mock app during tests.
type App interface {
	Close()
	GetLogger() *zap.Logger
	GetSnapshotter() monitor.Snapshotter
	GetDatabase() database.Provider
	GetNotifier() notify.Provider
}

// newApp is the application factory. It's a variable so tests can replace
// it with a mock factory.
var newApp func(ctx context.Context) (App, error) = func(ctx context.Context) (App, error) {
	return app.NewApp(ctx)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promowatch",
		Short: "A scheduled website promotion monitor.",
		Long: `promowatch periodically crawls a configured list of website homepages,
follows internal links that look promotion-related, and asks the Gemini API
to judge whether a promotion is present. Verdicts are persisted as JSON and
CSV for later inspection.`,

		// Runs AFTER config is loaded but BEFORE the subcommand's RunE:
		// the right place to build and inject the application.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Ensures services are shut down gracefully.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.promowatch/config.yaml)")

	cmd.AddCommand(newMonitorCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	logging.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}
