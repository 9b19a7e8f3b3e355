// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/promowatch/promowatch/internal/database"
	"github.com/promowatch/promowatch/internal/logging"
	"github.com/promowatch/promowatch/internal/monitor"
	"github.com/promowatch/promowatch/internal/notify"
	"github.com/promowatch/promowatch/internal/snapshot"
)

// App holds the shared, long-lived services for the application: the logger,
// the optional snapshot archive, the optional run-history database, and the
// optional notification channel. It is initialized once at startup and
// passed to the components that need it.
type App struct {
	logger      *zap.Logger
	snapshotter monitor.Snapshotter
	database    database.Provider
	notifier    notify.Provider
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetSnapshotter exposes the configured snapshot archive.
func (a *App) GetSnapshotter() monitor.Snapshotter {
	return a.snapshotter
}

// GetDatabase provides access to the run-history database provider.
func (a *App) GetDatabase() database.Provider {
	return a.database
}

// GetNotifier returns the notification channel for positive verdicts.
func (a *App) GetNotifier() notify.Provider {
	return a.notifier
}

// NewApp creates and initializes an App from the application's configuration.
// It is the central point for service initialization and fails fast if any
// configured service cannot be brought up.
func NewApp(ctx context.Context) (*App, error) {
	l := logging.L
	l.Info("Initializing application services...")

	snapshotter, err := buildSnapshotter(ctx, l)
	if err != nil {
		return nil, err
	}

	db, err := buildDatabase(ctx, l)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(ctx, l)
	if err != nil {
		return nil, err
	}

	return &App{
		logger:      l,
		snapshotter: snapshotter,
		database:    db,
		notifier:    notifier,
	}, nil
}

func buildSnapshotter(ctx context.Context, l *zap.Logger) (monitor.Snapshotter, error) {
	switch provider := viper.GetString("snapshot.provider"); provider {
	case "gcs":
		bucket := viper.GetString("snapshot.gcs.bucket_name")
		if bucket == "" {
			return nil, fmt.Errorf("snapshot provider is 'gcs' but snapshot.gcs.bucket_name is not set")
		}
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		l.Info("Using GCS snapshot provider", zap.String("bucket", bucket))
		store, err := snapshot.NewGCSStore(client, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
		}
		return store, nil
	case "local":
		dir := viper.GetString("snapshot.local.base_dir")
		l.Info("Using local snapshot provider", zap.String("dir", dir))
		store, err := snapshot.NewLocalStore(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
		}
		return store, nil
	case "noop":
		l.Info("Snapshot archiving disabled.")
		return snapshot.NoOp{}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot provider: %s", provider)
	}
}

func buildDatabase(ctx context.Context, l *zap.Logger) (database.Provider, error) {
	switch provider := viper.GetString("database.provider"); provider {
	case "postgres":
		dsn := viper.GetString("database.postgres.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("database provider is 'postgres' but database.postgres.dsn is not set")
		}
		l.Info("Connecting to PostgreSQL...")
		store, err := database.NewPostgresStore(ctx, database.PostgresConfig{
			DSN:   dsn,
			Table: viper.GetString("database.postgres.table"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	case "noop":
		l.Info("Run history database disabled.")
		return database.NoOpProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown database provider: %s", provider)
	}
}

func buildNotifier(ctx context.Context, l *zap.Logger) (notify.Provider, error) {
	switch provider := viper.GetString("notify.provider"); provider {
	case "pubsub":
		projectID := viper.GetString("notify.gcp.project_id")
		topicID := viper.GetString("notify.gcp.topic_id")
		if projectID == "" || topicID == "" {
			return nil, fmt.Errorf("notify provider is 'pubsub' but project_id or topic_id is not set")
		}
		l.Info("Connecting to GCP Pub/Sub", zap.String("topic", topicID))
		p, err := notify.NewPubSubProvider(ctx, projectID, topicID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize notifier: %w", err)
		}
		return p, nil
	case "email":
		cfg := notify.EmailConfig{
			SMTPServer: viper.GetString("notify.email.smtp_server"),
			SMTPPort:   viper.GetInt("notify.email.smtp_port"),
			SMTPUser:   viper.GetString("notify.email.smtp_user"),
			SMTPPass:   viper.GetString("notify.email.smtp_pass"),
			FromEmail:  viper.GetString("notify.email.from"),
			ToEmail:    viper.GetString("notify.email.to"),
		}
		l.Info("Using email notifier", zap.String("to", cfg.ToEmail))
		p, err := notify.NewEmailProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize notifier: %w", err)
		}
		return p, nil
	case "noop":
		l.Info("Notifications disabled.")
		return notify.NoOpProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", provider)
	}
}

// Close gracefully shuts down all services held by the App.
func (a *App) Close() {
	if a.database != nil {
		a.database.Close()
	}
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			a.logger.Warn("Failed to close notifier", zap.Error(err))
		}
	}
	// Sync on stderr commonly fails on some platforms; nothing to do.
	_ = a.logger.Sync()
}
