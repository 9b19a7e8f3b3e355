// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file, environment variables, and command-line flags, providing a unified
// configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/promowatch/promowatch/internal/logging"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and enables
// reading from environment variables. Designed to be called once at startup.
// An explicit cfgFile overrides the search paths.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")                 // Current working directory
		viper.AddConfigPath("/etc/promowatch/")  // System-wide configuration
		viper.AddConfigPath("$HOME/.promowatch") // User-specific configuration
	}

	// Pipeline defaults. Sites have no sensible default and must come from
	// the config file or environment.
	const defaultUA = "Promowatch/1.0 (+https://github.com/promowatch/promowatch)"
	viper.SetDefault("monitor.sites", []string{})
	viper.SetDefault("monitor.keywords", []string{"sale", "promo", "discount", "offer"})
	viper.SetDefault("monitor.batch_size", 50)
	viper.SetDefault("monitor.max_concurrency", 5)
	viper.SetDefault("monitor.max_pages_per_site", 5)
	viper.SetDefault("monitor.max_chars", 2000)
	viper.SetDefault("monitor.request_timeout", "15s")
	viper.SetDefault("monitor.user_agent", defaultUA)
	viper.SetDefault("monitor.output_dir", "results")

	viper.SetDefault("judge.model", "gemini-1.5-flash")

	// Optional providers all default to noop.
	viper.SetDefault("snapshot.provider", "noop")
	viper.SetDefault("snapshot.local.base_dir", "data/snapshots")
	viper.SetDefault("database.provider", "noop")
	viper.SetDefault("database.postgres.table", "verdicts")
	viper.SetDefault("notify.provider", "noop")
	viper.SetDefault("notify.email.smtp_port", 587)

	// Optional status/metrics HTTP surface.
	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.addr", ":9090")

	// e.g. PROMOWATCH_MONITOR_MAX_CONCURRENCY=10
	viper.SetEnvPrefix("PROMOWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Not fatal; defaults and environment variables may be enough.
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
