package monitor

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("monitor.sites", []string{"https://a.example", "https://b.example"})
	v.Set("monitor.keywords", []string{"Sale", "sale", " PROMO "})
	v.Set("monitor.batch_size", 50)
	v.Set("monitor.max_concurrency", 5)
	v.Set("monitor.max_pages_per_site", 5)
	v.Set("monitor.max_chars", 2000)
	v.Set("monitor.request_timeout", "15s")
	v.Set("monitor.user_agent", "test-agent")
	v.Set("monitor.output_dir", "results")
	return v
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Sites)
	// Keywords are lowercased, trimmed, and deduplicated.
	assert.Equal(t, []string{"sale", "promo"}, cfg.Keywords)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 5, cfg.MaxConcurrency)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{
			name:    "no sites",
			mutate:  func(v *viper.Viper) { v.Set("monitor.sites", []string{}) },
			wantErr: "monitor.sites",
		},
		{
			name:    "relative site url",
			mutate:  func(v *viper.Viper) { v.Set("monitor.sites", []string{"a.example"}) },
			wantErr: "not an absolute URL",
		},
		{
			name:    "no keywords",
			mutate:  func(v *viper.Viper) { v.Set("monitor.keywords", []string{" "}) },
			wantErr: "monitor.keywords",
		},
		{
			name:    "zero batch size",
			mutate:  func(v *viper.Viper) { v.Set("monitor.batch_size", 0) },
			wantErr: "monitor.batch_size",
		},
		{
			name:    "zero concurrency",
			mutate:  func(v *viper.Viper) { v.Set("monitor.max_concurrency", 0) },
			wantErr: "monitor.max_concurrency",
		},
		{
			name:    "zero max chars",
			mutate:  func(v *viper.Viper) { v.Set("monitor.max_chars", 0) },
			wantErr: "monitor.max_chars",
		},
		{
			name:    "zero timeout",
			mutate:  func(v *viper.Viper) { v.Set("monitor.request_timeout", "0s") },
			wantErr: "monitor.request_timeout",
		},
		{
			name:    "empty user agent",
			mutate:  func(v *viper.Viper) { v.Set("monitor.user_agent", "") },
			wantErr: "monitor.user_agent",
		},
		{
			name:    "empty output dir",
			mutate:  func(v *viper.Viper) { v.Set("monitor.output_dir", "") },
			wantErr: "monitor.output_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := newTestViper()
			tt.mutate(v)
			_, err := LoadConfig(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigSiteDeduplication(t *testing.T) {
	t.Parallel()

	v := newTestViper()
	v.Set("monitor.sites", []string{"https://a.example", "https://a.example", "https://b.example"})
	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Sites)
}
