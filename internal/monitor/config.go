package monitor

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every configuration knob that influences a monitoring run.
// All values originate from Viper so the monitor can be configured via files,
// env vars, or CLI flags.
type Config struct {
	Sites           []string
	Keywords        []string
	BatchSize       int
	MaxConcurrency  int
	MaxPagesPerSite int
	MaxChars        int
	RequestTimeout  time.Duration
	UserAgent       string
	OutputDir       string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Sites:           normalizeList(v.GetStringSlice("monitor.sites")),
		Keywords:        normalizeKeywords(v.GetStringSlice("monitor.keywords")),
		BatchSize:       v.GetInt("monitor.batch_size"),
		MaxConcurrency:  v.GetInt("monitor.max_concurrency"),
		MaxPagesPerSite: v.GetInt("monitor.max_pages_per_site"),
		MaxChars:        v.GetInt("monitor.max_chars"),
		RequestTimeout:  v.GetDuration("monitor.request_timeout"),
		UserAgent:       v.GetString("monitor.user_agent"),
		OutputDir:       v.GetString("monitor.output_dir"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if len(c.Sites) == 0 {
		return fmt.Errorf("monitor.sites must include at least one site URL")
	}
	for _, s := range c.Sites {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("monitor.sites entry %q is not an absolute URL", s)
		}
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("monitor.keywords must include at least one keyword")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("monitor.batch_size must be > 0")
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("monitor.max_concurrency must be > 0")
	}
	if c.MaxPagesPerSite < 0 {
		return fmt.Errorf("monitor.max_pages_per_site must be >= 0")
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("monitor.max_chars must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("monitor.request_timeout must be > 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("monitor.user_agent must be set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("monitor.output_dir must be set")
	}
	return nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{})
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{})
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
