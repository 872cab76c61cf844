package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool
	LogFile  string

	// Target catalog
	CatalogURL string
	Pages      []string
	OutputDir  string

	// Browser
	Headless      bool
	ChromePath    string
	UserAgent     string
	NavTimeout    time.Duration
	WaitTimeout   time.Duration
	ClickInterval time.Duration

	// Run options
	MetricsAddr string
	NoProgress  bool
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the executing *cobra.Command so both persistent and local
// flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:      DefaultLogLevel,
		JSONLog:       DefaultJSONLog,
		UserAgent:     DefaultUserAgent,
		CatalogURL:    DefaultCatalogURL,
		OutputDir:     DefaultOutputDir,
		Headless:      DefaultHeadless,
		NavTimeout:    DefaultNavTimeout,
		WaitTimeout:   DefaultWaitTimeout,
		ClickInterval: DefaultClickInterval,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("HARVEST_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("HARVEST_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("HARVEST_CATALOG_URL"); v != "" {
		cfg.CatalogURL = v
	}
	if v := os.Getenv("HARVEST_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("log-file"); f != nil {
			cfg.LogFile = f.Value.String()
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
		if f := cmd.Flags().Lookup("catalog-url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.CatalogURL = s
			}
		}
		if f := cmd.Flags().Lookup("output-dir"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.OutputDir = s
			}
		}
		if f := cmd.Flags().Lookup("chrome-path"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.ChromePath = s
			}
		}
		if f := cmd.Flags().Lookup("headless"); f != nil {
			cfg.Headless = f.Value.String() == "true"
		}
		if f := cmd.Flags().Lookup("wait-timeout"); f != nil {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.WaitTimeout = d
			}
		}
		if f := cmd.Flags().Lookup("click-interval"); f != nil {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.ClickInterval = d
			}
		}
		if f := cmd.Flags().Lookup("nav-timeout"); f != nil {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.NavTimeout = d
			}
		}
		if f := cmd.Flags().Lookup("metrics-addr"); f != nil {
			cfg.MetricsAddr = f.Value.String()
		}
		if f := cmd.Flags().Lookup("no-progress"); f != nil {
			if f.Value.String() == "true" {
				cfg.NoProgress = true
			}
		}
		if pages, err := cmd.Flags().GetStringSlice("pages"); err == nil && len(pages) > 0 {
			cfg.Pages = pages
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
