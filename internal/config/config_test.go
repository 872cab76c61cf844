package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		CatalogURL:    DefaultCatalogURL,
		OutputDir:     DefaultOutputDir,
		NavTimeout:    DefaultNavTimeout,
		WaitTimeout:   DefaultWaitTimeout,
		ClickInterval: DefaultClickInterval,
	}
}

func TestValidate(t *testing.T) {
	if err := validate(validConfig()); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad scheme", func(c *Config) { c.CatalogURL = "ftp://example.com/shop" }, "http or https"},
		{"missing host", func(c *Config) { c.CatalogURL = "https:///shop" }, "host"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "output dir"},
		{"zero nav timeout", func(c *Config) { c.NavTimeout = 0 }, "nav timeout"},
		{"zero wait timeout", func(c *Config) { c.WaitTimeout = 0 }, "wait timeout"},
		{"negative click interval", func(c *Config) { c.ClickInterval = -time.Second }, "click interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CatalogURL != DefaultCatalogURL {
		t.Errorf("expected default catalog url, got %s", cfg.CatalogURL)
	}
	if !cfg.Headless {
		t.Error("expected headless by default")
	}
	if cfg.WaitTimeout != DefaultWaitTimeout {
		t.Errorf("expected wait timeout %s, got %s", DefaultWaitTimeout, cfg.WaitTimeout)
	}
	if cfg.ClickInterval != DefaultClickInterval {
		t.Errorf("expected click interval %s, got %s", DefaultClickInterval, cfg.ClickInterval)
	}
	if len(cfg.Pages) != 0 {
		t.Errorf("expected no page filter by default, got %v", cfg.Pages)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HARVEST_USER_AGENT", "HarvestTest/9.9")
	t.Setenv("HARVEST_OUTPUT_DIR", "exports")
	t.Setenv("HARVEST_CATALOG_URL", "https://shop.example.com/catalog/")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.UserAgent != "HarvestTest/9.9" {
		t.Errorf("expected user agent from env, got %s", cfg.UserAgent)
	}
	if cfg.OutputDir != "exports" {
		t.Errorf("expected output dir from env, got %s", cfg.OutputDir)
	}
	if cfg.CatalogURL != "https://shop.example.com/catalog/" {
		t.Errorf("expected catalog url from env, got %s", cfg.CatalogURL)
	}
}
