package config

import (
	"fmt"
	"net/url"
)

func validate(c *Config) error {
	u, err := url.Parse(c.CatalogURL)
	if err != nil {
		return fmt.Errorf("catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("catalog url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("catalog url must include a host")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("nav timeout must be > 0")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be > 0")
	}
	if c.ClickInterval <= 0 {
		return fmt.Errorf("click interval must be > 0")
	}
	return nil
}
