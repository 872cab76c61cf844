package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel   = "info"
	DefaultJSONLog    = false
	DefaultUserAgent  = "Harvest/0.1 (+https://github.com/shelfwatch/harvest)"
	DefaultCatalogURL = "https://webscraper.io/test-sites/e-commerce/more/"
	DefaultOutputDir  = "data"

	DefaultHeadless      = true
	DefaultNavTimeout    = 45 * time.Second
	DefaultWaitTimeout   = 10 * time.Second
	DefaultClickInterval = 500 * time.Millisecond

	DefaultLogMaxSizeMB  = 20
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 14
)
