// Package config defines service configuration and how it is loaded.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3001".
	Addr string `koanf:"addr"`

	// CacheTTL is how long a fetched snapshot is served before refetching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RefreshInterval is the background refresh cadence. Zero follows CacheTTL.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	SpreadsheetID string `koanf:"spreadsheet_id"`
	SheetName     string `koanf:"sheet_name"`

	// SheetRange is the A1 column span read from the tab.
	SheetRange string `koanf:"sheet_range"`

	// CredentialsJSON, when set, wins over CredentialsFile.
	CredentialsFile string `koanf:"credentials_file"`
	CredentialsJSON string `koanf:"credentials_json"`

	// FetchTimeout bounds one sheet fetch.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// AllowedOrigins is the CORS allow list. "*" allows every origin.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":3001",
		CacheTTL:        30 * time.Second,
		SheetName:       "Real data Leetcode",
		SheetRange:      "A:ZZ",
		CredentialsFile: "credentials.json",
		FetchTimeout:    15 * time.Second,
		AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
	}
}

// Refresh returns the background refresh cadence.
func (c *Config) Refresh() time.Duration {
	if c.RefreshInterval > 0 {
		return c.RefreshInterval
	}
	return c.CacheTTL
}

// AllowsAnyOrigin reports whether the allow list contains "*".
func (c *Config) AllowsAnyOrigin() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
