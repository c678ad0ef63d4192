package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "LEETBOARD_"
	envConfigFile = envPrefix + "CONFIG"
	defaultDotEnv = ".env"
)

// legacyEnv maps the unprefixed variable names of older deployments to
// config keys.
var legacyEnv = map[string]string{
	"PORT":                           "addr",
	"CACHE_TTL":                      "cache_ttl",
	"SPREADSHEET_ID":                 "spreadsheet_id",
	"SHEET_NAME":                     "sheet_name",
	"ALLOWED_ORIGINS":                "allowed_origins",
	"GOOGLE_CREDENTIALS":             "credentials_json",
	"GOOGLE_APPLICATION_CREDENTIALS": "credentials_file",
}

// LoadOption tunes Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	dotenv string
}

// WithDotEnv reads variables from path instead of ./.env. An empty path
// skips the file.
func WithDotEnv(path string) LoadOption {
	return func(o *loadOptions) { o.dotenv = path }
}

// Load builds a Config by layering, low to high:
//  1. defaults (New)
//  2. a .env file, which never overrides variables already set
//  3. a YAML file named by LEETBOARD_CONFIG
//  4. legacy unprefixed variables (PORT, CACHE_TTL, ...)
//  5. LEETBOARD_* variables
func Load(_ context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{dotenv: defaultDotEnv}
	for _, opt := range opts {
		opt(&o)
	}

	if o.dotenv != "" {
		if err := godotenv.Load(o.dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, o.dotenv, err)
		}
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", legacyValue), nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// LEETBOARD_CACHE_TTL -> cache_ttl
	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	// Slices decode element-wise onto existing storage; start empty.
	cfg.AllowedOrigins = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.AllowedOrigins = cleanOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = base.AllowedOrigins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// legacyValue translates one legacy variable. PORT carries a bare port and
// CACHE_TTL whole seconds, so both are rewritten to the native forms.
func legacyValue(name, value string) (string, any) {
	key, ok := legacyEnv[name]
	if !ok {
		return "", nil
	}
	switch name {
	case "PORT":
		if value != "" && !strings.Contains(value, ":") {
			value = ":" + value
		}
	case "CACHE_TTL":
		if _, err := strconv.Atoi(value); err == nil {
			value += "s"
		}
	}
	return key, value
}

func cleanOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CacheTTL <= 0:
		return fmt.Errorf("%w: cache_ttl must be positive, got %s", ErrInvalidConfig, c.CacheTTL)
	case c.FetchTimeout <= 0:
		return fmt.Errorf("%w: fetch_timeout must be positive, got %s", ErrInvalidConfig, c.FetchTimeout)
	case c.RefreshInterval < 0:
		return fmt.Errorf("%w: refresh_interval must not be negative", ErrInvalidConfig)
	}
	return nil
}
