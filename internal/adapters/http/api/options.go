package api

import (
	"time"

	"github.com/okian/leetboard/pkg/logger"
)

type serverConfig struct {
	maxLimit int
	origins  []string
	now      func() time.Time
	logger   logger.Logger
}

// Option configures a Server.
type Option func(*serverConfig)

// WithMaxLimit caps the leaderboard limit parameter.
func WithMaxLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithAllowedOrigins sets the CORS allow list. "*" allows every origin.
func WithAllowedOrigins(origins []string) Option {
	return func(c *serverConfig) {
		c.origins = origins
	}
}

// WithClock overrides the clock used for timestamps in responses.
func WithClock(now func() time.Time) Option {
	return func(c *serverConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
