package service

import (
	"time"

	"github.com/okian/leetboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCacheTTL sets how long a snapshot is served before refetching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRefreshInterval sets the background refresh cadence. Zero follows the TTL.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithFetchTimeout bounds one fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithSheet records which spreadsheet and tab the source reads, for the
// sheets endpoint.
func WithSheet(spreadsheetID, sheetName string) Option {
	return func(s *Service) {
		s.spreadsheetID = spreadsheetID
		s.sheetName = sheetName
	}
}

// WithClock replaces time.Now for normalization and cache freshness.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
