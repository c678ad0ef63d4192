// Package repository holds the single-entry snapshot cache that sits
// between the HTTP surface and the sheet source.
package repository

import (
	"context"

	"github.com/okian/leetboard/internal/domain/model"
)

// Fetcher reads the raw sheet from its source.
type Fetcher interface {
	FetchRawSheet(ctx context.Context) (model.RawSheet, error)
}

// Normalizer turns a raw sheet into a snapshot.
type Normalizer interface {
	Normalize(raw model.RawSheet) (model.Snapshot, error)
}

// Store provides access to the current snapshot.
type Store interface {
	// Get returns the cached snapshot while it is fresh.
	Get() (model.Snapshot, bool)
	// Refresh fetches and normalizes a new snapshot and publishes it.
	// On failure the current entry is left in place.
	Refresh(ctx context.Context) (model.Snapshot, error)
	// Invalidate drops the current entry.
	Invalidate()
	// GetOrRefresh serves a fresh snapshot or refreshes on a miss.
	// fromCache reports which happened.
	GetOrRefresh(ctx context.Context) (snap model.Snapshot, fromCache bool, err error)
	// Size is 1 when an entry is held, else 0.
	Size() int
}

type triggerKey struct{}

// WithTrigger labels refreshes made with ctx for metrics.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

func triggerFrom(ctx context.Context, fallback string) string {
	if t, ok := ctx.Value(triggerKey{}).(string); ok && t != "" {
		return t
	}
	return fallback
}
