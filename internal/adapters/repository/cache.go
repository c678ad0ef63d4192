package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/pkg/logger"
	"github.com/okian/leetboard/pkg/metrics"
)

const (
	defaultTTL          = 30 * time.Second
	defaultFetchTimeout = 15 * time.Second

	// flightKey is the only cache slot.
	flightKey = "snapshot"
)

// SnapshotCache is a Store holding at most one snapshot.
//
// The entry is swapped as a whole through an atomic pointer, so readers see
// either the previous complete snapshot or the next one. Concurrent misses
// share a single fetch.
type SnapshotCache struct {
	fetcher    Fetcher
	normalizer Normalizer

	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	log          logger.Logger

	entry  atomic.Pointer[model.CacheEntry]
	flight singleflight.Group
}

var _ Store = (*SnapshotCache)(nil)

// NewSnapshotCache constructs an empty cache over fetcher and normalizer.
func NewSnapshotCache(fetcher Fetcher, normalizer Normalizer, opts ...Option) *SnapshotCache {
	c := &SnapshotCache{
		fetcher:      fetcher,
		normalizer:   normalizer,
		ttl:          defaultTTL,
		fetchTimeout: defaultFetchTimeout,
		now:          time.Now,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the freshness window.
func (c *SnapshotCache) TTL() time.Duration { return c.ttl }

// Get returns the cached snapshot if one exists and is younger than the TTL.
func (c *SnapshotCache) Get() (model.Snapshot, bool) {
	snap, ok := c.lookup()
	if ok {
		metrics.RecordCacheHit()
	} else {
		metrics.RecordCacheMiss()
	}
	return snap, ok
}

func (c *SnapshotCache) lookup() (model.Snapshot, bool) {
	e := c.entry.Load()
	if e == nil {
		return model.Snapshot{}, false
	}
	now := c.now()
	metrics.UpdateSnapshotAge(now.Sub(e.FetchedAt).Seconds())
	if !e.Fresh(now, c.ttl) {
		return model.Snapshot{}, false
	}
	return e.Snapshot, true
}

// LastFetched returns when the held entry was fetched.
func (c *SnapshotCache) LastFetched() (time.Time, bool) {
	e := c.entry.Load()
	if e == nil {
		return time.Time{}, false
	}
	return e.FetchedAt, true
}

// Size is 1 when an entry is held, fresh or not.
func (c *SnapshotCache) Size() int {
	if c.entry.Load() == nil {
		return 0
	}
	return 1
}

// Invalidate drops the held entry.
func (c *SnapshotCache) Invalidate() {
	c.entry.Store(nil)
	metrics.RecordCacheInvalidation()
}

// GetOrRefresh serves the fresh snapshot, refreshing first on a miss.
func (c *SnapshotCache) GetOrRefresh(ctx context.Context) (model.Snapshot, bool, error) {
	if snap, ok := c.Get(); ok {
		return snap, true, nil
	}
	snap, err := c.refresh(ctx, triggerFrom(ctx, metrics.TriggerRequest), true)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return snap, false, nil
}

// Refresh fetches and publishes a new snapshot regardless of freshness.
// Callers arriving while a fetch is in flight wait for that fetch. The fetch
// itself is not cancelled by ctx; it is bounded by the fetch timeout.
func (c *SnapshotCache) Refresh(ctx context.Context) (model.Snapshot, error) {
	return c.refresh(ctx, triggerFrom(ctx, metrics.TriggerManual), false)
}

// refresh runs or joins the single flight. With reuseFresh the flight first
// serves an entry stored by a flight that finished after the caller missed.
func (c *SnapshotCache) refresh(ctx context.Context, trigger string, reuseFresh bool) (model.Snapshot, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(flightKey, func() (any, error) {
		if reuseFresh {
			if snap, ok := c.lookup(); ok {
				return snap, nil
			}
		}
		metrics.RecordRefresh(trigger)
		return c.load(detached)
	})
	select {
	case <-ctx.Done():
		return model.Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Snapshot{}, res.Err
		}
		return res.Val.(model.Snapshot), nil
	}
}

// load runs one fetch and normalize pass and publishes the result.
func (c *SnapshotCache) load(ctx context.Context) (model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	start := time.Now()
	snap, err := c.fetchAndNormalize(ctx)
	ms := float64(time.Since(start).Milliseconds())
	switch {
	case errors.Is(err, model.ErrEmptySheet):
		metrics.RecordFetch(metrics.OutcomeEmpty, ms)
		c.log.Warn(ctx, "sheet has no usable rows", logger.Error(err))
		return model.Snapshot{}, err
	case err != nil:
		metrics.RecordFetch(metrics.OutcomeError, ms)
		c.log.Error(ctx, "snapshot refresh failed", logger.Error(err))
		return model.Snapshot{}, err
	}
	metrics.RecordFetch(metrics.OutcomeSuccess, ms)

	c.entry.Store(&model.CacheEntry{Snapshot: snap, FetchedAt: c.now()})
	metrics.UpdateSnapshotAge(0)
	c.log.Info(ctx, "snapshot refreshed",
		logger.Int("students", snap.TotalStudents),
		logger.Int("contests", len(snap.ContestNames)),
		logger.Float64("took_ms", ms),
	)
	return snap, nil
}

func (c *SnapshotCache) fetchAndNormalize(ctx context.Context) (model.Snapshot, error) {
	raw, err := c.fetcher.FetchRawSheet(ctx)
	if err != nil {
		if errors.Is(err, model.ErrSourceUnavailable) || errors.Is(err, model.ErrEmptySheet) {
			return model.Snapshot{}, err
		}
		return model.Snapshot{}, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	return c.normalizer.Normalize(raw)
}
