// Package poller refreshes the snapshot cache on a fixed cadence so that
// steady traffic is served from cache.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/leetboard/internal/adapters/repository"
	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/pkg/logger"
	"github.com/okian/leetboard/pkg/metrics"
)

const defaultInterval = 30 * time.Second

// Refresher is the part of the cache the poller drives.
type Refresher interface {
	Refresh(ctx context.Context) (model.Snapshot, error)
}

// Poller calls Refresh every interval until stopped. Failures are logged
// and the loop carries on; the cache keeps its previous entry.
type Poller struct {
	refresher Refresher
	interval  time.Duration
	logger    logger.Logger

	stopOnce sync.Once
	shutdown chan struct{}
	done     chan struct{}
}

// New creates a poller over refresher.
func New(refresher Refresher, opts ...Option) *Poller {
	p := &Poller{
		refresher: refresher,
		interval:  defaultInterval,
		logger:    logger.Nop(),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the refresh cadence.
func (p *Poller) Interval() time.Duration { return p.interval }

// Run blocks, refreshing on every tick until ctx is done or Shutdown is called.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info(ctx, "auto-refresh enabled", logger.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	p.logger.Debug(ctx, "auto-refreshing cache")
	snap, err := p.refresher.Refresh(repository.WithTrigger(ctx, metrics.TriggerPoller))
	if err != nil {
		p.logger.Warn(ctx, "auto-refresh failed", logger.Error(err))
		return
	}
	p.logger.Debug(ctx, "cache refreshed", logger.Time("last_updated", snap.LastUpdated))
}

// Shutdown stops the loop and waits for it to exit.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.shutdown) })
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "poller shutdown timed out")
		return fmt.Errorf("poller shutdown timed out: %w", ctx.Err())
	}
}
