// Package service wires the sheet source, the snapshot cache and the
// background poller, and answers the dashboard queries over the current
// snapshot.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/leetboard/internal/adapters/poller"
	"github.com/okian/leetboard/internal/adapters/repository"
	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/normalize"
	"github.com/okian/leetboard/internal/domain/query"
	"github.com/okian/leetboard/internal/domain/stats"
	"github.com/okian/leetboard/internal/domain/types"
	"github.com/okian/leetboard/pkg/logger"
)

const (
	defaultTTL          = 30 * time.Second
	defaultFetchTimeout = 15 * time.Second
	pollerStopTimeout   = 5 * time.Second
)

// Source is the sheet collaborator.
type Source interface {
	repository.Fetcher
	Spreadsheet(ctx context.Context) (model.SpreadsheetInfo, error)
}

// Service implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex

	source Source
	cache  *repository.SnapshotCache
	poller *poller.Poller

	ttl             time.Duration
	refreshInterval time.Duration
	fetchTimeout    time.Duration
	spreadsheetID   string
	sheetName       string
	now             func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service reading from source. The cache is usable
// immediately; Start adds background refreshes.
func New(source Source, opts ...Option) *Service {
	s := &Service{
		source:       source,
		ttl:          defaultTTL,
		fetchTimeout: defaultFetchTimeout,
		now:          time.Now,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.refreshInterval == 0 {
		s.refreshInterval = s.ttl
	}

	s.cache = repository.NewSnapshotCache(source,
		normalize.New(normalize.WithClock(s.now)),
		repository.WithTTL(s.ttl),
		repository.WithFetchTimeout(s.fetchTimeout),
		repository.WithClock(s.now),
		repository.WithLogger(s.logger.Named("cache")),
	)
	return s
}

// Start launches the background poller. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.poller = poller.New(s.cache,
		poller.WithInterval(s.refreshInterval),
		poller.WithLogger(s.logger.Named("poller")),
	)
	go s.poller.Run(ctx)

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Duration("cache_ttl", s.ttl),
		logger.Duration("refresh_interval", s.refreshInterval),
		logger.String("sheet", s.sheetName),
	)
	return nil
}

// Stop halts the poller.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pollerStopTimeout)
	defer cancel()
	if err := s.poller.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "poller did not stop cleanly", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "dashboard service stopped")
}

// Data returns the current snapshot and whether it came from cache.
func (s *Service) Data(ctx context.Context) (model.Snapshot, bool, error) {
	return s.cache.GetOrRefresh(ctx)
}

func (s *Service) snapshot(ctx context.Context) (model.Snapshot, error) {
	snap, _, err := s.cache.GetOrRefresh(ctx)
	return snap, err
}

// Stats aggregates the current snapshot.
func (s *Service) Stats(ctx context.Context) (model.DerivedStats, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return model.DerivedStats{}, err
	}
	return stats.Aggregate(snap)
}

// Refresh forces a new fetch.
func (s *Service) Refresh(ctx context.Context) (model.Snapshot, error) {
	return s.cache.Refresh(ctx)
}

// CacheSize is the number of cached snapshots, 0 or 1.
func (s *Service) CacheSize() int {
	return s.cache.Size()
}

// Sheets lists the tabs of the configured spreadsheet.
func (s *Service) Sheets(ctx context.Context) (types.SheetsView, error) {
	info, err := s.source.Spreadsheet(ctx)
	if err != nil {
		return types.SheetsView{}, err
	}
	return types.SheetsView{
		SpreadsheetID:   s.spreadsheetID,
		Title:           info.Title,
		ConfiguredSheet: s.sheetName,
		AvailableSheets: info.Sheets,
	}, nil
}

// LeaderboardQuery selects a leaderboard. An empty Contest ranks by rating;
// Term filters before ranking; Limit caps the result when positive.
type LeaderboardQuery struct {
	Contest string
	Term    string
	Limit   int
}

// Leaderboard ranks the filtered students overall or for one contest.
func (s *Service) Leaderboard(ctx context.Context, q LeaderboardQuery) ([]types.Entry, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	students := query.FilterData(snap.Students, q.Term)
	var out []types.Entry
	if q.Contest != "" {
		out = query.ContestLeaderboard(students, q.Contest)
	} else {
		out = query.OverallLeaderboard(students)
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

// StudentTrend returns the contest history of one student.
func (s *Service) StudentTrend(ctx context.Context, leetcodeID string) ([]types.TrendPoint, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, st := range snap.Students {
		if st.LeetcodeID == leetcodeID {
			return query.StudentRatingTrend(snap.Students, leetcodeID, snap.ContestNames), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, leetcodeID)
}

// Distributions buckets the cohort by rating and problems solved.
func (s *Service) Distributions(ctx context.Context) (types.Distributions, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Distributions{}, err
	}
	return types.Distributions{
		Rating:   query.RatingDistribution(snap.Students),
		Problems: query.ProblemsDistribution(snap.Students),
	}, nil
}

// Contests reports per-contest attendance, averages and problem counts, plus
// the statistics of contest when it is named.
func (s *Service) Contests(ctx context.Context, contest string) (types.ContestsView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.ContestsView{}, err
	}
	out := types.ContestsView{
		ContestNames:     snap.ContestNames,
		Attendance:       stats.ContestAttendance(snap.Students, snap.ContestNames),
		Averages:         stats.ContestAverages(snap.Students, snap.ContestNames),
		ProblemBreakdown: stats.ContestProblemBreakdown(snap.Students, snap.ContestNames),
	}
	if contest != "" {
		out.Selected = contest
		if cs, ok := stats.ContestStats(snap.Students, contest); ok {
			out.Stats = &cs
		}
		out.ScoreDistribution = query.ContestScoreDistribution(snap.Students, contest)
	}
	return out, nil
}

// Insights computes performance metrics, top performers, improvements and
// the score heatmap.
func (s *Service) Insights(ctx context.Context) (types.Insights, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Insights{}, err
	}
	perf, err := query.PerformanceMetrics(snap.Students, snap.ContestNames)
	if err != nil {
		return types.Insights{}, err
	}
	top := query.TopPerformers(snap.Students, query.DefaultTopPerformers)
	ranked := make([]types.Entry, len(top))
	for i, st := range top {
		ranked[i] = types.Entry{Student: st, Rank: i + 1}
	}
	return types.Insights{
		Performance:   perf,
		TopPerformers: ranked,
		Improvements:  query.Improvements(snap.Students, snap.ContestNames, query.DefaultImprovementLimit),
		Heatmap:       query.Heatmap(snap.Students, snap.ContestNames, query.DefaultHeatmapStudents),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]any{
		"started":         s.started,
		"cacheSize":       s.cache.Size(),
		"cacheTTL":        s.ttl.String(),
		"refreshInterval": s.refreshInterval.String(),
	}
	if at, ok := s.cache.LastFetched(); ok {
		out["lastFetched"] = at
	}
	return out
}
