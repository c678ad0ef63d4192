package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	service "github.com/okian/leetboard/internal/app"
	"github.com/okian/leetboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	mu      sync.Mutex
	raw     model.RawSheet
	err     error
	fetches atomic.Int32
}

func (f *fakeSource) FetchRawSheet(context.Context) (model.RawSheet, error) {
	f.fetches.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw, f.err
}

func (f *fakeSource) Spreadsheet(context.Context) (model.SpreadsheetInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.SpreadsheetInfo{}, f.err
	}
	return model.SpreadsheetInfo{Title: "Cohort", Sheets: []string{"Real data Leetcode", "Old"}}, nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func cohortSheet() model.RawSheet {
	return model.RawSheet{
		{"Reg No", "Name", "LeetCode ID", "Problems", "Rating", "Weekly 1", "Weekly 2"},
		{"R1", "Alice Smith", "alice", "120", "1650", "2", "4"},
		{"R2", "Bob Jones", "bob", "40", "1420", "3", "N/A"},
		{"", "Dropped", "x", "1", "1", "1", "1"},
		{"R3", "Cara Diaz", "cara", "310", "2105", "1", ""},
	}
}

func newService(src *fakeSource) *service.Service {
	return service.New(src,
		service.WithCacheTTL(time.Minute),
		service.WithSheet("sheet-1", "Real data Leetcode"),
	)
}

func TestService_Data(t *testing.T) {
	Convey("Given a service over a healthy sheet", t, func() {
		src := &fakeSource{raw: cohortSheet()}
		svc := newService(src)
		ctx := context.Background()

		Convey("When data is read twice", func() {
			first, fromCache1, err1 := svc.Data(ctx)
			_, fromCache2, err2 := svc.Data(ctx)

			Convey("Then the second read is a cache hit", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(fromCache1, ShouldBeFalse)
				So(fromCache2, ShouldBeTrue)
				So(first.TotalStudents, ShouldEqual, 3)
				So(src.fetches.Load(), ShouldEqual, 1)
				So(svc.CacheSize(), ShouldEqual, 1)
			})
		})

		Convey("When stats are requested", func() {
			got, err := svc.Stats(ctx)

			Convey("Then they aggregate the snapshot", func() {
				So(err, ShouldBeNil)
				So(got.TotalStudents, ShouldEqual, 3)
				So(got.TotalProblems, ShouldEqual, 470)
				So(got.TopRating, ShouldEqual, 2105)
				So(got.ContestCount, ShouldEqual, 2)
				// (3 + 1) / 2 contests / 3 students = 66.67%
				So(got.AverageAttendance, ShouldEqual, 67)
			})
		})

		Convey("When refresh is forced", func() {
			_, _, _ = svc.Data(ctx)
			_, err := svc.Refresh(ctx)

			Convey("Then the source is read again", func() {
				So(err, ShouldBeNil)
				So(src.fetches.Load(), ShouldEqual, 2)
			})
		})

		Convey("When the sheets are listed", func() {
			got, err := svc.Sheets(ctx)

			Convey("Then the configured sheet is reported with the tabs", func() {
				So(err, ShouldBeNil)
				So(got.SpreadsheetID, ShouldEqual, "sheet-1")
				So(got.ConfiguredSheet, ShouldEqual, "Real data Leetcode")
				So(got.AvailableSheets, ShouldResemble, []string{"Real data Leetcode", "Old"})
			})
		})
	})

	Convey("Given a failing source", t, func() {
		src := &fakeSource{err: errors.New("403")}
		svc := newService(src)

		Convey("Then reads fail with SourceUnavailable", func() {
			_, _, err := svc.Data(context.Background())
			So(errors.Is(err, model.ErrSourceUnavailable), ShouldBeTrue)
			_, err = svc.Stats(context.Background())
			So(errors.Is(err, model.ErrSourceUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a sheet with headers only", t, func() {
		src := &fakeSource{raw: cohortSheet()[:1]}
		svc := newService(src)

		Convey("Then stats fail with EmptySheet before aggregating", func() {
			_, err := svc.Stats(context.Background())
			So(errors.Is(err, model.ErrEmptySheet), ShouldBeTrue)
		})
	})
}

func TestService_Views(t *testing.T) {
	Convey("Given a service over a healthy sheet", t, func() {
		svc := newService(&fakeSource{raw: cohortSheet()})
		ctx := context.Background()

		Convey("When ranking overall with a filter and limit", func() {
			got, err := svc.Leaderboard(ctx, service.LeaderboardQuery{Limit: 2})
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[0].LeetcodeID, ShouldEqual, "cara")
			So(got[1].Rank, ShouldEqual, 2)

			filtered, err := svc.Leaderboard(ctx, service.LeaderboardQuery{Term: "JONES"})
			So(err, ShouldBeNil)
			So(len(filtered), ShouldEqual, 1)
			So(filtered[0].Rank, ShouldEqual, 1)
		})

		Convey("When ranking one contest", func() {
			got, err := svc.Leaderboard(ctx, service.LeaderboardQuery{Contest: "Weekly 2"})
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 1)
			So(got[0].LeetcodeID, ShouldEqual, "alice")
			So(got[0].ContestScore, ShouldEqual, 4)
		})

		Convey("When reading a student trend", func() {
			got, err := svc.StudentTrend(ctx, "bob")
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[0].Score, ShouldEqual, 3)
			So(got[1].Score, ShouldEqual, 0)

			_, err = svc.StudentTrend(ctx, "nobody")
			So(errors.Is(err, service.ErrStudentNotFound), ShouldBeTrue)
		})

		Convey("When reading distributions", func() {
			got, err := svc.Distributions(ctx)
			So(err, ShouldBeNil)
			So(len(got.Rating), ShouldEqual, 5)
			So(got.Rating[4].Count, ShouldEqual, 1)
			So(got.Problems[4].Count, ShouldEqual, 1)
		})

		Convey("When reading contests", func() {
			all, err := svc.Contests(ctx, "")
			So(err, ShouldBeNil)
			So(all.ContestNames, ShouldResemble, []string{"Weekly 1", "Weekly 2"})
			So(all.Attendance[0].Attended, ShouldEqual, 3)
			So(all.Stats, ShouldBeNil)

			one, err := svc.Contests(ctx, "Weekly 1")
			So(err, ShouldBeNil)
			So(one.Selected, ShouldEqual, "Weekly 1")
			So(one.Stats, ShouldNotBeNil)
			So(one.Stats.Max, ShouldEqual, 3)
			So(one.ScoreDistribution[0].Count, ShouldEqual, 3)
		})

		Convey("When reading insights", func() {
			got, err := svc.Insights(ctx)
			So(err, ShouldBeNil)
			So(got.Performance.TotalStudents, ShouldEqual, 3)
			So(got.TopPerformers[0].Rank, ShouldEqual, 1)
			So(len(got.Improvements), ShouldEqual, 1)
			So(got.Improvements[0].Name, ShouldEqual, "Alice")
			So(got.Heatmap.Students, ShouldResemble, []string{"Cara", "Alice", "Bob"})
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a started service with a fast poller", t, func() {
		src := &fakeSource{raw: cohortSheet()}
		svc := service.New(src, service.WithCacheTTL(time.Minute), service.WithRefreshInterval(5*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then the poller fills the cache without any request", func() {
			deadline := time.Now().Add(2 * time.Second)
			for svc.CacheSize() == 0 && time.Now().Before(deadline) {
				time.Sleep(2 * time.Millisecond)
			}
			So(svc.CacheSize(), ShouldEqual, 1)

			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["cacheSize"], ShouldEqual, 1)
			So(stats["refreshInterval"], ShouldEqual, "5ms")
			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("Then a failing source does not clear the cache", func() {
			_, _, err := svc.Data(context.Background())
			So(err, ShouldBeNil)
			src.fail(errors.New("quota"))
			before := src.fetches.Load()
			deadline := time.Now().Add(2 * time.Second)
			for src.fetches.Load() < before+2 && time.Now().Before(deadline) {
				time.Sleep(2 * time.Millisecond)
			}
			So(svc.CacheSize(), ShouldEqual, 1)
			_, fromCache, err := svc.Data(context.Background())
			So(err, ShouldBeNil)
			So(fromCache, ShouldBeTrue)
			svc.Stop()
		})
	})
}
