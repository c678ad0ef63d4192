package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/okian/leetboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestContests(t *testing.T) {
	convey.Convey("Given an ordered contest set", t, func() {
		c := model.NewContests(
			model.ContestPair{Name: "Weekly 3", Score: 2},
			model.ContestPair{Name: "Biweekly 1", Score: 0},
			model.ContestPair{Name: "Weekly 1", Score: 3.5},
		)

		convey.Convey("Then names keep insertion order", func() {
			convey.So(c.Names(), convey.ShouldResemble, []string{"Weekly 3", "Biweekly 1", "Weekly 1"})
			convey.So(c.Len(), convey.ShouldEqual, 3)
		})

		convey.Convey("When a name is set again", func() {
			c.Set("Weekly 3", 4)

			convey.Convey("Then it keeps its position and takes the new score", func() {
				convey.So(c.Names()[0], convey.ShouldEqual, "Weekly 3")
				v, ok := c.Score("Weekly 3")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, 4)
				convey.So(c.Len(), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When encoded as JSON", func() {
			b, err := json.Marshal(c)

			convey.Convey("Then keys appear in column order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, `{"Weekly 3":2,"Biweekly 1":0,"Weekly 1":3.5}`)
			})

			convey.Convey("And decoding restores the same order", func() {
				var back model.Contests
				convey.So(json.Unmarshal(b, &back), convey.ShouldBeNil)
				convey.So(back.Names(), convey.ShouldResemble, c.Names())
				convey.So(back.Pairs(), convey.ShouldResemble, c.Pairs())
			})
		})

		convey.Convey("When decoding a non-object", func() {
			var back model.Contests
			err := json.Unmarshal([]byte(`[1,2]`), &back)

			convey.Convey("Then it fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})

	convey.Convey("Given the zero contest set", t, func() {
		var c model.Contests

		convey.Convey("Then lookups miss and it encodes as an empty object", func() {
			_, ok := c.Score("anything")
			convey.So(ok, convey.ShouldBeFalse)
			b, err := json.Marshal(c)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, `{}`)
		})
	})
}

func TestStudentContestScore(t *testing.T) {
	convey.Convey("Given a student with one recorded contest", t, func() {
		s := model.Student{Contests: model.NewContests(model.ContestPair{Name: "C1", Score: 3})}

		convey.Convey("Then the recorded contest is attended", func() {
			convey.So(s.ContestScore("C1"), convey.ShouldEqual, 3)
			convey.So(s.Attended("C1"), convey.ShouldBeTrue)
		})

		convey.Convey("And an unknown contest scores zero", func() {
			convey.So(s.ContestScore("C2"), convey.ShouldEqual, 0)
			convey.So(s.Attended("C2"), convey.ShouldBeFalse)
		})
	})
}

func TestCacheEntryFresh(t *testing.T) {
	convey.Convey("Given a cache entry fetched at t0", t, func() {
		t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		e := &model.CacheEntry{FetchedAt: t0}

		convey.Convey("Then it is fresh strictly before the TTL elapses", func() {
			convey.So(e.Fresh(t0.Add(29*time.Second), 30*time.Second), convey.ShouldBeTrue)
			convey.So(e.Fresh(t0.Add(30*time.Second), 30*time.Second), convey.ShouldBeFalse)
		})

		convey.Convey("And a nil entry is never fresh", func() {
			var none *model.CacheEntry
			convey.So(none.Fresh(t0, time.Hour), convey.ShouldBeFalse)
		})
	})
}

func TestRawSheetHeader(t *testing.T) {
	convey.Convey("Given raw sheets", t, func() {
		convey.So(model.RawSheet(nil).Header(), convey.ShouldBeNil)
		convey.So(model.RawSheet{{"Reg", "Name"}}.Header(), convey.ShouldResemble, []string{"Reg", "Name"})
	})
}
