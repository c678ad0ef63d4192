package normalize_test

import (
	"testing"
	"time"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	t0     = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	header = []string{"Reg", "Name", "LID", "Problems", "Rating", "C1"}
)

func TestNormalize(t *testing.T) {
	Convey("Given a sheet with one complete row", t, func() {
		raw := model.RawSheet{
			header,
			{"R1", "Alice", "alice1", "10", "1200", "3"},
		}

		Convey("When normalizing", func() {
			snap, err := normalize.Normalize(raw, t0)

			Convey("Then the student is fully typed", func() {
				So(err, ShouldBeNil)
				So(snap.TotalStudents, ShouldEqual, 1)
				s := snap.Students[0]
				So(s.ID, ShouldEqual, 1)
				So(s.RegisterNumber, ShouldEqual, "R1")
				So(s.Name, ShouldEqual, "Alice")
				So(s.LeetcodeID, ShouldEqual, "alice1")
				So(s.ProblemsSolved, ShouldEqual, 10)
				So(s.Rating, ShouldEqual, 1200)
				So(s.Contests.Pairs(), ShouldResemble, []model.ContestPair{{Name: "C1", Score: 3}})
			})

			Convey("And the snapshot carries headers, contests and timestamp", func() {
				So(snap.Headers, ShouldResemble, header)
				So(snap.ContestNames, ShouldResemble, []string{"C1"})
				So(snap.LastUpdated, ShouldEqual, t0)
			})
		})
	})

	Convey("Given rows with empty or missing register numbers", t, func() {
		raw := model.RawSheet{
			header,
			{"", "Ghost", "ghost", "5", "900", "1"},
			{},
			nil,
			{"R2", "Bob", "bob", "7", "1100", "2"},
			{"R3"},
		}

		Convey("When normalizing", func() {
			snap, err := normalize.Normalize(raw, t0)

			Convey("Then those rows are dropped and ids follow retained order", func() {
				So(err, ShouldBeNil)
				So(snap.TotalStudents, ShouldEqual, 2)
				So(snap.Students[0].RegisterNumber, ShouldEqual, "R2")
				So(snap.Students[0].ID, ShouldEqual, 1)
				So(snap.Students[1].RegisterNumber, ShouldEqual, "R3")
				So(snap.Students[1].ID, ShouldEqual, 2)
			})

			Convey("And a short row defaults every missing field", func() {
				s := snap.Students[1]
				So(s.Name, ShouldEqual, "")
				So(s.LeetcodeID, ShouldEqual, "")
				So(s.ProblemsSolved, ShouldEqual, 0)
				So(s.Rating, ShouldEqual, 0)
				v, ok := s.Contests.Score("C1")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 0)
			})
		})
	})

	Convey("Given contest cells in every irregular form", t, func() {
		raw := model.RawSheet{
			{"Reg", "Name", "LID", "P", "R", "a", "b", "c", "d", "e", "f", "g"},
			{"R1", "A", "a", "x", "", "N/A", "n/a", " N/a ", "", "2.5", "abc", "  4 "},
		}

		Convey("When normalizing", func() {
			snap, err := normalize.Normalize(raw, t0)
			So(err, ShouldBeNil)
			c := snap.Students[0].Contests

			Convey("Then N/A in any case and blanks map to zero", func() {
				for _, name := range []string{"a", "b", "c", "d"} {
					v, _ := c.Score(name)
					So(v, ShouldEqual, 0)
				}
			})

			Convey("And decimals are kept while garbage becomes zero", func() {
				e, _ := c.Score("e")
				f, _ := c.Score("f")
				g, _ := c.Score("g")
				So(e, ShouldEqual, 2.5)
				So(f, ShouldEqual, 0)
				So(g, ShouldEqual, 4)
			})

			Convey("And unparseable integer fields default to zero", func() {
				So(snap.Students[0].ProblemsSolved, ShouldEqual, 0)
				So(snap.Students[0].Rating, ShouldEqual, 0)
			})
		})
	})

	Convey("Given headers with blank and duplicate contest names", t, func() {
		raw := model.RawSheet{
			{"Reg", "Name", "LID", "P", "R", " Weekly 1 ", "", "   ", "Weekly 2", "Weekly 1"},
			{"R1", "A", "a", "1", "1", "1", "9", "9", "2", "5"},
		}

		Convey("When normalizing", func() {
			snap, err := normalize.Normalize(raw, t0)
			So(err, ShouldBeNil)

			Convey("Then blank headers are skipped and names are trimmed", func() {
				So(snap.ContestNames, ShouldResemble, []string{"Weekly 1", "Weekly 2", "Weekly 1"})
			})

			Convey("And the later duplicate column wins", func() {
				c := snap.Students[0].Contests
				So(c.Names(), ShouldResemble, []string{"Weekly 1", "Weekly 2"})
				v, _ := c.Score("Weekly 1")
				So(v, ShouldEqual, 5)
			})
		})
	})

	Convey("Given a sheet that is empty or holds only headers", t, func() {
		Convey("Then normalization fails with ErrEmptySheet", func() {
			_, err := normalize.Normalize(nil, t0)
			So(err, ShouldEqual, model.ErrEmptySheet)

			_, err = normalize.Normalize(model.RawSheet{header}, t0)
			So(err, ShouldEqual, model.ErrEmptySheet)

			_, err = normalize.Normalize(model.RawSheet{header, {"", "x"}}, t0)
			So(err, ShouldEqual, model.ErrEmptySheet)
		})
	})

	Convey("Given the same sheet normalized twice", t, func() {
		raw := model.RawSheet{
			header,
			{"R1", "Alice", "alice1", "10", "1200", "3"},
			{"R2", "Bob", "bob", "4", "800", "N/A"},
		}
		n1 := normalize.New(normalize.WithClock(func() time.Time { return t0 }))
		n2 := normalize.New(normalize.WithClock(func() time.Time { return t0.Add(time.Minute) }))

		Convey("Then the snapshots differ only in lastUpdated", func() {
			a, err := n1.Normalize(raw)
			So(err, ShouldBeNil)
			b, err := n2.Normalize(raw)
			So(err, ShouldBeNil)
			So(a.LastUpdated, ShouldNotEqual, b.LastUpdated)
			b.LastUpdated = a.LastUpdated
			So(b, ShouldResemble, a)
		})
	})
}

func TestParseLenient(t *testing.T) {
	Convey("Given lenient integer parsing", t, func() {
		cases := map[string]int{
			"42":    42,
			"  17":  17,
			"12abc": 12,
			"3.9":   3,
			"-5":    -5,
			"+8":    8,
			"abc":   -1,
			"":      -1,
			"-":     -1,
			"1,200": 1,
		}
		for in, want := range cases {
			So(normalize.ParseLenientInt(in, -1), ShouldEqual, want)
		}
	})

	Convey("Given lenient float parsing", t, func() {
		cases := map[string]float64{
			"2":        2,
			"2.5":      2.5,
			".5":       0.5,
			"5.":       5,
			"1.5pts":   1.5,
			"1e3":      1000,
			"1e":       1,
			"-0.25":    -0.25,
			"abc":      -1,
			".":        -1,
			"":         -1,
			"1e400":    -1,
			"Infinity": -1,
		}
		for in, want := range cases {
			So(normalize.ParseLenientFloat(in, -1), ShouldEqual, want)
		}
	})

	Convey("Given contest cell coercion", t, func() {
		So(normalize.ContestValue("N/A"), ShouldEqual, 0)
		So(normalize.ContestValue("n/A"), ShouldEqual, 0)
		So(normalize.ContestValue(""), ShouldEqual, 0)
		So(normalize.ContestValue("   "), ShouldEqual, 0)
		So(normalize.ContestValue("3"), ShouldEqual, 3)
		So(normalize.ContestValue("oops"), ShouldEqual, 0)
	})
}
