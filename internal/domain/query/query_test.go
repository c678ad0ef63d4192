package query_test

import (
	"testing"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func st(id int, name, lid string, problems, rating int, scores ...model.ContestPair) model.Student {
	return model.Student{
		ID:             id,
		RegisterNumber: "R" + lid,
		Name:           name,
		LeetcodeID:     lid,
		ProblemsSolved: problems,
		Rating:         rating,
		Contests:       model.NewContests(scores...),
	}
}

func c(name string, score float64) model.ContestPair {
	return model.ContestPair{Name: name, Score: score}
}

func ids(students []model.Student) []int {
	out := make([]int, len(students))
	for i, s := range students {
		out[i] = s.ID
	}
	return out
}

func cohort() []model.Student {
	return []model.Student{
		st(1, "Zoe Park", "zoe", 120, 1400, c("W1", 2), c("W2", 4)),
		st(2, "adam Lee", "adam", 40, 1800, c("W1", 3), c("W2", 0)),
		st(3, "Émile Roy", "emile", 120, 1400, c("W1", 0), c("W2", 1)),
		st(4, "Bea", "bea", 301, 2100, c("W1", 3), c("W2", 3)),
	}
}

func TestSortData(t *testing.T) {
	Convey("Given a cohort", t, func() {
		in := cohort()

		Convey("When sorting by rating", func() {
			got := query.SortData(in, query.SortRating)

			Convey("Then ratings are non-increasing and ties keep input order", func() {
				So(ids(got), ShouldResemble, []int{4, 2, 1, 3})
			})

			Convey("And the input is untouched", func() {
				So(ids(in), ShouldResemble, []int{1, 2, 3, 4})
			})
		})

		Convey("When sorting by problems", func() {
			So(ids(query.SortData(in, query.SortProblems)), ShouldResemble, []int{4, 1, 3, 2})
		})

		Convey("When sorting by name", func() {
			Convey("Then collation ignores case and accents at the first level", func() {
				So(ids(query.SortData(in, query.SortName)), ShouldResemble, []int{2, 4, 3, 1})
			})
		})

		Convey("When the criterion is unknown", func() {
			got := query.SortData(in, query.SortBy("height"))

			Convey("Then a copy in input order comes back", func() {
				So(ids(got), ShouldResemble, []int{1, 2, 3, 4})
				got[0].Name = "changed"
				So(in[0].Name, ShouldEqual, "Zoe Park")
			})
		})
	})
}

func TestFilterData(t *testing.T) {
	Convey("Given a cohort", t, func() {
		in := cohort()

		Convey("Then matching ignores case across name, id and register number", func() {
			So(ids(query.FilterData(in, "ZOE")), ShouldResemble, []int{1})
			So(ids(query.FilterData(in, "Ada")), ShouldResemble, []int{2})
			So(ids(query.FilterData(in, "rbea")), ShouldResemble, []int{4})
			So(ids(query.FilterData(in, "e")), ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("Then an empty term keeps everyone", func() {
			So(ids(query.FilterData(in, "")), ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("Then no match yields an empty result", func() {
			So(query.FilterData(in, "nobody"), ShouldBeEmpty)
		})
	})
}

func TestLeaderboards(t *testing.T) {
	Convey("Given a contest leaderboard", t, func() {
		got := query.ContestLeaderboard(cohort(), "W1")

		Convey("Then non-participants are dropped", func() {
			So(len(got), ShouldEqual, 3)
			for _, e := range got {
				So(e.ContestScore, ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then ties keep input order with consecutive ranks", func() {
			So(got[0].ID, ShouldEqual, 2)
			So(got[0].Rank, ShouldEqual, 1)
			So(got[1].ID, ShouldEqual, 4)
			So(got[1].Rank, ShouldEqual, 2)
			So(got[2].ID, ShouldEqual, 1)
			So(got[2].Rank, ShouldEqual, 3)
		})

		Convey("Then an empty contest name yields nothing", func() {
			So(query.ContestLeaderboard(cohort(), ""), ShouldBeEmpty)
		})
	})

	Convey("Given the overall leaderboard", t, func() {
		got := query.OverallLeaderboard(cohort())

		Convey("Then everyone is ranked by rating from 1", func() {
			So(len(got), ShouldEqual, 4)
			for i, e := range got {
				So(e.Rank, ShouldEqual, i+1)
			}
			So(got[0].ID, ShouldEqual, 4)
		})
	})

	Convey("Given top performers", t, func() {
		So(ids(query.TopPerformers(cohort(), 2)), ShouldResemble, []int{4, 2})
		So(len(query.TopPerformers(cohort(), 0)), ShouldEqual, 4)
		So(len(query.TopPerformers(cohort(), 99)), ShouldEqual, 4)
	})
}

func TestDistributions(t *testing.T) {
	Convey("Given the rating distribution", t, func() {
		got := query.RatingDistribution(cohort())

		Convey("Then each student lands in one range", func() {
			counts := []int{}
			for _, b := range got {
				counts = append(counts, b.Count)
			}
			So(counts, ShouldResemble, []int{0, 0, 2, 1, 1})
			So(got[4].Label, ShouldEqual, "2000+")
			So(got[4].Min, ShouldEqual, 2001)
			So(got[4].Max, ShouldBeNil)
			So(*got[0].Max, ShouldEqual, 500)
		})
	})

	Convey("Given the problems distribution", t, func() {
		got := query.ProblemsDistribution(cohort())
		counts := []int{}
		for _, b := range got {
			counts = append(counts, b.Count)
		}
		So(counts, ShouldResemble, []int{1, 0, 2, 0, 1})
	})

	Convey("Given boundary values", t, func() {
		in := []model.Student{
			st(1, "a", "a", 50, 500),
			st(2, "b", "b", 51, 501),
			st(3, "c", "c", 300, 2000),
			st(4, "d", "d", 301, 2001),
		}
		rating := query.RatingDistribution(in)
		So(rating[0].Count, ShouldEqual, 1)
		So(rating[1].Count, ShouldEqual, 1)
		So(rating[3].Count, ShouldEqual, 1)
		So(rating[4].Count, ShouldEqual, 1)

		problems := query.ProblemsDistribution(in)
		So(problems[0].Count, ShouldEqual, 1)
		So(problems[1].Count, ShouldEqual, 1)
		So(problems[3].Count, ShouldEqual, 1)
		So(problems[4].Count, ShouldEqual, 1)
	})

	Convey("Given no students", t, func() {
		So(query.RatingDistribution(nil), ShouldBeEmpty)
		So(query.ProblemsDistribution(nil), ShouldBeEmpty)
		So(query.ContestScoreDistribution(nil, "W1"), ShouldBeEmpty)
	})

	Convey("Given a contest score distribution", t, func() {
		got := query.ContestScoreDistribution(cohort(), "W1")
		So(got[0].Count, ShouldEqual, 3)
	})
}

func TestTrendAndMetrics(t *testing.T) {
	Convey("Given a student's trend", t, func() {
		got := query.StudentRatingTrend(cohort(), "adam", []string{"W1", "W2", "W3"})

		Convey("Then scores follow contest order with 0 for gaps", func() {
			So(len(got), ShouldEqual, 3)
			So(got[0].Contest, ShouldEqual, "W1")
			So(got[0].Score, ShouldEqual, 3)
			So(got[1].Score, ShouldEqual, 0)
			So(got[2].Score, ShouldEqual, 0)
		})

		Convey("Then an unknown or partial id yields nothing", func() {
			So(query.StudentRatingTrend(cohort(), "ada", []string{"W1"}), ShouldBeEmpty)
			So(query.StudentRatingTrend(cohort(), "", []string{"W1"}), ShouldBeEmpty)
		})
	})

	Convey("Given performance metrics", t, func() {
		got, err := query.PerformanceMetrics(cohort(), []string{"W1", "W2"})

		Convey("Then participation and scores are flattened", func() {
			So(err, ShouldBeNil)
			// 3 + 3 participants over 2 contests and 4 students.
			So(got.AvgParticipation, ShouldEqual, 75.0)
			// 2+4+3+1+3+3 over six positive scores.
			So(got.AvgContestScore, ShouldEqual, 2.7)
			So(got.TotalContests, ShouldEqual, 2)
			So(got.TotalStudents, ShouldEqual, 4)
		})

		Convey("Then no students is refused", func() {
			_, err := query.PerformanceMetrics(nil, []string{"W1"})
			So(err, ShouldEqual, model.ErrEmptyStudentSet)
		})

		Convey("Then no contests gives zero participation", func() {
			got, err := query.PerformanceMetrics(cohort(), nil)
			So(err, ShouldBeNil)
			So(got.AvgParticipation, ShouldEqual, 0)
		})
	})
}

func TestInsights(t *testing.T) {
	Convey("Given first names", t, func() {
		So(query.FirstName("Zoe Park"), ShouldEqual, "Zoe")
		So(query.FirstName("Bea"), ShouldEqual, "Bea")
		So(query.FirstName(""), ShouldEqual, "")
	})

	Convey("Given improvements", t, func() {
		got := query.Improvements(cohort(), []string{"W1", "W2"}, 0)

		Convey("Then only students with two positive scores qualify", func() {
			So(len(got), ShouldEqual, 2)
		})

		Convey("Then the largest change comes first", func() {
			So(got[0].LeetcodeID, ShouldEqual, "zoe")
			So(got[0].Name, ShouldEqual, "Zoe")
			So(got[0].FirstScore, ShouldEqual, 2)
			So(got[0].LastScore, ShouldEqual, 4)
			So(got[0].Improvement, ShouldEqual, 100.0)
			So(got[1].LeetcodeID, ShouldEqual, "bea")
			So(got[1].Improvement, ShouldEqual, 0.0)
		})

		Convey("Then the limit caps the list", func() {
			So(len(query.Improvements(cohort(), []string{"W1", "W2"}, 1)), ShouldEqual, 1)
		})

		Convey("Then fewer than two contests yields nothing", func() {
			So(query.Improvements(cohort(), []string{"W1"}, 0), ShouldBeEmpty)
		})

		Convey("Then declines sort by magnitude too", func() {
			in := []model.Student{
				st(1, "Up", "up", 0, 0, c("A", 2), c("B", 3)),
				st(2, "Down", "down", 0, 0, c("A", 4), c("B", 1)),
			}
			got := query.Improvements(in, []string{"A", "B"}, 0)
			So(got[0].LeetcodeID, ShouldEqual, "down")
			So(got[0].Improvement, ShouldEqual, -75.0)
			So(got[1].Improvement, ShouldEqual, 50.0)
		})
	})

	Convey("Given a heatmap", t, func() {
		got := query.Heatmap(cohort(), []string{"W1", "W2"}, 2)

		Convey("Then rows are the top rated students by first name", func() {
			So(got.Students, ShouldResemble, []string{"Bea", "adam"})
			So(got.Contests, ShouldResemble, []string{"W1", "W2"})
		})

		Convey("Then every cell is present with the max score tracked", func() {
			So(len(got.Cells), ShouldEqual, 4)
			So(got.Cells[1].Contest, ShouldEqual, 1)
			So(got.Cells[1].Student, ShouldEqual, 0)
			So(got.Cells[1].Score, ShouldEqual, 3)
			So(got.MaxScore, ShouldEqual, 3)
		})

		Convey("Then no contests gives an empty matrix", func() {
			empty := query.Heatmap(cohort(), nil, 0)
			So(empty.Cells, ShouldBeEmpty)
			So(empty.Students, ShouldBeEmpty)
		})
	})
}
