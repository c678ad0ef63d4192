package query

import (
	"math"
	"slices"
	"strings"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/stats"
	"github.com/okian/leetboard/internal/domain/types"
)

// Defaults for the insight views when no positive size is given.
const (
	DefaultImprovementLimit = 15
	DefaultHeatmapStudents  = 10
)

// FirstName returns the part of name before the first space.
func FirstName(name string) string {
	first, _, _ := strings.Cut(name, " ")
	return first
}

// Improvements compares the first and last positive score of every student
// with at least two positive scores across contests. Results are ordered by
// the magnitude of the change, largest first, and capped at limit.
func Improvements(students []model.Student, contests []string, limit int) []types.Improvement {
	if limit <= 0 {
		limit = DefaultImprovementLimit
	}
	out := []types.Improvement{}
	if len(contests) < 2 {
		return out
	}
	for _, s := range students {
		first, last, n := 0.0, 0.0, 0
		for _, c := range contests {
			v := s.ContestScore(c)
			if v <= 0 {
				continue
			}
			if n == 0 {
				first = v
			}
			last = v
			n++
		}
		if n < 2 {
			continue
		}
		out = append(out, types.Improvement{
			Name:        FirstName(s.Name),
			LeetcodeID:  s.LeetcodeID,
			FirstScore:  first,
			LastScore:   last,
			Improvement: stats.Round1((last - first) / first * 100),
		})
	}
	slices.SortStableFunc(out, func(a, b types.Improvement) int {
		x, y := math.Abs(a.Improvement), math.Abs(b.Improvement)
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		}
		return 0
	})
	return out[:min(limit, len(out))]
}

// Heatmap builds the score matrix of the n highest rated students against
// every contest. Cells list contest index, student index and score.
func Heatmap(students []model.Student, contests []string, n int) types.Heatmap {
	if n <= 0 {
		n = DefaultHeatmapStudents
	}
	out := types.Heatmap{
		Students: []string{},
		Contests: slices.Clone(contests),
		Cells:    []types.HeatCell{},
	}
	if out.Contests == nil {
		out.Contests = []string{}
	}
	if len(students) == 0 || len(contests) == 0 {
		return out
	}
	for si, s := range TopPerformers(students, n) {
		out.Students = append(out.Students, FirstName(s.Name))
		for ci, c := range contests {
			v := s.ContestScore(c)
			out.Cells = append(out.Cells, types.HeatCell{Contest: ci, Student: si, Score: v})
			out.MaxScore = max(out.MaxScore, v)
		}
	}
	return out
}
