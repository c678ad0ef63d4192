package query

import (
	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/types"
)

type bound struct {
	label    string
	min, max int
}

// open marks the unbounded top range.
const open = -1

var (
	ratingBounds = []bound{
		{"0-500", 0, 500},
		{"501-1000", 501, 1000},
		{"1001-1500", 1001, 1500},
		{"1501-2000", 1501, 2000},
		{"2000+", 2001, open},
	}
	problemBounds = []bound{
		{"0-50", 0, 50},
		{"51-100", 51, 100},
		{"101-200", 101, 200},
		{"201-300", 201, 300},
		{"300+", 301, open},
	}
)

func buckets(bounds []bound) []types.Bucket {
	out := make([]types.Bucket, len(bounds))
	for i, b := range bounds {
		out[i] = types.Bucket{Label: b.label, Min: b.min}
		if b.max != open {
			m := b.max
			out[i].Max = &m
		}
	}
	return out
}

// place counts v in the first bucket containing it.
func place(bs []types.Bucket, v float64) {
	for i := range bs {
		if bs[i].Contains(v) {
			bs[i].Count++
			return
		}
	}
}

// RatingDistribution buckets students by rating.
func RatingDistribution(students []model.Student) []types.Bucket {
	if len(students) == 0 {
		return []types.Bucket{}
	}
	out := buckets(ratingBounds)
	for _, s := range students {
		place(out, float64(s.Rating))
	}
	return out
}

// ProblemsDistribution buckets students by problems solved.
func ProblemsDistribution(students []model.Student) []types.Bucket {
	if len(students) == 0 {
		return []types.Bucket{}
	}
	out := buckets(problemBounds)
	for _, s := range students {
		place(out, float64(s.ProblemsSolved))
	}
	return out
}

// ContestScoreDistribution buckets the positive scores of one contest into
// the rating ranges.
func ContestScoreDistribution(students []model.Student, contest string) []types.Bucket {
	if len(students) == 0 || contest == "" {
		return []types.Bucket{}
	}
	out := buckets(ratingBounds)
	for _, s := range students {
		if v := s.ContestScore(contest); v > 0 {
			place(out, v)
		}
	}
	return out
}
