package query

import (
	"slices"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/types"
)

// DefaultTopPerformers is the size of the top performers list when no
// positive count is given.
const DefaultTopPerformers = 10

// ContestLeaderboard ranks the students who scored above zero in contest.
// Equal scores keep their input order and still get distinct ranks.
func ContestLeaderboard(students []model.Student, contest string) []types.Entry {
	out := []types.Entry{}
	if contest == "" {
		return out
	}
	for _, s := range students {
		if v := s.ContestScore(contest); v > 0 {
			out = append(out, types.Entry{Student: s, ContestScore: v})
		}
	}
	slices.SortStableFunc(out, func(a, b types.Entry) int {
		switch {
		case a.ContestScore > b.ContestScore:
			return -1
		case a.ContestScore < b.ContestScore:
			return 1
		}
		return 0
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// OverallLeaderboard ranks every student by rating.
func OverallLeaderboard(students []model.Student) []types.Entry {
	sorted := SortData(students, SortRating)
	out := make([]types.Entry, len(sorted))
	for i, s := range sorted {
		out[i] = types.Entry{Student: s, Rank: i + 1}
	}
	return out
}

// TopPerformers returns the n highest rated students.
func TopPerformers(students []model.Student, n int) []model.Student {
	if n <= 0 {
		n = DefaultTopPerformers
	}
	sorted := SortData(students, SortRating)
	return sorted[:min(n, len(sorted))]
}
