package query

import (
	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/stats"
	"github.com/okian/leetboard/internal/domain/types"
)

// StudentRatingTrend lists the scores of the student with leetcodeID in
// contest order, 0 where no score is recorded. It is empty when no student
// matches exactly.
func StudentRatingTrend(students []model.Student, leetcodeID string, contests []string) []types.TrendPoint {
	out := []types.TrendPoint{}
	if leetcodeID == "" {
		return out
	}
	for _, s := range students {
		if s.LeetcodeID != leetcodeID {
			continue
		}
		for _, c := range contests {
			out = append(out, types.TrendPoint{Contest: c, Score: s.ContestScore(c)})
		}
		return out
	}
	return out
}

// PerformanceMetrics reports the cohort participation rate and the mean of
// every positive contest score, both rounded to one decimal.
func PerformanceMetrics(students []model.Student, contests []string) (types.PerformanceMetrics, error) {
	if len(students) == 0 {
		return types.PerformanceMetrics{}, model.ErrEmptyStudentSet
	}
	out := types.PerformanceMetrics{
		TotalContests: len(contests),
		TotalStudents: len(students),
	}
	if len(contests) > 0 {
		participation := 0
		for _, c := range contests {
			participation += stats.AttendedCount(students, c)
		}
		out.AvgParticipation = stats.Round1(float64(participation) / float64(len(contests)*len(students)) * 100)
	}

	var sum float64
	var n int
	for _, s := range students {
		for _, p := range s.Contests.Pairs() {
			if p.Score > 0 {
				sum += p.Score
				n++
			}
		}
	}
	if n > 0 {
		out.AvgContestScore = stats.Round1(sum / float64(n))
	}
	return out, nil
}
