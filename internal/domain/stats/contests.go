package stats

import (
	"math"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/types"
)

// maxBreakdownBucket is the last problem-count bucket ("4 or more").
const maxBreakdownBucket = 4

// ContestStats summarises the positive scores of one contest. ok is false
// when the contest name is empty or nobody scored above zero.
func ContestStats(students []model.Student, contest string) (types.ContestStats, bool) {
	if contest == "" {
		return types.ContestStats{}, false
	}
	out := types.ContestStats{Contest: contest}
	sum := 0.0
	for _, s := range students {
		v := s.ContestScore(contest)
		if v <= 0 {
			continue
		}
		if out.Participants == 0 {
			out.Max, out.Min = v, v
		}
		out.Max = max(out.Max, v)
		out.Min = min(out.Min, v)
		sum += v
		out.Participants++
	}
	if out.Participants == 0 {
		return types.ContestStats{}, false
	}
	out.Average = sum / float64(out.Participants)
	return out, true
}

// ContestAttendance reports attended and absent counts per contest, with the
// attendance rate as a percentage rounded to one decimal.
func ContestAttendance(students []model.Student, contests []string) []types.ContestAttendance {
	out := make([]types.ContestAttendance, 0, len(contests))
	for _, c := range contests {
		attended := AttendedCount(students, c)
		row := types.ContestAttendance{
			Contest:     c,
			Attended:    attended,
			NotAttended: len(students) - attended,
		}
		if len(students) > 0 {
			row.AttendanceRate = Round1(float64(attended) / float64(len(students)) * 100)
		}
		out = append(out, row)
	}
	return out
}

// ContestAverages reports participants and the mean positive score per
// contest, rounded to one decimal.
func ContestAverages(students []model.Student, contests []string) []types.ContestAverage {
	out := make([]types.ContestAverage, 0, len(contests))
	for _, c := range contests {
		row := types.ContestAverage{Contest: c}
		sum := 0.0
		for _, s := range students {
			if v := s.ContestScore(c); v > 0 {
				sum += v
				row.Participants++
			}
		}
		if row.Participants > 0 {
			row.AvgScore = Round1(sum / float64(row.Participants))
		}
		out = append(out, row)
	}
	return out
}

// ContestProblemBreakdown counts, per contest, how many students solved
// 0, 1, 2, 3, or 4+ problems. Negative scores and fractional scores below 4
// fall in no bucket.
func ContestProblemBreakdown(students []model.Student, contests []string) []types.ProblemBreakdown {
	out := make([]types.ProblemBreakdown, 0, len(contests))
	for _, c := range contests {
		row := types.ProblemBreakdown{Contest: c}
		for _, s := range students {
			v := s.ContestScore(c)
			switch {
			case v >= maxBreakdownBucket:
				row.Counts[maxBreakdownBucket]++
			case v < 0 || v != math.Trunc(v):
			default:
				row.Counts[int(v)]++
			}
		}
		out = append(out, row)
	}
	return out
}
