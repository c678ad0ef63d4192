// Package stats computes summary statistics over a student snapshot.
//
// Every function is pure. Aggregates that would divide by the student count
// refuse an empty set with model.ErrEmptyStudentSet instead of producing
// NaN or Inf.
package stats

import "github.com/okian/leetboard/internal/domain/model"

// Aggregate computes the dashboard summary for snap.
func Aggregate(snap model.Snapshot) (model.DerivedStats, error) {
	students := snap.Students
	n := len(students)
	if n == 0 {
		return model.DerivedStats{}, model.ErrEmptyStudentSet
	}

	var ratingSum, problemSum int
	topRating, topSolver := students[0].Rating, students[0].ProblemsSolved
	for _, s := range students {
		ratingSum += s.Rating
		problemSum += s.ProblemsSolved
		topRating = max(topRating, s.Rating)
		topSolver = max(topSolver, s.ProblemsSolved)
	}

	return model.DerivedStats{
		TotalStudents:     n,
		AverageRating:     Round(float64(ratingSum) / float64(n)),
		TotalProblems:     problemSum,
		AverageProblems:   Round(float64(problemSum) / float64(n)),
		AverageAttendance: AverageAttendance(students, snap.ContestNames),
		TopRating:         topRating,
		TopSolver:         topSolver,
		ContestCount:      len(snap.ContestNames),
		LastUpdated:       snap.LastUpdated,
	}, nil
}

// AverageAttendance is the mean per-contest attendance count expressed as
// a rounded percentage of the student body. It is 0 with no contests or no
// students.
func AverageAttendance(students []model.Student, contests []string) int {
	if len(contests) == 0 || len(students) == 0 {
		return 0
	}
	total := 0
	for _, c := range contests {
		total += AttendedCount(students, c)
	}
	perContest := float64(total) / float64(len(contests))
	return Round(perContest / float64(len(students)) * 100)
}

// AttendedCount counts students with a strictly positive score for contest.
func AttendedCount(students []model.Student, contest string) int {
	n := 0
	for _, s := range students {
		if s.Attended(contest) {
			n++
		}
	}
	return n
}
