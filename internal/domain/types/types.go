// Package types contains the view shapes produced by the query layer.
package types

import "github.com/okian/leetboard/internal/domain/model"

// Entry represents a ranked leaderboard row. It flattens the student fields
// in JSON and adds the rank (and, for contest boards, the contest score).
type Entry struct {
	model.Student
	ContestScore float64 `json:"contestScore,omitempty"`
	Rank         int     `json:"rank"`
}

// Bucket is one fixed range of a distribution. Max is nil for the open
// top range.
type Bucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   *int   `json:"max"`
	Count int    `json:"count"`
}

// Contains reports whether v falls inside the bucket bounds.
func (b Bucket) Contains(v float64) bool {
	if v < float64(b.Min) {
		return false
	}
	return b.Max == nil || v <= float64(*b.Max)
}

// TrendPoint is one contest score in a student's history.
type TrendPoint struct {
	Contest string  `json:"contest"`
	Score   float64 `json:"score"`
}

// PerformanceMetrics summarises contest participation across the cohort.
// Percentages and averages are rounded to one decimal.
type PerformanceMetrics struct {
	AvgParticipation float64 `json:"avgParticipation"`
	AvgContestScore  float64 `json:"avgContestScore"`
	TotalContests    int     `json:"totalContests"`
	TotalStudents    int     `json:"totalStudents"`
}

// ContestStats summarises the strictly positive scores of one contest.
type ContestStats struct {
	Contest      string  `json:"contest"`
	Average      float64 `json:"average"`
	Max          float64 `json:"max"`
	Min          float64 `json:"min"`
	Participants int     `json:"participants"`
}

// ContestAttendance counts who sat a contest.
type ContestAttendance struct {
	Contest        string  `json:"contest"`
	Attended       int     `json:"attended"`
	NotAttended    int     `json:"notAttended"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// ContestAverage is the participant count and mean positive score of a contest.
type ContestAverage struct {
	Contest      string  `json:"contest"`
	Participants int     `json:"participants"`
	AvgScore     float64 `json:"avgScore"`
}

// ProblemBreakdown counts students by problems solved in one contest:
// index 0..3 for exactly that many, index 4 for four or more.
type ProblemBreakdown struct {
	Contest string `json:"contest"`
	Counts  [5]int `json:"counts"`
}

// Improvement compares a student's first and last positive contest score.
type Improvement struct {
	Name        string  `json:"name"`
	LeetcodeID  string  `json:"leetcodeId"`
	FirstScore  float64 `json:"firstScore"`
	LastScore   float64 `json:"lastScore"`
	Improvement float64 `json:"improvement"`
}

// HeatCell is one (contest, student) score in a heatmap.
type HeatCell struct {
	Contest int     `json:"contest"`
	Student int     `json:"student"`
	Score   float64 `json:"score"`
}

// Heatmap is a students-by-contests score matrix.
type Heatmap struct {
	Students []string   `json:"students"`
	Contests []string   `json:"contests"`
	Cells    []HeatCell `json:"cells"`
	MaxScore float64    `json:"maxScore"`
}
