// Package model contains domain models passed between layers.
package model

// Fixed column positions in a raw sheet row.
const (
	ColRegisterNumber = 0
	ColName           = 1
	ColLeetcodeID     = 2
	ColProblemsSolved = 3
	ColRating         = 4
	// FirstContestCol is the first column holding a per-contest score.
	FirstContestCol = 5
)

// RawSheet is the tabular payload returned by the sheet source.
// Row 0 is the header; every cell is text. Rows may be ragged.
type RawSheet [][]string

// Header returns row 0, or nil for an empty sheet.
func (r RawSheet) Header() []string {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

// Student is one normalized sheet row.
type Student struct {
	// ID is the 1-based position among retained rows; not stable across fetches.
	ID             int      `json:"id"`
	RegisterNumber string   `json:"registerNumber"`
	Name           string   `json:"name"`
	LeetcodeID     string   `json:"leetcodeId"`
	ProblemsSolved int      `json:"problemsSolved"`
	Rating         int      `json:"rating"`
	Contests       Contests `json:"contests"`
}

// ContestScore returns the student's score for contest, or 0 when absent.
func (s Student) ContestScore(contest string) float64 {
	v, _ := s.Contests.Score(contest)
	return v
}

// Attended reports whether the student has a strictly positive score for contest.
func (s Student) Attended(contest string) bool {
	return s.ContestScore(contest) > 0
}
