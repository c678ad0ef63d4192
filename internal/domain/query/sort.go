// Package query holds the view functions the dashboard reads through.
//
// Functions never mutate their input; they return new slices. They compose
// in the order filter, sort, contest scope.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/leetboard/internal/domain/model"
)

// SortBy names a student ordering.
type SortBy string

// Supported orderings.
const (
	SortRating   SortBy = "rating"
	SortProblems SortBy = "problems"
	SortName     SortBy = "name"
)

// SortData returns a stably sorted copy of students. Rating and problems
// sort descending, name ascending under English collation. Any other
// criterion returns an unsorted copy.
func SortData(students []model.Student, by SortBy) []model.Student {
	out := slices.Clone(students)
	switch by {
	case SortRating:
		slices.SortStableFunc(out, func(a, b model.Student) int { return b.Rating - a.Rating })
	case SortProblems:
		slices.SortStableFunc(out, func(a, b model.Student) int { return b.ProblemsSolved - a.ProblemsSolved })
	case SortName:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.Student) int { return col.CompareString(a.Name, b.Name) })
	}
	return out
}

// FilterData keeps students whose name, LeetCode id or register number
// contains term, ignoring case. An empty term returns students as given.
func FilterData(students []model.Student, term string) []model.Student {
	if term == "" {
		return students
	}
	term = strings.ToLower(term)
	out := make([]model.Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.LeetcodeID), term) ||
			strings.Contains(strings.ToLower(s.RegisterNumber), term) {
			out = append(out, s)
		}
	}
	return out
}
