// Package normalize turns raw sheet rows into typed student records.
//
// Coercion never fails a row: bad numbers become 0 and missing text becomes
// "". Only a sheet without a single usable row is rejected.
package normalize

import (
	"strings"
	"time"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/pkg/metrics"
)

// notAvailable marks a contest the student did not sit.
const notAvailable = "n/a"

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// Normalizer converts raw sheets into snapshots and records row metrics.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts raw into a snapshot stamped with the current time.
func (n *Normalizer) Normalize(raw model.RawSheet) (model.Snapshot, error) {
	snap, err := Normalize(raw, n.now())
	if err != nil {
		return model.Snapshot{}, err
	}
	metrics.UpdateRowsRetained(snap.TotalStudents)
	metrics.UpdateRowsSkipped(len(raw) - 1 - snap.TotalStudents)
	metrics.UpdateSnapshotSize(snap.TotalStudents, len(snap.ContestNames))
	return snap, nil
}

// Normalize converts raw into a snapshot stamped with now. It fails with
// model.ErrEmptySheet when raw is absent, holds only the header row, or
// every data row is discarded.
func Normalize(raw model.RawSheet, now time.Time) (model.Snapshot, error) {
	if len(raw) == 0 {
		return model.Snapshot{}, model.ErrEmptySheet
	}

	headers := raw[0]
	columns := contestColumns(headers)

	contestNames := make([]string, 0, len(columns))
	for _, c := range columns {
		contestNames = append(contestNames, c.name)
	}

	students := make([]model.Student, 0, len(raw)-1)
	for _, row := range raw[1:] {
		if len(row) == 0 || row[model.ColRegisterNumber] == "" {
			continue
		}
		s := studentFromRow(row, columns)
		s.ID = len(students) + 1
		students = append(students, s)
	}
	if len(students) == 0 {
		return model.Snapshot{}, model.ErrEmptySheet
	}

	return model.Snapshot{
		Headers:       headers,
		Students:      students,
		ContestNames:  contestNames,
		LastUpdated:   now,
		TotalStudents: len(students),
	}, nil
}

// contestColumn binds a header position to its trimmed contest name.
type contestColumn struct {
	index int
	name  string
}

// contestColumns lists header columns from FirstContestCol on whose trimmed
// text is non-empty. Duplicate names are kept.
func contestColumns(headers []string) []contestColumn {
	var cols []contestColumn
	for i := model.FirstContestCol; i < len(headers); i++ {
		name := strings.TrimSpace(headers[i])
		if name == "" {
			continue
		}
		cols = append(cols, contestColumn{index: i, name: name})
	}
	return cols
}

func studentFromRow(row []string, columns []contestColumn) model.Student {
	s := model.Student{
		RegisterNumber: cell(row, model.ColRegisterNumber),
		Name:           cell(row, model.ColName),
		LeetcodeID:     cell(row, model.ColLeetcodeID),
		ProblemsSolved: nonNegative(ParseLenientInt(cell(row, model.ColProblemsSolved), 0)),
		Rating:         nonNegative(ParseLenientInt(cell(row, model.ColRating), 0)),
	}
	for _, c := range columns {
		// Later duplicate headers overwrite earlier ones.
		s.Contests.Set(c.name, ContestValue(cell(row, c.index)))
	}
	return s
}

// ContestValue coerces one contest cell: empty or "N/A" (any case) is 0,
// otherwise the leading number, or 0 when there is none.
func ContestValue(text string) float64 {
	v := strings.TrimSpace(text)
	if v == "" || strings.EqualFold(v, notAvailable) {
		return 0
	}
	return ParseLenientFloat(v, 0)
}

// cell returns row[i], or "" for a short row.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
