package model

import "time"

// Snapshot is one complete, immutable normalization result.
type Snapshot struct {
	Headers       []string  `json:"headers"`
	Students      []Student `json:"data"`
	ContestNames  []string  `json:"contestNames"`
	LastUpdated   time.Time `json:"lastUpdated"`
	TotalStudents int       `json:"totalStudents"`
}

// CacheEntry pairs a snapshot with the instant it was fetched.
type CacheEntry struct {
	Snapshot  Snapshot
	FetchedAt time.Time
}

// Fresh reports whether the entry is still inside ttl at now.
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return e != nil && now.Sub(e.FetchedAt) < ttl
}

// DerivedStats is the dashboard summary computed from a snapshot.
type DerivedStats struct {
	TotalStudents     int       `json:"totalStudents"`
	AverageRating     int       `json:"averageRating"`
	TotalProblems     int       `json:"totalProblems"`
	AverageProblems   int       `json:"averageProblems"`
	AverageAttendance int       `json:"averageAttendance"`
	TopRating         int       `json:"topRating"`
	TopSolver         int       `json:"topSolver"`
	ContestCount      int       `json:"contestCount"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// SpreadsheetInfo describes the source spreadsheet.
type SpreadsheetInfo struct {
	Title  string   `json:"title"`
	Sheets []string `json:"sheets"`
}
