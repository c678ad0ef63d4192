package types

// Distributions groups the cohort histograms.
type Distributions struct {
	Rating   []Bucket `json:"rating"`
	Problems []Bucket `json:"problems"`
}

// ContestsView is the per-contest breakdown. Stats and ScoreDistribution
// are set only when a single contest is selected.
type ContestsView struct {
	ContestNames      []string            `json:"contestNames"`
	Attendance        []ContestAttendance `json:"attendance"`
	Averages          []ContestAverage    `json:"averages"`
	ProblemBreakdown  []ProblemBreakdown  `json:"problemBreakdown"`
	Selected          string              `json:"selected,omitempty"`
	Stats             *ContestStats       `json:"stats,omitempty"`
	ScoreDistribution []Bucket            `json:"scoreDistribution,omitempty"`
}

// Insights groups the derived cohort views shown below the leaderboard.
type Insights struct {
	Performance   PerformanceMetrics `json:"performance"`
	TopPerformers []Entry            `json:"topPerformers"`
	Improvements  []Improvement      `json:"improvements"`
	Heatmap       Heatmap            `json:"heatmap"`
}

// SheetsView describes the configured source and the tabs it offers.
type SheetsView struct {
	SpreadsheetID   string   `json:"spreadsheetId"`
	Title           string   `json:"title,omitempty"`
	ConfiguredSheet string   `json:"configuredSheet"`
	AvailableSheets []string `json:"availableSheets"`
}
