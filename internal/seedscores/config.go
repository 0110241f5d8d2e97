package seedscores

import "time"

// Config holds configuration for one seeding run.
type Config struct {
	BaseURL string        // Base URL of the service
	Game    string        // Collection to submit into
	Count   int           // Number of submissions to send
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	TopN    int           // Entries to fetch for the final verification
	LogFile string        // Log file for run output
}

// Submission mirrors the POST /api/leaderboard body.
type Submission struct {
	Game  string  `json:"game"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Entry mirrors one row of the leaderboard response.
type Entry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	At    string `json:"at"`
}

// BoardResponse mirrors both leaderboard operations' response shape.
type BoardResponse struct {
	OK      bool    `json:"ok"`
	Game    string  `json:"game"`
	Best    int     `json:"best"`
	Entries []Entry `json:"entries"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Rejected   int
	Failed     int
	BoardSize  int
	Best       int
	StartTime  time.Time
	Duration   time.Duration
}
