// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BookPath locates the workbook file backing every collection.
	BookPath string `koanf:"book_path"`

	// MaxRows caps the persisted rows per collection.
	MaxRows int `koanf:"max_rows"`

	// DefaultLimit is used for GET /api/leaderboard without ?limit.
	DefaultLimit int `koanf:"default_limit"`

	// SyncOnWin enables mirroring to GitHub when a submission takes rank 1.
	SyncOnWin bool `koanf:"sync_on_win"`

	// GitHub replication destination. Ignored unless SyncOnWin is set.
	GitHubToken    string `koanf:"github_token"`
	GitHubOwner    string `koanf:"github_owner"`
	GitHubRepo     string `koanf:"github_repo"`
	GitHubBranch   string `koanf:"github_branch"`
	GitHubBookPath string `koanf:"github_book_path"`
	GitHubJSONPath string `koanf:"github_json_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		BookPath:       "leaderboard.xlsx",
		MaxRows:        50,
		DefaultLimit:   10,
		SyncOnWin:      false,
		GitHubBranch:   "main",
		GitHubBookPath: "leaderboard.xlsx",
		GitHubJSONPath: "leaderboard.json",
	}
}
