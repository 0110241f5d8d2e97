package publisher

import (
	"time"

	"github.com/google/go-github/v58/github"
)

// GitHubOption applies a configuration option to the GitHub publisher.
type GitHubOption func(*GitHub)

// WithBranch sets the target branch.
func WithBranch(branch string) GitHubOption {
	return func(p *GitHub) {
		if branch != "" {
			p.branch = branch
		}
	}
}

// WithBookPath sets the repository path for the workbook artifact.
func WithBookPath(path string) GitHubOption {
	return func(p *GitHub) {
		if path != "" {
			p.bookPath = path
		}
	}
}

// WithJSONPath sets the repository path for the JSON summary.
func WithJSONPath(path string) GitHubOption {
	return func(p *GitHub) {
		if path != "" {
			p.jsonPath = path
		}
	}
}

// WithClient injects a preconfigured API client. Tests point this at a
// local HTTP server.
func WithClient(client *github.Client) GitHubOption {
	return func(p *GitHub) {
		if client != nil {
			p.client = client
		}
	}
}

// WithClock injects the timestamp source for commit messages.
func WithClock(now func() time.Time) GitHubOption {
	return func(p *GitHub) {
		if now != nil {
			p.now = now
		}
	}
}
