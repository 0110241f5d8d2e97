package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

// Default destination paths inside the target repository.
const (
	DefaultBranch   = "main"
	DefaultBookPath = "leaderboard.xlsx"
	DefaultJSONPath = "leaderboard.json"
)

// GitHub publishes snapshots as commits to a repository via the contents
// API: the workbook binary and a JSON summary, both with the same commit
// message carrying the game key, the best score and a timestamp.
type GitHub struct {
	owner    string
	repo     string
	branch   string
	bookPath string
	jsonPath string
	client   *github.Client
	now      func() time.Time
}

// NewGitHub creates a publisher committing to owner/repo with token.
func NewGitHub(token, owner, repo string, opts ...GitHubOption) (*GitHub, error) {
	if token == "" || owner == "" || repo == "" {
		return nil, ErrMissingConfig
	}
	p := &GitHub{
		owner:    owner,
		repo:     repo,
		branch:   DefaultBranch,
		bookPath: DefaultBookPath,
		jsonPath: DefaultJSONPath,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		p.client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}
	return p, nil
}

// Publish uploads the workbook artifact and the JSON summary. An existing
// file at either destination is updated in place; a missing one is created
// ("not found" is the normal first-publish case, not an error).
func (p *GitHub) Publish(ctx context.Context, snap Snapshot) error {
	stamp := snap.UpdatedAt
	if stamp == "" {
		stamp = p.now().UTC().Format(time.RFC3339)
	}
	msg := fmt.Sprintf("chore(leaderboard): %s best %d @ %s", snap.Game, snap.Best, stamp)

	book, err := os.ReadFile(snap.BookPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadArtifact, err)
	}
	if err := p.put(ctx, p.bookPath, book, msg); err != nil {
		return fmt.Errorf("publish workbook: %w", err)
	}

	summary, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := p.put(ctx, p.jsonPath, summary, msg); err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}
	return nil
}

// put creates or updates one file at path on the configured branch.
func (p *GitHub) put(ctx context.Context, path string, content []byte, msg string) error {
	sha, err := p.existingSHA(ctx, path)
	if err != nil {
		return err
	}
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(msg),
		Content: content,
		Branch:  github.String(p.branch),
		SHA:     sha,
	}
	if sha != nil {
		_, _, err = p.client.Repositories.UpdateFile(ctx, p.owner, p.repo, path, opts)
	} else {
		_, _, err = p.client.Repositories.CreateFile(ctx, p.owner, p.repo, path, opts)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return nil
}

// existingSHA returns the blob SHA at path, or nil when the destination does
// not exist yet.
func (p *GitHub) existingSHA(ctx context.Context, path string) (*string, error) {
	fc, _, resp, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, path,
		&github.RepositoryContentGetOptions{Ref: p.branch})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if fc == nil || fc.SHA == nil {
		return nil, nil
	}
	return fc.SHA, nil
}
