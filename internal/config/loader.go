package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCORES_CONFIG is set
//  3. env (prefix SCORES_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCORES_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCORES_ADDR, SCORES_BOOK_PATH, ...
	// Map env keys like SCORES_BOOK_PATH -> book_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCORES_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scores_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BookPath == "":
		return fmt.Errorf("%w: book_path must not be empty", ErrInvalidConfig)
	case c.MaxRows < 1:
		return fmt.Errorf("%w: max_rows must be positive", ErrInvalidConfig)
	case c.DefaultLimit < 1 || c.DefaultLimit > c.MaxRows:
		return fmt.Errorf("%w: default_limit must be in [1, max_rows]", ErrInvalidConfig)
	}
	if c.SyncOnWin && (c.GitHubToken == "" || c.GitHubOwner == "" || c.GitHubRepo == "") {
		return fmt.Errorf("%w: sync_on_win requires github_token, github_owner and github_repo", ErrInvalidConfig)
	}
	return nil
}
