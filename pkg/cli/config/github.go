package config

import (
	"log/slog"

	"github.com/secmon-lab/charybdis/pkg/service/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds configuration for the GitHub API client
type GitHub struct {
	token       string
	baseURL     string
	concurrency int
}

// Flags returns CLI flags for GitHub configuration
func (g *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token (anonymous quota when empty)",
			Sources:     cli.EnvVars("CHARYBDIS_GITHUB_TOKEN", "GITHUB_TOKEN"),
			Destination: &g.token,
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Sources:     cli.EnvVars("CHARYBDIS_GITHUB_BASE_URL"),
			Destination: &g.baseURL,
		},
		&cli.IntFlag{
			Name:        "github-concurrency",
			Usage:       "Number of repositories synced in parallel",
			Value:       4,
			Sources:     cli.EnvVars("CHARYBDIS_GITHUB_CONCURRENCY"),
			Destination: &g.concurrency,
		},
	}
}

// LogValue renders the configuration for startup logging, token omitted
func (g GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("authenticated", g.token != ""),
		slog.String("base_url", g.baseURL),
		slog.Int("concurrency", g.concurrency),
	)
}

// Configure creates the GitHub sync service
func (g *GitHub) Configure() github.Service {
	opts := []github.Option{
		github.WithConcurrency(g.concurrency),
	}
	if g.baseURL != "" {
		opts = append(opts, github.WithBaseURL(g.baseURL))
	}
	return github.New(g.token, opts...)
}
