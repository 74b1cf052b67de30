// Package config defines the match configuration and how it is loaded.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// TeamA and TeamB are the display names of the two sides.
	TeamA string `koanf:"team_a" validate:"required"`
	TeamB string `koanf:"team_b" validate:"required"`

	// Duration is the match length in frames.
	Duration int `koanf:"duration" validate:"gte=1"`

	// FPS is the number of frames per second of match time.
	FPS int `koanf:"fps" validate:"gte=1,lte=1000"`

	// Seed makes the match reproducible; zero seeds from the clock.
	Seed int64 `koanf:"seed"`

	// Realtime paces frames at FPS instead of running flat out.
	Realtime bool `koanf:"realtime"`

	// CoachWindow is how many recent events a coach considers.
	CoachWindow int `koanf:"coach_window" validate:"gte=1"`

	// CoachInterval is the frame cadence of coach reviews; zero reviews
	// only at halftime.
	CoachInterval int `koanf:"coach_interval" validate:"gte=0"`

	// LateMinute is the minute after which a leading team protects its lead.
	LateMinute int `koanf:"late_minute" validate:"gte=0"`

	// RepoPath is the local git working tree events are committed to.
	RepoPath string `koanf:"repo_path" validate:"required"`

	// RepoOwner and RepoName identify the GitHub repository.
	RepoOwner string `koanf:"repo_owner" validate:"required"`
	RepoName  string `koanf:"repo_name" validate:"required"`

	// BaseBranch is where event commits are pushed and tactical PRs target.
	BaseBranch string `koanf:"base_branch" validate:"required"`

	// DiscussionCategoryID is the GraphQL id of the discussion category.
	DiscussionCategoryID string `koanf:"discussion_category_id"`

	// GitHubAPIURL overrides the REST API root; GitHubGraphQLURL the
	// GraphQL endpoint.
	GitHubAPIURL     string `koanf:"github_api_url" validate:"omitempty,url"`
	GitHubGraphQLURL string `koanf:"github_graphql_url" validate:"omitempty,url"`

	// GitHubToken gates every GitHub and git side effect.
	GitHubToken string `koanf:"github_token"`

	// EnableGitCommits turns on one commit per event.
	EnableGitCommits bool `koanf:"enable_git_commits"`

	// GitAuthorName and GitAuthorEmail sign event commits.
	GitAuthorName  string `koanf:"git_author_name"`
	GitAuthorEmail string `koanf:"git_author_email" validate:"omitempty,email"`

	// StatusAddr enables the status API when set, e.g. ":9080".
	StatusAddr string `koanf:"status_addr"`

	// MaxEventsLimit caps GET /events?limit.
	MaxEventsLimit int `koanf:"max_events_limit" validate:"gte=1"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		TeamA:                "Team Alpha",
		TeamB:                "Team Beta",
		Duration:             180,
		FPS:                  1,
		CoachWindow:          30,
		CoachInterval:        60,
		LateMinute:           40,
		RepoPath:             ".",
		RepoOwner:            "hiranotomo",
		RepoName:             "soccer-hyperreal-experiment",
		BaseBranch:           "main",
		DiscussionCategoryID: "DIC_kwDONXxK284ClaLa",
		GitAuthorName:        "hyperreal-engine",
		GitAuthorEmail:       "hyperreal-engine@users.noreply.github.com",
		MaxEventsLimit:       500,
	}
}

// GitHubEnabled reports whether a token is available.
func (c *Config) GitHubEnabled() bool { return c.GitHubToken != "" }
