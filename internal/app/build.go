package service

import (
	"context"

	"github.com/okian/hyperreal/internal/adapters/git"
	ghadapter "github.com/okian/hyperreal/internal/adapters/github"
	"github.com/okian/hyperreal/internal/config"
	"github.com/okian/hyperreal/pkg/logger"
)

// FromConfig builds a Service and its adapters from cfg. Without a GitHub
// token no client or committer is constructed, so nothing touches the
// network. Adapter setup failures disable the adapter and are logged.
func FromConfig(ctx context.Context, cfg *config.Config, opts ...Option) *Service {
	log := logger.Get().Named("service")
	base := []Option{
		WithTeams(cfg.TeamA, cfg.TeamB),
		WithCoachWindow(cfg.CoachWindow),
		WithCoachInterval(cfg.CoachInterval),
		WithLateMinute(cfg.LateMinute),
		WithFPS(cfg.FPS),
		WithBaseBranch(cfg.BaseBranch),
	}
	if !cfg.GitHubEnabled() {
		log.Info(ctx, "GITHUB_TOKEN not set; GitHub and git side effects disabled")
		return New(append(base, opts...)...)
	}

	client, err := ghadapter.New(ctx, cfg.GitHubToken,
		ghadapter.WithRepository(cfg.RepoOwner, cfg.RepoName),
		ghadapter.WithBaseURL(cfg.GitHubAPIURL),
		ghadapter.WithGraphQLURL(cfg.GitHubGraphQLURL),
		ghadapter.WithDiscussionCategory(cfg.DiscussionCategoryID),
		ghadapter.WithTeamNames(cfg.TeamA, cfg.TeamB),
	)
	if err != nil {
		log.Warn(ctx, "github client disabled", logger.Error(err))
		return New(append(base, opts...)...)
	}
	base = append(base, WithIssueTracker(client))

	committer, err := git.New(cfg.RepoPath,
		git.WithAuthor(cfg.GitAuthorName, cfg.GitAuthorEmail),
		git.WithToken(cfg.GitHubToken),
	)
	if err != nil {
		log.Warn(ctx, "git repository unavailable; commits and tactical PRs disabled",
			logger.String("path", cfg.RepoPath),
			logger.Error(err),
		)
		return New(append(base, opts...)...)
	}
	base = append(base, WithProposer(ghadapter.NewTacticalPR(committer, client,
		ghadapter.WithBaseBranch(cfg.BaseBranch),
	)))
	if git.Enabled(cfg.GitHubToken, cfg.EnableGitCommits) {
		base = append(base, WithEventCommitter(committer))
	}
	return New(append(base, opts...)...)
}
