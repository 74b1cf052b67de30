// Package github mirrors match events into GitHub issues, pull requests,
// comments and discussions.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/pkg/logger"
	"github.com/okian/hyperreal/pkg/metrics"
)

const adapterName = "github"

// Client wraps the REST and GraphQL APIs for one repository.
type Client struct {
	gh *gh.Client

	owner      string
	repo       string
	baseURL    string
	graphqlURL string
	categoryID string
	teamA      string
	teamB      string
	logger     logger.Logger

	repoIDMu sync.Mutex
	repoID   string
}

// New builds a client authenticated with token.
func New(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	c := &Client{
		owner:      DefaultOwner,
		repo:       DefaultRepo,
		graphqlURL: "graphql",
		categoryID: DefaultDiscussionCategory,
		teamA:      "Team Alpha",
		teamB:      "Team Beta",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("github")
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	c.gh = gh.NewClient(httpClient)
	if c.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github base url %q: %w", c.baseURL, err)
		}
		c.gh.BaseURL = u
	}
	return c, nil
}

// Repository returns "owner/name".
func (c *Client) Repository() string { return c.owner + "/" + c.repo }

// TeamName maps a team id to its display name.
func (c *Client) TeamName(team string) string {
	if team == model.TeamB {
		return c.teamB
	}
	return c.teamA
}

// CreateGoalIssue files an issue for a goal and returns its number.
func (c *Client) CreateGoalIssue(ctx context.Context, ev model.Event) (int, error) {
	team := ev.Team()
	body, err := renderGoalIssue(ev, c.TeamName(team))
	if err != nil {
		return 0, err
	}
	title := fmt.Sprintf("⚽ GOAL: %s (%s) - %s", ev.Action.Agent, c.TeamName(team), ev.MatchTime)
	return c.createIssue(ctx, "create_goal_issue", title, body, []string{"goal", "match-event", team})
}

// CardEmoji returns the title emoji for a card.
func CardEmoji(card model.Card) string {
	switch card {
	case model.CardYellow:
		return "🟨"
	case model.CardRed:
		return "🟥"
	}
	return "⚠️"
}

// CreateFoulIssue files an issue for a foul and the card it drew.
func (c *Client) CreateFoulIssue(ctx context.Context, ev model.Event, card model.Card) (int, error) {
	team := ev.Team()
	body, err := renderFoulIssue(ev, c.TeamName(team), card)
	if err != nil {
		return 0, err
	}
	title := fmt.Sprintf("%s %s CARD: %s - %s", CardEmoji(card), strings.ToUpper(string(card)), ev.Action.Agent, ev.MatchTime)
	cardLabel := "no-card"
	if card != model.CardNone && card != "" {
		cardLabel = string(card) + "-card"
	}
	return c.createIssue(ctx, "create_foul_issue", title, body, []string{"foul", cardLabel, team})
}

func (c *Client) createIssue(ctx context.Context, op, title, body string, labels []string) (int, error) {
	start := time.Now()
	issue, _, err := c.gh.Issues.Create(ctx, c.owner, c.repo, &gh.IssueRequest{
		Title:  gh.Ptr(title),
		Body:   gh.Ptr(body),
		Labels: &labels,
	})
	c.record(op, err, start)
	if err != nil {
		return 0, fmt.Errorf("create issue %q: %w", title, err)
	}
	c.logger.Info(ctx, "issue created",
		logger.Int("number", issue.GetNumber()),
		logger.String("title", title),
	)
	return issue.GetNumber(), nil
}

// CreatePullRequest opens a pull request from head into base.
func (c *Client) CreatePullRequest(ctx context.Context, head, title, body, base string) (int, error) {
	start := time.Now()
	pr, _, err := c.gh.PullRequests.Create(ctx, c.owner, c.repo, &gh.NewPullRequest{
		Title: gh.Ptr(title),
		Head:  gh.Ptr(head),
		Base:  gh.Ptr(base),
		Body:  gh.Ptr(body),
	})
	c.record("create_pull_request", err, start)
	if err != nil {
		return 0, fmt.Errorf("create pull request %s -> %s: %w", head, base, err)
	}
	c.logger.Info(ctx, "pull request created",
		logger.Int("number", pr.GetNumber()),
		logger.String("head", head),
	)
	return pr.GetNumber(), nil
}

// AddComment comments on an issue or pull request and returns the comment id.
func (c *Client) AddComment(ctx context.Context, number int, body string) (int64, error) {
	start := time.Now()
	comment, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	c.record("add_comment", err, start)
	if err != nil {
		return 0, fmt.Errorf("comment on #%d: %w", number, err)
	}
	c.logger.Debug(ctx, "comment added", logger.Int("number", number))
	return comment.GetID(), nil
}

func (c *Client) record(operation string, err error, start time.Time) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.RecordAdapterCall(adapterName, operation, outcome, float64(time.Since(start).Milliseconds()))
}
