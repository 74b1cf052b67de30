package github

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/hyperreal/internal/domain/coach"
	"github.com/okian/hyperreal/internal/domain/matchtime"
	"github.com/okian/hyperreal/pkg/logger"
)

// Workspace is the local repository a tactical change is prepared in.
type Workspace interface {
	CreateBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, name string) error
	WriteFile(ctx context.Context, rel string, data []byte) error
	CommitPaths(ctx context.Context, msg string, paths ...string) (string, error)
	Push(ctx context.Context, branch string, setUpstream bool) error
}

// PullRequester opens pull requests; *Client implements it.
type PullRequester interface {
	CreatePullRequest(ctx context.Context, head, title, body, base string) (int, error)
}

// TacticalPR proposes coach decisions as pull requests.
type TacticalPR struct {
	ws     Workspace
	prs    PullRequester
	base   string
	now    func() time.Time
	logger logger.Logger
}

// TacticalOption applies a configuration option to TacticalPR.
type TacticalOption func(*TacticalPR)

// WithBaseBranch sets the branch pull requests target and the flow returns to.
func WithBaseBranch(name string) TacticalOption {
	return func(t *TacticalPR) {
		if name != "" {
			t.base = name
		}
	}
}

// WithTacticalClock overrides the time source for branch names and stamps.
func WithTacticalClock(now func() time.Time) TacticalOption {
	return func(t *TacticalPR) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTacticalPR wires a workspace and a pull request API together.
func NewTacticalPR(ws Workspace, prs PullRequester, opts ...TacticalOption) *TacticalPR {
	t := &TacticalPR{
		ws:     ws,
		prs:    prs,
		base:   "main",
		now:    time.Now,
		logger: logger.Get().Named("tactical"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BranchName returns tactical/<type>-<unix ms>.
func BranchName(d coach.TacticalDecision, at time.Time) string {
	return fmt.Sprintf("tactical/%s-%d", d.Type, at.UnixMilli())
}

// Propose branches from HEAD, commits the team's tactics file, pushes the
// branch and opens a pull request against the base branch. The base branch
// is checked out again whether or not the flow succeeds; failing to return
// to it is logged and never turns an opened pull request into an error.
func (t *TacticalPR) Propose(ctx context.Context, d coach.TacticalDecision, matchTime, teamID, teamName string) (number int, err error) {
	at := t.now()
	branch := BranchName(d, at)
	stamp := matchtime.FormatTimestamp(at)

	if err := t.ws.CreateBranch(ctx, branch); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTacticalPR, err)
	}
	defer func() {
		if cerr := t.ws.Checkout(ctx, t.base); cerr != nil {
			t.logger.Warn(ctx, "return to base branch",
				logger.String("base", t.base),
				logger.Int("number", number),
				logger.Error(cerr),
			)
		}
	}()

	doc, err := json.MarshalIndent(coach.NewTactics(d, matchTime, at), "", "  ")
	if err != nil {
		return 0, fmt.Errorf("%w: encode tactics: %w", ErrTacticalPR, err)
	}
	path := coach.TacticsPath(teamID)
	if err := t.ws.WriteFile(ctx, path, doc); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTacticalPR, err)
	}

	msg := fmt.Sprintf("🎯 Tactical Change: %s at %s\n\n%s\n\nPriority: %s\nTeam: %s\nTimestamp: %s\n",
		d.Type, matchTime, d.Reasoning, d.Priority, teamName, stamp)
	if _, err := t.ws.CommitPaths(ctx, msg, path); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTacticalPR, err)
	}
	if err := t.ws.Push(ctx, branch, true); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTacticalPR, err)
	}

	body, err := TacticalPRBody(d, matchTime, teamName, stamp)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTacticalPR, err)
	}
	title := fmt.Sprintf("[Tactical Change] %s - %s", d.Type, matchTime)
	number, err = t.prs.CreatePullRequest(ctx, branch, title, body, t.base)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTacticalPR, err)
	}
	t.logger.Info(ctx, "tactical pull request opened",
		logger.Int("number", number),
		logger.String("branch", branch),
		logger.String("team", teamID),
	)
	return number, nil
}
