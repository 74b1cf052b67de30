// Package git records match events as commits in a local repository and
// pushes them to the remote.
package git

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/pkg/logger"
	"github.com/okian/hyperreal/pkg/metrics"
)

const (
	adapterName = "git"

	// EventsDir is where event files are committed.
	EventsDir = "matches/current/events"

	defaultRemote      = "origin"
	defaultAuthorName  = "hyperreal-engine"
	defaultAuthorEmail = "hyperreal-engine@users.noreply.github.com"
	tokenUsername      = "x-access-token"
)

// Enabled reports whether event commits should be made: a token must be
// present and commits explicitly switched on.
func Enabled(token string, enableCommits bool) bool {
	return token != "" && enableCommits
}

// Committer writes files into a repository working tree and commits them.
type Committer struct {
	mu sync.Mutex

	repo *gogit.Repository
	wt   *gogit.Worktree

	remote      string
	token       string
	authorName  string
	authorEmail string
	now         func() time.Time
	logger      logger.Logger
}

// New opens the repository at repoPath.
func New(repoPath string, opts ...Option) (*Committer, error) {
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenRepository, repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenRepository, repoPath, err)
	}
	c := &Committer{
		repo:        repo,
		wt:          wt,
		remote:      defaultRemote,
		authorName:  defaultAuthorName,
		authorEmail: defaultAuthorEmail,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("git")
	}
	return c, nil
}

// EventPath is the repository path an event is committed to.
func EventPath(ev model.Event) string {
	return path.Join(EventsDir, fmt.Sprintf("%s-%d.json", ev.Action.Type, ev.Frame))
}

// EventMessage renders the full commit message for ev.
func EventMessage(ev model.Event) string {
	subject := fmt.Sprintf("%s: %s", ev.Action.Type, ev.Action.Agent)
	if ev.Git != nil && ev.Git.Message != "" {
		subject = ev.Git.Message
	}
	var decisionType, from, reasoning string
	if d := ev.Decision; d != nil {
		decisionType, from, reasoning = string(d.Type), d.From.String(), d.Reasoning
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", subject)
	fmt.Fprintf(&b, "Frame: %d\n", ev.Frame)
	fmt.Fprintf(&b, "Time: %s\n", ev.MatchTime)
	fmt.Fprintf(&b, "Agent: %s\n", ev.Action.Agent)
	fmt.Fprintf(&b, "Result: %s\n\n", ev.Action.Result)
	fmt.Fprintf(&b, "Decision: %s\n", decisionType)
	fmt.Fprintf(&b, "From: %s\n", from)
	fmt.Fprintf(&b, "Reasoning: %s\n\n", reasoning)
	fmt.Fprintf(&b, "Position: (%s, %s)\n",
		strconv.FormatFloat(ev.Space.Physical.X, 'f', -1, 64),
		strconv.FormatFloat(ev.Space.Physical.Y, 'f', -1, 64))
	return b.String()
}

// CommitEvent writes ev as indented JSON, stages it and commits it on the
// current branch. It returns the commit hash.
func (c *Committer) CommitEvent(ctx context.Context, ev model.Event) (string, error) {
	start := time.Now()
	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		c.record("commit_event", err, start)
		return "", fmt.Errorf("%w: encode event: %w", ErrCommit, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := EventPath(ev)
	if err := c.writeFile(p, data); err != nil {
		c.record("commit_event", err, start)
		return "", err
	}
	hash, err := c.commit(EventMessage(ev), p)
	c.record("commit_event", err, start)
	if err != nil {
		return "", err
	}
	c.logger.Debug(ctx, "event committed",
		logger.String("path", p),
		logger.String("commit", shortHash(hash)),
	)
	return hash, nil
}

// WriteFile writes data to a path relative to the repository root.
func (c *Committer) WriteFile(_ context.Context, rel string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeFile(rel, data)
}

// CommitPaths stages paths and commits them with msg.
func (c *Committer) CommitPaths(_ context.Context, msg string, paths ...string) (string, error) {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	hash, err := c.commit(msg, paths...)
	c.record("commit_paths", err, start)
	return hash, err
}

// CurrentBranch returns the short name of the checked out branch.
func (c *Committer) CurrentBranch(_ context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	head, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: resolve HEAD: %w", ErrCheckout, err)
	}
	return head.Name().Short(), nil
}

// CreateBranch creates name from HEAD and checks it out.
func (c *Committer) CreateBranch(_ context.Context, name string) error {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		err = fmt.Errorf("%w: create %s: %w", ErrCheckout, name, err)
	}
	c.record("create_branch", err, start)
	return err
}

// Checkout switches to an existing branch.
func (c *Committer) Checkout(_ context.Context, name string) error {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrCheckout, name, err)
	}
	c.record("checkout", err, start)
	return err
}

// Push pushes branch to the remote. A remote that is already up to date
// is not an error. With setUpstream the local branch is configured to
// track the remote one.
func (c *Committer) Push(ctx context.Context, branch string, setUpstream bool) error {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	ref := plumbing.NewBranchReferenceName(branch)
	opts := &gogit.PushOptions{
		RemoteName: c.remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))},
	}
	if c.token != "" {
		opts.Auth = &githttp.BasicAuth{Username: tokenUsername, Password: c.token}
	}

	err := c.repo.PushContext(ctx, opts)
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("%w %s %s: %w", ErrPush, c.remote, branch, err)
		c.record("push", err, start)
		return err
	}
	if setUpstream {
		if uerr := c.setUpstream(branch); uerr != nil {
			c.logger.Warn(ctx, "set upstream", logger.String("branch", branch), logger.Error(uerr))
		}
	}
	c.record("push", nil, start)
	c.logger.Info(ctx, "pushed", logger.String("remote", c.remote), logger.String("branch", branch))
	return nil
}

func (c *Committer) setUpstream(branch string) error {
	err := c.repo.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: c.remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	})
	if errors.Is(err, gogit.ErrBranchExists) {
		return nil
	}
	return err
}

// writeFile must be called with c.mu held.
func (c *Committer) writeFile(rel string, data []byte) error {
	fs := c.wt.Filesystem
	if err := fs.MkdirAll(path.Dir(rel), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrCommit, path.Dir(rel), err)
	}
	if err := util.WriteFile(fs, rel, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrCommit, rel, err)
	}
	return nil
}

// commit must be called with c.mu held.
func (c *Committer) commit(msg string, paths ...string) (string, error) {
	for _, p := range paths {
		if _, err := c.wt.Add(p); err != nil {
			return "", fmt.Errorf("%w: add %s: %w", ErrCommit, p, err)
		}
	}
	hash, err := c.wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  c.authorName,
			Email: c.authorEmail,
			When:  c.now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCommit, err)
	}
	return hash.String(), nil
}

func (c *Committer) record(operation string, err error, start time.Time) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.RecordAdapterCall(adapterName, operation, outcome, float64(time.Since(start).Milliseconds()))
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
