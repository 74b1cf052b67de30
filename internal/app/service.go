// Package service mirrors a running match into GitHub and git and exposes
// the match to the status API.
package service

import (
	"context"
	"sync"

	ghadapter "github.com/okian/hyperreal/internal/adapters/github"
	"github.com/okian/hyperreal/internal/domain/coach"
	"github.com/okian/hyperreal/internal/domain/dedupe"
	"github.com/okian/hyperreal/internal/domain/engine"
	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/internal/domain/stats"
	"github.com/okian/hyperreal/pkg/logger"
	"github.com/okian/hyperreal/pkg/metrics"
)

// IssueTracker files match artifacts on GitHub; *ghadapter.Client
// implements it.
type IssueTracker interface {
	CreateGoalIssue(ctx context.Context, ev model.Event) (int, error)
	CreateFoulIssue(ctx context.Context, ev model.Event, card model.Card) (int, error)
	CreateDiscussion(ctx context.Context, title, body string) (ghadapter.Discussion, error)
}

// Proposer turns a tactical decision into a pull request;
// *ghadapter.TacticalPR implements it.
type Proposer interface {
	Propose(ctx context.Context, d coach.TacticalDecision, matchTime, teamID, teamName string) (int, error)
}

// EventCommitter records events as commits; *git.Committer implements it.
type EventCommitter interface {
	CommitEvent(ctx context.Context, ev model.Event) (string, error)
	Push(ctx context.Context, branch string, setUpstream bool) error
}

var _ engine.Observer = (*Service)(nil)

// Service observes the engine. Every adapter failure is logged and
// swallowed so the match loop never stops because of GitHub or git.
type Service struct {
	mu sync.RWMutex

	// Adapters; nil disables the matching side effect.
	issues   IssueTracker
	proposer Proposer
	commits  EventCommitter
	deduper  dedupe.Deduper

	// Configuration
	teamA         string
	teamB         string
	coachWindow   int
	coachInterval int
	lateMinute    int
	fps           int
	baseBranch    string
	historyLimit  int

	coaches []*coach.Coach

	// State
	state  model.MatchState
	events []model.Event

	logger logger.Logger
}

// New constructs a Service. Without adapter options it only tracks the
// match, which is the behaviour when no GitHub token is configured.
func New(opts ...Option) *Service {
	s := &Service{
		teamA:         "Team Alpha",
		teamB:         "Team Beta",
		coachWindow:   30,
		coachInterval: 60,
		lateMinute:    40,
		fps:           1,
		baseBranch:    "main",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper()
	}
	coachOpts := []coach.Option{coach.WithLateMinute(s.lateMinute), coach.WithFPS(s.fps)}
	s.coaches = []*coach.Coach{
		coach.New(model.TeamA, s.teamA, coachOpts...),
		coach.New(model.TeamB, s.teamB, coachOpts...),
	}
	return s
}

// GitHubEnabled reports whether GitHub artifacts are being created.
func (s *Service) GitHubEnabled() bool { return s.issues != nil }

// GitCommitsEnabled reports whether events are committed.
func (s *Service) GitCommitsEnabled() bool { return s.commits != nil }

func (s *Service) teamName(team string) string {
	if team == model.TeamB {
		return s.teamB
	}
	return s.teamA
}

// Kickoff implements engine.Observer.
func (s *Service) Kickoff(ctx context.Context, state model.MatchState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.logger.Info(ctx, "match service attached",
		logger.String("matchID", state.MatchID),
		logger.Bool("github", s.GitHubEnabled()),
		logger.Bool("gitCommits", s.GitCommitsEnabled()),
	)
}

// Event implements engine.Observer: commit, then file an issue for goals
// and fouls.
func (s *Service) Event(ctx context.Context, ev model.Event, state model.MatchState) {
	if s.commits != nil {
		hash, err := s.commits.CommitEvent(ctx, ev)
		if err != nil {
			s.logger.Warn(ctx, "commit event",
				logger.Int("frame", ev.Frame),
				logger.Error(err),
			)
		} else if ev.Git != nil {
			git := *ev.Git
			git.Commit = hash
			ev.Git = &git
		}
	}

	s.mu.Lock()
	s.state = state
	s.appendLocked(ev)
	s.mu.Unlock()

	if s.issues == nil {
		return
	}
	var (
		n   int
		err error
	)
	switch ev.Action.Type {
	case model.ActionGoal:
		n, err = s.issues.CreateGoalIssue(ctx, ev)
	case model.ActionFoul:
		n, err = s.issues.CreateFoulIssue(ctx, ev, ev.Action.Card())
	default:
		return
	}
	if err != nil {
		s.logger.Warn(ctx, "create issue",
			logger.String("type", string(ev.Action.Type)),
			logger.Int("frame", ev.Frame),
			logger.Error(err),
		)
		return
	}
	s.logger.Debug(ctx, "issue created",
		logger.String("type", string(ev.Action.Type)),
		logger.Int("number", n),
	)
}

// Frame implements engine.Observer and runs the periodic coach review.
func (s *Service) Frame(ctx context.Context, state model.MatchState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	if s.coachInterval > 0 && state.Frame > 0 && state.Frame%s.coachInterval == 0 {
		s.review(ctx, state)
	}
}

// Halftime implements engine.Observer: both coaches review and each team
// gets a halftime discussion.
func (s *Service) Halftime(ctx context.Context, state model.MatchState, events []model.Event) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.review(ctx, state)
	if s.issues == nil {
		return
	}
	for _, team := range []string{model.TeamA, model.TeamB} {
		title, body, err := ghadapter.HalftimeDiscussion(team, s.teamName(team), state, events)
		if err == nil {
			_, err = s.issues.CreateDiscussion(ctx, title, body)
		}
		if err != nil {
			s.logger.Warn(ctx, "halftime discussion", logger.String("team", team), logger.Error(err))
		}
	}
}

// Fulltime implements engine.Observer: post-match discussions, then the
// event commits are pushed to the base branch.
func (s *Service) Fulltime(ctx context.Context, state model.MatchState, events []model.Event) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	if s.issues != nil {
		for _, team := range []string{model.TeamA, model.TeamB} {
			title, body, err := ghadapter.PostMatchDiscussion(team, s.teamName(team), state, events)
			if err == nil {
				_, err = s.issues.CreateDiscussion(ctx, title, body)
			}
			if err != nil {
				s.logger.Warn(ctx, "post-match discussion", logger.String("team", team), logger.Error(err))
			}
		}
	}
	if s.commits != nil {
		if err := s.commits.Push(ctx, s.baseBranch, false); err != nil {
			s.logger.Warn(ctx, "push match commits",
				logger.String("branch", s.baseBranch),
				logger.Error(err),
			)
		}
	}
}

// review asks both coaches for a decision. An actionable decision is
// proposed at most once per team and decision type.
func (s *Service) review(ctx context.Context, state model.MatchState) {
	recent := s.RecentEvents(s.coachWindow)
	for _, c := range s.coaches {
		d := c.Decide(state, recent)
		metrics.RecordTacticalDecision(c.TeamID(), string(d.Type))
		if !d.Actionable() {
			continue
		}
		s.logger.Info(ctx, "tactical decision",
			logger.String("team", c.TeamID()),
			logger.String("type", string(d.Type)),
			logger.String("priority", string(d.Priority)),
			logger.String("matchTime", state.MatchTime),
		)
		if s.proposer == nil {
			continue
		}
		key := dedupe.Key(c.TeamID(), string(d.Type))
		if s.deduper.SeenAndRecord(ctx, key) {
			continue
		}
		n, err := s.proposer.Propose(ctx, d, state.MatchTime, c.TeamID(), c.TeamName())
		if err != nil && n > 0 {
			s.logger.Warn(ctx, "tactical pull request opened with errors",
				logger.String("team", c.TeamID()),
				logger.Int("number", n),
				logger.Error(err),
			)
		} else if err != nil {
			s.deduper.Unrecord(ctx, key)
			s.logger.Warn(ctx, "propose tactical change",
				logger.String("team", c.TeamID()),
				logger.Error(err),
			)
			continue
		}

		ev := c.Event(d, state)
		ev.Decision.GitHub = &model.GitHubRefs{PRNumber: &n}
		s.mu.Lock()
		s.appendLocked(ev)
		s.mu.Unlock()
	}
}

func (s *Service) appendLocked(ev model.Event) {
	s.events = append(s.events, ev)
	if s.historyLimit > 0 && len(s.events) > s.historyLimit {
		s.events = append(s.events[:0:0], s.events[len(s.events)-s.historyLimit:]...)
	}
}

// State returns the last observed match state.
func (s *Service) State() model.MatchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// RecentEvents returns up to n of the latest observed events, oldest first.
func (s *Service) RecentEvents(n int) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(s.events) {
		n = len(s.events)
	}
	return append([]model.Event(nil), s.events[len(s.events)-n:]...)
}

// GetStats returns match statistics for monitoring.
func (s *Service) GetStats() stats.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return stats.Report{
		MatchID:     s.state.MatchID,
		Frame:       s.state.Frame,
		MatchTime:   s.state.MatchTime,
		Phase:       s.state.Phase,
		Score:       s.state.Score,
		Events:      len(s.events),
		GitHub:      s.issues != nil,
		GitCommits:  s.commits != nil,
		TacticalPRs: s.deduper.Size(),
		Summary:     stats.Summarize(s.events),
	}
}
