package service

import (
	"github.com/okian/hyperreal/internal/domain/dedupe"
	"github.com/okian/hyperreal/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTeams sets the display names used in discussions and PRs.
func WithTeams(teamA, teamB string) Option {
	return func(s *Service) {
		if teamA != "" {
			s.teamA = teamA
		}
		if teamB != "" {
			s.teamB = teamB
		}
	}
}

// WithIssueTracker enables goal and foul issues and discussions.
func WithIssueTracker(t IssueTracker) Option {
	return func(s *Service) {
		s.issues = t
	}
}

// WithProposer enables tactical pull requests.
func WithProposer(p Proposer) Option {
	return func(s *Service) {
		s.proposer = p
	}
}

// WithEventCommitter enables one commit per event and the fulltime push.
func WithEventCommitter(c EventCommitter) Option {
	return func(s *Service) {
		s.commits = c
	}
}

// WithDeduper replaces the tactical proposal deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithCoachWindow sets how many recent events a coach considers.
func WithCoachWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.coachWindow = n
		}
	}
}

// WithCoachInterval sets the frame cadence of coach reviews; zero limits
// reviews to halftime.
func WithCoachInterval(frames int) Option {
	return func(s *Service) {
		if frames >= 0 {
			s.coachInterval = frames
		}
	}
}

// WithFPS sets the match frame rate the coaches count minutes with.
func WithFPS(fps int) Option {
	return func(s *Service) {
		if fps > 0 {
			s.fps = fps
		}
	}
}

// WithLateMinute sets the minute after which a leading coach protects the lead.
func WithLateMinute(minute int) Option {
	return func(s *Service) {
		if minute >= 0 {
			s.lateMinute = minute
		}
	}
}

// WithBaseBranch sets the branch event commits are pushed to.
func WithBaseBranch(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.baseBranch = name
		}
	}
}

// WithHistoryLimit bounds the events kept for the status API. Zero keeps all.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.historyLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
