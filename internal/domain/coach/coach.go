// Package coach implements the per-team tactical heuristic.
package coach

import (
	"fmt"
	"strings"

	"github.com/okian/hyperreal/internal/domain/matchtime"
	"github.com/okian/hyperreal/internal/domain/model"
)

// DecisionType is the kind of tactical change a coach proposes.
type DecisionType string

const (
	FormationChange   DecisionType = "formation_change"
	PlayerInstruction DecisionType = "player_instruction"
	Substitution      DecisionType = "substitution"
	NoAction          DecisionType = "no_action"
)

// Title renders the type for headings, e.g. "FORMATION CHANGE".
func (t DecisionType) Title() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// Thresholds that trigger a change.
const (
	concededLimit     = 2
	foulLimit         = 3
	DefaultLateMinute = 40
)

// TacticalDecision is a coach's verdict for the current window.
type TacticalDecision struct {
	Type          DecisionType    `json:"decisionType"`
	Reasoning     string          `json:"reasoning"`
	Details       string          `json:"details"`
	Priority      model.Priority  `json:"priority"`
	TargetPlayers []model.AgentID `json:"targetPlayers"`
}

// Actionable reports whether the decision proposes a change.
func (d TacticalDecision) Actionable() bool { return d.Type != NoAction }

// Option applies a configuration option to the Coach.
type Option func(*Coach)

// WithLateMinute sets the minute after which a leading team protects its lead.
func WithLateMinute(minute int) Option {
	return func(c *Coach) {
		if minute >= 0 {
			c.lateMinute = minute
		}
	}
}

// WithFPS sets the frame rate used to turn the frame counter into minutes.
func WithFPS(fps int) Option {
	return func(c *Coach) {
		if fps > 0 {
			c.fps = fps
		}
	}
}

// Coach watches one team.
type Coach struct {
	teamID     string
	teamName   string
	lateMinute int
	fps        int
}

// New returns a coach for teamID ("team-a" or "team-b").
func New(teamID, teamName string, opts ...Option) *Coach {
	c := &Coach{teamID: teamID, teamName: teamName, lateMinute: DefaultLateMinute, fps: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TeamID returns the team the coach watches.
func (c *Coach) TeamID() string { return c.teamID }

// TeamName returns the team's display name.
func (c *Coach) TeamName() string { return c.teamName }

// AgentID returns the coach's own agent id.
func (c *Coach) AgentID() model.AgentID { return model.AgentID("coach-" + c.teamID) }

// Decide applies the rules in order and returns the first that matches.
// recent is the window of events the coach has observed.
func (c *Coach) Decide(state model.MatchState, recent []model.Event) TacticalDecision {
	opponent := model.Opponent(c.teamID)

	conceded, fouls := 0, 0
	for _, ev := range recent {
		switch {
		case ev.Action.Type == model.ActionGoal && ev.Team() == opponent:
			conceded++
		case ev.Action.Type == model.ActionFoul && ev.Team() == c.teamID:
			fouls++
		}
	}

	if conceded >= concededLimit {
		return TacticalDecision{
			Type:          FormationChange,
			Reasoning:     fmt.Sprintf("We've conceded %d goals. Need defensive reinforcement.", conceded),
			Details:       "Switch to more defensive formation. Push midfielders back to provide cover.",
			Priority:      model.PriorityHigh,
			TargetPlayers: []model.AgentID{c.anchor()},
		}
	}

	if fouls >= foulLimit {
		return TacticalDecision{
			Type:          PlayerInstruction,
			Reasoning:     fmt.Sprintf("We've committed %d fouls. Risk of cards increasing.", fouls),
			Details:       "Instruct players to be more careful in challenges. Focus on positioning over tackling.",
			Priority:      model.PriorityNormal,
			TargetPlayers: []model.AgentID{c.anchor()},
		}
	}

	diff := state.Score.Diff(c.teamID)
	if diff > 0 && matchtime.Minutes(state.Frame, c.fps) > c.lateMinute {
		return TacticalDecision{
			Type:      FormationChange,
			Reasoning: fmt.Sprintf("We're ahead %d goal(s) and match is in late stage. Protect the lead.", diff),
			Details:   "Pull back one midfielder to defensive position. Focus on maintaining possession.",
			Priority:  model.PriorityNormal,
		}
	}

	return TacticalDecision{
		Type:      NoAction,
		Reasoning: "Match situation is under control. Continue current tactics.",
		Details:   "No tactical changes needed at this time.",
		Priority:  model.PriorityLow,
	}
}

// anchor is the player the simple roster treats as the defensive midfielder.
func (c *Coach) anchor() model.AgentID {
	return model.AgentID("player-01-" + c.teamID)
}
