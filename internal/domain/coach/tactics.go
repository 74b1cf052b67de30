package coach

import (
	"fmt"
	"time"

	"github.com/okian/hyperreal/internal/domain/matchtime"
	"github.com/okian/hyperreal/internal/domain/model"
)

// Tactics is the document committed to tactics/<team>-tactics.json when a
// decision is applied.
type Tactics struct {
	Timestamp     string          `json:"timestamp"`
	MatchTime     string          `json:"matchTime"`
	DecisionType  DecisionType    `json:"decisionType"`
	Reasoning     string          `json:"reasoning"`
	Details       string          `json:"details"`
	Priority      model.Priority  `json:"priority"`
	TargetPlayers []model.AgentID `json:"targetPlayers"`
	AppliedAt     string          `json:"appliedAt"`
}

// NewTactics stamps d with the match clock and the time it was applied.
func NewTactics(d TacticalDecision, matchTime string, at time.Time) Tactics {
	ts := matchtime.FormatTimestamp(at)
	targets := d.TargetPlayers
	if targets == nil {
		targets = []model.AgentID{}
	}
	return Tactics{
		Timestamp:     ts,
		MatchTime:     matchTime,
		DecisionType:  d.Type,
		Reasoning:     d.Reasoning,
		Details:       d.Details,
		Priority:      d.Priority,
		TargetPlayers: targets,
		AppliedAt:     ts,
	}
}

// TacticsPath is the repository path of a team's tactics file.
func TacticsPath(teamID string) string {
	return fmt.Sprintf("tactics/%s-tactics.json", teamID)
}

// Event records the decision as a tactical_instruction from the coach to
// its targets, so it can be mirrored like any other match event.
func (c *Coach) Event(d TacticalDecision, state model.MatchState) model.Event {
	to := d.TargetPlayers
	return model.Event{
		Timestamp: state.Timestamp,
		Frame:     state.Frame,
		MatchTime: state.MatchTime,
		Space: model.Space{
			Logical: TacticsPath(c.teamID),
		},
		Action: model.Action{
			Type:   model.ActionTacticalInstruction,
			Agent:  c.AgentID(),
			Result: model.ResultPending,
			Metadata: map[string]any{
				"decisionType": string(d.Type),
				"details":      d.Details,
			},
		},
		Decision: &model.DecisionMetadata{
			Type:      model.DecisionCommand,
			From:      c.AgentID(),
			To:        to,
			Channel:   model.ChannelPRReview,
			Reasoning: d.Reasoning,
			Priority:  d.Priority,
		},
		Git: model.NewGitMetadata(fmt.Sprintf("🎯 Tactical Change: %s at %s", d.Type, state.MatchTime)),
	}
}
