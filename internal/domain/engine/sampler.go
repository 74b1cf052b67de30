package engine

import (
	"fmt"
	"strings"

	"github.com/okian/hyperreal/internal/domain/model"
)

// Cutoffs of the per-frame categorical roll and the success odds per action.
const (
	passCutoff   = 0.4
	shotCutoff   = 0.6
	tackleCutoff = 0.8

	passSuccess   = 0.8
	shotSuccess   = 0.3
	tackleSuccess = 0.6

	foulChance   = 0.5
	yellowChance = 0.25
)

// MatchBranch is the branch every generated event is attributed to.
const MatchBranch = "match/current"

// RefereeID is the agent issuing foul rulings.
const RefereeID model.AgentID = "referee-main"

var actionEmoji = map[model.ActionType]string{
	model.ActionPass:    "🦶",
	model.ActionShot:    "🎯",
	model.ActionGoal:    "⚽",
	model.ActionTackle:  "🛡️",
	model.ActionDribble: "⚡",
}

// Emoji returns the commit emoji for an action type.
func Emoji(t model.ActionType) string {
	if e, ok := actionEmoji[t]; ok {
		return e
	}
	return "⚽"
}

// CommitMessage renders "<emoji> <TYPE>: <agent> - success|failed".
func CommitMessage(a model.Action) string {
	outcome := "failed"
	if a.Result == model.ResultSuccess {
		outcome = "success"
	}
	return fmt.Sprintf("%s %s: %s - %s", Emoji(a.Type), strings.ToUpper(string(a.Type)), a.Agent, outcome)
}

// LogicalPath is the repository location an action is filed under.
func LogicalPath(t model.ActionType, frame int) string {
	return fmt.Sprintf("matches/current/actions/%s-%d.json", t, frame)
}

// PlayerID builds the roster id for a player number and team.
func PlayerID(number int, team string) model.AgentID {
	return model.AgentID(fmt.Sprintf("player-%02d-%s", number, team))
}

// sample rolls one frame. It returns nil for a quiet frame. Must be called
// with e.mu held.
func (e *Engine) sample() *model.Action {
	r := e.rng.Float64()
	team := model.TeamA
	switch {
	case r < passCutoff:
		if e.rng.Float64() >= 0.5 {
			team = model.TeamB
		}
		return &model.Action{
			Type:     model.ActionPass,
			Agent:    PlayerID(1, team),
			Target:   PlayerID(2, team).String(),
			Result:   e.outcome(passSuccess),
			Metadata: map[string]any{},
		}
	case r < shotCutoff:
		if e.rng.Float64() >= 0.5 {
			team = model.TeamB
		}
		a := &model.Action{
			Type:     model.ActionShot,
			Agent:    PlayerID(2, team),
			Result:   e.outcome(shotSuccess),
			Metadata: map[string]any{},
		}
		if a.Result == model.ResultSuccess {
			a.Type = model.ActionGoal
		}
		return a
	case r < tackleCutoff:
		if e.rng.Float64() >= 0.5 {
			team = model.TeamB
		}
		a := &model.Action{
			Type:     model.ActionTackle,
			Agent:    PlayerID(1, team),
			Target:   PlayerID(1, model.Opponent(team)).String(),
			Result:   e.outcome(tackleSuccess),
			Metadata: map[string]any{},
		}
		if a.Result == model.ResultFailure && e.rng.Float64() < foulChance {
			a.Type = model.ActionFoul
			a.Metadata[model.MetadataCard] = e.card(a.Agent)
		}
		return a
	}
	return nil
}

func (e *Engine) outcome(p float64) model.ActionResult {
	if e.rng.Float64() < p {
		return model.ResultSuccess
	}
	return model.ResultFailure
}

// card decides the referee's card for a foul by agent. A second yellow
// becomes a red.
func (e *Engine) card(agent model.AgentID) model.Card {
	if e.rng.Float64() >= yellowChance {
		return model.CardNone
	}
	e.yellows[agent]++
	if e.yellows[agent] >= 2 {
		return model.CardRed
	}
	return model.CardYellow
}

// decisionFor attributes an action: players act autonomously, fouls are
// referee rulings broadcast to the offender.
func decisionFor(a model.Action) *model.DecisionMetadata {
	if a.Type == model.ActionFoul {
		return &model.DecisionMetadata{
			Type:      model.DecisionRuling,
			From:      RefereeID,
			To:        []model.AgentID{a.Agent},
			Channel:   model.ChannelBroadcast,
			Reasoning: fmt.Sprintf("Foul by %s on %s, card: %s", a.Agent, a.Target, a.Card()),
			Priority:  model.PriorityNormal,
		}
	}
	return &model.DecisionMetadata{
		Type:      model.DecisionAutonomous,
		From:      a.Agent,
		Channel:   model.ChannelInternal,
		Reasoning: fmt.Sprintf("Autonomous decision to %s", a.Type),
	}
}
