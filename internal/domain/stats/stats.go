// Package stats aggregates match events into per-team statistics.
package stats

import (
	"github.com/okian/hyperreal/internal/domain/model"
)

// Counts are the tallies for one team, or for both when computed with an
// empty team id. Shots include those converted into goals and tackles
// include the failed ones ruled as fouls.
type Counts struct {
	Events          int                      `json:"events"`
	ByType          map[model.ActionType]int `json:"byType"`
	Passes          int                      `json:"passes"`
	PassesCompleted int                      `json:"passesCompleted"`
	Shots           int                      `json:"shots"`
	Goals           int                      `json:"goals"`
	Tackles         int                      `json:"tackles"`
	TacklesWon      int                      `json:"tacklesWon"`
	Fouls           int                      `json:"fouls"`
	YellowCards     int                      `json:"yellowCards"`
	RedCards        int                      `json:"redCards"`
}

// PassAccuracy is completed passes as a percentage.
func (c Counts) PassAccuracy() float64 { return percent(c.PassesCompleted, c.Passes) }

// TackleSuccess is won tackles as a percentage.
func (c Counts) TackleSuccess() float64 { return percent(c.TacklesWon, c.Tackles) }

// ShotConversion is goals per shot as a percentage.
func (c Counts) ShotConversion() float64 { return percent(c.Goals, c.Shots) }

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) * 100 / float64(d)
}

// Compute tallies events whose acting agent belongs to teamID. An empty
// teamID counts every event.
func Compute(events []model.Event, teamID string) Counts {
	c := Counts{ByType: make(map[model.ActionType]int)}
	for _, ev := range events {
		if teamID != "" && ev.Team() != teamID {
			continue
		}
		c.Events++
		c.ByType[ev.Action.Type]++
		ok := ev.Action.Result == model.ResultSuccess

		switch ev.Action.Type {
		case model.ActionPass:
			c.Passes++
			if ok {
				c.PassesCompleted++
			}
		case model.ActionShot:
			c.Shots++
		case model.ActionGoal:
			c.Shots++
			c.Goals++
		case model.ActionTackle:
			c.Tackles++
			if ok {
				c.TacklesWon++
			}
		case model.ActionFoul:
			c.Tackles++
			c.Fouls++
			switch ev.Action.Card() {
			case model.CardYellow:
				c.YellowCards++
			case model.CardRed:
				c.RedCards++
			}
		}
	}
	return c
}

// Summary holds overall and per-team counts.
type Summary struct {
	Overall Counts `json:"overall"`
	TeamA   Counts `json:"teamA"`
	TeamB   Counts `json:"teamB"`
}

// Summarize computes overall and per-team counts in one call.
func Summarize(events []model.Event) Summary {
	return Summary{
		Overall: Compute(events, ""),
		TeamA:   Compute(events, model.TeamA),
		TeamB:   Compute(events, model.TeamB),
	}
}

// For returns the counts of teamID.
func (s Summary) For(teamID string) Counts {
	if teamID == model.TeamB {
		return s.TeamB
	}
	return s.TeamA
}

// Report is a monitoring snapshot of a running match.
type Report struct {
	MatchID     string      `json:"matchId"`
	Frame       int         `json:"frame"`
	MatchTime   string      `json:"matchTime"`
	Phase       model.Phase `json:"phase"`
	Score       model.Score `json:"score"`
	Events      int         `json:"events"`
	GitHub      bool        `json:"github"`
	GitCommits  bool        `json:"gitCommits"`
	TacticalPRs int         `json:"tacticalPRs"`
	Summary     Summary     `json:"summary"`
}

// KeyEvents returns the goals, fouls and cards among events, oldest first.
func KeyEvents(events []model.Event) []model.Event {
	var out []model.Event
	for _, ev := range events {
		if ev.IsKey() {
			out = append(out, ev)
		}
	}
	return out
}
