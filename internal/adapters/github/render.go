package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/okian/hyperreal/internal/domain/coach"
	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/internal/domain/stats"
)

var funcs = template.FuncMap{
	"upper": func(s any) string { return strings.ToUpper(fmt.Sprint(s)) },
	"pretty": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	},
	"pct": func(f float64) string { return fmt.Sprintf("%.1f", f) },
}

var templates = template.Must(template.New("github").Funcs(funcs).Parse(`
{{define "goal"}}## ⚽ Goal Scored!

**Scorer:** ` + "`{{.Event.Action.Agent}}`" + `
**Team:** {{.Team}}
**Match Time:** {{.Event.MatchTime}}
**Timestamp:** {{.Event.Timestamp}}
**Frame:** {{.Event.Frame}}

### Position on Field
- **X:** {{.Event.Space.Physical.X}}m
- **Y:** {{.Event.Space.Physical.Y}}m
- **Z:** {{.Event.Space.Physical.Z}}m

### Decision Metadata
- **Type:** {{or .DecisionType "autonomous"}}
- **From:** {{.DecisionFrom}}
- **Reasoning:** {{or .Reasoning "No reasoning provided"}}

### Hyper Real Record
` + "```json" + `
{{pretty .Event}}
` + "```" + `

---
*This issue was automatically created by the match engine.*
*Commit: {{or .Commit "pending"}}*
{{end}}

{{define "foul"}}## {{.Emoji}} Foul - {{.CardTitle}}

**Player:** ` + "`{{.Event.Action.Agent}}`" + `
**Team:** {{.Team}}
**Match Time:** {{.Event.MatchTime}}
**Card:** {{.CardText}}

### Incident Details
- **Type:** {{.Event.Action.Type}}
- **Target:** {{or .Event.Action.Target "N/A"}}
- **Position:** ({{.Event.Space.Physical.X}}, {{.Event.Space.Physical.Y}})

### Referee Decision
- **Ruling:** {{or .DecisionType "ruling"}}
- **Reasoning:** {{or .Reasoning "Standard foul"}}

### Hyper Real Record
` + "```json" + `
{{pretty .Event}}
` + "```" + `

---
*This issue was automatically created by the referee agent.*
{{end}}

{{define "keyEvents"}}{{if not .Key}}- No major events{{else}}{{range $i, $e := .Key}}{{if $i}}
{{end}}- **[{{$e.MatchTime}}]** {{if eq $e.Action.Type "goal"}}⚽{{else}}⚠️{{end}} {{upper $e.Action.Type}}: {{$e.Action.Agent}} {{if eq ($e.Team) $.TeamID}}(us){{else}}(opponent){{end}}{{end}}{{end}}{{end}}

{{define "halftime"}}## ⏸️ Halftime Review - {{.TeamName}}

### Current Score
**{{.State.Score.TeamA}}** - **{{.State.Score.TeamB}}**
{{.Standing}}

### First Half Performance

**Goals Scored:** {{.Us.Goals}}
**Goals Conceded:** {{.Them.Goals}}
**Fouls Committed:** {{.Us.Fouls}}

### Key Events

{{template "keyEvents" .}}

### Discussion Points

**What's working well?**
-

**What needs improvement?**
-

**Tactical adjustments for second half?**
-

### Player Input

Players, share your thoughts:
- What are you seeing on the field?
- Any suggestions for tactical changes?
- Who needs support?

---

**Coach's Instructions:**
- TBD (will be updated based on discussion)

**Match Time:** {{.State.MatchTime}}
**Timestamp:** {{.State.Timestamp}}
{{end}}

{{define "postmatch"}}## Post-Match Analysis - {{.TeamName}}

### Final Result
**{{.State.Score.TeamA}}** - **{{.State.Score.TeamB}}**
{{.Result}}

### Match Statistics

| Stat | Us | Opponent |
|------|-------|----------|
| Goals | {{.Us.Goals}} | {{.Them.Goals}} |
| Shots | {{.Us.Shots}} | {{.Them.Shots}} |
| Passes | {{.Us.Passes}} ({{pct .Us.PassAccuracy}}% acc.) | {{.Them.Passes}} ({{pct .Them.PassAccuracy}}% acc.) |
| Tackles | {{.Us.Tackles}} ({{pct .Us.TackleSuccess}}% won) | {{.Them.Tackles}} ({{pct .Them.TackleSuccess}}% won) |
| Fouls | {{.Us.Fouls}} | {{.Them.Fouls}} |
| Cards | {{.Us.YellowCards}}🟨 {{.Us.RedCards}}🟥 | {{.Them.YellowCards}}🟨 {{.Them.RedCards}}🟥 |

### Performance Review

**What went well:**
-

**Areas for improvement:**
-

**Key moments:**
{{template "keyEvents" .}}

### Player Ratings

*(To be filled by coaching staff)*

### Next Steps

-

---

**Full match data available in repository commits and issues.**
**Timestamp:** {{.State.Timestamp}}
{{end}}

{{define "tactical"}}## 🎯 Tactical Change Proposal

### Type
{{.Decision.Type.Title}}

### Match Context
- **Match Time:** {{.MatchTime}}
- **Team:** {{.TeamName}}
- **Priority:** {{.Decision.Priority}}
- **Timestamp:** {{.Timestamp}}

### Reasoning
{{.Decision.Reasoning}}

### Proposed Changes
{{.Decision.Details}}
{{if .Decision.TargetPlayers}}
### Target Players
{{range .Decision.TargetPlayers}}- ` + "`{{.}}`" + `
{{end}}{{end}}
### Expected Impact
This tactical adjustment is expected to:
- Address current match situation
- {{.Impact}}
- Improve team performance

### Approval Required
- [ ] @assistant-coach (optional review)
- [x] Auto-approved by match engine

---

*This PR was automatically created by the coach agent during the match.*
*Decision metadata recorded in Hyper Real format.*
{{end}}
`))

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return buf.String(), nil
}

type issueView struct {
	Event        model.Event
	Team         string
	DecisionType string
	DecisionFrom string
	Reasoning    string
	Commit       string
	Emoji        string
	CardTitle    string
	CardText     string
}

func newIssueView(ev model.Event, teamName string) issueView {
	v := issueView{Event: ev, Team: teamName}
	if d := ev.Decision; d != nil {
		v.DecisionType = string(d.Type)
		v.DecisionFrom = d.From.String()
		v.Reasoning = d.Reasoning
	}
	if ev.Git != nil {
		v.Commit = ev.Git.Commit
	}
	return v
}

func renderGoalIssue(ev model.Event, teamName string) (string, error) {
	return execute("goal", newIssueView(ev, teamName))
}

func renderFoulIssue(ev model.Event, teamName string, card model.Card) (string, error) {
	v := newIssueView(ev, teamName)
	v.Emoji = CardEmoji(card)
	if card == model.CardNone || card == "" {
		v.CardTitle = "No Card"
		v.CardText = "No card issued"
	} else {
		v.CardTitle = strings.ToUpper(string(card)) + " Card"
		v.CardText = strings.ToUpper(string(card))
	}
	return execute("foul", v)
}

type discussionView struct {
	TeamID   string
	TeamName string
	State    model.MatchState
	Us       stats.Counts
	Them     stats.Counts
	Key      []model.Event
	Standing string
	Result   string
}

func newDiscussionView(teamID, teamName string, state model.MatchState, events []model.Event) discussionView {
	return discussionView{
		TeamID:   teamID,
		TeamName: teamName,
		State:    state,
		Us:       stats.Compute(events, teamID),
		Them:     stats.Compute(events, model.Opponent(teamID)),
		Key:      stats.KeyEvents(events),
	}
}

// HalftimeDiscussion renders the title and body of a team's halftime review.
func HalftimeDiscussion(teamID, teamName string, state model.MatchState, events []model.Event) (string, string, error) {
	v := newDiscussionView(teamID, teamName, state, events)
	switch diff := state.Score.Diff(teamID); {
	case diff > 0:
		v.Standing = fmt.Sprintf("✅ We're ahead by %d goal(s)", diff)
	case diff < 0:
		v.Standing = fmt.Sprintf("⚠️ We're behind by %d goal(s)", -diff)
	default:
		v.Standing = "🟰 Match is tied"
	}
	body, err := execute("halftime", v)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("🏟️ Halftime Discussion - %s", teamName), body, nil
}

// postMatchKeyWindow is how many trailing events the key moments cover.
const postMatchKeyWindow = 10

// PostMatchDiscussion renders the title and body of a team's post-match review.
func PostMatchDiscussion(teamID, teamName string, state model.MatchState, events []model.Event) (string, string, error) {
	v := newDiscussionView(teamID, teamName, state, events)
	tail := events
	if len(tail) > postMatchKeyWindow {
		tail = tail[len(tail)-postMatchKeyWindow:]
	}
	v.Key = stats.KeyEvents(tail)
	switch diff := state.Score.Diff(teamID); {
	case diff > 0:
		v.Result = "✅ Victory!"
	case diff < 0:
		v.Result = "❌ Defeat"
	default:
		v.Result = "🟰 Draw"
	}
	body, err := execute("postmatch", v)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("🏁 Post-Match Review - %s %s", teamName, v.Result), body, nil
}

type tacticalView struct {
	Decision  coach.TacticalDecision
	MatchTime string
	TeamName  string
	Timestamp string
	Impact    string
}

// TacticalPRBody renders the pull request description for a decision.
func TacticalPRBody(d coach.TacticalDecision, matchTime, teamName, timestamp string) (string, error) {
	impact := "Moderate tactical adjustment"
	switch d.Priority {
	case model.PriorityCritical:
		impact = "**URGENT**: Requires immediate action"
	case model.PriorityHigh:
		impact = "High priority change"
	}
	return execute("tactical", tacticalView{
		Decision:  d,
		MatchTime: matchTime,
		TeamName:  teamName,
		Timestamp: timestamp,
		Impact:    impact,
	})
}
