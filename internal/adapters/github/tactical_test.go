package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	ghadapter "github.com/okian/hyperreal/internal/adapters/github"
	"github.com/okian/hyperreal/internal/domain/coach"
	"github.com/okian/hyperreal/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeWorkspace struct {
	calls       []string
	files       map[string][]byte
	pushErr     error
	checkoutErr error
}

func (w *fakeWorkspace) CreateBranch(_ context.Context, name string) error {
	w.calls = append(w.calls, "branch "+name)
	return nil
}

func (w *fakeWorkspace) Checkout(_ context.Context, name string) error {
	w.calls = append(w.calls, "checkout "+name)
	return w.checkoutErr
}

func (w *fakeWorkspace) WriteFile(_ context.Context, rel string, data []byte) error {
	if w.files == nil {
		w.files = map[string][]byte{}
	}
	w.files[rel] = data
	w.calls = append(w.calls, "write "+rel)
	return nil
}

func (w *fakeWorkspace) CommitPaths(_ context.Context, msg string, paths ...string) (string, error) {
	w.calls = append(w.calls, fmt.Sprintf("commit %v", paths))
	return "deadbeef", nil
}

func (w *fakeWorkspace) Push(_ context.Context, branch string, upstream bool) error {
	w.calls = append(w.calls, fmt.Sprintf("push %s %v", branch, upstream))
	return w.pushErr
}

type fakePRs struct {
	head, title, body, base string
}

func (p *fakePRs) CreatePullRequest(_ context.Context, head, title, body, base string) (int, error) {
	p.head, p.title, p.body, p.base = head, title, body, base
	return 77, nil
}

func TestTacticalPR(t *testing.T) {
	Convey("Given a tactical decision", t, func() {
		ctx := context.Background()
		at := time.UnixMilli(1760875200123).UTC()
		d := coach.TacticalDecision{
			Type:          coach.FormationChange,
			Reasoning:     "We've conceded 2 goals. Need defensive reinforcement.",
			Details:       "Switch to more defensive formation.",
			Priority:      model.PriorityHigh,
			TargetPlayers: []model.AgentID{"player-01-team-a"},
		}
		ws := &fakeWorkspace{}
		prs := &fakePRs{}
		flow := ghadapter.NewTacticalPR(ws, prs,
			ghadapter.WithBaseBranch("main"),
			ghadapter.WithTacticalClock(func() time.Time { return at }),
		)

		Convey("When it is proposed", func() {
			n, err := flow.Propose(ctx, d, "12:30", model.TeamA, "Reds")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 77)

			Convey("Then the branch is prepared, pushed and left", func() {
				branch := "tactical/formation_change-1760875200123"
				So(ws.calls, ShouldResemble, []string{
					"branch " + branch,
					"write tactics/team-a-tactics.json",
					"commit [tactics/team-a-tactics.json]",
					"push " + branch + " true",
					"checkout main",
				})
				So(prs.head, ShouldEqual, branch)
				So(prs.base, ShouldEqual, "main")
				So(prs.title, ShouldEqual, "[Tactical Change] formation_change - 12:30")
			})

			Convey("Then the tactics file records the decision", func() {
				var doc coach.Tactics
				So(json.Unmarshal(ws.files["tactics/team-a-tactics.json"], &doc), ShouldBeNil)
				So(doc.DecisionType, ShouldEqual, coach.FormationChange)
				So(doc.MatchTime, ShouldEqual, "12:30")
				So(doc.Priority, ShouldEqual, model.PriorityHigh)
			})

			Convey("Then the body describes the change", func() {
				So(prs.body, ShouldContainSubstring, "### Type\nFORMATION CHANGE")
				So(prs.body, ShouldContainSubstring, "- **Team:** Reds")
				So(prs.body, ShouldContainSubstring, "- `player-01-team-a`")
				So(prs.body, ShouldContainSubstring, "High priority change")
			})
		})

		Convey("When the pull request opens but the base branch cannot be restored", func() {
			ws.checkoutErr = errors.New("worktree contains unstaged changes")
			n, err := flow.Propose(ctx, d, "12:30", model.TeamA, "Reds")

			Convey("Then the opened pull request is still reported", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 77)
				So(ws.calls[len(ws.calls)-1], ShouldEqual, "checkout main")
			})
		})

		Convey("When the push fails", func() {
			ws.pushErr = errors.New("remote rejected")
			_, err := flow.Propose(ctx, d, "12:30", model.TeamA, "Reds")

			Convey("Then the base branch is still restored", func() {
				So(errors.Is(err, ghadapter.ErrTacticalPR), ShouldBeTrue)
				So(ws.calls[len(ws.calls)-1], ShouldEqual, "checkout main")
				So(prs.head, ShouldBeEmpty)
			})
		})
	})
}

func TestDiscussionBodies(t *testing.T) {
	Convey("Given a match at halftime", t, func() {
		state := model.MatchState{
			Timestamp: "2026-10-19T12:01:30.000Z",
			MatchTime: "1:30",
			Score:     model.Score{TeamA: 2, TeamB: 1},
		}
		events := []model.Event{
			{MatchTime: "0:10", Action: model.Action{Type: model.ActionGoal, Agent: "player-02-team-a", Result: model.ResultSuccess}},
			{MatchTime: "0:20", Action: model.Action{Type: model.ActionGoal, Agent: "player-02-team-b", Result: model.ResultSuccess}},
			{MatchTime: "0:30", Action: model.Action{Type: model.ActionPass, Agent: "player-01-team-a", Result: model.ResultSuccess}},
			{MatchTime: "0:40", Action: model.Action{Type: model.ActionGoal, Agent: "player-02-team-a", Result: model.ResultSuccess}},
			{MatchTime: "0:50", Action: model.Action{Type: model.ActionFoul, Agent: "player-01-team-a", Result: model.ResultFailure}},
		}

		Convey("When the leading team reviews", func() {
			title, body, err := ghadapter.HalftimeDiscussion(model.TeamA, "Reds", state, events)
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "🏟️ Halftime Discussion - Reds")
			So(body, ShouldContainSubstring, "**2** - **1**")
			So(body, ShouldContainSubstring, "✅ We're ahead by 1 goal(s)")
			So(body, ShouldContainSubstring, "**Goals Scored:** 2")
			So(body, ShouldContainSubstring, "**Goals Conceded:** 1")
			So(body, ShouldContainSubstring, "**Fouls Committed:** 1")
			So(body, ShouldContainSubstring, "- **[0:10]** ⚽ GOAL: player-02-team-a (us)")
			So(body, ShouldContainSubstring, "- **[0:20]** ⚽ GOAL: player-02-team-b (opponent)")
			So(body, ShouldContainSubstring, "- **[0:50]** ⚠️ FOUL: player-01-team-a (us)")
		})

		Convey("When the trailing team reviews", func() {
			_, body, err := ghadapter.HalftimeDiscussion(model.TeamB, "Blues", state, events)
			So(err, ShouldBeNil)
			So(body, ShouldContainSubstring, "⚠️ We're behind by 1 goal(s)")
		})

		Convey("When there are no key events", func() {
			_, body, err := ghadapter.HalftimeDiscussion(model.TeamA, "Reds", state, events[2:3])
			So(err, ShouldBeNil)
			So(body, ShouldContainSubstring, "- No major events")
		})

		Convey("When the match is over", func() {
			title, body, err := ghadapter.PostMatchDiscussion(model.TeamB, "Blues", state, events)
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "🏁 Post-Match Review - Blues ❌ Defeat")
			So(body, ShouldContainSubstring, "| Goals | 1 | 2 |")
			So(body, ShouldContainSubstring, "| Passes | 0 (0.0% acc.) | 1 (100.0% acc.) |")

			state.Score.TeamB = 2
			title, _, err = ghadapter.PostMatchDiscussion(model.TeamA, "Reds", state, events)
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "🏁 Post-Match Review - Reds 🟰 Draw")
		})
	})
}
