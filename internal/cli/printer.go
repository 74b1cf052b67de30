package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/hyperreal/internal/domain/engine"
	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/internal/domain/stats"
)

const ruleWidth = 60

// Printer writes the human-readable match commentary. It observes the
// engine so event lines appear as frames are played.
type Printer struct {
	w     io.Writer
	teamA string
	teamB string

	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	goal    lipgloss.Style
	foul    lipgloss.Style
	score   lipgloss.Style
}

var _ engine.Observer = (*Printer)(nil)

// NewPrinter renders to w; colours are only emitted when w is a terminal.
func NewPrinter(w io.Writer, teamA, teamB string) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		teamA:   teamA,
		teamB:   teamB,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5F87AF")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		goal:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAF5F")),
		foul:    r.NewStyle().Foreground(lipgloss.Color("#D7AF00")),
		score:   r.NewStyle().Bold(true),
	}
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) rule() string {
	return p.muted.Render(strings.Repeat("=", ruleWidth))
}

// Banner prints the opening title block.
func (p *Printer) Banner() {
	p.printf("\n%s\n", p.rule())
	p.printf("%s\n", p.title.Render("⚽ SOCCER HYPER REAL EXPERIMENT"))
	p.printf("   AI-Driven Match Simulation\n")
	p.printf("   GitHub as Stadium\n")
	p.printf("%s\n\n", p.rule())
}

// Settings is what the configuration block shows.
type Settings struct {
	Duration   int
	FPS        int
	Seed       int64
	GitHub     bool
	GitCommits bool
	Repository string
	StatusAddr string
}

// Config prints the match configuration.
func (p *Printer) Config(s Settings) {
	p.printf("%s\n", p.heading.Render("📋 Match Configuration:"))
	p.printf("   Team A: %s\n", p.teamA)
	p.printf("   Team B: %s\n", p.teamB)
	p.printf("   Duration: %d frames (%.1f minutes)\n", s.Duration, float64(s.Duration)/60)
	p.printf("   FPS: %d\n", s.FPS)
	if s.Seed != 0 {
		p.printf("   Seed: %d\n", s.Seed)
	}
	switch {
	case s.GitHub:
		p.printf("   GitHub: %s (commits %s)\n", s.Repository, onOff(s.GitCommits))
	default:
		p.printf("   GitHub: %s\n", p.muted.Render("disabled (GITHUB_TOKEN not set)"))
	}
	if s.StatusAddr != "" {
		p.printf("   Status API: %s\n", s.StatusAddr)
	}
	p.printf("\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Kickoff implements engine.Observer.
func (p *Printer) Kickoff(_ context.Context, _ model.MatchState) {
	p.printf("\n⚽ Match Starting: %s vs %s\n\n", p.teamA, p.teamB)
}

// Event implements engine.Observer and prints "[M:SS] <commit message>".
func (p *Printer) Event(_ context.Context, ev model.Event, _ model.MatchState) {
	msg := engine.CommitMessage(ev.Action)
	if ev.Git != nil && ev.Git.Message != "" {
		msg = ev.Git.Message
	}
	switch ev.Action.Type {
	case model.ActionGoal:
		msg = p.goal.Render(msg)
	case model.ActionFoul:
		if card := ev.Action.Card(); card != model.CardNone {
			msg += " (" + string(card) + " card)"
		}
		msg = p.foul.Render(msg)
	}
	p.printf("[%s] %s\n", ev.MatchTime, msg)
}

// Frame implements engine.Observer.
func (p *Printer) Frame(context.Context, model.MatchState) {}

// Halftime implements engine.Observer.
func (p *Printer) Halftime(_ context.Context, state model.MatchState, _ []model.Event) {
	p.printf("\n⏸️  HALFTIME: %s\n\n", p.scoreLine(state.Score))
}

// Fulltime implements engine.Observer.
func (p *Printer) Fulltime(_ context.Context, state model.MatchState, events []model.Event) {
	c := stats.Compute(events, "")
	p.printf("\n🏁 FULL TIME: %s\n\n", p.scoreLine(state.Score))
	p.printf("📊 Total Events: %d\n", c.Events)
	p.printf("⚽ Goals: %d\n", c.Goals)
}

func (p *Printer) scoreLine(s model.Score) string {
	return p.score.Render(fmt.Sprintf("%s %d - %d %s", p.teamA, s.TeamA, s.TeamB, p.teamB))
}

// Summary prints the closing statistics block.
func (p *Printer) Summary(state model.MatchState, events []model.Event) {
	sum := stats.Summarize(events)
	o := sum.Overall

	p.printf("\n%s\n", p.rule())
	p.printf("%s\n", p.title.Render("📊 MATCH STATISTICS"))
	p.printf("%s\n", p.rule())

	p.printf("\n%s\n", p.heading.Render("🎯 Event Summary:"))
	p.printf("   Total Events: %d\n", o.Events)
	p.printf("   Passes: %d (%d successful, %.1f%%)\n", o.Passes, o.PassesCompleted, o.PassAccuracy())
	p.printf("   Shots: %d (%d scored, %.1f%%)\n", o.Shots, o.Goals, o.ShotConversion())
	p.printf("   Goals: %d\n", o.Goals)
	p.printf("   Tackles: %d (%d successful, %.1f%%)\n", o.Tackles, o.TacklesWon, o.TackleSuccess())
	p.printf("   Fouls: %d (%d yellow, %d red)\n", o.Fouls, o.YellowCards, o.RedCards)

	p.printf("\n%s\n", p.heading.Render("⚽ Final Score:"))
	p.printf("   %s: %d\n", p.teamA, state.Score.TeamA)
	p.printf("   %s: %d\n", p.teamB, state.Score.TeamB)

	p.printf("\n%s\n", p.heading.Render("🏃 Player Stamina:"))
	for _, pl := range state.Players {
		p.printf("   %s: %.1f%%\n", pl.ID, pl.Stamina)
	}

	p.printf("\n%s\n", p.rule())
	p.printf("✅ Match simulation complete!\n")
	p.printf("%s\n\n", p.rule())
}
