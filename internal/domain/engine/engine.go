// Package engine runs the match loop: one categorical roll per frame,
// score and stamina bookkeeping, and halftime/fulltime transitions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/hyperreal/internal/domain/matchtime"
	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/pkg/logger"
	"github.com/okian/hyperreal/pkg/metrics"
)

// Default match settings.
const (
	DefaultDuration = 180
	DefaultFPS      = 1

	staminaDrain = 0.01
	fullStamina  = 100.0
)

// Config holds the match settings.
type Config struct {
	TeamA    string
	TeamB    string
	Duration int
	FPS      int
	Realtime bool
}

// Engine simulates one match. State and history reads are safe from other
// goroutines; frames must be driven from a single goroutine.
type Engine struct {
	mu sync.RWMutex

	cfg          Config
	matchID      string
	start        time.Time
	rng          *rand.Rand
	observers    []Observer
	historyLimit int
	logger       logger.Logger

	state    model.MatchState
	events   []model.Event
	yellows  map[model.AgentID]int
	started  bool
	finished bool
}

// New creates an engine with the standard 2v2 roster at kickoff.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("%w: duration %d", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.FPS < 0 {
		return nil, fmt.Errorf("%w: fps %d", ErrInvalidConfig, cfg.FPS)
	}
	if cfg.Duration == 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}
	if !matchtime.Fits(cfg.Duration, cfg.FPS) {
		return nil, fmt.Errorf("%w: %d frames at %d fps overflow the match clock", ErrInvalidConfig, cfg.Duration, cfg.FPS)
	}
	if cfg.TeamA == "" {
		cfg.TeamA = "Team Alpha"
	}
	if cfg.TeamB == "" {
		cfg.TeamB = "Team Beta"
	}

	e := &Engine{
		cfg:     cfg,
		matchID: uuid.NewString(),
		start:   time.Now().UTC(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation, not crypto
		yellows: make(map[model.AgentID]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}
	e.state = e.initialState()
	return e, nil
}

func (e *Engine) initialState() model.MatchState {
	player := func(n int, team string, x, y float64) model.Player {
		return model.Player{
			ID:       PlayerID(n, team),
			Position: model.PhysicalSpace{X: x, Y: y},
			Stamina:  fullStamina,
			State:    model.PlayerIdle,
		}
	}
	return model.MatchState{
		MatchID:   e.matchID,
		Timestamp: matchtime.FormatTimestamp(e.start),
		Frame:     0,
		MatchTime: matchtime.Format(0, e.cfg.FPS),
		Ball:      model.Ball{PhysicalSpace: model.PhysicalSpace{X: model.FieldLength / 2, Y: model.FieldWidth / 2}},
		Players: []model.Player{
			player(1, model.TeamA, 30, 30),
			player(2, model.TeamA, 30, 38),
			player(1, model.TeamB, 75, 30),
			player(2, model.TeamB, 75, 38),
		},
		Phase: model.PhaseKickoff,
	}
}

// Config returns the effective settings.
func (e *Engine) Config() Config { return e.cfg }

// MatchID returns the match id stamped on the state.
func (e *Engine) MatchID() string { return e.matchID }

// TeamName maps a team id to its display name.
func (e *Engine) TeamName(team string) string {
	if team == model.TeamB {
		return e.cfg.TeamB
	}
	return e.cfg.TeamA
}

// State returns a copy of the current match state.
func (e *Engine) State() model.MatchState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone()
}

// Events returns a copy of every event generated so far.
func (e *Engine) Events() []model.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]model.Event(nil), e.events...)
}

// RecentEvents returns up to n of the latest events, oldest first.
func (e *Engine) RecentEvents(n int) []model.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(e.events) {
		n = len(e.events)
	}
	return append([]model.Event(nil), e.events[len(e.events)-n:]...)
}

// Finished reports whether fulltime has been reached.
func (e *Engine) Finished() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.finished
}

// Run drives frames until fulltime or until ctx is cancelled. With
// Realtime set, frames are paced at FPS.
func (e *Engine) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if e.cfg.Realtime {
		t := time.NewTicker(time.Second / time.Duration(e.cfg.FPS))
		defer t.Stop()
		tick = t.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.RunFrame(ctx); err != nil {
			if errors.Is(err, ErrMatchOver) {
				return nil
			}
			return err
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}

// RunFrame advances the match by one frame and returns the event it
// produced, or nil for a quiet frame. Once the frame counter has reached
// the duration it moves the match to fulltime and returns ErrMatchOver.
func (e *Engine) RunFrame(ctx context.Context) (*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.finished {
		e.mu.Unlock()
		return nil, ErrMatchOver
	}
	if !e.started {
		e.started = true
		snap := e.state.Clone()
		e.mu.Unlock()
		e.updatePhaseMetric(ctx, snap.Phase)
		e.logger.Info(ctx, "kickoff",
			logger.String("matchID", e.matchID),
			logger.String("teamA", e.cfg.TeamA),
			logger.String("teamB", e.cfg.TeamB),
			logger.Int("duration", e.cfg.Duration),
			logger.Int("fps", e.cfg.FPS),
		)
		for _, o := range e.observers {
			o.Kickoff(ctx, snap)
		}
		e.mu.Lock()
	}

	if e.state.Frame >= e.cfg.Duration {
		e.finished = true
		e.state.Phase = model.PhaseFulltime
		snap := e.state.Clone()
		events := append([]model.Event(nil), e.events...)
		e.mu.Unlock()

		e.updatePhaseMetric(ctx, snap.Phase)
		e.logger.Info(ctx, "fulltime",
			logger.Int("teamA", snap.Score.TeamA),
			logger.Int("teamB", snap.Score.TeamB),
			logger.Int("events", len(events)),
		)
		for _, o := range e.observers {
			o.Fulltime(ctx, snap, events)
		}
		return nil, ErrMatchOver
	}

	ev := e.generate()
	e.advance()
	snap := e.state.Clone()
	halftime := e.cfg.Duration/2 > 0 && e.state.Frame == e.cfg.Duration/2
	var events []model.Event
	if halftime {
		e.state.Phase = model.PhaseHalftime
		snap = e.state.Clone()
		events = append([]model.Event(nil), e.events...)
	}
	e.mu.Unlock()

	metrics.RecordFrame(snap.Frame)
	for _, p := range snap.Players {
		metrics.UpdateStamina(p.ID.String(), p.Stamina)
	}

	if ev != nil {
		e.record(ctx, *ev, snap)
		for _, o := range e.observers {
			o.Event(ctx, *ev, snap)
		}
	}

	if halftime {
		e.updatePhaseMetric(ctx, model.PhaseHalftime)
		e.logger.Info(ctx, "halftime",
			logger.Int("teamA", snap.Score.TeamA),
			logger.Int("teamB", snap.Score.TeamB),
		)
		for _, o := range e.observers {
			o.Halftime(ctx, snap, events)
		}
		e.mu.Lock()
		e.state.Phase = model.PhasePlay
		snap = e.state.Clone()
		e.mu.Unlock()
		e.updatePhaseMetric(ctx, model.PhasePlay)
	}

	for _, o := range e.observers {
		o.Frame(ctx, snap)
	}
	return ev, nil
}

// generate rolls the current frame and applies its effect on the score.
// Must be called with e.mu held.
func (e *Engine) generate() *model.Event {
	a := e.sample()
	if a == nil {
		return nil
	}
	frame := e.state.Frame
	pos := model.PhysicalSpace{}
	if p, ok := e.state.Player(a.Agent); ok {
		pos = p.Position
	}
	if a.Type == model.ActionGoal {
		if a.Agent.Team() == model.TeamA {
			e.state.Score.TeamA++
		} else {
			e.state.Score.TeamB++
		}
	}

	ev := model.Event{
		Timestamp: matchtime.FormatTimestamp(matchtime.Timestamp(e.start, frame, e.cfg.FPS)),
		Frame:     frame,
		MatchTime: matchtime.Format(frame, e.cfg.FPS),
		Space: model.Space{
			Physical: pos,
			Logical:  LogicalPath(a.Type, frame),
		},
		Action:   *a,
		Decision: decisionFor(*a),
		Git:      &model.GitMetadata{Branch: MatchBranch, Message: CommitMessage(*a)},
	}
	e.events = append(e.events, ev)
	if e.historyLimit > 0 && len(e.events) > e.historyLimit {
		e.events = append(e.events[:0:0], e.events[len(e.events)-e.historyLimit:]...)
	}
	return &ev
}

// advance moves the clock one frame and drains stamina. Must be called
// with e.mu held.
func (e *Engine) advance() {
	e.state.Frame++
	e.state.MatchTime = matchtime.Format(e.state.Frame, e.cfg.FPS)
	e.state.Timestamp = matchtime.FormatTimestamp(matchtime.Timestamp(e.start, e.state.Frame, e.cfg.FPS))
	if e.state.Phase == model.PhaseKickoff {
		e.state.Phase = model.PhasePlay
	}
	for i := range e.state.Players {
		e.state.Players[i].Stamina = max(0, e.state.Players[i].Stamina-staminaDrain)
	}
}

func (e *Engine) record(ctx context.Context, ev model.Event, snap model.MatchState) {
	if err := model.Validate(ev); err != nil {
		metrics.RecordValidationFailure()
		e.logger.Warn(ctx, "generated event failed validation",
			logger.Int("frame", ev.Frame),
			logger.Error(err),
		)
	}
	metrics.RecordEvent(string(ev.Action.Type), string(ev.Action.Result))
	switch ev.Action.Type {
	case model.ActionGoal:
		team := ev.Team()
		metrics.RecordGoal(team)
		metrics.UpdateScore(team, snap.Score.For(team))
	case model.ActionFoul:
		metrics.RecordCard(string(ev.Action.Card()))
	}
	e.logger.Debug(ctx, "event",
		logger.Int("frame", ev.Frame),
		logger.String("type", string(ev.Action.Type)),
		logger.String("agent", ev.Action.Agent.String()),
		logger.String("result", string(ev.Action.Result)),
	)
}

func (e *Engine) updatePhaseMetric(ctx context.Context, p model.Phase) {
	if err := metrics.UpdatePhase(string(p)); err != nil {
		e.logger.Warn(ctx, "phase metric", logger.Error(err))
	}
}
