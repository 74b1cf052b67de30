package engine

import (
	"context"

	"github.com/okian/hyperreal/internal/domain/model"
)

// Observer is notified as the match progresses. Calls happen on the match
// goroutine, one at a time, and receive copies of engine state.
type Observer interface {
	// Kickoff is called once before the first frame.
	Kickoff(ctx context.Context, state model.MatchState)
	// Event is called for every generated event.
	Event(ctx context.Context, ev model.Event, state model.MatchState)
	// Frame is called after every frame has been applied.
	Frame(ctx context.Context, state model.MatchState)
	// Halftime is called when the frame counter reaches half the duration.
	Halftime(ctx context.Context, state model.MatchState, events []model.Event)
	// Fulltime is called once when the match ends.
	Fulltime(ctx context.Context, state model.MatchState, events []model.Event)
}

// NopObserver implements Observer with no-ops; embed it to override a subset.
type NopObserver struct{}

func (NopObserver) Kickoff(context.Context, model.MatchState)                 {}
func (NopObserver) Event(context.Context, model.Event, model.MatchState)      {}
func (NopObserver) Frame(context.Context, model.MatchState)                   {}
func (NopObserver) Halftime(context.Context, model.MatchState, []model.Event) {}
func (NopObserver) Fulltime(context.Context, model.MatchState, []model.Event) {}
