package engine

import (
	"math/rand"
	"time"

	"github.com/okian/hyperreal/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSeed makes the event sequence reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // simulation, not crypto
	}
}

// WithStart fixes the kickoff instant used for event timestamps.
func WithStart(t time.Time) Option {
	return func(e *Engine) {
		if !t.IsZero() {
			e.start = t
		}
	}
}

// WithObserver registers an observer; observers are notified in order.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistoryLimit bounds the number of events kept in memory. Zero keeps all.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.historyLimit = n
		}
	}
}
