// Package metrics provides Prometheus metrics for the match simulator.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for adapter calls.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Phases is the closed set of values accepted by UpdatePhase.
var Phases = []string{"kickoff", "play", "freekick", "corner", "penalty", "halftime", "fulltime"}

// Manager owns every collector registered for a match run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Match
	events             *prometheus.CounterVec
	goals              *prometheus.CounterVec
	cards              *prometheus.CounterVec
	frames             prometheus.Counter
	frame              prometheus.Gauge
	phase              *prometheus.GaugeVec
	score              *prometheus.GaugeVec
	stamina            *prometheus.GaugeVec
	tacticalDecisions  *prometheus.CounterVec
	validationFailures prometheus.Counter

	// External side effects
	adapterCalls   *prometheus.CounterVec
	adapterLatency *prometheus.HistogramVec

	// Status API
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hyperreal",
		subsystem:        "match",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collector definitions
	auto := promauto.With(m.registry)

	m.events = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_total",
		Help:        "Match events generated, by action type and result",
		ConstLabels: m.constLabels,
	}, []string{"type", "result"})

	m.goals = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "goals_total",
		Help:        "Goals scored, by team",
		ConstLabels: m.constLabels,
	}, []string{"team"})

	m.cards = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cards_total",
		Help:        "Cards shown by the referee, by colour",
		ConstLabels: m.constLabels,
	}, []string{"card"})

	m.frames = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "frames_total",
		Help:        "Frames simulated",
		ConstLabels: m.constLabels,
	})

	m.frame = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "frame",
		Help:        "Current frame counter",
		ConstLabels: m.constLabels,
	})

	m.phase = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "phase",
		Help:        "1 for the current match phase, 0 otherwise",
		ConstLabels: m.constLabels,
	}, []string{"phase"})

	m.score = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "score",
		Help:        "Current score, by team",
		ConstLabels: m.constLabels,
	}, []string{"team"})

	m.stamina = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "player_stamina",
		Help:        "Remaining stamina percentage, by player",
		ConstLabels: m.constLabels,
	}, []string{"player"})

	m.tacticalDecisions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tactical_decisions_total",
		Help:        "Coach decisions, by team and decision type",
		ConstLabels: m.constLabels,
	}, []string{"team", "type"})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "validation_failures_total",
		Help:        "Events rejected by schema validation",
		ConstLabels: m.constLabels,
	})

	m.adapterCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "adapter_calls_total",
		Help:        "Calls to external adapters (github, git), by outcome",
		ConstLabels: m.constLabels,
	}, []string{"adapter", "operation", "outcome"})

	m.adapterLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "adapter_latency_milliseconds",
		Help:        "Latency of external adapter calls in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"adapter", "operation"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Status API requests by endpoint, method and status code",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "Status API request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordEvent counts a generated match event.
func (m *Manager) RecordEvent(actionType, result string) {
	m.events.WithLabelValues(actionType, result).Inc()
}

// RecordGoal counts a goal for team.
func (m *Manager) RecordGoal(team string) {
	m.goals.WithLabelValues(team).Inc()
}

// RecordCard counts a card of the given colour.
func (m *Manager) RecordCard(card string) {
	m.cards.WithLabelValues(card).Inc()
}

// RecordFrame advances the frame counter and gauge.
func (m *Manager) RecordFrame(frame int) {
	m.frames.Inc()
	m.frame.Set(float64(frame))
}

// UpdatePhase flips the phase gauge to phase.
func (m *Manager) UpdatePhase(phase string) error {
	known := false
	for _, p := range Phases {
		if p == phase {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	for _, p := range Phases {
		v := 0.0
		if p == phase {
			v = 1
		}
		m.phase.WithLabelValues(p).Set(v)
	}
	return nil
}

// UpdateScore sets the score gauge for team.
func (m *Manager) UpdateScore(team string, goals int) {
	m.score.WithLabelValues(team).Set(float64(goals))
}

// UpdateStamina sets the stamina gauge for player.
func (m *Manager) UpdateStamina(player string, stamina float64) {
	m.stamina.WithLabelValues(player).Set(stamina)
}

// RecordTacticalDecision counts a coach decision.
func (m *Manager) RecordTacticalDecision(team, decisionType string) {
	m.tacticalDecisions.WithLabelValues(team, decisionType).Inc()
}

// RecordValidationFailure counts an event rejected by the schema.
func (m *Manager) RecordValidationFailure() {
	m.validationFailures.Inc()
}

// RecordAdapterCall counts an adapter call and, unless skipped, observes its latency.
func (m *Manager) RecordAdapterCall(adapter, operation, outcome string, latencyMs float64) {
	m.adapterCalls.WithLabelValues(adapter, operation, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.adapterLatency.WithLabelValues(adapter, operation).Observe(latencyMs)
	}
}

// RecordHTTPRequest records a status API request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Package-level helpers delegate to the global manager.

// RecordEvent counts a generated match event.
func RecordEvent(actionType, result string) { globalManager.RecordEvent(actionType, result) }

// RecordGoal counts a goal for team.
func RecordGoal(team string) { globalManager.RecordGoal(team) }

// RecordCard counts a card of the given colour.
func RecordCard(card string) { globalManager.RecordCard(card) }

// RecordFrame advances the frame counter and gauge.
func RecordFrame(frame int) { globalManager.RecordFrame(frame) }

// UpdatePhase flips the phase gauge to phase.
func UpdatePhase(phase string) error { return globalManager.UpdatePhase(phase) }

// UpdateScore sets the score gauge for team.
func UpdateScore(team string, goals int) { globalManager.UpdateScore(team, goals) }

// UpdateStamina sets the stamina gauge for player.
func UpdateStamina(player string, stamina float64) { globalManager.UpdateStamina(player, stamina) }

// RecordTacticalDecision counts a coach decision.
func RecordTacticalDecision(team, decisionType string) {
	globalManager.RecordTacticalDecision(team, decisionType)
}

// RecordValidationFailure counts an event rejected by the schema.
func RecordValidationFailure() { globalManager.RecordValidationFailure() }

// RecordAdapterCall counts an adapter call.
func RecordAdapterCall(adapter, operation, outcome string, latencyMs float64) {
	globalManager.RecordAdapterCall(adapter, operation, outcome, latencyMs)
}

// RecordHTTPRequest records a status API request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
