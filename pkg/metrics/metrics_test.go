package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
			So(manager, ShouldNotBeNil)
			So(manager.namespace, ShouldEqual, "hyperreal")
			So(manager.subsystem, ShouldEqual, "match")
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 2}),
				WithConstLabels(map[string]string{"match_id": "m-1"}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			So(manager.namespace, ShouldEqual, "test")
			So(manager.subsystem, ShouldEqual, "sub")
			So(manager.histogramBuckets, ShouldResemble, []float64{1, 2})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording events and goals", func() {
			m.RecordEvent("pass", "success")
			m.RecordEvent("pass", "success")
			m.RecordEvent("goal", "success")
			m.RecordGoal("team-a")

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(m.events.WithLabelValues("pass", "success")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.goals.WithLabelValues("team-a")), ShouldEqual, 1)
			})
		})

		Convey("When advancing frames", func() {
			m.RecordFrame(1)
			m.RecordFrame(2)

			Convey("Then the counter and gauge move", func() {
				So(testutil.ToFloat64(m.frames), ShouldEqual, 2)
				So(testutil.ToFloat64(m.frame), ShouldEqual, 2)
			})
		})

		Convey("When switching phase", func() {
			So(m.UpdatePhase("halftime"), ShouldBeNil)

			Convey("Then only the current phase is set", func() {
				So(testutil.ToFloat64(m.phase.WithLabelValues("halftime")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.phase.WithLabelValues("play")), ShouldEqual, 0)
			})
		})

		Convey("When switching to an unknown phase", func() {
			err := m.UpdatePhase("extra_time")
			So(errors.Is(err, ErrUnknownPhase), ShouldBeTrue)
		})

		Convey("When recording adapter calls", func() {
			m.RecordAdapterCall("github", "create_issue", OutcomeSuccess, 12)
			m.RecordAdapterCall("github", "create_issue", OutcomeSkipped, 0)

			Convey("Then each outcome is counted", func() {
				So(testutil.ToFloat64(m.adapterCalls.WithLabelValues("github", "create_issue", OutcomeSuccess)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.adapterCalls.WithLabelValues("github", "create_issue", OutcomeSkipped)), ShouldEqual, 1)
			})
		})

		Convey("When updating gauges", func() {
			m.UpdateScore("team-b", 3)
			m.UpdateStamina("player-01-team-a", 98.5)

			So(testutil.ToFloat64(m.score.WithLabelValues("team-b")), ShouldEqual, 3)
			So(testutil.ToFloat64(m.stamina.WithLabelValues("player-01-team-a")), ShouldEqual, 98.5)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(func() {
			RecordEvent("tackle", "failure")
			RecordGoal("team-b")
			RecordCard("yellow")
			RecordFrame(10)
			_ = UpdatePhase("play")
			UpdateScore("team-a", 1)
			UpdateStamina("player-02-team-b", 99)
			RecordTacticalDecision("team-a", "formation_change")
			RecordValidationFailure()
			RecordAdapterCall("git", "commit", OutcomeError, 3)
			RecordHTTPRequest("state", "GET", "200", 1)
		}, ShouldNotPanic)

		Convey("Then the custom registry gathers them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
