package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/hyperreal/internal/adapters/http/api"
	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

type mockMatch struct {
	state  model.MatchState
	events []model.Event
	asked  int
}

func (m *mockMatch) State() model.MatchState { return m.state }

func (m *mockMatch) RecentEvents(n int) []model.Event {
	m.asked = n
	if n > len(m.events) {
		n = len(m.events)
	}
	return m.events[len(m.events)-n:]
}

func (m *mockMatch) GetStats() stats.Report {
	return stats.Report{
		MatchID: m.state.MatchID,
		Frame:   m.state.Frame,
		Phase:   m.state.Phase,
		Score:   m.state.Score,
		Events:  len(m.events),
		Summary: stats.Summarize(m.events),
	}
}

func newMatch(events int) *mockMatch {
	m := &mockMatch{
		state: model.MatchState{
			MatchID:   "m-1",
			Timestamp: "2026-10-19T12:01:00.000Z",
			Frame:     60,
			MatchTime: "1:00",
			Score:     model.Score{TeamA: 2, TeamB: 1},
			Phase:     model.PhasePlay,
		},
	}
	for i := 0; i < events; i++ {
		m.events = append(m.events, model.Event{
			Timestamp: "2026-10-19T12:00:00.000Z",
			Frame:     i,
			MatchTime: fmt.Sprintf("0:%02d", i),
			Action:    model.Action{Type: model.ActionPass, Agent: "player-01-team-a", Result: model.ResultSuccess},
		})
	}
	return m
}

func serve(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered status API", t, func() {
		match := newMatch(30)
		mux := http.NewServeMux()
		api.NewServer(match, api.WithMaxEventsLimit(25)).Register(context.Background(), mux)

		Convey("When the metrics endpoint is scraped", func() {
			w := serve(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the state is requested", func() {
			w := serve(mux, http.MethodGet, "/state")

			Convey("Then the match state is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				var got model.MatchState
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.MatchTime, ShouldEqual, "1:00")
				So(got.Score, ShouldResemble, model.Score{TeamA: 2, TeamB: 1})
			})
		})

		Convey("When events are requested without a limit", func() {
			w := serve(mux, http.MethodGet, "/events")

			Convey("Then the default window is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []model.Event
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 20)
				So(got[19].Frame, ShouldEqual, 29)
			})
		})

		Convey("When events are requested with a limit", func() {
			w := serve(mux, http.MethodGet, "/events?limit=3")
			var got []model.Event
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 3)
			So(match.asked, ShouldEqual, 3)
		})

		Convey("When the limit is invalid", func() {
			for _, q := range []string{"0", "-1", "abc"} {
				w := serve(mux, http.MethodGet, "/events?limit="+q)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			}
		})

		Convey("When the limit exceeds the cap", func() {
			w := serve(mux, http.MethodGet, "/events?limit=26")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, `"code":"limit_exceeded"`)
		})

		Convey("When there are no events yet", func() {
			empty := http.NewServeMux()
			api.NewServer(newMatch(0)).Register(context.Background(), empty)
			w := serve(empty, http.MethodGet, "/events")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "[]\n")
		})

		Convey("When stats are requested", func() {
			match.events[0].Action.Result = model.ResultFailure
			w := serve(mux, http.MethodGet, "/stats")

			Convey("Then the report carries counts and rates per team", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				var got struct {
					MatchID string      `json:"matchId"`
					Phase   model.Phase `json:"phase"`
					Events  int         `json:"events"`
					GitHub  bool        `json:"github"`
					TeamA   struct {
						Passes          int     `json:"passes"`
						PassesCompleted int     `json:"passesCompleted"`
						PassAccuracy    float64 `json:"passAccuracy"`
					} `json:"teamA"`
					TeamB struct {
						Passes int `json:"passes"`
					} `json:"teamB"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.MatchID, ShouldEqual, "m-1")
				So(got.Phase, ShouldEqual, model.PhasePlay)
				So(got.Events, ShouldEqual, 30)
				So(got.GitHub, ShouldBeFalse)
				So(got.TeamA.Passes, ShouldEqual, 30)
				So(got.TeamA.PassesCompleted, ShouldEqual, 29)
				So(got.TeamA.PassAccuracy, ShouldAlmostEqual, 29.0*100/30, 0.0001)
				So(got.TeamB.Passes, ShouldEqual, 0)
			})
		})

		Convey("When a read endpoint receives a POST", func() {
			for _, p := range []string{"/state", "/events", "/stats"} {
				w := serve(mux, http.MethodPost, p)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			}
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a wrapped handler", t, func() {
		h := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}, "teapot")

		Convey("When it is served", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/teapot", http.NoBody))

			Convey("Then status and body pass through", func() {
				So(w.Code, ShouldEqual, http.StatusTeapot)
				So(w.Body.String(), ShouldEqual, "short and stout")
			})
		})
	})
}
