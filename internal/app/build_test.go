package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"

	service "github.com/okian/hyperreal/internal/app"
	"github.com/okian/hyperreal/internal/config"
	"github.com/okian/hyperreal/internal/domain/engine"
	"github.com/okian/hyperreal/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// countingGitHub answers just enough of the REST and GraphQL APIs for a
// match and counts every request it sees.
type countingGitHub struct {
	mu          sync.Mutex
	requests    int
	issues      int
	discussions int
}

func (c *countingGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/graphql":
		var req struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if strings.Contains(req.Query, "createDiscussion") {
			c.discussions++
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
				"createDiscussion": map[string]any{"discussion": map[string]any{"id": "D", "number": c.discussions}},
			}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"repository": map[string]any{"id": "R"}}})
	case strings.HasSuffix(r.URL.Path, "/issues"):
		c.issues++
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"number": c.issues})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func matchConfig(t *testing.T, srv *httptest.Server) *config.Config {
	cfg := config.New(context.Background())
	cfg.RepoOwner, cfg.RepoName = "club", "match"
	cfg.GitHubAPIURL = srv.URL
	cfg.GitHubGraphQLURL = srv.URL + "/graphql"
	cfg.RepoPath = t.TempDir()
	cfg.EnableGitCommits = true
	return cfg
}

func play(ctx context.Context, svc *service.Service) *engine.Engine {
	eng, err := engine.New(engine.Config{Duration: 180, FPS: 1},
		engine.WithSeed(42),
		engine.WithStart(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)),
		engine.WithObserver(svc),
	)
	So(err, ShouldBeNil)
	So(eng.Run(ctx), ShouldBeNil)
	return eng
}

func TestFromConfig(t *testing.T) {
	Convey("Given a GitHub API that counts requests", t, func() {
		ctx := context.Background()
		gh := &countingGitHub{}
		srv := httptest.NewServer(gh)
		defer srv.Close()
		cfg := matchConfig(t, srv)

		Convey("When no token is configured", func() {
			cfg.GitHubToken = ""
			svc := service.FromConfig(ctx, cfg)
			eng := play(ctx, svc)

			Convey("Then the match runs without touching the network", func() {
				So(svc.GitHubEnabled(), ShouldBeFalse)
				So(svc.GitCommitsEnabled(), ShouldBeFalse)
				So(gh.requests, ShouldEqual, 0)
				So(svc.State().Phase, ShouldEqual, model.PhaseFulltime)
				So(svc.RecentEvents(1000), ShouldHaveLength, len(eng.Events()))
			})
		})

		Convey("When a token is configured outside a git repository", func() {
			cfg.GitHubToken = "tok"
			svc := service.FromConfig(ctx, cfg)
			eng := play(ctx, svc)

			Convey("Then issues and discussions are created and commits stay off", func() {
				So(svc.GitHubEnabled(), ShouldBeTrue)
				So(svc.GitCommitsEnabled(), ShouldBeFalse)

				want := 0
				for _, ev := range eng.Events() {
					if ev.Action.Type == model.ActionGoal || ev.Action.Type == model.ActionFoul {
						want++
					}
				}
				So(gh.issues, ShouldEqual, want)
				So(gh.discussions, ShouldEqual, 4)
			})
		})

		Convey("When a token is configured inside a git repository", func() {
			cfg.GitHubToken = "tok"
			_, err := gogit.PlainInit(cfg.RepoPath, false)
			So(err, ShouldBeNil)

			Convey("Then event commits follow ENABLE_GIT_COMMITS", func() {
				So(service.FromConfig(ctx, cfg).GitCommitsEnabled(), ShouldBeTrue)

				cfg.EnableGitCommits = false
				svc := service.FromConfig(ctx, cfg)
				So(svc.GitHubEnabled(), ShouldBeTrue)
				So(svc.GitCommitsEnabled(), ShouldBeFalse)
				So(gh.requests, ShouldEqual, 0)
			})
		})
	})
}
