package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/hyperreal/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvConfigFile, config.EnvToken, config.EnvGitCommits,
		"HYPERREAL_TEAM_A", "HYPERREAL_DURATION", "HYPERREAL_GITHUB_TOKEN", "HYPERREAL_FPS",
	} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "hyperreal.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearEnv(t)

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then defaults are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamA, convey.ShouldEqual, "Team Alpha")
				convey.So(cfg.Duration, convey.ShouldEqual, 180)
				convey.So(cfg.GitHubToken, convey.ShouldBeEmpty)
				convey.So(cfg.EnableGitCommits, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the bare GitHub variables are set", func() {
			t.Setenv(config.EnvToken, "ghp_bare")
			t.Setenv(config.EnvGitCommits, "true")
			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then they enable side effects", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GitHubToken, convey.ShouldEqual, "ghp_bare")
				convey.So(cfg.EnableGitCommits, convey.ShouldBeTrue)
			})

			convey.Convey("And the prefixed token takes precedence", func() {
				t.Setenv("HYPERREAL_GITHUB_TOKEN", "ghp_prefixed")
				cfg, err := config.Load(ctx, nil)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GitHubToken, convey.ShouldEqual, "ghp_prefixed")
			})
		})

		convey.Convey("When ENABLE_GIT_COMMITS is not true", func() {
			t.Setenv(config.EnvToken, "ghp_bare")
			t.Setenv(config.EnvGitCommits, "false")
			cfg, err := config.Load(ctx, nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.EnableGitCommits, convey.ShouldBeFalse)
		})

		convey.Convey("When a YAML file and env are layered", func() {
			path := writeConfig(t, "team_a: Reds\nteam_b: Blues\nduration: 90\nfps: 2\nstatus_addr: \":9080\"\n")
			t.Setenv(config.EnvConfigFile, path)
			t.Setenv("HYPERREAL_DURATION", "120")
			cfg, err := config.Load(ctx, nil)

			convey.Convey("Then env wins over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamA, convey.ShouldEqual, "Reds")
				convey.So(cfg.TeamB, convey.ShouldEqual, "Blues")
				convey.So(cfg.FPS, convey.ShouldEqual, 2)
				convey.So(cfg.Duration, convey.ShouldEqual, 120)
				convey.So(cfg.StatusAddr, convey.ShouldEqual, ":9080")
			})

			convey.Convey("And overrides win over env", func() {
				cfg, err := config.Load(ctx, map[string]any{"duration": 30, "team_a": "Greens"})
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Duration, convey.ShouldEqual, 30)
				convey.So(cfg.TeamA, convey.ShouldEqual, "Greens")
			})
		})

		convey.Convey("When the config file is missing", func() {
			t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := config.Load(ctx, nil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a value fails validation", func() {
			t.Setenv("HYPERREAL_FPS", "0")
			_, err := config.Load(ctx, nil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a value cannot be decoded", func() {
			_, err := config.Load(ctx, map[string]any{"duration": "long"})
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

func TestLoadConfigFileOverride(t *testing.T) {
	convey.Convey("Given a config file named by override", t, func() {
		clearEnv(t)
		path := writeConfig(t, "team_b: Blues\n")

		cfg, err := config.Load(context.Background(), map[string]any{config.OverrideConfigFile: path})

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.TeamB, convey.ShouldEqual, "Blues")
	})
}
