// Package cli implements the hyperreal command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/hyperreal/internal/config"
)

// Options holds the command line flags.
type Options struct {
	TeamA      string
	TeamB      string
	Duration   int
	FPS        int
	Seed       int64
	Realtime   bool
	ConfigFile string
	LogLevel   string
	StatusAddr string
}

// flagKeys maps flag names onto config keys. Only flags set on the command
// line override the loaded configuration.
var flagKeys = map[string]string{
	"teamA":       "team_a",
	"teamB":       "team_b",
	"duration":    "duration",
	"fps":         "fps",
	"seed":        "seed",
	"realtime":    "realtime",
	"log-level":   "log_level",
	"status-addr": "status_addr",
}

// NewRootCommand creates the hyperreal command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "hyperreal",
		Short: "Simulate a soccer match and mirror it into GitHub",
		Long: `Simulate a toy soccer match frame by frame.

With GITHUB_TOKEN set, goals and fouls become issues, tactical changes
become pull requests, halftime and full time open discussions, and with
ENABLE_GIT_COMMITS=true every event is committed to the local repository.

Example:
  hyperreal --teamA=Reds --teamB=Blues --duration=180 --fps=2
  GITHUB_TOKEN=... ENABLE_GIT_COMMITS=true hyperreal --seed=42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, overrides(cmd, opts))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.TeamA, "teamA", "", "name of team A")
	f.StringVar(&opts.TeamB, "teamB", "", "name of team B")
	f.IntVar(&opts.Duration, "duration", 0, "match length in frames")
	f.IntVar(&opts.FPS, "fps", 0, "frames per second of match time")
	f.Int64Var(&opts.Seed, "seed", 0, "random seed; 0 seeds from the clock")
	f.BoolVar(&opts.Realtime, "realtime", false, "pace frames at fps")
	f.StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	f.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	f.StringVar(&opts.StatusAddr, "status-addr", "", "serve the status API on this address, e.g. :9080")

	return cmd
}

// overrides collects the flags the user actually set, keyed for config.Load.
func overrides(cmd *cobra.Command, opts *Options) map[string]any {
	values := map[string]any{
		"teamA":       opts.TeamA,
		"teamB":       opts.TeamB,
		"duration":    opts.Duration,
		"fps":         opts.FPS,
		"seed":        opts.Seed,
		"realtime":    opts.Realtime,
		"log-level":   opts.LogLevel,
		"status-addr": opts.StatusAddr,
	}
	out := make(map[string]any)
	for flag, key := range flagKeys {
		if cmd.Flags().Changed(flag) {
			out[key] = values[flag]
		}
	}
	if cmd.Flags().Changed("config") {
		out[config.OverrideConfigFile] = opts.ConfigFile
	}
	return out
}
