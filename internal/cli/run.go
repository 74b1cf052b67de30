package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/hyperreal/internal/app"
	"github.com/okian/hyperreal/internal/config"
	"github.com/okian/hyperreal/internal/domain/engine"
	"github.com/okian/hyperreal/pkg/logger"
)

func runMatch(cmd *cobra.Command, overrides map[string]any) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithJSON(cfg.LogFormat == "json"),
	); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Get().Named("cli")

	out := NewPrinter(cmd.OutOrStdout(), cfg.TeamA, cfg.TeamB)
	out.Banner()

	svc := service.FromConfig(ctx, cfg)
	out.Config(Settings{
		Duration:   cfg.Duration,
		FPS:        cfg.FPS,
		Seed:       cfg.Seed,
		GitHub:     svc.GitHubEnabled(),
		GitCommits: svc.GitCommitsEnabled(),
		Repository: cfg.RepoOwner + "/" + cfg.RepoName,
		StatusAddr: cfg.StatusAddr,
	})

	if cfg.StatusAddr != "" {
		stop := startStatusServer(ctx, cfg.StatusAddr, svc, cfg.MaxEventsLimit)
		defer stop()
	}

	opts := []engine.Option{
		engine.WithObserver(out),
		engine.WithObserver(svc),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	eng, err := engine.New(engine.Config{
		TeamA:    cfg.TeamA,
		TeamB:    cfg.TeamB,
		Duration: cfg.Duration,
		FPS:      cfg.FPS,
		Realtime: cfg.Realtime,
	}, opts...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	if err := eng.Run(ctx); err != nil {
		log.Error(ctx, "match interrupted",
			logger.Int("frame", eng.State().Frame),
			logger.Error(err),
		)
		return fmt.Errorf("run match: %w", err)
	}

	out.Summary(eng.State(), eng.Events())
	return nil
}
