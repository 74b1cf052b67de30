package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/okian/hyperreal/internal/adapters/http/api"
	"github.com/okian/hyperreal/internal/adapters/http/swagger"
	"github.com/okian/hyperreal/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// NewStatusHandler builds the status API mux.
func NewStatusHandler(ctx context.Context, deps api.Dependencies, maxEvents int) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(deps, api.WithMaxEventsLimit(maxEvents)).Register(ctx, mux)
	return mux
}

// startStatusServer serves the status API in the background and returns a
// function that shuts it down.
func startStatusServer(ctx context.Context, addr string, deps api.Dependencies, maxEvents int) func() {
	log := logger.Get().Named("status")
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewStatusHandler(ctx, deps, maxEvents),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting status API", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "status API failed", logger.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "status API shutdown failed", logger.Error(err))
		}
	}
}
