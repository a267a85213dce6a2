// @title         AI Detector API
// @version       1.0
// @description   Scores text for likely AI authorship and meters usage per account per day

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aidetector/internal/modkit/repokit"
	"aidetector/internal/platform/config"
	"aidetector/internal/platform/logger"
	"aidetector/internal/platform/metrics"
	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/platform/net/middleware"
	"aidetector/internal/platform/store"

	"aidetector/internal/services/api"

	"github.com/go-chi/chi/v5"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "aidetector", "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	m := metrics.New()

	// http server (reads CORE_API_PORT and timeouts)
	srv := phttp.NewServer(apiCfg, func(mux *chi.Mux) {
		mux.Use(middleware.Defaults()...)
		mux.Use(middleware.Heartbeat("/health"))
		mux.Handle("/metrics", m.Handler())
	})

	app := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Metrics:        m,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if err := app.Migrate(ctx); err != nil {
		l.Panic().Err(err).Msg("schema migration failed")
	}
	go app.Run(ctx)

	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second)); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		return
	}
	l.Info().Msg("bye")
}
