package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"supstonad/internal/platform/config"
	"supstonad/internal/platform/httpserver"
	"supstonad/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

// main wires the dependencies, serves the API and keeps the background
// workers (outbox relay, audit consumer) on the same lifecycle as the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("supstonad stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	srv := httpserver.New(cfg.Server.Addr, otelhttp.NewHandler(app.router(), "supstonad"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting supstonad", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if app.relay != nil {
		g.Go(func() error { return app.relay.Run(gctx) })
	}
	if app.auditConsumer != nil {
		g.Go(func() error { return app.auditConsumer.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
