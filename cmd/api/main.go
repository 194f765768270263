// Package main is the entry point for the dashboard API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/safari-hire/dashboard/internal/config"
	"github.com/safari-hire/dashboard/internal/handler"
	"github.com/safari-hire/dashboard/internal/middleware"
	"github.com/safari-hire/dashboard/internal/pkg/clock"
	"github.com/safari-hire/dashboard/internal/repo"
	"github.com/safari-hire/dashboard/internal/service"
)

// shutdownTimeout is how long in-flight requests get to finish on stop.
const shutdownTimeout = 15 * time.Second

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newKV,
			repo.NewAdapter,
			clock.NewRealClock,
			newStore,
			newAuthGate,
			newServer,
			newRouter,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
		fx.StopTimeout(shutdownTimeout),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newLogger returns the JSON structured logger at the configured level and
// installs it as the default.
func newLogger(cfg config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return logger
}

func newStore(a *repo.Adapter, clk clock.Clock, log *slog.Logger) *service.Store {
	return service.NewStore(context.Background(), a, clk, nil, log)
}

func newAuthGate(a *repo.Adapter, log *slog.Logger) *service.AuthGate {
	return service.NewAuthGate(context.Background(), a, service.DefaultRoster(), log)
}

func newServer(cfg config.Config, store *service.Store, gate *service.AuthGate, clk clock.Clock) *handler.Server {
	return handler.NewServer(store, gate, service.NewDashboard(store), service.NewExportService(store), handler.Options{
		Clock:      clk,
		LoginDelay: cfg.LoginDelay,
	})
}

// newRouter applies the middleware chain in order: RequestID, RealIP,
// request logging, panic recovery, CORS, body size limit. The API routes
// are mounted last.
func newRouter(cfg config.Config, log *slog.Logger, srv *handler.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", srv.Routes())
	return r
}

// startServer binds the listener on start so a port conflict fails startup,
// and drains in-flight requests on stop.
func startServer(lc fx.Lifecycle, sd fx.Shutdowner, cfg config.Config, log *slog.Logger, h http.Handler) {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := new(net.ListenConfig).Listen(ctx, "tcp", srv.Addr)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", srv.Addr)
			}
			log.Info("server starting", "addr", srv.Addr, "store", cfg.Store.Backend)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}
