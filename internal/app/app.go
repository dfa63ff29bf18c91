// Package app assembles the service from its configuration and runs it
// until the process is asked to stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/http/router"
	"github.com/aanand-mishra/library-api/internal/metrics"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/storage/sqlstore"
)

// App owns the HTTP server and the storage connection pool.
type App struct {
	logger *zap.Logger
	config *config.Config
	server *http.Server
	store  storage.Storage
}

// New opens the storage and builds the HTTP server. The caller must
// call Run, which closes the storage on return.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	store, err := sqlstore.New(ctx, cfg.Storage, log, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise storage: %w", err)
	}
	log.Info("storage initialised", zap.String("storage.driver", cfg.Storage.Driver))

	return NewWithStorage(cfg, log, store, reg), nil
}

// NewWithStorage builds an App around an already opened storage.
func NewWithStorage(cfg *config.Config, log *zap.Logger, store storage.Storage, reg *metrics.Registry) *App {
	handler := router.New(router.Options{
		Store:          store,
		Logger:         log,
		Metrics:        reg,
		MetricsPath:    cfg.Metrics.Path,
		RequestTimeout: cfg.HTTPServer.RequestTimeout,
	})

	return &App{
		logger: log,
		config: cfg,
		store:  store,
		server: &http.Server{
			Addr:           cfg.HTTPServer.Addr,
			Handler:        handler,
			ReadTimeout:    cfg.HTTPServer.ReadTimeout,
			WriteTimeout:   cfg.HTTPServer.WriteTimeout,
			IdleTimeout:    cfg.HTTPServer.IdleTimeout,
			MaxHeaderBytes: 1 << 20,
		},
	}
}

// Handler exposes the fully wired HTTP handler.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Run serves until ctx is cancelled or the server fails, then shuts the
// server down gracefully and closes the storage.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error("failed to close storage", zap.Error(err))
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(app.serve)
	g.Go(app.stop(ctx, gCtx))

	err := g.Wait()
	app.logger.Info("api server stopped", zap.String("app.addr", app.config.HTTPServer.Addr), zap.Error(err))
	return err
}

func (app *App) serve() error {
	app.logger.Info("api server starting", zap.String("app.addr", app.config.HTTPServer.Addr))
	err := app.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// stop waits for the group context and triggers the graceful shutdown,
// falling back to a hard close if it does not complete in time. It
// always returns nil so the group reports only the serve error.
func (app *App) stop(ctx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if ctx.Err() != nil {
			app.logger.Info("api server stopping. reason: requested to stop")
		} else {
			app.logger.Info("api server stopping. reason: errored at running")
		}

		sCtx, cancel := context.WithTimeout(context.Background(), app.config.HTTPServer.ShutdownTimeout)
		defer cancel()

		err := app.server.Shutdown(sCtx)
		switch {
		case err == nil:
			app.logger.Info("api server graceful shutdown succeeded")
		case errors.Is(err, context.DeadlineExceeded):
			app.logger.Info("api server graceful shutdown timed out")
		default:
			app.logger.Info("api server graceful shutdown failed", zap.Error(err))
		}

		if err != nil {
			app.logger.Info("api server going to force shutdown", zap.Error(app.server.Close()))
		}
		return nil
	}
}
