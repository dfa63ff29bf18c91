// main is the entry point of the library API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, optional YAML file, environment)
//  2. Initialise the logger
//  3. Open the database and create the tables if needed
//  4. Serve HTTP until SIGINT or SIGTERM
//  5. Shut down gracefully, then close the database
//
// RUNNING THE SERVER (from the repository root, so storage/ resolves):
//
//	go run ./cmd/library-api --config=config/local.yaml
//
// or, with the environment only:
//
//	DATABASE_URL=storage/library.db go run ./cmd/library-api
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/app"
	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup runs before
// main exits.
func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		log.Printf("cannot load config: %s", err)
		return 1
	}

	logg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Printf("cannot initialise logger: %s", err)
		return 1
	}
	defer func() { _ = logg.Sync() }()

	logg.Info("starting library-api", zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logg)
	if err != nil {
		logg.Error("application failed to initialise", zap.Error(err))
		return 1
	}

	if err := a.Run(ctx); err != nil {
		logg.Error("application exited with error", zap.Error(err))
		return 1
	}
	return 0
}
