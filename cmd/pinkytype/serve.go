package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/pinkytype/internal/config"
	"github.com/verte-zerg/pinkytype/internal/logging"
	"github.com/verte-zerg/pinkytype/internal/server"
	"github.com/verte-zerg/pinkytype/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the leaderboard HTTP API on the local database",
		Long: `Run the leaderboard HTTP API backed by the local SQLite database.

Settings come from the environment:
  PINKYTYPE_HTTP_ADDR   listen address (default :8080)
  PINKYTYPE_DB_PATH     database path (default under XDG data home)
  PINKYTYPE_LOG_LEVEL   debug, info, warn or error (default info)`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	logger.Info("opened sqlite", "path", cfg.DBPath)

	srv := server.New(cfg.HTTPAddr, logger, st, st)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}
