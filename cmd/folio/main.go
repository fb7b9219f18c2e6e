// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point of the folio portfolio front end. The
// serve command loads configuration, connects to services, sets up
// routing and starts the HTTP server with graceful shutdown support. The
// remaining commands are maintenance helpers.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"folio/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio listings and reader pages backed by PostgreSQL",
	Long: `folio renders portfolio archives as paginated listings and item reader
pages. Archives may be protected for member groups; sessions are read from
Valkey and item images from local disk or an S3-compatible bucket.

Commands:
  folio serve              Start the HTTP server
  folio migrate            Apply pending database migrations
  folio migrate status     Show the migration state
  folio seed               Insert the demo portfolio
  folio session --group 1  Create a member session for testing
  folio templates          List built-in templates and overrides`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and installs the structured logger: JSON
// in production, text in development. Logs go to stderr so command output
// stays clean on stdout.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return nil, err
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())
	return cfg, nil
}
