// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: withDB(func(_ *cobra.Command, _ *config.Config, db *sqlx.DB) error {
		return database.Migrate(db.DB)
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every migration",
	RunE: withDB(func(_ *cobra.Command, _ *config.Config, db *sqlx.DB) error {
		return database.Status(db.DB)
	}),
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo portfolio into an empty database",
	RunE: withDB(func(cmd *cobra.Command, cfg *config.Config, db *sqlx.DB) error {
		if err := database.Migrate(db.DB); err != nil {
			return err
		}
		if err := database.Seed(cmd.Context(), db); err != nil {
			return err
		}
		// Listings rendered before the seed would hide the new items until
		// they expire.
		lc, closeCache, err := openListingCache(cfg)
		if err != nil {
			slog.Warn("listing cache not flushed after seed", "error", err)
			return nil
		}
		defer closeCache()
		lc.InvalidateAll(cmd.Context())
		return nil
	}),
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

// withDB wraps a command body with configuration loading and a database
// connection that is closed when the body returns.
func withDB(fn func(cmd *cobra.Command, cfg *config.Config, db *sqlx.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		return fn(cmd, cfg, db)
	}
}
