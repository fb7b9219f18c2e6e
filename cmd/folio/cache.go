// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"folio/internal/cache"
	"folio/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the rendered listing cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Remove every cached listing from Valkey",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		lc, closeCache, err := openListingCache(cfg)
		if err != nil {
			return err
		}
		defer closeCache()
		return flushListings(cmd.Context(), lc, cmd.OutOrStdout())
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(cacheCmd)
}

type listingFlusher interface {
	InvalidateAll(ctx context.Context) int
}

func flushListings(ctx context.Context, lc listingFlusher, w io.Writer) error {
	n := lc.InvalidateAll(ctx)
	_, err := fmt.Fprintf(w, "removed %d cached listings\n", n)
	return err
}

// openListingCache connects to Valkey and returns the listing cache with a
// function that closes the connection.
func openListingCache(cfg *config.Config) (*cache.ListingCache, func(), error) {
	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("connect valkey: %w", err)
	}
	return cache.NewListingCache(client, cache.DefaultListingTTL), func() { client.Close() }, nil
}
