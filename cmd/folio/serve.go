// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/blocks"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/engine"
	"folio/internal/figure"
	"folio/internal/handlers"
	"folio/internal/i18n"
	"folio/internal/metrics"
	"folio/internal/models"
	"folio/internal/portfolio"
	"folio/internal/router"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(cmd.Context(), db); err != nil {
			return err
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer valkeyClient.Close()

	// In non-development environments session cookies are HTTPS-only.
	sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())

	files, imgOrigins, err := openStorage(cfg)
	if err != nil {
		return err
	}

	lang, err := i18n.Default(cfg.Portfolio.Language)
	if err != nil {
		return fmt.Errorf("load phrases: %w", err)
	}

	presets, err := loadImagePresets(cmd.Context(), store.NewImageSizeStore(db), cfg.Portfolio.ImageSize())
	if err != nil {
		return err
	}

	archiveStore := store.NewArchiveStore(db)
	templateStore := store.NewTemplateStore(db)
	m := metrics.New()

	deps := portfolio.Deps{
		Archives:   archiveStore,
		Categories: store.NewCategoryStore(db),
		Blocks:     store.NewContentBlockStore(db),
		Files:      store.NewFileStore(db),
		Storage:    files,
		Engine:     engine.New(templateStore),
		Lang:       lang,
		BlockHTML:  blocks.New(),
		Images:     figure.NewComposer(files, presets),
	}

	listings := cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)
	portfolioHandlers := handlers.NewPortfolio(deps, store.NewItemStore(db), archiveStore, listings, lang, m, handlers.PortfolioConfig{
		Page: portfolio.PageContext{
			DateFormat:   cfg.Portfolio.DateFormat,
			OutputFormat: cfg.Portfolio.OutputFormat,
			Language:     cfg.Portfolio.Language,
		},
		ItemTemplate: cfg.Portfolio.Template,
		ImgSize:      cfg.Portfolio.ImageSize(),
		ReaderPath:   cfg.Portfolio.ReaderPath,
		PerPage:      cfg.Portfolio.PerPage,
	})

	// Files are streamed by the server only for the local backend; S3
	// images are linked to the bucket or CDN directly.
	var fileHandlers *handlers.Files
	if local, ok := files.(*storage.Local); ok {
		fileHandlers = handlers.NewFiles(local)
	}

	r := router.New(router.Options{
		Sessions:   sessionStore,
		Metrics:    m,
		ImgOrigins: imgOrigins,
	}, portfolioHandlers, fileHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// presetSource lists the named image size presets.
type presetSource interface {
	Presets(ctx context.Context) (map[string]models.ImageSize, error)
}

// loadImagePresets reads the image size presets and makes sure a preset
// chosen as the listing default exists.
func loadImagePresets(ctx context.Context, src presetSource, def models.ImageSize) (map[string]models.ImageSize, error) {
	presets, err := src.Presets(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := strconv.Atoi(def.Mode); err == nil {
		if _, ok := presets[def.Mode]; !ok {
			return nil, fmt.Errorf("PORTFOLIO_IMG_SIZE selects unknown image size preset %s", def.Mode)
		}
	}
	slog.Info("image size presets loaded", "count", len(presets))
	return presets, nil
}

// openStorage returns the configured file backend and the extra image
// origins the content security policy must allow.
func openStorage(c *config.Config) (storage.Backend, []string, error) {
	cfg := c.Storage
	if c.UseS3() {
		s3, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return nil, nil, fmt.Errorf("init s3 storage: %w", err)
		}
		if s3 != nil {
			origin := cfg.S3PublicURL
			if origin == "" {
				origin = cfg.S3Endpoint
			}
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
			return s3, []string{origin}, nil
		}
		slog.Warn("s3 credentials missing, falling back to local files", "root", cfg.FilesRoot)
	}
	return storage.NewLocal(cfg.FilesRoot, cfg.FilesURL), nil, nil
}
