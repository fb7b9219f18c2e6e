// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Seed populates an empty database with a small portfolio for local
// development: one public archive, one archive protected for member
// group 1, two categories and a handful of items.
func Seed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM portfolio_archives"); err != nil {
		return fmt.Errorf("seed check archives: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var workID, clientsID int64
	if err := tx.GetContext(ctx, &workID, `
		INSERT INTO portfolio_archives (title, alias, reader_path)
		VALUES ('Work', 'work', '/portfolio') RETURNING id
	`); err != nil {
		return fmt.Errorf("seed archive work: %w", err)
	}
	if err := tx.GetContext(ctx, &clientsID, `
		INSERT INTO portfolio_archives (title, alias, protected, groups, reader_path)
		VALUES ('Client previews', 'clients', TRUE, $1, '/portfolio') RETURNING id
	`, pq.Array([]int64{1})); err != nil {
		return fmt.Errorf("seed archive clients: %w", err)
	}

	var webID, printID int64
	if err := tx.GetContext(ctx, &webID, `INSERT INTO portfolio_categories (alias, title) VALUES ('web', 'Web') RETURNING id`); err != nil {
		return fmt.Errorf("seed category web: %w", err)
	}
	if err := tx.GetContext(ctx, &printID, `INSERT INTO portfolio_categories (alias, title) VALUES ('print', 'Print & Packaging') RETURNING id`); err != nil {
		return fmt.Errorf("seed category print: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO image_sizes (name, width, height, resize_mode)
		VALUES ('Teaser', 480, 320, 'crop'), ('Reader', 1200, 0, 'proportional')
	`); err != nil {
		return fmt.Errorf("seed image sizes: %w", err)
	}

	var fileID string
	if err := tx.GetContext(ctx, &fileID, `
		INSERT INTO files (path, width, height, alt_text)
		VALUES ('files/portfolio/harbour.jpg', 1600, 1067, 'Harbour at dusk') RETURNING uuid
	`); err != nil {
		return fmt.Errorf("seed file: %w", err)
	}

	items := []struct {
		archive    int64
		alias      string
		headline   string
		teaser     string
		categories []int64
		source     string
		url        string
		image      bool
	}{
		{workID, "harbour-festival", "Harbour Festival", "<p>Identity and website for the <b>harbour festival</b>.</p>", []int64{webID, printID}, "default", "", true},
		{workID, "city-guide", "City Guide", "<p>A printed guide. Questions: guide@example.com</p>", []int64{printID}, "default", "", false},
		{workID, "", "Open Data Portal", "", []int64{webID}, "external", "https://example.com/?lang=en&view=map", false},
		{clientsID, "preview-rebrand", "Rebrand (preview)", "<p>Work in progress.</p>", nil, "default", "", false},
	}

	for i, it := range items {
		var src any
		if it.image {
			src = fileID
		}
		var itemID int64
		err := tx.GetContext(ctx, &itemID, `
			INSERT INTO portfolio_items
				(archive_id, alias, headline, teaser, date, categories, source, url, target,
				 add_image, single_src, size_width, size_height, size_mode, published)
			VALUES ($1, $2, $3, $4, NOW() - make_interval(days => $5), $6, $7, $8, $9, $10, $11, 480, 320, 'crop', TRUE)
			RETURNING id
		`, it.archive, it.alias, it.headline, it.teaser, i*7, pq.Array(it.categories), it.source, it.url,
			it.source == "external", it.image, src)
		if err != nil {
			return fmt.Errorf("seed item %q: %w", it.headline, err)
		}
		if it.source != "default" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO content_blocks (item_id, type, headline, body, sorting)
			VALUES ($1, 'markdown', 'Brief', $2, 1), ($1, 'text', '', $3, 2)
		`, itemID, "The client asked for **one** coherent look across print and web.", "<p>Delivered in 2024.</p>"); err != nil {
			return fmt.Errorf("seed blocks of %q: %w", it.headline, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo portfolio", "archives", 2, "items", len(items))
	return nil
}
