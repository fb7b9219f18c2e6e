// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"folio/internal/models"
)

// ImageSizeStore reads the named image size presets.
type ImageSizeStore struct {
	db *sqlx.DB
}

// NewImageSizeStore creates a new ImageSizeStore.
func NewImageSizeStore(db *sqlx.DB) *ImageSizeStore {
	return &ImageSizeStore{db: db}
}

type imageSizeRow struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Width  int    `db:"width"`
	Height int    `db:"height"`
	Mode   string `db:"resize_mode"`
}

// Presets returns every preset keyed by its id as a decimal string, the
// form in which a numeric size mode refers to it.
func (s *ImageSizeStore) Presets(ctx context.Context) (map[string]models.ImageSize, error) {
	var rows []imageSizeRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, width, height, resize_mode FROM image_sizes ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("list image sizes: %w", err)
	}

	presets := make(map[string]models.ImageSize, len(rows))
	for _, r := range rows {
		presets[strconv.FormatInt(r.ID, 10)] = models.ImageSize{Width: r.Width, Height: r.Height, Mode: r.Mode}
	}
	return presets, nil
}
