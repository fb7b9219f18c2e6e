// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"folio/internal/models"
)

// ContentBlockStore reads the body blocks of portfolio items.
type ContentBlockStore struct {
	db *sqlx.DB
}

// NewContentBlockStore creates a new ContentBlockStore.
func NewContentBlockStore(db *sqlx.DB) *ContentBlockStore {
	return &ContentBlockStore{db: db}
}

// FindPublishedByItem returns the published blocks of an item in sorting order.
func (s *ContentBlockStore) FindPublishedByItem(ctx context.Context, itemID int64) ([]models.ContentBlock, error) {
	var out []models.ContentBlock
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, item_id, type, headline, body, css_class, sorting, published
		FROM content_blocks
		WHERE item_id = $1 AND published
		ORDER BY sorting, id
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("find content blocks by item: %w", err)
	}
	return out, nil
}
