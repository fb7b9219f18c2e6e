// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"folio/internal/models"
)

// FileStore reads the file registry.
type FileStore struct {
	db *sqlx.DB
}

// NewFileStore creates a new FileStore.
func NewFileStore(db *sqlx.DB) *FileStore {
	return &FileStore{db: db}
}

const fileColumns = `uuid, path, width, height, alt_text, created_at`

// FindByUUID retrieves a file entry. Returns nil if not found.
func (s *FileStore) FindByUUID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var f models.File
	err := s.db.GetContext(ctx, &f, `SELECT `+fileColumns+` FROM files WHERE uuid = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find file by uuid: %w", err)
	}
	return &f, nil
}

// FindMultipleByUUIDs returns the entries for ids in one query. Unknown ids
// are skipped.
func (s *FileStore) FindMultipleByUUIDs(ctx context.Context, ids []uuid.UUID) ([]models.File, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	var out []models.File
	if err := s.db.SelectContext(ctx, &out, `
		SELECT `+fileColumns+` FROM files WHERE uuid = ANY($1::uuid[])
	`, pq.Array(keys)); err != nil {
		return nil, fmt.Errorf("find files by uuids: %w", err)
	}
	return out, nil
}
