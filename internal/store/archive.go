// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL persistence of portfolio data.
// Lookups by key return (nil, nil) when the row does not exist.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"folio/internal/models"
)

// ArchiveStore reads portfolio archives.
type ArchiveStore struct {
	db *sqlx.DB
}

// NewArchiveStore creates a new ArchiveStore.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

const archiveColumns = `id, title, alias, protected, groups, reader_path, created_at, updated_at`

type archiveRow struct {
	ID         int64         `db:"id"`
	Title      string        `db:"title"`
	Alias      string        `db:"alias"`
	Protected  bool          `db:"protected"`
	Groups     pq.Int64Array `db:"groups"`
	ReaderPath string        `db:"reader_path"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func (r archiveRow) model() models.Archive {
	return models.Archive{
		ID:         r.ID,
		Title:      r.Title,
		Alias:      r.Alias,
		Protected:  r.Protected,
		Groups:     []int64(r.Groups),
		ReaderPath: r.ReaderPath,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FindMultipleByIDs returns the archives with the given ids in the order
// of ids. Unknown ids are skipped.
func (s *ArchiveStore) FindMultipleByIDs(ctx context.Context, ids []int64) ([]models.Archive, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []archiveRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+archiveColumns+`
		FROM portfolio_archives
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("find archives by ids: %w", err)
	}
	out := make([]models.Archive, len(rows))
	for i, r := range rows {
		out[i] = r.model()
	}
	return out, nil
}

// FindByID retrieves an archive. Returns nil if not found.
func (s *ArchiveStore) FindByID(ctx context.Context, id int64) (*models.Archive, error) {
	var r archiveRow
	err := s.db.GetContext(ctx, &r, `SELECT `+archiveColumns+` FROM portfolio_archives WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find archive by id: %w", err)
	}
	a := r.model()
	return &a, nil
}

// ListIDs returns the ids of all archives, optionally only unprotected ones.
func (s *ArchiveStore) ListIDs(ctx context.Context, unprotectedOnly bool) ([]int64, error) {
	var ids []int64
	err := s.db.SelectContext(ctx, &ids, `
		SELECT id FROM portfolio_archives
		WHERE NOT (protected AND $1)
		ORDER BY title
	`, unprotectedOnly)
	if err != nil {
		return nil, fmt.Errorf("list archive ids: %w", err)
	}
	return ids, nil
}
