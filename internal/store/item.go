// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"folio/internal/models"
)

// ItemStore reads portfolio items.
type ItemStore struct {
	db *sqlx.DB
}

// NewItemStore creates a new ItemStore.
func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, archive_id, alias, headline, teaser, date, categories, source, url, target,
	add_image, single_src, size_width, size_height, size_mode, alt, image_title, image_url,
	fullsize, css_class, published, created_at, updated_at`

type itemRow struct {
	ID         int64         `db:"id"`
	ArchiveID  int64         `db:"archive_id"`
	Alias      string        `db:"alias"`
	Headline   string        `db:"headline"`
	Teaser     string        `db:"teaser"`
	Date       time.Time     `db:"date"`
	Categories pq.Int64Array `db:"categories"`
	Source     string        `db:"source"`
	URL        string        `db:"url"`
	Target     bool          `db:"target"`
	AddImage   bool          `db:"add_image"`
	SingleSRC  uuid.NullUUID `db:"single_src"`
	SizeWidth  int           `db:"size_width"`
	SizeHeight int           `db:"size_height"`
	SizeMode   string        `db:"size_mode"`
	Alt        string        `db:"alt"`
	ImageTitle string        `db:"image_title"`
	ImageURL   string        `db:"image_url"`
	Fullsize   bool          `db:"fullsize"`
	CSSClass   string        `db:"css_class"`
	Published  bool          `db:"published"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func (r itemRow) model() *models.Item {
	it := &models.Item{
		ID:         r.ID,
		ArchiveID:  r.ArchiveID,
		Alias:      r.Alias,
		Headline:   r.Headline,
		Teaser:     r.Teaser,
		Date:       r.Date,
		Categories: []int64(r.Categories),
		Source:     models.SourceKind(r.Source),
		URL:        r.URL,
		Target:     r.Target,
		AddImage:   r.AddImage,
		Size:       models.ImageSize{Width: r.SizeWidth, Height: r.SizeHeight, Mode: r.SizeMode},
		Alt:        r.Alt,
		ImageTitle: r.ImageTitle,
		ImageURL:   r.ImageURL,
		Fullsize:   r.Fullsize,
		CSSClass:   r.CSSClass,
		Published:  r.Published,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.SingleSRC.Valid {
		it.SingleSRC = r.SingleSRC.UUID
	}
	return it
}

func itemModels(rows []itemRow) []*models.Item {
	out := make([]*models.Item, len(rows))
	for i, r := range rows {
		out[i] = r.model()
	}
	return out
}

// ListPublishedByArchives returns published items of the given archives,
// newest first. limit <= 0 means no limit.
func (s *ItemStore) ListPublishedByArchives(ctx context.Context, archiveIDs []int64, limit, offset int) ([]*models.Item, error) {
	if len(archiveIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + itemColumns + `
		FROM portfolio_items
		WHERE archive_id = ANY($1) AND published
		ORDER BY date DESC, id DESC`
	args := []any{pq.Array(archiveIDs)}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, max(offset, 0))
	}

	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list published items: %w", err)
	}
	return itemModels(rows), nil
}

// CountPublishedByArchives returns the number of published items of the
// given archives.
func (s *ItemStore) CountPublishedByArchives(ctx context.Context, archiveIDs []int64) (int, error) {
	if len(archiveIDs) == 0 {
		return 0, nil
	}
	var n int
	if err := s.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM portfolio_items WHERE archive_id = ANY($1) AND published
	`, pq.Array(archiveIDs)); err != nil {
		return 0, fmt.Errorf("count published items: %w", err)
	}
	return n, nil
}

// FindPublishedByAlias retrieves a published item by alias. Returns nil if
// not found.
func (s *ItemStore) FindPublishedByAlias(ctx context.Context, alias string) (*models.Item, error) {
	return s.findOne(ctx, "alias = $1 AND alias <> ''", alias)
}

// FindPublishedByID retrieves a published item by id. Returns nil if not found.
func (s *ItemStore) FindPublishedByID(ctx context.Context, id int64) (*models.Item, error) {
	return s.findOne(ctx, "id = $1", id)
}

func (s *ItemStore) findOne(ctx context.Context, cond string, arg any) (*models.Item, error) {
	var r itemRow
	err := s.db.GetContext(ctx, &r, `SELECT `+itemColumns+` FROM portfolio_items WHERE `+cond+` AND published`, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return r.model(), nil
}
