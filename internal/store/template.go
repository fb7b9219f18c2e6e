// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"folio/internal/models"
)

// TemplateStore reads template overrides.
type TemplateStore struct {
	db *sqlx.DB
}

// NewTemplateStore creates a new TemplateStore.
func NewTemplateStore(db *sqlx.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `id, name, html_content, version, is_active, created_at, updated_at`

// FindActiveByName returns the active override for a template name.
// Returns nil if the built-in template is in use.
func (s *TemplateStore) FindActiveByName(ctx context.Context, name string) (*models.Template, error) {
	var t models.Template
	err := s.db.GetContext(ctx, &t, `
		SELECT `+templateColumns+` FROM templates
		WHERE name = $1 AND is_active
		LIMIT 1
	`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active template: %w", err)
	}
	return &t, nil
}

// List returns all template overrides ordered by name and version.
func (s *TemplateStore) List(ctx context.Context) ([]models.Template, error) {
	var out []models.Template
	if err := s.db.SelectContext(ctx, &out, `
		SELECT `+templateColumns+` FROM templates ORDER BY name, version DESC
	`); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}
