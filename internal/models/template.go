// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is a site-specific override of one of the built-in portfolio
// templates. Templates use Go html/template syntax and are compiled at
// runtime by the rendering engine.
type Template struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"` // e.g. "portfolio_short"
	HTMLContent string    `json:"html_content" db:"html_content"`
	Version     int       `json:"version" db:"version"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
