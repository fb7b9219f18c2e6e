// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File is a registry entry for a file kept in the file storage. The
// registry row can outlive the stored object, so callers check existence
// before using Path.
type File struct {
	UUID      uuid.UUID `json:"uuid" db:"uuid"`
	Path      string    `json:"path" db:"path"` // storage-relative, e.g. "files/portfolio/a.jpg"
	Width     int       `json:"width" db:"width"`
	Height    int       `json:"height" db:"height"`
	AltText   string    `json:"alt_text" db:"alt_text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Name returns the base name of the file.
func (f *File) Name() string {
	return path.Base(f.Path)
}

// Extension returns the lower-case extension without the leading dot.
func (f *File) Extension() string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(f.Path)), ".")
}

// IsImage returns true if the extension is a web image format.
func (f *File) IsImage() bool {
	switch f.Extension() {
	case "jpg", "jpeg", "png", "gif", "webp", "avif", "svg":
		return true
	}
	return false
}
