// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SourceKind decides where an item's primary link points.
type SourceKind string

const (
	SourceDefault  SourceKind = "default"
	SourceExternal SourceKind = "external"
)

// ImageSize is an image size override. Mode is either a resize mode such
// as "crop" or "proportional", or the numeric ID of a named size preset.
type ImageSize struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

// IsSet returns true if the size carries any usable override.
func (s ImageSize) IsSet() bool {
	if s.Width > 0 || s.Height > 0 {
		return true
	}
	_, err := strconv.Atoi(s.Mode)
	return err == nil
}

// Item is a single portfolio entry.
type Item struct {
	ID         int64      `json:"id"`
	ArchiveID  int64      `json:"pid"`
	Alias      string     `json:"alias"`
	Headline   string     `json:"headline"`
	Teaser     string     `json:"teaser"`
	Date       time.Time  `json:"date"`
	Categories []int64    `json:"categories"`
	Source     SourceKind `json:"source"`

	// External link, only meaningful when Source is SourceExternal.
	URL    string `json:"url"`
	Target bool   `json:"target"` // open in a new window

	AddImage   bool      `json:"add_image"`
	SingleSRC  uuid.UUID `json:"single_src"` // uuid.Nil when no image is referenced
	Size       ImageSize `json:"size"`
	Alt        string    `json:"alt"`
	ImageTitle string    `json:"image_title"`
	ImageURL   string    `json:"image_url"` // explicit image link target
	Fullsize   bool      `json:"fullsize"`  // open the image in a lightbox

	CSSClass  string    `json:"css_class"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExternal returns true if the item links to an external URL instead of
// the internal reader page.
func (i *Item) IsExternal() bool {
	return i.Source == SourceExternal
}

// HasImage returns true if the item opts into an image and references one.
func (i *Item) HasImage() bool {
	return i.AddImage && i.SingleSRC != uuid.Nil
}
