// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BlockType selects how a content block body is rendered.
type BlockType string

const (
	BlockTypeText     BlockType = "text"
	BlockTypeMarkdown BlockType = "markdown"
	BlockTypeHeadline BlockType = "headline"
	BlockTypeHTML     BlockType = "html"
)

// ContentBlock is one element of an item's body. Blocks are rendered in
// Sorting order and only when published.
type ContentBlock struct {
	ID        int64     `json:"id" db:"id"`
	ItemID    int64     `json:"pid" db:"item_id"`
	Type      BlockType `json:"type" db:"type"`
	Headline  string    `json:"headline" db:"headline"`
	Body      string    `json:"body" db:"body"`
	CSSClass  string    `json:"css_class" db:"css_class"`
	Sorting   int       `json:"sorting" db:"sorting"`
	Published bool      `json:"published" db:"published"`
}
