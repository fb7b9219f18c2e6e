// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category is a tag that portfolio items can reference. Items keep an
// ordered list of category IDs.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Alias     string    `json:"alias" db:"alias"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
