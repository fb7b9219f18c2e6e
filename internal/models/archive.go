// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Archive groups portfolio items. A protected archive is only visible to
// logged-in members of at least one of its Groups.
type Archive struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Alias      string    `json:"alias"`
	Protected  bool      `json:"protected"`
	Groups     []int64   `json:"groups"`
	ReaderPath string    `json:"reader_path"` // Path of the reader page, e.g. "/portfolio"
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AllowsAny reports whether any of the given group IDs is in the archive's
// allowed set.
func (a *Archive) AllowsAny(groups []int64) bool {
	if len(a.Groups) == 0 || len(groups) == 0 {
		return false
	}
	allowed := make(map[int64]struct{}, len(a.Groups))
	for _, g := range a.Groups {
		allowed[g] = struct{}{}
	}
	for _, g := range groups {
		if _, ok := allowed[g]; ok {
			return true
		}
	}
	return false
}
