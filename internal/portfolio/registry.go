// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/models"
)

// FileRegistry memoizes file lookups for one render. Preload fetches a
// batch in a single query so that later Find calls hit memory; ids the
// store did not return are remembered as missing.
type FileRegistry struct {
	store   FileStore
	entries map[uuid.UUID]*models.File
}

// NewFileRegistry creates an empty registry over store.
func NewFileRegistry(store FileStore) *FileRegistry {
	return &FileRegistry{store: store, entries: make(map[uuid.UUID]*models.File)}
}

// Preload loads every id not yet known with one store call.
func (r *FileRegistry) Preload(ctx context.Context, ids []uuid.UUID) error {
	var pending []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := r.entries[id]; !ok {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	files, err := r.store.FindMultipleByUUIDs(ctx, pending)
	if err != nil {
		return fmt.Errorf("preload files: %w", err)
	}
	for _, id := range pending {
		r.entries[id] = nil
	}
	for i := range files {
		f := files[i]
		r.entries[f.UUID] = &f
	}
	return nil
}

// Find returns the file for id, or nil when it does not exist.
func (r *FileRegistry) Find(ctx context.Context, id uuid.UUID) (*models.File, error) {
	if f, ok := r.entries[id]; ok {
		return f, nil
	}
	f, err := r.store.FindByUUID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find file %s: %w", id, err)
	}
	r.entries[id] = f
	return f, nil
}
