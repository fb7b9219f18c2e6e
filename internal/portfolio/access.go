// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"fmt"

	"folio/internal/models"
)

// Filter removes protected archives the viewer is not allowed to see.
type Filter struct {
	archives ArchiveStore
}

// NewFilter creates a Filter backed by the given archive store.
func NewFilter(archives ArchiveStore) *Filter {
	return &Filter{archives: archives}
}

// SortOutProtected returns the subset of archiveIDs visible to viewer.
//
// Empty input is returned as is. The result follows the order in which the
// store returned the archives, not the input order; ids without a record
// are dropped.
func (f *Filter) SortOutProtected(ctx context.Context, archiveIDs []int64, viewer models.Viewer) ([]int64, error) {
	visible, _, err := f.Partition(ctx, archiveIDs, viewer)
	return visible, err
}

// Partition works like SortOutProtected and also reports how many existing
// archives were withheld from viewer. Ids without a record count as
// neither visible nor hidden.
func (f *Filter) Partition(ctx context.Context, archiveIDs []int64, viewer models.Viewer) (visible []int64, hidden int, err error) {
	if len(archiveIDs) == 0 {
		return archiveIDs, 0, nil
	}

	archives, err := f.archives.FindMultipleByIDs(ctx, archiveIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("sort out protected archives: %w", err)
	}

	requested := make(map[int64]struct{}, len(archiveIDs))
	for _, id := range archiveIDs {
		requested[id] = struct{}{}
	}

	visible = make([]int64, 0, len(archives))
	for i := range archives {
		a := &archives[i]
		if _, ok := requested[a.ID]; !ok {
			continue
		}
		if a.Protected && !canSee(a, viewer) {
			hidden++
			continue
		}
		visible = append(visible, a.ID)
	}
	return visible, hidden, nil
}

func canSee(a *models.Archive, viewer models.Viewer) bool {
	if !viewer.LoggedIn || !viewer.HasGroups() {
		return false
	}
	return a.AllowsAny(viewer.Groups)
}
