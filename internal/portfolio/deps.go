// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"

	"github.com/google/uuid"

	"folio/internal/figure"
	"folio/internal/models"
)

// ArchiveStore loads archive records. FindMultipleByIDs returns the
// archives that exist, in the order the backend yields them.
type ArchiveStore interface {
	FindMultipleByIDs(ctx context.Context, ids []int64) ([]models.Archive, error)
	FindByID(ctx context.Context, id int64) (*models.Archive, error)
}

// CategoryStore looks up a category. Returns nil, nil when not found.
type CategoryStore interface {
	FindByID(ctx context.Context, id int64) (*models.Category, error)
}

// ContentBlockStore reads the published body blocks of an item.
type ContentBlockStore interface {
	FindPublishedByItem(ctx context.Context, itemID int64) ([]models.ContentBlock, error)
}

// FileStore resolves file registry entries by UUID.
type FileStore interface {
	FindByUUID(ctx context.Context, id uuid.UUID) (*models.File, error)
	FindMultipleByUUIDs(ctx context.Context, ids []uuid.UUID) ([]models.File, error)
}

// FileChecker reports whether a registry path is physically present.
type FileChecker interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// TemplateEngine binds a model to a named template and returns markup.
type TemplateEngine interface {
	Render(ctx context.Context, name string, data map[string]any) (string, error)
}

// Localizer returns a translated phrase for a key, formatted with args.
type Localizer interface {
	Sprintf(lang, key string, args ...any) string
}

// BlockRenderer turns one content block into HTML.
type BlockRenderer interface {
	Render(block models.ContentBlock) (string, error)
}

// ImageComposer builds the image part of a render model.
type ImageComposer interface {
	Compose(req figure.Request) (*figure.Data, error)
}

// Deps bundles the collaborators a Renderer needs.
type Deps struct {
	Archives   ArchiveStore
	Categories CategoryStore
	Blocks     ContentBlockStore
	Files      FileStore
	Storage    FileChecker
	Engine     TemplateEngine
	Lang       Localizer
	BlockHTML  BlockRenderer
	Images     ImageComposer
}
