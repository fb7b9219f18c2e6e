// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure: in-memory stores
// behind the real template engine, phrase catalog, block renderer and
// image composer, plus a chi router with the portfolio routes mounted.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"folio/internal/blocks"
	"folio/internal/engine"
	"folio/internal/figure"
	"folio/internal/i18n"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/portfolio"
	"folio/internal/storage"
)

type memArchives struct {
	byID  map[int64]models.Archive
	order []int64
	err   error
}

func (m *memArchives) FindMultipleByIDs(_ context.Context, ids []int64) ([]models.Archive, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Archive
	for _, id := range m.order {
		if slices.Contains(ids, id) {
			out = append(out, m.byID[id])
		}
	}
	return out, nil
}

func (m *memArchives) FindByID(_ context.Context, id int64) (*models.Archive, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memArchives) ListIDs(_ context.Context, unprotectedOnly bool) ([]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	var ids []int64
	for _, id := range m.order {
		if unprotectedOnly && m.byID[id].Protected {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// memItems holds published items, newest first.
type memItems struct {
	items     []*models.Item
	err       error
	listCalls int
}

func (m *memItems) inArchives(ids []int64) []*models.Item {
	var out []*models.Item
	for _, it := range m.items {
		if slices.Contains(ids, it.ArchiveID) {
			out = append(out, it)
		}
	}
	return out
}

func (m *memItems) ListPublishedByArchives(_ context.Context, ids []int64, limit, offset int) ([]*models.Item, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := m.inArchives(ids)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memItems) CountPublishedByArchives(_ context.Context, ids []int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.inArchives(ids)), nil
}

func (m *memItems) FindPublishedByAlias(_ context.Context, alias string) (*models.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, it := range m.items {
		if it.Alias == alias {
			return it, nil
		}
	}
	return nil, nil
}

func (m *memItems) FindPublishedByID(_ context.Context, id int64) (*models.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

type memCategories map[int64]models.Category

func (m memCategories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	c, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type memBlocks map[int64][]models.ContentBlock

func (m memBlocks) FindPublishedByItem(_ context.Context, itemID int64) ([]models.ContentBlock, error) {
	return m[itemID], nil
}

type memFiles map[uuid.UUID]models.File

func (m memFiles) FindByUUID(_ context.Context, id uuid.UUID) (*models.File, error) {
	f, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (m memFiles) FindMultipleByUUIDs(_ context.Context, ids []uuid.UUID) ([]models.File, error) {
	var out []models.File
	for _, id := range ids {
		if f, ok := m[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

type memListingCache struct {
	entries map[string][]byte
	hits    int
	misses  int
}

func (c *memListingCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *memListingCache) Set(_ context.Context, key string, html []byte) {
	c.entries[key] = html
}

var (
	harbourImage = uuid.MustParse("6f1c1f8e-2a51-4d6e-9a0b-1b2c3d4e5f60")
	errStore     = errors.New("connection reset")
)

// testEnv holds the handlers under test and the stores behind them.
type testEnv struct {
	Archives  *memArchives
	Items     *memItems
	Cache     *memListingCache
	Storage   *storage.Local
	Portfolio *Portfolio
	Files     *Files
	Metrics   *metrics.Collector
	Router    chi.Router
}

type envOption func(*PortfolioConfig)

func withPerPage(n int) envOption {
	return func(c *PortfolioConfig) { c.PerPage = n }
}

func withDateFormat(layout string) envOption {
	return func(c *PortfolioConfig) { c.Page.DateFormat = layout }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	archives := &memArchives{
		byID: map[int64]models.Archive{
			1: {ID: 1, Title: "Work", Alias: "work", ReaderPath: "/portfolio"},
			2: {ID: 2, Title: "Client previews", Alias: "clients", Protected: true, Groups: []int64{1}, ReaderPath: "/portfolio"},
		},
		order: []int64{1, 2},
	}

	items := &memItems{items: []*models.Item{
		{
			ID: 1, ArchiveID: 1, Alias: "harbour-festival", Headline: "Harbour Festival",
			Teaser: "<p>Identity for the festival.</p>", Date: time.Date(2024, 2, 3, 14, 5, 9, 0, time.UTC),
			Categories: []int64{1, 2}, Source: models.SourceDefault,
			AddImage: true, SingleSRC: harbourImage, Size: models.ImageSize{Width: 480, Height: 320, Mode: figure.ModeCrop},
			Published: true,
		},
		{
			ID: 2, ArchiveID: 1, Headline: "City Guide", Teaser: "<p>Questions: guide@example.com</p>",
			Date: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), Categories: []int64{2},
			Source: models.SourceDefault, Published: true,
		},
		{
			ID: 3, ArchiveID: 1, Headline: "Open Data Portal", Date: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			Source: models.SourceExternal, URL: "https://example.com/?lang=en&view=map", Target: true, Published: true,
		},
		{
			ID: 4, ArchiveID: 2, Alias: "preview-rebrand", Headline: "Rebrand (preview)",
			Date: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), Source: models.SourceDefault, Published: true,
		},
	}}

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/files/portfolio/harbour.jpg", []byte("\xff\xd8\xff jpeg"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	local := storage.NewLocalFs(fs, "")

	lang, err := i18n.Default("en")
	if err != nil {
		t.Fatalf("i18n.Default: %v", err)
	}

	deps := portfolio.Deps{
		Archives:   archives,
		Categories: memCategories{1: {ID: 1, Alias: "web", Title: "Web"}, 2: {ID: 2, Alias: "print", Title: "Print & Packaging"}},
		Blocks: memBlocks{1: {
			{ID: 1, ItemID: 1, Type: models.BlockTypeMarkdown, Body: "One **coherent** look.", Published: true},
		}},
		Files:     memFiles{harbourImage: {UUID: harbourImage, Path: "files/portfolio/harbour.jpg", Width: 1600, Height: 1067, AltText: "Harbour at dusk"}},
		Storage:   local,
		Engine:    engine.New(nil),
		Lang:      lang,
		BlockHTML: blocks.New(),
		Images:    figure.NewComposer(local, nil),
	}

	cfg := PortfolioConfig{
		Page:       portfolio.PageContext{DateFormat: "d.m.Y", OutputFormat: portfolio.OutputHTML5, Language: "en"},
		ReaderPath: "/portfolio",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	listings := &memListingCache{entries: map[string][]byte{}}
	m := metrics.New()
	p := NewPortfolio(deps, items, archives, listings, lang, m, cfg)
	files := NewFiles(local)

	r := chi.NewRouter()
	r.Get("/portfolio", p.List)
	r.Get("/portfolio/sitemap.txt", p.Sitemap)
	r.Get("/portfolio/{alias}", p.Reader)
	r.Get("/files/*", files.Serve)

	return &testEnv{
		Archives:  archives,
		Items:     items,
		Cache:     listings,
		Storage:   local,
		Portfolio: p,
		Files:     files,
		Metrics:   m,
		Router:    r,
	}
}

// asMember returns a copy of r whose viewer is a logged-in member of groups.
func asMember(r *http.Request, groups ...int64) *http.Request {
	v := models.Viewer{LoggedIn: true, MemberID: 7, Groups: groups}
	return r.WithContext(middleware.WithViewer(r.Context(), v))
}
