// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the portfolio front-end modules: the paginated
// list, the reader page of a single item, and the list of searchable
// pages used by sitemap generators.
package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/cache"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/portfolio"
)

const (
	// ListTemplate wraps the rendered items of a list module.
	ListTemplate = "portfolio_list"
	// ReaderTemplate renders the item of a reader page.
	ReaderTemplate = "portfolio_full"

	phraseEmpty = "empty"
)

var (
	errBadArchives = errors.New("invalid archive list")
	errNoSuchPage  = errors.New("page out of range")
)

// ItemStore reads published portfolio items.
type ItemStore interface {
	ListPublishedByArchives(ctx context.Context, archiveIDs []int64, limit, offset int) ([]*models.Item, error)
	CountPublishedByArchives(ctx context.Context, archiveIDs []int64) (int, error)
	FindPublishedByAlias(ctx context.Context, alias string) (*models.Item, error)
	FindPublishedByID(ctx context.Context, id int64) (*models.Item, error)
}

// ArchiveIndex lists archive ids, optionally only the unprotected ones.
type ArchiveIndex interface {
	ListIDs(ctx context.Context, unprotectedOnly bool) ([]int64, error)
}

// ListingCache stores rendered list pages.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// LanguageMatcher picks a supported language for an Accept-Language
// header, or "" if none fits.
type LanguageMatcher interface {
	Match(acceptLanguage string) string
}

// PortfolioConfig holds the module settings shared by all handlers.
type PortfolioConfig struct {
	Page         portfolio.PageContext
	ItemTemplate string // item template of the list module
	ImgSize      models.ImageSize
	ReaderPath   string
	PerPage      int // 0 disables pagination
}

// Portfolio groups the portfolio front-end handlers.
type Portfolio struct {
	deps     portfolio.Deps
	filter   *portfolio.Filter
	items    ItemStore
	archives ArchiveIndex
	listings ListingCache
	langs    LanguageMatcher
	metrics  *metrics.Collector
	cfg      PortfolioConfig
}

// NewPortfolio creates the portfolio handlers. listings, langs and m may
// be nil.
func NewPortfolio(deps portfolio.Deps, items ItemStore, archives ArchiveIndex, listings ListingCache, langs LanguageMatcher, m *metrics.Collector, cfg PortfolioConfig) *Portfolio {
	if cfg.ItemTemplate == "" {
		cfg.ItemTemplate = portfolio.DefaultTemplate
	}
	return &Portfolio{
		deps:     deps,
		filter:   portfolio.NewFilter(deps.Archives),
		items:    items,
		archives: archives,
		listings: listings,
		langs:    langs,
		metrics:  m,
		cfg:      cfg,
	}
}

// List renders one page of the items of the requested archives that the
// viewer may see. GET /portfolio?archives=1,2&page=N. Without archives,
// every archive is requested.
func (p *Portfolio) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	query := r.URL.Query()

	requested, err := p.requestedArchives(ctx, query.Get("archives"))
	if errors.Is(err, errBadArchives) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("list archives failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pageNum, ok := parsePage(query.Get("page"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	visible, hidden, err := p.filter.Partition(ctx, requested, middleware.ViewerFromCtx(ctx))
	if err != nil {
		slog.Error("filter protected archives failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.metrics.ArchivesHidden(hidden)

	page := p.pageContext(r)
	key := cache.ListingKey(page.Language, visible, pageNum)
	if p.listings != nil {
		if cached, ok := p.listings.Get(ctx, key); ok {
			p.metrics.CacheLookup(true)
			writeHTML(w, cached)
			return
		}
		p.metrics.CacheLookup(false)
	}

	out, err := p.renderList(ctx, r.URL.Path, page, visible, pageNum)
	if errors.Is(err, errNoSuchPage) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("render portfolio list failed", "error", err, "archives", visible, "page", pageNum)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.metrics.ObserveRender("list", time.Since(start))

	if p.listings != nil {
		p.listings.Set(ctx, key, out)
	}
	writeHTML(w, out)
}

func (p *Portfolio) renderList(ctx context.Context, path string, page portfolio.PageContext, archives []int64, pageNum int) ([]byte, error) {
	var items []*models.Item
	pages := 1
	if len(archives) > 0 {
		total, err := p.items.CountPublishedByArchives(ctx, archives)
		if err != nil {
			return nil, err
		}

		limit, offset := 0, 0
		if p.cfg.PerPage > 0 {
			pages = max((total+p.cfg.PerPage-1)/p.cfg.PerPage, 1)
			limit = p.cfg.PerPage
			offset = (pageNum - 1) * p.cfg.PerPage
		}
		if pageNum > pages {
			return nil, errNoSuchPage
		}

		items, err = p.items.ListPublishedByArchives(ctx, archives, limit, offset)
		if err != nil {
			return nil, err
		}
	} else if pageNum > 1 {
		return nil, errNoSuchPage
	}

	renderer := portfolio.NewRenderer(p.deps, p.options(p.cfg.ItemTemplate))
	parts, err := renderer.ParseItems(ctx, page, items, false)
	if err != nil {
		return nil, err
	}
	p.metrics.ItemsRendered(p.cfg.ItemTemplate, len(parts))

	markup := make([]template.HTML, len(parts))
	for i, part := range parts {
		markup[i] = template.HTML(part)
	}

	model := map[string]any{
		"items":      markup,
		"empty":      p.deps.Lang.Sprintf(page.Language, phraseEmpty),
		"page":       pageNum,
		"pages":      pages,
		"pagination": pages > 1,
		"prevURL":    "",
		"nextURL":    "",
	}
	if pageNum > 1 {
		model["prevURL"] = pageURL(path, archives, pageNum-1)
	}
	if pageNum < pages {
		model["nextURL"] = pageURL(path, archives, pageNum+1)
	}

	out, err := p.deps.Engine.Render(ctx, ListTemplate, model)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Reader renders a single item. GET /portfolio/{alias}. The key is the
// item alias or, for items without one, the slugged headline and id as
// produced by portfolio.ItemKey. Other keys are not found.
// Items of archives hidden from the viewer are reported as not found.
func (p *Portfolio) Reader(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	key := chi.URLParam(r, "alias")

	item, err := p.findItem(ctx, key)
	if err != nil {
		slog.Error("find portfolio item failed", "error", err, "key", key)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	visible, hidden, err := p.filter.Partition(ctx, []int64{item.ArchiveID}, middleware.ViewerFromCtx(ctx))
	if err != nil {
		slog.Error("filter protected archives failed", "error", err, "item_id", item.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if len(visible) == 0 {
		p.metrics.ArchivesHidden(hidden)
		http.NotFound(w, r)
		return
	}

	renderer := portfolio.NewRenderer(p.deps, p.options(ReaderTemplate))
	out, err := renderer.ParseItem(ctx, p.pageContext(r), item, false, "", 1)
	if err != nil {
		slog.Error("render portfolio item failed", "error", err, "item_id", item.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.metrics.ItemsRendered(ReaderTemplate, 1)
	p.metrics.ObserveRender("reader", time.Since(start))

	writeHTML(w, []byte(out))
}

// Sitemap lists the absolute reader URLs of all published internal items
// in unprotected archives, one per line. GET /portfolio/sitemap.txt.
func (p *Portfolio) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	urls, err := p.searchablePages(ctx)
	if err != nil {
		slog.Error("collect searchable pages failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	base := siteRoot(r)
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(base)
		b.WriteString(u)
		b.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(b.String()))
}

func (p *Portfolio) searchablePages(ctx context.Context) ([]string, error) {
	ids, err := p.archives.ListIDs(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := p.items.ListPublishedByArchives(ctx, ids, 0, 0)
	if err != nil {
		return nil, err
	}

	renderer := portfolio.NewRenderer(p.deps, p.options(ReaderTemplate))
	urls := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsExternal() {
			continue
		}
		u, err := renderer.URL(ctx, item, false)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (p *Portfolio) findItem(ctx context.Context, key string) (*models.Item, error) {
	if key == "" {
		return nil, nil
	}
	item, err := p.items.FindPublishedByAlias(ctx, key)
	if err != nil || item != nil {
		return item, err
	}
	id, ok := portfolio.ParseItemKey(key)
	if !ok {
		return nil, nil
	}
	item, err = p.items.FindPublishedByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	// Only the canonical key addresses an item; anything else ending in
	// its id would be a duplicate URL.
	if portfolio.ItemKey(item) != key {
		return nil, nil
	}
	return item, nil
}

func (p *Portfolio) requestedArchives(ctx context.Context, raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return p.archives.ListIDs(ctx, false)
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, errBadArchives
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// pageContext returns the configured page settings, with the language
// negotiated from Accept-Language when a matcher is configured.
func (p *Portfolio) pageContext(r *http.Request) portfolio.PageContext {
	page := p.cfg.Page
	if p.langs != nil {
		if lang := p.langs.Match(r.Header.Get("Accept-Language")); lang != "" {
			page.Language = lang
		}
	}
	return page
}

func (p *Portfolio) options(tmpl string) portfolio.Options {
	return portfolio.Options{
		Template:          tmpl,
		ImgSize:           p.cfg.ImgSize,
		DefaultReaderPath: p.cfg.ReaderPath,
	}
}

// parsePage reads the 1-based page parameter. Missing means page 1.
func parsePage(raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// pageURL returns the link to page n of the listing of archives. The
// query is built from the visible archives alone, never from the request,
// so every request served from one cache entry gets the same links.
func pageURL(path string, archives []int64, n int) string {
	ids := slices.Clone(archives)
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	u := path + "?archives=" + strings.Join(parts, ",")
	if n > 1 {
		u += "&page=" + strconv.Itoa(n)
	}
	return u
}

func siteRoot(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
