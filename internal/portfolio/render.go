// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"folio/internal/datefmt"
	"folio/internal/figure"
	"folio/internal/models"
	"folio/internal/richtext"
)

const defaultDateFormat = "Y-m-d"

// Renderer turns items into markup. Create one per request.
type Renderer struct {
	deps     Deps
	opts     Options
	files    *FileRegistry
	archives map[int64]*models.Archive
}

// NewRenderer creates a request-scoped renderer.
func NewRenderer(deps Deps, opts Options) *Renderer {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	return &Renderer{
		deps:     deps,
		opts:     opts,
		files:    NewFileRegistry(deps.Files),
		archives: make(map[int64]*models.Archive),
	}
}

// ParseItems renders items in order. Images of all items are fetched with
// one query before the first item renders. The first error aborts.
func (r *Renderer) ParseItems(ctx context.Context, page PageContext, items []*models.Item, addArchive bool) ([]string, error) {
	total := len(items)
	if total == 0 {
		return []string{}, nil
	}

	var ids []uuid.UUID
	archiveIDs := make([]int64, 0, total)
	for _, item := range items {
		if item.HasImage() {
			ids = append(ids, item.SingleSRC)
		}
		archiveIDs = append(archiveIDs, item.ArchiveID)
	}
	if err := r.files.Preload(ctx, ids); err != nil {
		return nil, err
	}
	if err := r.preloadArchives(ctx, archiveIDs); err != nil {
		return nil, err
	}

	out := make([]string, 0, total)
	for i, item := range items {
		count := i + 1
		html, err := r.ParseItem(ctx, page, item, addArchive, PositionClass(count, total), count)
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}

// PositionClass returns the CSS classes of the count-th of total items.
// Even counters get "odd", odd counters get "even".
func PositionClass(count, total int) string {
	var b strings.Builder
	if count == 1 {
		b.WriteString(" first")
	}
	if count == total {
		b.WriteString(" last")
	}
	if count%2 == 0 {
		b.WriteString(" odd")
	} else {
		b.WriteString(" even")
	}
	return b.String()
}

// ParseItem builds the render model of one item and renders it through
// the configured template. Template errors are returned unchanged.
func (r *Renderer) ParseItem(ctx context.Context, page PageContext, item *models.Item, addArchive bool, class string, count int) (string, error) {
	archive, err := r.archive(ctx, item.ArchiveID)
	if err != nil {
		return "", err
	}

	model := baseModel(item)

	if item.CSSClass != "" {
		model["class"] = " " + item.CSSClass + class
	} else {
		model["class"] = class
	}
	link := r.PortfolioURL(item, archive, addArchive)
	model["linkHeadline"] = template.HTML(r.generateLink(page, item.Headline, item, archive, addArchive, false))
	model["more"] = template.HTML(r.generateLink(page, r.deps.Lang.Sprintf(page.Language, PhraseMore), item, archive, addArchive, true))
	model["link"] = link
	model["count"] = count
	model["text"] = template.HTML("")
	model["hasText"] = Resolved(false)
	model["hasTeaser"] = false
	model["teaser"] = template.HTML("")

	if item.Teaser != "" {
		model["hasTeaser"] = true
		model["teaser"] = template.HTML(richtext.EncodeEmail(richtext.ToHTML5(item.Teaser)))
	}

	hasBody := false
	if item.Source != models.SourceDefault && item.Source != "" {
		hasBody = true
		model["hasText"] = Resolved(true)
	} else {
		text, blocks, err := r.body(ctx, item.ID)
		if err != nil {
			return "", err
		}
		model["text"] = template.HTML(text)
		hasBody = text != ""
		model["hasText"] = NewLazy(func() bool { return blocks > 0 })
	}

	format := page.DateFormat
	if format == "" {
		format = defaultDateFormat
	}
	model["date"] = datefmt.FormatLocal(item.Date, format, func(name string) string {
		return r.deps.Lang.Sprintf(page.Language, name)
	})
	model["datetime"] = item.Date.Format(time.RFC3339)
	model["timestamp"] = item.Date.Unix()

	if err := r.addCategories(ctx, item, model); err != nil {
		return "", err
	}

	model["addImage"] = false
	if item.HasImage() {
		if err := r.addImage(ctx, page, item, model, link, hasBody); err != nil {
			return "", err
		}
	}

	return r.deps.Engine.Render(ctx, r.opts.Template, model)
}

// baseModel copies the raw item fields into a fresh model.
func baseModel(item *models.Item) map[string]any {
	return map[string]any{
		"id":         item.ID,
		"pid":        item.ArchiveID,
		"alias":      item.Alias,
		"headline":   item.Headline,
		"source":     string(item.Source),
		"url":        item.URL,
		"target":     item.Target,
		"cssClass":   item.CSSClass,
		"singleSRC":  item.SingleSRC.String(),
		"size":       item.Size,
		"alt":        item.Alt,
		"imageTitle": item.ImageTitle,
		"imageUrl":   item.ImageURL,
		"fullsize":   item.Fullsize,
		"published":  item.Published,
		"categories": "",

		"category_titles": template.HTML(""),
	}
}

// body renders the published blocks of an item and returns the markup
// together with the number of blocks it was built from.
func (r *Renderer) body(ctx context.Context, itemID int64) (string, int, error) {
	blocks, err := r.deps.Blocks.FindPublishedByItem(ctx, itemID)
	if err != nil {
		return "", 0, fmt.Errorf("load content blocks of item %d: %w", itemID, err)
	}
	var b strings.Builder
	for _, block := range blocks {
		html, err := r.deps.BlockHTML.Render(block)
		if err != nil {
			return "", 0, fmt.Errorf("render content block %d: %w", block.ID, err)
		}
		b.WriteString(html)
	}
	return b.String(), len(blocks), nil
}

func (r *Renderer) addCategories(ctx context.Context, item *models.Item, model map[string]any) error {
	if len(item.Categories) == 0 {
		return nil
	}

	aliases := make([]string, 0, len(item.Categories))
	var titles strings.Builder
	for _, id := range item.Categories {
		cat, err := r.deps.Categories.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load category %d: %w", id, err)
		}
		if cat == nil {
			slog.Warn("portfolio category not found", "item_id", item.ID, "category_id", id)
			continue
		}
		aliases = append(aliases, cat.Alias)
		titles.WriteString("<li>")
		titles.WriteString(template.HTMLEscapeString(cat.Title))
		titles.WriteString("</li>")
	}
	if len(aliases) == 0 {
		return nil
	}

	model["categories"] = strings.Join(aliases, ",")
	model["category_titles"] = template.HTML(`<ul class="level_1">` + titles.String() + "</ul>")
	return nil
}

func (r *Renderer) addImage(ctx context.Context, page PageContext, item *models.Item, model map[string]any, link string, hasBody bool) error {
	file, err := r.files.Find(ctx, item.SingleSRC)
	if err != nil {
		return err
	}
	if file == nil {
		slog.Debug("portfolio image not in file registry", "item_id", item.ID, "uuid", item.SingleSRC)
		return nil
	}
	if !file.IsImage() {
		slog.Warn("portfolio image is not an image file", "item_id", item.ID, "path", file.Path)
		return nil
	}
	exists, err := r.deps.Storage.Exists(ctx, file.Path)
	if err != nil {
		return fmt.Errorf("check image %s: %w", file.Path, err)
	}
	if !exists {
		slog.Warn("portfolio image missing on storage", "item_id", item.ID, "path", file.Path)
		return nil
	}

	size := item.Size
	if !size.IsSet() {
		size = r.opts.ImgSize
	}

	data, err := r.deps.Images.Compose(figure.Request{
		File:       *file,
		Size:       size,
		Alt:        item.Alt,
		Title:      item.ImageTitle,
		ImageURL:   item.ImageURL,
		Fullsize:   item.Fullsize,
		LightboxID: fmt.Sprintf("lb%d", item.ID),
	})
	if err != nil {
		slog.Warn("compose portfolio image failed", "item_id", item.ID, "error", err)
		return nil
	}

	// Without an explicit image link the picture points at the reader page.
	if !data.Fullsize && data.ImageURL == "" && hasBody {
		data.Picture.Title = ""
		data.Href = link
		data.LinkTitle = r.deps.Lang.Sprintf(page.Language, PhraseReadMore, item.Headline)
		if item.IsExternal() && item.Target && !strings.Contains(data.Attributes, `target="_blank"`) {
			data.Attributes += ` target="_blank"`
		}
	}

	model["addImage"] = true
	model["picture"] = data.Picture
	model["href"] = data.Href
	model["linkTitle"] = data.LinkTitle
	model["attributes"] = template.HTMLAttr(data.Attributes)
	model["fullsize"] = data.Fullsize
	model["imageUrl"] = data.ImageURL
	return nil
}

// archive returns the archive of an item, memoized per renderer. A missing
// archive yields nil.
func (r *Renderer) archive(ctx context.Context, id int64) (*models.Archive, error) {
	if a, ok := r.archives[id]; ok {
		return a, nil
	}
	a, err := r.deps.Archives.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load archive %d: %w", id, err)
	}
	r.archives[id] = a
	return a, nil
}

func (r *Renderer) preloadArchives(ctx context.Context, ids []int64) error {
	var pending []int64
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := r.archives[id]; !ok {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	archives, err := r.deps.Archives.FindMultipleByIDs(ctx, pending)
	if err != nil {
		return fmt.Errorf("preload archives: %w", err)
	}
	for _, id := range pending {
		r.archives[id] = nil
	}
	for i := range archives {
		a := archives[i]
		r.archives[a.ID] = &a
	}
	return nil
}
