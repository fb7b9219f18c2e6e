// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"folio/internal/models"
	"folio/internal/richtext"
	"folio/internal/slug"
)

// GenerateLink returns an anchor for item with label as its content.
// Internal items link to their reader page; external items link to their
// URL. readMore adds a visually hidden copy of the headline.
func (r *Renderer) GenerateLink(ctx context.Context, page PageContext, label string, item *models.Item, addArchive, readMore bool) (string, error) {
	archive, err := r.archive(ctx, item.ArchiveID)
	if err != nil {
		return "", err
	}
	return r.generateLink(page, label, item, archive, addArchive, readMore), nil
}

func (r *Renderer) generateLink(page PageContext, label string, item *models.Item, archive *models.Archive, addArchive, readMore bool) string {
	if !item.IsExternal() {
		var hidden string
		if readMore {
			hidden = ` <span class="invisible">` + richtext.SpecialChars(item.Headline) + `</span>`
		}
		return fmt.Sprintf(`<a href="%s" title="%s">%s%s</a>`,
			richtext.Ampersand(r.PortfolioURL(item, archive, addArchive)),
			richtext.SpecialChars(r.deps.Lang.Sprintf(page.Language, PhraseReadMore, item.Headline)),
			richtext.SpecialChars(label),
			hidden)
	}

	href := richtext.Ampersand(item.URL)

	var attributes string
	if item.Target {
		if page.OutputFormat == OutputXHTML {
			attributes = ` onclick="return !window.open(this.href)"`
		} else {
			attributes = ` target="_blank"`
		}
	}

	return fmt.Sprintf(`<a href="%s" title="%s"%s>%s</a>`,
		href,
		richtext.SpecialChars(r.deps.Lang.Sprintf(page.Language, PhraseOpen, href)),
		attributes,
		richtext.SpecialChars(label))
}

// PortfolioURL returns the canonical URL of item. External items use their
// own URL. Internal items live below the reader page of their archive,
// addressed by alias, or by slugged headline and id when the alias is empty.
func (r *Renderer) PortfolioURL(item *models.Item, archive *models.Archive, addArchive bool) string {
	if item.IsExternal() {
		return item.URL
	}

	reader := r.opts.DefaultReaderPath
	if archive != nil && archive.ReaderPath != "" {
		reader = archive.ReaderPath
	}

	u := strings.TrimRight(reader, "/") + "/" + ItemKey(item)
	if addArchive && archive != nil && archive.Alias != "" {
		u += "?archive=" + url.QueryEscape(archive.Alias)
	}
	return u
}

// URL resolves the archive of item and returns its canonical URL.
func (r *Renderer) URL(ctx context.Context, item *models.Item, addArchive bool) (string, error) {
	archive, err := r.archive(ctx, item.ArchiveID)
	if err != nil {
		return "", err
	}
	return r.PortfolioURL(item, archive, addArchive), nil
}

// ItemKey is the path segment that addresses item on its reader page.
func ItemKey(item *models.Item) string {
	if item.Alias != "" {
		return item.Alias
	}
	id := strconv.FormatInt(item.ID, 10)
	if s := slug.Generate(item.Headline); s != "" {
		return s + "-" + id
	}
	return id
}

// ParseItemKey extracts the numeric id of a key built by ItemKey from a
// slugged headline. ok is false for plain aliases.
func ParseItemKey(key string) (id int64, ok bool) {
	tail := key
	if i := strings.LastIndexByte(key, '-'); i >= 0 {
		tail = key[i+1:]
	}
	id, err := strconv.ParseInt(tail, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
