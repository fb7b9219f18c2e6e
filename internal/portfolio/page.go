// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package portfolio renders portfolio listings. It filters out archives the
// viewer may not see, builds a render model for every item (links, image,
// categories, teaser, body) and hands it to the template engine.
//
// A Renderer is request-scoped: it memoizes file and archive lookups for the
// lifetime of one page render and must not be shared between requests.
package portfolio

import "folio/internal/models"

// Output formats of the host page.
const (
	OutputHTML5 = "html5"
	OutputXHTML = "xhtml"
)

// Phrase keys looked up through the Localizer.
const (
	PhraseReadMore = "readMore"
	PhraseOpen     = "open"
	PhraseMore     = "more"
)

// PageContext carries the settings of the page the listing is embedded in.
type PageContext struct {
	DateFormat   string // PHP-style date format, e.g. "d.m.Y"
	OutputFormat string // OutputHTML5 or OutputXHTML
	Language     string // BCP 47 tag, e.g. "de"
}

// Options are the module settings of a listing.
type Options struct {
	Template          string           // template name, e.g. "portfolio_short"
	ImgSize           models.ImageSize // default image size
	DefaultReaderPath string           // used when an item's archive has no reader page
}

// DefaultTemplate is the item template used when Options.Template is empty.
const DefaultTemplate = "portfolio_short"
