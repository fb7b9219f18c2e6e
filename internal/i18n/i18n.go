// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n provides the translated front-end phrases. Phrase tables are
// YAML files named after their BCP 47 language tag; they are loaded once
// into an x/text message catalog and read-only afterwards.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed lang/*.yaml
var builtinFS embed.FS

// Catalog resolves phrase keys for a requested language.
type Catalog struct {
	matcher  language.Matcher
	tags     []language.Tag
	printers map[language.Tag]*message.Printer
}

// Default loads the phrase tables shipped with the binary, falling back
// to fallback for unknown languages.
func Default(fallback string) (*Catalog, error) {
	sub, err := fs.Sub(builtinFS, "lang")
	if err != nil {
		return nil, fmt.Errorf("i18n: %w", err)
	}
	return Load(sub, fallback)
}

// Load reads every *.yaml phrase table in fsys.
func Load(fsys fs.FS, fallback string) (*Catalog, error) {
	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("i18n: fallback language %q: %w", fallback, err)
	}

	b := catalog.NewBuilder(catalog.Fallback(fallbackTag))
	tags := []language.Tag{fallbackTag}

	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: list phrase tables: %w", err)
	}
	for _, name := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(name), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("i18n: phrase table %s: %w", name, err)
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		phrases := map[string]string{}
		if err := yaml.Unmarshal(raw, &phrases); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		for key, msg := range phrases {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: %s %s: %w", tag, key, err)
			}
		}
		if tag != fallbackTag {
			tags = append(tags, tag)
		}
	}

	c := &Catalog{
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		printers: make(map[language.Tag]*message.Printer, len(tags)),
	}
	for _, tag := range tags {
		c.printers[tag] = message.NewPrinter(tag, message.Catalog(b))
	}
	return c, nil
}

// Sprintf formats the phrase key in the best match for lang. Unknown keys
// are formatted as if the key itself were the phrase.
func (c *Catalog) Sprintf(lang, key string, args ...any) string {
	return c.printer(lang).Sprintf(key, args...)
}

// Languages returns the supported language tags, fallback first.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Match picks the supported language that best fits an Accept-Language
// header. It returns "" when the header is malformed or names no language
// the catalog can serve.
func (c *Catalog) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return c.tags[idx].String()
}

func (c *Catalog) printer(lang string) *message.Printer {
	_, idx, _ := c.matcher.Match(language.Make(lang))
	return c.printers[c.tags[idx]]
}
