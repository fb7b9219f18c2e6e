// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go provides an in-memory cache for compiled Go templates (L1).
// Entries are keyed by source ID and version, so a new override version
// produces a cache miss without explicit invalidation.
package engine

import (
	"html/template"
	"log/slog"
	"sync"
)

// cacheKey identifies one compiled version of a template source. Bumping
// an override's version yields a new key.
type cacheKey struct {
	id      string // UUID of an override, or builtinPrefix+name
	version int
}

// templateCache is a concurrency-safe map of compiled templates.
type templateCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*template.Template
}

func newTemplateCache() *templateCache {
	return &templateCache{
		entries: make(map[cacheKey]*template.Template),
	}
}

// get returns the compiled template or nil on miss.
func (c *templateCache) get(id string, version int) *template.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[cacheKey{id: id, version: version}]
}

// put stores a compiled template under id and version.
func (c *templateCache) put(id string, version int, tmpl *template.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{id: id, version: version}] = tmpl
	slog.Debug("template cached", "id", id, "version", version, "size", len(c.entries))
}

// len returns the number of compiled templates held.
func (c *templateCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
