// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine provides the template rendering engine for portfolio
// fragments. Built-in templates are embedded in the binary; a site can
// override any of them with an active template row in the database. All
// templates are Go html/templates executed against a flat field map.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"folio/internal/models"
	"folio/web"
)

// builtinPrefix marks cache keys of embedded templates so they never
// collide with database UUIDs.
const builtinPrefix = "builtin:"

// TemplateSource looks up an active template override by name.
// Returns nil, nil when the site has no override.
type TemplateSource interface {
	FindActiveByName(ctx context.Context, name string) (*models.Template, error)
}

// Engine compiles and renders named templates. It maintains an in-memory
// cache (L1) of compiled templates keyed by source ID+version, so repeated
// renders skip the template.Parse step.
type Engine struct {
	source   TemplateSource
	builtins fs.FS
	cache    *templateCache
}

// New creates a rendering engine. source may be nil, in which case only the
// embedded templates are available.
func New(source TemplateSource) *Engine {
	builtins, err := fs.Sub(web.TemplatesFS, "templates")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(fmt.Sprintf("engine: embedded templates: %v", err))
	}
	return &Engine{
		source:   source,
		builtins: builtins,
		cache:    newTemplateCache(),
	}
}

// Render executes the template called name with data and returns the
// markup. A database override wins over the embedded template. Errors
// from compiling or executing the template are returned to the caller.
func (e *Engine) Render(ctx context.Context, name string, data map[string]any) (string, error) {
	if e.source != nil {
		override, err := e.source.FindActiveByName(ctx, name)
		if err != nil {
			slog.Warn("template override lookup failed, using built-in", "name", name, "error", err)
		} else if override != nil {
			out, err := e.compileAndRender(override.ID.String(), override.Version, override.HTMLContent, data)
			if err != nil {
				return "", fmt.Errorf("render template %s: %w", name, err)
			}
			return string(out), nil
		}
	}

	src, err := e.builtin(name)
	if err != nil {
		return "", err
	}
	out, err := e.compileAndRender(builtinPrefix+name, 0, src, data)
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return string(out), nil
}

// Names lists the embedded template names.
func (e *Engine) Names() []string {
	entries, err := fs.ReadDir(e.builtins, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".html" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".html"))
	}
	return names
}

// ValidateTemplate attempts to compile a template string and returns an
// error if the Go template syntax is invalid. Used by the templates
// validate command before an override is stored.
func (e *Engine) ValidateTemplate(htmlContent string) error {
	_, err := template.New("validate").Parse(htmlContent)
	if err != nil {
		return fmt.Errorf("invalid template syntax: %w", err)
	}
	return nil
}

func (e *Engine) builtin(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	b, err := fs.ReadFile(e.builtins, name+".html")
	if err != nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	return string(b), nil
}

// compileAndRender compiles a template string and executes it with the
// given data. If id is non-empty, the compiled template is cached in L1.
func (e *Engine) compileAndRender(id string, version int, tmplContent string, data any) ([]byte, error) {
	compiled := e.cache.get(id, version)
	if compiled == nil {
		var err error
		compiled, err = template.New("fragment").Parse(tmplContent)
		if err != nil {
			return nil, fmt.Errorf("compile template: %w", err)
		}
		e.cache.put(id, version, compiled)
	}

	var buf bytes.Buffer
	if err := compiled.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	return buf.Bytes(), nil
}
