// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks renders the content blocks that make up an item's body.
package blocks

import (
	"fmt"
	"html"
	"strings"

	"folio/internal/markdown"
	"folio/internal/models"
	"folio/internal/richtext"
)

// Renderer turns content blocks into HTML fragments.
type Renderer struct{}

// New returns a block renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render returns the HTML of one block wrapped in its container element.
func (r *Renderer) Render(block models.ContentBlock) (string, error) {
	var body string
	switch block.Type {
	case models.BlockTypeMarkdown:
		out, err := markdown.ToHTML(block.Body)
		if err != nil {
			return "", fmt.Errorf("render markdown block %d: %w", block.ID, err)
		}
		body = out
	case models.BlockTypeHeadline:
		return fmt.Sprintf(`<h2 class="%s">%s</h2>`, containerClass(block), html.EscapeString(block.Headline)), nil
	case models.BlockTypeHTML:
		body = block.Body
	case models.BlockTypeText, "":
		body = richtext.EncodeEmail(richtext.ToHTML5(block.Body))
	default:
		return "", fmt.Errorf("render block %d: unknown type %q", block.ID, block.Type)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">`, containerClass(block))
	if block.Headline != "" {
		fmt.Fprintf(&b, "\n<h3>%s</h3>", html.EscapeString(block.Headline))
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n</div>\n")
	return b.String(), nil
}

func containerClass(block models.ContentBlock) string {
	class := "ce_" + string(block.Type)
	if block.Type == "" {
		class = "ce_" + string(models.BlockTypeText)
	}
	if block.CSSClass != "" {
		class += " " + html.EscapeString(block.CSSClass)
	}
	return class
}
