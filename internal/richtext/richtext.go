// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package richtext cleans editor output before it is embedded in a page:
// HTML5 normalization, e-mail obfuscation and attribute-safe escaping.
package richtext

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// entityRe matches a character or named entity at the start of a string.
	entityRe = regexp.MustCompile(`^&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

	// emailRe matches e-mail addresses with an optional mailto: prefix.
	emailRe = regexp.MustCompile(`(?i)(?:mailto:)?[a-z0-9._%+-]+@[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}`)

	// selfClosingRe matches the XHTML-style end of a void element.
	selfClosingRe = regexp.MustCompile(`\s*/>`)
)

// Ampersand encodes bare ampersands as &amp; and leaves existing entities
// untouched.
func Ampersand(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && !entityRe.MatchString(s[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// SpecialChars escapes s for use inside an attribute value without double
// encoding existing entities.
func SpecialChars(s string) string {
	s = Ampersand(s)
	return strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	).Replace(s)
}

// ToHTML5 re-serializes an HTML fragment as HTML5: the fragment is parsed the
// way a browser would, legacy presentational markup is replaced, and void
// elements lose their XHTML slash. Running it on its own output is a no-op.
func ToHTML5(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return fragment
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return fragment
	}

	var b strings.Builder
	for _, n := range nodes {
		modernize(n)
		if err := html.Render(&b, n); err != nil {
			return fragment
		}
	}
	return selfClosingRe.ReplaceAllString(b.String(), ">")
}

// modernize rewrites deprecated elements and attributes in place.
func modernize(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.U:
			n.Data, n.DataAtom = "span", atom.Span
			n.Attr = appendStyle(n.Attr, "text-decoration:underline")
		case atom.Img:
			n.Attr = dropAttr(n.Attr, "border")
		}
		if align, ok := takeAttr(&n.Attr, "align"); ok && n.DataAtom != atom.Img {
			n.Attr = appendStyle(n.Attr, "text-align:"+strings.ToLower(align))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		modernize(c)
	}
}

func appendStyle(attrs []html.Attribute, decl string) []html.Attribute {
	for i, a := range attrs {
		if a.Key == "style" {
			style := strings.TrimRight(strings.TrimSpace(a.Val), ";")
			if style != "" {
				style += ";"
			}
			attrs[i].Val = style + decl
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: "style", Val: decl})
}

func dropAttr(attrs []html.Attribute, key string) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Key != key {
			out = append(out, a)
		}
	}
	return out
}

func takeAttr(attrs *[]html.Attribute, key string) (string, bool) {
	for _, a := range *attrs {
		if a.Key == key {
			*attrs = dropAttr(*attrs, key)
			return a.Val, true
		}
	}
	return "", false
}

// EncodeEmail replaces every e-mail address (and its mailto: prefix) with
// numeric character references so that it survives in the browser but not
// in naive harvesters. The encoding is deterministic.
func EncodeEmail(s string) string {
	if !strings.Contains(s, "@") {
		return s
	}
	return emailRe.ReplaceAllStringFunc(s, encodeEntities)
}

func encodeEntities(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 6)
	i := 0
	for _, r := range s {
		if i%2 == 0 {
			fmt.Fprintf(&b, "&#%d;", r)
		} else {
			fmt.Fprintf(&b, "&#x%x;", r)
		}
		i++
	}
	return b.String()
}
