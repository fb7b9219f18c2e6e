// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package figure composes the image data that item templates render as an
// <img> tag, optionally wrapped in a link.
package figure

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"folio/internal/models"
	"folio/internal/richtext"
)

// Resize modes understood by the composer. A numeric mode refers to a
// named preset instead.
const (
	ModeCrop         = "crop"
	ModeProportional = "proportional"
	ModeBox          = "box"
)

// URLBuilder maps a storage path to a public URL.
type URLBuilder interface {
	FileURL(key string) string
}

// Request describes one image to compose. It is built from an item and
// never mutates it.
type Request struct {
	File       models.File
	Size       models.ImageSize
	Alt        string
	Title      string
	ImageURL   string // explicit link target
	Fullsize   bool   // link to the full-size image, or open ImageURL in a new window
	LightboxID string
}

// Picture holds the attributes of the <img> tag.
type Picture struct {
	Src    string
	Width  int
	Height int
	Alt    string
	Title  string
}

// Data is the composed image: the picture and its optional link. Href and
// LinkTitle are unescaped; Attributes is ready-to-embed attribute markup.
type Data struct {
	Picture    Picture
	Href       string
	LinkTitle  string
	Attributes string
	Fullsize   bool
	ImageURL   string
}

// Composer builds Data from Requests.
type Composer struct {
	urls    URLBuilder
	presets map[string]models.ImageSize
}

// NewComposer creates a Composer. presets maps numeric size modes to
// concrete sizes and may be nil.
func NewComposer(urls URLBuilder, presets map[string]models.ImageSize) *Composer {
	return &Composer{urls: urls, presets: presets}
}

// Compose resolves the image URL, dimensions and link of req.
func (c *Composer) Compose(req Request) (*Data, error) {
	if req.File.Path == "" {
		return nil, errors.New("compose image: empty file path")
	}

	size := req.Size
	if preset, ok := c.presets[size.Mode]; ok {
		size = preset
	} else if isPresetID(size.Mode) {
		slog.Warn("unknown image size preset, using original size", "preset", size.Mode, "path", req.File.Path)
	}
	w, h := Dimensions(req.File.Width, req.File.Height, size)

	alt := req.Alt
	if alt == "" {
		alt = req.File.AltText
	}

	data := &Data{
		Picture: Picture{
			Src:    c.urls.FileURL(req.File.Path),
			Width:  w,
			Height: h,
			Alt:    alt,
			Title:  req.Title,
		},
		Fullsize: req.Fullsize,
		ImageURL: req.ImageURL,
	}

	switch {
	case req.ImageURL != "":
		data.Href = req.ImageURL
		data.LinkTitle = req.Title
		if req.Fullsize {
			data.Attributes = ` target="_blank"`
		}
	case req.Fullsize:
		data.Href = c.urls.FileURL(req.File.Path)
		data.LinkTitle = req.Title
		data.Attributes = fmt.Sprintf(` data-lightbox="%s"`, richtext.SpecialChars(req.LightboxID))
	}

	return data, nil
}

func isPresetID(mode string) bool {
	_, err := strconv.Atoi(mode)
	return err == nil
}

// Dimensions computes the output size of an image of origW x origH for the
// requested size. Missing dimensions are derived from the aspect ratio.
func Dimensions(origW, origH int, size models.ImageSize) (int, int) {
	w, h := size.Width, size.Height
	if w <= 0 && h <= 0 {
		return origW, origH
	}
	if origW <= 0 || origH <= 0 {
		return max(w, 0), max(h, 0)
	}

	ratio := float64(origW) / float64(origH)
	switch {
	case w > 0 && h <= 0:
		return w, int(math.Round(float64(w) / ratio))
	case h > 0 && w <= 0:
		return int(math.Round(float64(h) * ratio)), h
	}

	if size.Mode == ModeProportional || size.Mode == ModeBox {
		// Fit inside the w x h box.
		if float64(w)/float64(h) > ratio {
			return int(math.Round(float64(h) * ratio)), h
		}
		return w, int(math.Round(float64(w) / ratio))
	}
	return w, h
}
