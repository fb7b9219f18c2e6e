// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"folio/internal/storage"
)

// FileOpener reads stored files by key.
type FileOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Files serves the files/ tree that item images are stored in.
type Files struct {
	storage FileOpener
}

// NewFiles creates the file handler.
func NewFiles(storage FileOpener) *Files {
	return &Files{storage: storage}
}

// Serve streams a stored file. GET /files/*.
func (f *Files) Serve(w http.ResponseWriter, r *http.Request) {
	key := "files/" + chi.URLParam(r, "*")

	rc, err := f.storage.Open(r.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("open stored file failed", "error", err, "key", key)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("stream stored file failed", "error", err, "key", key)
	}
}
