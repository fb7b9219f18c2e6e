// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"folio/internal/models"
	"folio/internal/session"
)

type contextKey string

const viewerKey contextKey = "viewer"

// SessionReader loads the member session of a request.
type SessionReader interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// LoadViewer stores the viewer of the request in its context. Requests
// without a session, or whose session cannot be read, are anonymous.
// It never rejects a request.
func LoadViewer(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := models.Anonymous()
			if sessions != nil {
				data, err := sessions.Get(r.Context(), r)
				if err != nil {
					slog.Warn("load session failed", "error", err)
				} else if data != nil {
					viewer = data.Viewer()
				}
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}

// WithViewer returns a copy of ctx carrying v.
func WithViewer(ctx context.Context, v models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFromCtx returns the viewer stored by LoadViewer, or an anonymous
// viewer.
func ViewerFromCtx(ctx context.Context) models.Viewer {
	if v, ok := ctx.Value(viewerKey).(models.Viewer); ok {
		return v
	}
	return models.Anonymous()
}
