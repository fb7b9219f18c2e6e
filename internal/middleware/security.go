// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// SecureHeaders sets the security headers of the front end. imgOrigins are
// the extra origins images may be loaded from, e.g. the public URL of the
// object storage.
func SecureHeaders(imgOrigins ...string) func(http.Handler) http.Handler {
	imgSrc := strings.TrimSpace("'self' data: " + strings.Join(imgOrigins, " "))
	csp := "default-src 'self'; img-src " + imgSrc + "; style-src 'self' 'unsafe-inline'; frame-ancestors 'self'"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", csp)
			next.ServeHTTP(w, r)
		})
	}
}
