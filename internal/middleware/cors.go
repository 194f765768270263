// Package middleware provides the HTTP middleware wrapped around the
// dashboard API: request logging, CORS, a body size cap, and the session
// guard in front of every protected route.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers for the
// dashboard front end served from allowedOrigins. Each entry must be a full
// origin (scheme + host, no trailing slash).
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Total-Count", "Content-Disposition"},
	})
	return c.Handler
}
