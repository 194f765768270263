package middleware

import (
	"encoding/json"
	"net/http"
)

// SessionChecker reports whether a user is signed in.
type SessionChecker interface {
	IsAuthenticated() bool
}

// NewSessionGuard returns a middleware that rejects every request with 401
// while no user is signed in.
func NewSessionGuard(s SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.IsAuthenticated() {
				writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes the API's standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
