// Package auth gates the API behind a single shared bearer token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/joestump/joe-bookmarks/internal/logger"
)

// BearerTokenMiddleware authenticates API requests against the configured
// API token. It performs no per-user lookup; every holder of the token has
// the same access.
type BearerTokenMiddleware struct {
	tokenHash [sha256.Size]byte
	log       logger.Logger
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware for token.
// Only a hash of the token is retained.
func NewBearerTokenMiddleware(token string, log logger.Logger) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokenHash: sha256.Sum256([]byte(token)), log: log}
}

// Authenticate is an http.Handler middleware that extracts and checks the
// Bearer token. Missing or wrong tokens get 401 {"error": "Unauthorized request"}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.valid(r.Header.Get("Authorization")) {
			m.log.Error("Unauthorized request", logger.String("path", r.URL.Path))
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *BearerTokenMiddleware) valid(header string) bool {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return false
	}
	// Comparing fixed-size digests keeps the comparison constant-time
	// regardless of the presented token's length.
	got := sha256.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(got[:], m.tokenHash[:]) == 1
}

// writeUnauthorized writes a 401 JSON response with {"error": "Unauthorized request"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="bookmarks"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized request"})
}
