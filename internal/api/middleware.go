package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type contextKey string

// SessionKey carries the authenticated admin session in the request context.
const SessionKey contextKey = "session"

const bearerPrefix = "Bearer "

// openPaths need no session: the login endpoint mints one, and probes hit
// health and metrics unauthenticated.
var openPaths = map[string]bool{
	"/admin/login": true,
	"/health":      true,
	"/metrics":     true,
}

// authMiddleware resolves the Bearer token to an admin session and rejects
// requests without one.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if openPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Str("path", r.URL.Path).Msg("Authorization header missing")
			respondError(w, http.StatusUnauthorized, "authorization header required")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Warn().Str("path", r.URL.Path).Msg("Invalid authorization header format")
			respondError(w, http.StatusUnauthorized, "authorization header must be a Bearer token")
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		sess, err := s.sessions.Get(r.Context(), token)
		if err != nil {
			log.Warn().Str("path", r.URL.Path).Msg("Unknown or expired session token")
			respondError(w, http.StatusUnauthorized, "session is invalid or expired")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
