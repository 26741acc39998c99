package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/metrics"
	"marketdoctors.com/admin-gateway/internal/normalize"
	"marketdoctors.com/admin-gateway/internal/session"
	"marketdoctors.com/admin-gateway/internal/strapi"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt string           `json:"expiresAt"`
	User      normalize.Person `json:"user"`
}

// loginHandler checks the credentials upstream and mints an opaque session
// token the dashboard sends back as a Bearer header.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	rec, err := s.content.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *strapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			metrics.RecordAdminLogin("rejected")
			respondError(w, http.StatusUnauthorized, apiErr.Message)
			return
		}
		metrics.RecordAdminLogin("upstream_error")
		log.Error().Err(err).Msg("Login check against content API failed")
		respondError(w, http.StatusBadGateway, "upstream request failed")
		return
	}

	person := normalize.NormalizePerson(rec)
	sess, err := s.sessions.Create(r.Context(), person.ID, person.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	metrics.RecordAdminLogin("success")
	respondJSON(w, http.StatusOK, loginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		User:      person,
	})
}

// logoutHandler revokes the calling session.
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value(SessionKey).(*session.Session)
	token := ""
	if ok {
		token = sess.Token
	} else {
		// The middleware already validated the header; fall back to it for
		// safety.
		token = strings.TrimPrefix(r.Header.Get("Authorization"), bearerPrefix)
	}

	if err := s.sessions.Destroy(r.Context(), token); err != nil {
		log.Error().Err(err).Msg("Failed to destroy session")
		respondError(w, http.StatusInternalServerError, "failed to destroy session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
