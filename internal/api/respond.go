package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/strapi"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondUpstreamError maps a content API failure onto our status space:
// upstream 4xx pass through with their message, everything else is a 502.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *strapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		respondError(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	log.Error().Err(err).Msg("Content API request failed")
	respondError(w, http.StatusBadGateway, "upstream request failed")
}
