package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/metrics"
	"marketdoctors.com/admin-gateway/internal/onesignal"
)

type notificationRequest struct {
	Segment string `json:"segment"`
	Email   string `json:"email"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// sendNotificationHandler pushes a notification to a whole subscriber
// segment (chew, doctor or patient).
func (s *Server) sendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Segment == "" || req.Title == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "segment, title and message are required")
		return
	}

	if err := s.notifier.SendToSegment(r.Context(), req.Segment, req.Title, req.Message); err != nil {
		if errors.Is(err, onesignal.ErrUnknownSegment) {
			metrics.RecordNotification(req.Segment, "unknown_segment")
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.RecordNotification(req.Segment, "error")
		log.Error().Err(err).Str("segment", req.Segment).Msg("Failed to send segment notification")
		respondError(w, http.StatusBadGateway, "failed to send notification")
		return
	}

	metrics.RecordNotification(req.Segment, "success")
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// sendIndividualNotificationHandler pushes a notification to the single
// subscriber tagged with the given email.
func (s *Server) sendIndividualNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Title == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "email, title and message are required")
		return
	}

	if err := s.notifier.SendToUser(r.Context(), req.Email, req.Title, req.Message); err != nil {
		metrics.RecordNotification("individual", "error")
		log.Error().Err(err).Msg("Failed to send individual notification")
		respondError(w, http.StatusBadGateway, "failed to send notification")
		return
	}

	metrics.RecordNotification("individual", "success")
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
