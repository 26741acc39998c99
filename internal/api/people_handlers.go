package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/normalize"
	"marketdoctors.com/admin-gateway/internal/strapi"
)

// roleForSlug maps a collection slug from the URL onto its content API
// role id.
var roleForSlug = map[string]int{
	"doctors":  strapi.RoleDoctor,
	"chews":    strapi.RoleChew,
	"patients": strapi.RolePatient,
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (s *Server) listPeopleHandler(slug string) http.HandlerFunc {
	roleID := roleForSlug[slug]
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.content.ListUsers(r.Context(), roleID)
		if err != nil {
			respondUpstreamError(w, err)
			return
		}

		people := make([]normalize.Person, 0, len(records))
		for _, rec := range records {
			people = append(people, normalize.NormalizePerson(rec))
		}
		respondJSON(w, http.StatusOK, people)
	}
}

func (s *Server) getPersonHandler(slug string) http.HandlerFunc {
	roleID := roleForSlug[slug]
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.content.GetUser(r.Context(), pathID(r), roleID)
		if err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, normalize.NormalizePerson(rec))
	}
}

func (s *Server) registerPersonHandler(slug string) http.HandlerFunc {
	roleID := roleForSlug[slug]
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		fields["role"] = roleID

		if err := s.content.Register(r.Context(), fields); err != nil {
			respondUpstreamError(w, err)
			return
		}
		log.Info().Str("collection", slug).Msg("Person registered")
		respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
	}
}

// registerUserHandler registers a doctor or CHEW with the role named in
// the body instead of the URL.
func (s *Server) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if fields["role"] == nil {
		respondError(w, http.StatusBadRequest, "role is required")
		return
	}

	if err := s.content.Register(r.Context(), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) updatePersonHandler(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := s.content.UpdateUser(r.Context(), pathID(r), fields); err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (s *Server) deletePersonHandler(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.content.DeleteUser(r.Context(), pathID(r)); err != nil {
			respondUpstreamError(w, err)
			return
		}
		log.Info().Str("collection", slug).Int64("id", pathID(r)).Msg("Person deleted")
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// paymentProfileHandler returns the payout-relevant slice of a person
// record. The payout page fetches this before initiating a transfer, which
// is also how the stored recipient code reaches the payout request.
func (s *Server) paymentProfileHandler(slug string) http.HandlerFunc {
	roleID := roleForSlug[slug]
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.content.GetUser(r.Context(), pathID(r), roleID)
		if err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, normalize.NormalizePaymentProfile(rec))
	}
}
