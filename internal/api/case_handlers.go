package api

import (
	"encoding/json"
	"net/http"

	"marketdoctors.com/admin-gateway/internal/normalize"
)

func (s *Server) listCasesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.content.ListCases(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	cases := make([]normalize.Case, 0, len(records))
	for _, rec := range records {
		cases = append(cases, normalize.NormalizeCase(rec))
	}
	respondJSON(w, http.StatusOK, cases)
}

func (s *Server) getCaseHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.content.GetCase(r.Context(), pathID(r))
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, normalize.NormalizeCase(rec))
}

func (s *Server) createCaseHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.content.CreateCase(r.Context(), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) updateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.content.UpdateCase(r.Context(), pathID(r), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteCase(r.Context(), pathID(r)); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
