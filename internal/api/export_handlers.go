package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/export"
	"marketdoctors.com/admin-gateway/internal/normalize"
)

// exportRosterHandler streams the doctor or CHEW roster as CSV or XLSX.
func (s *Server) exportRosterHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug, format := vars["role"], vars["format"]

	roleID, ok := roleForSlug[slug]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown roster")
		return
	}
	if format != "csv" && format != "xlsx" {
		respondError(w, http.StatusNotFound, "unknown export format")
		return
	}

	records, err := s.content.ListUsers(r.Context(), roleID)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	people := make([]normalize.Person, 0, len(records))
	for _, rec := range records {
		people = append(people, normalize.NormalizePerson(rec))
	}

	var out []byte
	var contentType string
	switch format {
	case "csv":
		contentType = "text/csv"
		out, err = export.RosterCSV(people)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		out, err = export.RosterXLSX(sheetTitle(slug), people)
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("Failed to render roster export")
		respondError(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", slug, format))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func sheetTitle(slug string) string {
	if slug == "" {
		return "Roster"
	}
	return strings.ToUpper(slug[:1]) + slug[1:]
}
