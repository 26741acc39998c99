package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/normalize"
)

func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.content.ListHealthTips(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	articles := make([]normalize.Article, 0, len(records))
	for _, rec := range records {
		articles = append(articles, normalize.NormalizeArticle(rec))
	}
	respondJSON(w, http.StatusOK, articles)
}

func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.content.GetHealthTip(r.Context(), pathID(r))
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, normalize.NormalizeArticle(rec))
}

func (s *Server) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.content.CreateHealthTip(r.Context(), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.content.UpdateHealthTip(r.Context(), pathID(r), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteHealthTip(r.Context(), pathID(r)); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) listAdvertsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.content.ListAdverts(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	adverts := make([]normalize.Advert, 0, len(records))
	for _, rec := range records {
		adverts = append(adverts, normalize.NormalizeAdvert(rec))
	}
	respondJSON(w, http.StatusOK, adverts)
}

func (s *Server) getAdvertHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.content.GetAdvert(r.Context(), pathID(r))
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, normalize.NormalizeAdvert(rec))
}

func (s *Server) createAdvertHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.content.CreateAdvert(r.Context(), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) updateAdvertHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.content.UpdateAdvert(r.Context(), pathID(r), fields); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteAdvertHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteAdvert(r.Context(), pathID(r)); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// uploadFileHandler forwards a multipart upload to the content API and
// returns the public URL it was stored under.
func (s *Server) uploadFileHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	fileURL, err := s.content.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	log.Info().Str("filename", header.Filename).Msg("File forwarded to content API")
	respondJSON(w, http.StatusOK, map[string]string{"fileUrl": fileURL})
}

// uploadImageHandler forwards through the image-specific forwarder, which
// rejects non-image content upstream.
func (s *Server) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	fileURL, err := s.content.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"fileUrl": fileURL})
}

// createQualificationHandler uploads a qualification document and attaches
// it to the user in one request.
func (s *Server) createQualificationHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	userID, err := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	if name == "" || err != nil || userID <= 0 {
		respondError(w, http.StatusBadRequest, "fields 'name' and 'userId' are required")
		return
	}

	fileURL, err := s.content.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	if err := s.content.CreateQualification(r.Context(), name, fileURL, userID); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created", "fileUrl": fileURL})
}
