package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketdoctors.com/admin-gateway/internal/metrics"
)

// setupRoutes configures and returns the HTTP router
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Add middleware to all routes
	r.Use(metrics.MetricsMiddleware)
	r.Use(s.authMiddleware)

	// Auth
	r.HandleFunc("/admin/login", s.loginHandler).Methods("POST")
	r.HandleFunc("/admin/logout", s.logoutHandler).Methods("POST")

	// People, one collection per role
	for _, slug := range []string{"doctors", "chews", "patients"} {
		r.HandleFunc("/admin/"+slug, s.listPeopleHandler(slug)).Methods("GET")
		r.HandleFunc("/admin/"+slug, s.registerPersonHandler(slug)).Methods("POST")
		r.HandleFunc("/admin/"+slug+"/{id:[0-9]+}", s.getPersonHandler(slug)).Methods("GET")
		r.HandleFunc("/admin/"+slug+"/{id:[0-9]+}", s.updatePersonHandler(slug)).Methods("PUT")
		r.HandleFunc("/admin/"+slug+"/{id:[0-9]+}", s.deletePersonHandler(slug)).Methods("DELETE")
		r.HandleFunc("/admin/"+slug+"/{id:[0-9]+}/payment-profile", s.paymentProfileHandler(slug)).Methods("GET")
	}

	// Cases
	r.HandleFunc("/admin/cases", s.listCasesHandler).Methods("GET")
	r.HandleFunc("/admin/cases", s.createCaseHandler).Methods("POST")
	r.HandleFunc("/admin/cases/{id:[0-9]+}", s.getCaseHandler).Methods("GET")
	r.HandleFunc("/admin/cases/{id:[0-9]+}", s.updateCaseHandler).Methods("PUT")
	r.HandleFunc("/admin/cases/{id:[0-9]+}", s.deleteCaseHandler).Methods("DELETE")

	// Health tips and adverts
	r.HandleFunc("/admin/articles", s.listArticlesHandler).Methods("GET")
	r.HandleFunc("/admin/articles", s.createArticleHandler).Methods("POST")
	r.HandleFunc("/admin/articles/{id:[0-9]+}", s.getArticleHandler).Methods("GET")
	r.HandleFunc("/admin/articles/{id:[0-9]+}", s.updateArticleHandler).Methods("PUT")
	r.HandleFunc("/admin/articles/{id:[0-9]+}", s.deleteArticleHandler).Methods("DELETE")
	r.HandleFunc("/admin/adverts", s.listAdvertsHandler).Methods("GET")
	r.HandleFunc("/admin/adverts", s.createAdvertHandler).Methods("POST")
	r.HandleFunc("/admin/adverts/{id:[0-9]+}", s.getAdvertHandler).Methods("GET")
	r.HandleFunc("/admin/adverts/{id:[0-9]+}", s.updateAdvertHandler).Methods("PUT")
	r.HandleFunc("/admin/adverts/{id:[0-9]+}", s.deleteAdvertHandler).Methods("DELETE")

	// Registration with the role in the body
	r.HandleFunc("/admin/users", s.registerUserHandler).Methods("POST")

	// Uploads
	r.HandleFunc("/admin/files", s.uploadFileHandler).Methods("POST")
	r.HandleFunc("/admin/files/image", s.uploadImageHandler).Methods("POST")
	r.HandleFunc("/admin/qualifications", s.createQualificationHandler).Methods("POST")

	// Notifications
	r.HandleFunc("/admin/notifications/send", s.sendNotificationHandler).Methods("POST")
	r.HandleFunc("/admin/notifications/send-individual", s.sendIndividualNotificationHandler).Methods("POST")

	// Payouts
	r.HandleFunc("/admin/payouts", s.payoutHandler).Methods("POST")

	// Roster exports
	r.HandleFunc("/admin/export/{role}.{format}", s.exportRosterHandler).Methods("GET")

	// Health check
	r.HandleFunc("/health", s.healthHandler).Methods("GET")

	// Prometheus metrics endpoint
	if registry := metrics.GetRegistry(); registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
	} else {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
