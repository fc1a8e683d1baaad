package server

import (
	"net/http"
	"time"

	"bankroll/auth"
	"bankroll/domain/interfaces"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Server exposes the bankroll ledger over HTTP
type Server struct {
	uowFactory interfaces.UnitOfWorkFactory
	jwt        auth.JWT
}

// NewServer creates a new HTTP server
func NewServer(uowFactory interfaces.UnitOfWorkFactory, jwt auth.JWT) *Server {
	return &Server{
		uowFactory: uowFactory,
		jwt:        jwt,
	}
}

// Handler builds the route tree. Everything under /api/v1 requires a valid
// bearer token; /healthz does not.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogging)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware(s.jwt))

	api.HandleFunc("/stats", s.handleGetStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/initial-bankroll", s.handleSetInitialBankroll).Methods(http.MethodPut)

	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleUpdateSession).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)

	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request handled")
	})
}
