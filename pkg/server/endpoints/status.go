package endpoints

import (
	"net/http"
	"os"

	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
)

// StatusResponseBody reports service health.
type StatusResponseBody struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the status and configuration endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// The status page needs no identity so the front server can probe it
	s.Router.HandleFunc("/", handleStatus(s)).Methods("GET")

	auth := middleware.NewRemoteUserAuthenticator(s.Users)
	configRouter := s.Router.PathPrefix("/configuration").Subrouter()
	configRouter.Use(auth.Middleware)
	configRouter.HandleFunc("", handleConfiguration(s)).Methods("GET")
}

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("USINT_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		database := "ok"
		code := http.StatusOK
		if err := s.Health.CheckConnectivity(); err != nil {
			database = "error"
			code = http.StatusServiceUnavailable
		}

		respondWithJSON(w, code, StatusResponseBody{
			Name:     "usint",
			Version:  version,
			Database: database,
		})
	}
}

// handleConfiguration lists the effective configuration with its sources,
// secrets redacted.
func handleConfiguration(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, s.Config.Attributes())
	}
}
