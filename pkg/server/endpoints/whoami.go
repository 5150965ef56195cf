package endpoints

import (
	"net/http"

	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Groups   string `json:"groups,omitempty"`
	ClientIP string `json:"client_ip,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		resp := WhoamiResponse{
			Username: id.Username,
			Email:    id.Email,
			Groups:   id.Groups,
		}
		if id.RemoteIP != nil {
			resp.ClientIP = id.RemoteIP.String()
		}

		respondWithJSON(w, http.StatusOK, resp)
	}
}
