package middleware

import (
	"net"
	"net/http"

	"github.com/cxcds/usint-in-go/pkg/identity"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// RemoteUserAuthenticator is middleware that resolves the identity supplied
// by the front web server. The original deployment authenticates against
// LDAP at the Apache layer and forwards the login as REMOTE_USER, which
// reaches us as the X-Remote-User header.
type RemoteUserAuthenticator struct {
	Users store.UsersStore
}

// NewRemoteUserAuthenticator creates a new remote user authenticator middleware
func NewRemoteUserAuthenticator(users store.UsersStore) *RemoteUserAuthenticator {
	return &RemoteUserAuthenticator{Users: users}
}

// Middleware returns an HTTP middleware that resolves the forwarded login
// to a known active account.
func (a *RemoteUserAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get("X-Remote-User")
		if username == "" {
			username = r.Header.Get("Remote-User")
		}
		if username == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Remote user missing"))
			return
		}

		user, err := a.Users.ByUsername(username)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unknown user"))
			return
		}
		if !user.IsActive {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("Account is inactive"))
			return
		}

		id := identity.FromUser(user)
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id = id.WithRemoteIP(net.ParseIP(host))
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
