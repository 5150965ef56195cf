package identity

import (
	"context"
	"net"

	"github.com/cxcds/usint-in-go/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request. The front
// web server authenticates against LDAP and hands the login over in a
// header, so an identity is a looked-up user plus request context.
type Identity struct {
	UserID   int64
	Username string
	Email    string
	Groups   string

	// RemoteIP is the client address, for logging
	RemoteIP net.IP

	// The underlying user record
	User *model.User
}

// FromUser creates an Identity from a user record.
func FromUser(user *model.User) *Identity {
	return &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Groups:   user.Groups,
		User:     user,
	}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
