// Package identity provides authenticated identity management for requests.
//
// Authentication happens in the front web server, which passes the verified
// login in the X-Remote-User header. This package carries the looked-up user
// through the request context.
//
// # Basic Usage
//
//	// Create identity from a user record
//	id := identity.FromUser(user)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
package identity
