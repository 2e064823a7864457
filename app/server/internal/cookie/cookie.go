// Package cookie provides shared session cookie constants.
package cookie

import "time"

const (
	// Name is the session marker cookie name.
	Name = "thailand-map-auth"

	// Value is the only cookie value accepted as authenticated. Anything else fails closed.
	Value = "authenticated"

	// Path scopes the cookie to the whole site.
	Path = "/"

	// TTL is the session marker lifetime.
	TTL = 24 * time.Hour
)
