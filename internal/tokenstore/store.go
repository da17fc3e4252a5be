// Package tokenstore persists the session's access and refresh credentials
// in a durable key-value store under fixed keys. Presence of an access
// token is the sole authenticated signal before the server confirms it.
package tokenstore

import "context"

const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

type Store interface {
	// Access returns the stored access token and whether one is present.
	Access(ctx context.Context) (string, bool)
	// Refresh returns the stored refresh token and whether one is present.
	Refresh(ctx context.Context) (string, bool)
	// Save stores both tokens. An empty refresh token keeps the stored one.
	Save(ctx context.Context, access, refresh string) error
	// SetAccess replaces only the access token, e.g. after a refresh.
	SetAccess(ctx context.Context, access string) error
	// Clear removes both tokens.
	Clear(ctx context.Context) error
}
