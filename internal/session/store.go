// Package session keeps one settings.Store per visitor, identified by a
// cookie token, and persists it between requests.
package session

import (
	"context"
	"errors"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

var (
	// ErrNotFound is returned by Store.Load for unknown or expired tokens.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidToken is returned when a token is empty.
	ErrInvalidToken = errors.New("invalid session token")
)

// Store persists settings stores by session token. Implementations must be
// safe for concurrent use and must not share state with the stores handed
// to or returned from them.
type Store interface {
	// Load returns the settings of token and extends its lifetime.
	Load(ctx context.Context, token string) (*settings.Store, error)
	Save(ctx context.Context, token string, s *settings.Store) error
	Delete(ctx context.Context, token string) error
}
