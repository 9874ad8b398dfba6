package store

import (
	"errors"
	"time"

	"github.com/kimyoungq/webboard/pkg/model"
)

// ErrSessionNotFound is returned when a session token doesn't resolve
var ErrSessionNotFound = errors.New("session not found")

// SessionsStore abstracts login session storage
type SessionsStore interface {
	// CreateSession establishes a session for the account and returns
	// the stored row with its generated token.
	CreateSession(accountID int64, ttl time.Duration) (*model.Session, error)

	// FindSession resolves a cookie token to a session with its
	// account preloaded. Returns ErrSessionNotFound if absent.
	FindSession(token string) (*model.Session, error)

	// DeleteSession invalidates a session; deleting an unknown token
	// is not an error.
	DeleteSession(token string) error

	// DeleteExpired removes all sessions past their expiry
	DeleteExpired() error
}
