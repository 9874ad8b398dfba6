// Package identity carries the authenticated identity for a request.
package identity

import (
	"context"
	"net"

	"github.com/kimyoungq/webboard/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
// It combines the session's account with request-specific context.
type Identity struct {
	AccountID int64
	Name      string
	Role      model.Role

	// Request context
	RemoteIP net.IP

	// SessionToken is the opaque token of the backing session row
	SessionToken string
}

// FromAccount creates an Identity from a resolved account.
func FromAccount(account *model.Account) *Identity {
	return &Identity{
		AccountID: account.ID,
		Name:      account.Name,
		Role:      account.Role,
	}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// WithSessionToken sets the backing session token.
func (i *Identity) WithSessionToken(token string) *Identity {
	i.SessionToken = token
	return i
}

// IsAdmin returns true if the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
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
