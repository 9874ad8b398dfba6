package store

import (
	"errors"

	"github.com/kimyoungq/webboard/pkg/model"
)

// ErrAccountNotFound is returned when an account doesn't exist
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when a login name is already taken
var ErrAccountExists = errors.New("account already exists")

// AccountsStore abstracts account storage operations
type AccountsStore interface {
	// ExistsByName checks if an account with that exact name exists
	ExistsByName(name string) bool

	// FindByName retrieves an account by its exact login name.
	// Returns ErrAccountNotFound if the account doesn't exist.
	FindByName(name string) (*model.Account, error)

	// CreateAccount creates a new account with an already-hashed
	// credential. Returns ErrAccountExists if the name is taken.
	CreateAccount(name, passwordHash string, role model.Role) (*model.Account, error)
}
