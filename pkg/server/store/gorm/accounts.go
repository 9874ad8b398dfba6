package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// Ensure AccountsStore implements store.AccountsStore
var _ store.AccountsStore = (*AccountsStore)(nil)

// AccountsStore implements store.AccountsStore using GORM
type AccountsStore struct {
	db *gorm.DB
}

// NewAccountsStore creates a new AccountsStore
func NewAccountsStore(db *gorm.DB) *AccountsStore {
	return &AccountsStore{db: db}
}

// ExistsByName checks if an account with that exact name exists
func (s *AccountsStore) ExistsByName(name string) bool {
	var count int64
	s.db.Model(&model.Account{}).Where("name = ?", name).Count(&count)
	return count > 0
}

// FindByName retrieves an account by its exact login name.
func (s *AccountsStore) FindByName(name string) (*model.Account, error) {
	var account model.Account
	tx := s.db.Where("name = ?", name).First(&account)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrAccountNotFound
		}
		return nil, tx.Error
	}
	return &account, nil
}

// CreateAccount creates a new account with an already-hashed credential.
func (s *AccountsStore) CreateAccount(name, passwordHash string, role model.Role) (*model.Account, error) {
	if s.ExistsByName(name) {
		return nil, store.ErrAccountExists
	}

	account := model.Account{
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
