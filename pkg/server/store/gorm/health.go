package gorm

import (
	"gorm.io/gorm"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore provides health check operations using GORM
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity verifies database connectivity
func (s *HealthStore) CheckConnectivity() error {
	return s.db.Exec("SELECT 1").Error
}

// Counts returns row counts shown on the diagnostic console
func (s *HealthStore) Counts() (accounts, contents, sessions int64, err error) {
	if err = s.db.Model(&model.Account{}).Count(&accounts).Error; err != nil {
		return
	}
	if err = s.db.Model(&model.Content{}).Count(&contents).Error; err != nil {
		return
	}
	err = s.db.Model(&model.Session{}).Count(&sessions).Error
	return
}
