package gorm

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// Ensure SessionsStore implements store.SessionsStore
var _ store.SessionsStore = (*SessionsStore)(nil)

// SessionsStore implements store.SessionsStore using GORM
type SessionsStore struct {
	db *gorm.DB
}

// NewSessionsStore creates a new SessionsStore
func NewSessionsStore(db *gorm.DB) *SessionsStore {
	return &SessionsStore{db: db}
}

// CreateSession establishes a session for the account.
func (s *SessionsStore) CreateSession(accountID int64, ttl time.Duration) (*model.Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := model.Session{
		Token:     base64.URLEncoding.EncodeToString(tokenBytes),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindSession resolves a cookie token to a session with its account.
func (s *SessionsStore) FindSession(token string) (*model.Session, error) {
	var session model.Session
	tx := s.db.Preload("Account").Where("token = ?", token).First(&session)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, tx.Error
	}
	return &session, nil
}

// DeleteSession invalidates a session.
func (s *SessionsStore) DeleteSession(token string) error {
	return s.db.Where("token = ?", token).Delete(&model.Session{}).Error
}

// DeleteExpired removes all sessions past their expiry
func (s *SessionsStore) DeleteExpired() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&model.Session{}).Error
}
