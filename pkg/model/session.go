package model

import "time"

// Session is a server-side login session. The token is the opaque
// value carried by the session cookie.
type Session struct {
	Token     string    `gorm:"column:token;primaryKey"`
	AccountID int64     `gorm:"column:account_id;not null"`
	Account   Account   `gorm:"foreignKey:AccountID"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
