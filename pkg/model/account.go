package model

import "time"

// Account represents a registered identity. The name doubles as the
// login handle and is unique across the board.
type Account struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         Role      `gorm:"column:role;not null;default:user"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Account) TableName() string {
	return "accounts"
}
