package model

import (
	"time"

	"github.com/google/uuid"
)

// Content is a single bulletin board post. The owner is fixed at
// creation and never reassigned; ModifiedAt moves forward on every
// successful edit and is never earlier than CreatedAt.
type Content struct {
	ID          int64        `gorm:"column:id;primaryKey"`
	Subject     string       `gorm:"column:subject;not null"`
	Text        string       `gorm:"column:text;not null"`
	AccountID   int64        `gorm:"column:account_id;not null"`
	Owner       Account      `gorm:"foreignKey:AccountID"`
	CreatedAt   time.Time    `gorm:"column:created_at"`
	ModifiedAt  time.Time    `gorm:"column:modified_at"`
	Attachments []Attachment `gorm:"foreignKey:ContentID"`
}

func (Content) TableName() string {
	return "contents"
}

// Attachment is an opaque file payload stored alongside a post. Only
// the filename is interpreted; the bytes are passed through untouched.
type Attachment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ContentID int64     `gorm:"column:content_id;not null"`
	Filename  string    `gorm:"column:filename;not null"`
	Data      []byte    `gorm:"column:data;type:bytea;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "content_attachments"
}
