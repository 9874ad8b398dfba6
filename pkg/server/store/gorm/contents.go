package gorm

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// Ensure ContentsStore implements store.ContentsStore
var _ store.ContentsStore = (*ContentsStore)(nil)

// ContentsStore implements store.ContentsStore using GORM
type ContentsStore struct {
	db *gorm.DB
}

// NewContentsStore creates a new ContentsStore
func NewContentsStore(db *gorm.DB) *ContentsStore {
	return &ContentsStore{db: db}
}

// Save persists the content and its attachments in one transaction.
func (s *ContentsStore) Save(content *model.Content) (*model.Content, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attachments := content.Attachments
		content.Attachments = nil

		if content.ID == 0 {
			if err := tx.Create(content).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&model.Content{}).
				Where("id = ?", content.ID).
				Updates(map[string]interface{}{
					"subject":     content.Subject,
					"text":        content.Text,
					"modified_at": content.ModifiedAt,
				}).Error; err != nil {
				return err
			}
		}

		for i := range attachments {
			// Attachments loaded with the record already have ids and
			// live rows; only fresh uploads get inserted.
			if attachments[i].ID != uuid.Nil {
				continue
			}
			attachments[i].ID = uuid.New()
			attachments[i].ContentID = content.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return err
			}
		}
		content.Attachments = attachments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// FindAll returns every content record
func (s *ContentsStore) FindAll() ([]model.Content, error) {
	var contents []model.Content
	if err := s.db.Order("id").Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

// FindByID retrieves a content record with owner and attachment metadata.
func (s *ContentsStore) FindByID(id int64) (*model.Content, error) {
	var content model.Content
	tx := s.db.
		Preload("Owner").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			// metadata only; payloads are fetched per attachment
			return db.Select("id", "content_id", "filename", "created_at")
		}).
		Where("id = ?", id).
		First(&content)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrContentNotFound
		}
		return nil, tx.Error
	}
	return &content, nil
}

// DeleteByID removes a content record; absence surfaces as not found.
func (s *ContentsStore) DeleteByID(id int64) error {
	tx := s.db.Where("id = ?", id).Delete(&model.Content{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrContentNotFound
	}
	return nil
}

// ListPage returns one newest-first page of the listing. Pages are
// 1-based.
func (s *ContentsStore) ListPage(page, size int) (*store.ContentPage, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}

	var total int64
	if err := s.db.Model(&model.Content{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var contents []model.Content
	err := s.db.
		Preload("Owner").
		Order("id desc").
		Limit(size).
		Offset((page - 1) * size).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &store.ContentPage{
		Contents:   contents,
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// FindAttachment retrieves a stored attachment payload.
func (s *ContentsStore) FindAttachment(id uuid.UUID) (*model.Attachment, error) {
	var attachment model.Attachment
	tx := s.db.Where("id = ?", id).First(&attachment)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrAttachmentNotFound
		}
		return nil, tx.Error
	}
	return &attachment, nil
}
