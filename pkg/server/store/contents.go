package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/kimyoungq/webboard/pkg/model"
)

// ErrContentNotFound is returned when a content record doesn't exist
var ErrContentNotFound = errors.New("content not found")

// ErrAttachmentNotFound is returned when an attachment doesn't exist
var ErrAttachmentNotFound = errors.New("attachment not found")

// ContentPage is one page of the listing view
type ContentPage struct {
	Contents   []model.Content
	Page       int
	PageSize   int
	TotalCount int64
	TotalPages int
}

// HasPrev reports whether an earlier page exists. Pages are 1-based.
func (p *ContentPage) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a later page exists
func (p *ContentPage) HasNext() bool {
	return p.Page < p.TotalPages
}

// ContentsStore abstracts content storage operations
type ContentsStore interface {
	// Save persists the content and its attachments as one unit,
	// assigning an identifier when absent, and returns the stored
	// record with the identifier populated.
	Save(content *model.Content) (*model.Content, error)

	// FindAll returns every content record
	FindAll() ([]model.Content, error)

	// FindByID retrieves a content record with its owner and
	// attachment metadata. Returns ErrContentNotFound if absent.
	FindByID(id int64) (*model.Content, error)

	// DeleteByID removes a content record and, by cascade, its
	// attachments. Returns ErrContentNotFound if absent.
	DeleteByID(id int64) error

	// ListPage returns one newest-first page of the listing
	ListPage(page, size int) (*ContentPage, error)

	// FindAttachment retrieves a stored attachment payload.
	// Returns ErrAttachmentNotFound if absent.
	FindAttachment(id uuid.UUID) (*model.Attachment, error)
}
