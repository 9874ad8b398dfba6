// Package board orchestrates the content lifecycle: creating, reading,
// updating, deleting and listing posts on behalf of an authenticated
// identity.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kimyoungq/webboard/pkg/audit"
	"github.com/kimyoungq/webboard/pkg/identity"
	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// ErrForbidden is returned when the requester may not mutate a record
var ErrForbidden = errors.New("forbidden")

// ErrValidation is returned when a required field is empty
var ErrValidation = errors.New("subject and text are required")

// Attachment is an uploaded file accepted at create time
type Attachment struct {
	Filename string
	Data     []byte
}

// Lifecycle coordinates content operations against the stores. All
// operations require an authenticated identity; the session middleware
// guarantees one is present before any handler calls in here.
type Lifecycle struct {
	accounts store.AccountsStore
	contents store.ContentsStore
}

// NewLifecycle creates a Lifecycle over the given stores
func NewLifecycle(accounts store.AccountsStore, contents store.ContentsStore) *Lifecycle {
	return &Lifecycle{
		accounts: accounts,
		contents: contents,
	}
}

// Create validates and persists a new post owned by the requester,
// returning the generated identifier. The record and its attachments
// are committed as one unit.
func (l *Lifecycle) Create(ctx context.Context, requester *identity.Identity, subject, text string, attachments []Attachment) (int64, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(text) == "" {
		return 0, ErrValidation
	}

	// Resolve the acting account before constructing anything so a
	// stale session can never produce an ownerless record.
	owner, err := l.accounts.FindByName(requester.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve requester %q: %w", requester.Name, err)
	}

	now := time.Now()
	content := model.Content{
		Subject:    subject,
		Text:       text,
		AccountID:  owner.ID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	for _, a := range attachments {
		content.Attachments = append(content.Attachments, model.Attachment{
			Filename: a.Filename,
			Data:     a.Data,
		})
	}

	saved, err := l.contents.Save(&content)
	if err != nil {
		audit.Log(audit.ContentEvent{
			AccountName:  requester.Name,
			ClientIP:     requesterIP(requester),
			Operation:    "create",
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return 0, err
	}

	audit.Log(audit.ContentEvent{
		AccountName: requester.Name,
		ClientIP:    requesterIP(requester),
		ContentID:   saved.ID,
		Operation:   "create",
		Success:     true,
	})
	return saved.ID, nil
}

// Read returns a post unchanged. Any authenticated identity may read
// any record; there is no ownership check on reads.
func (l *Lifecycle) Read(ctx context.Context, requester *identity.Identity, id int64) (*model.Content, error) {
	content, err := l.contents.FindByID(id)
	if err != nil {
		audit.Log(audit.ContentEvent{
			AccountName:  requesterName(requester),
			ClientIP:     requesterIP(requester),
			ContentID:    id,
			Operation:    "read",
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	audit.Log(audit.ContentEvent{
		AccountName: requesterName(requester),
		ClientIP:    requesterIP(requester),
		ContentID:   id,
		Operation:   "read",
		Success:     true,
	})
	return content, nil
}

// Update mutates subject and text of an existing post and advances its
// modification timestamp. Only the owner (or an admin) may update.
func (l *Lifecycle) Update(ctx context.Context, requester *identity.Identity, id int64, subject, text string) error {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(text) == "" {
		return ErrValidation
	}

	content, err := l.contents.FindByID(id)
	if err != nil {
		return err
	}

	if !l.CanMutate(requester, content) {
		audit.Log(audit.ContentEvent{
			AccountName:  requester.Name,
			ClientIP:     requesterIP(requester),
			ContentID:    id,
			Operation:    "update",
			Success:      false,
			ErrorMessage: "not the owner",
		})
		return ErrForbidden
	}

	content.Subject = subject
	content.Text = text
	content.ModifiedAt = time.Now()

	if _, err := l.contents.Save(content); err != nil {
		return err
	}

	audit.Log(audit.ContentEvent{
		AccountName: requester.Name,
		ClientIP:    requesterIP(requester),
		ContentID:   id,
		Operation:   "update",
		Success:     true,
	})
	return nil
}

// Delete removes a post entirely. Only the owner (or an admin) may
// delete.
func (l *Lifecycle) Delete(ctx context.Context, requester *identity.Identity, id int64) error {
	content, err := l.contents.FindByID(id)
	if err != nil {
		return err
	}

	if !l.CanMutate(requester, content) {
		audit.Log(audit.ContentEvent{
			AccountName:  requester.Name,
			ClientIP:     requesterIP(requester),
			ContentID:    id,
			Operation:    "delete",
			Success:      false,
			ErrorMessage: "not the owner",
		})
		return ErrForbidden
	}

	if err := l.contents.DeleteByID(id); err != nil {
		return err
	}

	audit.Log(audit.ContentEvent{
		AccountName: requester.Name,
		ClientIP:    requesterIP(requester),
		ContentID:   id,
		Operation:   "delete",
		Success:     true,
	})
	return nil
}

// List returns one page of the listing view, newest first.
func (l *Lifecycle) List(ctx context.Context, page, size int) (*store.ContentPage, error) {
	return l.contents.ListPage(page, size)
}

// Attachment retrieves a stored attachment payload for download.
func (l *Lifecycle) Attachment(ctx context.Context, id string) (*model.Attachment, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrAttachmentNotFound
	}
	return l.contents.FindAttachment(parsed)
}

func requesterName(requester *identity.Identity) string {
	if requester == nil {
		return ""
	}
	return requester.Name
}

func requesterIP(requester *identity.Identity) string {
	if requester == nil || requester.RemoteIP == nil {
		return ""
	}
	return requester.RemoteIP.String()
}

// CanMutate is the single authorization check for update and delete:
// the requester must own the record, or carry the admin role.
func (l *Lifecycle) CanMutate(requester *identity.Identity, content *model.Content) bool {
	if requester == nil || content == nil {
		return false
	}
	if requester.IsAdmin() {
		return true
	}
	return requester.AccountID == content.AccountID
}
