package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	return db, mock
}

func TestAccountsFindByName(t *testing.T) {
	t.Run("returns the stored account", func(t *testing.T) {
		db, mock := newMockDB(t)
		accounts := NewAccountsStore(db)

		rows := sqlmock.NewRows([]string{"id", "name", "password_hash", "role", "created_at"}).
			AddRow(7, "tester", "$2a$10$hash", "user", time.Now())
		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE name = \$1`).
			WithArgs("tester", 1).
			WillReturnRows(rows)

		account, err := accounts.FindByName("tester")

		require.NoError(t, err)
		assert.Equal(t, int64(7), account.ID)
		assert.Equal(t, "tester", account.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps an empty result to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		accounts := NewAccountsStore(db)

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE name = \$1`).
			WithArgs("ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := accounts.FindByName("ghost")

		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestAccountsExistsByName(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountsStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE name = \$1`).
		WithArgs("tester").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	assert.True(t, accounts.ExistsByName("tester"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountsCreateAccount(t *testing.T) {
	t.Run("rejects a taken name without inserting", func(t *testing.T) {
		db, mock := newMockDB(t)
		accounts := NewAccountsStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE name = \$1`).
			WithArgs("tester").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := accounts.CreateAccount("tester", "hash", 0)

		assert.ErrorIs(t, err, store.ErrAccountExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts a fresh name", func(t *testing.T) {
		db, mock := newMockDB(t)
		accounts := NewAccountsStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE name = \$1`).
			WithArgs("newbie").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "accounts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
		mock.ExpectCommit()

		account, err := accounts.CreateAccount("newbie", "hash", 0)

		require.NoError(t, err)
		assert.Equal(t, int64(8), account.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionsFindSession(t *testing.T) {
	t.Run("preloads the owning account", func(t *testing.T) {
		db, mock := newMockDB(t)
		sessions := NewSessionsStore(db)

		expires := time.Now().Add(time.Hour)
		mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE token = \$1`).
			WithArgs("token123", 1).
			WillReturnRows(sqlmock.NewRows([]string{"token", "account_id", "created_at", "expires_at"}).
				AddRow("token123", 7, time.Now(), expires))
		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE "accounts"\."id" = \$1`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).
				AddRow(7, "tester", "user"))

		session, err := sessions.FindSession("token123")

		require.NoError(t, err)
		assert.Equal(t, int64(7), session.AccountID)
		assert.Equal(t, "tester", session.Account.Name)
		assert.False(t, session.Expired())
	})

	t.Run("maps an empty result to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		sessions := NewSessionsStore(db)

		mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE token = \$1`).
			WithArgs("bogus", 1).
			WillReturnRows(sqlmock.NewRows([]string{"token"}))

		_, err := sessions.FindSession("bogus")

		assert.ErrorIs(t, err, store.ErrSessionNotFound)
	})
}

func TestSessionsDeleteSession(t *testing.T) {
	db, mock := newMockDB(t)
	sessions := NewSessionsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions" WHERE token = \$1`).
		WithArgs("token123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, sessions.DeleteSession("token123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsDeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	sessions := NewSessionsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions" WHERE expires_at < \$1`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	assert.NoError(t, sessions.DeleteExpired())
}

func TestContentsSave(t *testing.T) {
	t.Run("inserts a new record with its attachments", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "contents"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectExec(`INSERT INTO "content_attachments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		saved, err := contents.Save(&model.Content{
			Subject:   "subject",
			Text:      "text",
			AccountID: 7,
			Attachments: []model.Attachment{
				{Filename: "notes.txt", Data: []byte("hello")},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), saved.ID)
		require.Len(t, saved.Attachments, 1)
		assert.NotEqual(t, uuid.Nil, saved.Attachments[0].ID)
		assert.Equal(t, int64(11), saved.Attachments[0].ContentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates subject and text in place", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "contents" SET`).
			WithArgs(sqlmock.AnyArg(), "새 제목", "새 내용", 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, err := contents.Save(&model.Content{
			ID:         5,
			Subject:    "새 제목",
			Text:       "새 내용",
			AccountID:  7,
			ModifiedAt: time.Now(),
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leaves stored attachments untouched on update", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		// Only the UPDATE may hit the database: re-inserting the
		// attachment row would collide with its existing primary key.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "contents" SET`).
			WithArgs(sqlmock.AnyArg(), "edited", "edited text", 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		stored := &model.Content{
			ID:         5,
			Subject:    "edited",
			Text:       "edited text",
			AccountID:  7,
			ModifiedAt: time.Now(),
			Attachments: []model.Attachment{
				{ID: uuid.New(), ContentID: 5, Filename: "notes.txt"},
			},
		}

		saved, err := contents.Save(stored)

		require.NoError(t, err)
		assert.Len(t, saved.Attachments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContentsDeleteByID(t *testing.T) {
	t.Run("deletes an existing record", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "contents" WHERE id = \$1`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, contents.DeleteByID(5))
	})

	t.Run("maps zero affected rows to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "contents" WHERE id = \$1`).
			WithArgs(404).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, contents.DeleteByID(404), store.ErrContentNotFound)
	})
}

func TestContentsListPage(t *testing.T) {
	db, mock := newMockDB(t)
	contents := NewContentsStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "contents"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "contents" ORDER BY id desc LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "text", "account_id"}).
			AddRow(15, "s", "t", 7).
			AddRow(14, "s", "t", 7))
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE "accounts"\."id" = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "tester"))

	page, err := contents.ListPage(2, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrev())
	assert.True(t, page.HasNext())
	assert.Len(t, page.Contents, 2)
	assert.Equal(t, "tester", page.Contents[0].Owner.Name)
}

func TestContentsFindAttachment(t *testing.T) {
	t.Run("returns the payload", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "content_attachments" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "content_id", "filename", "data", "created_at"}).
				AddRow(id, 5, "notes.txt", []byte("hello"), time.Now()))

		attachment, err := contents.FindAttachment(id)

		require.NoError(t, err)
		assert.Equal(t, "notes.txt", attachment.Filename)
		assert.Equal(t, []byte("hello"), attachment.Data)
	})

	t.Run("maps an empty result to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		contents := NewContentsStore(db)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "content_attachments" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := contents.FindAttachment(id)

		assert.ErrorIs(t, err, store.ErrAttachmentNotFound)
	})
}
