package endpoints_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// MockAccountsStore is a mock implementation of store.AccountsStore
type MockAccountsStore struct {
	mock.Mock
}

func (m *MockAccountsStore) ExistsByName(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func (m *MockAccountsStore) FindByName(name string) (*model.Account, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountsStore) CreateAccount(name, passwordHash string, role model.Role) (*model.Account, error) {
	args := m.Called(name, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockContentsStore is a mock implementation of store.ContentsStore
type MockContentsStore struct {
	mock.Mock
}

func (m *MockContentsStore) Save(content *model.Content) (*model.Content, error) {
	args := m.Called(content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Content), args.Error(1)
}

func (m *MockContentsStore) FindAll() ([]model.Content, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Content), args.Error(1)
}

func (m *MockContentsStore) FindByID(id int64) (*model.Content, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Content), args.Error(1)
}

func (m *MockContentsStore) DeleteByID(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockContentsStore) ListPage(page, size int) (*store.ContentPage, error) {
	args := m.Called(page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ContentPage), args.Error(1)
}

func (m *MockContentsStore) FindAttachment(id uuid.UUID) (*model.Attachment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

// MockSessionsStore is a mock implementation of store.SessionsStore
type MockSessionsStore struct {
	mock.Mock
}

func (m *MockSessionsStore) CreateSession(accountID int64, ttl time.Duration) (*model.Session, error) {
	args := m.Called(accountID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionsStore) FindSession(token string) (*model.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionsStore) DeleteSession(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockSessionsStore) DeleteExpired() error {
	args := m.Called()
	return args.Error(0)
}

// MockHealthStore is a mock implementation of store.HealthStore
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockHealthStore) Counts() (int64, int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}
