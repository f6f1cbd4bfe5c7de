package service_test

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, name, address string) (*model.Tenant, error) {
	args := m.Called(ctx, name, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id int64) (*model.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*model.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, id int64, name, address string) (*model.Tenant, error) {
	args := m.Called(ctx, id, name, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockUserCache struct {
	mock.Mock
}

func (m *MockUserCache) SetUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserCache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserCache) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssueAccessToken(claims model.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) IssueRefreshToken(claims model.Claims, recordID int64) (string, error) {
	args := m.Called(claims, recordID)
	return args.String(0), args.Error(1)
}

// plainCredentials : пароль хранится как "hashed:" + plain
type plainCredentials struct{}

func (plainCredentials) ComparePlaintextToStored(plain, stored string) bool {
	return "hashed:"+plain == stored
}

func (plainCredentials) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

// recordingCredentials : plainCredentials, запоминающий хэши, с которыми сравнивался пароль
type recordingCredentials struct {
	plainCredentials
	mu       sync.Mutex
	compared []string
}

func (c *recordingCredentials) ComparePlaintextToStored(plain, stored string) bool {
	c.mu.Lock()
	c.compared = append(c.compared, stored)
	c.mu.Unlock()
	return c.plainCredentials.ComparePlaintextToStored(plain, stored)
}

// memoryRefreshStore : хранилище refresh записей в памяти с монотонными id
type memoryRefreshStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]model.RefreshTokenRecord
	failOn  string
}

func newMemoryRefreshStore() *memoryRefreshStore {
	return &memoryRefreshStore{records: map[int64]model.RefreshTokenRecord{}}
}

var errStoreDown = errors.New("store is down")

func (s *memoryRefreshStore) Persist(_ context.Context, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "persist" {
		return nil, errStoreDown
	}
	return s.insert(userID, expiresAt), nil
}

func (s *memoryRefreshStore) insert(userID int64, expiresAt time.Time) *model.RefreshTokenRecord {
	s.nextID++
	record := model.RefreshTokenRecord{ID: s.nextID, UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	s.records[record.ID] = record
	return &record
}

func (s *memoryRefreshStore) FindByID(_ context.Context, id int64) (*model.RefreshTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "find" {
		return nil, errStoreDown
	}
	record, ok := s.records[id]
	if !ok {
		return nil, apperr.New(apperr.ErrNotFound, "refresh record not found")
	}
	return &record, nil
}

func (s *memoryRefreshStore) DeleteByID(_ context.Context, id, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok || record.UserID != userID {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}

func (s *memoryRefreshStore) Rotate(_ context.Context, oldID, userID int64, expiresAt time.Time) (*model.RefreshTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[oldID]; !ok || record.UserID != userID {
		return nil, apperr.ErrInvalidCredential
	}
	delete(s.records, oldID)
	return s.insert(userID, expiresAt), nil
}

func (s *memoryRefreshStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "purge" {
		return 0, errStoreDown
	}
	var purged int64
	for id, record := range s.records {
		if !record.ExpiresAt.After(now) {
			delete(s.records, id)
			purged++
		}
	}
	return purged, nil
}

func (s *memoryRefreshStore) has(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	return ok
}

func (s *memoryRefreshStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
