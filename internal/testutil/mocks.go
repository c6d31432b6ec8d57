package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/medidir/doctor-directory-api/internal/config"
	"github.com/medidir/doctor-directory-api/internal/database/models"
	"github.com/medidir/doctor-directory-api/internal/database/service"
)

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestConfig returns a config suitable for unit tests.
func NewTestConfig() *config.Config {
	return &config.Config{
		AppEnv:                "test",
		JWTSecret:             "test-secret",
		AccessTokenExpiration: 3600,
		MaxUploadSize:         5 * 1024 * 1024,
	}
}

// ==================== REPOSITORY MOCKS ====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockAccessTokenRepository struct {
	mock.Mock
}

func (m *MockAccessTokenRepository) Create(token *models.AccessToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockAccessTokenRepository) FindByID(id string) (*models.AccessToken, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) RevokeByID(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccessTokenRepository) DeleteExpiredTokens() error {
	args := m.Called()
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindAll() ([]models.Doctor, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByID(id uint) (*models.Doctor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ==================== BLOB STORE FAKE ====================

// MemoryBlobStore is an in-memory storage.BlobStore for tests. Keys are
// deterministic ("<folder>/blob-<n><ext>") so assertions can predict them.
type MemoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	seq     int
	BaseURL string
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		objects: make(map[string][]byte),
		BaseURL: "http://cdn.test/public",
	}
}

func (s *MemoryBlobStore) Store(_ context.Context, folder, filename, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("%s/blob-%d%s", folder, s.seq, strings.ToLower(path.Ext(filename)))
	s.objects[key] = data
	return key, nil
}

func (s *MemoryBlobStore) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

func (s *MemoryBlobStore) URL(path string) string {
	return s.BaseURL + "/" + path
}

// Len reports how many blobs are currently stored.
func (s *MemoryBlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// ==================== SERVICE FACTORIES ====================

// CreateAuthServiceWithMocks wires an auth service over mock repositories.
func CreateAuthServiceWithMocks(userRepo *MockUserRepository, tokenRepo *MockAccessTokenRepository) service.AuthService {
	return service.NewAuthService(userRepo, tokenRepo, NewTestConfig(), NewTestLogger())
}
