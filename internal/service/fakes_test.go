package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryRevoker() *memoryRevoker {
	return &memoryRevoker{revoked: map[string]time.Duration{}}
}

func (m *memoryRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = ttl
	return nil
}

func (m *memoryRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]service.RecipeDraft
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[string]service.RecipeDraft{}}
}

func (m *memoryDrafts) Save(ctx context.Context, draft *service.RecipeDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	m.drafts[draft.ID] = *draft
	return nil
}

func (m *memoryDrafts) Get(ctx context.Context, id string) (*service.RecipeDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	return &d, nil
}

func (m *memoryDrafts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateRecipe(ctx context.Context, req service.GenerationRequest) (*service.GeneratedRecipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedRecipe), args.Error(1)
}

type memoryObjectStore struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = body
	m.types[key] = contentType
	return nil
}

func (m *memoryObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "https://bucket.test/" + key + "?expires=" + expiration.String(), nil
}

func seedPreferences(t interface{ Fatalf(string, ...any) }, db *gorm.DB, names ...string) []models.Preference {
	prefs := make([]models.Preference, 0, len(names))
	for _, name := range names {
		p := models.Preference{Name: name}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("failed to seed preference %s: %v", name, err)
		}
		prefs = append(prefs, p)
	}
	return prefs
}

func seedUser(t interface{ Fatalf(string, ...any) }, db *gorm.DB, email string) models.User {
	u := models.User{Email: email, PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}
