package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/healthymeal/backend/internal/api"
	"github.com/pageza/healthymeal/backend/internal/middleware"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/service"
	"github.com/pageza/healthymeal/backend/internal/testhelpers"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memoryRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *memoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]service.RecipeDraft
}

func (m *memoryDrafts) Save(_ context.Context, draft *service.RecipeDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	m.drafts[draft.ID] = *draft
	return nil
}

func (m *memoryDrafts) Get(_ context.Context, id string) (*service.RecipeDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	return &d, nil
}

func (m *memoryDrafts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

type memoryCounters struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *memoryCounters) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

type memoryObjectStore struct {
	objects map[string][]byte
}

func (m *memoryObjectStore) PutObject(_ context.Context, key string, body []byte, _ string) error {
	m.objects[key] = body
	return nil
}

func (m *memoryObjectStore) GeneratePresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.test/" + key, nil
}

// stubGenerator returns a fixed recipe, or err when set.
type stubGenerator struct {
	mu    sync.Mutex
	err   error
	calls []service.GenerationRequest
}

func (g *stubGenerator) GenerateRecipe(_ context.Context, req service.GenerationRequest) (*service.GeneratedRecipe, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &service.GeneratedRecipe{
		Name:         "Tomato Soup",
		Ingredients:  "tomatoes\nsalt",
		Instructions: "Simmer.\nBlend.",
	}, nil
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	drafts    *memoryDrafts
	generator *stubGenerator
	objects   *memoryObjectStore
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithLimit(t, 100)
}

func newTestEnvWithLimit(t *testing.T, generationLimit int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	env := &testEnv{
		db:        db,
		drafts:    &memoryDrafts{drafts: map[string]service.RecipeDraft{}},
		generator: &stubGenerator{},
		objects:   &memoryObjectStore{objects: map[string][]byte{}},
	}

	authService := service.NewAuthService(db, "test-secret", time.Hour, &memoryRevoker{revoked: map[string]bool{}})
	preferenceService := service.NewPreferenceService(db)
	recipeService := service.NewRecipeService(db, env.drafts)
	generationService := service.NewGenerationService(preferenceService, env.generator, env.drafts)
	exportService := service.NewExportService(recipeService, env.objects)
	limiter := middleware.NewGenerationRateLimiter(&memoryCounters{counts: map[string]int64{}}, generationLimit, time.Hour)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	api.NewHealthHandler(db).RegisterRoutes(r)
	v1 := r.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewPreferenceHandler(preferenceService, authService).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, generationService, authService, limiter).RegisterRoutes(v1)
	api.NewExportHandler(exportService, authService).RegisterRoutes(v1)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns its token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	return resp.Token
}

func (e *testEnv) seedPreferences(t *testing.T, names ...string) []models.Preference {
	t.Helper()
	prefs := make([]models.Preference, 0, len(names))
	for _, name := range names {
		p := models.Preference{Name: name}
		require.NoError(t, e.db.Create(&p).Error)
		prefs = append(prefs, p)
	}
	return prefs
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp middleware.ErrorResponse
	decode(t, w, &resp)
	return resp.Error
}
