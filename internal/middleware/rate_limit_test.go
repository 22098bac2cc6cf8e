package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthymeal/backend/internal/testhelpers"
)

type memoryCounters struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounters) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func newLimitedRouter(limiter *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	})
	r.Use(limiter.RateLimitMiddleware())
	r.POST("/generate", func(c *gin.Context) { c.Status(http.StatusAccepted) })
	return r
}

func doPost(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewGenerationRateLimiter(&memoryCounters{}, 2, time.Hour)
	fixed := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	r := newLimitedRouter(limiter, uuid.New())

	w := doPost(r)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1714561200", w.Header().Get("X-RateLimit-Reset"))

	w = doPost(r)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = doPost(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2700", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	// A new window resets the count.
	limiter.now = func() time.Time { return fixed.Add(time.Hour) }
	w = doPost(r)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRateLimitPerUser(t *testing.T) {
	store := &memoryCounters{}
	first := newLimitedRouter(NewGenerationRateLimiter(store, 1, time.Hour), uuid.New())
	second := newLimitedRouter(NewGenerationRateLimiter(store, 1, time.Hour), uuid.New())

	assert.Equal(t, http.StatusAccepted, doPost(first).Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(first).Code)
	assert.Equal(t, http.StatusAccepted, doPost(second).Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := NewGenerationRateLimiter(&memoryCounters{err: errors.New("redis down")}, 1, time.Hour)
	r := newLimitedRouter(limiter, uuid.New())

	w := doPost(r)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimitRequiresUser(t *testing.T) {
	limiter := NewGenerationRateLimiter(&memoryCounters{}, 1, time.Hour)
	r := newLimitedRouter(limiter, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, doPost(r).Code)
}

func TestRedisCounterStore(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	store := NewRedisCounterStore(client)
	ctx := context.Background()

	n, err := store.Increment(ctx, "rate_limit:test", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Increment(ctx, "rate_limit:test", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ttl, err := client.TTL(ctx, "rate_limit:test").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
