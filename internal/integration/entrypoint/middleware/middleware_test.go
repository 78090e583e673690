package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-ledger/api/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingObserver struct {
	routes []string
}

func (o *countingObserver) ObserveRateLimited(route string) {
	o.routes = append(o.routes, route)
}

type brokenStore struct{}

func (brokenStore) Allow(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func newEngine(limiter *RateLimiter) *gin.Engine {
	engine := gin.New()
	engine.GET("/download", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func get(engine http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	engine.ServeHTTP(rec, req)
	return rec
}

func TestMemoryStore_FixedWindow(t *testing.T) {
	store := NewMemoryStore(2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := store.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := store.Allow(ctx, "k")
	assert.False(t, allowed)

	// Other keys have their own window
	allowed, _ = store.Allow(ctx, "other")
	assert.True(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, _ = store.Allow(ctx, "k")
	assert.True(t, allowed)

	store.Cleanup()
	assert.Len(t, store.entries, 1)

	store.Reset()
	assert.Empty(t, store.entries)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := store.Allow(ctx, "route|ip")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := store.Allow(ctx, "route|ip")
	require.NoError(t, err)
	assert.False(t, allowed)

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:route|ip"))

	mr.FastForward(time.Minute + time.Second)
	allowed, err = store.Allow(ctx, "route|ip")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisStore_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedisStore(client, 2, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestRateLimiter_Middleware(t *testing.T) {
	observer := &countingObserver{}
	engine := newEngine(NewRateLimiter(NewMemoryStore(1, time.Minute), observer))

	assert.Equal(t, http.StatusOK, get(engine, "/download").Code)

	rec := get(engine, "/download")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "REQ-020001", body.Code)
	assert.Equal(t, []string{"/download"}, observer.routes)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	engine := newEngine(NewRateLimiter(brokenStore{}, nil))

	assert.Equal(t, http.StatusOK, get(engine, "/download").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(NewMemoryStore(1, time.Minute), nil)
	limiter.Disable()
	engine := newEngine(limiter)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(engine, "/download").Code)
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestLogger())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	rec := get(engine, "/ping")
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

type recordingObserver struct {
	route  string
	status int
}

func (o *recordingObserver) ObserveRequest(_ string, route string, status int, _ time.Duration) {
	o.route = route
	o.status = status
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	observer := &recordingObserver{}
	engine := gin.New()
	engine.Use(Metrics(observer))
	engine.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	get(engine, "/items/42")
	assert.Equal(t, "/items/:id", observer.route)
	assert.Equal(t, http.StatusNotFound, observer.status)

	get(engine, "/nowhere")
	assert.Equal(t, "unmatched", observer.route)
}
