package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyStore struct {
	values map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "sd:idempotency:" + scope + ":" + id
}

func newOrdersRouter(store *memoryIdempotencyStore, hits *atomic.Int32) http.Handler {
	router := chi.NewRouter()
	router.Use(Idempotency(store, nil))
	router.Post("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	})
	return router
}

func TestIdempotencyRequiresKeyOnOrders(t *testing.T) {
	var hits atomic.Int32
	router := newOrdersRouter(newMemoryIdempotencyStore(), &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), hits.Load())
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var hits atomic.Int32
	router := newOrdersRouter(newMemoryIdempotencyStore(), &hits)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(second, req)

	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), hits.Load())
}

func TestIdempotencyDoesNotCacheServerErrors(t *testing.T) {
	var hits atomic.Int32
	router := chi.NewRouter()
	router.Use(Idempotency(newMemoryIdempotencyStore(), nil))
	router.Post("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		// First attempt fails on a dependency, the retry succeeds.
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusServiceUnavailable, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(second, req)

	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, int32(2), hits.Load())

	// The successful response is the one that gets replayed afterwards.
	third := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(third, req)

	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, int32(2), hits.Load())
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	var hits atomic.Int32
	router := newOrdersRouter(newMemoryIdempotencyStore(), &hits)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"email":"other@b.com"}`))
	req.Header.Set("Idempotency-Key", "k1")
	router.ServeHTTP(second, req)

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, int32(1), hits.Load())
}

func TestIdempotencyPassThroughWithoutStore(t *testing.T) {
	var hits atomic.Int32
	router := chi.NewRouter()
	router.Use(Idempotency(nil, nil))
	router.Post("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(1), hits.Load())
}
