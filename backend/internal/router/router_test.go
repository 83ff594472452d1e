package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meetiosdev/topics-api/backend/internal/handler"
	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	mw "github.com/meetiosdev/topics-api/shared/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownId = "3f1c2a4e-8b6d-4c3a-9e2f-1a2b3c4d5e6f"

type fakeTopics struct{}

func (fakeTopics) List(ctx context.Context, page, limit int) (*domain.TopicPage, error) {
	return &domain.TopicPage{Topics: []domain.Topic{}, Pagination: domain.Pagination{CurrentPage: page}}, nil
}

func (fakeTopics) Get(ctx context.Context, id domain.TopicId) (*domain.Topic, error) {
	if id != knownId {
		return nil, errors.ErrNotFound
	}
	return &domain.Topic{Id: id, Name: "science", Description: "d", Color: "#4A7B9D"}, nil
}

func (fakeTopics) GetWithPosts(ctx context.Context, id domain.TopicId) (*domain.TopicWithPosts, error) {
	if id != knownId {
		return nil, errors.ErrNotFound
	}
	return &domain.TopicWithPosts{Topic: domain.Topic{Id: id}, Posts: []domain.Post{}}, nil
}

type fakeSeed struct{}

func (fakeSeed) Reseed(ctx context.Context, records domain.FixtureSet) (*domain.SeedSummary, error) {
	return &domain.SeedSummary{TopicsCreated: 1}, nil
}

type fakeHealth struct{}

func (fakeHealth) Ping(ctx context.Context) error { return nil }

func newTestRouter(requests int) http.Handler {
	cfg := &config.Config{Public: config.Default()}
	cfg.Public.RateLimit.Requests = requests
	cfg.Public.RateLimit.Window = time.Hour
	cfg.Public.Cors.AllowedOrigins = []string{"http://localhost:3000"}
	return New(handler.New(fakeTopics{}, fakeSeed{}, fakeHealth{}, cfg), cfg)
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(100)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/topics", http.StatusOK},
		{http.MethodGet, "/api/topics?page=0", http.StatusBadRequest},
		{http.MethodGet, "/api/topics/" + knownId, http.StatusOK},
		{http.MethodGet, "/api/topics/" + knownId + "/posts", http.StatusOK},
		{http.MethodGet, "/api/topics/7d0b1b3c-1f5e-4a8e-9c4d-2b6f8e0a1c3d", http.StatusNotFound},
		{http.MethodGet, "/topics", http.StatusOK},
		{http.MethodGet, "/topics/" + knownId, http.StatusOK},
		{http.MethodGet, "/topics/" + knownId + "/posts", http.StatusOK},
		{http.MethodPost, "/api/seed", http.StatusOK},
		{http.MethodGet, "/api-docs", http.StatusOK},
		{http.MethodGet, "/api-docs/openapi.yaml", http.StatusOK},
		{http.MethodGet, "/api-docs/guide", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
		{http.MethodDelete, "/api/topics", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := do(r, tt.method, tt.target)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestRouteNotFoundBody(t *testing.T) {
	rr := do(newTestRouter(100), http.MethodGet, "/unknown")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Route not found","message":"Cannot GET /unknown"}`, rr.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(100)

	api := do(r, http.MethodGet, "/api/topics")
	assert.Equal(t, mw.APIPolicy, api.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", api.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, api.Header().Get("Strict-Transport-Security"))

	docs := do(r, http.MethodGet, "/api-docs")
	assert.Equal(t, mw.DocsPolicy, docs.Header().Get("Content-Security-Policy"))
}

func TestApiRateLimit(t *testing.T) {
	r := newTestRouter(2)

	for i := 0; i < 2; i++ {
		rr := do(r, http.MethodGet, "/api/topics")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := do(r, http.MethodGet, "/api/topics/"+knownId)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Equal(t, "0", rr.Header().Get("RateLimit-Remaining"))
	assert.Contains(t, rr.Body.String(), "Too many requests from this IP")

	// outside /api is not limited
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/topics").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health").Code)
}

func TestCors(t *testing.T) {
	r := newTestRouter(100)

	req := httptest.NewRequest(http.MethodOptions, "/api/topics", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
