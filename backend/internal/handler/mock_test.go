package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/stretchr/testify/require"
)

type MockTopicService struct {
	MockList         func(ctx context.Context, page, limit int) (*domain.TopicPage, error)
	MockGet          func(ctx context.Context, id domain.TopicId) (*domain.Topic, error)
	MockGetWithPosts func(ctx context.Context, id domain.TopicId) (*domain.TopicWithPosts, error)
}

func (m *MockTopicService) List(ctx context.Context, page, limit int) (*domain.TopicPage, error) {
	if m.MockList != nil {
		return m.MockList(ctx, page, limit)
	}
	return &domain.TopicPage{}, nil
}

func (m *MockTopicService) Get(ctx context.Context, id domain.TopicId) (*domain.Topic, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Topic{Id: id}, nil
}

func (m *MockTopicService) GetWithPosts(ctx context.Context, id domain.TopicId) (*domain.TopicWithPosts, error) {
	if m.MockGetWithPosts != nil {
		return m.MockGetWithPosts(ctx, id)
	}
	return &domain.TopicWithPosts{Topic: domain.Topic{Id: id}, Posts: []domain.Post{}}, nil
}

type MockSeedService struct {
	MockReseed func(ctx context.Context, records domain.FixtureSet) (*domain.SeedSummary, error)
}

func (m *MockSeedService) Reseed(ctx context.Context, records domain.FixtureSet) (*domain.SeedSummary, error) {
	if m.MockReseed != nil {
		return m.MockReseed(ctx, records)
	}
	return &domain.SeedSummary{}, nil
}

// envelope mirrors api.Response with data kept raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}
