package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/domain"
)

// === Topic Methods ===

// ListTopics fetches one page. Zero page or limit leaves the server default.
func (c *APIClient) ListTopics(ctx context.Context, page, limit int) (*api.TopicListResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/topics"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env, err := call[api.TopicListResponse](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetTopic fetches a single topic. A missing topic yields an error with status 404.
func (c *APIClient) GetTopic(ctx context.Context, id domain.TopicId) (*api.TopicResponse, error) {
	env, err := call[api.TopicResponse](ctx, c, http.MethodGet, "/api/topics/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *APIClient) GetTopicPosts(ctx context.Context, id domain.TopicId) (*api.TopicPostsResponse, error) {
	env, err := call[api.TopicPostsResponse](ctx, c, http.MethodGet, "/api/topics/"+url.PathEscape(id)+"/posts", nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Seed reseeds the store. nil records asks the server to load its own fixtures.
func (c *APIClient) Seed(ctx context.Context, records domain.FixtureSet) (*api.SeedResponse, error) {
	var body io.Reader
	if records != nil {
		jsonBody, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fixtures: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	env, err := call[api.SeedResponse](ctx, c, http.MethodPost, "/api/seed", body)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Health reads the liveness endpoint, which is not wrapped in data.
func (c *APIClient) Health(ctx context.Context) (*api.HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("cannot decode health response: %w", err)
	}
	return &health, nil
}
