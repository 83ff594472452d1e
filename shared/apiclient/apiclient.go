// Package apiclient talks to a running topics API over HTTP.
package apiclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	internal_errors "github.com/meetiosdev/topics-api/shared/errors"
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the {success, data} wrapper every endpoint answers with.
type envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    T        `json:"data"`
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// do is the single helper for making API requests.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// call sends the request and unwraps the envelope. Any non 2xx answer becomes
// an *errors.ErrorWithStatusCode carrying the server's error text.
func call[T any](ctx context.Context, c *APIClient, method, path string, body io.Reader) (*envelope[T], error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("backend returned status %d", resp.StatusCode),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := env.Error
		if env.Message != "" {
			msg = env.Error + ": " + env.Message
		}
		return nil, &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode, Details: env.Details}
	}
	return &env, nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *internal_errors.ErrorWithStatusCode
	if stderrors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
