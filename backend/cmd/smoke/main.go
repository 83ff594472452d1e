// Command smoke runs a short read-only check against a running topics API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/meetiosdev/topics-api/shared/apiclient"
	"github.com/meetiosdev/topics-api/shared/logger"
)

const missingTopicId = "00000000-0000-4000-8000-000000000000"

func main() {
	var baseURL string
	var timeout time.Duration
	flag.StringVar(&baseURL, "base_url", "http://localhost:3000", "address of the running api")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "deadline for the whole run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := run(ctx, apiclient.New(baseURL)); err != nil {
		logger.Log.Error("smoke check failed", "base_url", baseURL, "error", err)
		cancel() // os.Exit skips deferred calls
		os.Exit(1)
	}
	logger.Log.Info("smoke check passed", "base_url", baseURL)
}

func run(ctx context.Context, c *apiclient.APIClient) error {
	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	logger.Log.Info("health", "environment", health.Environment, "uptime", health.Uptime)

	first, err := c.ListTopics(ctx, 1, 3)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	p := first.Pagination
	logger.Log.Info("topics", "total", p.TotalTopics, "page", p.CurrentPage, "on_page", len(first.Topics))
	if len(first.Topics) > 3 {
		return fmt.Errorf("list topics: got %d topics for limit 3", len(first.Topics))
	}

	if len(first.Topics) > 0 {
		id := first.Topics[0].Id
		topic, err := c.GetTopic(ctx, id)
		if err != nil {
			return fmt.Errorf("get topic %s: %w", id, err)
		}
		posts, err := c.GetTopicPosts(ctx, id)
		if err != nil {
			return fmt.Errorf("get topic posts %s: %w", id, err)
		}
		if posts.PostCount != len(posts.Posts) {
			return fmt.Errorf("topic %s: postCount %d but %d posts", id, posts.PostCount, len(posts.Posts))
		}
		logger.Log.Info("topic", "name", topic.Name, "color", topic.Color, "posts", posts.PostCount)
	}

	_, err = c.GetTopicPosts(ctx, missingTopicId)
	if code := apiclient.StatusCode(err); code != http.StatusNotFound {
		return fmt.Errorf("missing topic: want status 404, got %d (%v)", code, err)
	}

	_, err = c.ListTopics(ctx, 1, 101)
	if code := apiclient.StatusCode(err); code != http.StatusBadRequest {
		return fmt.Errorf("limit 101: want status 400, got %d (%v)", code, err)
	}

	second, err := c.ListTopics(ctx, 2, 5)
	if err != nil {
		return fmt.Errorf("list topics page 2: %w", err)
	}
	if !second.Pagination.HasPrevPage {
		return fmt.Errorf("page 2 reports no previous page")
	}
	logger.Log.Info("pagination", "page", second.Pagination.CurrentPage, "has_next", second.Pagination.HasNextPage, "on_page", len(second.Topics))
	return nil
}
