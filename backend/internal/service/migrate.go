package service

import (
	"context"
	"fmt"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/logger"
)

const migrateBatch = 500

// MigrateSource is any store that can be read page by page.
type MigrateSource interface {
	ListTopics(ctx context.Context, skip, limit int) ([]domain.Topic, error)
	ListPosts(ctx context.Context, skip, limit int) ([]domain.Post, error)
}

// Migrate replaces the contents of to with everything in from, keeping ids and timestamps.
// Posts whose topic does not exist in from are skipped and counted.
// Like reseed it is not atomic, a failed run is repaired by running it again.
func Migrate(ctx context.Context, from MigrateSource, to SeedStorage) (*domain.SeedSummary, error) {
	const op = "service.Migrate"
	summary := &domain.SeedSummary{}
	known := make(map[domain.TopicId]struct{})
	orphans := 0

	if err := to.DeleteAllPosts(ctx); err != nil {
		return summary, fmt.Errorf("%s: delete posts: %w", op, err)
	}
	if err := to.DeleteAllTopics(ctx); err != nil {
		return summary, fmt.Errorf("%s: delete topics: %w", op, err)
	}

	for skip := 0; ; skip += migrateBatch {
		topics, err := from.ListTopics(ctx, skip, migrateBatch)
		if err != nil {
			return summary, fmt.Errorf("%s: read topics: %w", op, err)
		}
		if len(topics) == 0 {
			break
		}
		for _, t := range topics {
			known[t.Id] = struct{}{}
		}
		if err := to.InsertTopics(ctx, topics); err != nil {
			return summary, fmt.Errorf("%s: write topics: %w", op, err)
		}
		summary.TopicsCreated += len(topics)
		logger.Log.Debug("migrated topics batch", "op", op, "total", summary.TopicsCreated)
	}

	for skip := 0; ; skip += migrateBatch {
		posts, err := from.ListPosts(ctx, skip, migrateBatch)
		if err != nil {
			return summary, fmt.Errorf("%s: read posts: %w", op, err)
		}
		if len(posts) == 0 {
			break
		}
		valid := posts[:0]
		for _, p := range posts {
			if _, ok := known[p.TopicId]; ok {
				valid = append(valid, p)
			} else {
				orphans++
			}
		}
		if len(valid) > 0 {
			if err := to.InsertPosts(ctx, valid); err != nil {
				return summary, fmt.Errorf("%s: write posts: %w", op, err)
			}
		}
		summary.PostsCreated += len(valid)
		logger.Log.Debug("migrated posts batch", "op", op, "total", summary.PostsCreated)
	}

	if orphans > 0 {
		logger.Log.Warn("skipped posts referencing missing topics", "op", op, "count", orphans)
	}
	logger.Log.Info("migration finished", "op", op, "topics", summary.TopicsCreated, "posts", summary.PostsCreated)
	return summary, nil
}
