// Package service holds the topic queries, reseed and migration on top of storage interfaces.
package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/meetiosdev/topics-api/shared/logger"
	"github.com/meetiosdev/topics-api/shared/validation"
)

// TopicService is the read API used by handlers, an interface to mock it in tests.
type TopicService interface {
	List(ctx context.Context, page, limit int) (*domain.TopicPage, error)
	Get(ctx context.Context, id domain.TopicId) (*domain.Topic, error)
	GetWithPosts(ctx context.Context, id domain.TopicId) (*domain.TopicWithPosts, error)
}

// TopicStorage is the read side of the store.
// GetTopic returns errors.ErrNotFound when no topic has the id.
type TopicStorage interface {
	GetTopic(ctx context.Context, id domain.TopicId) (*domain.Topic, error)
	// ListTopics orders by creation time descending, then id ascending
	ListTopics(ctx context.Context, skip, limit int) ([]domain.Topic, error)
	CountTopics(ctx context.Context) (int, error)
	// ListPostsByTopic orders by date descending, then id ascending
	ListPostsByTopic(ctx context.Context, topicId domain.TopicId) ([]domain.Post, error)
}

// Topic answers read queries over topics and their posts.
// It holds no state of its own, everything is read from storage on each call.
type Topic struct {
	storage TopicStorage
}

// NewTopic creates the topic service on top of storage.
func NewTopic(storage TopicStorage) *Topic {
	return &Topic{storage: storage}
}

// List returns one page of topics, newest first, with the pagination of the whole collection.
// A page past the last one yields no topics and is not an error.
func (s *Topic) List(ctx context.Context, page, limit int) (*domain.TopicPage, error) {
	const op = "service.Topic.List"

	if err := validation.Pagination(page, limit); err != nil {
		return nil, err
	}

	total, err := s.storage.CountTopics(ctx)
	if err != nil {
		logger.Log.Error("failed to count topics", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pagination := paginate(page, limit, total)

	// the second check keeps (page-1)*limit from overflowing int
	if page > pagination.TotalPages || page-1 > math.MaxInt/limit {
		return &domain.TopicPage{Topics: []domain.Topic{}, Pagination: pagination}, nil
	}

	skip := (page - 1) * limit
	topics, err := s.storage.ListTopics(ctx, skip, limit)
	if err != nil {
		logger.Log.Error("failed to list topics", "op", op, "page", page, "limit", limit, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if topics == nil {
		topics = []domain.Topic{}
	}
	return &domain.TopicPage{
		Topics:     topics,
		Pagination: pagination,
	}, nil
}

// Get returns the topic with the given id.
// Malformed ids fail with a 400 ErrorWithStatusCode before storage is queried,
// unknown ids return errors.ErrNotFound.
func (s *Topic) Get(ctx context.Context, id domain.TopicId) (*domain.Topic, error) {
	const op = "service.Topic.Get"

	if err := validation.TopicId(id); err != nil {
		return nil, err
	}

	topic, err := s.storage.GetTopic(ctx, id)
	if err != nil {
		return nil, s.lookupError(op, id, err)
	}
	return topic, nil
}

// GetWithPosts returns the topic together with all its posts, newest first.
// PostCount always equals len(Posts) and Posts is never nil.
// Errors are the same as for Get.
func (s *Topic) GetWithPosts(ctx context.Context, id domain.TopicId) (*domain.TopicWithPosts, error) {
	const op = "service.Topic.GetWithPosts"

	if err := validation.TopicId(id); err != nil {
		return nil, err
	}

	topic, err := s.storage.GetTopic(ctx, id)
	if err != nil {
		return nil, s.lookupError(op, id, err)
	}

	posts, err := s.storage.ListPostsByTopic(ctx, topic.Id)
	if err != nil {
		logger.Log.Error("failed to list posts", "op", op, "topic_id", id, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	return &domain.TopicWithPosts{
		Topic:     *topic,
		Posts:     posts,
		PostCount: len(posts),
	}, nil
}

// lookupError keeps not found quiet and logs everything else
func (s *Topic) lookupError(op string, id domain.TopicId, err error) error {
	if stderrors.Is(err, errors.ErrNotFound) {
		return err
	}
	logger.Log.Error("failed to get topic", "op", op, "topic_id", id, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

// paginate computes the pagination block for a page of a collection holding total items.
func paginate(page, limit, total int) domain.Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return domain.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalTopics: total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
