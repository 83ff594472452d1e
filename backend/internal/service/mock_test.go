package service

import (
	"context"

	"github.com/meetiosdev/topics-api/shared/domain"
)

// MockStorage mocks every storage interface of the package.
type MockStorage struct {
	getTopicFunc         func(ctx context.Context, id domain.TopicId) (*domain.Topic, error)
	listTopicsFunc       func(ctx context.Context, skip, limit int) ([]domain.Topic, error)
	countTopicsFunc      func(ctx context.Context) (int, error)
	listPostsByTopicFunc func(ctx context.Context, topicId domain.TopicId) ([]domain.Post, error)
	listPostsFunc        func(ctx context.Context, skip, limit int) ([]domain.Post, error)
	countPostsFunc       func(ctx context.Context) (int, error)
	deleteAllTopicsFunc  func(ctx context.Context) error
	deleteAllPostsFunc   func(ctx context.Context) error
	insertTopicsFunc     func(ctx context.Context, topics []domain.Topic) error
	insertPostsFunc      func(ctx context.Context, posts []domain.Post) error
}

func (m *MockStorage) GetTopic(ctx context.Context, id domain.TopicId) (*domain.Topic, error) {
	if m.getTopicFunc != nil {
		return m.getTopicFunc(ctx, id)
	}
	return &domain.Topic{Id: id}, nil
}

func (m *MockStorage) ListTopics(ctx context.Context, skip, limit int) ([]domain.Topic, error) {
	if m.listTopicsFunc != nil {
		return m.listTopicsFunc(ctx, skip, limit)
	}
	return nil, nil
}

func (m *MockStorage) CountTopics(ctx context.Context) (int, error) {
	if m.countTopicsFunc != nil {
		return m.countTopicsFunc(ctx)
	}
	return 0, nil
}

func (m *MockStorage) ListPostsByTopic(ctx context.Context, topicId domain.TopicId) ([]domain.Post, error) {
	if m.listPostsByTopicFunc != nil {
		return m.listPostsByTopicFunc(ctx, topicId)
	}
	return nil, nil
}

func (m *MockStorage) ListPosts(ctx context.Context, skip, limit int) ([]domain.Post, error) {
	if m.listPostsFunc != nil {
		return m.listPostsFunc(ctx, skip, limit)
	}
	return nil, nil
}

func (m *MockStorage) CountPosts(ctx context.Context) (int, error) {
	if m.countPostsFunc != nil {
		return m.countPostsFunc(ctx)
	}
	return 0, nil
}

func (m *MockStorage) DeleteAllTopics(ctx context.Context) error {
	if m.deleteAllTopicsFunc != nil {
		return m.deleteAllTopicsFunc(ctx)
	}
	return nil
}

func (m *MockStorage) DeleteAllPosts(ctx context.Context) error {
	if m.deleteAllPostsFunc != nil {
		return m.deleteAllPostsFunc(ctx)
	}
	return nil
}

func (m *MockStorage) InsertTopics(ctx context.Context, topics []domain.Topic) error {
	if m.insertTopicsFunc != nil {
		return m.insertTopicsFunc(ctx, topics)
	}
	return nil
}

func (m *MockStorage) InsertPosts(ctx context.Context, posts []domain.Post) error {
	if m.insertPostsFunc != nil {
		return m.insertPostsFunc(ctx, posts)
	}
	return nil
}

// memStorage is a MockStorage backed by slices, for tests that need state between calls.
type memStorage struct {
	MockStorage
	topics []domain.Topic
	posts  []domain.Post
}

func newMemStorage() *memStorage {
	m := &memStorage{}
	m.deleteAllTopicsFunc = func(ctx context.Context) error { m.topics = nil; return nil }
	m.deleteAllPostsFunc = func(ctx context.Context) error { m.posts = nil; return nil }
	m.insertTopicsFunc = func(ctx context.Context, topics []domain.Topic) error {
		m.topics = append(m.topics, topics...)
		return nil
	}
	m.insertPostsFunc = func(ctx context.Context, posts []domain.Post) error {
		m.posts = append(m.posts, posts...)
		return nil
	}
	m.countTopicsFunc = func(ctx context.Context) (int, error) { return len(m.topics), nil }
	m.countPostsFunc = func(ctx context.Context) (int, error) { return len(m.posts), nil }
	m.listTopicsFunc = func(ctx context.Context, skip, limit int) ([]domain.Topic, error) {
		return window(m.topics, skip, limit), nil
	}
	m.listPostsFunc = func(ctx context.Context, skip, limit int) ([]domain.Post, error) {
		return window(m.posts, skip, limit), nil
	}
	return m
}

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	end := min(skip+limit, len(items))
	out := make([]T, end-skip)
	copy(out, items[skip:end])
	return out
}

type MockFixtureSource struct {
	loadFunc func(ctx context.Context) (domain.FixtureSet, error)
}

func (m *MockFixtureSource) Load(ctx context.Context) (domain.FixtureSet, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return domain.FixtureSet{}, nil
}
