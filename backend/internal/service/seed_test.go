package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// newTestSeed returns a Seed with a fixed clock, fixed random likes and sequential uuids
func newTestSeed(storage SeedStorage, source FixtureSource) *Seed {
	s := NewSeed(storage, source)
	s.now = func() time.Time { return seedNow }
	s.likes = func() int { return 321 }
	n := 0
	s.newId = func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
	return s
}

func sampleFixtures() domain.FixtureSet {
	postDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return domain.FixtureSet{
		{
			Name:        "Travel",
			Description: ptr("Trips and places"),
			Color:       ptr("#4A7B9D"),
			Posts: []domain.PostFixture{
				{Name: "Ann", Content: "Lisbon in May", Likes: ptr(0), Date: &postDate},
				{Name: "Bob", Content: "Packing tips"},
			},
		},
		{Name: "  <b>Cooking</b> "},
	}
}

func TestReseed(t *testing.T) {
	storage := newMemStorage()
	s := newTestSeed(storage, nil)

	summary, err := s.Reseed(context.Background(), sampleFixtures())
	require.NoError(t, err)

	assert.Equal(t, &domain.SeedSummary{TopicsCreated: 2, PostsCreated: 2}, summary)
	require.Len(t, storage.topics, 2)
	require.Len(t, storage.posts, 2)

	travel, cooking := storage.topics[0], storage.topics[1]
	assert.Equal(t, "Trips and places", travel.Description)
	assert.Equal(t, "#4A7B9D", travel.Color)
	assert.Equal(t, "Cooking", cooking.Name)
	assert.Equal(t, domain.DefaultTopicDescription, cooking.Description)
	assert.Equal(t, domain.DefaultTopicColor, cooking.Color)
	assert.True(t, cooking.CreatedAt.After(travel.CreatedAt), "creation order follows fixture order")
	assert.NotEqual(t, travel.Id, cooking.Id)

	ann, bob := storage.posts[0], storage.posts[1]
	assert.Equal(t, travel.Id, ann.TopicId)
	assert.Equal(t, travel.Id, bob.TopicId)
	assert.Equal(t, 0, ann.Likes, "explicit zero likes is kept")
	assert.Equal(t, 321, bob.Likes, "missing likes are randomized")
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ann.Date)
	assert.Equal(t, seedNow, bob.Date)
}

func TestReseed_StoreMatchesSummary(t *testing.T) {
	storage := newMemStorage()
	s := NewSeed(storage, nil)

	summary, err := s.Reseed(context.Background(), sampleFixtures())
	require.NoError(t, err)

	count, _ := storage.CountTopics(context.Background())
	assert.Equal(t, summary.TopicsCreated, count)

	ids := map[string]bool{}
	for _, topic := range storage.topics {
		ids[topic.Id] = true
	}
	for _, post := range storage.posts {
		assert.True(t, ids[post.TopicId], "post %s references unknown topic %s", post.Id, post.TopicId)
		assert.GreaterOrEqual(t, post.Likes, 0)
		assert.Less(t, post.Likes, domain.MaxSeedLikes)
	}
}

func TestReseed_TwiceGivesSameCounts(t *testing.T) {
	storage := newMemStorage()
	s := NewSeed(storage, nil)

	first, err := s.Reseed(context.Background(), sampleFixtures())
	require.NoError(t, err)
	firstIds := []string{storage.topics[0].Id, storage.topics[1].Id}

	second, err := s.Reseed(context.Background(), sampleFixtures())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, storage.topics, 2, "previous data is wiped")
	assert.NotEqual(t, firstIds, []string{storage.topics[0].Id, storage.topics[1].Id})
}

func TestReseed_InvalidFixturesKeepData(t *testing.T) {
	testCases := []struct {
		name     string
		fixtures domain.FixtureSet
		detail   string
	}{
		{name: "empty topic name", fixtures: domain.FixtureSet{{Name: "   "}}, detail: "topics[0]: Name is required"},
		{name: "bad color", fixtures: domain.FixtureSet{{Name: "x", Color: ptr("red")}}, detail: "topics[0]: Color must be a valid hex color"},
		{name: "long description", fixtures: domain.FixtureSet{{Name: "x", Description: ptr(strings.Repeat("d", 501))}}, detail: "topics[0]: Description cannot exceed 500"},
		{name: "negative likes", fixtures: domain.FixtureSet{{Name: "x", Posts: []domain.PostFixture{{Name: "a", Content: "c", Likes: ptr(-5)}}}}, detail: "topics[0].posts[0]: Likes cannot be less than 0"},
		{name: "post without content", fixtures: domain.FixtureSet{{Name: "x"}, {Name: "y", Posts: []domain.PostFixture{{Name: "a"}}}}, detail: "topics[1].posts[0]: Content is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := &MockStorage{
				deleteAllTopicsFunc: func(ctx context.Context) error {
					t.Fatal("store must not be wiped for invalid fixtures")
					return nil
				},
				deleteAllPostsFunc: func(ctx context.Context) error {
					t.Fatal("store must not be wiped for invalid fixtures")
					return nil
				},
			}

			_, err := newTestSeed(storage, nil).Reseed(context.Background(), tc.fixtures)

			var e *errors.ErrorWithStatusCode
			require.True(t, stderrors.As(err, &e))
			assert.Equal(t, 400, e.StatusCode)
			require.NotEmpty(t, e.Details)
			assert.Contains(t, e.Details[0], tc.detail)
		})
	}
}

func TestReseed_FromSource(t *testing.T) {
	t.Run("nil records load the source", func(t *testing.T) {
		storage := newMemStorage()
		source := &MockFixtureSource{
			loadFunc: func(ctx context.Context) (domain.FixtureSet, error) {
				return domain.FixtureSet{{Name: "from disk"}}, nil
			},
		}

		summary, err := newTestSeed(storage, source).Reseed(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TopicsCreated)
		assert.Equal(t, "from disk", storage.topics[0].Name)
	})

	t.Run("empty records wipe without loading the source", func(t *testing.T) {
		storage := newMemStorage()
		storage.topics = makeTopics(3)
		source := &MockFixtureSource{
			loadFunc: func(ctx context.Context) (domain.FixtureSet, error) {
				t.Fatal("source must not be used")
				return nil, nil
			},
		}

		summary, err := newTestSeed(storage, source).Reseed(context.Background(), domain.FixtureSet{})
		require.NoError(t, err)
		assert.Equal(t, &domain.SeedSummary{}, summary)
		assert.Empty(t, storage.topics)
	})

	t.Run("source error aborts before the wipe", func(t *testing.T) {
		storage := newMemStorage()
		storage.topics = makeTopics(2)
		loadErr := stderrors.New("fixtures dir missing")

		_, err := newTestSeed(storage, &MockFixtureSource{
			loadFunc: func(ctx context.Context) (domain.FixtureSet, error) { return nil, loadErr },
		}).Reseed(context.Background(), nil)

		assert.ErrorIs(t, err, loadErr)
		assert.Len(t, storage.topics, 2)
	})

	t.Run("no source configured", func(t *testing.T) {
		_, err := newTestSeed(newMemStorage(), nil).Reseed(context.Background(), nil)
		var e *errors.ErrorWithStatusCode
		require.True(t, stderrors.As(err, &e))
		assert.Equal(t, 400, e.StatusCode)
	})
}

func TestReseed_PartialFailure(t *testing.T) {
	storageErr := stderrors.New("write concern error")
	storage := newMemStorage()
	inserted := 0
	storage.insertTopicsFunc = func(ctx context.Context, topics []domain.Topic) error {
		if inserted == 1 {
			return storageErr
		}
		inserted++
		storage.topics = append(storage.topics, topics...)
		return nil
	}

	summary, err := newTestSeed(storage, nil).Reseed(context.Background(), sampleFixtures())

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, ErrSeedFailed)
	assert.ErrorIs(t, err, storageErr)
	assert.Len(t, storage.topics, 1, "first topic stays, state is partial")
}

func TestReseed_WipeOrder(t *testing.T) {
	var calls []string
	storage := &MockStorage{
		deleteAllPostsFunc: func(ctx context.Context) error {
			calls = append(calls, "posts")
			return nil
		},
		deleteAllTopicsFunc: func(ctx context.Context) error {
			calls = append(calls, "topics")
			return nil
		},
		insertTopicsFunc: func(ctx context.Context, topics []domain.Topic) error {
			calls = append(calls, "insert topic")
			return nil
		},
		insertPostsFunc: func(ctx context.Context, posts []domain.Post) error {
			calls = append(calls, "insert posts")
			return nil
		},
	}

	_, err := newTestSeed(storage, nil).Reseed(context.Background(), sampleFixtures())
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "topics", "insert topic", "insert posts", "insert topic"}, calls)
}

func TestReseed_DeleteFailure(t *testing.T) {
	storageErr := stderrors.New("not primary")
	storage := &MockStorage{
		deleteAllPostsFunc: func(ctx context.Context) error { return storageErr },
	}

	_, err := newTestSeed(storage, nil).Reseed(context.Background(), sampleFixtures())
	assert.ErrorIs(t, err, ErrSeedFailed)
	assert.ErrorIs(t, err, storageErr)
}
