package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	from := newMemStorage()
	from.topics = makeTopics(migrateBatch + 3)
	for i := 0; i < 2*migrateBatch+1; i++ {
		from.posts = append(from.posts, domain.Post{Id: fmt.Sprintf("p-%d", i), TopicId: from.topics[i%len(from.topics)].Id})
	}
	from.posts = append(from.posts, domain.Post{Id: "orphan", TopicId: "gone"})

	to := newMemStorage()
	to.topics = makeTopics(1)
	to.topics[0].Id = "stale"

	summary, err := Migrate(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, migrateBatch+3, summary.TopicsCreated)
	assert.Equal(t, 2*migrateBatch+1, summary.PostsCreated)
	assert.Len(t, to.topics, migrateBatch+3)
	assert.Equal(t, from.topics[0].Id, to.topics[0].Id, "ids are kept")
	for _, p := range to.posts {
		assert.NotEqual(t, "orphan", p.Id)
	}
}

func TestMigrate_Errors(t *testing.T) {
	readErr := stderrors.New("source down")

	t.Run("read failure keeps progress", func(t *testing.T) {
		from := newMemStorage()
		from.topics = makeTopics(2)
		from.listPostsFunc = func(ctx context.Context, skip, limit int) ([]domain.Post, error) {
			return nil, readErr
		}

		summary, err := Migrate(context.Background(), from, newMemStorage())
		assert.ErrorIs(t, err, readErr)
		assert.Equal(t, 2, summary.TopicsCreated)
	})

	t.Run("target wipe failure", func(t *testing.T) {
		to := newMemStorage()
		to.deleteAllPostsFunc = func(ctx context.Context) error { return readErr }

		_, err := Migrate(context.Background(), newMemStorage(), to)
		assert.ErrorIs(t, err, readErr)
	})
}
