package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/meetiosdev/topics-api/shared/domain"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDoc struct {
	Id      string    `bson:"id"`
	Name    string    `bson:"name"`
	Likes   int       `bson:"likes"`
	Content string    `bson:"content"`
	Date    time.Time `bson:"date"`
	TopicId string    `bson:"topic_id"`
}

func (d postDoc) toDomain() domain.Post {
	return domain.Post{
		Id:      d.Id,
		Name:    d.Name,
		Likes:   d.Likes,
		Content: d.Content,
		Date:    d.Date.UTC(),
		TopicId: d.TopicId,
	}
}

func newPostDoc(p domain.Post) postDoc {
	return postDoc{
		Id:      p.Id,
		Name:    p.Name,
		Likes:   p.Likes,
		Content: p.Content,
		Date:    p.Date.UTC(),
		TopicId: p.TopicId,
	}
}

func (s *Storage) InsertPosts(ctx context.Context, posts []domain.Post) error {
	const op = "storage/mongo/InsertPosts"
	if len(posts) == 0 {
		return nil
	}

	docs := make([]any, len(posts))
	for i, p := range posts {
		docs[i] = newPostDoc(p)
	}
	if _, err := s.posts.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteAllPosts(ctx context.Context) error {
	const op = "storage/mongo/DeleteAllPosts"
	if _, err := s.posts.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPostsByTopic returns every post of the topic, newest first.
func (s *Storage) ListPostsByTopic(ctx context.Context, topicId domain.TopicId) ([]domain.Post, error) {
	const op = "storage/mongo/ListPostsByTopic"

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "id", Value: 1}})
	cur, err := s.posts.Find(ctx, bson.D{{Key: "topic_id", Value: topicId}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decodePosts(ctx, op, cur)
}

// ListPosts pages over all posts in id order.
func (s *Storage) ListPosts(ctx context.Context, skip, limit int) ([]domain.Post, error) {
	const op = "storage/mongo/ListPosts"

	opts := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := s.posts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decodePosts(ctx, op, cur)
}

func (s *Storage) CountPosts(ctx context.Context) (int, error) {
	const op = "storage/mongo/CountPosts"
	n, err := s.posts.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

func decodePosts(ctx context.Context, op string, cur *mongodriver.Cursor) ([]domain.Post, error) {
	defer cur.Close(ctx)

	posts := make([]domain.Post, 0)
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		posts = append(posts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return posts, nil
}
