package mongo

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type topicDoc struct {
	Id          string    `bson:"id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Color       string    `bson:"color"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d topicDoc) toDomain() domain.Topic {
	return domain.Topic{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		Color:       d.Color,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func newTopicDoc(t domain.Topic) topicDoc {
	return topicDoc{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

var topicOrder = bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: 1}}

func (s *Storage) InsertTopics(ctx context.Context, topics []domain.Topic) error {
	const op = "storage/mongo/InsertTopics"
	if len(topics) == 0 {
		return nil
	}

	docs := make([]any, len(topics))
	for i, t := range topics {
		docs[i] = newTopicDoc(t)
	}
	if _, err := s.topics.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteAllTopics(ctx context.Context) error {
	const op = "storage/mongo/DeleteAllTopics"
	if _, err := s.topics.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTopic returns errors.ErrNotFound when no document has the id.
func (s *Storage) GetTopic(ctx context.Context, id domain.TopicId) (*domain.Topic, error) {
	const op = "storage/mongo/GetTopic"

	var doc topicDoc
	err := s.topics.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&doc)
	if err != nil {
		if stderrors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, errors.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	topic := doc.toDomain()
	return &topic, nil
}

// ListTopics orders by created_at descending, then id.
func (s *Storage) ListTopics(ctx context.Context, skip, limit int) ([]domain.Topic, error) {
	const op = "storage/mongo/ListTopics"

	opts := options.Find().
		SetSort(topicOrder).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := s.topics.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	topics := make([]domain.Topic, 0, limit)
	for cur.Next(ctx) {
		var doc topicDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		topics = append(topics, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return topics, nil
}

func (s *Storage) CountTopics(ctx context.Context) (int, error) {
	const op = "storage/mongo/CountTopics"
	n, err := s.topics.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}
