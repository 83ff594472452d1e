// Package mongo is the document store adapter: topics and posts collections.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/meetiosdev/topics-api/shared/logger"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	topicsCollection = "topics"
	postsCollection  = "posts"
	defaultDBName    = "topics"
)

// Storage implements every storage interface of the service package on MongoDB.
type Storage struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	topics *mongodriver.Collection
	posts  *mongodriver.Collection
}

// New connects, pings the primary and makes sure indexes exist.
// An empty database name falls back to the path of the uri.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	logger.Log.Info("connecting to mongo")
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	if database == "" {
		database = databaseFromURI(uri)
	}
	db := client.Database(database)

	s := &Storage{
		client: client,
		db:     db,
		topics: db.Collection(topicsCollection),
		posts:  db.Collection(postsCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close(context.Background())
		return nil, err
	}

	logger.Log.Info("connected to mongo", "database", database)
	return s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-flight operations until ctx expires.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ensureIndexes creates:
//   - unique id on both collections
//   - created_at desc, id on topics for the listing order
//   - topic_id, date desc on posts for posts of a topic
func (s *Storage) ensureIndexes(ctx context.Context) error {
	topicIndexes := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("id_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("created_desc_id"),
		},
	}
	if _, err := s.topics.Indexes().CreateMany(ctx, topicIndexes); err != nil {
		return fmt.Errorf("mongo ensure topic indexes: %w", err)
	}

	postIndexes := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("id_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "topic_id", Value: 1}, {Key: "date", Value: -1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("topic_date_desc"),
		},
	}
	if _, err := s.posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("mongo ensure post indexes: %w", err)
	}
	return nil
}

// databaseFromURI returns the database in the uri path, or the default one.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
