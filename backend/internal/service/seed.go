package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/meetiosdev/topics-api/shared/logger"
	"github.com/meetiosdev/topics-api/shared/validation"
)

// ErrSeedFailed wraps any failure after the wipe started. State is unknown, retrying reseed is safe.
var ErrSeedFailed = stderrors.New("seed failed")

type SeedService interface {
	// Reseed wipes both collections and loads records. nil records means the configured fixture source.
	Reseed(ctx context.Context, records domain.FixtureSet) (*domain.SeedSummary, error)
}

// SeedStorage is the write side of the store used by reseed and migrate.
type SeedStorage interface {
	DeleteAllTopics(ctx context.Context) error
	DeleteAllPosts(ctx context.Context) error
	InsertTopics(ctx context.Context, topics []domain.Topic) error
	InsertPosts(ctx context.Context, posts []domain.Post) error
	CountTopics(ctx context.Context) (int, error)
	CountPosts(ctx context.Context) (int, error)
}

// FixtureSource provides the records loaded when reseed is called without any.
type FixtureSource interface {
	Load(ctx context.Context) (domain.FixtureSet, error)
}

// Seed replaces the whole content of the store with fixture records.
type Seed struct {
	storage SeedStorage
	source  FixtureSource
	now     func() time.Time
	likes   func() int
	newId   func() string
}

// NewSeed creates the reseed service. source may be nil, reseeding then
// requires explicit records.
func NewSeed(storage SeedStorage, source FixtureSource) *Seed {
	return &Seed{
		storage: storage,
		source:  source,
		now:     time.Now,
		likes:   func() int { return rand.IntN(domain.MaxSeedLikes) },
		newId:   uuid.NewString,
	}
}

// preparedTopic is a topic with its posts, ready to be written
type preparedTopic struct {
	topic domain.Topic
	posts []domain.Post
}

// Reseed validates every record first and only then wipes both collections and writes
// the new topics with their posts. Invalid records fail with a 400 ErrorWithStatusCode
// and leave the store untouched. Failures after the wipe are wrapped in ErrSeedFailed.
//
//	summary, err := seed.Reseed(ctx, nil) // load the configured fixtures
func (s *Seed) Reseed(ctx context.Context, records domain.FixtureSet) (*domain.SeedSummary, error) {
	const op = "service.Seed.Reseed"
	start := s.now()

	if records == nil {
		if s.source == nil {
			return nil, errors.BadRequest("No fixtures provided")
		}
		loaded, err := s.source.Load(ctx)
		if err != nil {
			logger.Log.Error("failed to load fixtures", "op", op, "error", err)
			reseedTotal.WithLabelValues(resultInvalid).Inc()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = loaded
	}

	// phase 1: nothing is written until every record is valid
	prepared, err := s.prepare(records)
	if err != nil {
		logger.Log.Warn("fixtures rejected", "op", op, "error", err)
		reseedTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	// phase 2: wipe and load
	summary, err := s.load(ctx, prepared)
	if err != nil {
		logger.Log.Error("reseed failed, store is partially seeded",
			"op", op,
			"topics_created", summary.TopicsCreated,
			"posts_created", summary.PostsCreated,
			"topics_expected", len(prepared),
			"error", err,
		)
		reseedTotal.WithLabelValues(resultFailed).Inc()
		return nil, fmt.Errorf("%w: %w", ErrSeedFailed, err)
	}

	s.verify(ctx, summary)

	reseedTotal.WithLabelValues(resultOK).Inc()
	reseedDuration.Observe(s.now().Sub(start).Seconds())
	seededTopics.Set(float64(summary.TopicsCreated))
	seededPosts.Set(float64(summary.PostsCreated))
	logger.Log.Info("database reseeded", "op", op, "topics_created", summary.TopicsCreated, "posts_created", summary.PostsCreated)

	return summary, nil
}

func (s *Seed) prepare(records domain.FixtureSet) ([]preparedTopic, error) {
	now := s.now().UTC().Truncate(time.Millisecond)
	prepared := make([]preparedTopic, 0, len(records))
	var details []string

	for i, r := range records {
		topic := domain.Topic{
			Id:          s.newId(),
			Name:        validation.SanitizeString(r.Name),
			Description: domain.DefaultTopicDescription,
			Color:       domain.DefaultTopicColor,
			// keeps insertion order visible to the created_at sort
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if r.Description != nil && strings.TrimSpace(*r.Description) != "" {
			topic.Description = validation.SanitizeString(*r.Description)
		}
		if r.Color != nil && strings.TrimSpace(*r.Color) != "" {
			topic.Color = strings.TrimSpace(*r.Color)
		}
		details = append(details, prefixed(fmt.Sprintf("topics[%d]", i), validation.Struct(topic))...)

		posts := make([]domain.Post, 0, len(r.Posts))
		for j, p := range r.Posts {
			post := domain.Post{
				Id:      s.newId(),
				Name:    validation.SanitizeString(p.Name),
				Content: validation.SanitizeString(p.Content),
				TopicId: topic.Id,
				Date:    now,
			}
			if p.Likes != nil {
				post.Likes = *p.Likes
			} else {
				post.Likes = s.likes()
			}
			if p.Date != nil {
				post.Date = p.Date.UTC()
			}
			details = append(details, prefixed(fmt.Sprintf("topics[%d].posts[%d]", i, j), validation.Struct(post))...)
			posts = append(posts, post)
		}

		prepared = append(prepared, preparedTopic{topic: topic, posts: posts})
	}

	if len(details) > 0 {
		return nil, errors.BadRequest("Invalid fixtures", details...)
	}
	return prepared, nil
}

// load always returns the progress made, also on failure
func (s *Seed) load(ctx context.Context, prepared []preparedTopic) (*domain.SeedSummary, error) {
	summary := &domain.SeedSummary{}

	// posts first, the relational store references topics from posts
	if err := s.storage.DeleteAllPosts(ctx); err != nil {
		return summary, fmt.Errorf("delete posts: %w", err)
	}
	if err := s.storage.DeleteAllTopics(ctx); err != nil {
		return summary, fmt.Errorf("delete topics: %w", err)
	}

	for _, p := range prepared {
		if err := s.storage.InsertTopics(ctx, []domain.Topic{p.topic}); err != nil {
			return summary, fmt.Errorf("insert topic %q: %w", p.topic.Name, err)
		}
		summary.TopicsCreated++

		if len(p.posts) == 0 {
			continue
		}
		if err := s.storage.InsertPosts(ctx, p.posts); err != nil {
			return summary, fmt.Errorf("insert posts of topic %q: %w", p.topic.Name, err)
		}
		summary.PostsCreated += len(p.posts)
	}
	return summary, nil
}

// verify compares the store with the summary. A mismatch means a concurrent writer.
func (s *Seed) verify(ctx context.Context, summary *domain.SeedSummary) {
	topics, err := s.storage.CountTopics(ctx)
	if err != nil {
		logger.Log.Warn("could not verify seeded topics", "error", err)
		return
	}
	posts, err := s.storage.CountPosts(ctx)
	if err != nil {
		logger.Log.Warn("could not verify seeded posts", "error", err)
		return
	}
	if topics != summary.TopicsCreated || posts != summary.PostsCreated {
		logger.Log.Warn("store counts differ from reseed summary",
			"topics_in_store", topics, "topics_created", summary.TopicsCreated,
			"posts_in_store", posts, "posts_created", summary.PostsCreated,
		)
	}
}

// prefixed flattens validation details of err, each one tagged with the record path.
func prefixed(prefix string, err error) []string {
	if err == nil {
		return nil
	}
	var e *errors.ErrorWithStatusCode
	if !stderrors.As(err, &e) || len(e.Details) == 0 {
		return []string{prefix + ": " + err.Error()}
	}
	out := make([]string, len(e.Details))
	for i, d := range e.Details {
		out[i] = prefix + ": " + d
	}
	return out
}
