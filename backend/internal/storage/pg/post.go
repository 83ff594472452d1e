package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/meetiosdev/topics-api/shared/domain"
	sharedpg "github.com/meetiosdev/topics-api/shared/storage/pg"
)

const postColumns = "id, name, likes, content, date, topic_id"

// InsertPosts writes all posts in one transaction using COPY.
// A post referencing a missing topic fails the whole batch.
func (s *Storage) InsertPosts(ctx context.Context, posts []domain.Post) error {
	const op = "storage/pg/InsertPosts"
	if len(posts) == 0 {
		return nil
	}

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("posts", "id", "name", "likes", "content", "date", "topic_id"))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range posts {
			if _, err := stmt.ExecContext(ctx, p.Id, p.Name, p.Likes, p.Content, p.Date.UTC(), p.TopicId); err != nil {
				return err
			}
		}
		_, err = stmt.ExecContext(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteAllPosts(ctx context.Context) error {
	const op = "storage/pg/DeleteAllPosts"
	if _, err := s.db.ExecContext(ctx, "DELETE FROM posts"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPostsByTopic returns every post of the topic, newest first.
func (s *Storage) ListPostsByTopic(ctx context.Context, topicId domain.TopicId) ([]domain.Post, error) {
	const op = "storage/pg/ListPostsByTopic"
	return s.queryPosts(ctx, op,
		"SELECT "+postColumns+" FROM posts WHERE topic_id = $1 ORDER BY date DESC, id", topicId)
}

// ListPosts pages over all posts in id order.
func (s *Storage) ListPosts(ctx context.Context, skip, limit int) ([]domain.Post, error) {
	const op = "storage/pg/ListPosts"
	return s.queryPosts(ctx, op,
		"SELECT "+postColumns+" FROM posts ORDER BY id LIMIT $1 OFFSET $2", limit, skip)
}

func (s *Storage) CountPosts(ctx context.Context) (int, error) {
	return s.count(ctx, "storage/pg/CountPosts", "SELECT count(*) FROM posts")
}

func (s *Storage) queryPosts(ctx context.Context, op, query string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.Name, &p.Likes, &p.Content, &p.Date, &p.TopicId); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		p.Date = p.Date.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return posts, nil
}
