package pg

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	sharedpg "github.com/meetiosdev/topics-api/shared/storage/pg"
)

// InsertTopics writes all topics in one transaction using COPY.
func (s *Storage) InsertTopics(ctx context.Context, topics []domain.Topic) error {
	const op = "storage/pg/InsertTopics"
	if len(topics) == 0 {
		return nil
	}

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("topics", "id", "name", "description", "color", "created_at"))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, t := range topics {
			if _, err := stmt.ExecContext(ctx, t.Id, t.Name, t.Description, t.Color, t.CreatedAt.UTC()); err != nil {
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

// DeleteAllTopics fails while posts still reference topics, delete posts first.
func (s *Storage) DeleteAllTopics(ctx context.Context) error {
	const op = "storage/pg/DeleteAllTopics"
	if _, err := s.db.ExecContext(ctx, "DELETE FROM topics"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTopic returns errors.ErrNotFound when no row has the id.
func (s *Storage) GetTopic(ctx context.Context, id domain.TopicId) (*domain.Topic, error) {
	const op = "storage/pg/GetTopic"

	var t domain.Topic
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, color, created_at FROM topics WHERE id = $1", id,
	).Scan(&t.Id, &t.Name, &t.Description, &t.Color, &t.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errors.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// ListTopics orders by created_at descending, then id.
func (s *Storage) ListTopics(ctx context.Context, skip, limit int) ([]domain.Topic, error) {
	const op = "storage/pg/ListTopics"

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, name, description, color, created_at
	FROM topics
	ORDER BY created_at DESC, id
	LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	topics := make([]domain.Topic, 0, limit)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.Id, &t.Name, &t.Description, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return topics, nil
}

func (s *Storage) CountTopics(ctx context.Context) (int, error) {
	return s.count(ctx, "storage/pg/CountTopics", "SELECT count(*) FROM topics")
}

func (s *Storage) count(ctx context.Context, op, query string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
