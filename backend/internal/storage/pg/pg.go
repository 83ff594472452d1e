// Package pg is the relational store adapter. The schema lives in migrations/init.sql.
package pg

import (
	"context"
	"database/sql"

	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/logger"
	sharedpg "github.com/meetiosdev/topics-api/shared/storage/pg"
)

// Storage implements every storage interface of the service package on PostgreSQL.
type Storage struct {
	db *sql.DB
}

// New opens the pool described by cfg and checks it with a ping.
func New(ctx context.Context, cfg config.Pg, connCfg sharedpg.ConnectionConfig) (*Storage, error) {
	logger.Log.Info("connecting to postgres", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, connCfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to postgres")
	return &Storage{db: db}, nil
}

// Ping reports whether the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the pool.
func (s *Storage) Close(_ context.Context) error {
	return s.db.Close()
}
