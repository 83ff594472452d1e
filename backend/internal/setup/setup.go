package setup

import (
	"context"
	"fmt"

	"github.com/meetiosdev/topics-api/backend/internal/fixtures"
	"github.com/meetiosdev/topics-api/backend/internal/handler"
	"github.com/meetiosdev/topics-api/backend/internal/service"
	"github.com/meetiosdev/topics-api/backend/internal/storage/mongo"
	"github.com/meetiosdev/topics-api/backend/internal/storage/pg"
	"github.com/meetiosdev/topics-api/shared/config"
	sharedpg "github.com/meetiosdev/topics-api/shared/storage/pg"
)

// Store is what every storage adapter provides.
type Store interface {
	service.TopicStorage
	service.SeedStorage
	service.MigrateSource
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage Store
	Handler *handler.Handler
}

// OpenStorage connects to the store selected by storage.driver.
func OpenStorage(ctx context.Context, cfg *config.Config, connCfg sharedpg.ConnectionConfig) (Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Public.Storage.ConnectTimeout)
	defer cancel()

	switch cfg.Public.Storage.Driver {
	case config.DriverMongo:
		return mongo.New(ctx, cfg.Private.MongoURI, cfg.Public.Storage.MongoDatabase)
	case config.DriverPostgres:
		return pg.New(ctx, cfg.Private.Pg, connCfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
}

// FixtureSource returns the configured fixture directory, or nil when none is set.
func FixtureSource(cfg *config.Config) service.FixtureSource {
	if cfg.Public.Seed.FixturesDir == "" {
		return nil
	}
	return fixtures.NewDir(cfg.Public.Seed.FixturesDir)
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := OpenStorage(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}

	topic := service.NewTopic(storage)
	seed := service.NewSeed(storage, FixtureSource(cfg))

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: handler.New(topic, seed, storage, cfg),
	}, nil
}
