// Command seed wipes the configured store and loads fixture files into it.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/meetiosdev/topics-api/backend/internal/fixtures"
	"github.com/meetiosdev/topics-api/backend/internal/service"
	"github.com/meetiosdev/topics-api/backend/internal/setup"
	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/logger"
	sharedpg "github.com/meetiosdev/topics-api/shared/storage/pg"
)

func main() {
	var configFolder, fixturesDir string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&fixturesDir, "fixtures", "", "directory with *.json fixture files (default: seed.fixtures_dir)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.Warn("failed to read .env file", "error", err)
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	if fixturesDir == "" {
		fixturesDir = cfg.Public.Seed.FixturesDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fixturesDir); err != nil {
		logger.Log.Error("seed failed", "error", err)
		stop() // os.Exit skips deferred calls
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, fixturesDir string) error {
	storage, err := setup.OpenStorage(ctx, cfg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		return err
	}
	defer storage.Close(context.Background())

	summary, err := service.NewSeed(storage, fixtures.NewDir(fixturesDir)).Reseed(ctx, nil)
	if err != nil {
		return err
	}

	logger.Log.Info("seed complete",
		"storage", cfg.Public.Storage.Driver,
		"fixtures", fixturesDir,
		"topics", summary.TopicsCreated,
		"posts", summary.PostsCreated)
	return nil
}
