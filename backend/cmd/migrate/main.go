// Command migrate copies every topic and post from one store to another,
// replacing whatever the target holds.
//
//	migrate -from mongo -to postgres
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/meetiosdev/topics-api/backend/internal/service"
	"github.com/meetiosdev/topics-api/backend/internal/setup"
	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/logger"
	sharedpg "github.com/meetiosdev/topics-api/shared/storage/pg"
)

func main() {
	var configFolder, from, to string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&from, "from", config.DriverMongo, "source storage driver")
	flag.StringVar(&to, "to", config.DriverPostgres, "target storage driver")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.Warn("failed to read .env file", "error", err)
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, from, to); err != nil {
		logger.Log.Error("migrate failed", "error", err)
		stop() // os.Exit skips deferred calls
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, from, to string) error {
	if from == to {
		return fmt.Errorf("source and target are both %q", from)
	}

	source, err := open(ctx, cfg, from)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close(context.Background())

	target, err := open(ctx, cfg, to)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer target.Close(context.Background())

	summary, err := service.Migrate(ctx, source, target)
	if err != nil {
		return err
	}

	logger.Log.Info("migrate complete",
		"from", from,
		"to", to,
		"topics", summary.TopicsCreated,
		"posts", summary.PostsCreated)
	return nil
}

// open connects to driver using the shared config with the driver swapped.
func open(ctx context.Context, cfg *config.Config, driver string) (setup.Store, error) {
	c := *cfg
	c.Public.Storage.Driver = driver
	return setup.OpenStorage(ctx, &c, sharedpg.LightweightConnectionConfig())
}
