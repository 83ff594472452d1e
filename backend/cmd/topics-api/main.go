// Command topics-api serves the topics REST API until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/meetiosdev/topics-api/backend/internal/router"
	"github.com/meetiosdev/topics-api/backend/internal/setup"
	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.Warn("failed to read .env file", "error", err)
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	os.Exit(run(cfg))
}

// run serves until a signal arrives or the listener fails, then shuts down
// the server and the store. It returns the process exit code.
func run(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "error", err)
		return 1
	}

	srv := &http.Server{
		Addr:              cfg.Public.HTTP.Addr(),
		Handler:           router.New(deps.Handler, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Public.HTTP.ReadTimeout,
		WriteTimeout:      cfg.Public.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server started",
			"addr", srv.Addr,
			"env", cfg.Public.Env,
			"storage", cfg.Public.Storage.Driver,
			"docs", "/api-docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Log.Info("shutdown requested")
	case err := <-serveErr:
		logger.Log.Error("server failed", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("http shutdown failed", "error", err)
		exitCode = 1
	}
	if err := deps.Storage.Close(shutdownCtx); err != nil {
		logger.Log.Error("failed to close storage", "error", err)
		exitCode = 1
	}

	logger.Log.Info("server stopped")
	return exitCode
}
