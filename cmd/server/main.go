package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/qb-rankings-service/internal/config"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "qb-rankings-service"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotenvErr := loadDotenv(".env")

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
	})
	if dotenvErr != nil {
		logging.Warn(logger, "failed to read .env", slog.String("error", dotenvErr.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

// loadDotenv reads path into the environment. Variables already set win, and
// a missing file is not an error.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
