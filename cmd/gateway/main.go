package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Moshkopp/LuxTempMeter/internal/app"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/logging"
)

var version = "dev"
var appName = "luxtempmeter-gateway"

func main() {
	// A missing .env is fine; the environment may already be set.
	envErr := godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg, version, appName)
	slog.SetDefault(logger)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	slog.Info("starting",
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunGateway(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}

	slog.Info("shutting down")
}
