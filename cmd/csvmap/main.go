package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/rowbin/csvmap/cmd/csvmap/cmd"
	"github.com/rowbin/csvmap/internal/config"
	"github.com/rowbin/csvmap/internal/logging"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	cmd.SetConfig(cfg)
	cmd.Execute()
}
