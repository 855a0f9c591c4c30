package main

import (
	"log/slog"
	"os"

	"github.com/d093w1z/countdown/internal/cli"
	"github.com/d093w1z/countdown/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Ignoring .env", "error", err)
	}
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
