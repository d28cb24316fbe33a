package main

import (
	"log/slog"
	"os"

	"teledetect-platform/internal/app"
	"teledetect-platform/internal/logger"
)

func main() {
	logHandler := logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	application, err := app.NewGateway()
	if err != nil {
		slog.Error("failed to initialize gateway", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("gateway run failed", "error", err)
		os.Exit(1)
	}
}
