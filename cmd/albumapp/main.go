package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GoArmGo/AlbumApp/internal/di"
)

func main() {

	mode := flag.String("mode", "server", "Режим запуска приложения: server или worker")
	flag.Parse()

	// bootstrap-логгер (используется только на этапе инициализации т.к еще не создан основной)
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	app, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	if app == nil {
		bootstrapLogger.Error("app instance is nil — BuildApp returned nil without error?")
		os.Exit(1)
	}

	bootstrapLogger.Info("application initialized successfully")

	logger := app.LoggerIns()
	if logger == nil {
		bootstrapLogger.Error("main logger is nil — app.LoggerIns() returned nil")
		os.Exit(1)
	}

	if err := app.Run(ctx, mode); err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
