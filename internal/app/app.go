package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/config"
	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/database/client"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
)

// App — собранное приложение со всеми зависимостями.
// Запускается в одном из двух режимов: server (HTTP API) или worker
// (потребитель очереди задач аннотации лиц).
type App struct {
	Config *config.Config
	logger *slog.Logger

	dbClient *client.Client
	cacheSvc *cache.Service

	albumUseCase  usecase.AlbumUseCase
	memberUseCase usecase.MemberUseCase
	photoUseCase  usecase.PhotoUseCase
	searchUseCase usecase.SearchUseCase
	shareUseCase  usecase.ShareUseCase

	annotationConsumer ports.FaceAnnotationConsumer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	cacheSvc *cache.Service,
	albumUseCase usecase.AlbumUseCase,
	memberUseCase usecase.MemberUseCase,
	photoUseCase usecase.PhotoUseCase,
	searchUseCase usecase.SearchUseCase,
	shareUseCase usecase.ShareUseCase,
	annotationConsumer ports.FaceAnnotationConsumer,
) *App {
	return &App{
		Config:             cfg,
		logger:             logger,
		dbClient:           dbClient,
		cacheSvc:           cacheSvc,
		albumUseCase:       albumUseCase,
		memberUseCase:      memberUseCase,
		photoUseCase:       photoUseCase,
		searchUseCase:      searchUseCase,
		shareUseCase:       shareUseCase,
		annotationConsumer: annotationConsumer,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = a.runServer(ctx)

	case "worker":
		err = a.runWorker(ctx)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	a.logger.Info("shutting down application")

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application shut down cleanly")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if closer, ok := a.annotationConsumer.(interface{ Close() }); ok {
		closer.Close()
	}

	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	return nil
}
