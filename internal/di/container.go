package di

import (
	"context"
	"fmt"

	"github.com/GoArmGo/AlbumApp/internal/adapter/faceapi"
	"github.com/GoArmGo/AlbumApp/internal/adapter/notify"
	"github.com/GoArmGo/AlbumApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/AlbumApp/internal/app"
	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/config"
	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/database/client"
	"github.com/GoArmGo/AlbumApp/internal/database/storage"
	"github.com/GoArmGo/AlbumApp/internal/logger"
	"github.com/GoArmGo/AlbumApp/internal/rabbitmq"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + миграции)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// gorm поверх уже открытого соединения — для хранилища участников
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: dbClient.DB.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации gorm: %w", err)
	}

	// 3. Инициализация хранилищ
	albumStorage := storage.NewAlbumPostgresStorage(dbClient.DB, slogger)
	photoStorage := storage.NewPhotoPostgresStorage(dbClient.DB, slogger)
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	memberStorage := storage.NewGormMemberStorage(gormDB, slogger)

	// Системный пользователь — известный UUID для запросов без X-User-ID
	systemUserID, err := userStorage.GetOrCreateSystemUser(context.Background())
	if err != nil {
		return nil, err
	}
	slogger.Info("system user ready", "user_id", systemUserID)

	// 4. Инициализация клиентов внешних сервисов
	fileStorage, err := minio.NewMinioClient(cfg, slogger) // S3 / MinIO адаптер
	if err != nil {
		return nil, err
	}

	var faceDetector ports.FaceDetector
	if cfg.FaceAPI.Mocked {
		faceDetector = faceapi.NewMockDetector()
		slogger.Info("face detector initialized", "mocked", true)
	} else {
		faceDetector = faceapi.NewClient(cfg)
		slogger.Info("face detector initialized", "mocked", false, "base_url", cfg.FaceAPI.BaseURL)
	}

	otpNotifier := notify.NewMockOTPNotifier(slogger)
	messenger := notify.NewMockMessenger(slogger)

	// 5. Инициализация RabbitMQ клиента (publisher в режиме server,
	// consumer в режиме worker)
	rabbitMQClient, err := rabbitmq.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	// 6. Координатор чтений и мутаций
	cacheSvc := cache.NewService(cfg.CacheFetchTimeout, slogger)

	// 7. Инициализация бизнес-логики (usecases)
	albumUseCase := usecase.NewAlbumUseCase(albumStorage, slogger)
	memberUseCase := usecase.NewMemberUseCase(memberStorage, albumStorage, slogger)
	photoUseCase := usecase.NewPhotoUseCase(photoStorage, albumStorage, fileStorage, faceDetector, rabbitMQClient, slogger)
	searchUseCase := usecase.NewSearchUseCase(memberStorage, photoStorage, slogger)
	shareUseCase := usecase.NewShareUseCase(photoStorage, otpNotifier, messenger, slogger)

	// 8. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		cacheSvc,
		albumUseCase,
		memberUseCase,
		photoUseCase,
		searchUseCase,
		shareUseCase,
		rabbitMQClient,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
