package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Настройки для MinIO
	MinioEndpoint        string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID,required"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY,required"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME,required"`
	MinioRegion          string `env:"MINIO_REGION,required"`
	MinioPublicBaseURL   string `env:"MINIO_PUBLIC_BASE_URL"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL,required"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"face_annotation_queue"`
	}

	// Настройки бэкенда распознавания лиц (CompreFace).
	// По умолчанию детектор замокан и внешние параметры не используются.
	FaceAPI struct {
		BaseURL string `env:"FACE_API_BASE_URL"`
		APIKey  string `env:"FACE_API_KEY"`
		Mocked  bool   `env:"FACE_API_MOCKED" envDefault:"true"`
	}

	// Таймаут одного чтения через кэш-координатор. 0 — без таймаута,
	// как в исходном поведении (зависший запрос оставляет ключ в Pending).
	CacheFetchTimeout time.Duration `env:"CACHE_FETCH_TIMEOUT"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Вручную устанавливаем значения по умолчанию для тех полей, где они нужны
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.MinioPublicBaseURL == "" {
		cfg.MinioPublicBaseURL = "http://localhost:9000"
	}
	if cfg.FaceAPI.BaseURL == "" {
		cfg.FaceAPI.BaseURL = "http://localhost:8000"
	}
	if cfg.FaceAPI.APIKey == "" {
		cfg.FaceAPI.APIKey = "your-api-key-here"
	}

	return &cfg, nil
}
