package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const systemUsername = "system_user"

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// GetOrCreateSystemUser получает или создает системного пользователя в БД.
func (s *UserStorage) GetOrCreateSystemUser(ctx context.Context) (uuid.UUID, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE username = $1`, systemUsername)

	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("system user not found, creating new one", "username", systemUsername)

		newUser := domain.User{
			ID:           uuid.New(),
			Username:     systemUsername,
			Email:        "system@example.com",
			PasswordHash: "dummy_hash",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		_, err = s.db.NamedExecContext(ctx, `
            INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
            VALUES (:id, :username, :email, :password_hash, :created_at, :updated_at)
        `, &newUser)
		if err != nil {
			s.logger.Error("failed to insert system user", "error", err)
			return uuid.Nil, fmt.Errorf("insert system user: %w", err)
		}

		s.logger.Info("system user created successfully",
			"user_id", newUser.ID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return newUser.ID, nil
	}

	if err != nil {
		s.logger.Error("failed to select system user", "error", err)
		return uuid.Nil, fmt.Errorf("select system user: %w", err)
	}

	s.logger.Info("system user found",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return user.ID, nil
}

// GetUserByID получает пользователя по ID
func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("user not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по ID: %w", err)
	}
	return &user, nil
}
