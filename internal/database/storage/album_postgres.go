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

type AlbumPostgresStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewAlbumPostgresStorage(db *sqlx.DB, logger *slog.Logger) *AlbumPostgresStorage {
	return &AlbumPostgresStorage{db: db, logger: logger}
}

// SaveAlbum сохраняет новый альбом в базе данных
func (s *AlbumPostgresStorage) SaveAlbum(ctx context.Context, album *domain.Album) error {
	start := time.Now()

	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	now := time.Now()
	if album.CreatedAt.IsZero() {
		album.CreatedAt = now
	}
	album.UpdatedAt = now

	query := `
	INSERT INTO albums (id, name, description, cover_photo_url, created_by, created_at, updated_at)
	VALUES (:id, :name, :description, :cover_photo_url, :created_by, :created_at, :updated_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, album)
	if err != nil {
		s.logger.Error("failed to save album", "name", album.Name, "error", err)
		return fmt.Errorf("ошибка при сохранении альбома: %w", err)
	}

	s.logger.Info("album saved successfully",
		"id", album.ID,
		"name", album.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetAlbumByID получает альбом по ID
func (s *AlbumPostgresStorage) GetAlbumByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	start := time.Now()

	var album domain.Album
	query := `
	SELECT a.*,
	       (SELECT COUNT(*) FROM members m WHERE m.group_id = a.id) AS member_count,
	       (SELECT COUNT(*) FROM photos p WHERE p.group_id = a.id) AS photo_count
	FROM albums a
	WHERE a.id = $1
	LIMIT 1`

	err := s.db.GetContext(ctx, &album, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("album not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get album by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении альбома по ID: %w", err)
	}

	s.logger.Info("album retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &album, nil
}

// ListAlbums получает все альбомы со счетчиками участников и фото,
// по убыванию created_at
func (s *AlbumPostgresStorage) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	start := time.Now()

	q := `
	SELECT a.*,
	       (SELECT COUNT(*) FROM members m WHERE m.group_id = a.id) AS member_count,
	       (SELECT COUNT(*) FROM photos p WHERE p.group_id = a.id) AS photo_count
	FROM albums a
	ORDER BY a.created_at DESC
	`

	var albums []domain.Album
	if err := s.db.SelectContext(ctx, &albums, q); err != nil {
		s.logger.Error("failed to list albums", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка альбомов: %w", err)
	}

	s.logger.Info("listed albums successfully",
		"count", len(albums),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return albums, nil
}

// UpdateAlbum обновляет переданные поля альбома и возвращает свежую запись
func (s *AlbumPostgresStorage) UpdateAlbum(ctx context.Context, id uuid.UUID, upd domain.AlbumUpdate) (*domain.Album, error) {
	start := time.Now()

	query := `
	UPDATE albums SET
		name            = COALESCE($2, name),
		description     = COALESCE($3, description),
		cover_photo_url = COALESCE($4, cover_photo_url),
		updated_at      = now()
	WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, id, upd.Name, upd.Description, upd.CoverPhotoURL)
	if err != nil {
		s.logger.Error("failed to update album", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при обновлении альбома: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		s.logger.Warn("album not found for update", "id", id)
		return nil, nil
	}

	s.logger.Info("album updated successfully",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return s.GetAlbumByID(ctx, id)
}

// DeleteAlbum удаляет альбом; участники и фото удаляются каскадно (FK ON DELETE CASCADE)
func (s *AlbumPostgresStorage) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete album", "id", id, "error", err)
		return fmt.Errorf("ошибка при удалении альбома: %w", err)
	}

	affected, _ := res.RowsAffected()
	s.logger.Info("album deleted",
		"id", id,
		"rows_affected", affected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
