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

type PhotoPostgresStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPhotoPostgresStorage(db *sqlx.DB, logger *slog.Logger) *PhotoPostgresStorage {
	return &PhotoPostgresStorage{db: db, logger: logger}
}

// SavePhoto сохраняет метаданные фотографии в базе данных.
// Сам файл к этому моменту уже должен лежать в S3 — если вставка упадет,
// компенсирующего удаления объекта нет, это осознанное частичное состояние.
func (s *PhotoPostgresStorage) SavePhoto(ctx context.Context, photo *domain.Photo) error {
	start := time.Now()

	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO photos (id, group_id, uploaded_by, file_url, file_name, file_size, mime_type, object_key, detected_faces, created_at)
	VALUES (:id, :group_id, :uploaded_by, :file_url, :file_name, :file_size, :mime_type, :object_key, :detected_faces, :created_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, photo)
	if err != nil {
		s.logger.Error("failed to save photo", "file_name", photo.FileName, "group_id", photo.AlbumID, "error", err)
		return fmt.Errorf("ошибка при сохранении фото: %w", err)
	}

	s.logger.Info("photo saved successfully",
		"id", photo.ID,
		"group_id", photo.AlbumID,
		"file_name", photo.FileName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetPhotoByID получает детали фото по ID
func (s *PhotoPostgresStorage) GetPhotoByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	start := time.Now()

	var photo domain.Photo
	query := `SELECT * FROM photos WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("photo not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get photo by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении фото по ID: %w", err)
	}

	s.logger.Info("photo retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &photo, nil
}

// ListPhotosByAlbum получает фото альбома по убыванию created_at
func (s *PhotoPostgresStorage) ListPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Photo, error) {
	start := time.Now()

	q := `
	SELECT * FROM photos
	WHERE group_id = $1
	ORDER BY created_at DESC
	`

	var photos []domain.Photo
	if err := s.db.SelectContext(ctx, &photos, q, albumID); err != nil {
		s.logger.Error("failed to list photos by album", "group_id", albumID, "error", err)
		return nil, fmt.Errorf("ошибка при получении фото альбома: %w", err)
	}

	s.logger.Info("listed album photos successfully",
		"group_id", albumID,
		"count", len(photos),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return photos, nil
}

// UpdateDetectedFaces дописывает результат аннотации к уже созданному фото
// и возвращает обновленную запись
func (s *PhotoPostgresStorage) UpdateDetectedFaces(ctx context.Context, id uuid.UUID, faces domain.FaceList) (*domain.Photo, error) {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `UPDATE photos SET detected_faces = $2 WHERE id = $1`, id, faces)
	if err != nil {
		s.logger.Error("failed to update detected faces", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при обновлении detected_faces: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		s.logger.Warn("photo not found for faces update", "id", id)
		return nil, nil
	}

	s.logger.Info("detected faces updated",
		"id", id,
		"faces", len(faces),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return s.GetPhotoByID(ctx, id)
}

// DeletePhoto удаляет запись о фото
func (s *PhotoPostgresStorage) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete photo", "id", id, "error", err)
		return fmt.Errorf("ошибка при удалении фото: %w", err)
	}

	affected, _ := res.RowsAffected()
	s.logger.Info("photo deleted",
		"id", id,
		"rows_affected", affected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
