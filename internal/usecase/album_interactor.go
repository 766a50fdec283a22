package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
)

// albumUseCase implements AlbumUseCase
type albumUseCase struct {
	albumStorage ports.AlbumStorage
	logger       *slog.Logger
}

// NewAlbumUseCase создает новый экземпляр AlbumUseCase
func NewAlbumUseCase(albumStorage ports.AlbumStorage, logger *slog.Logger) AlbumUseCase {
	return &albumUseCase{
		albumStorage: albumStorage,
		logger:       logger,
	}
}

// CreateAlbum создает новый альбом.
// Проверки аутентификации и валидации выполняются до обращения к шлюзу.
func (uc *albumUseCase) CreateAlbum(ctx context.Context, actorID uuid.UUID, name, description string) (*domain.Album, error) {
	if actorID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: не указано имя альбома", ErrValidation)
	}

	album := &domain.Album{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedBy:   actorID,
	}

	if err := uc.albumStorage.SaveAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании альбома: %w", err)
	}

	uc.logger.Info("album created", "id", album.ID, "name", album.Name, "created_by", actorID)
	return album, nil
}

// ListAlbums возвращает все альбомы по убыванию даты создания
func (uc *albumUseCase) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	albums, err := uc.albumStorage.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка альбомов: %w", err)
	}
	return albums, nil
}

// GetAlbum возвращает альбом по ID
func (uc *albumUseCase) GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	album, err := uc.albumStorage.GetAlbumByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении альбома по ID %s: %w", id, err)
	}
	if album == nil {
		return nil, fmt.Errorf("usecase: альбом %s: %w", id, ErrNotFound)
	}
	return album, nil
}

// UpdateAlbum обновляет поля альбома
func (uc *albumUseCase) UpdateAlbum(ctx context.Context, actorID, id uuid.UUID, upd domain.AlbumUpdate) (*domain.Album, error) {
	if actorID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: имя альбома не может быть пустым", ErrValidation)
	}

	album, err := uc.albumStorage.UpdateAlbum(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении альбома %s: %w", id, err)
	}
	if album == nil {
		return nil, fmt.Errorf("usecase: альбом %s: %w", id, ErrNotFound)
	}
	return album, nil
}

// DeleteAlbum удаляет альбом; записи участников и фото удаляются каскадно
func (uc *albumUseCase) DeleteAlbum(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrNotAuthenticated
	}

	if err := uc.albumStorage.DeleteAlbum(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении альбома %s: %w", id, err)
	}

	uc.logger.Info("album deleted", "id", id, "deleted_by", actorID)
	return nil
}
