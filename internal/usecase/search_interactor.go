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

// searchUseCase implements SearchUseCase
type searchUseCase struct {
	memberStorage ports.MemberStorage
	photoStorage  ports.PhotoStorage
	logger        *slog.Logger
}

// NewSearchUseCase создает новый экземпляр SearchUseCase
func NewSearchUseCase(
	memberStorage ports.MemberStorage,
	photoStorage ports.PhotoStorage,
	logger *slog.Logger,
) SearchUseCase {
	return &searchUseCase{
		memberStorage: memberStorage,
		photoStorage:  photoStorage,
		logger:        logger,
	}
}

// SearchPhotosByPerson находит участников по имени или телефону и собирает
// фотографии их альбомов. Альбомы без совпавших участников не трогаются.
func (uc *searchUseCase) SearchPhotosByPerson(ctx context.Context, query string) ([]domain.Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Photo{}, nil
	}

	members, err := uc.memberStorage.SearchMembers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске участников по запросу '%s': %w", query, err)
	}
	if len(members) == 0 {
		uc.logger.Info("person search yielded no members", "query", query)
		return []domain.Photo{}, nil
	}

	// Собираем уникальные альбомы совпавших участников
	seen := make(map[uuid.UUID]bool)
	var photos []domain.Photo
	for _, member := range members {
		if seen[member.AlbumID] {
			continue
		}
		seen[member.AlbumID] = true

		albumPhotos, err := uc.photoStorage.ListPhotosByAlbum(ctx, member.AlbumID)
		if err != nil {
			return nil, fmt.Errorf("usecase: ошибка при получении фото альбома %s: %w", member.AlbumID, err)
		}
		photos = append(photos, albumPhotos...)
	}

	uc.logger.Info("person search completed",
		"query", query,
		"members", len(members),
		"photos", len(photos),
	)
	return photos, nil
}
