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

// memberUseCase implements MemberUseCase
type memberUseCase struct {
	memberStorage ports.MemberStorage
	albumStorage  ports.AlbumStorage
	logger        *slog.Logger
}

// NewMemberUseCase создает новый экземпляр MemberUseCase
func NewMemberUseCase(
	memberStorage ports.MemberStorage,
	albumStorage ports.AlbumStorage,
	logger *slog.Logger,
) MemberUseCase {
	return &memberUseCase{
		memberStorage: memberStorage,
		albumStorage:  albumStorage,
		logger:        logger,
	}
}

// AddMember добавляет участника в альбом
func (uc *memberUseCase) AddMember(ctx context.Context, actorID, albumID uuid.UUID, name, phoneNumber, profilePictureURL string) (*domain.Member, error) {
	if actorID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: не указано имя участника", ErrValidation)
	}

	// Убеждаемся, что альбом существует, прежде чем добавлять участника
	album, err := uc.albumStorage.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке альбома %s: %w", albumID, err)
	}
	if album == nil {
		return nil, fmt.Errorf("usecase: альбом %s: %w", albumID, ErrNotFound)
	}

	member := &domain.Member{
		AlbumID:           albumID,
		Name:              strings.TrimSpace(name),
		PhoneNumber:       phoneNumber,
		ProfilePictureURL: profilePictureURL,
	}

	if err := uc.memberStorage.SaveMember(ctx, member); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при добавлении участника: %w", err)
	}

	uc.logger.Info("member added", "id", member.ID, "group_id", albumID, "name", member.Name)
	return member, nil
}

// ListMembers возвращает участников альбома по убыванию даты добавления
func (uc *memberUseCase) ListMembers(ctx context.Context, albumID uuid.UUID) ([]domain.Member, error) {
	members, err := uc.memberStorage.ListMembersByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении участников альбома %s: %w", albumID, err)
	}
	return members, nil
}

// UpdateMember обновляет поля участника
func (uc *memberUseCase) UpdateMember(ctx context.Context, actorID, id uuid.UUID, upd domain.MemberUpdate) (*domain.Member, error) {
	if actorID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: имя участника не может быть пустым", ErrValidation)
	}

	member, err := uc.memberStorage.UpdateMember(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении участника %s: %w", id, err)
	}
	if member == nil {
		return nil, fmt.Errorf("usecase: участник %s: %w", id, ErrNotFound)
	}
	return member, nil
}

// DeleteMember удаляет участника. Участники других альбомов не затрагиваются.
func (uc *memberUseCase) DeleteMember(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrNotAuthenticated
	}

	if err := uc.memberStorage.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении участника %s: %w", id, err)
	}

	uc.logger.Info("member deleted", "id", id, "deleted_by", actorID)
	return nil
}
