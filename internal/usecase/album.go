package usecase

import (
	"context"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
)

// AlbumUseCase определяет бизнес-логику работы с альбомами
type AlbumUseCase interface {
	// CreateAlbum создает альбом от имени actorID.
	// Пустое имя — ошибка валидации, отсутствие actorID — ошибка аутентификации.
	CreateAlbum(ctx context.Context, actorID uuid.UUID, name, description string) (*domain.Album, error)

	// ListAlbums возвращает все альбомы со счетчиками участников и фото
	ListAlbums(ctx context.Context) ([]domain.Album, error)

	GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error)

	UpdateAlbum(ctx context.Context, actorID, id uuid.UUID, upd domain.AlbumUpdate) (*domain.Album, error)

	// DeleteAlbum удаляет альбом вместе с участниками и фото (каскад на уровне бд)
	DeleteAlbum(ctx context.Context, actorID, id uuid.UUID) error
}

// MemberUseCase определяет бизнес-логику работы с участниками альбомов
type MemberUseCase interface {
	AddMember(ctx context.Context, actorID, albumID uuid.UUID, name, phoneNumber, profilePictureURL string) (*domain.Member, error)
	ListMembers(ctx context.Context, albumID uuid.UUID) ([]domain.Member, error)
	UpdateMember(ctx context.Context, actorID, id uuid.UUID, upd domain.MemberUpdate) (*domain.Member, error)
	DeleteMember(ctx context.Context, actorID, id uuid.UUID) error
}
