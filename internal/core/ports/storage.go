package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
)

// AlbumStorage определяет методы для взаимодействия с хранилищем альбомов
type AlbumStorage interface {
	SaveAlbum(ctx context.Context, album *domain.Album) error
	GetAlbumByID(ctx context.Context, id uuid.UUID) (*domain.Album, error)
	// ListAlbums возвращает альбомы по убыванию created_at вместе с
	// агрегатами member_count/photo_count
	ListAlbums(ctx context.Context) ([]domain.Album, error)
	UpdateAlbum(ctx context.Context, id uuid.UUID, upd domain.AlbumUpdate) (*domain.Album, error)
	// DeleteAlbum удаляет альбом; участники и фото удаляются каскадно на уровне бд
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
}

// MemberStorage определяет методы для взаимодействия с хранилищем участников
type MemberStorage interface {
	SaveMember(ctx context.Context, member *domain.Member) error
	GetMemberByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	ListMembersByAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Member, error)
	UpdateMember(ctx context.Context, id uuid.UUID, upd domain.MemberUpdate) (*domain.Member, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
	// SearchMembers ищет участников по имени или номеру телефона (подстрока, без учета регистра)
	SearchMembers(ctx context.Context, query string) ([]domain.Member, error)
}

// PhotoStorage определяет методы для взаимодействия с хранилищем фотографий
type PhotoStorage interface {
	SavePhoto(ctx context.Context, photo *domain.Photo) error
	GetPhotoByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	ListPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Photo, error)
	// UpdateDetectedFaces дописывает результат аннотации к уже созданному фото
	UpdateDetectedFaces(ctx context.Context, id uuid.UUID, faces domain.FaceList) (*domain.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	GetOrCreateSystemUser(ctx context.Context) (uuid.UUID, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// FileStorage определяет методы для работы с бинарным хранилищем (S3/MinIO)
type FileStorage interface {
	// UploadFile загружает объект и возвращает его публичный URL
	UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error)
	GetFile(ctx context.Context, objectKey string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, objectKey string) error
}
