package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
)

// UploadInput — входные данные загрузки одной фотографии
type UploadInput struct {
	AlbumID  uuid.UUID
	FileName string
	FileSize int64
	MimeType string
	Content  io.Reader
}

// UploadResult — результат загрузки.
// FacesDetected имеет смысл только при Annotated=true: если аннотация
// не удалась, она будет выполнена воркером позже, а загрузка все равно
// считается успешной.
type UploadResult struct {
	Photo         *domain.Photo
	Annotated     bool
	FacesDetected int
}

// PhotoUseCase определяет бизнес-логику работы с фотографиями
type PhotoUseCase interface {
	// UploadPhoto выполняет два последовательных внешних эффекта: запись
	// байтов в объектное хранилище и вставку записи с публичным URL.
	// Если вставка упала после успешной записи байтов, объект остается
	// в хранилище — компенсирующего удаления нет.
	// Затем лучшим усилием выполняется аннотация лиц; ее ошибка логируется
	// и проглатывается, задача уходит в очередь на повтор.
	UploadPhoto(ctx context.Context, actorID uuid.UUID, input UploadInput) (*UploadResult, error)

	ListPhotos(ctx context.Context, albumID uuid.UUID) ([]domain.Photo, error)

	GetPhoto(ctx context.Context, id uuid.UUID) (*domain.Photo, error)

	DeletePhoto(ctx context.Context, actorID, id uuid.UUID) error

	// AnnotatePhoto выполняет аннотацию уже созданного фото (путь воркера):
	// читает объект из хранилища, прогоняет детектор и дописывает результат
	AnnotatePhoto(ctx context.Context, photoID uuid.UUID, objectKey string) (int, error)
}

// SearchUseCase определяет поиск фотографий по людям
type SearchUseCase interface {
	// SearchPhotosByPerson ищет участников по имени или телефону и возвращает
	// фотографии альбомов, в которых эти участники состоят
	SearchPhotosByPerson(ctx context.Context, query string) ([]domain.Photo, error)
}
