package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/GoArmGo/AlbumApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// photoUseCase implements PhotoUseCase
type photoUseCase struct {
	photoStorage ports.PhotoStorage
	albumStorage ports.AlbumStorage
	fileStorage  ports.FileStorage
	faceDetector ports.FaceDetector
	publisher    ports.FaceAnnotationPublisher
	logger       *slog.Logger
}

// NewPhotoUseCase создает новый экземпляр PhotoUseCase
func NewPhotoUseCase(
	photoStorage ports.PhotoStorage,
	albumStorage ports.AlbumStorage,
	fileStorage ports.FileStorage,
	faceDetector ports.FaceDetector,
	publisher ports.FaceAnnotationPublisher,
	logger *slog.Logger,
) PhotoUseCase {
	return &photoUseCase{
		photoStorage: photoStorage,
		albumStorage: albumStorage,
		fileStorage:  fileStorage,
		faceDetector: faceDetector,
		publisher:    publisher,
		logger:       logger,
	}
}

// UploadPhoto загружает фото в альбом.
// Последовательность: проверка прав и входных данных → запись байтов в S3 →
// вставка записи в бд → аннотация лиц лучшим усилием.
func (uc *photoUseCase) UploadPhoto(ctx context.Context, actorID uuid.UUID, input UploadInput) (*UploadResult, error) {
	if actorID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if input.AlbumID == uuid.Nil {
		return nil, fmt.Errorf("%w: не указан альбом", ErrValidation)
	}
	if input.FileName == "" || input.Content == nil {
		return nil, fmt.Errorf("%w: не передан файл", ErrValidation)
	}

	album, err := uc.albumStorage.GetAlbumByID(ctx, input.AlbumID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке альбома %s: %w", input.AlbumID, err)
	}
	if album == nil {
		return nil, fmt.Errorf("usecase: альбом %s: %w", input.AlbumID, ErrNotFound)
	}

	// Буферизуем содержимое: байты нужны дважды — для S3 и для детектора
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, input.Content); err != nil {
		return nil, fmt.Errorf("usecase: ошибка чтения файла %s: %w", input.FileName, err)
	}

	contentType := input.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Ключ объекта: <id загрузившего>/<метка времени>.<расширение>
	ext := strings.TrimPrefix(path.Ext(input.FileName), ".")
	objectKey := fmt.Sprintf("%s/%d.%s", actorID, time.Now().UnixMilli(), ext)

	// Эффект 1: байты в объектное хранилище
	fileURL, err := uc.fileStorage.UploadFile(ctx, objectKey, bytes.NewReader(buf.Bytes()), contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка загрузки файла %s в S3: %w", input.FileName, err)
	}

	photo := &domain.Photo{
		AlbumID:    input.AlbumID,
		UploadedBy: actorID,
		FileURL:    fileURL,
		FileName:   input.FileName,
		FileSize:   input.FileSize,
		MimeType:   contentType,
		ObjectKey:  objectKey,
	}

	// Эффект 2: запись метаданных. Если вставка упала, объект уже лежит
	// в S3 — это наблюдаемое частичное состояние, отката нет.
	if err := uc.photoStorage.SavePhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении фото %s в БД: %w", input.FileName, err)
	}

	result := &UploadResult{Photo: photo}

	// Аннотация — лучшим усилием: ее сбой не роняет загрузку
	faces, err := uc.faceDetector.DetectFaces(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		uc.logger.Warn("face detection failed, deferring to worker",
			"photo_id", photo.ID,
			"error", err,
		)
		uc.enqueueAnnotation(ctx, photo)
		return result, nil
	}

	updated, err := uc.photoStorage.UpdateDetectedFaces(ctx, photo.ID, faces)
	if err != nil || updated == nil {
		uc.logger.Warn("failed to attach detected faces, deferring to worker",
			"photo_id", photo.ID,
			"error", err,
		)
		uc.enqueueAnnotation(ctx, photo)
		return result, nil
	}

	result.Photo = updated
	result.Annotated = true
	result.FacesDetected = len(faces)

	uc.logger.Info("photo uploaded and annotated",
		"photo_id", photo.ID,
		"group_id", photo.AlbumID,
		"faces", len(faces),
	)
	return result, nil
}

// enqueueAnnotation отправляет задачу аннотации воркеру; сбой публикации
// тоже не роняет загрузку
func (uc *photoUseCase) enqueueAnnotation(ctx context.Context, photo *domain.Photo) {
	payload := payloads.FaceAnnotationPayload{
		PhotoID:   photo.ID,
		AlbumID:   photo.AlbumID,
		ObjectKey: photo.ObjectKey,
		FileURL:   photo.FileURL,
	}
	if err := uc.publisher.PublishFaceAnnotationRequest(ctx, payload); err != nil {
		uc.logger.Error("failed to publish annotation task", "photo_id", photo.ID, "error", err)
	}
}

// ListPhotos возвращает фото альбома по убыванию даты создания
func (uc *photoUseCase) ListPhotos(ctx context.Context, albumID uuid.UUID) ([]domain.Photo, error) {
	photos, err := uc.photoStorage.ListPhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фото альбома %s: %w", albumID, err)
	}
	return photos, nil
}

// GetPhoto возвращает фото по ID
func (uc *photoUseCase) GetPhoto(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	photo, err := uc.photoStorage.GetPhotoByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фото по ID %s: %w", id, err)
	}
	if photo == nil {
		return nil, fmt.Errorf("usecase: фото %s: %w", id, ErrNotFound)
	}
	return photo, nil
}

// DeletePhoto удаляет запись о фото и его объект в хранилище
func (uc *photoUseCase) DeletePhoto(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrNotAuthenticated
	}

	photo, err := uc.photoStorage.GetPhotoByID(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при получении фото %s: %w", id, err)
	}
	if photo == nil {
		return fmt.Errorf("usecase: фото %s: %w", id, ErrNotFound)
	}

	if err := uc.photoStorage.DeletePhoto(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении фото %s: %w", id, err)
	}

	// Объект в S3 убираем после записи; его сбой не считаем ошибкой операции
	if photo.ObjectKey != "" {
		if err := uc.fileStorage.DeleteFile(ctx, photo.ObjectKey); err != nil {
			uc.logger.Warn("failed to delete photo object", "photo_id", id, "object_key", photo.ObjectKey, "error", err)
		}
	}

	uc.logger.Info("photo deleted", "id", id, "deleted_by", actorID)
	return nil
}

// AnnotatePhoto — путь воркера: читает объект из S3, прогоняет детектор
// и дописывает дескрипторы к фото
func (uc *photoUseCase) AnnotatePhoto(ctx context.Context, photoID uuid.UUID, objectKey string) (int, error) {
	body, err := uc.fileStorage.GetFile(ctx, objectKey)
	if err != nil {
		return 0, fmt.Errorf("usecase: ошибка чтения объекта %s из S3: %w", objectKey, err)
	}
	defer body.Close()

	faces, err := uc.faceDetector.DetectFaces(ctx, body)
	if err != nil {
		return 0, fmt.Errorf("usecase: ошибка детекции лиц для фото %s: %w", photoID, err)
	}

	updated, err := uc.photoStorage.UpdateDetectedFaces(ctx, photoID, faces)
	if err != nil {
		return 0, fmt.Errorf("usecase: ошибка записи detected_faces для фото %s: %w", photoID, err)
	}
	if updated == nil {
		// Фото могли удалить, пока задача ждала в очереди — не ошибка
		uc.logger.Warn("photo gone before annotation", "photo_id", photoID)
		return 0, nil
	}

	uc.logger.Info("photo annotated by worker", "photo_id", photoID, "faces", len(faces))
	return len(faces), nil
}
