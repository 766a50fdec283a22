package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadMemory — порог буферизации multipart-формы в памяти
const maxUploadMemory = 32 << 20

// PhotoHandler — обработчик HTTP-запросов для работы с фотографиями.
type PhotoHandler struct {
	photoUseCase usecase.PhotoUseCase
	cacheSvc     *cache.Service
	logger       *slog.Logger
}

// NewPhotoHandler создает новый экземпляр PhotoHandler.
func NewPhotoHandler(uc usecase.PhotoUseCase, cacheSvc *cache.Service, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoUseCase: uc,
		cacheSvc:     cacheSvc,
		logger:       logger,
	}
}

// ListPhotos — возвращает фотографии альбома по убыванию даты создания.
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	key := cache.Key{Resource: cache.ResourcePhotos, Parent: albumID}
	photos, err := h.cacheSvc.Get(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		return h.photoUseCase.ListPhotos(ctx, albumID)
	})
	if err != nil {
		h.logger.Error("failed to list photos", "group_id", albumID, "error", err)
		respondUseCaseError(w, err, "Ошибка получения фотографий", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, photos, h.logger)
}

// UploadPhoto — принимает multipart-форму с полем file и загружает фото
// в альбом. Текст уведомления зависит от результата аннотации лиц.
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.logger.Warn("invalid multipart form", "endpoint", "UploadPhoto", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректная multipart-форма", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Не передан файл", h.logger)
		return
	}
	defer file.Close()

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request",
		"endpoint", "UploadPhoto",
		"group_id", albumID,
		"file_name", header.Filename,
		"file_size", header.Size,
	)

	var result *usecase.UploadResult
	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Фото успешно загружено!",
		FallbackError:  "Не удалось загрузить фото",
		InvalidateKeys: []cache.Key{{Resource: cache.ResourcePhotos, Parent: albumID}},
	}, func(ctx context.Context) (string, error) {
		var err error
		result, err = h.photoUseCase.UploadPhoto(ctx, userID, usecase.UploadInput{
			AlbumID:  albumID,
			FileName: header.Filename,
			FileSize: header.Size,
			MimeType: header.Header.Get("Content-Type"),
			Content:  file,
		})
		if err != nil {
			return "", err
		}
		// Число лиц попадает в сообщение, только когда они нашлись:
		// реальный детектор может вернуть пустой список
		if result.Annotated && result.FacesDetected > 0 {
			return fmt.Sprintf("Фото успешно загружено! Обнаружено лиц: %d", result.FacesDetected), nil
		}
		return "", nil
	})
	if err != nil {
		h.logger.Error("failed to upload photo", "group_id", albumID, "file_name", header.Filename, "error", err)
		respondUseCaseError(w, err, "Ошибка при загрузке фото", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, result.Photo, h.logger)
}

// GetPhoto — возвращает фото по ID вместе с дескрипторами лиц.
func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор фото", h.logger)
		return
	}

	photo, err := h.photoUseCase.GetPhoto(r.Context(), photoID)
	if err != nil {
		h.logger.Error("failed to get photo", "photo_id", photoID, "error", err)
		respondUseCaseError(w, err, "Ошибка получения фото", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, photo, h.logger)
}

// DeletePhoto — удаляет фото и его объект в хранилище.
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор фото", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request", "endpoint", "DeletePhoto", "photo_id", photoID, "user_id", userID)

	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage:      "Фото удалено",
		FallbackError:       "Не удалось удалить фото",
		InvalidateResources: []cache.Resource{cache.ResourcePhotos},
	}, func(ctx context.Context) (string, error) {
		return "", h.photoUseCase.DeletePhoto(ctx, userID, photoID)
	})
	if err != nil {
		h.logger.Error("failed to delete photo", "photo_id", photoID, "error", err)
		respondUseCaseError(w, err, "Ошибка при удалении фото", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Фото удалено"}, h.logger)
}
