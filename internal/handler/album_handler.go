package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AlbumHandler — обработчик HTTP-запросов для работы с альбомами.
// Чтения идут через координатор кэша, мутации — по его протоколу
// (инвалидация затронутых ключей плюс одно уведомление).
type AlbumHandler struct {
	albumUseCase usecase.AlbumUseCase
	cacheSvc     *cache.Service
	logger       *slog.Logger
}

// NewAlbumHandler создает новый экземпляр AlbumHandler.
func NewAlbumHandler(uc usecase.AlbumUseCase, cacheSvc *cache.Service, logger *slog.Logger) *AlbumHandler {
	return &AlbumHandler{
		albumUseCase: uc,
		cacheSvc:     cacheSvc,
		logger:       logger,
	}
}

type createAlbumRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListAlbums — возвращает все альбомы со счетчиками участников и фото.
func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.cacheSvc.Get(r.Context(), cache.Key{Resource: cache.ResourceAlbums}, func(ctx context.Context) (interface{}, error) {
		return h.albumUseCase.ListAlbums(ctx)
	})
	if err != nil {
		h.logger.Error("failed to list albums", "error", err)
		respondUseCaseError(w, err, "Ошибка получения списка альбомов", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, albums, h.logger)
}

// CreateAlbum — создает новый альбом от имени активного пользователя.
func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req createAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "endpoint", "CreateAlbum", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}
	// Пустое имя блокируется до мутации, без уведомления
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Не указано имя альбома", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request", "endpoint", "CreateAlbum", "name", req.Name, "user_id", userID)

	var album *domain.Album
	err := h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Альбом успешно создан!",
		FallbackError:  "Не удалось создать альбом",
		InvalidateKeys: []cache.Key{{Resource: cache.ResourceAlbums}},
	}, func(ctx context.Context) (string, error) {
		var err error
		album, err = h.albumUseCase.CreateAlbum(ctx, userID, req.Name, req.Description)
		return "", err
	})
	if err != nil {
		h.logger.Error("failed to create album", "name", req.Name, "error", err)
		respondUseCaseError(w, err, "Ошибка при создании альбома", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, album, h.logger)
}

// GetAlbum — возвращает альбом по ID.
func (h *AlbumHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	album, err := h.albumUseCase.GetAlbum(r.Context(), albumID)
	if err != nil {
		h.logger.Error("failed to get album", "group_id", albumID, "error", err)
		respondUseCaseError(w, err, "Ошибка получения альбома", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, album, h.logger)
}

// UpdateAlbum — частично обновляет поля альбома.
func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	var upd domain.AlbumUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())

	var album *domain.Album
	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Альбом обновлен",
		FallbackError:  "Не удалось обновить альбом",
		InvalidateKeys: []cache.Key{{Resource: cache.ResourceAlbums}},
	}, func(ctx context.Context) (string, error) {
		var err error
		album, err = h.albumUseCase.UpdateAlbum(ctx, userID, albumID, upd)
		return "", err
	})
	if err != nil {
		h.logger.Error("failed to update album", "group_id", albumID, "error", err)
		respondUseCaseError(w, err, "Ошибка при обновлении альбома", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, album, h.logger)
}

// DeleteAlbum — удаляет альбом вместе с участниками и фотографиями.
func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request", "endpoint", "DeleteAlbum", "group_id", albumID, "user_id", userID)

	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Альбом удален",
		FallbackError:  "Не удалось удалить альбом",
		InvalidateKeys: []cache.Key{{Resource: cache.ResourceAlbums}},
		// Вместе с альбомом каскадом уходят его участники и фото
		InvalidateResources: []cache.Resource{cache.ResourceMembers, cache.ResourcePhotos},
	}, func(ctx context.Context) (string, error) {
		return "", h.albumUseCase.DeleteAlbum(ctx, userID, albumID)
	})
	if err != nil {
		h.logger.Error("failed to delete album", "group_id", albumID, "error", err)
		respondUseCaseError(w, err, "Ошибка при удалении альбома", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Альбом удален"}, h.logger)
}
