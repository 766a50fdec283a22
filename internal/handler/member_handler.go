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

// MemberHandler — обработчик HTTP-запросов для работы с участниками альбомов.
type MemberHandler struct {
	memberUseCase usecase.MemberUseCase
	cacheSvc      *cache.Service
	logger        *slog.Logger
}

// NewMemberHandler создает новый экземпляр MemberHandler.
func NewMemberHandler(uc usecase.MemberUseCase, cacheSvc *cache.Service, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		memberUseCase: uc,
		cacheSvc:      cacheSvc,
		logger:        logger,
	}
}

type addMemberRequest struct {
	Name              string `json:"name"`
	PhoneNumber       string `json:"phone_number"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// ListMembers — возвращает участников альбома.
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	key := cache.Key{Resource: cache.ResourceMembers, Parent: albumID}
	members, err := h.cacheSvc.Get(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		return h.memberUseCase.ListMembers(ctx, albumID)
	})
	if err != nil {
		h.logger.Error("failed to list members", "group_id", albumID, "error", err)
		respondUseCaseError(w, err, "Ошибка получения участников", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, members, h.logger)
}

// AddMember — добавляет участника в альбом.
func (h *MemberHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор альбома", h.logger)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Не указано имя участника", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request", "endpoint", "AddMember", "group_id", albumID, "name", req.Name)

	var member *domain.Member
	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Участник добавлен",
		FallbackError:  "Не удалось добавить участника",
		InvalidateKeys: []cache.Key{{Resource: cache.ResourceMembers, Parent: albumID}},
	}, func(ctx context.Context) (string, error) {
		var err error
		member, err = h.memberUseCase.AddMember(ctx, userID, albumID, req.Name, req.PhoneNumber, req.ProfilePictureURL)
		return "", err
	})
	if err != nil {
		h.logger.Error("failed to add member", "group_id", albumID, "error", err)
		respondUseCaseError(w, err, "Ошибка при добавлении участника", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, member, h.logger)
}

// UpdateMember — частично обновляет данные участника.
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор участника", h.logger)
		return
	}

	var upd domain.MemberUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())

	var member *domain.Member
	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Данные участника обновлены",
		FallbackError:  "Не удалось обновить участника",
		// Альбом участника здесь неизвестен, инвалидируем ресурс целиком
		InvalidateResources: []cache.Resource{cache.ResourceMembers},
	}, func(ctx context.Context) (string, error) {
		var err error
		member, err = h.memberUseCase.UpdateMember(ctx, userID, memberID, upd)
		return "", err
	})
	if err != nil {
		h.logger.Error("failed to update member", "member_id", memberID, "error", err)
		respondUseCaseError(w, err, "Ошибка при обновлении участника", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, member, h.logger)
}

// DeleteMember — удаляет участника из альбома.
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор участника", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request", "endpoint", "DeleteMember", "member_id", memberID, "user_id", userID)

	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage:      "Участник удален",
		FallbackError:       "Не удалось удалить участника",
		InvalidateResources: []cache.Resource{cache.ResourceMembers},
	}, func(ctx context.Context) (string, error) {
		return "", h.memberUseCase.DeleteMember(ctx, userID, memberID)
	})
	if err != nil {
		h.logger.Error("failed to delete member", "member_id", memberID, "error", err)
		respondUseCaseError(w, err, "Ошибка при удалении участника", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Участник удален"}, h.logger)
}
