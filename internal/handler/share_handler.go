package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ShareHandler — обработчик проверки телефонов и рассылки фотографий.
// Кэш эти операции не трогают: инвалидировать нечего, но уведомления
// о результате идут по общему протоколу мутаций.
type ShareHandler struct {
	shareUseCase usecase.ShareUseCase
	cacheSvc     *cache.Service
	logger       *slog.Logger
}

// NewShareHandler создает новый экземпляр ShareHandler.
func NewShareHandler(uc usecase.ShareUseCase, cacheSvc *cache.Service, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareUseCase: uc,
		cacheSvc:     cacheSvc,
		logger:       logger,
	}
}

type sendOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
	SessionID   string `json:"session_id"`
}

type sharePhotoRequest struct {
	Recipients []string `json:"recipients"`
	Caption    string   `json:"caption"`
}

// SendOTP — отправляет одноразовый код на номер телефона.
func (h *ShareHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}
	if req.PhoneNumber == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан номер телефона", h.logger)
		return
	}

	h.logger.Info("processing request", "endpoint", "SendOTP", "phone_number", req.PhoneNumber)

	var session *ports.OTPSession
	err := h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: fmt.Sprintf("Код отправлен на номер %s", req.PhoneNumber),
		FallbackError:  "Не удалось отправить код",
	}, func(ctx context.Context) (string, error) {
		var err error
		session, err = h.shareUseCase.SendOTP(ctx, req.PhoneNumber)
		return "", err
	})
	if err != nil {
		h.logger.Error("failed to send OTP", "phone_number", req.PhoneNumber, "error", err)
		respondUseCaseError(w, err, "Ошибка при отправке кода", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, session, h.logger)
}

// VerifyOTP — проверяет одноразовый код.
func (h *ShareHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	h.logger.Info("processing request", "endpoint", "VerifyOTP", "phone_number", req.PhoneNumber)

	var verified bool
	err := h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Номер подтвержден",
		FallbackError:  "Не удалось проверить код",
	}, func(ctx context.Context) (string, error) {
		var err error
		verified, err = h.shareUseCase.VerifyOTP(ctx, req.PhoneNumber, req.Code, req.SessionID)
		if err != nil {
			return "", err
		}
		if !verified {
			return "", fmt.Errorf("неверный код")
		}
		return "", nil
	})
	if err != nil {
		h.logger.Warn("OTP verification failed", "phone_number", req.PhoneNumber, "error", err)
		respondWithJSON(w, http.StatusOK, map[string]bool{"verified": false}, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"verified": true}, h.logger)
}

// SharePhoto — рассылает фото получателям и возвращает разбиение
// succeeded/failed с сохранением порядка входного списка.
func (h *ShareHandler) SharePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор фото", h.logger)
		return
	}

	var req sharePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}
	if len(req.Recipients) == 0 {
		respondWithError(w, http.StatusBadRequest, "Не указаны получатели", h.logger)
		return
	}

	userID := UserIDFromContext(r.Context())
	h.logger.Info("processing request", "endpoint", "SharePhoto", "photo_id", photoID, "recipients", len(req.Recipients))

	var result *ports.ShareResult
	err = h.cacheSvc.Mutate(r.Context(), cache.Mutation{
		SuccessMessage: "Фото отправлено",
		FallbackError:  "Не удалось отправить фото",
	}, func(ctx context.Context) (string, error) {
		var err error
		result, err = h.shareUseCase.SharePhoto(ctx, userID, photoID, req.Recipients, req.Caption)
		if err != nil {
			return "", err
		}
		if len(result.Failed) > 0 {
			return fmt.Sprintf("Фото отправлено: %d, не доставлено: %d", len(result.Succeeded), len(result.Failed)), nil
		}
		return fmt.Sprintf("Фото отправлено получателям: %d", len(result.Succeeded)), nil
	})
	if err != nil {
		h.logger.Error("failed to share photo", "photo_id", photoID, "error", err)
		respondUseCaseError(w, err, "Ошибка при отправке фото", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, result, h.logger)
}
