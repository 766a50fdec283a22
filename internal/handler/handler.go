package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondUseCaseError — переводит ошибку сценария в HTTP-статус.
// fallback показывается для непредвиденных ошибок вместо внутренних деталей.
func respondUseCaseError(w http.ResponseWriter, err error, fallback string, logger *slog.Logger) {
	switch {
	case errors.Is(err, usecase.ErrNotAuthenticated):
		respondWithError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован", logger)
	case errors.Is(err, usecase.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, usecase.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Запись не найдена", logger)
	case errors.Is(err, cache.ErrKeyDisabled):
		respondWithError(w, http.StatusBadRequest, "Не указан идентификатор альбома", logger)
	default:
		respondWithError(w, http.StatusInternalServerError, fallback, logger)
	}
}
