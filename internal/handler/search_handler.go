package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/AlbumApp/internal/usecase"
)

// SearchHandler — обработчик поиска фотографий по людям.
type SearchHandler struct {
	searchUseCase usecase.SearchUseCase
	logger        *slog.Logger
}

// NewSearchHandler создает новый экземпляр SearchHandler.
func NewSearchHandler(uc usecase.SearchUseCase, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		logger:        logger,
	}
}

// SearchPhotos — находит участников по имени или телефону и возвращает
// фотографии их альбомов. Пустой запрос дает пустой результат.
func (h *SearchHandler) SearchPhotos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	h.logger.Info("processing request", "endpoint", "SearchPhotos", "query", query)

	photos, err := h.searchUseCase.SearchPhotosByPerson(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to search photos", "query", query, "error", err)
		respondUseCaseError(w, err, "Ошибка поиска фотографий", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, photos, h.logger)
}
