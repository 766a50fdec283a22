package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/AlbumApp/internal/cache"
)

// NoticeHandler — отдает уведомления координатора подписчикам по SSE.
type NoticeHandler struct {
	cacheSvc *cache.Service
	logger   *slog.Logger
}

// NewNoticeHandler создает новый экземпляр NoticeHandler.
func NewNoticeHandler(cacheSvc *cache.Service, logger *slog.Logger) *NoticeHandler {
	return &NoticeHandler{
		cacheSvc: cacheSvc,
		logger:   logger,
	}
}

// Stream — поток server-sent events с уведомлениями о результатах мутаций.
// Соединение живет до отключения клиента или остановки сервера.
//
// Канал уведомлений один на процесс, поэтому поток рассчитан на одного
// подписчика: при нескольких открытых соединениях каждое уведомление
// получит ровно одно из них, а без подписчиков буфер канала переполняется
// и новые уведомления отбрасываются с предупреждением в лог.
func (h *NoticeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Поток событий не поддерживается", h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("notice stream opened", "remote_addr", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("notice stream closed", "remote_addr", r.RemoteAddr)
			return
		case notice := <-h.cacheSvc.Notices():
			data, err := json.Marshal(notice)
			if err != nil {
				h.logger.Error("failed to marshal notice", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				h.logger.Warn("notice stream write failed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}
