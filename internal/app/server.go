package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер и блокируется до отмены контекста
func (a *App) runServer(ctx context.Context) error {
	albumHandler := handler.NewAlbumHandler(a.albumUseCase, a.cacheSvc, a.logger)
	memberHandler := handler.NewMemberHandler(a.memberUseCase, a.cacheSvc, a.logger)
	photoHandler := handler.NewPhotoHandler(a.photoUseCase, a.cacheSvc, a.logger)
	searchHandler := handler.NewSearchHandler(a.searchUseCase, a.logger)
	shareHandler := handler.NewShareHandler(a.shareUseCase, a.cacheSvc, a.logger)
	noticeHandler := handler.NewNoticeHandler(a.cacheSvc, a.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(handler.RequestLogger(a.logger))
	r.Use(handler.WithUser(a.logger))

	// Поток уведомлений живет дольше обычного запроса, поэтому
	// общий таймаут на него не вешаем
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(a.Config.RequestTimeout))

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", albumHandler.ListAlbums)
			r.Post("/", albumHandler.CreateAlbum)

			r.Route("/{groupID}", func(r chi.Router) {
				r.Get("/", albumHandler.GetAlbum)
				r.Patch("/", albumHandler.UpdateAlbum)
				r.Delete("/", albumHandler.DeleteAlbum)

				r.Get("/members", memberHandler.ListMembers)
				r.Post("/members", memberHandler.AddMember)

				r.Get("/photos", photoHandler.ListPhotos)
				r.Post("/photos", photoHandler.UploadPhoto)
			})
		})

		r.Route("/members/{id}", func(r chi.Router) {
			r.Patch("/", memberHandler.UpdateMember)
			r.Delete("/", memberHandler.DeleteMember)
		})

		r.Route("/photos/{id}", func(r chi.Router) {
			r.Get("/", photoHandler.GetPhoto)
			r.Delete("/", photoHandler.DeletePhoto)
			r.Post("/share", shareHandler.SharePhoto)
		})

		r.Get("/search/photos", searchHandler.SearchPhotos)

		r.Post("/otp/send", shareHandler.SendOTP)
		r.Post("/otp/verify", shareHandler.VerifyOTP)
	})

	r.Get("/notices", noticeHandler.Stream)

	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}
