package app

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/messaging/payloads"
)

// runWorker запускает потребителя RabbitMQ: задачи аннотации лиц,
// отложенные при загрузке, прогоняются через детектор повторно
func (a *App) runWorker(ctx context.Context) error {
	a.logger.Info("worker started, waiting for annotation tasks")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.FaceAnnotationPayload) error {
		a.logger.Info("processing annotation task",
			"photo_id", payload.PhotoID,
			"object_key", payload.ObjectKey,
		)

		faces, err := a.photoUseCase.AnnotatePhoto(ctx, payload.PhotoID, payload.ObjectKey)
		if err != nil {
			a.logger.Error("annotation task failed", "photo_id", payload.PhotoID, "error", err)
			return err
		}

		a.logger.Info("annotation task completed", "photo_id", payload.PhotoID, "faces", faces)
		return nil
	}

	if err := a.annotationConsumer.StartConsumingFaceAnnotationRequests(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("worker stopping")

	cancelWorker()

	// Небольшая задержка, чтобы логи успели выйти
	time.Sleep(2 * time.Second)
	a.logger.Info("worker stopped")

	return nil
}
